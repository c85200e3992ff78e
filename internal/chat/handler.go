package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/quizmate-lambda/internal/completion"
	"github.com/saulo-duarte/quizmate-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// Chat godoc
// @Summary      Chat with the study assistant
// @Description  Appends the message to the user's history, asks the model and returns its reply. userClass is required on the first message of a new user.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request body     chat.ChatRequest  true "Chat message"
// @Success      200     {object} chat.ChatResponse
// @Failure      400     {string} string "missing field"
// @Failure      500     {object} chat.ChatResponse "fallback reply"
// @Router       /chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	reply, err := h.service.Chat(r.Context(), req)
	if err != nil {
		var perr *completion.ProviderError
		switch {
		case errors.Is(err, ErrMissingMessage),
			errors.Is(err, ErrMissingUsername),
			errors.Is(err, ErrMissingUserClass):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.As(err, &perr):
			config.JSON(w, http.StatusInternalServerError, ChatResponse{Reply: FallbackReply})
		default:
			log.WithError(err).Error("Failed to handle chat")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, ChatResponse{Reply: reply})
}
