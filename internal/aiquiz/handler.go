package aiquiz

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

// GenerateQuiz godoc
// @Summary      Generate a multiple choice quiz
// @Description  Asks the model for five questions on the topic and returns the raw text. The quiz count of a known user is incremented; unknown users are not created.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        request body     aiquiz.QuizRequest  true "Quiz topic"
// @Success      200     {object} aiquiz.QuizResponse
// @Failure      400     {string} string "missing field"
// @Failure      500     {object} aiquiz.QuizResponse "fallback quiz"
// @Router       /quiz [post]
func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	quiz, err := h.service.GenerateQuiz(r.Context(), req)
	if err != nil {
		var perr *completion.ProviderError
		switch {
		case errors.Is(err, ErrMissingTopic), errors.Is(err, ErrMissingUsername):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.As(err, &perr):
			config.JSON(w, http.StatusInternalServerError, QuizResponse{Quiz: FallbackQuiz})
		default:
			log.WithError(err).Error("Failed to generate quiz")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, QuizResponse{Quiz: quiz})
}
