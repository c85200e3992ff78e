package profile

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quizmate-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// GetProfile godoc
// @Summary      Get a user profile
// @Description  Returns the stored grade, conversation history and quiz count of a user.
// @Tags         Profile
// @Produce      json
// @Param        username path     string true "Username"
// @Success      200      {object} profile.UserProfile
// @Failure      400      {string} string "username required"
// @Failure      404      {string} string "profile not found"
// @Failure      500      {string} string "internal server error"
// @Router       /profiles/{username} [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	username := chi.URLParam(r, "username")
	p, err := h.service.GetProfile(r.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingUsername):
			http.Error(w, "username required", http.StatusBadRequest)
		case errors.Is(err, ErrProfileNotFound):
			http.Error(w, "profile not found", http.StatusNotFound)
		default:
			log.WithError(err).Error("Failed to get profile")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, p)
}
