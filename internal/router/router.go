package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/saulo-duarte/quizmate-lambda/docs"
	"github.com/saulo-duarte/quizmate-lambda/internal/aiquiz"
	"github.com/saulo-duarte/quizmate-lambda/internal/chat"
	"github.com/saulo-duarte/quizmate-lambda/internal/config"
	"github.com/saulo-duarte/quizmate-lambda/internal/profile"
)

type RouterConfig struct {
	ChatHandler    *chat.Handler
	AIQuizHandler  *aiquiz.Handler
	ProfileHandler *profile.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/healthz", health)

	r.Mount("/chat", chat.Routes(cfg.ChatHandler))
	r.Mount("/quiz", aiquiz.Routes(cfg.AIQuizHandler))
	r.Mount("/profiles", profile.Routes(cfg.ProfileHandler))
	return r
}

// health godoc
// @Summary  Liveness probe
// @Tags     Health
// @Produce  json
// @Success  200 {object} map[string]string
// @Router   /healthz [get]
func health(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
