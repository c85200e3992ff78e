package aiquiz

import (
	"github.com/saulo-duarte/quizmate-lambda/internal/completion"
	"github.com/saulo-duarte/quizmate-lambda/internal/profile"
)

type AIQuizContainer struct {
	Handler *Handler
}

func NewAIQuizContainer(repo profile.Repository, locker *profile.Locker, provider completion.Provider) *AIQuizContainer {
	service := NewService(repo, locker, provider)
	handler := NewHandler(service)

	return &AIQuizContainer{
		Handler: handler,
	}
}
