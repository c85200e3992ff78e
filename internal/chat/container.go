package chat

import (
	"github.com/saulo-duarte/quizmate-lambda/internal/completion"
	"github.com/saulo-duarte/quizmate-lambda/internal/profile"
)

type ChatContainer struct {
	Handler *Handler
}

func NewChatContainer(repo profile.Repository, locker *profile.Locker, provider completion.Provider, window int) *ChatContainer {
	service := NewService(repo, locker, provider, window)
	handler := NewHandler(service)

	return &ChatContainer{
		Handler: handler,
	}
}
