package container

import (
	"context"
	"fmt"
	"net/http"

	"github.com/saulo-duarte/quizmate-lambda/internal/aiquiz"
	"github.com/saulo-duarte/quizmate-lambda/internal/chat"
	"github.com/saulo-duarte/quizmate-lambda/internal/completion"
	"github.com/saulo-duarte/quizmate-lambda/internal/config"
	"github.com/saulo-duarte/quizmate-lambda/internal/profile"
	"github.com/saulo-duarte/quizmate-lambda/internal/router"
)

type Container struct {
	ProfileContainer *profile.ProfileContainer
	ChatContainer    *chat.ChatContainer
	AIQuizContainer  *aiquiz.AIQuizContainer
}

// New wires the profile store and completion provider selected in settings
// into the request handlers.
func New(ctx context.Context, settings config.Settings) (*Container, error) {
	log := config.WithContext(ctx)

	profileContainer, err := profile.NewProfileContainer(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("profile store: %w", err)
	}

	provider, err := completion.NewFromSettings(ctx, settings)
	if err != nil {
		profileContainer.Close()
		return nil, fmt.Errorf("completion provider: %w", err)
	}
	log.WithField("provider", settings.LLMProvider).
		WithField("key_loaded", settings.ProviderKeyLoaded()).
		Info("Completion provider ready")

	return NewWithDependencies(profileContainer, provider, settings.HistoryWindow), nil
}

// NewWithDependencies builds the handler containers on top of an already
// opened profile store and provider.
func NewWithDependencies(profileContainer *profile.ProfileContainer, provider completion.Provider, window int) *Container {
	repo := profileContainer.Repo
	locker := profileContainer.Locker

	return &Container{
		ProfileContainer: profileContainer,
		ChatContainer:    chat.NewChatContainer(repo, locker, provider, window),
		AIQuizContainer:  aiquiz.NewAIQuizContainer(repo, locker, provider),
	}
}

func (c *Container) Router() http.Handler {
	return router.New(router.RouterConfig{
		ChatHandler:    c.ChatContainer.Handler,
		AIQuizHandler:  c.AIQuizContainer.Handler,
		ProfileHandler: c.ProfileContainer.Handler,
	})
}

func (c *Container) Close() error {
	return c.ProfileContainer.Close()
}
