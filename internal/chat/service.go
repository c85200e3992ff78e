package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizmate-lambda/internal/completion"
	"github.com/saulo-duarte/quizmate-lambda/internal/config"
	"github.com/saulo-duarte/quizmate-lambda/internal/profile"
)

var (
	ErrMissingMessage   = errors.New("message is required")
	ErrMissingUsername  = errors.New("username is required")
	ErrMissingUserClass = errors.New("userClass is required for a new user")
)

type Service interface {
	// Chat records the exchange in the user's history and returns the reply.
	// Provider failures come back as *completion.ProviderError; the user
	// turn stays recorded.
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

type service struct {
	repo     profile.Repository
	locker   *profile.Locker
	provider completion.Provider
	window   int
	now      func() time.Time
}

func NewService(repo profile.Repository, locker *profile.Locker, provider completion.Provider, window int) Service {
	if window <= 0 {
		window = config.DefaultHistoryWindow
	}
	return &service{
		repo:     repo,
		locker:   locker,
		provider: provider,
		window:   window,
		now:      time.Now,
	}
}

func (s *service) Chat(ctx context.Context, req ChatRequest) (string, error) {
	message := strings.TrimSpace(req.Message)
	username := strings.TrimSpace(req.Username)
	userClass := strings.TrimSpace(req.UserClass)
	if message == "" {
		return "", ErrMissingMessage
	}
	if username == "" {
		return "", ErrMissingUsername
	}

	log := config.WithContext(ctx).WithField("username", username)

	unlock := s.locker.Lock(username)
	defer unlock()

	if userClass == "" {
		existing, err := s.repo.FindByUsername(ctx, username)
		if err != nil {
			return "", fmt.Errorf("load profile: %w", err)
		}
		if existing == nil {
			log.Warn("First chat without userClass")
			return "", ErrMissingUserClass
		}
	}

	p, err := s.repo.GetOrCreate(ctx, username, userClass)
	if err != nil {
		return "", fmt.Errorf("get or create profile: %w", err)
	}

	updated, err := s.repo.AppendTurn(ctx, username, profile.NewTurn(profile.SenderUser, message, s.now()))
	switch {
	case errors.Is(err, profile.ErrProfileNotFound):
		log.Warn("Profile vanished before user turn was recorded")
	case err != nil:
		return "", fmt.Errorf("append user turn: %w", err)
	default:
		p = updated
	}

	prompt := BuildSystemPrompt(p, s.window)

	reply, err := s.provider.Complete(ctx, prompt, message)
	if err != nil {
		log.WithError(err).Error("Chat completion failed")
		return "", err
	}

	_, err = s.repo.AppendTurn(ctx, username, profile.NewTurn(profile.SenderAI, reply, s.now()))
	switch {
	case errors.Is(err, profile.ErrProfileNotFound):
		log.Warn("Profile vanished before AI turn was recorded")
	case err != nil:
		return "", fmt.Errorf("append ai turn: %w", err)
	}

	log.WithFields(logrus.Fields{
		"history_len": len(p.History) + 1,
		"reply_len":   len(reply),
	}).Info("Chat reply generated")
	return reply, nil
}
