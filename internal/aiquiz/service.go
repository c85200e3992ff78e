package aiquiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/saulo-duarte/quizmate-lambda/internal/completion"
	"github.com/saulo-duarte/quizmate-lambda/internal/config"
	"github.com/saulo-duarte/quizmate-lambda/internal/profile"
)

var (
	ErrMissingTopic    = errors.New("topic is required")
	ErrMissingUsername = errors.New("username is required")
)

type Service interface {
	// GenerateQuiz bumps the quiz count of an existing user and returns the
	// raw quiz text. Provider failures come back as *completion.ProviderError
	// after the count was already stored.
	GenerateQuiz(ctx context.Context, req QuizRequest) (string, error)
}

type service struct {
	repo     profile.Repository
	locker   *profile.Locker
	provider completion.Provider
}

func NewService(repo profile.Repository, locker *profile.Locker, provider completion.Provider) Service {
	return &service{repo: repo, locker: locker, provider: provider}
}

func (s *service) GenerateQuiz(ctx context.Context, req QuizRequest) (string, error) {
	topic := strings.TrimSpace(req.Topic)
	username := strings.TrimSpace(req.Username)
	if topic == "" {
		return "", ErrMissingTopic
	}
	if username == "" {
		return "", ErrMissingUsername
	}

	log := config.WithContext(ctx).WithField("username", username)

	unlock := s.locker.Lock(username)
	counted, err := s.repo.IncrementQuizCount(ctx, username)
	unlock()
	if err != nil {
		return "", fmt.Errorf("increment quiz count: %w", err)
	}
	if !counted {
		log.Debug("Quiz requested by unknown user, count not tracked")
	}

	quiz, err := s.provider.Complete(ctx, BuildQuizPrompt(topic), "")
	if err != nil {
		log.WithError(err).Error("Quiz completion failed")
		return "", err
	}

	log.WithField("topic", topic).Info("Quiz generated")
	return quiz, nil
}
