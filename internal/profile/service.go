package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/saulo-duarte/quizmate-lambda/internal/config"
)

var ErrMissingUsername = errors.New("username is required")

type Service interface {
	GetProfile(ctx context.Context, username string) (*UserProfile, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProfile(ctx context.Context, username string) (*UserProfile, error) {
	log := config.WithContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrMissingUsername
	}

	p, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		log.WithError(err).Error("Failed to load profile")
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}
