package profile

import (
	"context"
	"errors"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrConflict        = errors.New("profile was modified concurrently")
	ErrCorruptDocument = errors.New("corrupt profile document")
)

// Repository persists one UserProfile per username. Every mutating call
// commits durably before it returns.
type Repository interface {
	// GetOrCreate returns the existing profile or creates one with grade.
	// grade is ignored for existing profiles.
	GetOrCreate(ctx context.Context, username, grade string) (*UserProfile, error)
	// FindByUsername returns nil, nil when no profile exists.
	FindByUsername(ctx context.Context, username string) (*UserProfile, error)
	// AppendTurn returns ErrProfileNotFound when the profile is absent.
	AppendTurn(ctx context.Context, username string, turn Turn) (*UserProfile, error)
	// IncrementQuizCount reports false and changes nothing when the
	// profile is absent.
	IncrementQuizCount(ctx context.Context, username string) (bool, error)
}

const maxCASAttempts = 3
