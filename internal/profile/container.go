package profile

import (
	"context"
	"fmt"

	"github.com/saulo-duarte/quizmate-lambda/internal/config"
)

type ProfileContainer struct {
	Repo    Repository
	Locker  *Locker
	Handler *Handler

	close func() error
}

// NewProfileContainer opens the backend selected in settings.
func NewProfileContainer(ctx context.Context, settings config.Settings) (*ProfileContainer, error) {
	log := config.WithContext(ctx)

	repo, closeFn, err := openRepository(ctx, settings)
	if err != nil {
		return nil, err
	}
	log.WithField("backend", settings.StorageBackend).
		WithField("path", settings.ResolvedStoragePath()).
		Info("Profile store ready")

	return &ProfileContainer{
		Repo:    repo,
		Locker:  NewLocker(),
		Handler: NewHandler(NewService(repo)),
		close:   closeFn,
	}, nil
}

func (c *ProfileContainer) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}

func openRepository(ctx context.Context, settings config.Settings) (Repository, func() error, error) {
	switch settings.StorageBackend {
	case config.StorageTmp, config.StorageFile:
		repo, err := NewJSONRepository(settings.ResolvedStoragePath())
		return repo, nil, err

	case config.StorageSQLite:
		db, err := OpenSQLite(ctx, settings.ResolvedStoragePath())
		if err != nil {
			return nil, nil, err
		}
		return NewSQLiteRepository(db), db.Close, nil

	case config.StoragePostgres:
		db, err := config.Connect(ctx, settings.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		repo, err := NewGormRepository(db)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return repo, sqlDB.Close, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", config.ErrInvalidStorageBackend, settings.StorageBackend)
}
