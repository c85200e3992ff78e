package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saulo-duarte/quizmate-lambda/internal/config"
)

// profileRecord is the document-store row: one per username, history kept
// as a JSONB array. Version guards optimistic updates.
type profileRecord struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Username     string         `gorm:"type:text;not null;uniqueIndex"`
	Grade        string         `gorm:"type:text;not null;default:''"`
	History      datatypes.JSON `gorm:"type:jsonb;not null"`
	QuizzesTaken int            `gorm:"not null;default:0"`
	Version      int64          `gorm:"not null;default:0"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (profileRecord) TableName() string {
	return "user_profiles"
}

func (rec *profileRecord) toProfile() (*UserProfile, error) {
	p := &UserProfile{
		Username:     rec.Username,
		Grade:        rec.Grade,
		QuizzesTaken: rec.QuizzesTaken,
	}
	if len(rec.History) > 0 {
		if err := json.Unmarshal(rec.History, &p.History); err != nil {
			return nil, fmt.Errorf("%w: history of %q: %v", ErrCorruptDocument, rec.Username, err)
		}
	}
	if err := normalize(rec.Username, p); err != nil {
		return nil, err
	}
	return p, nil
}

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) (Repository, error) {
	if err := db.AutoMigrate(&profileRecord{}); err != nil {
		return nil, fmt.Errorf("migrate user_profiles: %w", err)
	}
	return &gormRepository{db: db}, nil
}

func (r *gormRepository) find(ctx context.Context, username string) (*profileRecord, error) {
	var rec profileRecord
	if err := r.db.WithContext(ctx).First(&rec, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *gormRepository) GetOrCreate(ctx context.Context, username, grade string) (*UserProfile, error) {
	log := config.WithContext(ctx)

	rec, err := r.find(ctx, username)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = &profileRecord{
			ID:       uuid.New(),
			Username: username,
			Grade:    grade,
			History:  datatypes.JSON("[]"),
		}
		res := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).
			Create(rec)
		if res.Error != nil {
			log.WithError(res.Error).Error("Failed to create profile")
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			log.WithField("username", username).Info("Created profile")
			return rec.toProfile()
		}

		// Another writer created it first.
		if rec, err = r.find(ctx, username); err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, ErrProfileNotFound
		}
	}
	return rec.toProfile()
}

func (r *gormRepository) FindByUsername(ctx context.Context, username string) (*UserProfile, error) {
	rec, err := r.find(ctx, username)
	if err != nil || rec == nil {
		return nil, err
	}
	return rec.toProfile()
}

// mutate applies fn to a fresh copy and writes it back only if nobody else
// bumped the version in between.
func (r *gormRepository) mutate(ctx context.Context, username string, fn func(p *UserProfile)) (*UserProfile, error) {
	log := config.WithContext(ctx).WithField("username", username)

	for attempt := 1; attempt <= maxCASAttempts; attempt++ {
		rec, err := r.find(ctx, username)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, ErrProfileNotFound
		}
		p, err := rec.toProfile()
		if err != nil {
			return nil, err
		}

		fn(p)

		history, err := json.Marshal(p.History)
		if err != nil {
			return nil, fmt.Errorf("encode history: %w", err)
		}
		res := r.db.WithContext(ctx).
			Model(&profileRecord{}).
			Where("username = ? AND version = ?", username, rec.Version).
			Updates(map[string]interface{}{
				"history":       datatypes.JSON(history),
				"quizzes_taken": p.QuizzesTaken,
				"version":       rec.Version + 1,
			})
		if res.Error != nil {
			log.WithError(res.Error).Error("Failed to update profile")
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			return p, nil
		}
		log.WithFields(logrus.Fields{"attempt": attempt, "version": rec.Version}).Warn("Profile version conflict, retrying")
	}
	return nil, ErrConflict
}

func (r *gormRepository) AppendTurn(ctx context.Context, username string, turn Turn) (*UserProfile, error) {
	return r.mutate(ctx, username, func(p *UserProfile) {
		p.History = append(p.History, NewTurn(turn.Sender, turn.Text, turn.Time))
	})
}

func (r *gormRepository) IncrementQuizCount(ctx context.Context, username string) (bool, error) {
	_, err := r.mutate(ctx, username, func(p *UserProfile) {
		p.QuizzesTaken++
	})
	if errors.Is(err, ErrProfileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
