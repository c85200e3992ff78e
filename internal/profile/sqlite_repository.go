package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/saulo-duarte/quizmate-lambda/internal/config"
)

const createProfilesTable = `
CREATE TABLE IF NOT EXISTS user_profiles (
	"username"      TEXT PRIMARY KEY,
	"grade"         TEXT NOT NULL DEFAULT '',
	"history"       TEXT NOT NULL DEFAULT '[]',
	"quizzes_taken" INTEGER NOT NULL DEFAULT 0,
	"version"       INTEGER NOT NULL DEFAULT 0,
	"created_at"    TEXT NOT NULL,
	"updated_at"    TEXT NOT NULL
);`

type sqliteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database file at path and prepares the
// schema. The caller owns the returned *sql.DB.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps writers from hitting SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, createProfilesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create user_profiles table: %w", err)
	}
	return db, nil
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

type sqliteRow struct {
	profile *UserProfile
	version int64
}

func (r *sqliteRepository) find(ctx context.Context, username string) (*sqliteRow, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT username, grade, history, quizzes_taken, version FROM user_profiles WHERE username = ?",
		username,
	)

	var (
		p       UserProfile
		history string
		version int64
	)
	if err := row.Scan(&p.Username, &p.Grade, &history, &p.QuizzesTaken, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(history), &p.History); err != nil {
		return nil, fmt.Errorf("%w: history of %q: %v", ErrCorruptDocument, username, err)
	}
	if err := normalize(username, &p); err != nil {
		return nil, err
	}
	return &sqliteRow{profile: &p, version: version}, nil
}

func (r *sqliteRepository) GetOrCreate(ctx context.Context, username, grade string) (*UserProfile, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO user_profiles(username, grade, history, quizzes_taken, version, created_at, updated_at)
		 VALUES(?, ?, '[]', 0, 0, ?, ?)
		 ON CONFLICT(username) DO NOTHING`,
		username, grade, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		config.WithContext(ctx).WithField("username", username).Info("Created profile")
	}

	row, err := r.find(ctx, username)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrProfileNotFound
	}
	return row.profile, nil
}

func (r *sqliteRepository) FindByUsername(ctx context.Context, username string) (*UserProfile, error) {
	row, err := r.find(ctx, username)
	if err != nil || row == nil {
		return nil, err
	}
	return row.profile, nil
}

func (r *sqliteRepository) mutate(ctx context.Context, username string, fn func(p *UserProfile)) (*UserProfile, error) {
	log := config.WithContext(ctx).WithField("username", username)

	for attempt := 1; attempt <= maxCASAttempts; attempt++ {
		row, err := r.find(ctx, username)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, ErrProfileNotFound
		}

		p := row.profile
		fn(p)

		history, err := json.Marshal(p.History)
		if err != nil {
			return nil, fmt.Errorf("encode history: %w", err)
		}
		res, err := r.db.ExecContext(ctx,
			`UPDATE user_profiles
			 SET history = ?, quizzes_taken = ?, version = version + 1, updated_at = ?
			 WHERE username = ? AND version = ?`,
			string(history), p.QuizzesTaken, time.Now().UTC().Format(time.RFC3339Nano), username, row.version,
		)
		if err != nil {
			log.WithError(err).Error("Failed to update profile")
			return nil, err
		}
		if n, _ := res.RowsAffected(); n == 1 {
			return p, nil
		}
		log.WithFields(logrus.Fields{"attempt": attempt, "version": row.version}).Warn("Profile version conflict, retrying")
	}
	return nil, ErrConflict
}

func (r *sqliteRepository) AppendTurn(ctx context.Context, username string, turn Turn) (*UserProfile, error) {
	return r.mutate(ctx, username, func(p *UserProfile) {
		p.History = append(p.History, NewTurn(turn.Sender, turn.Text, turn.Time))
	})
}

func (r *sqliteRepository) IncrementQuizCount(ctx context.Context, username string) (bool, error) {
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
