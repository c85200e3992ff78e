package profile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/saulo-duarte/quizmate-lambda/internal/config"
)

// jsonRepository keeps every profile in a single JSON document. Each call
// reloads the document, so there is no cache shared across requests.
type jsonRepository struct {
	path string
	mu   sync.Mutex
}

func NewJSONRepository(path string) (Repository, error) {
	if path == "" {
		return nil, errors.New("json repository: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("json repository: create dir: %w", err)
	}
	return &jsonRepository{path: path}, nil
}

func (r *jsonRepository) load() (*document, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return newDocument(), nil
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	return decodeDocument(raw)
}

// save writes to a sibling temp file and renames it over the document so a
// crash never leaves a truncated file behind.
func (r *jsonRepository) save(doc *document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("rename document: %w", err)
	}
	return nil
}

// update runs one load-mutate-save cycle under the document lock. mutate
// reports whether the document changed and needs saving.
func (r *jsonRepository) update(mutate func(doc *document) (bool, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}
	changed, err := mutate(doc)
	if err != nil || !changed {
		return err
	}
	return r.save(doc)
}

func (r *jsonRepository) GetOrCreate(ctx context.Context, username, grade string) (*UserProfile, error) {
	log := config.WithContext(ctx)
	var out *UserProfile

	err := r.update(func(doc *document) (bool, error) {
		if p, ok := doc.Users[username]; ok {
			out = p.clone()
			return false, nil
		}
		p := newProfile(username, grade)
		doc.Users[username] = p
		out = p.clone()
		log.WithField("username", username).Info("Created profile")
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *jsonRepository) FindByUsername(ctx context.Context, username string) (*UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	p, ok := doc.Users[username]
	if !ok {
		return nil, nil
	}
	return p.clone(), nil
}

func (r *jsonRepository) AppendTurn(ctx context.Context, username string, turn Turn) (*UserProfile, error) {
	var out *UserProfile

	err := r.update(func(doc *document) (bool, error) {
		p, ok := doc.Users[username]
		if !ok {
			return false, ErrProfileNotFound
		}
		p.History = append(p.History, NewTurn(turn.Sender, turn.Text, turn.Time))
		out = p.clone()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *jsonRepository) IncrementQuizCount(ctx context.Context, username string) (bool, error) {
	found := false

	err := r.update(func(doc *document) (bool, error) {
		p, ok := doc.Users[username]
		if !ok {
			return false, nil
		}
		p.QuizzesTaken++
		found = true
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}
