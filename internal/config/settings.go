package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type StorageBackend string

const (
	StorageTmp      StorageBackend = "tmp"
	StorageFile     StorageBackend = "file"
	StoragePostgres StorageBackend = "postgres"
	StorageSQLite   StorageBackend = "sqlite"
)

var AllStorageBackends = []StorageBackend{
	StorageTmp,
	StorageFile,
	StoragePostgres,
	StorageSQLite,
}

func (b StorageBackend) IsValid() bool {
	for _, v := range AllStorageBackends {
		if b == v {
			return true
		}
	}
	return false
}

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"

	DefaultPort          = "5000"
	DefaultHistoryWindow = 10
	defaultFilePath      = "data/memory.json"
	defaultSQLitePath    = "data/quizmate.db"
)

// Settings is resolved once at process start and handed to the container.
type Settings struct {
	Port     string
	LogLevel string

	StorageBackend StorageBackend
	// StoragePath is the JSON document for the file backends and the
	// database file for sqlite. Empty means the backend default.
	StoragePath string
	DatabaseDSN string

	LLMProvider  string
	LLMBaseURL   string
	LLMModel     string
	GroqAPIKey   string
	GeminiAPIKey string

	HistoryWindow int

	Lambda bool
}

var (
	ErrInvalidStorageBackend = errors.New("invalid storage backend")
	ErrMissingDatabaseDSN    = errors.New("DATABASE_DSN is required for the postgres backend")
	ErrInvalidProvider       = errors.New("invalid llm provider")
)

// Validate fills defaults and rejects inconsistent settings.
func (s *Settings) Validate() error {
	s.StorageBackend = StorageBackend(strings.ToLower(string(s.StorageBackend)))
	if s.StorageBackend == "" {
		// Lambda only allows writes under the temp dir.
		s.StorageBackend = StorageFile
		if s.Lambda {
			s.StorageBackend = StorageTmp
		}
	}
	if !s.StorageBackend.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStorageBackend, s.StorageBackend)
	}
	if s.StorageBackend == StoragePostgres && s.DatabaseDSN == "" {
		return ErrMissingDatabaseDSN
	}

	s.LLMProvider = strings.ToLower(s.LLMProvider)
	switch s.LLMProvider {
	case "":
		s.LLMProvider = ProviderGroq
	case ProviderGroq, ProviderGemini:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidProvider, s.LLMProvider)
	}

	if s.Port == "" {
		s.Port = DefaultPort
	}
	if s.HistoryWindow <= 0 {
		s.HistoryWindow = DefaultHistoryWindow
	}
	return nil
}

// ResolvedStoragePath returns where the selected backend keeps its data.
func (s Settings) ResolvedStoragePath() string {
	switch s.StorageBackend {
	case StorageTmp:
		return filepath.Join(os.TempDir(), "quizmate", "memory.json")
	case StorageFile:
		if s.StoragePath != "" {
			return s.StoragePath
		}
		return defaultFilePath
	case StorageSQLite:
		if s.StoragePath != "" {
			return s.StoragePath
		}
		return defaultSQLitePath
	}
	return ""
}

// ProviderKeyLoaded reports whether the credential for the selected
// provider is present.
func (s Settings) ProviderKeyLoaded() bool {
	if s.LLMProvider == ProviderGemini {
		return s.GeminiAPIKey != ""
	}
	return s.GroqAPIKey != ""
}
