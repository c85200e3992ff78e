package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/saulo-duarte/quizmate-lambda/internal/config"
)

func parseSettings(t *testing.T, args ...string) (config.Settings, error) {
	t.Helper()

	var (
		got    config.Settings
		runErr error
	)
	app := &cli.App{
		Name:  "quizmate-api",
		Flags: flags(),
		Action: func(c *cli.Context) error {
			got, runErr = settingsFromContext(c)
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"quizmate-api"}, args...)))
	return got, runErr
}

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "STORAGE_BACKEND", "STORAGE_PATH", "DATABASE_DSN",
		"LLM_PROVIDER", "LLM_BASE_URL", "LLM_MODEL", "GROQ_API_KEY", "GEMINI_API_KEY",
		"CHAT_HISTORY_WINDOW", "AWS_LAMBDA_FUNCTION_NAME",
	} {
		// Setenv restores the original value on cleanup.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestSettingsFromFlags(t *testing.T) {
	clearEnv(t)

	s, err := parseSettings(t, "--storage", "sqlite", "--storage-path", "/tmp/q.db", "--history-window", "5", "--port", "8080")
	require.NoError(t, err)

	assert.Equal(t, config.StorageSQLite, s.StorageBackend)
	assert.Equal(t, "/tmp/q.db", s.StoragePath)
	assert.Equal(t, 5, s.HistoryWindow)
	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, config.ProviderGroq, s.LLMProvider)
	assert.False(t, s.Lambda)
}

func TestSettingsFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "tmp")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "quizmate")

	s, err := parseSettings(t)
	require.NoError(t, err)

	assert.Equal(t, config.StorageTmp, s.StorageBackend)
	assert.Equal(t, config.ProviderGemini, s.LLMProvider)
	assert.Equal(t, "g-key", s.GeminiAPIKey)
	assert.True(t, s.ProviderKeyLoaded())
	assert.True(t, s.Lambda)
	assert.Equal(t, config.DefaultPort, s.Port)
	assert.Equal(t, config.DefaultHistoryWindow, s.HistoryWindow)
}

func TestSettingsFromFlags_Invalid(t *testing.T) {
	clearEnv(t)

	_, err := parseSettings(t, "--storage", "postgres")
	assert.ErrorIs(t, err, config.ErrMissingDatabaseDSN)
}

func TestSettingsFromEnv_StorageDefaultsByEnvironment(t *testing.T) {
	t.Run("Local", func(t *testing.T) {
		clearEnv(t)

		s, err := parseSettings(t)
		require.NoError(t, err)
		assert.Equal(t, config.StorageFile, s.StorageBackend)
	})

	t.Run("Lambda", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "quizmate")

		s, err := parseSettings(t)
		require.NoError(t, err)
		assert.Equal(t, config.StorageTmp, s.StorageBackend)
	})
}
