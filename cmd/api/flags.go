package main

import (
	"github.com/urfave/cli/v2"

	"github.com/saulo-duarte/quizmate-lambda/internal/config"
)

const (
	flagPort           = "port"
	flagLogLevel       = "log-level"
	flagStorage        = "storage"
	flagStoragePath    = "storage-path"
	flagDatabaseDSN    = "database-dsn"
	flagProvider       = "provider"
	flagLLMBaseURL     = "llm-base-url"
	flagLLMModel       = "llm-model"
	flagGroqAPIKey     = "groq-api-key"
	flagGeminiAPIKey   = "gemini-api-key"
	flagHistoryWindow  = "history-window"
	flagLambdaFunction = "lambda-function"
)

// flags returns a fresh set on every call; cli mutates flag values while
// parsing.
func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: flagPort, Usage: "HTTP listen port", Value: config.DefaultPort, EnvVars: []string{"PORT"}},
		&cli.StringFlag{Name: flagLogLevel, Usage: "logrus level", Value: "info", EnvVars: []string{"LOG_LEVEL"}},
		&cli.StringFlag{Name: flagStorage, Usage: "profile store: tmp, file, sqlite or postgres (tmp under Lambda, file otherwise)", EnvVars: []string{"STORAGE_BACKEND"}},
		&cli.StringFlag{Name: flagStoragePath, Usage: "JSON document or sqlite file, backend default when empty", EnvVars: []string{"STORAGE_PATH"}},
		&cli.StringFlag{Name: flagDatabaseDSN, Usage: "postgres DSN", EnvVars: []string{"DATABASE_DSN"}},
		&cli.StringFlag{Name: flagProvider, Usage: "completion provider: groq or gemini", Value: config.ProviderGroq, EnvVars: []string{"LLM_PROVIDER"}},
		&cli.StringFlag{Name: flagLLMBaseURL, Usage: "OpenAI compatible base URL", EnvVars: []string{"LLM_BASE_URL"}},
		&cli.StringFlag{Name: flagLLMModel, Usage: "model id, provider default when empty", EnvVars: []string{"LLM_MODEL"}},
		&cli.StringFlag{Name: flagGroqAPIKey, Usage: "Groq API key", EnvVars: []string{"GROQ_API_KEY"}},
		&cli.StringFlag{Name: flagGeminiAPIKey, Usage: "Gemini API key", EnvVars: []string{"GEMINI_API_KEY"}},
		&cli.IntFlag{Name: flagHistoryWindow, Usage: "turns of history sent with each chat", Value: config.DefaultHistoryWindow, EnvVars: []string{"CHAT_HISTORY_WINDOW"}},
		&cli.StringFlag{Name: flagLambdaFunction, Hidden: true, EnvVars: []string{"AWS_LAMBDA_FUNCTION_NAME"}},
	}
}

func settingsFromContext(c *cli.Context) (config.Settings, error) {
	s := config.Settings{
		Port:           c.String(flagPort),
		LogLevel:       c.String(flagLogLevel),
		StorageBackend: config.StorageBackend(c.String(flagStorage)),
		StoragePath:    c.String(flagStoragePath),
		DatabaseDSN:    c.String(flagDatabaseDSN),
		LLMProvider:    c.String(flagProvider),
		LLMBaseURL:     c.String(flagLLMBaseURL),
		LLMModel:       c.String(flagLLMModel),
		GroqAPIKey:     c.String(flagGroqAPIKey),
		GeminiAPIKey:   c.String(flagGeminiAPIKey),
		HistoryWindow:  c.Int(flagHistoryWindow),
		Lambda:         c.String(flagLambdaFunction) != "",
	}
	if err := s.Validate(); err != nil {
		return config.Settings{}, err
	}
	return s, nil
}
