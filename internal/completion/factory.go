package completion

import (
	"context"
	"fmt"

	"github.com/saulo-duarte/quizmate-lambda/internal/config"
)

// NewFromSettings builds the provider named by settings.LLMProvider.
func NewFromSettings(ctx context.Context, settings config.Settings) (Provider, error) {
	switch settings.LLMProvider {
	case config.ProviderGemini:
		return NewGeminiProvider(ctx, settings.GeminiAPIKey, settings.LLMModel)
	case config.ProviderGroq, "":
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:  settings.GroqAPIKey,
			BaseURL: settings.LLMBaseURL,
			Model:   settings.LLMModel,
		}), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrInvalidProvider, settings.LLMProvider)
}
