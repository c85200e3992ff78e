package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/saulo-duarte/quizmate-lambda/internal/config"
)

const DefaultGeminiModel = "gemini-2.0-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiProvider struct {
	models contentGenerator
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newGeminiProvider(client.Models, model), nil
}

func newGeminiProvider(models contentGenerator, model string) *geminiProvider {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &geminiProvider{models: models, model: model}
}

func (p *geminiProvider) Complete(ctx context.Context, system, user string) (string, error) {
	log := config.WithContext(ctx)

	contents := genai.Text(system)
	var cfg *genai.GenerateContentConfig
	if user != "" {
		contents = genai.Text(user)
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	result, err := p.models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		perr := &ProviderError{Err: err, Payload: err.Error()}
		var apiErr *genai.APIError
		if errors.As(err, &apiErr) {
			perr.StatusCode = apiErr.Code
			perr.Payload = apiErr.Message
		}
		return "", perr
	}

	raw := strings.TrimSpace(result.Text())
	if raw == "" {
		return "", &ProviderError{Err: errors.New("empty response from model")}
	}

	log.WithField("model", p.model).Debug("Completion received")
	return raw, nil
}
