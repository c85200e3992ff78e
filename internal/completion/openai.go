package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/saulo-duarte/quizmate-lambda/internal/config"
)

const (
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "llama-3.3-70b-versatile"

	maxPayloadLog = 2048
)

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// HTTPClient defaults to a client without a timeout override.
	HTTPClient *http.Client
}

// openAIProvider speaks the OpenAI chat completions dialect, which Groq
// serves unchanged.
type openAIProvider struct {
	cfg    OpenAIConfig
	client *http.Client
}

func NewOpenAIProvider(cfg OpenAIConfig) Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGroqBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = DefaultGroqModel
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &openAIProvider{cfg: cfg, client: client}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (p *openAIProvider) Complete(ctx context.Context, system, user string) (string, error) {
	log := config.WithContext(ctx)

	messages := []chatMessage{{Role: "system", Content: system}}
	if user != "" {
		messages = append(messages, chatMessage{Role: "user", Content: user})
	}

	data, err := json.Marshal(chatRequest{Model: p.cfg.Model, Messages: messages})
	if err != nil {
		return "", &ProviderError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", &ProviderError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &ProviderError{Err: fmt.Errorf("http request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload := truncate(string(body), maxPayloadLog)
		return "", &ProviderError{
			StatusCode: resp.StatusCode,
			Payload:    payload,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &ProviderError{
			StatusCode: resp.StatusCode,
			Payload:    truncate(string(body), maxPayloadLog),
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	if decoded.Error != nil {
		return "", &ProviderError{
			StatusCode: resp.StatusCode,
			Payload:    decoded.Error.Message,
			Err:        errors.New(decoded.Error.Type),
		}
	}
	if len(decoded.Choices) == 0 {
		return "", &ProviderError{StatusCode: resp.StatusCode, Err: errors.New("no choices returned")}
	}

	log.WithField("model", p.cfg.Model).Debug("Completion received")
	return decoded.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
