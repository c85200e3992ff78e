package completion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	resp *genai.GenerateContentResponse
	err  error

	model    string
	contents []*genai.Content
	cfg      *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.cfg = cfg
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func TestGeminiProvider_ChatUsesSystemInstruction(t *testing.T) {
	fake := &fakeGenerator{resp: textResponse("  Mitochondria make ATP. ")}
	p := newGeminiProvider(fake, "")

	reply, err := p.Complete(context.Background(), "persona", "What do mitochondria do?")
	require.NoError(t, err)
	assert.Equal(t, "Mitochondria make ATP.", reply)

	assert.Equal(t, DefaultGeminiModel, fake.model)
	require.NotNil(t, fake.cfg)
	require.NotNil(t, fake.cfg.SystemInstruction)
	assert.Equal(t, "persona", fake.cfg.SystemInstruction.Parts[0].Text)
	require.Len(t, fake.contents, 1)
	assert.Equal(t, "What do mitochondria do?", fake.contents[0].Parts[0].Text)
}

func TestGeminiProvider_SystemOnly(t *testing.T) {
	fake := &fakeGenerator{resp: textResponse("1) Question")}
	p := newGeminiProvider(fake, "gemini-custom")

	_, err := p.Complete(context.Background(), "quiz instruction", "")
	require.NoError(t, err)
	assert.Equal(t, "gemini-custom", fake.model)
	assert.Nil(t, fake.cfg)
	assert.Equal(t, "quiz instruction", fake.contents[0].Parts[0].Text)
}

func TestGeminiProvider_Errors(t *testing.T) {
	t.Run("UpstreamError", func(t *testing.T) {
		p := newGeminiProvider(&fakeGenerator{err: errors.New("quota exceeded")}, "")

		_, err := p.Complete(context.Background(), "s", "u")
		var perr *ProviderError
		require.True(t, errors.As(err, &perr))
		assert.Contains(t, perr.Payload, "quota exceeded")
	})

	t.Run("EmptyText", func(t *testing.T) {
		p := newGeminiProvider(&fakeGenerator{resp: textResponse("   ")}, "")

		_, err := p.Complete(context.Background(), "s", "u")
		var perr *ProviderError
		require.True(t, errors.As(err, &perr))
	})
}
