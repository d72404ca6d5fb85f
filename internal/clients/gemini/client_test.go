package gemini

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "第一段。"},
				{Text: ""},
				{Text: "第二段。"},
			}},
		}},
	}
	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "第一段。第二段。", text)
}

func TestExtractTextFromResponse_Empty(t *testing.T) {
	for name, resp := range map[string]*genai.GenerateContentResponse{
		"nil":           nil,
		"no candidates": {},
		"no content":    {Candidates: []*genai.Candidate{{}}},
		"no parts":      {Candidates: []*genai.Candidate{{Content: &genai.Content{}}}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := extractTextFromResponse(resp)
			assert.Error(t, err)
		})
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "  ")
	assert.Error(t, err)
}

func TestNewLimiter(t *testing.T) {
	l := newLimiter(0)
	assert.Equal(t, DefaultRateLimit, l.Burst())

	l = newLimiter(60)
	assert.Equal(t, 60, l.Burst())
	assert.InDelta(t, 1.0, float64(l.Limit()), 1e-9)
}

func TestOptions(t *testing.T) {
	c := &Client{model: DefaultModel}
	WithModel("")(c)
	assert.Equal(t, DefaultModel, c.model)
	WithModel("gemini-2.5-pro")(c)
	assert.Equal(t, "gemini-2.5-pro", c.model)
	WithTimeout(5 * time.Second)(c)
	assert.Equal(t, 5*time.Second, c.timeout)
}
