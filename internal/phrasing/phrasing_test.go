package phrasing

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateClientPreservesText(t *testing.T) {
	client := NewTemplateClient()

	text := "Tax summary for 2021\n\nEstimated refund: €1391.62"
	out, err := client.RephraseSummary(context.Background(), text)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, text), "the composed text must survive unchanged")
	assert.Contains(t, out, "not tax advice")
}

func TestNewGeminiClientRequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "gemini-2.0-flash", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestTemplateClientImplementsClient(t *testing.T) {
	var _ Client = NewTemplateClient()
	var _ Client = (*GeminiClient)(nil)
}
