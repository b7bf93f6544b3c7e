package phrasing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

const rephrasePrompt = `You are a friendly German tax assistant. Rephrase the
following tax summary in a warm, professional tone. Keep every figure,
year, and category exactly as given. Do not add numbers, advice, or
questions that are not in the text.

%s`

// GeminiClient rephrases summaries through the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    *logrus.Logger
}

// NewGeminiClient creates a Gemini-backed phrasing client.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, logger *logrus.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	if logger == nil {
		logger = logrus.New()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  client.GenerativeModel(modelName),
		log:    logger,
	}, nil
}

// RephraseSummary sends the composed text to Gemini. On any API problem
// the original text is returned along with the error, so callers can fall
// back without losing the summary.
func (c *GeminiClient) RephraseSummary(ctx context.Context, text string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(fmt.Sprintf(rephrasePrompt, text)))
	if err != nil {
		c.log.WithError(err).Warn("Gemini rephrasing failed, using composed text")
		return text, err
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		break
	}

	rephrased := strings.TrimSpace(b.String())
	if rephrased == "" {
		return text, nil
	}
	return rephrased, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
