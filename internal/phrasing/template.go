package phrasing

import "context"

// TemplateClient is the deterministic default: it wraps the composed
// summary in a fixed conversational frame and changes nothing else. It is
// also the test double for the Gemini client.
type TemplateClient struct{}

// NewTemplateClient returns the deterministic phrasing client.
func NewTemplateClient() *TemplateClient {
	return &TemplateClient{}
}

// RephraseSummary returns the text with a fixed closing line appended.
func (c *TemplateClient) RephraseSummary(_ context.Context, text string) (string, error) {
	return text + "\nThis is an estimate, not tax advice.", nil
}
