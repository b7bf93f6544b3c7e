// Package phrasing optionally rewrites already-computed summary text in a
// friendlier tone. It never decides control flow or arithmetic: every
// figure comes from the calculation, and implementations must not change
// them.
package phrasing

import "context"

// Client rephrases a composed summary. Implementations return the input
// unchanged when they cannot improve it.
type Client interface {
	RephraseSummary(ctx context.Context, text string) (string, error)
}
