package ai

import "context"

// Provider sends a fully composed prompt to a text-generation backend and
// returns the raw generated text.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
