package ai

import "context"

// Provider is a single-round-trip generative text completion.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
