// README: Model interface shared by all generation providers.
package ai

import (
	"context"
)

// Model defines the contract for invoking a generative model with a finished prompt.
// Implementations apply the fixed decoding configuration and safety policy and make exactly one
// attempt per call.
type Model interface {
	// Generate sends prompt to the model and returns its raw text reply.
	// A safety block is reported as itinerary.ErrContentBlocked, any other failure as
	// itinerary.ErrProvider.
	Generate(ctx context.Context, prompt string) (*Reply, error)

	// Provider names the backend ("gemini", "openai").
	Provider() string

	// ModelName is the backend model identifier.
	ModelName() string
}
