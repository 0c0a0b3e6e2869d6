package extraction

import "context"

// Generator produces a complete text response for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
