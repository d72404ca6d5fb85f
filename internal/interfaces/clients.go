package interfaces

import "context"

// AdviceClient generates free text from a prompt (Gemini in production).
type AdviceClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
