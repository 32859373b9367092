package domain

import "context"

// GenerateRequest is a single text-completion request. System carries
// instructions that apply to the whole turn; Prompt is the task itself.
type GenerateRequest struct {
	Prompt      string
	System      string
	Temperature float64
	MaxTokens   int
}

// Generator is the interface for text-generation backends.
type Generator interface {
	// Generate returns the complete generated text for the request.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	// Name returns the backend's identifier (e.g., "ollama").
	Name() string
}
