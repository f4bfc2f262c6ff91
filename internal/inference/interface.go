package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI text generation
type Client interface {
	Complete(ctx context.Context, params CompletionRequest) (string, error)
}

// CompletionRequest holds a single-turn prompt and its generation parameters
type CompletionRequest struct {
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
}

const (
	DefaultMaxRetryAttempts = 0
)
