// Package assistant implements the suggest, ask and history flows on top of
// a completion client and the activity store.
package assistant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/textsaver/internal/activity"
	"github.com/at-ishikawa/textsaver/internal/config"
	"github.com/at-ishikawa/textsaver/internal/inference"
)

type Service struct {
	client      inference.Client
	repository  activity.Repository
	model       string
	maxTokens   int
	temperature float64
}

// NewService creates a Service. A nil client leaves the service unconfigured;
// suggest and ask then fail with a ConfigurationError.
func NewService(client inference.Client, repository activity.Repository, cfg config.OpenAIConfig) *Service {
	return &Service{
		client:      client,
		repository:  repository,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// Configured reports whether a completion client is available.
func (s *Service) Configured() bool {
	return s.client != nil
}

type SuggestResult struct {
	ID    int64
	Words []string
}

type AskRequest struct {
	Text          string
	SelectedWords []string
	// SuggestID selects the suggest row that receives SelectedWords.
	// When nil the most recently created row is used.
	SuggestID *int64
}

type History struct {
	Asks     []activity.Ask
	Suggests []activity.Suggest
}

func (s *Service) validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Message: MessageTextRequired}
	}
	if !s.Configured() {
		return &ConfigurationError{Message: MessageMissingAPIKey}
	}
	return nil
}

// Suggest asks the provider for keywords related to text and records the exchange.
func (s *Service) Suggest(ctx context.Context, text string) (SuggestResult, error) {
	if err := s.validate(text); err != nil {
		return SuggestResult{}, err
	}

	rawWords, err := s.client.Complete(ctx, inference.CompletionRequest{
		Prompt:      suggestPrompt(text),
		Model:       s.model,
		MaxTokens:   suggestMaxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		slog.ErrorContext(ctx, "OpenAI API error", "flow", "suggest", "error", err)
		return SuggestResult{}, &CompletionError{Message: MessageSuggestFailed, Err: err}
	}
	words := ParseWords(rawWords)

	id, err := s.repository.InsertSuggest(ctx, text, rawWords)
	if err != nil {
		slog.ErrorContext(ctx, "Database error", "flow", "suggest", "error", err)
		return SuggestResult{}, &StorageError{Message: MessageSaveFailed, Err: err}
	}
	return SuggestResult{ID: id, Words: words}, nil
}

// Ask asks the provider for a free-form response and records the exchange.
// Selected words are written back to a suggest row; failures there are only logged.
func (s *Service) Ask(ctx context.Context, req AskRequest) (string, error) {
	if err := s.validate(req.Text); err != nil {
		return "", err
	}

	response, err := s.client.Complete(ctx, inference.CompletionRequest{
		Prompt:      askPrompt(req.Text),
		Model:       s.model,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		slog.ErrorContext(ctx, "OpenAI API error", "flow", "ask", "error", err)
		return "", &CompletionError{Message: MessageAskFailed, Err: err}
	}

	if _, err := s.repository.InsertAsk(ctx, req.Text, response); err != nil {
		slog.ErrorContext(ctx, "Database error", "flow", "ask", "error", err)
		return "", &StorageError{Message: MessageSaveFailed, Err: err}
	}

	if len(req.SelectedWords) > 0 {
		s.recordSelection(ctx, req.SuggestID, strings.Join(req.SelectedWords, ", "))
	}
	return response, nil
}

func (s *Service) recordSelection(ctx context.Context, suggestID *int64, selectedWords string) {
	var err error
	if suggestID != nil {
		err = s.repository.UpdateSuggestSelection(ctx, *suggestID, selectedWords)
	} else {
		err = s.repository.UpdateLatestSuggestSelection(ctx, selectedWords)
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed to update selected words", "error", err)
	}
}

// History returns the most recent asks and suggests, newest first.
func (s *Service) History(ctx context.Context) (History, error) {
	asks, err := s.repository.RecentAsks(ctx, activity.DefaultHistoryLimit)
	if err != nil {
		slog.ErrorContext(ctx, "Database error", "table", activity.TableAsks, "error", err)
		return History{}, &StorageError{Err: err}
	}
	suggests, err := s.repository.RecentSuggests(ctx, activity.DefaultHistoryLimit)
	if err != nil {
		slog.ErrorContext(ctx, "Database error", "table", activity.TableSuggests, "error", err)
		return History{}, &StorageError{Err: err}
	}
	return History{Asks: asks, Suggests: suggests}, nil
}
