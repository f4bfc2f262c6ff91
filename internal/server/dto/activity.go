package dto

import (
	"github.com/at-ishikawa/textsaver/internal/activity"
	"github.com/at-ishikawa/textsaver/internal/assistant"
)

type SuggestRequest struct {
	Text string `json:"text"`
}

type AskRequest struct {
	Text          string   `json:"text"`
	SelectedWords []string `json:"selectedWords"`
	SuggestID     *int64   `json:"suggestId"`
}

type SuggestResponse struct {
	Success bool     `json:"success"`
	Words   []string `json:"words"`
	ID      int64    `json:"id"`
	Message string   `json:"message"`
}

type AskResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Message  string `json:"message"`
}

type History struct {
	Asks     []activity.Ask     `json:"asks"`
	Suggests []activity.Suggest `json:"suggests"`
}

type HistoryResponse struct {
	Success bool    `json:"success"`
	History History `json:"history"`
}

type HealthResponse struct {
	OK     bool `json:"ok"`
	DB     bool `json:"db"`
	OpenAI bool `json:"openai"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func ToSuggestResponse(result assistant.SuggestResult) SuggestResponse {
	words := result.Words
	if words == nil {
		words = []string{}
	}
	return SuggestResponse{
		Success: true,
		Words:   words,
		ID:      result.ID,
		Message: assistant.MessageSuggestSaved,
	}
}

func ToAskResponse(response string) AskResponse {
	return AskResponse{
		Success:  true,
		Response: response,
		Message:  assistant.MessageAskSaved,
	}
}

// ToHistoryResponse renders empty tables as empty arrays rather than null.
func ToHistoryResponse(history assistant.History) HistoryResponse {
	asks := history.Asks
	if asks == nil {
		asks = []activity.Ask{}
	}
	suggests := history.Suggests
	if suggests == nil {
		suggests = []activity.Suggest{}
	}
	return HistoryResponse{
		Success: true,
		History: History{Asks: asks, Suggests: suggests},
	}
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}
