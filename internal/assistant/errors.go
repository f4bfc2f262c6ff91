package assistant

// Messages returned to HTTP clients. Provider and store details stay in the server log.
const (
	MessageTextRequired  = "Text is required"
	MessageMissingAPIKey = "OpenAI API key is not configured on the server."
	MessageSuggestFailed = "Failed to generate suggestions. Please check your OpenAI API key."
	MessageAskFailed     = "Failed to get AI response. Please check your OpenAI API key."
	MessageSaveFailed    = "Failed to save to database"
	MessageSuggestSaved  = "Suggestion saved successfully"
	MessageAskSaved      = "Response saved successfully"
)

// ValidationError means the request input is missing or empty.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError means the server lacks a dependency needed to serve the request.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// CompletionError wraps a completion provider failure behind a generic message.
type CompletionError struct {
	Message string
	Err     error
}

func (e *CompletionError) Error() string {
	return e.Message
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// StorageError wraps a failed read or write against the store.
type StorageError struct {
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
