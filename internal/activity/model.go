// Package activity stores the ask and suggest exchanges shown as recent activity.
package activity

import "github.com/at-ishikawa/textsaver/internal/database"

// Ask is one question and the generated answer. Rows are never updated.
type Ask struct {
	ID             int64              `db:"id" json:"id" yaml:"id"`
	UserPrompt     string             `db:"user_prompt" json:"user_prompt" yaml:"user_prompt"`
	OpenAIResponse string             `db:"openai_response" json:"openai_response" yaml:"openai_response"`
	CreatedAt      database.Timestamp `db:"created_at" json:"created_at" yaml:"created_at"`
}

// Suggest is one keyword suggestion exchange.
// SelectedWords stays nil until a later ask records which words were picked.
type Suggest struct {
	ID            int64              `db:"id" json:"id" yaml:"id"`
	UserPrompt    string             `db:"user_prompt" json:"user_prompt" yaml:"user_prompt"`
	OpenAIWords   string             `db:"openai_words" json:"openai_words" yaml:"openai_words"`
	SelectedWords *string            `db:"selected_words" json:"selected_words" yaml:"selected_words"`
	CreatedAt     database.Timestamp `db:"created_at" json:"created_at" yaml:"created_at"`
}

// Column describes one table column as reported by the store.
type Column struct {
	Position     int     `db:"cid"`
	Name         string  `db:"name"`
	Type         string  `db:"type"`
	NotNull      bool    `db:"notnull"`
	DefaultValue *string `db:"dflt_value"`
	PrimaryKey   bool    `db:"pk"`
}

const (
	TableAsks     = "asks"
	TableSuggests = "suggests"

	// DefaultHistoryLimit is the number of rows returned per table for recent activity.
	DefaultHistoryLimit = 10
)
