package activity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/textsaver/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/activity/mock_repository.go -package=mock_activity

// ErrSuggestNotFound is returned when a selection targets a suggest row that does not exist.
var ErrSuggestNotFound = errors.New("suggest not found")

// Repository defines operations for the asks and suggests tables.
type Repository interface {
	InitSchema(ctx context.Context) error
	AddSelectedWordsColumn(ctx context.Context) (bool, error)
	InsertAsk(ctx context.Context, userPrompt, response string) (int64, error)
	InsertSuggest(ctx context.Context, userPrompt, rawWords string) (int64, error)
	UpdateLatestSuggestSelection(ctx context.Context, selectedWords string) error
	UpdateSuggestSelection(ctx context.Context, id int64, selectedWords string) error
	RecentAsks(ctx context.Context, limit int) ([]Ask, error)
	RecentSuggests(ctx context.Context, limit int) ([]Suggest, error)
	Columns(ctx context.Context, table string) ([]Column, error)
}

// DBRepository implements Repository on top of sqlx, for sqlite and MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// InsertAsk stores a question with its answer and returns the new row id.
func (r *DBRepository) InsertAsk(ctx context.Context, userPrompt, response string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO asks (user_prompt, openai_response) VALUES (?, ?)",
		userPrompt, response,
	)
	if err != nil {
		return 0, fmt.Errorf("insert ask: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get inserted ask id: %w", err)
	}
	return id, nil
}

// InsertSuggest stores a suggestion exchange with no selection yet and returns the new row id.
func (r *DBRepository) InsertSuggest(ctx context.Context, userPrompt, rawWords string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO suggests (user_prompt, openai_words, selected_words) VALUES (?, ?, NULL)",
		userPrompt, rawWords,
	)
	if err != nil {
		return 0, fmt.Errorf("insert suggest: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get inserted suggest id: %w", err)
	}
	return id, nil
}

// UpdateLatestSuggestSelection writes selectedWords to the suggest row with the highest id.
// It does nothing when the table is empty.
func (r *DBRepository) UpdateLatestSuggestSelection(ctx context.Context, selectedWords string) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var latestID sql.NullInt64
		if err := tx.GetContext(ctx, &latestID, "SELECT MAX(id) FROM suggests"); err != nil {
			return fmt.Errorf("find latest suggest: %w", err)
		}
		if !latestID.Valid {
			return nil
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE suggests SET selected_words = ? WHERE id = ?",
			selectedWords, latestID.Int64,
		); err != nil {
			return fmt.Errorf("update suggest %d selection: %w", latestID.Int64, err)
		}
		return nil
	})
}

// UpdateSuggestSelection writes selectedWords to the suggest row with the given id.
func (r *DBRepository) UpdateSuggestSelection(ctx context.Context, id int64, selectedWords string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE suggests SET selected_words = ? WHERE id = ?",
		selectedWords, id,
	)
	if err != nil {
		return fmt.Errorf("update suggest %d selection: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update suggest %d selection: %w", id, ErrSuggestNotFound)
	}
	return nil
}

// RecentAsks returns asks newest first. A limit of zero or less returns every row.
func (r *DBRepository) RecentAsks(ctx context.Context, limit int) ([]Ask, error) {
	query, args := recentQuery("SELECT id, user_prompt, openai_response, created_at FROM asks", limit)
	asks := []Ask{}
	if err := r.db.SelectContext(ctx, &asks, query, args...); err != nil {
		return nil, fmt.Errorf("load recent asks: %w", err)
	}
	return asks, nil
}

// RecentSuggests returns suggests newest first. A limit of zero or less returns every row.
func (r *DBRepository) RecentSuggests(ctx context.Context, limit int) ([]Suggest, error) {
	query, args := recentQuery("SELECT id, user_prompt, openai_words, selected_words, created_at FROM suggests", limit)
	suggests := []Suggest{}
	if err := r.db.SelectContext(ctx, &suggests, query, args...); err != nil {
		return nil, fmt.Errorf("load recent suggests: %w", err)
	}
	return suggests, nil
}

// recentQuery orders by creation time; rows created within the same second
// fall back to insertion order.
func recentQuery(selectClause string, limit int) (string, []any) {
	query := selectClause + " ORDER BY created_at DESC, id DESC"
	if limit <= 0 {
		return query, nil
	}
	return query + " LIMIT ?", []any{limit}
}
