package activity

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"sort"

	"github.com/at-ishikawa/textsaver/internal/config"
	"github.com/at-ishikawa/textsaver/schemas"
)

var duplicateColumnPattern = regexp.MustCompile(`(?i)duplicate column name`)

// InitSchema creates both tables when they are missing and adds the
// selected_words column to suggests tables created before it existed.
// Calling it repeatedly is safe. A failure to add the column is only logged.
func (r *DBRepository) InitSchema(ctx context.Context) error {
	statements, err := schemaStatements(r.db.DriverName())
	if err != nil {
		return err
	}
	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt.sql); err != nil {
			return fmt.Errorf("apply %s: %w", stmt.name, err)
		}
	}

	if _, err := r.AddSelectedWordsColumn(ctx); err != nil {
		slog.WarnContext(ctx, "ALTER TABLE suggests failed", "error", err)
	}
	return nil
}

// AddSelectedWordsColumn adds suggests.selected_words.
// It reports false without an error when the column already exists.
func (r *DBRepository) AddSelectedWordsColumn(ctx context.Context) (bool, error) {
	if _, err := r.db.ExecContext(ctx, "ALTER TABLE suggests ADD COLUMN selected_words TEXT"); err != nil {
		if duplicateColumnPattern.MatchString(err.Error()) {
			return false, nil
		}
		return false, fmt.Errorf("add suggests.selected_words: %w", err)
	}
	return true, nil
}

// Columns lists the columns of asks or suggests in table order.
func (r *DBRepository) Columns(ctx context.Context, table string) ([]Column, error) {
	if table != TableAsks && table != TableSuggests {
		return nil, fmt.Errorf("unknown table %q", table)
	}

	var (
		query string
		args  []any
	)
	switch r.db.DriverName() {
	case config.DriverMySQL:
		query = `SELECT ORDINAL_POSITION - 1 AS cid, COLUMN_NAME AS name, COLUMN_TYPE AS type,
  IS_NULLABLE = 'NO' AS notnull, COLUMN_DEFAULT AS dflt_value, COLUMN_KEY = 'PRI' AS pk
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?
ORDER BY ORDINAL_POSITION`
		args = []any{table}
	default:
		query = fmt.Sprintf("PRAGMA table_info(%s)", table)
	}

	var columns []Column
	if err := r.db.SelectContext(ctx, &columns, query, args...); err != nil {
		return nil, fmt.Errorf("load %s columns: %w", table, err)
	}
	return columns, nil
}

type schemaStatement struct {
	name string
	sql  string
}

func schemaStatements(driverName string) ([]schemaStatement, error) {
	dialect := config.DriverSQLite
	if driverName == config.DriverMySQL {
		dialect = config.DriverMySQL
	}

	names, err := fs.Glob(schemas.Migrations, path.Join("migrations", dialect, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("fs.Glob() > %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no schema files for %s", dialect)
	}
	sort.Strings(names)

	statements := make([]schemaStatement, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(schemas.Migrations, name)
		if err != nil {
			return nil, fmt.Errorf("fs.ReadFile(%s) > %w", name, err)
		}
		statements = append(statements, schemaStatement{name: path.Base(name), sql: string(content)})
	}
	return statements, nil
}
