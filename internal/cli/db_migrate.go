package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/textsaver/internal/activity"
)

// SchemaMigrator brings an existing store up to date and prints the resulting columns.
type SchemaMigrator struct {
	repository   activity.Repository
	stdoutWriter io.Writer
	heading      *color.Color
	success      *color.Color
}

func NewSchemaMigrator(repository activity.Repository, stdoutWriter io.Writer) *SchemaMigrator {
	return &SchemaMigrator{
		repository:   repository,
		stdoutWriter: stdoutWriter,
		heading:      color.New(color.Bold),
		success:      color.New(color.FgGreen),
	}
}

func (m *SchemaMigrator) Migrate(ctx context.Context) error {
	w := &errWriter{w: m.stdoutWriter}
	w.println("Updating database schema...")

	existing, err := m.repository.Columns(ctx, activity.TableSuggests)
	if err != nil {
		return fmt.Errorf("repository.Columns() > %w", err)
	}

	if len(existing) == 0 {
		if err := m.repository.InitSchema(ctx); err != nil {
			return fmt.Errorf("repository.InitSchema() > %w", err)
		}
		w.println(m.success.Sprintf("Created %s and %s tables", activity.TableAsks, activity.TableSuggests))
	} else {
		added, err := m.repository.AddSelectedWordsColumn(ctx)
		if err != nil {
			return fmt.Errorf("repository.AddSelectedWordsColumn() > %w", err)
		}
		if added {
			w.println(m.success.Sprint("Added selected_words column to suggests table"))
		} else {
			w.println("Column selected_words already exists")
		}
	}

	w.println()
	w.println(m.heading.Sprint("=== UPDATED DATABASE SCHEMA ==="))
	for i, table := range []string{activity.TableSuggests, activity.TableAsks} {
		columns, err := m.repository.Columns(ctx, table)
		if err != nil {
			return fmt.Errorf("repository.Columns(%s) > %w", table, err)
		}
		if i > 0 {
			w.println()
		}
		w.println(m.heading.Sprintf("--- %s TABLE STRUCTURE ---", strings.ToUpper(table)))
		for _, column := range columns {
			w.printf("Column: %s (%s)\n", column.Name, column.Type)
		}
	}
	return w.err
}
