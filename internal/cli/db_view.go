package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/textsaver/internal/activity"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

const createdLayout = "2006-01-02 15:04:05"

// DBViewer prints every stored ask and suggest, newest first.
type DBViewer struct {
	repository   activity.Repository
	stdoutWriter io.Writer
	heading      *color.Color
	label        *color.Color
}

func NewDBViewer(repository activity.Repository, stdoutWriter io.Writer) *DBViewer {
	return &DBViewer{
		repository:   repository,
		stdoutWriter: stdoutWriter,
		heading:      color.New(color.Bold),
		label:        color.New(color.FgCyan),
	}
}

type dump struct {
	Asks     []activity.Ask     `json:"asks" yaml:"asks"`
	Suggests []activity.Suggest `json:"suggests" yaml:"suggests"`
}

func (v *DBViewer) View(ctx context.Context, format string) error {
	asks, err := v.repository.RecentAsks(ctx, 0)
	if err != nil {
		return fmt.Errorf("repository.RecentAsks() > %w", err)
	}
	suggests, err := v.repository.RecentSuggests(ctx, 0)
	if err != nil {
		return fmt.Errorf("repository.RecentSuggests() > %w", err)
	}

	switch format {
	case FormatText, "":
		return v.writeText(asks, suggests)
	case FormatYAML:
		encoder := yaml.NewEncoder(v.stdoutWriter)
		encoder.SetIndent(2)
		if err := encoder.Encode(dump{Asks: asks, Suggests: suggests}); err != nil {
			return fmt.Errorf("encoder.Encode() > %w", err)
		}
		return encoder.Close()
	case FormatJSON:
		encoder := json.NewEncoder(v.stdoutWriter)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(dump{Asks: asks, Suggests: suggests}); err != nil {
			return fmt.Errorf("encoder.Encode() > %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q: use %s, %s or %s", format, FormatText, FormatYAML, FormatJSON)
	}
}

func (v *DBViewer) writeText(asks []activity.Ask, suggests []activity.Suggest) error {
	w := &errWriter{w: v.stdoutWriter}

	w.println(v.heading.Sprint("=== DATABASE CONTENTS ==="))
	w.println()
	w.println(v.heading.Sprint("--- ASKS TABLE ---"))
	if len(asks) == 0 {
		w.println("No asks data yet")
	}
	for i, ask := range asks {
		w.println()
		w.println(v.label.Sprintf("Ask #%d:", i+1))
		w.printf("ID: %d\n", ask.ID)
		w.printf("User Prompt: %s\n", ask.UserPrompt)
		w.printf("OpenAI Response: %s\n", ask.OpenAIResponse)
		w.printf("Created: %s\n", ask.CreatedAt.Format(createdLayout))
		w.println("---")
	}

	w.println()
	w.println(v.heading.Sprint("--- SUGGESTS TABLE ---"))
	if len(suggests) == 0 {
		w.println("No suggests data yet")
	}
	for i, suggest := range suggests {
		selected := "None selected"
		if suggest.SelectedWords != nil && *suggest.SelectedWords != "" {
			selected = *suggest.SelectedWords
		}
		w.println()
		w.println(v.label.Sprintf("Suggest #%d:", i+1))
		w.printf("ID: %d\n", suggest.ID)
		w.printf("User Prompt: %s\n", suggest.UserPrompt)
		w.printf("OpenAI Words: %s\n", suggest.OpenAIWords)
		w.printf("Selected Words: %s\n", selected)
		w.printf("Created: %s\n", suggest.CreatedAt.Format(createdLayout))
		w.println("---")
	}
	return w.err
}

// errWriter keeps the first write error so callers check it once.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	if _, err := fmt.Fprintf(ew.w, format, args...); err != nil {
		ew.err = fmt.Errorf("failed to write to stdout: %w", err)
	}
}

func (ew *errWriter) println(args ...any) {
	if ew.err != nil {
		return
	}
	if _, err := fmt.Fprintln(ew.w, args...); err != nil {
		ew.err = fmt.Errorf("failed to write to stdout: %w", err)
	}
}
