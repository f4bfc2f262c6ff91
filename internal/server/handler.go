// Package server exposes the assistant flows over HTTP and serves the web bundle.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/at-ishikawa/textsaver/internal/assistant"
	"github.com/at-ishikawa/textsaver/internal/server/dto"
)

// Assistant is the subset of assistant.Service used by Handler.
type Assistant interface {
	Configured() bool
	Suggest(ctx context.Context, text string) (assistant.SuggestResult, error)
	Ask(ctx context.Context, req assistant.AskRequest) (string, error)
	History(ctx context.Context) (assistant.History, error)
}

// Pinger reports whether the store is reachable. *sqlx.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

const (
	messageInvalidBody = "Invalid request body"
	messageNotFound    = "Not found"
	messageInternal    = "Internal server error"
)

type Handler struct {
	assistant Assistant
	db        Pinger
}

func NewHandler(assistant Assistant, db Pinger) *Handler {
	return &Handler{
		assistant: assistant,
		db:        db,
	}
}

func (h *Handler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	dbOK := false
	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			slog.WarnContext(ctx, "database ping failed", "error", err)
		} else {
			dbOK = true
		}
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		OK:     true,
		DB:     dbOK,
		OpenAI: h.assistant.Configured(),
	})
}

func (h *Handler) History(c *gin.Context) {
	history, err := h.assistant.History(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToHistoryResponse(history))
}

func (h *Handler) Suggest(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SuggestRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.assistant.Suggest(ctx, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSuggestResponse(result))
}

func (h *Handler) Ask(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AskRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.assistant.Ask(ctx, assistant.AskRequest{
		Text:          req.Text,
		SelectedWords: req.SelectedWords,
		SuggestID:     req.SuggestID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAskResponse(response))
}

// bindJSON decodes the request body into req. An empty body leaves req zero-valued
// so the missing text is reported by the assistant.
func bindJSON(c *gin.Context, req any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		slog.WarnContext(c.Request.Context(), "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(messageInvalidBody))
		return false
	}
	return true
}

func writeError(c *gin.Context, err error) {
	var (
		validationErr *assistant.ValidationError
		configErr     *assistant.ConfigurationError
		completionErr *assistant.CompletionError
		storageErr    *assistant.StorageError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(validationErr.Error()))
	case errors.As(err, &configErr):
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(configErr.Error()))
	case errors.As(err, &completionErr):
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(completionErr.Error()))
	case errors.As(err, &storageErr):
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(storageErr.Error()))
	default:
		slog.ErrorContext(c.Request.Context(), "unexpected handler error", "error", err)
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(messageInternal))
	}
}
