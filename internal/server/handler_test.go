package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/textsaver/internal/activity"
	"github.com/at-ishikawa/textsaver/internal/assistant"
	"github.com/at-ishikawa/textsaver/internal/config"
	"github.com/at-ishikawa/textsaver/internal/inference"
	mock_activity "github.com/at-ishikawa/textsaver/internal/mocks/activity"
	mock_inference "github.com/at-ishikawa/textsaver/internal/mocks/inference"
)

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error {
	return p.err
}

var testOpenAIConfig = config.OpenAIConfig{
	Model:       "gpt-3.5-turbo",
	MaxTokens:   500,
	Temperature: 0.7,
}

func newTestRouter(t *testing.T, client inference.Client, repo activity.Repository, db Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	service := assistant.NewService(client, repo, testOpenAIConfig)
	return NewRouter(RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}}, NewHandler(service, db))
}

func doRequest(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

func TestHandler_Suggest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMocks func(client *mock_inference.MockClient, repo *mock_activity.MockRepository)
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name: "returns parsed words",
			body: `{"text":"hello world"}`,
			setupMocks: func(client *mock_inference.MockClient, repo *mock_activity.MockRepository) {
				client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("alpha, beta, gamma", nil)
				repo.EXPECT().InsertSuggest(gomock.Any(), "hello world", "alpha, beta, gamma").Return(int64(1), nil)
			},
			wantStatus: http.StatusOK,
			wantBody: map[string]any{
				"success": true,
				"words":   []any{"alpha", "beta", "gamma"},
				"id":      float64(1),
				"message": "Suggestion saved successfully",
			},
		},
		{
			name:       "missing text",
			body:       `{}`,
			setupMocks: func(client *mock_inference.MockClient, repo *mock_activity.MockRepository) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"success": false, "error": "Text is required"},
		},
		{
			name:       "empty body",
			body:       "",
			setupMocks: func(client *mock_inference.MockClient, repo *mock_activity.MockRepository) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"success": false, "error": "Text is required"},
		},
		{
			name:       "malformed body",
			body:       `{"text":`,
			setupMocks: func(client *mock_inference.MockClient, repo *mock_activity.MockRepository) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"success": false, "error": "Invalid request body"},
		},
		{
			name: "provider failure",
			body: `{"text":"hello world"}`,
			setupMocks: func(client *mock_inference.MockClient, repo *mock_activity.MockRepository) {
				client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("response error 401: bad key"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody: map[string]any{
				"success": false,
				"error":   "Failed to generate suggestions. Please check your OpenAI API key.",
			},
		},
		{
			name: "storage failure",
			body: `{"text":"hello world"}`,
			setupMocks: func(client *mock_inference.MockClient, repo *mock_activity.MockRepository) {
				client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("alpha", nil)
				repo.EXPECT().InsertSuggest(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("disk full"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"success": false, "error": "Failed to save to database"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock_inference.NewMockClient(ctrl)
			repo := mock_activity.NewMockRepository(ctrl)
			tt.setupMocks(client, repo)

			w := doRequest(newTestRouter(t, client, repo, fakePinger{}), http.MethodPost, "/api/suggest", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, decodeBody(t, w))
		})
	}
}

func TestHandler_Ask(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMocks func(client *mock_inference.MockClient, repo *mock_activity.MockRepository)
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name: "records selection on the latest suggestion",
			body: `{"text":"hi","selectedWords":["alpha","beta"]}`,
			setupMocks: func(client *mock_inference.MockClient, repo *mock_activity.MockRepository) {
				client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("Hello there", nil)
				repo.EXPECT().InsertAsk(gomock.Any(), "hi", "Hello there").Return(int64(1), nil)
				repo.EXPECT().UpdateLatestSuggestSelection(gomock.Any(), "alpha, beta").Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody: map[string]any{
				"success":  true,
				"response": "Hello there",
				"message":  "Response saved successfully",
			},
		},
		{
			name: "records selection on the referenced suggestion",
			body: `{"text":"hi","selectedWords":["alpha"],"suggestId":4}`,
			setupMocks: func(client *mock_inference.MockClient, repo *mock_activity.MockRepository) {
				client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("Hello there", nil)
				repo.EXPECT().InsertAsk(gomock.Any(), "hi", "Hello there").Return(int64(1), nil)
				repo.EXPECT().UpdateSuggestSelection(gomock.Any(), int64(4), "alpha").Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody: map[string]any{
				"success":  true,
				"response": "Hello there",
				"message":  "Response saved successfully",
			},
		},
		{
			name:       "missing text",
			body:       `{"selectedWords":["alpha"]}`,
			setupMocks: func(client *mock_inference.MockClient, repo *mock_activity.MockRepository) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"success": false, "error": "Text is required"},
		},
		{
			name: "provider failure",
			body: `{"text":"hi"}`,
			setupMocks: func(client *mock_inference.MockClient, repo *mock_activity.MockRepository) {
				client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody: map[string]any{
				"success": false,
				"error":   "Failed to get AI response. Please check your OpenAI API key.",
			},
		},
		{
			name: "storage failure",
			body: `{"text":"hi"}`,
			setupMocks: func(client *mock_inference.MockClient, repo *mock_activity.MockRepository) {
				client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("Hello there", nil)
				repo.EXPECT().InsertAsk(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("disk full"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"success": false, "error": "Failed to save to database"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock_inference.NewMockClient(ctrl)
			repo := mock_activity.NewMockRepository(ctrl)
			tt.setupMocks(client, repo)

			w := doRequest(newTestRouter(t, client, repo, fakePinger{}), http.MethodPost, "/api/ask", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, decodeBody(t, w))
		})
	}
}

func TestHandler_Unconfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_activity.NewMockRepository(ctrl)
	router := newTestRouter(t, nil, repo, fakePinger{})

	for _, target := range []string{"/api/suggest", "/api/ask"} {
		w := doRequest(router, http.MethodPost, target, `{"text":"hello"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code, target)
		assert.Equal(t, map[string]any{
			"success": false,
			"error":   "OpenAI API key is not configured on the server.",
		}, decodeBody(t, w), target)
	}
}

func TestHandler_History(t *testing.T) {
	selected := "alpha, beta"

	tests := []struct {
		name       string
		setupMocks func(repo *mock_activity.MockRepository)
		wantStatus int
		wantBody   string
	}{
		{
			name: "returns both tables",
			setupMocks: func(repo *mock_activity.MockRepository) {
				repo.EXPECT().RecentAsks(gomock.Any(), 10).Return([]activity.Ask{
					{ID: 2, UserPrompt: "hi", OpenAIResponse: "Hello there"},
				}, nil)
				repo.EXPECT().RecentSuggests(gomock.Any(), 10).Return([]activity.Suggest{
					{ID: 1, UserPrompt: "hello world", OpenAIWords: "alpha, beta, gamma", SelectedWords: &selected},
					{ID: 0, UserPrompt: "first", OpenAIWords: "delta"},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody: `{"success":true,"history":{
				"asks":[{"id":2,"user_prompt":"hi","openai_response":"Hello there","created_at":"0001-01-01T00:00:00Z"}],
				"suggests":[
					{"id":1,"user_prompt":"hello world","openai_words":"alpha, beta, gamma","selected_words":"alpha, beta","created_at":"0001-01-01T00:00:00Z"},
					{"id":0,"user_prompt":"first","openai_words":"delta","selected_words":null,"created_at":"0001-01-01T00:00:00Z"}
				]}}`,
		},
		{
			name: "empty tables render as arrays",
			setupMocks: func(repo *mock_activity.MockRepository) {
				repo.EXPECT().RecentAsks(gomock.Any(), 10).Return(nil, nil)
				repo.EXPECT().RecentSuggests(gomock.Any(), 10).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"history":{"asks":[],"suggests":[]}}`,
		},
		{
			name: "read failure returns the table error",
			setupMocks: func(repo *mock_activity.MockRepository) {
				repo.EXPECT().RecentAsks(gomock.Any(), 10).Return(nil, errors.New("load recent asks: no such table: asks"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"error":"load recent asks: no such table: asks"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_activity.NewMockRepository(ctrl)
			tt.setupMocks(repo)

			w := doRequest(newTestRouter(t, nil, repo, fakePinger{}), http.MethodGet, "/api/history", "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestHandler_Health(t *testing.T) {
	tests := []struct {
		name     string
		client   bool
		db       Pinger
		wantBody map[string]any
	}{
		{
			name:     "all dependencies available",
			client:   true,
			db:       fakePinger{},
			wantBody: map[string]any{"ok": true, "db": true, "openai": true},
		},
		{
			name:     "database unreachable",
			client:   true,
			db:       fakePinger{err: errors.New("sql: database is closed")},
			wantBody: map[string]any{"ok": true, "db": false, "openai": true},
		},
		{
			name:     "no completion client",
			client:   false,
			db:       fakePinger{},
			wantBody: map[string]any{"ok": true, "db": true, "openai": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			var client inference.Client
			if tt.client {
				client = mock_inference.NewMockClient(ctrl)
			}

			w := doRequest(newTestRouter(t, client, mock_activity.NewMockRepository(ctrl), tt.db), http.MethodGet, "/api/health", "")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantBody, decodeBody(t, w))
		})
	}
}
