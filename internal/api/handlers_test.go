package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmkrav/helper-api/internal/chat"
	"github.com/dmkrav/helper-api/internal/generation"
)

// fakeBackend answers every request with a fixed reply.
type fakeBackend struct {
	mu    sync.Mutex
	calls int
	reply generation.RawResult
	err   error
}

func (f *fakeBackend) Generate(
	ctx context.Context,
	req generation.GenerateRequest,
) (*generation.RawResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	reply := f.reply
	return &reply, nil
}

type nopPacer struct{}

func (nopPacer) Wait(ctx context.Context) error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newGenerateHandler(t *testing.T, backend generation.Backend) *GenerateHandler {
	t.Helper()
	builder := generation.NewBuilder(
		func(name, mimeType string, data []byte) (string, error) { return "", nil },
		testLogger(),
	)
	svc, err := generation.NewService(backend, builder,
		func() generation.Pacer { return nopPacer{} }, 0, testLogger())
	require.NoError(t, err)
	return NewGenerateHandler(svc)
}

func newChatHandler(t *testing.T, backend generation.Backend) (*ChatHandler, *chat.Service) {
	t.Helper()
	store := chat.NewStore(time.Minute, time.Minute, testLogger())
	svc, err := chat.NewService(store, backend, 0, testLogger())
	require.NoError(t, err)
	return NewChatHandler(svc), svc
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestGenerateHandler(t *testing.T) {
	t.Parallel()

	t.Run("text kind returns the document with metrics", func(t *testing.T) {
		t.Parallel()
		backend := &fakeBackend{reply: generation.RawResult{Text: "Готовый реферат о космосе."}}
		h := newGenerateHandler(t, backend)

		rec := postJSON(t, h.Generate,
			`{"type":"standard","payload":{"docType":"Реферат","age":12,"topic":"космос"}}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Реферат", body["docType"])
		assert.Equal(t, "Готовый реферат о космосе.", body["text"])
		assert.NotZero(t, body["tokenCount"])
		assert.EqualValues(t, 0, body["uniqueness"])
		assert.NotContains(t, body, "sources")
	})

	t.Run("plan kind returns the structured object itself", func(t *testing.T) {
		t.Parallel()
		backend := &fakeBackend{reply: generation.RawResult{
			Text: `{"title":"Книга","chapters":[{"title":"Глава 1","description":"d","generationPrompt":"g"}]}`,
		}}
		h := newGenerateHandler(t, backend)

		rec := postJSON(t, h.Generate,
			`{"type":"book_plan","payload":{"genre":"фэнтези","chaptersCount":3}}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Книга", body["title"])
		assert.Contains(t, body, "chapters")
		assert.NotContains(t, body, "text")
	})

	t.Run("unknown kind is a 400", func(t *testing.T) {
		t.Parallel()
		h := newGenerateHandler(t, &fakeBackend{})

		rec := postJSON(t, h.Generate, `{"type":"poetry_slam","payload":{}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing type fails validation", func(t *testing.T) {
		t.Parallel()
		h := newGenerateHandler(t, &fakeBackend{})

		rec := postJSON(t, h.Generate, `{"payload":{"topic":"x"}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed JSON is a 400", func(t *testing.T) {
		t.Parallel()
		h := newGenerateHandler(t, &fakeBackend{})

		rec := postJSON(t, h.Generate, `{"type": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("backend failure is a sanitized 500", func(t *testing.T) {
		t.Parallel()
		backend := &fakeBackend{err: errors.New("api key leaked in this message")}
		h := newGenerateHandler(t, backend)

		rec := postJSON(t, h.Generate, `{"type":"standard","payload":{"topic":"x"}}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "api key leaked")
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Generation failed", body["error"])
	})
}

func TestChatHandlers(t *testing.T) {
	t.Parallel()

	t.Run("start and send round trip", func(t *testing.T) {
		t.Parallel()
		backend := &fakeBackend{reply: generation.RawResult{Text: "Разберём дроби."}}
		h, _ := newChatHandler(t, backend)

		rec := postJSON(t, h.StartChat, `{"tutorSubject":"математика","age":11}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var started StartChatResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))
		require.NotEmpty(t, started.ChatID)

		sendBody, err := json.Marshal(SendChatRequest{ChatID: started.ChatID, Message: "объясни дроби"})
		require.NoError(t, err)
		rec = postJSON(t, h.SendChat, string(sendBody))

		require.Equal(t, http.StatusOK, rec.Code)
		var reply chat.Reply
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
		assert.Equal(t, "Разберём дроби.", reply.Text)
	})

	t.Run("start without a selector is a 400", func(t *testing.T) {
		t.Parallel()
		h, _ := newChatHandler(t, &fakeBackend{})

		rec := postJSON(t, h.StartChat, `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("send to an unknown session is a 404", func(t *testing.T) {
		t.Parallel()
		h, _ := newChatHandler(t, &fakeBackend{})

		rec := postJSON(t, h.SendChat,
			`{"chatId":"7f9c24e5-2f3a-4b0e-9d64-0f2b5a3c8d11","message":"привет"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("send with a malformed id fails validation", func(t *testing.T) {
		t.Parallel()
		h, _ := newChatHandler(t, &fakeBackend{})

		rec := postJSON(t, h.SendChat, `{"chatId":"not-a-uuid","message":"привет"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("stateless chat answers with text and omits empty sources", func(t *testing.T) {
		t.Parallel()
		backend := &fakeBackend{reply: generation.RawResult{Text: "Здравствуйте!"}}
		h, _ := newChatHandler(t, backend)

		rec := postJSON(t, h.StatelessChat,
			`{"assistantType":"mirra","message":"привет","settings":{"memoryEnabled":false,"internetEnabled":false}}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Здравствуйте!", body["text"])
		assert.NotContains(t, body, "sources")
	})

	t.Run("stateless chat carries grounding sources when present", func(t *testing.T) {
		t.Parallel()
		backend := &fakeBackend{reply: generation.RawResult{
			Text:    "По данным сети.",
			Sources: []generation.Source{{URI: "https://example.com", Title: "Источник"}},
		}}
		h, _ := newChatHandler(t, backend)

		rec := postJSON(t, h.StatelessChat,
			`{"assistantType":"dary","message":"новости","settings":{"internetEnabled":true}}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var reply chat.Reply
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
		require.Len(t, reply.Sources, 1)
		assert.Equal(t, "https://example.com", reply.Sources[0].URI)
	})

	t.Run("stateless chat requires a message", func(t *testing.T) {
		t.Parallel()
		h, _ := newChatHandler(t, &fakeBackend{})

		rec := postJSON(t, h.StatelessChat, `{"assistantType":"mirra"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid request", generation.ErrInvalidRequest, http.StatusBadRequest},
		{"session not found", chat.ErrSessionNotFound, http.StatusNotFound},
		{"deadline exceeded", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"backend failure", generation.ErrBackendFailure, http.StatusInternalServerError},
		{"unknown", errors.New("mystery"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
			assert.NotEmpty(t, GetSafeErrorMessage(tc.err))
		})
	}
}
