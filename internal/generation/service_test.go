package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records every request and answers from a scripted queue.
type fakeBackend struct {
	mu      sync.Mutex
	calls   []GenerateRequest
	replies []RawResult
	err     error
}

func (f *fakeBackend) Generate(ctx context.Context, req GenerateRequest) (*RawResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.replies) == 0 {
		return &RawResult{Text: "ответ"}, nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return &reply, nil
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// countingPacer counts waits instead of sleeping.
type countingPacer struct {
	mu    sync.Mutex
	waits int
	err   error
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waits++
	return p.err
}

// sharePacer hands the same pacer to every composite run so tests can count
// its waits.
func sharePacer(p Pacer) PacerFactory {
	return func() Pacer { return p }
}

func newTestService(t *testing.T, backend Backend, pacer Pacer) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := NewService(backend, newTestBuilder(nil), sharePacer(pacer), 0, logger)
	require.NoError(t, err)
	return svc
}

func TestNewServiceValidation(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	builder := newTestBuilder(nil)
	newPacer := sharePacer(&countingPacer{})

	_, err := NewService(nil, builder, newPacer, time.Second, logger)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewService(&fakeBackend{}, nil, newPacer, time.Second, logger)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewService(&fakeBackend{}, builder, nil, time.Second, logger)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestGenerateTextKind(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{replies: []RawResult{{
		Text:    "Сгенерированный текст из пяти слов.",
		Sources: []Source{{URI: "https://example.com", Title: "Пример"}},
	}}}
	svc := newTestService(t, backend, &countingPacer{})

	res, err := svc.Generate(context.Background(), KindStandard, Payload{
		"docType": "Реферат", "age": float64(12), "topic": "космос",
	})
	require.NoError(t, err)

	assert.Equal(t, "Реферат", res.DocType)
	assert.Equal(t, "Сгенерированный текст из пяти слов.", res.Text)
	assert.Equal(t, (utf8.RuneCountInString(res.Text)+3)/4, res.TokenCount)
	assert.Zero(t, res.Uniqueness)
	require.Len(t, res.Sources, 1)
	assert.Nil(t, res.Structured)

	require.Equal(t, 1, backend.callCount())
	req := backend.calls[0]
	require.Len(t, req.Contents, 1)
	assert.Contains(t, req.Contents[0].Parts[0].Text, "космос")
	assert.NotEmpty(t, req.SystemInstruction)
	assert.Nil(t, req.ResponseSchema)
}

func TestGenerateStructuredKind(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{replies: []RawResult{{
		Text: `{"title":"Книга","sections":[{"title":"Глава","description":"d","generationPrompt":"g"}]}`,
	}}}
	svc := newTestService(t, backend, &countingPacer{})

	res, err := svc.Generate(context.Background(), KindBookPlan, Payload{
		"genre": "фэнтези", "chaptersCount": float64(3),
	})
	require.NoError(t, err)

	plan, ok := res.Structured.(Plan)
	require.True(t, ok)
	assert.Equal(t, "Книга", plan.Title)
	require.Len(t, plan.Chapters, 1)
	assert.Empty(t, res.Text)

	require.Equal(t, 1, backend.callCount())
	assert.NotNil(t, backend.calls[0].ResponseSchema)
}

func TestGenerateBackendFailure(t *testing.T) {
	t.Parallel()

	t.Run("foreign errors are wrapped as backend failures", func(t *testing.T) {
		t.Parallel()
		backend := &fakeBackend{err: errors.New("connection reset")}
		svc := newTestService(t, backend, &countingPacer{})

		_, err := svc.Generate(context.Background(), KindStandard, Payload{"topic": "x"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBackendFailure))
	})

	t.Run("taxonomy errors pass through unwrapped", func(t *testing.T) {
		t.Parallel()
		sentinel := fmt.Errorf("%w: blocked", ErrBackendFailure)
		backend := &fakeBackend{err: sentinel}
		svc := newTestService(t, backend, &countingPacer{})

		_, err := svc.Generate(context.Background(), KindStandard, Payload{"topic": "x"})
		assert.True(t, errors.Is(err, ErrBackendFailure))
	})

	t.Run("unknown kind never reaches the backend", func(t *testing.T) {
		t.Parallel()
		backend := &fakeBackend{}
		svc := newTestService(t, backend, &countingPacer{})

		_, err := svc.Generate(context.Background(), Kind("bogus"), Payload{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRequest))
		assert.Zero(t, backend.callCount())
	})
}

func TestGenerateComposite(t *testing.T) {
	t.Parallel()

	sections := []any{
		map[string]any{"title": "Введение", "contentType": "generate", "pagesToGenerate": float64(2)},
		map[string]any{"title": "Обзор", "contentType": "text", "content": "готовый обзор"},
		map[string]any{"title": "Черновик", "contentType": "skip"},
	}
	payload := Payload{"topic": "Нейросети", "field": "информатика", "sections": sections}

	t.Run("assembles sections in declared order with one call per generated section", func(t *testing.T) {
		t.Parallel()
		backend := &fakeBackend{replies: []RawResult{{Text: "текст введения"}}}
		pacer := &countingPacer{}
		svc := newTestService(t, backend, pacer)

		res, err := svc.Generate(context.Background(), KindFullThesis, payload)
		require.NoError(t, err)

		assert.Equal(t, DocTypeThesis, res.DocType)
		assert.True(t, strings.HasPrefix(res.Text, "# Дипломная работа\n## Тема: Нейросети"))
		assert.Contains(t, res.Text, "### Введение\n\nтекст введения")
		assert.Contains(t, res.Text, "### Обзор\n\nготовый обзор")
		assert.NotContains(t, res.Text, "Черновик")
		assert.Less(t,
			strings.Index(res.Text, "### Введение"),
			strings.Index(res.Text, "### Обзор"))
		assert.Positive(t, res.TokenCount)

		assert.Equal(t, 1, backend.callCount())
		assert.Equal(t, 1, pacer.waits)
		assert.Equal(t, ThesisInstruction(), backend.calls[0].SystemInstruction)
		assert.Contains(t, backend.calls[0].Contents[0].Parts[0].Text, `"Введение"`)
	})

	t.Run("aborts without a partial result when a section fails", func(t *testing.T) {
		t.Parallel()
		backend := &fakeBackend{err: errors.New("quota exceeded")}
		svc := newTestService(t, backend, &countingPacer{})

		res, err := svc.Generate(context.Background(), KindFullThesis, payload)
		require.Error(t, err)
		assert.Nil(t, res)
		assert.True(t, errors.Is(err, ErrBackendFailure))
		assert.Equal(t, 1, backend.callCount())
	})

	t.Run("interrupted pacing is a backend failure", func(t *testing.T) {
		t.Parallel()
		backend := &fakeBackend{}
		pacer := &countingPacer{err: context.Canceled}
		svc := newTestService(t, backend, pacer)

		_, err := svc.Generate(context.Background(), KindFullThesis, payload)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBackendFailure))
		assert.Zero(t, backend.callCount())
	})

	t.Run("unknown section content type is an invalid request", func(t *testing.T) {
		t.Parallel()
		backend := &fakeBackend{}
		svc := newTestService(t, backend, &countingPacer{})

		_, err := svc.Generate(context.Background(), KindFullThesis, Payload{
			"topic": "t",
			"sections": []any{
				map[string]any{"title": "s", "contentType": "video"},
			},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRequest))
	})
}

func TestCompositePacingIsPerRequest(t *testing.T) {
	t.Parallel()

	payload := Payload{
		"topic": "Тема", "field": "область",
		"sections": []any{
			map[string]any{"title": "Введение", "contentType": "generate", "pagesToGenerate": float64(1)},
		},
	}

	t.Run("each run draws a fresh pacer from the factory", func(t *testing.T) {
		t.Parallel()
		var made atomic.Int32
		factory := func() Pacer {
			made.Add(1)
			return &countingPacer{}
		}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc, err := NewService(&fakeBackend{}, newTestBuilder(nil), factory, 0, logger)
		require.NoError(t, err)

		_, err = svc.Generate(context.Background(), KindFullThesis, payload)
		require.NoError(t, err)
		_, err = svc.Generate(context.Background(), KindFullThesis, payload)
		require.NoError(t, err)

		assert.EqualValues(t, 2, made.Load())
	})

	t.Run("concurrent runs do not queue behind each other", func(t *testing.T) {
		t.Parallel()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc, err := NewService(&fakeBackend{}, newTestBuilder(nil),
			DelayPacerFactory(500*time.Millisecond), 0, logger)
		require.NoError(t, err)

		start := time.Now()
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Generate(context.Background(), KindFullThesis, payload)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		// A single-section run only takes the pacer's immediate first token;
		// with per-request pacing neither run waits out the 500ms interval.
		assert.Less(t, time.Since(start), 400*time.Millisecond)
	})
}

func TestDelayPacerSpacing(t *testing.T) {
	t.Parallel()
	pacer := NewDelayPacer(20 * time.Millisecond)

	start := time.Now()
	require.NoError(t, pacer.Wait(context.Background()))
	require.NoError(t, pacer.Wait(context.Background()))
	require.NoError(t, pacer.Wait(context.Background()))

	// First call is immediate, the next two are spaced 20ms apart.
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}
