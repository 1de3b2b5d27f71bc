package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localaihub/hub-service/internal/fallback"
	"github.com/localaihub/hub-service/internal/logging"
	"github.com/localaihub/hub-service/internal/models"
	"github.com/localaihub/hub-service/internal/stats"
)

type stubBackend struct {
	mu        sync.Mutex
	text      string
	err       error
	lastModel string
	calls     int
}

func (b *stubBackend) Generate(ctx context.Context, prompt, model string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	b.lastModel = model
	return b.text, b.err
}

func newTestService(t *testing.T, backend Backend) (*GenerateService, *stats.Tracker, string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "log.jsonl")
	tracker := stats.NewTracker()
	svc := NewGenerateService(
		backend,
		fallback.NewResponder("llama2"),
		logging.New(logPath),
		tracker,
		nil, // metrics are nil-safe
		"llama2",
	)
	return svc, tracker, logPath
}

func TestGenerateSuccess(t *testing.T) {
	backend := &stubBackend{text: "I'm LocalAIHub, how can I help?"}
	svc, tracker, _ := newTestService(t, backend)

	result, err := svc.Generate(context.Background(), models.GenerationRequest{Prompt: "Hi, who are you?"})
	require.NoError(t, err)

	assert.Equal(t, "I'm LocalAIHub, how can I help?", result.Response)
	assert.Equal(t, "llama2", result.Model)
	assert.False(t, result.Offline)
	assert.GreaterOrEqual(t, result.TimeTakenSeconds, 0.0)
	assert.Equal(t, int64(1), result.RequestID)
	assert.Equal(t, int64(1), tracker.Requests())
}

func TestGenerateDefaultsEmptyModel(t *testing.T) {
	backend := &stubBackend{text: "ok"}
	svc, _, _ := newTestService(t, backend)

	_, err := svc.Generate(context.Background(), models.GenerationRequest{Prompt: "hello", Model: ""})
	require.NoError(t, err)
	assert.Equal(t, "llama2", backend.lastModel)

	_, err = svc.Generate(context.Background(), models.GenerationRequest{Prompt: "hello", Model: "mistral"})
	require.NoError(t, err)
	assert.Equal(t, "mistral", backend.lastModel)
}

func TestGenerateFallsBackOnBackendError(t *testing.T) {
	backend := &stubBackend{err: errors.New("connection refused")}
	svc, tracker, _ := newTestService(t, backend)

	result, err := svc.Generate(context.Background(), models.GenerationRequest{Prompt: "Hi, who are you?"})
	require.NoError(t, err, "backend failures must not surface to callers")

	assert.True(t, result.Offline)
	assert.Equal(t, fallback.ModelName, result.Model)
	assert.NotEmpty(t, result.Response)
	assert.Equal(t, int64(1), tracker.Requests(), "fallback still counts as a completed request")
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	backend := &stubBackend{text: "should never be called"}
	svc, tracker, logPath := newTestService(t, backend)

	for _, prompt := range []string{"", "   ", "\t\n"} {
		_, err := svc.Generate(context.Background(), models.GenerationRequest{Prompt: prompt})
		assert.ErrorIs(t, err, ErrEmptyPrompt)
	}

	assert.Equal(t, 0, backend.calls, "rejected prompts must not reach the backend")
	assert.Equal(t, int64(0), tracker.Requests(), "rejected prompts must not be counted")

	_, statErr := os.Stat(logPath)
	assert.True(t, os.IsNotExist(statErr), "rejected prompts must not be logged")
}

func TestGenerateWritesOneRecordPerRequest(t *testing.T) {
	backend := &stubBackend{text: "fine"}
	svc, _, _ := newTestService(t, backend)

	first, err := svc.Generate(context.Background(), models.GenerationRequest{Prompt: "one"})
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), models.GenerationRequest{Prompt: "two"})
	require.NoError(t, err)

	records, err := svc.Recent(0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, second.RequestID, records[0].RequestID)
	assert.Equal(t, first.RequestID, records[1].RequestID)
	assert.Equal(t, "two", records[0].UserInput)
	assert.Nil(t, records[0].Error)
	assert.NotEmpty(t, records[0].TraceID)
}

func TestGenerateRecordsBackendErrorOnFallback(t *testing.T) {
	backend := &stubBackend{err: errors.New("dial tcp: connection refused")}
	svc, _, _ := newTestService(t, backend)

	result, err := svc.Generate(context.Background(), models.GenerationRequest{Prompt: "hello"})
	require.NoError(t, err)

	records, err := svc.Recent(1)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, result.RequestID, rec.RequestID)
	assert.Equal(t, fallback.ModelName, rec.Model)
	require.NotNil(t, rec.Error)
	assert.Contains(t, *rec.Error, "connection refused")
}

func TestGenerateConcurrentIDsAreUnique(t *testing.T) {
	backend := &stubBackend{text: "ok"}
	svc, tracker, _ := newTestService(t, backend)

	const n = 25
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.Generate(context.Background(), models.GenerationRequest{Prompt: "go"})
			if err != nil {
				t.Error(err)
				return
			}
			ids <- result.RequestID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate request id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, int64(n), tracker.Requests())

	records, err := svc.Recent(0)
	require.NoError(t, err)
	assert.Len(t, records, n, "every completed request appends exactly one record")
}
