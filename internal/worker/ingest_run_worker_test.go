package worker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webqa/internal/model"
	"webqa/internal/platform/rabbitmq"
)

type memoryRunStore struct {
	runs []model.IngestRun
	err  error
}

func (s *memoryRunStore) Create(run *model.IngestRun) error {
	if s.err != nil {
		return s.err
	}
	s.runs = append(s.runs, *run)
	return nil
}

func TestHandle_PersistsRun(t *testing.T) {
	store := &memoryRunStore{}
	w := NewIngestRunWorker(nil, store, "q", nil)

	run := model.IngestRun{RunID: "run-1", Status: model.IngestRunFailed, Error: "boom"}
	run.SetURLs([]string{"https://bad.test"})
	body, err := rabbitmq.EncodeIngestRun(run)
	require.NoError(t, err)

	require.NoError(t, w.handle(body))
	require.Len(t, store.runs, 1)
	assert.Equal(t, "run-1", store.runs[0].RunID)
	assert.Equal(t, "boom", store.runs[0].Error)
	assert.Equal(t, []string{"https://bad.test"}, store.runs[0].URLList())
}

func TestHandle_RejectsBadPayload(t *testing.T) {
	store := &memoryRunStore{}
	w := NewIngestRunWorker(nil, store, "q", nil)

	assert.Error(t, w.handle([]byte("not json")))
	assert.Empty(t, store.runs)
}

func TestHandle_StoreFailure(t *testing.T) {
	boom := errors.New("db down")
	w := NewIngestRunWorker(nil, &memoryRunStore{err: boom}, "q", nil)

	body, err := rabbitmq.EncodeIngestRun(model.IngestRun{RunID: "run-2"})
	require.NoError(t, err)
	assert.ErrorIs(t, w.handle(body), boom)
}

func TestClose_WithoutStart(t *testing.T) {
	w := NewIngestRunWorker(nil, &memoryRunStore{}, "q", nil)
	w.Close()
}
