package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/fms-api/internal/models"
	"github.com/noah-isme/fms-api/pkg/jobs"
)

type mockAPILogRepo struct {
	mu      sync.Mutex
	logs    []*models.APILog
	block   chan struct{}
	created chan struct{}
}

func (m *mockAPILogRepo) CreateAPILog(ctx context.Context, log *models.APILog) error {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	m.logs = append(m.logs, log)
	m.mu.Unlock()
	if m.created != nil {
		m.created <- struct{}{}
	}
	return nil
}

func (m *mockAPILogRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.logs)
}

func TestAPILogServicePersistsRecords(t *testing.T) {
	repo := &mockAPILogRepo{}
	svc := NewAPILogService(repo, jobs.QueueConfig{Workers: 1, BufferSize: 4}, zap.NewNop())
	svc.Start(context.Background())
	defer svc.Stop()

	accepted := svc.Record(models.APILog{Method: "GET", Path: "/api/v1/requests", Status: 200, LatencyMs: 12})
	require.True(t, accepted)

	assert.Eventually(t, func() bool {
		return repo.count() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestAPILogServiceNeverBlocksWhenFull(t *testing.T) {
	repo := &mockAPILogRepo{block: make(chan struct{})}
	svc := NewAPILogService(repo, jobs.QueueConfig{Workers: 1, BufferSize: 1}, zap.NewNop())
	svc.Start(context.Background())
	defer func() {
		close(repo.block)
		svc.Stop()
	}()

	// First record occupies the worker, second fills the buffer; the
	// rest must return immediately rather than wait.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			svc.Record(models.APILog{Method: "GET", Path: "/api/v1/requests", Status: 200})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full queue")
	}
}

func TestAPILogServiceRejectsBeforeStart(t *testing.T) {
	repo := &mockAPILogRepo{}
	svc := NewAPILogService(repo, jobs.QueueConfig{Workers: 1, BufferSize: 1}, zap.NewNop())

	assert.False(t, svc.Record(models.APILog{Method: "GET", Path: "/health", Status: 200}))
}
