package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"wavify/internal/app/model"
	"wavify/internal/app/repository"
)

// MockConversionRecorder is an in-memory repository.ConversionRecorder with
// configurable failures.
type MockConversionRecorder struct {
	mu      sync.RWMutex
	records []model.ConversionRecord
	closed  bool

	// Configuration options
	DefaultError    error
	SimulateLatency time.Duration
	ErrorMap        map[string]error // method -> error

	// State tracking
	CallCount int
}

// NewMockConversionRecorder creates a new MockConversionRecorder with sensible defaults
func NewMockConversionRecorder() *MockConversionRecorder {
	return &MockConversionRecorder{
		records:  make([]model.ConversionRecord, 0),
		ErrorMap: make(map[string]error),
	}
}

// WithError makes method fail with err wrapped as repository.ErrUnavailable.
func (m *MockConversionRecorder) WithError(method string, err error) *MockConversionRecorder {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[method] = repository.Unavailable(method, err)
	return m
}

func (m *MockConversionRecorder) failure(ctx context.Context, method string) error {
	m.CallCount++
	if m.SimulateLatency > 0 {
		select {
		case <-time.After(m.SimulateLatency):
		case <-ctx.Done():
			return repository.Unavailable(method, ctx.Err())
		}
	}
	if err, ok := m.ErrorMap[method]; ok {
		return err
	}
	return m.DefaultError
}

func (m *MockConversionRecorder) Record(ctx context.Context, rec *model.ConversionRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(ctx, "Record"); err != nil {
		return "", err
	}
	repository.EnsureID(rec)
	m.records = append(m.records, *rec)
	return rec.ID, nil
}

func (m *MockConversionRecorder) List(ctx context.Context, limit, offset int) ([]model.ConversionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(ctx, "List"); err != nil {
		return nil, err
	}

	sorted := append([]model.ConversionRecord(nil), m.records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ConvertedAt.After(sorted[j].ConvertedAt)
	})
	if offset >= len(sorted) {
		return []model.ConversionRecord{}, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

func (m *MockConversionRecorder) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failure(ctx, "Ping")
}

func (m *MockConversionRecorder) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Records returns a copy of everything recorded so far.
func (m *MockConversionRecorder) Records() []model.ConversionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.ConversionRecord(nil), m.records...)
}

var _ repository.ConversionRecorder = (*MockConversionRecorder)(nil)
