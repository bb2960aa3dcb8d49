package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"wavify/internal/app/toolexec"
)

// MockRunner is a testify mock of toolexec.Runner.
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, inv toolexec.Invocation) (toolexec.Result, error) {
	args := m.Called(ctx, inv)
	return args.Get(0).(toolexec.Result), args.Error(1)
}

// MockTranscoder is a testify mock of api.Transcoder. Use On(...).Run(...)
// to produce the target file when a test needs one.
type MockTranscoder struct {
	mock.Mock
}

func (m *MockTranscoder) Transcode(ctx context.Context, source, target string) (toolexec.Result, error) {
	args := m.Called(ctx, source, target)
	return args.Get(0).(toolexec.Result), args.Error(1)
}

func (m *MockTranscoder) Probe(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTranscriber is a testify mock of api.Transcriber that also tracks the
// waveforms it was asked to transcribe. The first return value may be a
// func(ctx, waveform, outputDir) string to produce the transcript on the fly.
type MockTranscriber struct {
	mock.Mock
	mu sync.Mutex

	CallHistory []string
}

// NewMockTranscriber creates a new MockTranscriber
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{CallHistory: make([]string, 0)}
}

func (m *MockTranscriber) Transcribe(ctx context.Context, waveform, outputDir string) (string, toolexec.Result, error) {
	m.mu.Lock()
	m.CallHistory = append(m.CallHistory, waveform)
	m.mu.Unlock()

	args := m.Called(ctx, waveform, outputDir)
	var path string
	switch v := args.Get(0).(type) {
	case func(context.Context, string, string) string:
		path = v(ctx, waveform, outputDir)
	case string:
		path = v
	}
	return path, args.Get(1).(toolexec.Result), args.Error(2)
}

func (m *MockTranscriber) Probe(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// CallCount returns how many times Transcribe was called.
func (m *MockTranscriber) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CallHistory)
}
