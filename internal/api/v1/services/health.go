package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"wavify/internal/api/v1/dto"
	"wavify/internal/app/api"
	"wavify/internal/app/repository"
)

const defaultHealthTimeout = 3 * time.Second

// HealthServiceImpl pings the store and probes each tool concurrently.
type HealthServiceImpl struct {
	mode     string
	recorder repository.ConversionRecorder
	tools    map[string]api.Prober
	timeout  time.Duration
	log      *zap.Logger
}

// NewHealthService creates a health service. tools maps a check name to the
// tool behind it.
func NewHealthService(mode string, recorder repository.ConversionRecorder, tools map[string]api.Prober, log *zap.Logger) HealthService {
	return &HealthServiceImpl{
		mode:     mode,
		recorder: recorder,
		tools:    tools,
		timeout:  defaultHealthTimeout,
		log:      log.With(zap.String("component", "health")),
	}
}

// Check never fails; a failing dependency degrades the status.
func (s *HealthServiceImpl) Check(ctx context.Context) *dto.HealthResponse {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	checks := make(map[string]func(context.Context) error, len(s.tools)+1)
	checks["store"] = s.recorder.Ping
	for name, tool := range s.tools {
		checks[name] = tool.Probe
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	resp := &dto.HealthResponse{Status: dto.HealthOK, Mode: s.mode, Checks: make(map[string]string, len(checks))}
	for name, check := range checks {
		name, check := name, check
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := check(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				resp.Status = dto.HealthDegraded
				resp.Checks[name] = err.Error()
				s.log.Warn("health check failed", zap.String("check", name), zap.Error(err))
				return
			}
			resp.Checks[name] = dto.HealthOK
		}()
	}
	wg.Wait()
	return resp
}
