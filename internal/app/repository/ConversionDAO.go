package repository

import (
	"context"
	"errors"
	"fmt"

	"wavify/internal/app/model"
)

// ErrUnavailable marks every failure of the metadata store. Callers treat it
// as non-fatal.
var ErrUnavailable = errors.New("metadata store unavailable")

// ConversionRecorder persists conversion records. Implementations are safe
// for concurrent use and are created once per process.
type ConversionRecorder interface {
	// Record appends rec and returns its identifier. An empty rec.ID is
	// filled with a generated uuid.
	Record(ctx context.Context, rec *model.ConversionRecord) (string, error)
	// List returns records newest first.
	List(ctx context.Context, limit, offset int) ([]model.ConversionRecord, error)
	Ping(ctx context.Context) error
	Close() error
}

// Unavailable wraps err so that it matches ErrUnavailable.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// NopRecorder discards records. It backs the "none" store driver.
type NopRecorder struct{}

func (NopRecorder) Record(_ context.Context, rec *model.ConversionRecord) (string, error) {
	EnsureID(rec)
	return rec.ID, nil
}

func (NopRecorder) List(context.Context, int, int) ([]model.ConversionRecord, error) {
	return []model.ConversionRecord{}, nil
}

func (NopRecorder) Ping(context.Context) error { return nil }

func (NopRecorder) Close() error { return nil }

var _ ConversionRecorder = NopRecorder{}
