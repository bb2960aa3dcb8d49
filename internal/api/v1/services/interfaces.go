package services

import (
	"context"

	"wavify/internal/api/v1/dto"
	"wavify/internal/app/converter"
)

// ConversionService converts uploads. *converter.Pipeline implements it.
type ConversionService interface {
	Convert(ctx context.Context, up converter.Upload) (*converter.Result, error)
	Mode() string
	AcceptedExtensions() []string
}

// RecordService defines the interface for conversion record queries
type RecordService interface {
	ListConversions(ctx context.Context, query dto.ListConversionsQuery) (*dto.ConversionListResponse, error)
}

// HealthService checks the dependencies a conversion needs.
type HealthService interface {
	Check(ctx context.Context) *dto.HealthResponse
}

var _ ConversionService = (*converter.Pipeline)(nil)
