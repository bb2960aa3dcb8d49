package services

import (
	"context"
	"errors"

	apierrors "wavify/internal/api/errors"
	"wavify/internal/api/v1/dto"
	"wavify/internal/app/repository"
)

// RecordServiceImpl implements RecordService
type RecordServiceImpl struct {
	recorder repository.ConversionRecorder
}

// NewRecordService creates a new record service
func NewRecordService(recorder repository.ConversionRecorder) RecordService {
	return &RecordServiceImpl{recorder: recorder}
}

// ListConversions returns one page of records.
func (s *RecordServiceImpl) ListConversions(ctx context.Context, query dto.ListConversionsQuery) (*dto.ConversionListResponse, error) {
	records, err := s.recorder.List(ctx, query.Limit, query.Offset)
	if err != nil {
		if errors.Is(err, repository.ErrUnavailable) {
			return nil, apierrors.NewServiceUnavailableError("Conversion records are unavailable")
		}
		return nil, apierrors.NewInternalError("Failed to list conversions")
	}

	resp := &dto.ConversionListResponse{
		Conversions: make([]dto.ConversionResponse, 0, len(records)),
		Limit:       query.Limit,
		Offset:      query.Offset,
	}
	for _, rec := range records {
		resp.Conversions = append(resp.Conversions, dto.NewConversionResponse(rec))
	}
	resp.Count = len(resp.Conversions)
	return resp, nil
}
