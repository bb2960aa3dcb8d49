package test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"

	"wavify/internal/api/v1/dto"
	"wavify/internal/app/converter"
)

// MockServices contains all mock services for testing
type MockServices struct {
	ConversionService *MockConversionService
	RecordService     *MockRecordService
	HealthService     *MockHealthService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		ConversionService: NewMockConversionService(t),
		RecordService:     NewMockRecordService(t),
		HealthService:     NewMockHealthService(t),
	}
}

// AssertExpectations checks every mock.
func (ms *MockServices) AssertExpectations(t *testing.T) {
	ms.ConversionService.AssertExpectations(t)
	ms.RecordService.AssertExpectations(t)
	ms.HealthService.AssertExpectations(t)
}

// MockConversionService is a mock implementation of services.ConversionService.
// Convert records the upload body it was given in Bodies.
type MockConversionService struct {
	mock.Mock
	Bodies [][]byte
}

func NewMockConversionService(t *testing.T) *MockConversionService {
	m := &MockConversionService{}
	m.Test(t)
	return m
}

func (m *MockConversionService) Convert(ctx context.Context, up converter.Upload) (*converter.Result, error) {
	if up.Body != nil {
		body, _ := io.ReadAll(up.Body)
		m.Bodies = append(m.Bodies, body)
	}
	args := m.Called(ctx, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*converter.Result), args.Error(1)
}

func (m *MockConversionService) Mode() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConversionService) AcceptedExtensions() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

// MockRecordService is a mock implementation of services.RecordService
type MockRecordService struct {
	mock.Mock
}

func NewMockRecordService(t *testing.T) *MockRecordService {
	m := &MockRecordService{}
	m.Test(t)
	return m
}

func (m *MockRecordService) ListConversions(ctx context.Context, query dto.ListConversionsQuery) (*dto.ConversionListResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConversionListResponse), args.Error(1)
}

// MockHealthService is a mock implementation of services.HealthService
type MockHealthService struct {
	mock.Mock
}

func NewMockHealthService(t *testing.T) *MockHealthService {
	m := &MockHealthService{}
	m.Test(t)
	return m
}

func (m *MockHealthService) Check(ctx context.Context) *dto.HealthResponse {
	args := m.Called(ctx)
	return args.Get(0).(*dto.HealthResponse)
}
