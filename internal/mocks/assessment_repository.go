package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"refugee-portal/internal/domain"
)

type AssessmentRepository struct {
	mock.Mock
}

func (m *AssessmentRepository) Create(ctx context.Context, a *domain.Assessment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AssessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assessment), args.Error(1)
}

func (m *AssessmentRepository) Update(ctx context.Context, a *domain.Assessment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AssessmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AssessmentRepository) List(ctx context.Context, filter domain.AssessmentFilter, params domain.PaginationParams) ([]domain.Assessment, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Assessment), args.Get(1).(int64), args.Error(2)
}

func (m *AssessmentRepository) CountPending(ctx context.Context, caseworkerID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, caseworkerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AssessmentRepository) ListOverdue(ctx context.Context, caseworkerID *uuid.UUID, today domain.Date, limit int) ([]domain.Assessment, error) {
	args := m.Called(ctx, caseworkerID, today, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Assessment), args.Error(1)
}
