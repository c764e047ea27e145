package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"refugee-portal/internal/domain"
)

type CaseNoteRepository struct {
	mock.Mock
}

func (m *CaseNoteRepository) Create(ctx context.Context, note *domain.CaseNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *CaseNoteRepository) ListByHousehold(ctx context.Context, householdID uuid.UUID, includeSensitive bool, params domain.PaginationParams) ([]domain.CaseNote, int64, error) {
	args := m.Called(ctx, householdID, includeSensitive, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.CaseNote), args.Get(1).(int64), args.Error(2)
}
