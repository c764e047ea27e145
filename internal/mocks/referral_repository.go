package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"refugee-portal/internal/domain"
)

type ReferralRepository struct {
	mock.Mock
}

func (m *ReferralRepository) Create(ctx context.Context, ref *domain.Referral) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *ReferralRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Referral, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Referral), args.Error(1)
}

func (m *ReferralRepository) Update(ctx context.Context, ref *domain.Referral) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *ReferralRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ReferralRepository) List(ctx context.Context, filter domain.ReferralFilter, params domain.PaginationParams) ([]domain.Referral, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Referral), args.Get(1).(int64), args.Error(2)
}

func (m *ReferralRepository) CountActive(ctx context.Context, caseworkerID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, caseworkerID)
	return args.Get(0).(int64), args.Error(1)
}
