package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"refugee-portal/internal/domain"
)

type HouseholdRepository struct {
	mock.Mock
}

func (m *HouseholdRepository) Create(ctx context.Context, household *domain.Household) error {
	args := m.Called(ctx, household)
	return args.Error(0)
}

func (m *HouseholdRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Household, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Household), args.Error(1)
}

func (m *HouseholdRepository) Update(ctx context.Context, household *domain.Household) error {
	args := m.Called(ctx, household)
	return args.Error(0)
}

func (m *HouseholdRepository) List(ctx context.Context, filter domain.HouseholdFilter, params domain.PaginationParams) ([]domain.Household, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Household), args.Get(1).(int64), args.Error(2)
}

func (m *HouseholdRepository) Count(ctx context.Context, caseworkerID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, caseworkerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *HouseholdRepository) AddMember(ctx context.Context, householdID uuid.UUID, profileID uuid.UUID) error {
	args := m.Called(ctx, householdID, profileID)
	return args.Error(0)
}

func (m *HouseholdRepository) CreateMember(ctx context.Context, member *domain.Profile) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
