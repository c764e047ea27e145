package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"refugee-portal/internal/domain"
)

type PlanRepository struct {
	mock.Mock
}

func (m *PlanRepository) Create(ctx context.Context, plan *domain.IntegrationPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.IntegrationPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrationPlan), args.Error(1)
}

func (m *PlanRepository) Update(ctx context.Context, plan *domain.IntegrationPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *PlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PlanRepository) List(ctx context.Context, filter domain.PlanFilter, params domain.PaginationParams) ([]domain.IntegrationPlan, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.IntegrationPlan), args.Get(1).(int64), args.Error(2)
}

func (m *PlanRepository) CountActive(ctx context.Context, caseworkerID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, caseworkerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PlanRepository) CreateGoal(ctx context.Context, goal *domain.IntegrationGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *PlanRepository) GetGoal(ctx context.Context, id uuid.UUID) (*domain.IntegrationGoal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrationGoal), args.Error(1)
}

func (m *PlanRepository) UpdateGoal(ctx context.Context, goal *domain.IntegrationGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *PlanRepository) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PlanRepository) ListGoals(ctx context.Context, planID uuid.UUID) ([]domain.IntegrationGoal, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IntegrationGoal), args.Error(1)
}

func (m *PlanRepository) GoalCounts(ctx context.Context, householdID uuid.UUID) (int, int, error) {
	args := m.Called(ctx, householdID)
	return args.Int(0), args.Int(1), args.Error(2)
}
