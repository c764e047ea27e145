package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"refugee-portal/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) List(ctx context.Context, profileID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, profileID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, profileID, id uuid.UUID) error {
	args := m.Called(ctx, profileID, id)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, profileID uuid.UUID) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, profileID uuid.UUID) (int64, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) NotifyRequestDecision(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *NotificationService) NotifyHouseholdAssigned(ctx context.Context, household *domain.Household) error {
	args := m.Called(ctx, household)
	return args.Error(0)
}

func (m *NotificationService) NotifyEventRegistered(ctx context.Context, event *domain.CommunityEvent, householdID uuid.UUID) error {
	args := m.Called(ctx, event, householdID)
	return args.Error(0)
}
