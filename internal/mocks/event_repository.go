package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"refugee-portal/internal/domain"
)

type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Create(ctx context.Context, event *domain.CommunityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CommunityEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommunityEvent), args.Error(1)
}

func (m *EventRepository) Update(ctx context.Context, event *domain.CommunityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *EventRepository) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]domain.CommunityEvent, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.CommunityEvent), args.Get(1).(int64), args.Error(2)
}

func (m *EventRepository) CountUpcoming(ctx context.Context, from domain.Date) (int64, error) {
	args := m.Called(ctx, from)
	return args.Get(0).(int64), args.Error(1)
}

func (m *EventRepository) Register(ctx context.Context, p *domain.EventParticipation) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *EventRepository) ListParticipants(ctx context.Context, eventID uuid.UUID) ([]domain.EventParticipation, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventParticipation), args.Error(1)
}

func (m *EventRepository) SetAttendance(ctx context.Context, eventID uuid.UUID, householdID uuid.UUID, attended bool) (*domain.EventParticipation, error) {
	args := m.Called(ctx, eventID, householdID, attended)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventParticipation), args.Error(1)
}
