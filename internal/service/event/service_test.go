package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/mocks"
)

type fixture struct {
	events     *mocks.EventRepository
	households *mocks.HouseholdRepository
	notif      *mocks.NotificationService
	svc        Service
}

func newFixture() *fixture {
	f := &fixture{
		events:     new(mocks.EventRepository),
		households: new(mocks.HouseholdRepository),
		notif:      new(mocks.NotificationService),
	}
	f.notif.On("NotifyEventRegistered", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	cache := new(mocks.DashboardInvalidator)
	cache.On("Invalidate", mock.Anything).Maybe()
	f.svc = NewService(f.events, f.households, f.notif, cache, zap.NewNop())
	return f
}

func publishedEvent() *domain.CommunityEvent {
	return &domain.CommunityEvent{
		ID:          uuid.New(),
		Title:       "CV workshop",
		EventDate:   domain.NewDate(2026, time.November, 3),
		Status:      domain.EventActive,
		IsPublished: true,
	}
}

func TestListForcesPublishedForNonStaff(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.events.On("List", ctx, mock.MatchedBy(func(filter domain.EventFilter) bool { return filter.PublishedOnly }), mock.Anything).
		Return([]domain.CommunityEvent{}, int64(0), nil).Once()

	_, err := f.svc.List(ctx, domain.Actor{Role: domain.RoleDonor}, domain.EventFilter{}, domain.DefaultPagination())
	require.NoError(t, err)
	f.events.AssertExpectations(t)
}

func TestUnpublishedEventHiddenFromRefugees(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	event := publishedEvent()
	event.IsPublished = false
	f.events.On("GetByID", ctx, event.ID).Return(event, nil)

	_, err := f.svc.GetByID(ctx, domain.Actor{Role: domain.RoleRefugee}, event.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	got, err := f.svc.GetByID(ctx, domain.Actor{Role: domain.RoleNGO}, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	householdID := uuid.New()
	refugee := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleRefugee, HouseholdID: &householdID}

	t.Run("refugee registers own household", func(t *testing.T) {
		f := newFixture()
		event := publishedEvent()
		f.events.On("GetByID", ctx, event.ID).Return(event, nil).Once()
		f.households.On("GetByID", ctx, householdID).Return(&domain.Household{ID: householdID, Status: domain.HouseholdActive}, nil).Once()
		f.events.On("Register", ctx, mock.MatchedBy(func(p *domain.EventParticipation) bool {
			return p.EventID == event.ID && p.HouseholdID == householdID && *p.RegisteredBy == refugee.ProfileID
		})).Return(nil).Once()

		p, err := f.svc.Register(ctx, refugee, event.ID, domain.RegisterParticipantInput{HouseholdID: householdID})
		require.NoError(t, err)
		assert.False(t, p.Attended)
		f.events.AssertExpectations(t)
	})

	t.Run("refugee cannot register another household", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Register(ctx, refugee, uuid.New(), domain.RegisterParticipantInput{HouseholdID: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("conflicts from the repository surface unchanged", func(t *testing.T) {
		for _, want := range []error{domain.ErrEventFull, domain.ErrAlreadyRegistered, domain.ErrEventNotActive} {
			f := newFixture()
			event := publishedEvent()
			f.events.On("GetByID", ctx, event.ID).Return(event, nil).Once()
			f.households.On("GetByID", ctx, householdID).Return(&domain.Household{ID: householdID, Status: domain.HouseholdActive}, nil).Once()
			f.events.On("Register", ctx, mock.Anything).Return(want).Once()

			_, err := f.svc.Register(ctx, refugee, event.ID, domain.RegisterParticipantInput{HouseholdID: householdID})
			assert.ErrorIs(t, err, want)
			assert.True(t, domain.Conflict(err))
		}
	})

	t.Run("closed household cannot register", func(t *testing.T) {
		f := newFixture()
		event := publishedEvent()
		staff := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleCaseworker}
		f.events.On("GetByID", ctx, event.ID).Return(event, nil).Once()
		f.households.On("GetByID", ctx, householdID).Return(&domain.Household{ID: householdID, Status: domain.HouseholdClosed}, nil).Once()

		_, err := f.svc.Register(ctx, staff, event.ID, domain.RegisterParticipantInput{HouseholdID: householdID})
		assert.ErrorIs(t, err, domain.ErrHouseholdClosed)
	})
}

func TestMarkAttendance(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	staff := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleCaseworker}
	eventID, householdID := uuid.New(), uuid.New()

	f.events.On("SetAttendance", ctx, eventID, householdID, true).Return(nil, nil).Once()

	_, err := f.svc.MarkAttendance(ctx, staff, eventID, householdID, domain.AttendanceInput{Attended: true})
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)
}
