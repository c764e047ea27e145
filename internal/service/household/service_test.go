package household

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
	households *mocks.HouseholdRepository
	profiles   *mocks.ProfileRepository
	audit      *mocks.AuditLogRepository
	notif      *mocks.NotificationService
	cache      *mocks.DashboardInvalidator
	svc        Service
}

func newFixture() *fixture {
	f := &fixture{
		households: new(mocks.HouseholdRepository),
		profiles:   new(mocks.ProfileRepository),
		audit:      new(mocks.AuditLogRepository),
		notif:      new(mocks.NotificationService),
		cache:      new(mocks.DashboardInvalidator),
	}
	f.audit.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.cache.On("Invalidate", mock.Anything).Maybe()
	f.svc = NewService(f.households, f.profiles, f.audit, f.notif, f.cache, zap.NewNop())
	return f
}

var caseworker = domain.Actor{ProfileID: uuid.New(), Role: domain.RoleCaseworker}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("refugee filter is replaced with own membership", func(t *testing.T) {
		f := newFixture()
		actor := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleRefugee}
		otherCaseworker := uuid.New()

		f.households.On("List", ctx, mock.MatchedBy(func(filter domain.HouseholdFilter) bool {
			return filter.MemberID != nil && *filter.MemberID == actor.ProfileID && filter.CaseworkerID == nil
		}), mock.Anything).Return([]domain.Household{{ID: uuid.New()}}, int64(1), nil).Once()

		page, err := f.svc.List(ctx, actor, domain.HouseholdFilter{CaseworkerID: &otherCaseworker}, domain.PaginationParams{})
		require.NoError(t, err)
		assert.Len(t, page.Data, 1)
		assert.Equal(t, 1, page.Page)
		f.households.AssertExpectations(t)
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("refugee cannot read another household", func(t *testing.T) {
		f := newFixture()
		own := uuid.New()
		actor := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleRefugee, HouseholdID: &own}

		_, err := f.svc.GetByID(ctx, actor, uuid.New())
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("detail embeds head and caseworker", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		headID := uuid.New()
		cwID := uuid.New()

		f.households.On("GetByID", ctx, id).Return(&domain.Household{ID: id, HeadOfHouseholdID: &headID, CaseworkerID: &cwID}, nil).Once()
		f.profiles.On("ListByHousehold", ctx, id).Return([]domain.Profile{
			{ID: uuid.New(), FullName: "Child"},
			{ID: headID, FullName: "Head"},
		}, nil).Once()
		f.profiles.On("GetByID", ctx, cwID).Return(&domain.Profile{ID: cwID, FullName: "Sam"}, nil).Once()

		detail, err := f.svc.GetByID(ctx, caseworker, id)
		require.NoError(t, err)
		require.NotNil(t, detail.HeadOfHousehold)
		assert.Equal(t, "Head", detail.HeadOfHousehold.FullName)
		assert.Equal(t, "Sam", detail.Caseworker.FullName)
		assert.Len(t, detail.Members, 2)
	})
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("active household closes", func(t *testing.T) {
		f := newFixture()
		f.households.On("GetByID", ctx, id).Return(&domain.Household{ID: id, Status: domain.HouseholdActive}, nil).Once()
		f.households.On("Update", ctx, mock.MatchedBy(func(h *domain.Household) bool {
			return h.Status == domain.HouseholdClosed
		})).Return(nil).Once()

		household, err := f.svc.Close(ctx, caseworker, id)
		require.NoError(t, err)
		assert.True(t, household.IsClosed())
		f.audit.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
			return l.Action == domain.AuditClose && l.EntityType == domain.EntityHousehold
		}))
	})

	t.Run("closed household cannot be reopened", func(t *testing.T) {
		f := newFixture()
		active := domain.HouseholdActive
		f.households.On("GetByID", ctx, id).Return(&domain.Household{ID: id, Status: domain.HouseholdClosed}, nil).Once()

		_, err := f.svc.Update(ctx, caseworker, id, domain.UpdateHouseholdInput{Status: &active})
		assert.ErrorIs(t, err, domain.ErrHouseholdClosed)
		f.households.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("donor is refused", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Close(ctx, domain.Actor{Role: domain.RoleDonor}, id)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestSetHead(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("head must be a member", func(t *testing.T) {
		f := newFixture()
		stranger := uuid.New()
		elsewhere := uuid.New()
		f.households.On("GetByID", ctx, id).Return(&domain.Household{ID: id, Status: domain.HouseholdActive}, nil).Once()
		f.profiles.On("GetByID", ctx, stranger).Return(&domain.Profile{ID: stranger, HouseholdID: &elsewhere}, nil).Once()

		_, err := f.svc.SetHead(ctx, caseworker, id, domain.SetHeadInput{ProfileID: stranger})
		assert.ErrorIs(t, err, domain.ErrNotHouseholdMember)
	})

	t.Run("member becomes head", func(t *testing.T) {
		f := newFixture()
		member := uuid.New()
		f.households.On("GetByID", ctx, id).Return(&domain.Household{ID: id, Status: domain.HouseholdActive}, nil).Once()
		f.profiles.On("GetByID", ctx, member).Return(&domain.Profile{ID: member, HouseholdID: &id}, nil).Once()
		f.households.On("Update", ctx, mock.MatchedBy(func(h *domain.Household) bool {
			return h.HeadOfHouseholdID != nil && *h.HeadOfHouseholdID == member
		})).Return(nil).Once()

		household, err := f.svc.SetHead(ctx, caseworker, id, domain.SetHeadInput{ProfileID: member})
		require.NoError(t, err)
		assert.Equal(t, member, *household.HeadOfHouseholdID)
	})
}

func TestAssignCaseworkerNotifies(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	id := uuid.New()
	cwID := uuid.New()

	done := make(chan struct{})
	f.households.On("GetByID", ctx, id).Return(&domain.Household{ID: id, Status: domain.HouseholdActive}, nil).Once()
	f.profiles.On("GetByID", ctx, cwID).Return(&domain.Profile{ID: cwID, Role: domain.RoleCaseworker}, nil).Once()
	f.households.On("Update", ctx, mock.Anything).Return(nil).Once()
	f.notif.On("NotifyHouseholdAssigned", mock.Anything, mock.MatchedBy(func(h *domain.Household) bool {
		return h.CaseworkerID != nil && *h.CaseworkerID == cwID
	})).Return(nil).Once().Run(func(mock.Arguments) { close(done) })

	_, err := f.svc.AssignCaseworker(ctx, caseworker, id, domain.AssignCaseworkerInput{CaseworkerID: cwID})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("caseworker was not notified")
	}
}

func TestAddMemberCreatesProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	id := uuid.New()

	f.households.On("GetByID", ctx, id).Return(&domain.Household{ID: id, Status: domain.HouseholdActive}, nil).Once()
	f.households.On("CreateMember", ctx, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.FullName == "Layla" && p.BelongsTo(id) && p.Role == domain.RoleRefugee
	})).Return(nil).Once()

	member, err := f.svc.AddMember(ctx, caseworker, id, domain.AddMemberInput{FullName: "Layla"})
	require.NoError(t, err)
	assert.Equal(t, id, *member.HouseholdID)
}
