package plan

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/mocks"
)

type fixture struct {
	plans      *mocks.PlanRepository
	households *mocks.HouseholdRepository
	svc        Service
}

func newFixture() *fixture {
	f := &fixture{
		plans:      new(mocks.PlanRepository),
		households: new(mocks.HouseholdRepository),
	}
	audit := new(mocks.AuditLogRepository)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	cache := new(mocks.DashboardInvalidator)
	cache.On("Invalidate", mock.Anything).Maybe()
	f.svc = NewService(f.plans, f.households, audit, cache, zap.NewNop())
	return f
}

func goalsWith(statuses ...domain.GoalStatus) []domain.IntegrationGoal {
	goals := make([]domain.IntegrationGoal, len(statuses))
	for i, st := range statuses {
		goals[i] = domain.IntegrationGoal{ID: uuid.New(), Status: st}
	}
	return goals
}

func TestGetByIDProgress(t *testing.T) {
	ctx := context.Background()
	staff := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleCaseworker}

	tests := []struct {
		name  string
		goals []domain.IntegrationGoal
		want  int
	}{
		{name: "no goals", goals: nil, want: 0},
		{name: "all done", goals: goalsWith(domain.GoalCompleted, domain.GoalCompleted), want: 100},
		{name: "half done", goals: goalsWith(domain.GoalCompleted, domain.GoalPending), want: 50},
		{name: "two of three rounds up", goals: goalsWith(domain.GoalCompleted, domain.GoalCompleted, domain.GoalNeedsAttention), want: 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			id := uuid.New()
			f.plans.On("GetByID", ctx, id).Return(&domain.IntegrationPlan{ID: id, HouseholdID: uuid.New()}, nil).Once()
			f.plans.On("ListGoals", ctx, id).Return(tt.goals, nil).Once()

			detail, err := f.svc.GetByID(ctx, staff, id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, detail.Progress)
			assert.NotNil(t, detail.Goals)
		})
	}
}

func TestRefugeeAccess(t *testing.T) {
	ctx := context.Background()
	own := uuid.New()
	refugee := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleRefugee, HouseholdID: &own}

	t.Run("own household plan is readable", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.plans.On("GetByID", ctx, id).Return(&domain.IntegrationPlan{ID: id, HouseholdID: own}, nil).Once()
		f.plans.On("ListGoals", ctx, id).Return(goalsWith(domain.GoalCompleted), nil).Once()

		detail, err := f.svc.GetByID(ctx, refugee, id)
		require.NoError(t, err)
		assert.Equal(t, 100, detail.Progress)
	})

	t.Run("other household plan is forbidden", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.plans.On("GetByID", ctx, id).Return(&domain.IntegrationPlan{ID: id, HouseholdID: uuid.New()}, nil).Once()

		_, err := f.svc.GetByID(ctx, refugee, id)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("list is pinned to own household", func(t *testing.T) {
		f := newFixture()
		other := uuid.New()
		f.plans.On("List", ctx, mock.MatchedBy(func(filter domain.PlanFilter) bool {
			return filter.HouseholdID != nil && *filter.HouseholdID == own
		}), mock.Anything).Return([]domain.IntegrationPlan{}, int64(0), nil).Once()

		_, err := f.svc.List(ctx, refugee, domain.PlanFilter{HouseholdID: &other}, domain.DefaultPagination())
		require.NoError(t, err)
		f.plans.AssertExpectations(t)
	})

	t.Run("refugee without household gets an empty page", func(t *testing.T) {
		f := newFixture()
		page, err := f.svc.List(ctx, domain.Actor{Role: domain.RoleRefugee}, domain.PlanFilter{}, domain.DefaultPagination())
		require.NoError(t, err)
		assert.Empty(t, page.Data)
		f.plans.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("refugee cannot add goals", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.CreateGoal(ctx, refugee, uuid.New(), domain.CreateGoalInput{Category: "housing", Description: "Find a flat"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestCreatePlanInheritsCaseworker(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	householdID := uuid.New()
	cwID := uuid.New()
	staff := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleAdmin}

	f.households.On("GetByID", ctx, householdID).Return(&domain.Household{ID: householdID, CaseworkerID: &cwID}, nil).Once()
	f.plans.On("Create", ctx, mock.MatchedBy(func(p *domain.IntegrationPlan) bool {
		return p.Status == domain.PlanDraft && p.CaseworkerID != nil && *p.CaseworkerID == cwID
	})).Return(nil).Once()

	_, err := f.svc.Create(ctx, staff, domain.CreatePlanInput{HouseholdID: householdID})
	require.NoError(t, err)
	f.plans.AssertExpectations(t)
}

func TestUpdateGoal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	staff := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleCaseworker}
	id := uuid.New()
	completed := domain.GoalCompleted

	f.plans.On("GetGoal", ctx, id).Return(&domain.IntegrationGoal{ID: id, Status: domain.GoalInProgress}, nil).Once()
	f.plans.On("UpdateGoal", ctx, mock.MatchedBy(func(g *domain.IntegrationGoal) bool {
		return g.Status == domain.GoalCompleted
	})).Return(nil).Once()

	goal, err := f.svc.UpdateGoal(ctx, staff, id, domain.UpdateGoalInput{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, domain.GoalCompleted, goal.Status)

	f.plans.On("GetGoal", ctx, mock.Anything).Return(nil, nil).Once()
	_, err = f.svc.UpdateGoal(ctx, staff, uuid.New(), domain.UpdateGoalInput{Status: &completed})
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
}
