package referral

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/mocks"
	"refugee-portal/internal/pkg/validate"
)

func newTestService(referrals *mocks.ReferralRepository, households *mocks.HouseholdRepository) Service {
	audit := new(mocks.AuditLogRepository)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	cache := new(mocks.DashboardInvalidator)
	cache.On("Invalidate", mock.Anything).Maybe()
	return NewService(referrals, households, audit, cache, zap.NewNop())
}

func TestList(t *testing.T) {
	ctx := context.Background()
	staff := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleNGO}

	t.Run("multiple statuses are forwarded", func(t *testing.T) {
		referrals := new(mocks.ReferralRepository)
		svc := newTestService(referrals, new(mocks.HouseholdRepository))
		filter := domain.ReferralFilter{Statuses: []domain.ReferralStatus{domain.ReferralPending, domain.ReferralSent}}

		referrals.On("List", ctx, filter, mock.Anything).Return([]domain.Referral{{ID: uuid.New()}}, int64(1), nil).Once()

		page, err := svc.List(ctx, staff, filter, domain.DefaultPagination())
		require.NoError(t, err)
		assert.Len(t, page.Data, 1)
		referrals.AssertExpectations(t)
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		svc := newTestService(new(mocks.ReferralRepository), new(mocks.HouseholdRepository))

		_, err := svc.List(ctx, staff, domain.ReferralFilter{Statuses: []domain.ReferralStatus{"lost"}}, domain.DefaultPagination())
		var verr *validate.Error
		assert.True(t, errors.As(err, &verr))
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	staff := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleCaseworker}
	referrals := new(mocks.ReferralRepository)
	households := new(mocks.HouseholdRepository)
	svc := newTestService(referrals, households)
	householdID := uuid.New()

	households.On("GetByID", ctx, householdID).Return(&domain.Household{ID: householdID}, nil).Once()
	referrals.On("Create", ctx, mock.MatchedBy(func(r *domain.Referral) bool {
		return r.Status == domain.ReferralPending && *r.CreatedBy == staff.ProfileID
	})).Return(nil).Once()

	ref, err := svc.Create(ctx, staff, domain.CreateReferralInput{
		HouseholdID:  householdID,
		ServiceType:  "mental_health",
		ProviderName: "City Wellbeing Service",
	})
	require.NoError(t, err)
	assert.Equal(t, "mental_health", ref.ServiceType)

	_, err = svc.Create(ctx, domain.Actor{Role: domain.RoleDonor}, domain.CreateReferralInput{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
