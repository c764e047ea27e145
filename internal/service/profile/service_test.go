package profile

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

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	self := domain.Actor{ProfileID: id, Role: domain.RoleRefugee}

	t.Run("self can update contact fields", func(t *testing.T) {
		profiles := new(mocks.ProfileRepository)
		audit := new(mocks.AuditLogRepository)
		svc := NewService(profiles, audit, nil, zap.NewNop())

		phone := "+44 7700 900123"
		profiles.On("GetByID", ctx, id).Return(&domain.Profile{ID: id, FullName: "Amina", Role: domain.RoleRefugee}, nil).Once()
		profiles.On("Update", ctx, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.Phone != nil && *p.Phone == phone && p.Role == domain.RoleRefugee
		})).Return(nil).Once()
		audit.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Once()

		updated, err := svc.Update(ctx, self, id, domain.UpdateProfileInput{Phone: domain.SetString(phone)})
		require.NoError(t, err)
		assert.Equal(t, phone, *updated.Phone)
		profiles.AssertExpectations(t)
	})

	t.Run("refugee cannot change own role", func(t *testing.T) {
		svc := NewService(new(mocks.ProfileRepository), new(mocks.AuditLogRepository), nil, zap.NewNop())
		role := domain.RoleAdmin

		_, err := svc.Update(ctx, self, id, domain.UpdateProfileInput{Role: &role})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("caseworker cannot change role but can move household", func(t *testing.T) {
		profiles := new(mocks.ProfileRepository)
		audit := new(mocks.AuditLogRepository)
		svc := NewService(profiles, audit, nil, zap.NewNop())
		caseworker := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleCaseworker}
		role := domain.RoleDonor

		_, err := svc.Update(ctx, caseworker, id, domain.UpdateProfileInput{Role: &role})
		assert.ErrorIs(t, err, domain.ErrForbidden)

		householdID := uuid.New()
		profiles.On("GetByID", ctx, id).Return(&domain.Profile{ID: id, Role: domain.RoleRefugee}, nil).Once()
		profiles.On("Update", ctx, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.HouseholdID != nil && *p.HouseholdID == householdID
		})).Return(nil).Once()
		audit.On("Create", ctx, mock.Anything).Return(nil).Once()

		_, err = svc.Update(ctx, caseworker, id, domain.UpdateProfileInput{HouseholdID: domain.SetUUID(householdID)})
		require.NoError(t, err)
	})

	t.Run("admin role change refreshes dashboard counts", func(t *testing.T) {
		profiles := new(mocks.ProfileRepository)
		audit := new(mocks.AuditLogRepository)
		cache := new(mocks.DashboardInvalidator)
		svc := NewService(profiles, audit, cache, zap.NewNop())
		admin := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleAdmin}
		role := domain.RoleCaseworker

		profiles.On("GetByID", ctx, id).Return(&domain.Profile{ID: id, Role: domain.RoleRefugee}, nil).Once()
		profiles.On("Update", ctx, mock.Anything).Return(nil).Once()
		audit.On("Create", ctx, mock.Anything).Return(nil).Once()
		cache.On("Invalidate", ctx).Once()

		updated, err := svc.Update(ctx, admin, id, domain.UpdateProfileInput{Role: &role})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleCaseworker, updated.Role)
		cache.AssertExpectations(t)
	})

	t.Run("contact change leaves dashboard cache alone", func(t *testing.T) {
		profiles := new(mocks.ProfileRepository)
		audit := new(mocks.AuditLogRepository)
		cache := new(mocks.DashboardInvalidator)
		svc := NewService(profiles, audit, cache, zap.NewNop())
		name := "Amina Y."

		profiles.On("GetByID", ctx, id).Return(&domain.Profile{ID: id, Role: domain.RoleRefugee}, nil).Once()
		profiles.On("Update", ctx, mock.Anything).Return(nil).Once()
		audit.On("Create", ctx, mock.Anything).Return(nil).Once()

		_, err := svc.Update(ctx, self, id, domain.UpdateProfileInput{FullName: &name})
		require.NoError(t, err)
		cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("other refugee is forbidden", func(t *testing.T) {
		svc := NewService(new(mocks.ProfileRepository), new(mocks.AuditLogRepository), nil, zap.NewNop())
		other := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleRefugee}
		name := "Someone Else"

		_, err := svc.Update(ctx, other, id, domain.UpdateProfileInput{FullName: &name})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	profiles := new(mocks.ProfileRepository)
	svc := NewService(profiles, new(mocks.AuditLogRepository), nil, zap.NewNop())
	id := uuid.New()

	profiles.On("GetByID", ctx, id).Return(nil, nil).Once()

	_, err := svc.GetByID(ctx, domain.Actor{Role: domain.RoleAdmin}, id)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = svc.GetByID(ctx, domain.Actor{ProfileID: uuid.New(), Role: domain.RoleDonor}, id)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
