package catalog

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
	"refugee-portal/internal/pkg/validate"
)

func newTestService() (*mocks.CatalogRepository, *mocks.DashboardInvalidator, Service) {
	repo := new(mocks.CatalogRepository)
	cache := new(mocks.DashboardInvalidator)
	return repo, cache, NewService(repo, cache, zap.NewNop())
}

func TestCreateServiceRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newTestService()

	_, err := svc.CreateService(ctx, domain.Actor{Role: domain.RoleCaseworker}, domain.CreateServiceInput{Title: "Winter coats"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	repo.On("CreateService", ctx, mock.AnythingOfType("*domain.Service")).Return(nil).Once()
	created, err := svc.CreateService(ctx, domain.Actor{Role: domain.RoleAdmin}, domain.CreateServiceInput{Title: "Winter coats", TargetAmount: 500})
	require.NoError(t, err)
	assert.Equal(t, "Winter coats", created.Title)
	repo.AssertExpectations(t)
}

func TestDonate(t *testing.T) {
	ctx := context.Background()
	donor := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleDonor}

	t.Run("records donation and invalidates dashboards", func(t *testing.T) {
		repo, cache, svc := newTestService()
		serviceID := uuid.New()
		repo.On("CreateDonation", ctx, mock.MatchedBy(func(d *domain.Donation) bool {
			return d.DonorID == donor.ProfileID && d.Amount == 25 && *d.ServiceID == serviceID
		})).Return(nil).Once()
		cache.On("Invalidate", ctx).Once()

		_, err := svc.Donate(ctx, donor, domain.CreateDonationInput{Amount: 25, ServiceID: &serviceID})
		require.NoError(t, err)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		_, _, svc := newTestService()
		_, err := svc.Donate(ctx, donor, domain.CreateDonationInput{Amount: -5})
		var verr *validate.Error
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("refugees cannot donate", func(t *testing.T) {
		_, _, svc := newTestService()
		_, err := svc.Donate(ctx, domain.Actor{Role: domain.RoleRefugee}, domain.CreateDonationInput{Amount: 5})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown service surfaces not found", func(t *testing.T) {
		repo, _, svc := newTestService()
		id := uuid.New()
		repo.On("CreateDonation", ctx, mock.Anything).Return(domain.ErrServiceNotFound).Once()

		_, err := svc.Donate(ctx, donor, domain.CreateDonationInput{Amount: 5, ServiceID: &id})
		assert.ErrorIs(t, err, domain.ErrServiceNotFound)
	})
}

func TestListDonationsScopesDonor(t *testing.T) {
	ctx := context.Background()
	donor := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleDonor}

	repo, _, svc := newTestService()
	repo.On("ListDonations", ctx, &donor.ProfileID, mock.Anything).Return([]domain.Donation{{ID: uuid.New()}}, int64(1), nil).Once()
	repo.On("ListDonations", ctx, (*uuid.UUID)(nil), mock.Anything).Return([]domain.Donation{}, int64(4), nil).Once()

	page, err := svc.ListDonations(ctx, donor, domain.DefaultPagination())
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)

	page, err = svc.ListDonations(ctx, domain.Actor{Role: domain.RoleAdmin}, domain.DefaultPagination())
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.TotalItems)

	_, err = svc.ListDonations(ctx, domain.Actor{Role: domain.RoleNGO}, domain.DefaultPagination())
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertExpectations(t)
}
