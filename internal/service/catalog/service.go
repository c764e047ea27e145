package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/pkg/validate"
	"refugee-portal/internal/repository"
	"refugee-portal/internal/service/dashboard"
)

type Service interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
	CreateService(ctx context.Context, actor domain.Actor, input domain.CreateServiceInput) (*domain.Service, error)
	DeleteService(ctx context.Context, actor domain.Actor, id uuid.UUID) error

	Donate(ctx context.Context, actor domain.Actor, input domain.CreateDonationInput) (*domain.Donation, error)
	ListDonations(ctx context.Context, actor domain.Actor, params domain.PaginationParams) (domain.PaginatedResponse[domain.Donation], error)
}

type service struct {
	catalogRepo repository.CatalogRepository
	cache       dashboard.Invalidator
	log         *zap.Logger
}

func NewService(catalogRepo repository.CatalogRepository, cache dashboard.Invalidator, log *zap.Logger) Service {
	return &service{
		catalogRepo: catalogRepo,
		cache:       cache,
		log:         log,
	}
}

func (s *service) ListServices(ctx context.Context) ([]domain.Service, error) {
	services, err := s.catalogRepo.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []domain.Service{}
	}
	return services, nil
}

func (s *service) CreateService(ctx context.Context, actor domain.Actor, input domain.CreateServiceInput) (*domain.Service, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	svc := &domain.Service{
		ID:           uuid.New(),
		Title:        input.Title,
		Category:     input.Category,
		Description:  input.Description,
		TargetAmount: input.TargetAmount,
	}
	if err := s.catalogRepo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *service) DeleteService(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return s.catalogRepo.DeleteService(ctx, id)
}

// Donate records a donation from the actor. A targeted service has its
// raised amount bumped atomically by the repository.
func (s *service) Donate(ctx context.Context, actor domain.Actor, input domain.CreateDonationInput) (*domain.Donation, error) {
	if actor.Role != domain.RoleDonor && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	donation := &domain.Donation{
		ID:        uuid.New(),
		DonorID:   actor.ProfileID,
		ServiceID: input.ServiceID,
		Amount:    input.Amount,
		Campaign:  input.Campaign,
	}
	if err := s.catalogRepo.CreateDonation(ctx, donation); err != nil {
		return nil, err
	}

	s.log.Info("donation recorded",
		zap.String("donation_id", donation.ID.String()),
		zap.String("donor_id", donation.DonorID.String()),
		zap.Float64("amount", donation.Amount),
	)
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return donation, nil
}

func (s *service) ListDonations(ctx context.Context, actor domain.Actor, params domain.PaginationParams) (domain.PaginatedResponse[domain.Donation], error) {
	var donorID *uuid.UUID
	switch {
	case actor.IsAdmin():
	case actor.Role == domain.RoleDonor:
		donorID = &actor.ProfileID
	default:
		return domain.PaginatedResponse[domain.Donation]{}, domain.ErrForbidden
	}

	params.Validate()
	donations, total, err := s.catalogRepo.ListDonations(ctx, donorID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Donation]{}, err
	}
	return domain.NewPaginatedResponse(donations, params.Page, params.PageSize, total), nil
}
