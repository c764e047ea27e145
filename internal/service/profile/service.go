package profile

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
	List(ctx context.Context, actor domain.Actor, filter domain.ProfileFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Profile], error)
	GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.UpdateProfileInput) (*domain.Profile, error)
}

type service struct {
	profileRepo repository.ProfileRepository
	auditRepo   repository.AuditLogRepository
	cache       dashboard.Invalidator
	log         *zap.Logger
}

func NewService(profileRepo repository.ProfileRepository, auditRepo repository.AuditLogRepository, cache dashboard.Invalidator, log *zap.Logger) Service {
	return &service{
		profileRepo: profileRepo,
		auditRepo:   auditRepo,
		cache:       cache,
		log:         log,
	}
}

func (s *service) List(ctx context.Context, actor domain.Actor, filter domain.ProfileFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Profile], error) {
	if !actor.IsStaff() {
		return domain.PaginatedResponse[domain.Profile]{}, domain.ErrForbidden
	}

	params.Validate()
	profiles, total, err := s.profileRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Profile]{}, err
	}
	return domain.NewPaginatedResponse(profiles, params.Page, params.PageSize, total), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Profile, error) {
	if !actor.IsStaff() && actor.ProfileID != id {
		return nil, domain.ErrForbidden
	}

	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.UpdateProfileInput) (*domain.Profile, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if !actor.IsStaff() && actor.ProfileID != id {
		return nil, domain.ErrForbidden
	}
	if input.Role != nil && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if input.HouseholdID.Set && !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}

	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}

	old := *profile

	if input.FullName != nil {
		profile.FullName = *input.FullName
	}
	input.Phone.Apply(&profile.Phone)
	input.Gender.Apply(&profile.Gender)
	input.Nationality.Apply(&profile.Nationality)
	input.DateOfBirth.Apply(&profile.DateOfBirth)
	input.HouseholdID.Apply(&profile.HouseholdID)
	if input.RequestedServices != nil {
		profile.RequestedServices = input.RequestedServices
	}
	if input.Role != nil {
		profile.Role = *input.Role
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	if profile.Role != old.Role && s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		Actor:      actor,
		Action:     domain.AuditUpdate,
		EntityType: domain.EntityProfile,
		EntityID:   profile.ID,
		OldValue:   old,
		NewValue:   *profile,
	}); err != nil {
		s.log.Warn("failed to write audit log", zap.String("profile_id", profile.ID.String()), zap.Error(err))
	}

	return profile, nil
}
