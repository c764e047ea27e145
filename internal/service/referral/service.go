package referral

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
	Create(ctx context.Context, actor domain.Actor, input domain.CreateReferralInput) (*domain.Referral, error)
	GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Referral, error)
	List(ctx context.Context, actor domain.Actor, filter domain.ReferralFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Referral], error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.UpdateReferralInput) (*domain.Referral, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

type service struct {
	referralRepo  repository.ReferralRepository
	householdRepo repository.HouseholdRepository
	auditRepo     repository.AuditLogRepository
	cache         dashboard.Invalidator
	log           *zap.Logger
}

func NewService(
	referralRepo repository.ReferralRepository,
	householdRepo repository.HouseholdRepository,
	auditRepo repository.AuditLogRepository,
	cache dashboard.Invalidator,
	log *zap.Logger,
) Service {
	return &service{
		referralRepo:  referralRepo,
		householdRepo: householdRepo,
		auditRepo:     auditRepo,
		cache:         cache,
		log:           log,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, input domain.CreateReferralInput) (*domain.Referral, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	household, err := s.householdRepo.GetByID(ctx, input.HouseholdID)
	if err != nil {
		return nil, err
	}
	if household == nil {
		return nil, domain.ErrHouseholdNotFound
	}

	ref := &domain.Referral{
		ID:           uuid.New(),
		HouseholdID:  input.HouseholdID,
		ServiceType:  input.ServiceType,
		ProviderName: input.ProviderName,
		Status:       input.Status,
		ReferredDate: input.ReferredDate,
		CheckInDate:  input.CheckInDate,
		Notes:        input.Notes,
		CreatedBy:    &actor.ProfileID,
	}
	if ref.Status == "" {
		ref.Status = domain.ReferralPending
	}

	if err := s.referralRepo.Create(ctx, ref); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, domain.AuditCreate, ref.ID, nil, *ref)
	s.invalidate(ctx)
	return ref, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Referral, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	return s.get(ctx, id)
}

func (s *service) List(ctx context.Context, actor domain.Actor, filter domain.ReferralFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Referral], error) {
	if !actor.IsStaff() {
		return domain.PaginatedResponse[domain.Referral]{}, domain.ErrForbidden
	}
	for _, st := range filter.Statuses {
		if !st.IsValid() {
			return domain.PaginatedResponse[domain.Referral]{}, &validate.Error{Fields: map[string]string{"status": "status has an unknown value " + string(st)}}
		}
	}

	params.Validate()
	referrals, total, err := s.referralRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Referral]{}, err
	}
	return domain.NewPaginatedResponse(referrals, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.UpdateReferralInput) (*domain.Referral, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	ref, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	old := *ref
	if input.ServiceType != nil {
		ref.ServiceType = *input.ServiceType
	}
	if input.ProviderName != nil {
		ref.ProviderName = *input.ProviderName
	}
	if input.Status != nil {
		ref.Status = *input.Status
	}
	input.ReferredDate.Apply(&ref.ReferredDate)
	input.CheckInDate.Apply(&ref.CheckInDate)
	input.Notes.Apply(&ref.Notes)

	if err := s.referralRepo.Update(ctx, ref); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, domain.AuditUpdate, ref.ID, old, *ref)
	s.invalidate(ctx)
	return ref, nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if !actor.IsStaff() {
		return domain.ErrForbidden
	}

	ref, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.referralRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit(ctx, actor, domain.AuditDelete, id, *ref, nil)
	s.invalidate(ctx)
	return nil
}

func (s *service) get(ctx context.Context, id uuid.UUID) (*domain.Referral, error) {
	ref, err := s.referralRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, domain.ErrReferralNotFound
	}
	return ref, nil
}

func (s *service) audit(ctx context.Context, actor domain.Actor, action string, id uuid.UUID, oldValue, newValue interface{}) {
	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		Actor:      actor,
		Action:     action,
		EntityType: domain.EntityReferral,
		EntityID:   id,
		OldValue:   oldValue,
		NewValue:   newValue,
	}); err != nil {
		s.log.Warn("failed to write audit log", zap.String("referral_id", id.String()), zap.Error(err))
	}
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
