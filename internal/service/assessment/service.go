package assessment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/pkg/validate"
	"refugee-portal/internal/repository"
	"refugee-portal/internal/service/dashboard"
)

type Service interface {
	Create(ctx context.Context, actor domain.Actor, input domain.CreateAssessmentInput) (*domain.Assessment, error)
	GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Assessment, error)
	List(ctx context.Context, actor domain.Actor, filter domain.AssessmentFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Assessment], error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.UpdateAssessmentInput) (*domain.Assessment, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

type service struct {
	assessmentRepo repository.AssessmentRepository
	householdRepo  repository.HouseholdRepository
	auditRepo      repository.AuditLogRepository
	cache          dashboard.Invalidator
	log            *zap.Logger
	now            func() time.Time
}

func NewService(
	assessmentRepo repository.AssessmentRepository,
	householdRepo repository.HouseholdRepository,
	auditRepo repository.AuditLogRepository,
	cache dashboard.Invalidator,
	log *zap.Logger,
) Service {
	return &service{
		assessmentRepo: assessmentRepo,
		householdRepo:  householdRepo,
		auditRepo:      auditRepo,
		cache:          cache,
		log:            log,
		now:            time.Now,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, input domain.CreateAssessmentInput) (*domain.Assessment, error) {
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

	a := &domain.Assessment{
		ID:          uuid.New(),
		HouseholdID: input.HouseholdID,
		Type:        input.Type,
		Priority:    input.Priority,
		Status:      input.Status,
		DueDate:     input.DueDate,
		Notes:       input.Notes,
		AssessorID:  input.AssessorID,
	}
	if a.Priority == "" {
		a.Priority = "medium"
	}
	if a.Status == "" {
		a.Status = domain.AssessmentPending
	}
	if a.AssessorID == nil {
		a.AssessorID = &actor.ProfileID
	}
	s.stampCompletion(a)

	if err := s.assessmentRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, domain.AuditCreate, a.ID, nil, *a)
	s.invalidate(ctx)
	return a, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Assessment, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	return s.get(ctx, id)
}

func (s *service) List(ctx context.Context, actor domain.Actor, filter domain.AssessmentFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Assessment], error) {
	if !actor.IsStaff() {
		return domain.PaginatedResponse[domain.Assessment]{}, domain.ErrForbidden
	}

	params.Validate()
	assessments, total, err := s.assessmentRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Assessment]{}, err
	}
	return domain.NewPaginatedResponse(assessments, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.UpdateAssessmentInput) (*domain.Assessment, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	old := *a
	if input.Type != nil {
		a.Type = *input.Type
	}
	if input.Priority != nil {
		a.Priority = *input.Priority
	}
	if input.Status != nil {
		a.Status = *input.Status
	}
	input.DueDate.Apply(&a.DueDate)
	input.Notes.Apply(&a.Notes)
	input.AssessorID.Apply(&a.AssessorID)
	s.stampCompletion(a)

	if err := s.assessmentRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, domain.AuditUpdate, a.ID, old, *a)
	s.invalidate(ctx)
	return a, nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if !actor.IsStaff() {
		return domain.ErrForbidden
	}

	a, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.assessmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit(ctx, actor, domain.AuditDelete, id, *a, nil)
	s.invalidate(ctx)
	return nil
}

// stampCompletion keeps completed_at in step with the status.
func (s *service) stampCompletion(a *domain.Assessment) {
	switch {
	case a.Status == domain.AssessmentCompleted && a.CompletedAt == nil:
		now := s.now()
		a.CompletedAt = &now
	case a.Status != domain.AssessmentCompleted:
		a.CompletedAt = nil
	}
}

func (s *service) get(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	a, err := s.assessmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAssessmentNotFound
	}
	return a, nil
}

func (s *service) audit(ctx context.Context, actor domain.Actor, action string, id uuid.UUID, oldValue, newValue interface{}) {
	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		Actor:      actor,
		Action:     action,
		EntityType: domain.EntityAssessment,
		EntityID:   id,
		OldValue:   oldValue,
		NewValue:   newValue,
	}); err != nil {
		s.log.Warn("failed to write audit log", zap.String("assessment_id", id.String()), zap.Error(err))
	}
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
