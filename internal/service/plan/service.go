package plan

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
	List(ctx context.Context, actor domain.Actor, filter domain.PlanFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.IntegrationPlan], error)
	GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.PlanDetail, error)
	Create(ctx context.Context, actor domain.Actor, input domain.CreatePlanInput) (*domain.IntegrationPlan, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.UpdatePlanInput) (*domain.IntegrationPlan, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error

	ListGoals(ctx context.Context, actor domain.Actor, planID uuid.UUID) ([]domain.IntegrationGoal, error)
	CreateGoal(ctx context.Context, actor domain.Actor, planID uuid.UUID, input domain.CreateGoalInput) (*domain.IntegrationGoal, error)
	UpdateGoal(ctx context.Context, actor domain.Actor, goalID uuid.UUID, input domain.UpdateGoalInput) (*domain.IntegrationGoal, error)
	DeleteGoal(ctx context.Context, actor domain.Actor, goalID uuid.UUID) error
}

type service struct {
	planRepo      repository.PlanRepository
	householdRepo repository.HouseholdRepository
	auditRepo     repository.AuditLogRepository
	cache         dashboard.Invalidator
	log           *zap.Logger
}

func NewService(
	planRepo repository.PlanRepository,
	householdRepo repository.HouseholdRepository,
	auditRepo repository.AuditLogRepository,
	cache dashboard.Invalidator,
	log *zap.Logger,
) Service {
	return &service{
		planRepo:      planRepo,
		householdRepo: householdRepo,
		auditRepo:     auditRepo,
		cache:         cache,
		log:           log,
	}
}

func (s *service) List(ctx context.Context, actor domain.Actor, filter domain.PlanFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.IntegrationPlan], error) {
	params.Validate()
	if !actor.IsStaff() {
		if actor.HouseholdID == nil {
			return domain.NewPaginatedResponse[domain.IntegrationPlan](nil, params.Page, params.PageSize, 0), nil
		}
		filter = domain.PlanFilter{HouseholdID: actor.HouseholdID, Status: filter.Status}
	}

	plans, total, err := s.planRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.IntegrationPlan]{}, err
	}
	return domain.NewPaginatedResponse(plans, params.Page, params.PageSize, total), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.PlanDetail, error) {
	plan, err := s.viewablePlan(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	goals, err := s.planRepo.ListGoals(ctx, id)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []domain.IntegrationGoal{}
	}

	return &domain.PlanDetail{
		IntegrationPlan: *plan,
		Goals:           goals,
		Progress:        domain.Progress(goals),
	}, nil
}

func (s *service) Create(ctx context.Context, actor domain.Actor, input domain.CreatePlanInput) (*domain.IntegrationPlan, error) {
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

	plan := &domain.IntegrationPlan{
		ID:           uuid.New(),
		HouseholdID:  input.HouseholdID,
		CaseworkerID: input.CaseworkerID,
		StartDate:    input.StartDate,
		ReviewDate:   input.ReviewDate,
		Status:       input.Status,
		OverallGoal:  input.OverallGoal,
	}
	if plan.Status == "" {
		plan.Status = domain.PlanDraft
	}
	if plan.CaseworkerID == nil {
		plan.CaseworkerID = household.CaseworkerID
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, domain.AuditCreate, domain.EntityPlan, plan.ID, nil, *plan)
	s.invalidate(ctx)
	return plan, nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.UpdatePlanInput) (*domain.IntegrationPlan, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	plan, err := s.getPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	old := *plan
	input.CaseworkerID.Apply(&plan.CaseworkerID)
	input.StartDate.Apply(&plan.StartDate)
	input.ReviewDate.Apply(&plan.ReviewDate)
	input.OverallGoal.Apply(&plan.OverallGoal)
	if input.Status != nil {
		plan.Status = *input.Status
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, domain.AuditUpdate, domain.EntityPlan, plan.ID, old, *plan)
	s.invalidate(ctx)
	return plan, nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if !actor.IsStaff() {
		return domain.ErrForbidden
	}

	plan, err := s.getPlan(ctx, id)
	if err != nil {
		return err
	}
	if err := s.planRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit(ctx, actor, domain.AuditDelete, domain.EntityPlan, id, *plan, nil)
	s.invalidate(ctx)
	return nil
}

func (s *service) ListGoals(ctx context.Context, actor domain.Actor, planID uuid.UUID) ([]domain.IntegrationGoal, error) {
	if _, err := s.viewablePlan(ctx, actor, planID); err != nil {
		return nil, err
	}

	goals, err := s.planRepo.ListGoals(ctx, planID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []domain.IntegrationGoal{}
	}
	return goals, nil
}

func (s *service) CreateGoal(ctx context.Context, actor domain.Actor, planID uuid.UUID, input domain.CreateGoalInput) (*domain.IntegrationGoal, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	if _, err := s.getPlan(ctx, planID); err != nil {
		return nil, err
	}

	goal := &domain.IntegrationGoal{
		ID:          uuid.New(),
		PlanID:      planID,
		Category:    input.Category,
		Description: input.Description,
		TargetDate:  input.TargetDate,
		Priority:    input.Priority,
		Status:      input.Status,
	}
	if goal.Priority == "" {
		goal.Priority = "medium"
	}
	if goal.Status == "" {
		goal.Status = domain.GoalPending
	}

	if err := s.planRepo.CreateGoal(ctx, goal); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, domain.AuditCreate, domain.EntityGoal, goal.ID, nil, *goal)
	return goal, nil
}

func (s *service) UpdateGoal(ctx context.Context, actor domain.Actor, goalID uuid.UUID, input domain.UpdateGoalInput) (*domain.IntegrationGoal, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	goal, err := s.getGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}

	old := *goal
	if input.Category != nil {
		goal.Category = *input.Category
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.Priority != nil {
		goal.Priority = *input.Priority
	}
	if input.Status != nil {
		goal.Status = *input.Status
	}
	input.TargetDate.Apply(&goal.TargetDate)

	if err := s.planRepo.UpdateGoal(ctx, goal); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, domain.AuditUpdate, domain.EntityGoal, goal.ID, old, *goal)
	return goal, nil
}

func (s *service) DeleteGoal(ctx context.Context, actor domain.Actor, goalID uuid.UUID) error {
	if !actor.IsStaff() {
		return domain.ErrForbidden
	}

	goal, err := s.getGoal(ctx, goalID)
	if err != nil {
		return err
	}
	if err := s.planRepo.DeleteGoal(ctx, goalID); err != nil {
		return err
	}

	s.audit(ctx, actor, domain.AuditDelete, domain.EntityGoal, goalID, *goal, nil)
	return nil
}

// viewablePlan loads a plan the actor may read: staff read any plan,
// refugees only the plans of their own household.
func (s *service) viewablePlan(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.IntegrationPlan, error) {
	plan, err := s.getPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanViewHousehold(plan.HouseholdID) {
		return nil, domain.ErrForbidden
	}
	return plan, nil
}

func (s *service) getPlan(ctx context.Context, id uuid.UUID) (*domain.IntegrationPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrPlanNotFound
	}
	return plan, nil
}

func (s *service) getGoal(ctx context.Context, id uuid.UUID) (*domain.IntegrationGoal, error) {
	goal, err := s.planRepo.GetGoal(ctx, id)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, domain.ErrGoalNotFound
	}
	return goal, nil
}

func (s *service) audit(ctx context.Context, actor domain.Actor, action, entityType string, id uuid.UUID, oldValue, newValue interface{}) {
	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   id,
		OldValue:   oldValue,
		NewValue:   newValue,
	}); err != nil {
		s.log.Warn("failed to write audit log", zap.String("entity_type", entityType), zap.String("entity_id", id.String()), zap.Error(err))
	}
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
