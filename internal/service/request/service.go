package request

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/pkg/validate"
	"refugee-portal/internal/repository"
	"refugee-portal/internal/service/dashboard"
	"refugee-portal/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, actor domain.Actor, input domain.CreateRequestInput) (*domain.Request, error)
	GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Request, error)
	List(ctx context.Context, actor domain.Actor, filter domain.RequestFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Request], error)
	Review(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.ReviewRequestInput) (*domain.Request, error)
}

type service struct {
	requestRepo repository.RequestRepository
	profileRepo repository.ProfileRepository
	auditRepo   repository.AuditLogRepository
	notifSvc    notification.Service
	cache       dashboard.Invalidator
	log         *zap.Logger
}

func NewService(
	requestRepo repository.RequestRepository,
	profileRepo repository.ProfileRepository,
	auditRepo repository.AuditLogRepository,
	notifSvc notification.Service,
	cache dashboard.Invalidator,
	log *zap.Logger,
) Service {
	return &service{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		auditRepo:   auditRepo,
		notifSvc:    notifSvc,
		cache:       cache,
		log:         log,
	}
}

// Create files a request for the actor. Status always starts as pending.
func (s *service) Create(ctx context.Context, actor domain.Actor, input domain.CreateRequestInput) (*domain.Request, error) {
	input.Normalize()
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	req := &domain.Request{
		ID:          uuid.New(),
		UserID:      actor.ProfileID,
		Type:        input.Type,
		Urgency:     input.Urgency,
		Description: input.Description,
		Status:      domain.RequestPending,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, domain.AuditCreate, req.ID, nil, *req)
	s.invalidate(ctx)

	return req, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Request, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrRequestNotFound
	}
	if !actor.IsStaff() && req.UserID != actor.ProfileID {
		return nil, domain.ErrRequestNotFound
	}

	s.attachRequester(ctx, req)
	return req, nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, filter domain.RequestFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Request], error) {
	if !actor.IsStaff() {
		filter.UserID = &actor.ProfileID
	}

	params.Validate()
	requests, total, err := s.requestRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Request]{}, err
	}

	if actor.IsStaff() {
		for i := range requests {
			s.attachRequester(ctx, &requests[i])
		}
	}

	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

// Review moves a pending request to approved or rejected. Any other
// transition is refused, including a concurrent review that won the race.
func (s *service) Review(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.ReviewRequestInput) (*domain.Request, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	input.Normalize()
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrRequestNotFound
	}

	if err := validateReview(req, actor.ProfileID); err != nil {
		return nil, err
	}

	old := *req
	req.Status = input.Status
	req.ReviewedBy = &actor.ProfileID
	req.ReviewNote = input.Note

	ok, err := s.requestRepo.Review(ctx, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidTransition
	}

	s.audit(ctx, actor, domain.AuditReview, req.ID, old, *req)
	s.invalidate(ctx)
	s.notifyRequester(req)

	return req, nil
}

func validateReview(req *domain.Request, reviewerID uuid.UUID) error {
	if req.Status != domain.RequestPending {
		return domain.ErrInvalidTransition
	}
	if req.UserID == reviewerID {
		return domain.ErrSelfReview
	}
	return nil
}

func (s *service) attachRequester(ctx context.Context, req *domain.Request) {
	requester, err := s.profileRepo.GetByID(ctx, req.UserID)
	if err != nil {
		s.log.Warn("failed to load requester", zap.String("request_id", req.ID.String()), zap.Error(err))
		return
	}
	if requester != nil {
		req.Requester = requester.Summary()
	}
}

func (s *service) notifyRequester(req *domain.Request) {
	if s.notifSvc == nil {
		return
	}
	snapshot := *req
	go func() {
		if err := s.notifSvc.NotifyRequestDecision(context.Background(), &snapshot); err != nil {
			s.log.Error("failed to notify requester", zap.String("request_id", snapshot.ID.String()), zap.Error(err))
		}
	}()
}

func (s *service) audit(ctx context.Context, actor domain.Actor, action string, id uuid.UUID, oldValue, newValue interface{}) {
	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		Actor:      actor,
		Action:     action,
		EntityType: domain.EntityRequest,
		EntityID:   id,
		OldValue:   oldValue,
		NewValue:   newValue,
	}); err != nil {
		s.log.Warn("failed to write audit log", zap.String("request_id", id.String()), zap.Error(err))
	}
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
