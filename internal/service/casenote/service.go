package casenote

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/pkg/validate"
	"refugee-portal/internal/repository"
)

type Service interface {
	List(ctx context.Context, actor domain.Actor, householdID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.CaseNote], error)
	Create(ctx context.Context, actor domain.Actor, householdID uuid.UUID, input domain.CreateCaseNoteInput) (*domain.CaseNote, error)
}

type service struct {
	noteRepo      repository.CaseNoteRepository
	householdRepo repository.HouseholdRepository
	auditRepo     repository.AuditLogRepository
	log           *zap.Logger
}

func NewService(
	noteRepo repository.CaseNoteRepository,
	householdRepo repository.HouseholdRepository,
	auditRepo repository.AuditLogRepository,
	log *zap.Logger,
) Service {
	return &service{
		noteRepo:      noteRepo,
		householdRepo: householdRepo,
		auditRepo:     auditRepo,
		log:           log,
	}
}

// canReadSensitive limits safeguarding detail to the people working the case.
func canReadSensitive(actor domain.Actor) bool {
	return actor.Role == domain.RoleAdmin || actor.Role == domain.RoleCaseworker
}

func (s *service) List(ctx context.Context, actor domain.Actor, householdID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.CaseNote], error) {
	if !actor.IsStaff() {
		return domain.PaginatedResponse[domain.CaseNote]{}, domain.ErrForbidden
	}

	params.Validate()
	notes, total, err := s.noteRepo.ListByHousehold(ctx, householdID, canReadSensitive(actor), params)
	if err != nil {
		return domain.PaginatedResponse[domain.CaseNote]{}, err
	}
	return domain.NewPaginatedResponse(notes, params.Page, params.PageSize, total), nil
}

func (s *service) Create(ctx context.Context, actor domain.Actor, householdID uuid.UUID, input domain.CreateCaseNoteInput) (*domain.CaseNote, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	household, err := s.householdRepo.GetByID(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if household == nil {
		return nil, domain.ErrHouseholdNotFound
	}

	note := &domain.CaseNote{
		ID:          uuid.New(),
		HouseholdID: householdID,
		AuthorID:    actor.ProfileID,
		Category:    input.Category,
		IsSensitive: input.IsSensitive,
		Content:     input.Content,
	}
	if note.Category == "" {
		note.Category = "general"
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	// Sensitive content stays out of the audit trail.
	logged := *note
	if logged.IsSensitive {
		logged.Content = ""
	}
	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		Actor:      actor,
		Action:     domain.AuditCreate,
		EntityType: domain.EntityCaseNote,
		EntityID:   note.ID,
		NewValue:   logged,
	}); err != nil {
		s.log.Warn("failed to write audit log", zap.String("case_note_id", note.ID.String()), zap.Error(err))
	}

	return note, nil
}
