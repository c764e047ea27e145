package event

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
	List(ctx context.Context, actor domain.Actor, filter domain.EventFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.CommunityEvent], error)
	GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.CommunityEvent, error)
	Create(ctx context.Context, actor domain.Actor, input domain.CreateEventInput) (*domain.CommunityEvent, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.UpdateEventInput) (*domain.CommunityEvent, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error

	Register(ctx context.Context, actor domain.Actor, eventID uuid.UUID, input domain.RegisterParticipantInput) (*domain.EventParticipation, error)
	ListParticipants(ctx context.Context, actor domain.Actor, eventID uuid.UUID) ([]domain.EventParticipation, error)
	MarkAttendance(ctx context.Context, actor domain.Actor, eventID, householdID uuid.UUID, input domain.AttendanceInput) (*domain.EventParticipation, error)
}

type service struct {
	eventRepo     repository.EventRepository
	householdRepo repository.HouseholdRepository
	notifSvc      notification.Service
	cache         dashboard.Invalidator
	log           *zap.Logger
}

func NewService(
	eventRepo repository.EventRepository,
	householdRepo repository.HouseholdRepository,
	notifSvc notification.Service,
	cache dashboard.Invalidator,
	log *zap.Logger,
) Service {
	return &service{
		eventRepo:     eventRepo,
		householdRepo: householdRepo,
		notifSvc:      notifSvc,
		cache:         cache,
		log:           log,
	}
}

func (s *service) List(ctx context.Context, actor domain.Actor, filter domain.EventFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.CommunityEvent], error) {
	if !actor.IsStaff() {
		filter.PublishedOnly = true
	}

	params.Validate()
	events, total, err := s.eventRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.CommunityEvent]{}, err
	}
	return domain.NewPaginatedResponse(events, params.Page, params.PageSize, total), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.CommunityEvent, error) {
	event, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() && !event.IsPublished {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (s *service) Create(ctx context.Context, actor domain.Actor, input domain.CreateEventInput) (*domain.CommunityEvent, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	event := &domain.CommunityEvent{
		ID:              uuid.New(),
		Title:           input.Title,
		Description:     input.Description,
		Type:            input.Type,
		EventDate:       *input.EventDate,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Location:        input.Location,
		MaxParticipants: input.MaxParticipants,
		Status:          input.Status,
		IsPublished:     input.IsPublished,
		OrganizerID:     &actor.ProfileID,
	}
	if event.Status == "" {
		event.Status = domain.EventActive
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.log.Info("event created", zap.String("event_id", event.ID.String()), zap.String("date", event.EventDate.String()))
	s.invalidate(ctx)
	return event, nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.UpdateEventInput) (*domain.CommunityEvent, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	event, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Type != nil {
		event.Type = *input.Type
	}
	if input.EventDate != nil {
		event.EventDate = *input.EventDate
	}
	if input.MaxParticipants != nil {
		event.MaxParticipants = input.MaxParticipants
	}
	if input.Status != nil {
		event.Status = *input.Status
	}
	if input.IsPublished != nil {
		event.IsPublished = *input.IsPublished
	}
	input.Description.Apply(&event.Description)
	input.StartTime.Apply(&event.StartTime)
	input.EndTime.Apply(&event.EndTime)
	input.Location.Apply(&event.Location)

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return event, nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if !actor.IsStaff() {
		return domain.ErrForbidden
	}
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// Register signs a household up for an event. Staff may register any
// household; refugees only their own.
func (s *service) Register(ctx context.Context, actor domain.Actor, eventID uuid.UUID, input domain.RegisterParticipantInput) (*domain.EventParticipation, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if !actor.IsStaff() && !actor.InHousehold(input.HouseholdID) {
		return nil, domain.ErrForbidden
	}

	event, err := s.GetByID(ctx, actor, eventID)
	if err != nil {
		return nil, err
	}

	household, err := s.householdRepo.GetByID(ctx, input.HouseholdID)
	if err != nil {
		return nil, err
	}
	if household == nil {
		return nil, domain.ErrHouseholdNotFound
	}
	if household.IsClosed() {
		return nil, domain.ErrHouseholdClosed
	}

	participation := &domain.EventParticipation{
		ID:           uuid.New(),
		EventID:      eventID,
		HouseholdID:  input.HouseholdID,
		RegisteredBy: &actor.ProfileID,
	}
	if err := s.eventRepo.Register(ctx, participation); err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		snapshot := *event
		go func() {
			if err := s.notifSvc.NotifyEventRegistered(context.Background(), &snapshot, participation.HouseholdID); err != nil {
				s.log.Error("failed to notify household", zap.String("event_id", snapshot.ID.String()), zap.Error(err))
			}
		}()
	}

	return participation, nil
}

func (s *service) ListParticipants(ctx context.Context, actor domain.Actor, eventID uuid.UUID) ([]domain.EventParticipation, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if _, err := s.get(ctx, eventID); err != nil {
		return nil, err
	}

	participants, err := s.eventRepo.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []domain.EventParticipation{}
	}
	return participants, nil
}

func (s *service) MarkAttendance(ctx context.Context, actor domain.Actor, eventID, householdID uuid.UUID, input domain.AttendanceInput) (*domain.EventParticipation, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}

	participation, err := s.eventRepo.SetAttendance(ctx, eventID, householdID, input.Attended)
	if err != nil {
		return nil, err
	}
	if participation == nil {
		return nil, domain.ErrParticipantNotFound
	}
	return participation, nil
}

func (s *service) get(ctx context.Context, id uuid.UUID) (*domain.CommunityEvent, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
