package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/repository"
	"refugee-portal/internal/service/email"
)

type Service interface {
	List(ctx context.Context, profileID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, profileID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, profileID uuid.UUID) error
	GetUnreadCount(ctx context.Context, profileID uuid.UUID) (int64, error)

	NotifyRequestDecision(ctx context.Context, req *domain.Request) error
	NotifyHouseholdAssigned(ctx context.Context, household *domain.Household) error
	NotifyEventRegistered(ctx context.Context, event *domain.CommunityEvent, householdID uuid.UUID) error
}

type service struct {
	notifRepo   repository.NotificationRepository
	profileRepo repository.ProfileRepository
	accountRepo repository.AccountRepository
	emailSvc    email.Service
	log         *zap.Logger
}

func NewService(
	notifRepo repository.NotificationRepository,
	profileRepo repository.ProfileRepository,
	accountRepo repository.AccountRepository,
	emailSvc email.Service,
	log *zap.Logger,
) Service {
	return &service{
		notifRepo:   notifRepo,
		profileRepo: profileRepo,
		accountRepo: accountRepo,
		emailSvc:    emailSvc,
		log:         log,
	}
}

func (s *service) List(ctx context.Context, profileID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	params.Validate()
	notifications, total, err := s.notifRepo.ListByProfile(ctx, profileID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, profileID, id uuid.UUID) error {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notif == nil || notif.ProfileID != profileID {
		return domain.ErrNotificationNotFound
	}
	if notif.IsRead {
		return nil
	}
	return s.notifRepo.MarkAsRead(ctx, id)
}

func (s *service) MarkAllAsRead(ctx context.Context, profileID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, profileID)
}

func (s *service) GetUnreadCount(ctx context.Context, profileID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, profileID)
}

func (s *service) NotifyRequestDecision(ctx context.Context, req *domain.Request) error {
	notifType := domain.NotifRequestApproved
	title := "Request approved"
	if req.Status == domain.RequestRejected {
		notifType = domain.NotifRequestRejected
		title = "Request rejected"
	}

	message := fmt.Sprintf("Your %s request was %s", req.Type, req.Status)
	if req.ReviewNote != nil && strings.TrimSpace(*req.ReviewNote) != "" {
		message += ": " + *req.ReviewNote
	}

	err := s.create(ctx, domain.CreateNotificationInput{
		ProfileID: req.UserID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Data: map[string]string{
			"request_id": req.ID.String(),
			"status":     string(req.Status),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if s.emailSvc == nil {
		return nil
	}
	toEmail, name := s.recipient(ctx, req.UserID)
	if toEmail == "" {
		return nil
	}
	go func(requestType, status string, note *string) {
		if err := s.emailSvc.SendRequestDecisionEmail(context.Background(), toEmail, name, requestType, status, note); err != nil {
			s.log.Error("failed to send request decision email", zap.String("request_id", req.ID.String()), zap.Error(err))
		}
	}(req.Type, string(req.Status), req.ReviewNote)

	return nil
}

func (s *service) NotifyHouseholdAssigned(ctx context.Context, household *domain.Household) error {
	if household.CaseworkerID == nil {
		return nil
	}
	caseworkerID := *household.CaseworkerID

	message := "A household has been assigned to you"
	if household.Address != nil {
		message = fmt.Sprintf("Household at %s has been assigned to you", *household.Address)
	}

	err := s.create(ctx, domain.CreateNotificationInput{
		ProfileID: caseworkerID,
		Type:      domain.NotifHouseholdAssigned,
		Title:     "New household assigned",
		Message:   message,
		Data:      map[string]string{"household_id": household.ID.String()},
	})
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if s.emailSvc == nil {
		return nil
	}
	toEmail, name := s.recipient(ctx, caseworkerID)
	if toEmail == "" {
		return nil
	}
	go func(householdID string, address *string) {
		if err := s.emailSvc.SendHouseholdAssignedEmail(context.Background(), toEmail, name, householdID, address); err != nil {
			s.log.Error("failed to send household assignment email", zap.String("household_id", householdID), zap.Error(err))
		}
	}(household.ID.String(), household.Address)

	return nil
}

func (s *service) NotifyEventRegistered(ctx context.Context, event *domain.CommunityEvent, householdID uuid.UUID) error {
	members, err := s.profileRepo.ListByHousehold(ctx, householdID)
	if err != nil {
		return fmt.Errorf("failed to list household members: %w", err)
	}

	for _, member := range members {
		err := s.create(ctx, domain.CreateNotificationInput{
			ProfileID: member.ID,
			Type:      domain.NotifEventRegistered,
			Title:     "Event registration confirmed",
			Message:   fmt.Sprintf("Your household is registered for %s on %s", event.Title, event.EventDate),
			Data: map[string]string{
				"event_id":     event.ID.String(),
				"household_id": householdID.String(),
			},
		})
		if err != nil {
			s.log.Warn("failed to create event notification", zap.String("profile_id", member.ID.String()), zap.Error(err))
		}
	}

	return nil
}

func (s *service) create(ctx context.Context, input domain.CreateNotificationInput) error {
	var data json.RawMessage
	if input.Data != nil {
		raw, err := json.Marshal(input.Data)
		if err != nil {
			return err
		}
		data = raw
	}

	return s.notifRepo.Create(ctx, &domain.Notification{
		ID:        uuid.New(),
		ProfileID: input.ProfileID,
		Type:      input.Type,
		Title:     input.Title,
		Message:   input.Message,
		Data:      data,
	})
}

// recipient resolves the address and display name for a profile. Profiles
// without an account fall back to the profile email.
func (s *service) recipient(ctx context.Context, profileID uuid.UUID) (string, string) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil || profile == nil {
		return "", ""
	}

	account, err := s.accountRepo.GetByID(ctx, profileID)
	if err == nil && account != nil {
		return account.Email, profile.FullName
	}
	if profile.Email != nil {
		return *profile.Email, profile.FullName
	}
	return "", profile.FullName
}
