package household

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
	List(ctx context.Context, actor domain.Actor, filter domain.HouseholdFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Household], error)
	GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.HouseholdDetail, error)
	Create(ctx context.Context, actor domain.Actor, input domain.CreateHouseholdInput) (*domain.Household, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.UpdateHouseholdInput) (*domain.Household, error)
	AssignCaseworker(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.AssignCaseworkerInput) (*domain.Household, error)
	Close(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Household, error)
	AddMember(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.AddMemberInput) (*domain.Profile, error)
	SetHead(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.SetHeadInput) (*domain.Household, error)
}

type service struct {
	householdRepo repository.HouseholdRepository
	profileRepo   repository.ProfileRepository
	auditRepo     repository.AuditLogRepository
	notifSvc      notification.Service
	cache         dashboard.Invalidator
	log           *zap.Logger
}

func NewService(
	householdRepo repository.HouseholdRepository,
	profileRepo repository.ProfileRepository,
	auditRepo repository.AuditLogRepository,
	notifSvc notification.Service,
	cache dashboard.Invalidator,
	log *zap.Logger,
) Service {
	return &service{
		householdRepo: householdRepo,
		profileRepo:   profileRepo,
		auditRepo:     auditRepo,
		notifSvc:      notifSvc,
		cache:         cache,
		log:           log,
	}
}

func (s *service) List(ctx context.Context, actor domain.Actor, filter domain.HouseholdFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Household], error) {
	if !actor.IsStaff() {
		filter = domain.HouseholdFilter{MemberID: &actor.ProfileID}
	}

	params.Validate()
	households, total, err := s.householdRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Household]{}, err
	}
	return domain.NewPaginatedResponse(households, params.Page, params.PageSize, total), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.HouseholdDetail, error) {
	if !actor.CanViewHousehold(id) {
		return nil, domain.ErrForbidden
	}

	household, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	members, err := s.profileRepo.ListByHousehold(ctx, id)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []domain.Profile{}
	}

	detail := &domain.HouseholdDetail{Household: *household, Members: members}
	if household.HeadOfHouseholdID != nil {
		for i := range members {
			if members[i].ID == *household.HeadOfHouseholdID {
				detail.HeadOfHousehold = members[i].Summary()
				break
			}
		}
	}
	if household.CaseworkerID != nil {
		caseworker, err := s.profileRepo.GetByID(ctx, *household.CaseworkerID)
		if err != nil {
			return nil, err
		}
		if caseworker != nil {
			detail.Caseworker = caseworker.Summary()
		}
	}

	return detail, nil
}

func (s *service) Create(ctx context.Context, actor domain.Actor, input domain.CreateHouseholdInput) (*domain.Household, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	household := &domain.Household{
		ID:                uuid.New(),
		Address:           input.Address,
		AccommodationType: input.AccommodationType,
		LocalAuthority:    input.LocalAuthority,
		Status:            domain.HouseholdActive,
		CaseworkerID:      input.CaseworkerID,
		CreatedBy:         &actor.ProfileID,
	}

	if err := s.householdRepo.Create(ctx, household); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, domain.AuditCreate, household.ID, nil, *household)
	s.invalidate(ctx)
	if household.CaseworkerID != nil {
		s.notifyAssigned(household)
	}

	return household, nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.UpdateHouseholdInput) (*domain.Household, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	household, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if household.IsClosed() {
		return nil, domain.ErrHouseholdClosed
	}

	old := *household
	input.Address.Apply(&household.Address)
	input.AccommodationType.Apply(&household.AccommodationType)
	input.LocalAuthority.Apply(&household.LocalAuthority)
	action := domain.AuditUpdate
	if input.Status != nil {
		household.Status = *input.Status
		if household.IsClosed() {
			action = domain.AuditClose
		}
	}

	if err := s.householdRepo.Update(ctx, household); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, action, household.ID, old, *household)
	s.invalidate(ctx)
	return household, nil
}

func (s *service) AssignCaseworker(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.AssignCaseworkerInput) (*domain.Household, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	household, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if household.IsClosed() {
		return nil, domain.ErrHouseholdClosed
	}

	caseworker, err := s.profileRepo.GetByID(ctx, input.CaseworkerID)
	if err != nil {
		return nil, err
	}
	if caseworker == nil {
		return nil, domain.ErrProfileNotFound
	}
	if !caseworker.Role.IsStaff() {
		return nil, &validate.Error{Fields: map[string]string{"caseworker_id": "caseworker_id must reference a staff profile"}}
	}

	old := *household
	household.CaseworkerID = &caseworker.ID
	if err := s.householdRepo.Update(ctx, household); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, domain.AuditAssign, household.ID, old, *household)
	s.invalidate(ctx)
	s.notifyAssigned(household)
	return household, nil
}

// Close is terminal: a closed household accepts no further changes.
func (s *service) Close(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Household, error) {
	closed := domain.HouseholdClosed
	return s.Update(ctx, actor, id, domain.UpdateHouseholdInput{Status: &closed})
}

func (s *service) AddMember(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.AddMemberInput) (*domain.Profile, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}

	household, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if household.IsClosed() {
		return nil, domain.ErrHouseholdClosed
	}

	if input.ProfileID != nil {
		if err := s.householdRepo.AddMember(ctx, id, *input.ProfileID); err != nil {
			return nil, err
		}
		member, err := s.profileRepo.GetByID(ctx, *input.ProfileID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, domain.ErrProfileNotFound
		}
		s.audit(ctx, actor, domain.AuditUpdate, id, nil, map[string]string{"member_added": member.ID.String()})
		return member, nil
	}

	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	member := &domain.Profile{
		ID:          uuid.New(),
		FullName:    input.FullName,
		Role:        domain.RoleRefugee,
		Email:       input.Email,
		Phone:       input.Phone,
		Gender:      input.Gender,
		Nationality: input.Nationality,
		DateOfBirth: input.DateOfBirth,
		HouseholdID: &household.ID,
	}
	if err := s.householdRepo.CreateMember(ctx, member); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, domain.AuditUpdate, id, nil, map[string]string{"member_added": member.ID.String()})
	s.invalidate(ctx)
	return member, nil
}

func (s *service) SetHead(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.SetHeadInput) (*domain.Household, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	household, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if household.IsClosed() {
		return nil, domain.ErrHouseholdClosed
	}

	member, err := s.profileRepo.GetByID(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrProfileNotFound
	}
	if !member.BelongsTo(id) {
		return nil, domain.ErrNotHouseholdMember
	}

	old := *household
	household.HeadOfHouseholdID = &member.ID
	if err := s.householdRepo.Update(ctx, household); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, domain.AuditUpdate, household.ID, old, *household)
	return household, nil
}

func (s *service) get(ctx context.Context, id uuid.UUID) (*domain.Household, error) {
	household, err := s.householdRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if household == nil {
		return nil, domain.ErrHouseholdNotFound
	}
	return household, nil
}

func (s *service) audit(ctx context.Context, actor domain.Actor, action string, id uuid.UUID, oldValue, newValue interface{}) {
	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		Actor:      actor,
		Action:     action,
		EntityType: domain.EntityHousehold,
		EntityID:   id,
		OldValue:   oldValue,
		NewValue:   newValue,
	}); err != nil {
		s.log.Warn("failed to write audit log", zap.String("household_id", id.String()), zap.Error(err))
	}
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func (s *service) notifyAssigned(household *domain.Household) {
	if s.notifSvc == nil {
		return
	}
	snapshot := *household
	go func() {
		if err := s.notifSvc.NotifyHouseholdAssigned(context.Background(), &snapshot); err != nil {
			s.log.Error("failed to notify caseworker", zap.String("household_id", snapshot.ID.String()), zap.Error(err))
		}
	}()
}
