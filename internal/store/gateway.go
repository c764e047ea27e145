package store

import (
	"context"

	"github.com/google/uuid"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/gateway"
)

// Gateway lists the remote calls the holders make. *gateway.Client
// implements it.
type Gateway interface {
	ListHouseholds(ctx context.Context, q gateway.Query) ([]domain.Household, error)
	GetHousehold(ctx context.Context, id uuid.UUID) (*domain.HouseholdDetail, error)
	CreateHousehold(ctx context.Context, input domain.CreateHouseholdInput) (*domain.Household, error)
	UpdateHousehold(ctx context.Context, id uuid.UUID, input domain.UpdateHouseholdInput) (*domain.Household, error)
	AssignCaseworker(ctx context.Context, id uuid.UUID, input domain.AssignCaseworkerInput) (*domain.Household, error)
	CloseHousehold(ctx context.Context, id uuid.UUID) (*domain.Household, error)
	AddHouseholdMember(ctx context.Context, id uuid.UUID, input domain.AddMemberInput) (*domain.Profile, error)
	SetHeadOfHousehold(ctx context.Context, id uuid.UUID, input domain.SetHeadInput) (*domain.Household, error)

	ListCaseNotes(ctx context.Context, householdID uuid.UUID) ([]domain.CaseNote, error)
	CreateCaseNote(ctx context.Context, householdID uuid.UUID, input domain.CreateCaseNoteInput) (*domain.CaseNote, error)
	ListAssessments(ctx context.Context, q gateway.Query) ([]domain.Assessment, error)
	GetAssessment(ctx context.Context, id uuid.UUID) (*domain.Assessment, error)
	CreateAssessment(ctx context.Context, input domain.CreateAssessmentInput) (*domain.Assessment, error)
	UpdateAssessment(ctx context.Context, id uuid.UUID, input domain.UpdateAssessmentInput) (*domain.Assessment, error)
	DeleteAssessment(ctx context.Context, id uuid.UUID) error
	ListReferrals(ctx context.Context, q gateway.Query) ([]domain.Referral, error)
	GetReferral(ctx context.Context, id uuid.UUID) (*domain.Referral, error)
	CreateReferral(ctx context.Context, input domain.CreateReferralInput) (*domain.Referral, error)
	UpdateReferral(ctx context.Context, id uuid.UUID, input domain.UpdateReferralInput) (*domain.Referral, error)
	DeleteReferral(ctx context.Context, id uuid.UUID) error

	ListPlans(ctx context.Context, q gateway.Query) ([]domain.IntegrationPlan, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*domain.PlanDetail, error)
	CreatePlan(ctx context.Context, input domain.CreatePlanInput) (*domain.IntegrationPlan, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, input domain.UpdatePlanInput) (*domain.IntegrationPlan, error)
	DeletePlan(ctx context.Context, id uuid.UUID) error
	ListGoals(ctx context.Context, planID uuid.UUID) ([]domain.IntegrationGoal, error)
	CreateGoal(ctx context.Context, planID uuid.UUID, input domain.CreateGoalInput) (*domain.IntegrationGoal, error)
	UpdateGoal(ctx context.Context, goalID uuid.UUID, input domain.UpdateGoalInput) (*domain.IntegrationGoal, error)
	DeleteGoal(ctx context.Context, goalID uuid.UUID) error

	ListEvents(ctx context.Context, q gateway.Query) ([]domain.CommunityEvent, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*domain.CommunityEvent, error)
	CreateEvent(ctx context.Context, input domain.CreateEventInput) (*domain.CommunityEvent, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, input domain.UpdateEventInput) (*domain.CommunityEvent, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	RegisterForEvent(ctx context.Context, eventID uuid.UUID, input domain.RegisterParticipantInput) (*domain.EventParticipation, error)
	ListParticipants(ctx context.Context, eventID uuid.UUID) ([]domain.EventParticipation, error)
	MarkAttendance(ctx context.Context, eventID, householdID uuid.UUID, input domain.AttendanceInput) (*domain.EventParticipation, error)

	ListRequests(ctx context.Context, q gateway.Query) ([]domain.Request, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	CreateRequest(ctx context.Context, input domain.CreateRequestInput) (*domain.Request, error)
	ReviewRequest(ctx context.Context, id uuid.UUID, input domain.ReviewRequestInput) (*domain.Request, error)
}

var _ Gateway = (*gateway.Client)(nil)
