package store

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/gateway"
)

// Households caches the household list and the members of the household
// last opened with Get.
type Households struct {
	gw      Gateway
	log     *zap.Logger
	List    *Collection[domain.Household]
	Members *Collection[domain.Profile]
}

func NewHouseholds(gw Gateway, log *zap.Logger) *Households {
	return &Households{
		gw:      gw,
		log:     log,
		List:    NewCollection(func(h domain.Household) uuid.UUID { return h.ID }),
		Members: NewCollection(func(p domain.Profile) uuid.UUID { return p.ID }),
	}
}

// Fetch loads households, optionally narrowed by q (for example
// caseworker_id).
func (s *Households) Fetch(ctx context.Context, q gateway.Query) ([]domain.Household, error) {
	return fetch(ctx, s.op("fetch households"), s.List, func(ctx context.Context) ([]domain.Household, error) {
		return s.gw.ListHouseholds(ctx, q)
	})
}

// Get loads one household with its members and refreshes its cached row.
func (s *Households) Get(ctx context.Context, id uuid.UUID) (*domain.HouseholdDetail, error) {
	var detail *domain.HouseholdDetail
	_, err := write(ctx, s.op("get household"), s.List, inPlace, func(ctx context.Context) (*domain.Household, error) {
		d, err := s.gw.GetHousehold(ctx, id)
		if err != nil {
			return nil, err
		}
		detail = d
		return &d.Household, nil
	})
	if err != nil {
		return nil, err
	}
	s.Members.replaceAll(detail.Members)
	s.Members.finish(nil)
	return detail, nil
}

// AddMember creates a profile inside the household.
func (s *Households) AddMember(ctx context.Context, id uuid.UUID, input domain.AddMemberInput) (*domain.Profile, error) {
	return write(ctx, s.op("add household member"), s.Members, atBack, func(ctx context.Context) (*domain.Profile, error) {
		return s.gw.AddHouseholdMember(ctx, id, input)
	})
}

func (s *Households) Create(ctx context.Context, input domain.CreateHouseholdInput) (*domain.Household, error) {
	return write(ctx, s.op("create household"), s.List, atFront, func(ctx context.Context) (*domain.Household, error) {
		return s.gw.CreateHousehold(ctx, input)
	})
}

func (s *Households) Update(ctx context.Context, id uuid.UUID, input domain.UpdateHouseholdInput) (*domain.Household, error) {
	return write(ctx, s.op("update household"), s.List, inPlace, func(ctx context.Context) (*domain.Household, error) {
		return s.gw.UpdateHousehold(ctx, id, input)
	})
}

func (s *Households) AssignCaseworker(ctx context.Context, id, caseworkerID uuid.UUID) (*domain.Household, error) {
	return write(ctx, s.op("assign caseworker"), s.List, inPlace, func(ctx context.Context) (*domain.Household, error) {
		return s.gw.AssignCaseworker(ctx, id, domain.AssignCaseworkerInput{CaseworkerID: caseworkerID})
	})
}

func (s *Households) SetHead(ctx context.Context, id, profileID uuid.UUID) (*domain.Household, error) {
	return write(ctx, s.op("set head of household"), s.List, inPlace, func(ctx context.Context) (*domain.Household, error) {
		return s.gw.SetHeadOfHousehold(ctx, id, domain.SetHeadInput{ProfileID: profileID})
	})
}

func (s *Households) Close(ctx context.Context, id uuid.UUID) (*domain.Household, error) {
	return write(ctx, s.op("close household"), s.List, inPlace, func(ctx context.Context) (*domain.Household, error) {
		return s.gw.CloseHousehold(ctx, id)
	})
}

func (s *Households) Reset() {
	s.List.Reset()
	s.Members.Reset()
}

func (s *Households) op(name string) op { return op{log: s.log, name: name} }

// Casework holds the assessments, case notes and referrals of the households
// a caseworker is looking at.
type Casework struct {
	gw          Gateway
	log         *zap.Logger
	Assessments *Collection[domain.Assessment]
	Notes       *Collection[domain.CaseNote]
	Referrals   *Collection[domain.Referral]
}

func NewCasework(gw Gateway, log *zap.Logger) *Casework {
	return &Casework{
		gw:          gw,
		log:         log,
		Assessments: NewCollection(func(a domain.Assessment) uuid.UUID { return a.ID }),
		Notes:       NewCollection(func(n domain.CaseNote) uuid.UUID { return n.ID }),
		Referrals:   NewCollection(func(r domain.Referral) uuid.UUID { return r.ID }),
	}
}

func (s *Casework) FetchAssessments(ctx context.Context, q gateway.Query) ([]domain.Assessment, error) {
	return fetch(ctx, s.op("fetch assessments"), s.Assessments, func(ctx context.Context) ([]domain.Assessment, error) {
		return s.gw.ListAssessments(ctx, q)
	})
}

func (s *Casework) GetAssessment(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	return write(ctx, s.op("get assessment"), s.Assessments, inPlace, func(ctx context.Context) (*domain.Assessment, error) {
		return s.gw.GetAssessment(ctx, id)
	})
}

func (s *Casework) CreateAssessment(ctx context.Context, input domain.CreateAssessmentInput) (*domain.Assessment, error) {
	return write(ctx, s.op("create assessment"), s.Assessments, atFront, func(ctx context.Context) (*domain.Assessment, error) {
		return s.gw.CreateAssessment(ctx, input)
	})
}

func (s *Casework) UpdateAssessment(ctx context.Context, id uuid.UUID, input domain.UpdateAssessmentInput) (*domain.Assessment, error) {
	return write(ctx, s.op("update assessment"), s.Assessments, inPlace, func(ctx context.Context) (*domain.Assessment, error) {
		return s.gw.UpdateAssessment(ctx, id, input)
	})
}

func (s *Casework) DeleteAssessment(ctx context.Context, id uuid.UUID) error {
	return drop(ctx, s.op("delete assessment"), s.Assessments, id, s.gw.DeleteAssessment)
}

func (s *Casework) FetchNotes(ctx context.Context, householdID uuid.UUID) ([]domain.CaseNote, error) {
	return fetch(ctx, s.op("fetch case notes"), s.Notes, func(ctx context.Context) ([]domain.CaseNote, error) {
		return s.gw.ListCaseNotes(ctx, householdID)
	})
}

func (s *Casework) CreateNote(ctx context.Context, householdID uuid.UUID, input domain.CreateCaseNoteInput) (*domain.CaseNote, error) {
	return write(ctx, s.op("create case note"), s.Notes, atFront, func(ctx context.Context) (*domain.CaseNote, error) {
		return s.gw.CreateCaseNote(ctx, householdID, input)
	})
}

func (s *Casework) FetchReferrals(ctx context.Context, q gateway.Query) ([]domain.Referral, error) {
	return fetch(ctx, s.op("fetch referrals"), s.Referrals, func(ctx context.Context) ([]domain.Referral, error) {
		return s.gw.ListReferrals(ctx, q)
	})
}

func (s *Casework) GetReferral(ctx context.Context, id uuid.UUID) (*domain.Referral, error) {
	return write(ctx, s.op("get referral"), s.Referrals, inPlace, func(ctx context.Context) (*domain.Referral, error) {
		return s.gw.GetReferral(ctx, id)
	})
}

func (s *Casework) CreateReferral(ctx context.Context, input domain.CreateReferralInput) (*domain.Referral, error) {
	return write(ctx, s.op("create referral"), s.Referrals, atFront, func(ctx context.Context) (*domain.Referral, error) {
		return s.gw.CreateReferral(ctx, input)
	})
}

func (s *Casework) UpdateReferral(ctx context.Context, id uuid.UUID, input domain.UpdateReferralInput) (*domain.Referral, error) {
	return write(ctx, s.op("update referral"), s.Referrals, inPlace, func(ctx context.Context) (*domain.Referral, error) {
		return s.gw.UpdateReferral(ctx, id, input)
	})
}

func (s *Casework) DeleteReferral(ctx context.Context, id uuid.UUID) error {
	return drop(ctx, s.op("delete referral"), s.Referrals, id, s.gw.DeleteReferral)
}

func (s *Casework) Reset() {
	s.Assessments.Reset()
	s.Notes.Reset()
	s.Referrals.Reset()
}

func (s *Casework) op(name string) op { return op{log: s.log, name: name} }

// Plans holds integration plans and the goals of the plan last opened.
type Plans struct {
	gw    Gateway
	log   *zap.Logger
	List  *Collection[domain.IntegrationPlan]
	Goals *Collection[domain.IntegrationGoal]
}

func NewPlans(gw Gateway, log *zap.Logger) *Plans {
	return &Plans{
		gw:    gw,
		log:   log,
		List:  NewCollection(func(p domain.IntegrationPlan) uuid.UUID { return p.ID }),
		Goals: NewCollection(func(g domain.IntegrationGoal) uuid.UUID { return g.ID }),
	}
}

func (s *Plans) Fetch(ctx context.Context, q gateway.Query) ([]domain.IntegrationPlan, error) {
	return fetch(ctx, s.op("fetch plans"), s.List, func(ctx context.Context) ([]domain.IntegrationPlan, error) {
		return s.gw.ListPlans(ctx, q)
	})
}

// Get loads a plan and replaces the cached goals with its goals.
func (s *Plans) Get(ctx context.Context, id uuid.UUID) (*domain.PlanDetail, error) {
	var detail *domain.PlanDetail
	_, err := write(ctx, s.op("get plan"), s.List, inPlace, func(ctx context.Context) (*domain.IntegrationPlan, error) {
		d, err := s.gw.GetPlan(ctx, id)
		if err != nil {
			return nil, err
		}
		detail = d
		return &d.IntegrationPlan, nil
	})
	if err != nil {
		return nil, err
	}
	s.Goals.replaceAll(detail.Goals)
	s.Goals.finish(nil)
	return detail, nil
}

func (s *Plans) Create(ctx context.Context, input domain.CreatePlanInput) (*domain.IntegrationPlan, error) {
	return write(ctx, s.op("create plan"), s.List, atFront, func(ctx context.Context) (*domain.IntegrationPlan, error) {
		return s.gw.CreatePlan(ctx, input)
	})
}

func (s *Plans) Update(ctx context.Context, id uuid.UUID, input domain.UpdatePlanInput) (*domain.IntegrationPlan, error) {
	return write(ctx, s.op("update plan"), s.List, inPlace, func(ctx context.Context) (*domain.IntegrationPlan, error) {
		return s.gw.UpdatePlan(ctx, id, input)
	})
}

func (s *Plans) Delete(ctx context.Context, id uuid.UUID) error {
	return drop(ctx, s.op("delete plan"), s.List, id, s.gw.DeletePlan)
}

func (s *Plans) FetchGoals(ctx context.Context, planID uuid.UUID) ([]domain.IntegrationGoal, error) {
	return fetch(ctx, s.op("fetch goals"), s.Goals, func(ctx context.Context) ([]domain.IntegrationGoal, error) {
		return s.gw.ListGoals(ctx, planID)
	})
}

func (s *Plans) CreateGoal(ctx context.Context, planID uuid.UUID, input domain.CreateGoalInput) (*domain.IntegrationGoal, error) {
	return write(ctx, s.op("create goal"), s.Goals, atFront, func(ctx context.Context) (*domain.IntegrationGoal, error) {
		return s.gw.CreateGoal(ctx, planID, input)
	})
}

func (s *Plans) UpdateGoal(ctx context.Context, goalID uuid.UUID, input domain.UpdateGoalInput) (*domain.IntegrationGoal, error) {
	return write(ctx, s.op("update goal"), s.Goals, inPlace, func(ctx context.Context) (*domain.IntegrationGoal, error) {
		return s.gw.UpdateGoal(ctx, goalID, input)
	})
}

func (s *Plans) DeleteGoal(ctx context.Context, goalID uuid.UUID) error {
	return drop(ctx, s.op("delete goal"), s.Goals, goalID, s.gw.DeleteGoal)
}

// Progress is computed from the cached goals.
func (s *Plans) Progress() int {
	return domain.Progress(s.Goals.Items())
}

func (s *Plans) Reset() {
	s.List.Reset()
	s.Goals.Reset()
}

func (s *Plans) op(name string) op { return op{log: s.log, name: name} }

type Events struct {
	gw           Gateway
	log          *zap.Logger
	List         *Collection[domain.CommunityEvent]
	Participants *Collection[domain.EventParticipation]
}

func NewEvents(gw Gateway, log *zap.Logger) *Events {
	return &Events{
		gw:           gw,
		log:          log,
		List:         NewCollection(func(e domain.CommunityEvent) uuid.UUID { return e.ID }),
		Participants: NewCollection(func(p domain.EventParticipation) uuid.UUID { return p.ID }),
	}
}

func (s *Events) Fetch(ctx context.Context, q gateway.Query) ([]domain.CommunityEvent, error) {
	return fetch(ctx, s.op("fetch events"), s.List, func(ctx context.Context) ([]domain.CommunityEvent, error) {
		return s.gw.ListEvents(ctx, q)
	})
}

// Get loads an event together with its participants. A failed participant
// fetch is recorded on Participants and does not fail Get.
func (s *Events) Get(ctx context.Context, id uuid.UUID) (*domain.CommunityEvent, error) {
	ev, err := write(ctx, s.op("get event"), s.List, inPlace, func(ctx context.Context) (*domain.CommunityEvent, error) {
		return s.gw.GetEvent(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	_, _ = s.FetchParticipants(ctx, id)
	return ev, nil
}

// Create appends, events are listed in date order.
func (s *Events) Create(ctx context.Context, input domain.CreateEventInput) (*domain.CommunityEvent, error) {
	return write(ctx, s.op("create event"), s.List, atBack, func(ctx context.Context) (*domain.CommunityEvent, error) {
		return s.gw.CreateEvent(ctx, input)
	})
}

func (s *Events) Update(ctx context.Context, id uuid.UUID, input domain.UpdateEventInput) (*domain.CommunityEvent, error) {
	return write(ctx, s.op("update event"), s.List, inPlace, func(ctx context.Context) (*domain.CommunityEvent, error) {
		return s.gw.UpdateEvent(ctx, id, input)
	})
}

func (s *Events) Delete(ctx context.Context, id uuid.UUID) error {
	return drop(ctx, s.op("delete event"), s.List, id, s.gw.DeleteEvent)
}

func (s *Events) Register(ctx context.Context, eventID, householdID uuid.UUID) (*domain.EventParticipation, error) {
	return write(ctx, s.op("register for event"), s.Participants, atFront, func(ctx context.Context) (*domain.EventParticipation, error) {
		return s.gw.RegisterForEvent(ctx, eventID, domain.RegisterParticipantInput{HouseholdID: householdID})
	})
}

func (s *Events) FetchParticipants(ctx context.Context, eventID uuid.UUID) ([]domain.EventParticipation, error) {
	return fetch(ctx, s.op("fetch participants"), s.Participants, func(ctx context.Context) ([]domain.EventParticipation, error) {
		return s.gw.ListParticipants(ctx, eventID)
	})
}

func (s *Events) MarkAttendance(ctx context.Context, eventID, householdID uuid.UUID, input domain.AttendanceInput) (*domain.EventParticipation, error) {
	return write(ctx, s.op("mark attendance"), s.Participants, inPlace, func(ctx context.Context) (*domain.EventParticipation, error) {
		return s.gw.MarkAttendance(ctx, eventID, householdID, input)
	})
}

func (s *Events) Reset() {
	s.List.Reset()
	s.Participants.Reset()
}

func (s *Events) op(name string) op { return op{log: s.log, name: name} }

type Requests struct {
	gw   Gateway
	log  *zap.Logger
	List *Collection[domain.Request]
}

func NewRequests(gw Gateway, log *zap.Logger) *Requests {
	return &Requests{
		gw:   gw,
		log:  log,
		List: NewCollection(func(r domain.Request) uuid.UUID { return r.ID }),
	}
}

func (s *Requests) Fetch(ctx context.Context, q gateway.Query) ([]domain.Request, error) {
	return fetch(ctx, s.op("fetch requests"), s.List, func(ctx context.Context) ([]domain.Request, error) {
		return s.gw.ListRequests(ctx, q)
	})
}

func (s *Requests) Get(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	return write(ctx, s.op("get request"), s.List, inPlace, func(ctx context.Context) (*domain.Request, error) {
		return s.gw.GetRequest(ctx, id)
	})
}

func (s *Requests) Create(ctx context.Context, input domain.CreateRequestInput) (*domain.Request, error) {
	return write(ctx, s.op("create request"), s.List, atFront, func(ctx context.Context) (*domain.Request, error) {
		return s.gw.CreateRequest(ctx, input)
	})
}

func (s *Requests) Review(ctx context.Context, id uuid.UUID, input domain.ReviewRequestInput) (*domain.Request, error) {
	return write(ctx, s.op("review request"), s.List, inPlace, func(ctx context.Context) (*domain.Request, error) {
		return s.gw.ReviewRequest(ctx, id, input)
	})
}

func (s *Requests) Reset() { s.List.Reset() }

func (s *Requests) op(name string) op { return op{log: s.log, name: name} }

// Stores bundles every holder of one signed-in session.
type Stores struct {
	Households *Households
	Casework   *Casework
	Plans      *Plans
	Events     *Events
	Requests   *Requests
}

func New(gw Gateway, log *zap.Logger) *Stores {
	return &Stores{
		Households: NewHouseholds(gw, log.Named("households")),
		Casework:   NewCasework(gw, log.Named("casework")),
		Plans:      NewPlans(gw, log.Named("plans")),
		Events:     NewEvents(gw, log.Named("events")),
		Requests:   NewRequests(gw, log.Named("requests")),
	}
}

// Reset drops every cached collection. Register it with the session holder's
// OnSignOut.
func (s *Stores) Reset() {
	s.Households.Reset()
	s.Casework.Reset()
	s.Plans.Reset()
	s.Events.Reset()
	s.Requests.Reset()
}
