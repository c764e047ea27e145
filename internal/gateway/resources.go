package gateway

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"refugee-portal/internal/domain"
)

// Query carries list filters as raw query parameters.
type Query map[string]string

type list[T any] struct {
	Data []T `json:"data"`
}

func get[T any](ctx context.Context, c *Client, path string, q Query) (*T, error) {
	var out T
	if err := c.do(ctx, call{method: http.MethodGet, path: path, query: q, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func send[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	var out T
	if err := c.do(ctx, call{method: method, path: path, body: body, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// page collects every page of a paginated list. A caller that sets "page"
// gets only that page.
func page[T any](ctx context.Context, c *Client, path string, q Query) ([]T, error) {
	params := Query{"page_size": strconv.Itoa(domain.MaxPageSize)}
	for k, v := range q {
		params[k] = v
	}
	if _, ok := q["page"]; ok {
		out, err := get[domain.PaginatedResponse[T]](ctx, c, path, params)
		if err != nil {
			return nil, err
		}
		return out.Data, nil
	}

	var all []T
	for n := 1; ; n++ {
		params["page"] = strconv.Itoa(n)
		out, err := get[domain.PaginatedResponse[T]](ctx, c, path, params)
		if err != nil {
			return nil, err
		}
		all = append(all, out.Data...)
		if !out.HasNext || len(out.Data) == 0 {
			return all, nil
		}
	}
}

func items[T any](ctx context.Context, c *Client, path string, q Query) ([]T, error) {
	out, err := get[list[T]](ctx, c, path, q)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) remove(ctx context.Context, path string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: path})
}

const v1 = "/api/v1"

func (c *Client) GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return get[domain.Profile](ctx, c, v1+"/profiles/"+id.String(), nil)
}

func (c *Client) ListProfiles(ctx context.Context, q Query) ([]domain.Profile, error) {
	return page[domain.Profile](ctx, c, v1+"/profiles", q)
}

func (c *Client) ListHouseholds(ctx context.Context, q Query) ([]domain.Household, error) {
	return page[domain.Household](ctx, c, v1+"/households", q)
}

func (c *Client) GetHousehold(ctx context.Context, id uuid.UUID) (*domain.HouseholdDetail, error) {
	return get[domain.HouseholdDetail](ctx, c, v1+"/households/"+id.String(), nil)
}

func (c *Client) CreateHousehold(ctx context.Context, input domain.CreateHouseholdInput) (*domain.Household, error) {
	return send[domain.Household](ctx, c, http.MethodPost, v1+"/households", input)
}

func (c *Client) UpdateHousehold(ctx context.Context, id uuid.UUID, input domain.UpdateHouseholdInput) (*domain.Household, error) {
	return send[domain.Household](ctx, c, http.MethodPatch, v1+"/households/"+id.String(), input)
}

func (c *Client) AssignCaseworker(ctx context.Context, id uuid.UUID, input domain.AssignCaseworkerInput) (*domain.Household, error) {
	return send[domain.Household](ctx, c, http.MethodPost, v1+"/households/"+id.String()+"/assign", input)
}

func (c *Client) CloseHousehold(ctx context.Context, id uuid.UUID) (*domain.Household, error) {
	return send[domain.Household](ctx, c, http.MethodPost, v1+"/households/"+id.String()+"/close", nil)
}

func (c *Client) AddHouseholdMember(ctx context.Context, id uuid.UUID, input domain.AddMemberInput) (*domain.Profile, error) {
	return send[domain.Profile](ctx, c, http.MethodPost, v1+"/households/"+id.String()+"/members", input)
}

func (c *Client) SetHeadOfHousehold(ctx context.Context, id uuid.UUID, input domain.SetHeadInput) (*domain.Household, error) {
	return send[domain.Household](ctx, c, http.MethodPut, v1+"/households/"+id.String()+"/head", input)
}

func (c *Client) ListCaseNotes(ctx context.Context, householdID uuid.UUID) ([]domain.CaseNote, error) {
	return page[domain.CaseNote](ctx, c, v1+"/households/"+householdID.String()+"/notes", nil)
}

func (c *Client) CreateCaseNote(ctx context.Context, householdID uuid.UUID, input domain.CreateCaseNoteInput) (*domain.CaseNote, error) {
	return send[domain.CaseNote](ctx, c, http.MethodPost, v1+"/households/"+householdID.String()+"/notes", input)
}

func (c *Client) ListRequests(ctx context.Context, q Query) ([]domain.Request, error) {
	return page[domain.Request](ctx, c, v1+"/requests", q)
}

func (c *Client) GetRequest(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	return get[domain.Request](ctx, c, v1+"/requests/"+id.String(), nil)
}

func (c *Client) CreateRequest(ctx context.Context, input domain.CreateRequestInput) (*domain.Request, error) {
	return send[domain.Request](ctx, c, http.MethodPost, v1+"/requests", input)
}

func (c *Client) ReviewRequest(ctx context.Context, id uuid.UUID, input domain.ReviewRequestInput) (*domain.Request, error) {
	return send[domain.Request](ctx, c, http.MethodPost, v1+"/requests/"+id.String()+"/review", input)
}

func (c *Client) ListAssessments(ctx context.Context, q Query) ([]domain.Assessment, error) {
	return page[domain.Assessment](ctx, c, v1+"/assessments", q)
}

func (c *Client) GetAssessment(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	return get[domain.Assessment](ctx, c, v1+"/assessments/"+id.String(), nil)
}

func (c *Client) CreateAssessment(ctx context.Context, input domain.CreateAssessmentInput) (*domain.Assessment, error) {
	return send[domain.Assessment](ctx, c, http.MethodPost, v1+"/assessments", input)
}

func (c *Client) UpdateAssessment(ctx context.Context, id uuid.UUID, input domain.UpdateAssessmentInput) (*domain.Assessment, error) {
	return send[domain.Assessment](ctx, c, http.MethodPatch, v1+"/assessments/"+id.String(), input)
}

func (c *Client) DeleteAssessment(ctx context.Context, id uuid.UUID) error {
	return c.remove(ctx, v1+"/assessments/"+id.String())
}

func (c *Client) ListReferrals(ctx context.Context, q Query) ([]domain.Referral, error) {
	return page[domain.Referral](ctx, c, v1+"/referrals", q)
}

func (c *Client) GetReferral(ctx context.Context, id uuid.UUID) (*domain.Referral, error) {
	return get[domain.Referral](ctx, c, v1+"/referrals/"+id.String(), nil)
}

func (c *Client) CreateReferral(ctx context.Context, input domain.CreateReferralInput) (*domain.Referral, error) {
	return send[domain.Referral](ctx, c, http.MethodPost, v1+"/referrals", input)
}

func (c *Client) UpdateReferral(ctx context.Context, id uuid.UUID, input domain.UpdateReferralInput) (*domain.Referral, error) {
	return send[domain.Referral](ctx, c, http.MethodPatch, v1+"/referrals/"+id.String(), input)
}

func (c *Client) DeleteReferral(ctx context.Context, id uuid.UUID) error {
	return c.remove(ctx, v1+"/referrals/"+id.String())
}

func (c *Client) ListPlans(ctx context.Context, q Query) ([]domain.IntegrationPlan, error) {
	return page[domain.IntegrationPlan](ctx, c, v1+"/plans", q)
}

func (c *Client) GetPlan(ctx context.Context, id uuid.UUID) (*domain.PlanDetail, error) {
	return get[domain.PlanDetail](ctx, c, v1+"/plans/"+id.String(), nil)
}

func (c *Client) CreatePlan(ctx context.Context, input domain.CreatePlanInput) (*domain.IntegrationPlan, error) {
	return send[domain.IntegrationPlan](ctx, c, http.MethodPost, v1+"/plans", input)
}

func (c *Client) UpdatePlan(ctx context.Context, id uuid.UUID, input domain.UpdatePlanInput) (*domain.IntegrationPlan, error) {
	return send[domain.IntegrationPlan](ctx, c, http.MethodPatch, v1+"/plans/"+id.String(), input)
}

func (c *Client) DeletePlan(ctx context.Context, id uuid.UUID) error {
	return c.remove(ctx, v1+"/plans/"+id.String())
}

func (c *Client) ListGoals(ctx context.Context, planID uuid.UUID) ([]domain.IntegrationGoal, error) {
	return items[domain.IntegrationGoal](ctx, c, v1+"/plans/"+planID.String()+"/goals", nil)
}

func (c *Client) CreateGoal(ctx context.Context, planID uuid.UUID, input domain.CreateGoalInput) (*domain.IntegrationGoal, error) {
	return send[domain.IntegrationGoal](ctx, c, http.MethodPost, v1+"/plans/"+planID.String()+"/goals", input)
}

func (c *Client) UpdateGoal(ctx context.Context, goalID uuid.UUID, input domain.UpdateGoalInput) (*domain.IntegrationGoal, error) {
	return send[domain.IntegrationGoal](ctx, c, http.MethodPatch, v1+"/goals/"+goalID.String(), input)
}

func (c *Client) DeleteGoal(ctx context.Context, goalID uuid.UUID) error {
	return c.remove(ctx, v1+"/goals/"+goalID.String())
}

func (c *Client) ListEvents(ctx context.Context, q Query) ([]domain.CommunityEvent, error) {
	return page[domain.CommunityEvent](ctx, c, v1+"/events", q)
}

func (c *Client) GetEvent(ctx context.Context, id uuid.UUID) (*domain.CommunityEvent, error) {
	return get[domain.CommunityEvent](ctx, c, v1+"/events/"+id.String(), nil)
}

func (c *Client) CreateEvent(ctx context.Context, input domain.CreateEventInput) (*domain.CommunityEvent, error) {
	return send[domain.CommunityEvent](ctx, c, http.MethodPost, v1+"/events", input)
}

func (c *Client) UpdateEvent(ctx context.Context, id uuid.UUID, input domain.UpdateEventInput) (*domain.CommunityEvent, error) {
	return send[domain.CommunityEvent](ctx, c, http.MethodPatch, v1+"/events/"+id.String(), input)
}

func (c *Client) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return c.remove(ctx, v1+"/events/"+id.String())
}

func (c *Client) RegisterForEvent(ctx context.Context, eventID uuid.UUID, input domain.RegisterParticipantInput) (*domain.EventParticipation, error) {
	return send[domain.EventParticipation](ctx, c, http.MethodPost, v1+"/events/"+eventID.String()+"/participants", input)
}

func (c *Client) ListParticipants(ctx context.Context, eventID uuid.UUID) ([]domain.EventParticipation, error) {
	return items[domain.EventParticipation](ctx, c, v1+"/events/"+eventID.String()+"/participants", nil)
}

func (c *Client) MarkAttendance(ctx context.Context, eventID, householdID uuid.UUID, input domain.AttendanceInput) (*domain.EventParticipation, error) {
	path := v1 + "/events/" + eventID.String() + "/participants/" + householdID.String()
	return send[domain.EventParticipation](ctx, c, http.MethodPatch, path, input)
}

func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	return items[domain.Service](ctx, c, v1+"/services", nil)
}
