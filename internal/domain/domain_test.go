package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_LandingRoute(t *testing.T) {
	cases := map[Role]string{
		RoleAdmin:      "/admin",
		RoleCaseworker: "/caseworker",
		RoleNGO:        "/caseworker",
		RoleRefugee:    "/refugee",
		RoleDonor:      "/dashboard",
	}
	for role, route := range cases {
		assert.Equal(t, route, role.LandingRoute(), role)
	}
}

func TestRole_Classification(t *testing.T) {
	assert.True(t, RoleNGO.IsStaff())
	assert.False(t, RoleRefugee.IsStaff())
	assert.True(t, RoleDonor.SelfAssignable())
	assert.False(t, RoleAdmin.SelfAssignable())
	assert.False(t, Role("superuser").IsValid())
}

func TestRequestStatus_IsTerminal(t *testing.T) {
	assert.False(t, RequestPending.IsTerminal())
	assert.True(t, RequestApproved.IsTerminal())
	assert.True(t, RequestRejected.IsTerminal())
}

func TestCreateRequestInput_Normalize(t *testing.T) {
	in := CreateRequestInput{Type: " Food", Urgency: "High ", Description: " need food "}
	in.Normalize()

	assert.Equal(t, "food", in.Type)
	assert.Equal(t, "high", in.Urgency)
	assert.Equal(t, "need food", in.Description)
}

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-09"`), &d))
	assert.Equal(t, "2024-03-09", d.String())

	require.NoError(t, json.Unmarshal([]byte(`"2024-03-09T17:30:00Z"`), &d))
	assert.Equal(t, "2024-03-09", d.String())

	out, err := json.Marshal(NewDate(2025, time.January, 2))
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-02"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-06", d.String())

	require.NoError(t, d.Scan([]byte("2023-12-31")))
	assert.Equal(t, "2023-12-31", d.String())

	assert.Error(t, d.Scan(42))
}

func TestAssessment_IsOverdue(t *testing.T) {
	today := NewDate(2024, time.June, 10)
	due := today.AddDays(-1)

	a := Assessment{Status: AssessmentPending, DueDate: &due}
	assert.True(t, a.IsOverdue(today))

	a.Status = AssessmentCompleted
	assert.False(t, a.IsOverdue(today))

	a = Assessment{Status: AssessmentInProgress}
	assert.False(t, a.IsOverdue(today))
}

func TestNullable_PartialUpdate(t *testing.T) {
	var in UpdateReferralInput
	require.NoError(t, json.Unmarshal([]byte(`{"notes":null,"check_in_date":"2024-02-01"}`), &in))

	assert.True(t, in.Notes.Set)
	assert.Nil(t, in.Notes.Value)
	assert.True(t, in.CheckInDate.Set)
	assert.False(t, in.ReferredDate.Set)

	existing := "keep me"
	notes := &existing
	in.Notes.Apply(&notes)
	assert.Nil(t, notes)

	referred := NewDate(2024, 1, 1)
	referredPtr := &referred
	in.ReferredDate.Apply(&referredPtr)
	assert.Equal(t, &referred, referredPtr)
}

func TestNullable_OmittedWhenUnset(t *testing.T) {
	status := ReferralSent
	out, err := json.Marshal(UpdateReferralInput{Status: &status, Notes: SetString("called")})
	require.NoError(t, err)

	assert.JSONEq(t, `{"status":"sent","notes":"called"}`, string(out))
}

func TestEvent_HasCapacityFor(t *testing.T) {
	e := CommunityEvent{}
	assert.True(t, e.HasCapacityFor(1000))

	limit := 2
	e.MaxParticipants = &limit
	assert.True(t, e.HasCapacityFor(1))
	assert.False(t, e.HasCapacityFor(2))
}

func TestErrorClassification(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", ErrHouseholdNotFound)
	assert.True(t, NotFound(wrapped))
	assert.False(t, Conflict(wrapped))
	assert.True(t, Conflict(ErrEventFull))
	assert.False(t, NotFound(errors.New("boom")))
}

func TestProfile_BelongsTo(t *testing.T) {
	hh := uuid.New()
	p := Profile{HouseholdID: &hh}
	assert.True(t, p.BelongsTo(hh))
	assert.False(t, p.BelongsTo(uuid.New()))
	assert.False(t, (&Profile{}).BelongsTo(hh))
}

func TestPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse[Request](nil, 2, 10, 25)

	assert.NotNil(t, resp.Data)
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasNext)
	assert.True(t, resp.HasPrev)
}
