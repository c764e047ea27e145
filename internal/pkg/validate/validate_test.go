package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refugee-portal/internal/domain"
)

func TestStruct_OutOfSetStatusRejected(t *testing.T) {
	bad := "shipped"
	in := domain.UpdateAssessmentInput{Status: (*domain.AssessmentStatus)(&bad)}

	err := Struct(in)

	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")
	assert.Contains(t, verr.Fields["status"], "must be one of")
}

func TestStruct_RequestInput(t *testing.T) {
	in := domain.CreateRequestInput{Type: "Food", Urgency: "High", Description: "need food"}
	assert.Error(t, Struct(in))

	in.Normalize()
	assert.NoError(t, Struct(in))
}

func TestStruct_MissingRequired(t *testing.T) {
	err := Struct(domain.SignUpInput{})

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email is required", verr.Fields["email"])
	assert.Equal(t, "password is required", verr.Fields["password"])
	assert.Equal(t, "full_name is required", verr.Fields["full_name"])
}

func TestError_MessageIsStable(t *testing.T) {
	err := &Error{Fields: map[string]string{"b": "b bad", "a": "a bad"}}
	assert.Equal(t, "validation failed: a bad; b bad", err.Error())
}
