package domain

import "errors"

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrHouseholdNotFound    = errors.New("household not found")
	ErrRequestNotFound      = errors.New("request not found")
	ErrAssessmentNotFound   = errors.New("assessment not found")
	ErrReferralNotFound     = errors.New("referral not found")
	ErrPlanNotFound         = errors.New("integration plan not found")
	ErrGoalNotFound         = errors.New("integration goal not found")
	ErrEventNotFound        = errors.New("community event not found")
	ErrParticipantNotFound  = errors.New("event participation not found")
	ErrServiceNotFound      = errors.New("service not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrForbidden          = errors.New("insufficient permissions for this operation")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrHouseholdClosed    = errors.New("household is closed")
	ErrNotHouseholdMember = errors.New("profile is not a member of this household")
	ErrSelfReview         = errors.New("cannot review own request")
	ErrEventNotActive     = errors.New("event is not open for registration")
	ErrEventFull          = errors.New("event has reached its participant limit")
	ErrAlreadyRegistered  = errors.New("household is already registered for this event")
)

// NotFound reports whether err is one of the entity lookup failures.
func NotFound(err error) bool {
	for _, target := range []error{
		ErrProfileNotFound, ErrHouseholdNotFound, ErrRequestNotFound, ErrAssessmentNotFound,
		ErrReferralNotFound, ErrPlanNotFound, ErrGoalNotFound, ErrEventNotFound,
		ErrParticipantNotFound, ErrServiceNotFound, ErrDocumentNotFound, ErrNotificationNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Conflict reports whether err is a state conflict rather than bad input.
func Conflict(err error) bool {
	for _, target := range []error{
		ErrInvalidTransition, ErrHouseholdClosed, ErrEventNotActive, ErrEventFull, ErrAlreadyRegistered,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
