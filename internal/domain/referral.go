package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReferralStatus string

const (
	ReferralPending    ReferralStatus = "pending"
	ReferralSent       ReferralStatus = "sent"
	ReferralInProgress ReferralStatus = "in_progress"
	ReferralCompleted  ReferralStatus = "completed"
	ReferralDeclined   ReferralStatus = "declined"
)

// ActiveReferralStatuses are the states counted as open work.
var ActiveReferralStatuses = []ReferralStatus{ReferralPending, ReferralSent, ReferralInProgress}

func (s ReferralStatus) IsValid() bool {
	switch s {
	case ReferralPending, ReferralSent, ReferralInProgress, ReferralCompleted, ReferralDeclined:
		return true
	}
	return false
}

type Referral struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	HouseholdID  uuid.UUID      `json:"household_id" db:"household_id"`
	ServiceType  string         `json:"service_type" db:"service_type"`
	ProviderName string         `json:"provider_name" db:"provider_name"`
	Status       ReferralStatus `json:"status" db:"status"`
	ReferredDate *Date          `json:"referred_date,omitempty" db:"referred_date"`
	CheckInDate  *Date          `json:"check_in_date,omitempty" db:"check_in_date"`
	Notes        *string        `json:"notes,omitempty" db:"notes"`
	CreatedBy    *uuid.UUID     `json:"created_by,omitempty" db:"created_by"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

type ReferralFilter struct {
	HouseholdID *uuid.UUID
	Statuses    []ReferralStatus
}

type CreateReferralInput struct {
	HouseholdID  uuid.UUID      `json:"household_id" validate:"required"`
	ServiceType  string         `json:"service_type" validate:"required,oneof=health legal housing education employment mental_health language other"`
	ProviderName string         `json:"provider_name" validate:"required,max=200"`
	Status       ReferralStatus `json:"status" validate:"omitempty,oneof=pending sent in_progress completed declined"`
	ReferredDate *Date          `json:"referred_date"`
	CheckInDate  *Date          `json:"check_in_date"`
	Notes        *string        `json:"notes" validate:"omitempty,max=8000"`
}

type UpdateReferralInput struct {
	ServiceType  *string         `json:"service_type,omitempty" validate:"omitempty,oneof=health legal housing education employment mental_health language other"`
	ProviderName *string         `json:"provider_name,omitempty" validate:"omitempty,max=200"`
	Status       *ReferralStatus `json:"status,omitempty" validate:"omitempty,oneof=pending sent in_progress completed declined"`
	ReferredDate NullableDate    `json:"referred_date,omitzero"`
	CheckInDate  NullableDate    `json:"check_in_date,omitzero"`
	Notes        NullableString  `json:"notes,omitzero"`
}
