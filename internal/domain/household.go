package domain

import (
	"time"

	"github.com/google/uuid"
)

type HouseholdStatus string

const (
	HouseholdActive HouseholdStatus = "active"
	HouseholdClosed HouseholdStatus = "closed"
)

type Household struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	Address           *string         `json:"address,omitempty" db:"address"`
	AccommodationType *string         `json:"accommodation_type,omitempty" db:"accommodation_type"`
	LocalAuthority    *string         `json:"local_authority,omitempty" db:"local_authority"`
	Status            HouseholdStatus `json:"status" db:"status"`
	CaseworkerID      *uuid.UUID      `json:"caseworker_id,omitempty" db:"caseworker_id"`
	HeadOfHouseholdID *uuid.UUID      `json:"head_of_household_id,omitempty" db:"head_of_household_id"`
	CreatedBy         *uuid.UUID      `json:"created_by,omitempty" db:"created_by"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

func (h *Household) IsClosed() bool {
	return h.Status == HouseholdClosed
}

type HouseholdDetail struct {
	Household
	Caseworker      *ProfileSummary `json:"caseworker,omitempty"`
	HeadOfHousehold *ProfileSummary `json:"head_of_household,omitempty"`
	Members         []Profile       `json:"members"`
}

type HouseholdFilter struct {
	CaseworkerID *uuid.UUID
	Status       *HouseholdStatus
	// MemberID restricts the list to the household the profile belongs to.
	MemberID *uuid.UUID
}

type CreateHouseholdInput struct {
	Address           *string    `json:"address" validate:"omitempty,max=500"`
	AccommodationType *string    `json:"accommodation_type" validate:"omitempty,max=100"`
	LocalAuthority    *string    `json:"local_authority" validate:"omitempty,max=200"`
	CaseworkerID      *uuid.UUID `json:"caseworker_id"`
}

type UpdateHouseholdInput struct {
	Address           NullableString   `json:"address,omitzero"`
	AccommodationType NullableString   `json:"accommodation_type,omitzero"`
	LocalAuthority    NullableString   `json:"local_authority,omitzero"`
	Status            *HouseholdStatus `json:"status,omitempty" validate:"omitempty,oneof=active closed"`
}

type AssignCaseworkerInput struct {
	CaseworkerID uuid.UUID `json:"caseworker_id" validate:"required"`
}

type SetHeadInput struct {
	ProfileID uuid.UUID `json:"profile_id" validate:"required"`
}

type AddMemberInput struct {
	FullName    string  `json:"full_name" validate:"required,min=2,max=200"`
	Gender      *string `json:"gender" validate:"omitempty,max=50"`
	Nationality *string `json:"nationality" validate:"omitempty,max=100"`
	DateOfBirth *Date   `json:"date_of_birth"`
	Phone       *string `json:"phone" validate:"omitempty,max=30"`
	Email       *string `json:"email" validate:"omitempty,email"`
	// ProfileID links an existing profile instead of creating a new one.
	ProfileID *uuid.UUID `json:"profile_id"`
}
