package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleCaseworker Role = "caseworker"
	RoleNGO        Role = "ngo"
	RoleRefugee    Role = "refugee"
	RoleDonor      Role = "donor"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCaseworker, RoleNGO, RoleRefugee, RoleDonor:
		return true
	default:
		return false
	}
}

// IsStaff covers the roles that work cases on behalf of the organization.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleCaseworker || r == RoleNGO
}

// SelfAssignable lists roles a user may pick at sign-up without a service key.
func (r Role) SelfAssignable() bool {
	return r == RoleRefugee || r == RoleDonor
}

// LandingRoute is the portal route a role is redirected to after sign-in.
func (r Role) LandingRoute() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleCaseworker, RoleNGO:
		return "/caseworker"
	case RoleRefugee:
		return "/refugee"
	default:
		return DefaultRoute
	}
}

type Profile struct {
	ID                uuid.UUID      `json:"id" db:"id"`
	FullName          string         `json:"full_name" db:"full_name"`
	Role              Role           `json:"role" db:"role"`
	Email             *string        `json:"email,omitempty" db:"email"`
	Phone             *string        `json:"phone,omitempty" db:"phone"`
	Gender            *string        `json:"gender,omitempty" db:"gender"`
	Nationality       *string        `json:"nationality,omitempty" db:"nationality"`
	DateOfBirth       *Date          `json:"date_of_birth,omitempty" db:"date_of_birth"`
	HouseholdID       *uuid.UUID     `json:"household_id,omitempty" db:"household_id"`
	RequestedServices pq.StringArray `json:"requested_services" db:"requested_services"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" db:"updated_at"`
}

// ProfileSummary is the embedded shape used when a record references a profile.
type ProfileSummary struct {
	ID       uuid.UUID `json:"id" db:"id"`
	FullName string    `json:"full_name" db:"full_name"`
	Phone    *string   `json:"phone,omitempty" db:"phone"`
}

func (p *Profile) Summary() *ProfileSummary {
	return &ProfileSummary{ID: p.ID, FullName: p.FullName, Phone: p.Phone}
}

func (p *Profile) BelongsTo(householdID uuid.UUID) bool {
	return p.HouseholdID != nil && *p.HouseholdID == householdID
}

type ProfileFilter struct {
	Role        *Role
	HouseholdID *uuid.UUID
	Search      string
}

type UpdateProfileInput struct {
	FullName          *string        `json:"full_name,omitempty" validate:"omitempty,min=2,max=200"`
	Phone             NullableString `json:"phone,omitzero"`
	Gender            NullableString `json:"gender,omitzero"`
	Nationality       NullableString `json:"nationality,omitzero"`
	DateOfBirth       NullableDate   `json:"date_of_birth,omitzero"`
	RequestedServices []string       `json:"requested_services,omitempty" validate:"omitempty,dive,max=100"`
	Role              *Role          `json:"role,omitempty" validate:"omitempty,oneof=admin caseworker ngo refugee donor"`
	HouseholdID       NullableUUID   `json:"household_id,omitzero"`
}

// Privileged reports whether the update touches fields only staff may set.
func (in UpdateProfileInput) Privileged() bool {
	return in.Role != nil || in.HouseholdID.Set
}
