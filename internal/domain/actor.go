package domain

import "github.com/google/uuid"

// Actor identifies who performed an operation and from where.
type Actor struct {
	ProfileID   uuid.UUID
	Role        Role
	HouseholdID *uuid.UUID
	IPAddress   *string
	UserAgent   *string
}

func (a Actor) IsStaff() bool { return a.Role.IsStaff() }

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// InHousehold reports whether the actor is a member of the given household.
func (a Actor) InHousehold(householdID uuid.UUID) bool {
	return a.HouseholdID != nil && *a.HouseholdID == householdID
}

// CanViewHousehold allows staff and the household's own members.
func (a Actor) CanViewHousehold(householdID uuid.UUID) bool {
	return a.IsStaff() || a.InHousehold(householdID)
}
