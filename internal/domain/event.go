package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventActive    EventStatus = "active"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

type CommunityEvent struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	Title           string      `json:"title" db:"title"`
	Description     *string     `json:"description,omitempty" db:"description"`
	Type            string      `json:"event_type" db:"event_type"`
	EventDate       Date        `json:"event_date" db:"event_date"`
	StartTime       *string     `json:"start_time,omitempty" db:"start_time"`
	EndTime         *string     `json:"end_time,omitempty" db:"end_time"`
	Location        *string     `json:"location,omitempty" db:"location"`
	MaxParticipants *int        `json:"max_participants,omitempty" db:"max_participants"`
	Status          EventStatus `json:"status" db:"status"`
	IsPublished     bool        `json:"is_published" db:"is_published"`
	OrganizerID     *uuid.UUID  `json:"organizer_id,omitempty" db:"organizer_id"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}

// HasCapacityFor reports whether count registrations leave room for one more.
func (e *CommunityEvent) HasCapacityFor(count int) bool {
	return e.MaxParticipants == nil || count < *e.MaxParticipants
}

type EventParticipation struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	EventID      uuid.UUID  `json:"event_id" db:"event_id"`
	HouseholdID  uuid.UUID  `json:"household_id" db:"household_id"`
	RegisteredBy *uuid.UUID `json:"registered_by,omitempty" db:"registered_by"`
	Attended     bool       `json:"attended" db:"attended"`
	RegisteredAt time.Time  `json:"registered_at" db:"registered_at"`
}

type EventFilter struct {
	From          *Date
	PublishedOnly bool
	Status        *EventStatus
}

type CreateEventInput struct {
	Title           string      `json:"title" validate:"required,max=200"`
	Description     *string     `json:"description" validate:"omitempty,max=8000"`
	Type            string      `json:"event_type" validate:"required,oneof=workshop seminar social training orientation other"`
	EventDate       *Date       `json:"event_date" validate:"required"`
	StartTime       *string     `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime         *string     `json:"end_time" validate:"omitempty,datetime=15:04"`
	Location        *string     `json:"location" validate:"omitempty,max=500"`
	MaxParticipants *int        `json:"max_participants" validate:"omitempty,min=1"`
	Status          EventStatus `json:"status" validate:"omitempty,oneof=active cancelled completed"`
	IsPublished     bool        `json:"is_published"`
}

type UpdateEventInput struct {
	Title           *string        `json:"title,omitempty" validate:"omitempty,max=200"`
	Description     NullableString `json:"description,omitzero"`
	Type            *string        `json:"event_type,omitempty" validate:"omitempty,oneof=workshop seminar social training orientation other"`
	EventDate       *Date          `json:"event_date,omitempty"`
	StartTime       NullableString `json:"start_time,omitzero"`
	EndTime         NullableString `json:"end_time,omitzero"`
	Location        NullableString `json:"location,omitzero"`
	MaxParticipants *int           `json:"max_participants,omitempty" validate:"omitempty,min=1"`
	Status          *EventStatus   `json:"status,omitempty" validate:"omitempty,oneof=active cancelled completed"`
	IsPublished     *bool          `json:"is_published,omitempty"`
}

type RegisterParticipantInput struct {
	HouseholdID uuid.UUID `json:"household_id" validate:"required"`
}

type AttendanceInput struct {
	Attended bool `json:"attended"`
}
