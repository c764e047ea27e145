package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	ProfileID uuid.UUID        `json:"profile_id" db:"profile_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Data      json.RawMessage  `json:"data,omitempty" db:"data"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifRequestApproved   NotificationType = "REQUEST_APPROVED"
	NotifRequestRejected   NotificationType = "REQUEST_REJECTED"
	NotifHouseholdAssigned NotificationType = "HOUSEHOLD_ASSIGNED"
	NotifEventRegistered   NotificationType = "EVENT_REGISTERED"
)

type CreateNotificationInput struct {
	ProfileID uuid.UUID
	Type      NotificationType
	Title     string
	Message   string
	Data      interface{}
}
