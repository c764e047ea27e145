package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// IsTerminal reports whether no further review is possible.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestApproved || s == RequestRejected
}

type Request struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`
	Type        string          `json:"type" db:"type"`
	Urgency     string          `json:"urgency" db:"urgency"`
	Description string          `json:"description" db:"description"`
	Status      RequestStatus   `json:"status" db:"status"`
	ReviewedBy  *uuid.UUID      `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt  *time.Time      `json:"reviewed_at,omitempty" db:"reviewed_at"`
	ReviewNote  *string         `json:"review_note,omitempty" db:"review_note"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
	Requester   *ProfileSummary `json:"requester,omitempty" db:"-"`
}

type RequestFilter struct {
	Status *RequestStatus
	UserID *uuid.UUID
}

type CreateRequestInput struct {
	Type        string `json:"type" validate:"required,oneof=food medical shelter legal healthcare education housing employment benefits transport language other"`
	Urgency     string `json:"urgency" validate:"required,oneof=low medium high"`
	Description string `json:"description" validate:"required,min=3,max=4000"`
}

// Normalize lower-cases the enumerated fields so "Food"/"High" are accepted.
func (in *CreateRequestInput) Normalize() {
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.Urgency = strings.ToLower(strings.TrimSpace(in.Urgency))
	in.Description = strings.TrimSpace(in.Description)
}

type ReviewRequestInput struct {
	Status RequestStatus `json:"status" validate:"required,oneof=approved rejected"`
	Note   *string       `json:"note" validate:"omitempty,max=2000"`
}

func (in *ReviewRequestInput) Normalize() {
	in.Status = RequestStatus(strings.ToLower(strings.TrimSpace(string(in.Status))))
}
