package domain

import (
	"time"

	"github.com/google/uuid"
)

type AssessmentStatus string

const (
	AssessmentPending    AssessmentStatus = "pending"
	AssessmentInProgress AssessmentStatus = "in_progress"
	AssessmentCompleted  AssessmentStatus = "completed"
)

type Assessment struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	HouseholdID uuid.UUID        `json:"household_id" db:"household_id"`
	Type        string           `json:"type" db:"type"`
	Priority    string           `json:"priority" db:"priority"`
	Status      AssessmentStatus `json:"status" db:"status"`
	DueDate     *Date            `json:"due_date,omitempty" db:"due_date"`
	Notes       *string          `json:"notes,omitempty" db:"notes"`
	AssessorID  *uuid.UUID       `json:"assessor_id,omitempty" db:"assessor_id"`
	CompletedAt *time.Time       `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// IsOverdue is true for open assessments whose due date has passed.
func (a *Assessment) IsOverdue(today Date) bool {
	return a.Status != AssessmentCompleted && a.DueDate != nil && a.DueDate.Before(today)
}

type AssessmentFilter struct {
	HouseholdID *uuid.UUID
	Status      *AssessmentStatus
	AssessorID  *uuid.UUID
	OverdueAt   *Date
}

type CreateAssessmentInput struct {
	HouseholdID uuid.UUID        `json:"household_id" validate:"required"`
	Type        string           `json:"type" validate:"required,oneof=initial_needs housing_check integration_review financial_audit safeguarding"`
	Priority    string           `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Status      AssessmentStatus `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	DueDate     *Date            `json:"due_date"`
	Notes       *string          `json:"notes" validate:"omitempty,max=8000"`
	AssessorID  *uuid.UUID       `json:"assessor_id"`
}

type UpdateAssessmentInput struct {
	Type       *string           `json:"type,omitempty" validate:"omitempty,oneof=initial_needs housing_check integration_review financial_audit safeguarding"`
	Priority   *string           `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Status     *AssessmentStatus `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed"`
	DueDate    NullableDate      `json:"due_date,omitzero"`
	Notes      NullableString    `json:"notes,omitzero"`
	AssessorID NullableUUID      `json:"assessor_id,omitzero"`
}
