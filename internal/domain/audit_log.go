package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	AuditCreate = "CREATE"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
	AuditReview = "REVIEW"
	AuditClose  = "CLOSE"
	AuditAssign = "ASSIGN"
)

const (
	EntityHousehold  = "household"
	EntityRequest    = "request"
	EntityAssessment = "assessment"
	EntityReferral   = "referral"
	EntityCaseNote   = "case_note"
	EntityPlan       = "integration_plan"
	EntityGoal       = "integration_goal"
	EntityProfile    = "profile"
)

type AuditLog struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	ActorID    uuid.UUID       `json:"actor_id" db:"actor_id"`
	ActorName  *string         `json:"actor_name,omitempty" db:"actor_name"`
	Action     string          `json:"action" db:"action"`
	EntityType string          `json:"entity_type" db:"entity_type"`
	EntityID   uuid.UUID       `json:"entity_id" db:"entity_id"`
	OldValue   json.RawMessage `json:"old_value,omitempty" db:"old_value"`
	NewValue   json.RawMessage `json:"new_value,omitempty" db:"new_value"`
	IPAddress  *string         `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent  *string         `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

type CreateAuditLogInput struct {
	Actor      Actor
	Action     string
	EntityType string
	EntityID   uuid.UUID
	OldValue   interface{}
	NewValue   interface{}
}
