package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type PlanStatus string

const (
	PlanDraft         PlanStatus = "draft"
	PlanActive        PlanStatus = "active"
	PlanReviewPending PlanStatus = "review_pending"
	PlanCompleted     PlanStatus = "completed"
	PlanArchived      PlanStatus = "archived"
)

type GoalStatus string

const (
	GoalPending        GoalStatus = "pending"
	GoalInProgress     GoalStatus = "in_progress"
	GoalCompleted      GoalStatus = "completed"
	GoalNeedsAttention GoalStatus = "needs_attention"
)

type IntegrationPlan struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	HouseholdID  uuid.UUID  `json:"household_id" db:"household_id"`
	CaseworkerID *uuid.UUID `json:"caseworker_id,omitempty" db:"caseworker_id"`
	StartDate    *Date      `json:"start_date,omitempty" db:"start_date"`
	ReviewDate   *Date      `json:"review_date,omitempty" db:"review_date"`
	Status       PlanStatus `json:"status" db:"status"`
	OverallGoal  *string    `json:"overall_goal,omitempty" db:"overall_goal"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

type IntegrationGoal struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	PlanID      uuid.UUID  `json:"plan_id" db:"plan_id"`
	Category    string     `json:"category" db:"category"`
	Description string     `json:"description" db:"description"`
	TargetDate  *Date      `json:"target_date,omitempty" db:"target_date"`
	Priority    string     `json:"priority" db:"priority"`
	Status      GoalStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type PlanDetail struct {
	IntegrationPlan
	Goals    []IntegrationGoal `json:"goals"`
	Progress int               `json:"progress"`
}

// Progress is the share of completed goals as a whole percentage. A plan
// without goals is at 0.
func Progress(goals []IntegrationGoal) int {
	if len(goals) == 0 {
		return 0
	}
	completed := 0
	for _, g := range goals {
		if g.Status == GoalCompleted {
			completed++
		}
	}
	return ProgressOf(completed, len(goals))
}

func ProgressOf(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

type PlanFilter struct {
	HouseholdID  *uuid.UUID
	CaseworkerID *uuid.UUID
	Status       *PlanStatus
}

type CreatePlanInput struct {
	HouseholdID  uuid.UUID  `json:"household_id" validate:"required"`
	CaseworkerID *uuid.UUID `json:"caseworker_id"`
	StartDate    *Date      `json:"start_date"`
	ReviewDate   *Date      `json:"review_date"`
	Status       PlanStatus `json:"status" validate:"omitempty,oneof=draft active review_pending completed archived"`
	OverallGoal  *string    `json:"overall_goal" validate:"omitempty,max=4000"`
}

type UpdatePlanInput struct {
	CaseworkerID NullableUUID   `json:"caseworker_id,omitzero"`
	StartDate    NullableDate   `json:"start_date,omitzero"`
	ReviewDate   NullableDate   `json:"review_date,omitzero"`
	Status       *PlanStatus    `json:"status,omitempty" validate:"omitempty,oneof=draft active review_pending completed archived"`
	OverallGoal  NullableString `json:"overall_goal,omitzero"`
}

type CreateGoalInput struct {
	Category    string     `json:"category" validate:"required,oneof=employment education housing health language social finance legal"`
	Description string     `json:"description" validate:"required,max=4000"`
	TargetDate  *Date      `json:"target_date"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      GoalStatus `json:"status" validate:"omitempty,oneof=pending in_progress completed needs_attention"`
}

type UpdateGoalInput struct {
	Category    *string      `json:"category,omitempty" validate:"omitempty,oneof=employment education housing health language social finance legal"`
	Description *string      `json:"description,omitempty" validate:"omitempty,max=4000"`
	TargetDate  NullableDate `json:"target_date,omitzero"`
	Priority    *string      `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Status      *GoalStatus  `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed needs_attention"`
}
