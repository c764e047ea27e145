package domain

import (
	"time"

	"github.com/google/uuid"
)

// CaseNote is append-only; there is no update or delete path.
type CaseNote struct {
	ID          uuid.UUID `json:"id" db:"id"`
	HouseholdID uuid.UUID `json:"household_id" db:"household_id"`
	AuthorID    uuid.UUID `json:"author_id" db:"author_id"`
	AuthorName  *string   `json:"author_name,omitempty" db:"author_name"`
	Category    string    `json:"category" db:"category"`
	IsSensitive bool      `json:"is_sensitive" db:"is_sensitive"`
	Content     string    `json:"content" db:"content"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateCaseNoteInput struct {
	Category    string `json:"category" validate:"omitempty,oneof=general health education housing employment finance other"`
	IsSensitive bool   `json:"is_sensitive"`
	Content     string `json:"content" validate:"required,min=1,max=10000"`
}
