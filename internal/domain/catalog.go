package domain

import (
	"time"

	"github.com/google/uuid"
)

type Service struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Category     *string   `json:"category,omitempty" db:"category"`
	Description  *string   `json:"description,omitempty" db:"description"`
	TargetAmount float64   `json:"target_amount" db:"target_amount"`
	RaisedAmount float64   `json:"raised_amount" db:"raised_amount"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type Donation struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	DonorID   uuid.UUID  `json:"donor_id" db:"donor_id"`
	DonorName *string    `json:"donor_name,omitempty" db:"donor_name"`
	ServiceID *uuid.UUID `json:"service_id,omitempty" db:"service_id"`
	Amount    float64    `json:"amount" db:"amount"`
	Campaign  *string    `json:"campaign,omitempty" db:"campaign"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type CreateServiceInput struct {
	Title        string  `json:"title" validate:"required,max=200"`
	Category     *string `json:"category" validate:"omitempty,max=100"`
	Description  *string `json:"description" validate:"omitempty,max=4000"`
	TargetAmount float64 `json:"target_amount" validate:"gte=0"`
}

type CreateDonationInput struct {
	Amount    float64    `json:"amount" validate:"required,gt=0"`
	ServiceID *uuid.UUID `json:"service_id"`
	Campaign  *string    `json:"campaign" validate:"omitempty,max=200"`
}
