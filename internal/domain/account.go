package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account holds the credentials backing a Profile; the two share an id.
// Household members added by staff have a Profile but no Account.
type Account struct {
	ID                      uuid.UUID  `json:"id" db:"id"`
	Email                   string     `json:"email" db:"email"`
	PasswordHash            string     `json:"-" db:"password_hash"`
	IsEmailVerified         bool       `json:"is_email_verified" db:"is_email_verified"`
	EmailVerificationToken  *string    `json:"-" db:"email_verification_token"`
	EmailVerificationSentAt *time.Time `json:"-" db:"email_verification_sent_at"`
	PasswordResetToken      *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpiresAt  *time.Time `json:"-" db:"password_reset_expires_at"`
	CreatedAt               time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt               *time.Time `json:"-" db:"deleted_at"`
}

type SignUpMetadata struct {
	Gender            *string  `json:"gender,omitempty" validate:"omitempty,max=50"`
	Nationality       *string  `json:"nationality,omitempty" validate:"omitempty,max=100"`
	DateOfBirth       *Date    `json:"date_of_birth,omitempty"`
	Phone             *string  `json:"phone,omitempty" validate:"omitempty,max=30"`
	RequestedServices []string `json:"requested_services,omitempty" validate:"omitempty,dive,max=100"`
}

type SignUpInput struct {
	Email    string         `json:"email" validate:"required,email,max=255"`
	Password string         `json:"password" validate:"required,min=8,max=72"`
	FullName string         `json:"full_name" validate:"required,min=2,max=200"`
	Role     Role           `json:"role" validate:"omitempty,oneof=admin caseworker ngo refugee donor"`
	Metadata SignUpMetadata `json:"metadata"`
}

type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResult is returned by sign-in and sign-up. Tokens is nil when the
// account must verify its email before signing in.
type AuthResult struct {
	Profile *Profile   `json:"profile"`
	Tokens  *TokenPair `json:"session,omitempty"`
}

type SessionInfo struct {
	Email        string   `json:"email"`
	Profile      *Profile `json:"profile"`
	LandingRoute string   `json:"landing_route"`
}

type Session struct {
	ID        uuid.UUID  `db:"session_id"`
	ProfileID uuid.UUID  `db:"profile_id"`
	TokenHash string     `db:"token_hash"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	CreatedAt time.Time  `db:"created_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
