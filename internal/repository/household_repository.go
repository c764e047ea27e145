package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"refugee-portal/internal/domain"
)

type HouseholdRepository interface {
	Create(ctx context.Context, household *domain.Household) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Household, error)
	Update(ctx context.Context, household *domain.Household) error
	List(ctx context.Context, filter domain.HouseholdFilter, params domain.PaginationParams) ([]domain.Household, int64, error)
	Count(ctx context.Context, caseworkerID *uuid.UUID) (int64, error)
	// AddMember points the profile at the household.
	AddMember(ctx context.Context, householdID, profileID uuid.UUID) error
	// CreateMember inserts a new profile already attached to the household.
	CreateMember(ctx context.Context, member *domain.Profile) error
}

type householdRepository struct {
	db *sqlx.DB
}

func NewHouseholdRepository(db *sqlx.DB) HouseholdRepository {
	return &householdRepository{db: db}
}

func (r *householdRepository) Create(ctx context.Context, h *domain.Household) error {
	query := `
		INSERT INTO households (id, address, accommodation_type, local_authority, status, caseworker_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		h.ID, h.Address, h.AccommodationType, h.LocalAuthority, h.Status, h.CaseworkerID, h.CreatedBy,
	).Scan(&h.CreatedAt, &h.UpdatedAt)
}

func (r *householdRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Household, error) {
	var h domain.Household
	err := r.db.GetContext(ctx, &h, `SELECT * FROM households WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *householdRepository) Update(ctx context.Context, h *domain.Household) error {
	query := `
		UPDATE households
		SET address = $2, accommodation_type = $3, local_authority = $4, status = $5,
			caseworker_id = $6, head_of_household_id = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		h.ID, h.Address, h.AccommodationType, h.LocalAuthority, h.Status,
		h.CaseworkerID, h.HeadOfHouseholdID,
	).Scan(&h.UpdatedAt)
}

func householdConditions(filter domain.HouseholdFilter) conditions {
	var c conditions
	if filter.CaseworkerID != nil {
		c.add("caseworker_id = ?", *filter.CaseworkerID)
	}
	if filter.Status != nil {
		c.add("status = ?", *filter.Status)
	}
	if filter.MemberID != nil {
		c.add("id = (SELECT household_id FROM profiles WHERE id = ?)", *filter.MemberID)
	}
	return c
}

func (r *householdRepository) List(ctx context.Context, filter domain.HouseholdFilter, params domain.PaginationParams) ([]domain.Household, int64, error) {
	params.Validate()
	c := householdConditions(filter)

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM households`+c.where(), c.args...); err != nil {
		return nil, 0, err
	}

	limit, args := c.page(params.PageSize, params.Offset())
	query := `SELECT * FROM households` + c.where() + ` ORDER BY created_at DESC` + limit

	var households []domain.Household
	err := r.db.SelectContext(ctx, &households, query, args...)
	return households, total, err
}

func (r *householdRepository) Count(ctx context.Context, caseworkerID *uuid.UUID) (int64, error) {
	c := householdConditions(domain.HouseholdFilter{CaseworkerID: caseworkerID})

	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM households`+c.where(), c.args...)
	return count, err
}

func (r *householdRepository) AddMember(ctx context.Context, householdID, profileID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET household_id = $2, updated_at = NOW() WHERE id = $1`, profileID, householdID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *householdRepository) CreateMember(ctx context.Context, member *domain.Profile) error {
	return insertProfile(ctx, r.db, member)
}
