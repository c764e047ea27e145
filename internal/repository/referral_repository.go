package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"refugee-portal/internal/domain"
)

type ReferralRepository interface {
	Create(ctx context.Context, ref *domain.Referral) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Referral, error)
	Update(ctx context.Context, ref *domain.Referral) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.ReferralFilter, params domain.PaginationParams) ([]domain.Referral, int64, error)
	CountActive(ctx context.Context, caseworkerID *uuid.UUID) (int64, error)
}

type referralRepository struct {
	db *sqlx.DB
}

func NewReferralRepository(db *sqlx.DB) ReferralRepository {
	return &referralRepository{db: db}
}

func (r *referralRepository) Create(ctx context.Context, ref *domain.Referral) error {
	query := `
		INSERT INTO referrals (id, household_id, service_type, provider_name, status, referred_date, check_in_date, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		ref.ID, ref.HouseholdID, ref.ServiceType, ref.ProviderName, ref.Status,
		ref.ReferredDate, ref.CheckInDate, ref.Notes, ref.CreatedBy,
	).Scan(&ref.CreatedAt, &ref.UpdatedAt)
}

func (r *referralRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Referral, error) {
	var ref domain.Referral
	err := r.db.GetContext(ctx, &ref, `SELECT * FROM referrals WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *referralRepository) Update(ctx context.Context, ref *domain.Referral) error {
	query := `
		UPDATE referrals
		SET service_type = $2, provider_name = $3, status = $4, referred_date = $5,
			check_in_date = $6, notes = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		ref.ID, ref.ServiceType, ref.ProviderName, ref.Status, ref.ReferredDate, ref.CheckInDate, ref.Notes,
	).Scan(&ref.UpdatedAt)
}

func (r *referralRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM referrals WHERE id = $1`, id)
	return err
}

func statusArray(statuses []domain.ReferralStatus) pq.StringArray {
	out := make(pq.StringArray, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func (r *referralRepository) List(ctx context.Context, filter domain.ReferralFilter, params domain.PaginationParams) ([]domain.Referral, int64, error) {
	params.Validate()

	var c conditions
	if filter.HouseholdID != nil {
		c.add("household_id = ?", *filter.HouseholdID)
	}
	if len(filter.Statuses) > 0 {
		c.add("status = ANY(?)", statusArray(filter.Statuses))
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM referrals`+c.where(), c.args...); err != nil {
		return nil, 0, err
	}

	limit, args := c.page(params.PageSize, params.Offset())
	query := `SELECT * FROM referrals` + c.where() + ` ORDER BY created_at DESC` + limit

	var referrals []domain.Referral
	err := r.db.SelectContext(ctx, &referrals, query, args...)
	return referrals, total, err
}

func (r *referralRepository) CountActive(ctx context.Context, caseworkerID *uuid.UUID) (int64, error) {
	c := caseworkerScope("household_id", caseworkerID)
	c.add("status = ANY(?)", statusArray(domain.ActiveReferralStatuses))

	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM referrals`+c.where(), c.args...)
	return count, err
}
