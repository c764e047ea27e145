package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"refugee-portal/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	List(ctx context.Context, filter domain.ProfileFilter, params domain.PaginationParams) ([]domain.Profile, int64, error)
	ListByHousehold(ctx context.Context, householdID uuid.UUID) ([]domain.Profile, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

const insertProfileQuery = `
	INSERT INTO profiles (id, full_name, role, email, phone, gender, nationality,
		date_of_birth, household_id, requested_services)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at, updated_at`

func insertProfile(ctx context.Context, q sqlx.QueryerContext, p *domain.Profile) error {
	if p.RequestedServices == nil {
		p.RequestedServices = []string{}
	}
	return q.QueryRowxContext(ctx, insertProfileQuery,
		p.ID, p.FullName, p.Role, p.Email, p.Phone, p.Gender, p.Nationality,
		p.DateOfBirth, p.HouseholdID, p.RequestedServices,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	return insertProfile(ctx, r.db, profile)
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT * FROM profiles WHERE id = $1`

	err := r.db.GetContext(ctx, &profile, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $2, role = $3, phone = $4, gender = $5, nationality = $6,
			date_of_birth = $7, household_id = $8, requested_services = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	if p.RequestedServices == nil {
		p.RequestedServices = []string{}
	}
	return r.db.QueryRowxContext(ctx, query,
		p.ID, p.FullName, p.Role, p.Phone, p.Gender, p.Nationality,
		p.DateOfBirth, p.HouseholdID, p.RequestedServices,
	).Scan(&p.UpdatedAt)
}

func (r *profileRepository) List(ctx context.Context, filter domain.ProfileFilter, params domain.PaginationParams) ([]domain.Profile, int64, error) {
	params.Validate()

	var c conditions
	if filter.Role != nil {
		c.add("role = ?", *filter.Role)
	}
	if filter.HouseholdID != nil {
		c.add("household_id = ?", *filter.HouseholdID)
	}
	if filter.Search != "" {
		c.add("full_name ILIKE '%' || ? || '%'", filter.Search)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM profiles`+c.where(), c.args...); err != nil {
		return nil, 0, err
	}

	limit, args := c.page(params.PageSize, params.Offset())
	query := `SELECT * FROM profiles` + c.where() + ` ORDER BY full_name` + limit

	var profiles []domain.Profile
	err := r.db.SelectContext(ctx, &profiles, query, args...)
	return profiles, total, err
}

func (r *profileRepository) ListByHousehold(ctx context.Context, householdID uuid.UUID) ([]domain.Profile, error) {
	query := `SELECT * FROM profiles WHERE household_id = $1 ORDER BY created_at`

	var profiles []domain.Profile
	err := r.db.SelectContext(ctx, &profiles, query, householdID)
	return profiles, err
}

func (r *profileRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM profiles WHERE role = $1`, role)
	return count, err
}
