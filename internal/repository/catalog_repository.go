package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"refugee-portal/internal/domain"
)

type CatalogRepository interface {
	CreateService(ctx context.Context, svc *domain.Service) error
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	ListServices(ctx context.Context) ([]domain.Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error

	// CreateDonation records the donation and, when it targets a service,
	// adds the amount to the service's raised total in the same transaction.
	CreateDonation(ctx context.Context, donation *domain.Donation) error
	ListDonations(ctx context.Context, donorID *uuid.UUID, params domain.PaginationParams) ([]domain.Donation, int64, error)
	SumDonations(ctx context.Context) (float64, error)
}

type catalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateService(ctx context.Context, s *domain.Service) error {
	query := `
		INSERT INTO services (id, title, category, description, target_amount, raised_amount)
		VALUES ($1, $2, $3, $4, $5, 0)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		s.ID, s.Title, s.Category, s.Description, s.TargetAmount,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *catalogRepository) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	var s domain.Service
	err := r.db.GetContext(ctx, &s, `SELECT * FROM services WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *catalogRepository) ListServices(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	err := r.db.SelectContext(ctx, &services, `SELECT * FROM services ORDER BY title`)
	return services, err
}

func (r *catalogRepository) DeleteService(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

func (r *catalogRepository) CreateDonation(ctx context.Context, d *domain.Donation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if d.ServiceID != nil {
		res, err := tx.ExecContext(ctx,
			`UPDATE services SET raised_amount = raised_amount + $2, updated_at = NOW() WHERE id = $1`,
			*d.ServiceID, d.Amount)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrServiceNotFound
		}
	}

	query := `
		INSERT INTO donations (id, donor_id, service_id, amount, campaign)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`
	if err := tx.QueryRowxContext(ctx, query, d.ID, d.DonorID, d.ServiceID, d.Amount, d.Campaign).Scan(&d.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *catalogRepository) ListDonations(ctx context.Context, donorID *uuid.UUID, params domain.PaginationParams) ([]domain.Donation, int64, error) {
	params.Validate()

	var c conditions
	if donorID != nil {
		c.add("d.donor_id = ?", *donorID)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM donations d`+c.where(), c.args...); err != nil {
		return nil, 0, err
	}

	limit, args := c.page(params.PageSize, params.Offset())
	query := `
		SELECT d.*, p.full_name AS donor_name
		FROM donations d
		LEFT JOIN profiles p ON p.id = d.donor_id` + c.where() + `
		ORDER BY d.created_at DESC` + limit

	var donations []domain.Donation
	err := r.db.SelectContext(ctx, &donations, query, args...)
	return donations, total, err
}

func (r *catalogRepository) SumDonations(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(amount), 0) FROM donations`)
	return total, err
}
