package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"refugee-portal/internal/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	List(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.Request, int64, error)
	// Review moves a pending request to status. It reports false when the
	// request was no longer pending.
	Review(ctx context.Context, req *domain.Request) (bool, error)
	Count(ctx context.Context, status *domain.RequestStatus) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Request, error)
}

type requestRepository struct {
	db *sqlx.DB
}

func NewRequestRepository(db *sqlx.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	query := `
		INSERT INTO requests (id, user_id, type, urgency, description, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.UserID, req.Type, req.Urgency, req.Description, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	var req domain.Request
	err := r.db.GetContext(ctx, &req, `SELECT * FROM requests WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func requestConditions(filter domain.RequestFilter) conditions {
	var c conditions
	if filter.Status != nil {
		c.add("status = ?", *filter.Status)
	}
	if filter.UserID != nil {
		c.add("user_id = ?", *filter.UserID)
	}
	return c
}

func (r *requestRepository) List(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.Request, int64, error) {
	params.Validate()
	c := requestConditions(filter)

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM requests`+c.where(), c.args...); err != nil {
		return nil, 0, err
	}

	limit, args := c.page(params.PageSize, params.Offset())
	query := `SELECT * FROM requests` + c.where() + ` ORDER BY created_at DESC` + limit

	var requests []domain.Request
	err := r.db.SelectContext(ctx, &requests, query, args...)
	return requests, total, err
}

func (r *requestRepository) Review(ctx context.Context, req *domain.Request) (bool, error) {
	query := `
		UPDATE requests
		SET status = $2, reviewed_by = $3, reviewed_at = NOW(), review_note = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING reviewed_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, req.ID, req.Status, req.ReviewedBy, req.ReviewNote).
		Scan(&req.ReviewedAt, &req.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *requestRepository) Count(ctx context.Context, status *domain.RequestStatus) (int64, error) {
	c := requestConditions(domain.RequestFilter{Status: status})

	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM requests`+c.where(), c.args...)
	return count, err
}

func (r *requestRepository) ListRecent(ctx context.Context, limit int) ([]domain.Request, error) {
	if limit <= 0 {
		limit = 5
	}

	var requests []domain.Request
	err := r.db.SelectContext(ctx, &requests, `SELECT * FROM requests ORDER BY created_at DESC LIMIT $1`, limit)
	return requests, err
}
