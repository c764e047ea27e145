package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"refugee-portal/internal/domain"
)

type AssessmentRepository interface {
	Create(ctx context.Context, a *domain.Assessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Assessment, error)
	Update(ctx context.Context, a *domain.Assessment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.AssessmentFilter, params domain.PaginationParams) ([]domain.Assessment, int64, error)
	// CountPending counts non-completed assessments on households assigned
	// to caseworkerID, or on all households when it is nil.
	CountPending(ctx context.Context, caseworkerID *uuid.UUID) (int64, error)
	ListOverdue(ctx context.Context, caseworkerID *uuid.UUID, today domain.Date, limit int) ([]domain.Assessment, error)
}

type assessmentRepository struct {
	db *sqlx.DB
}

func NewAssessmentRepository(db *sqlx.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(ctx context.Context, a *domain.Assessment) error {
	query := `
		INSERT INTO assessments (id, household_id, type, priority, status, due_date, notes, assessor_id, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		a.ID, a.HouseholdID, a.Type, a.Priority, a.Status, a.DueDate, a.Notes, a.AssessorID, a.CompletedAt,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *assessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	var a domain.Assessment
	err := r.db.GetContext(ctx, &a, `SELECT * FROM assessments WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assessmentRepository) Update(ctx context.Context, a *domain.Assessment) error {
	query := `
		UPDATE assessments
		SET type = $2, priority = $3, status = $4, due_date = $5, notes = $6,
			assessor_id = $7, completed_at = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		a.ID, a.Type, a.Priority, a.Status, a.DueDate, a.Notes, a.AssessorID, a.CompletedAt,
	).Scan(&a.UpdatedAt)
}

func (r *assessmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = $1`, id)
	return err
}

func (r *assessmentRepository) List(ctx context.Context, filter domain.AssessmentFilter, params domain.PaginationParams) ([]domain.Assessment, int64, error) {
	params.Validate()

	var c conditions
	if filter.HouseholdID != nil {
		c.add("household_id = ?", *filter.HouseholdID)
	}
	if filter.Status != nil {
		c.add("status = ?", *filter.Status)
	}
	if filter.AssessorID != nil {
		c.add("assessor_id = ?", *filter.AssessorID)
	}
	if filter.OverdueAt != nil {
		c.add("due_date < ?", *filter.OverdueAt)
		c.raw("status <> 'completed'")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM assessments`+c.where(), c.args...); err != nil {
		return nil, 0, err
	}

	limit, args := c.page(params.PageSize, params.Offset())
	query := `SELECT * FROM assessments` + c.where() + ` ORDER BY due_date ASC NULLS LAST, created_at DESC` + limit

	var assessments []domain.Assessment
	err := r.db.SelectContext(ctx, &assessments, query, args...)
	return assessments, total, err
}

func caseworkerScope(column string, caseworkerID *uuid.UUID) conditions {
	var c conditions
	if caseworkerID != nil {
		c.add(column+" IN (SELECT id FROM households WHERE caseworker_id = ?)", *caseworkerID)
	}
	return c
}

func (r *assessmentRepository) CountPending(ctx context.Context, caseworkerID *uuid.UUID) (int64, error) {
	c := caseworkerScope("household_id", caseworkerID)
	c.raw("status <> 'completed'")

	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM assessments`+c.where(), c.args...)
	return count, err
}

func (r *assessmentRepository) ListOverdue(ctx context.Context, caseworkerID *uuid.UUID, today domain.Date, limit int) ([]domain.Assessment, error) {
	c := caseworkerScope("household_id", caseworkerID)
	c.add("due_date < ?", today)
	c.raw("status <> 'completed'")

	limitClause, args := c.page(limit, 0)
	query := `SELECT * FROM assessments` + c.where() + ` ORDER BY due_date ASC` + limitClause

	var assessments []domain.Assessment
	err := r.db.SelectContext(ctx, &assessments, query, args...)
	return assessments, err
}
