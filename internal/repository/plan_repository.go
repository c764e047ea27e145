package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"refugee-portal/internal/domain"
)

type PlanRepository interface {
	Create(ctx context.Context, plan *domain.IntegrationPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.IntegrationPlan, error)
	Update(ctx context.Context, plan *domain.IntegrationPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.PlanFilter, params domain.PaginationParams) ([]domain.IntegrationPlan, int64, error)
	CountActive(ctx context.Context, caseworkerID *uuid.UUID) (int64, error)

	CreateGoal(ctx context.Context, goal *domain.IntegrationGoal) error
	GetGoal(ctx context.Context, id uuid.UUID) (*domain.IntegrationGoal, error)
	UpdateGoal(ctx context.Context, goal *domain.IntegrationGoal) error
	DeleteGoal(ctx context.Context, id uuid.UUID) error
	ListGoals(ctx context.Context, planID uuid.UUID) ([]domain.IntegrationGoal, error)
	// GoalCounts returns completed and total goals across every plan of a household.
	GoalCounts(ctx context.Context, householdID uuid.UUID) (completed int, total int, err error)
}

type planRepository struct {
	db *sqlx.DB
}

func NewPlanRepository(db *sqlx.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, p *domain.IntegrationPlan) error {
	query := `
		INSERT INTO integration_plans (id, household_id, caseworker_id, start_date, review_date, status, overall_goal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		p.ID, p.HouseholdID, p.CaseworkerID, p.StartDate, p.ReviewDate, p.Status, p.OverallGoal,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *planRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.IntegrationPlan, error) {
	var p domain.IntegrationPlan
	err := r.db.GetContext(ctx, &p, `SELECT * FROM integration_plans WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *planRepository) Update(ctx context.Context, p *domain.IntegrationPlan) error {
	query := `
		UPDATE integration_plans
		SET caseworker_id = $2, start_date = $3, review_date = $4, status = $5, overall_goal = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		p.ID, p.CaseworkerID, p.StartDate, p.ReviewDate, p.Status, p.OverallGoal,
	).Scan(&p.UpdatedAt)
}

func (r *planRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM integration_plans WHERE id = $1`, id)
	return err
}

func (r *planRepository) List(ctx context.Context, filter domain.PlanFilter, params domain.PaginationParams) ([]domain.IntegrationPlan, int64, error) {
	params.Validate()

	var c conditions
	if filter.HouseholdID != nil {
		c.add("household_id = ?", *filter.HouseholdID)
	}
	if filter.CaseworkerID != nil {
		c.add("caseworker_id = ?", *filter.CaseworkerID)
	}
	if filter.Status != nil {
		c.add("status = ?", *filter.Status)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM integration_plans`+c.where(), c.args...); err != nil {
		return nil, 0, err
	}

	limit, args := c.page(params.PageSize, params.Offset())
	query := `SELECT * FROM integration_plans` + c.where() + ` ORDER BY created_at DESC` + limit

	var plans []domain.IntegrationPlan
	err := r.db.SelectContext(ctx, &plans, query, args...)
	return plans, total, err
}

func (r *planRepository) CountActive(ctx context.Context, caseworkerID *uuid.UUID) (int64, error) {
	c := caseworkerScope("household_id", caseworkerID)
	c.raw("status = 'active'")

	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM integration_plans`+c.where(), c.args...)
	return count, err
}

func (r *planRepository) CreateGoal(ctx context.Context, g *domain.IntegrationGoal) error {
	query := `
		INSERT INTO integration_goals (id, plan_id, category, description, target_date, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		g.ID, g.PlanID, g.Category, g.Description, g.TargetDate, g.Priority, g.Status,
	).Scan(&g.CreatedAt, &g.UpdatedAt)
}

func (r *planRepository) GetGoal(ctx context.Context, id uuid.UUID) (*domain.IntegrationGoal, error) {
	var g domain.IntegrationGoal
	err := r.db.GetContext(ctx, &g, `SELECT * FROM integration_goals WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *planRepository) UpdateGoal(ctx context.Context, g *domain.IntegrationGoal) error {
	query := `
		UPDATE integration_goals
		SET category = $2, description = $3, target_date = $4, priority = $5, status = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		g.ID, g.Category, g.Description, g.TargetDate, g.Priority, g.Status,
	).Scan(&g.UpdatedAt)
}

func (r *planRepository) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM integration_goals WHERE id = $1`, id)
	return err
}

func (r *planRepository) ListGoals(ctx context.Context, planID uuid.UUID) ([]domain.IntegrationGoal, error) {
	query := `
		SELECT * FROM integration_goals
		WHERE plan_id = $1
		ORDER BY CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC, created_at ASC`

	var goals []domain.IntegrationGoal
	err := r.db.SelectContext(ctx, &goals, query, planID)
	return goals, err
}

func (r *planRepository) GoalCounts(ctx context.Context, householdID uuid.UUID) (int, int, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE g.status = 'completed') AS completed,
			COUNT(*) AS total
		FROM integration_goals g
		JOIN integration_plans p ON p.id = g.plan_id
		WHERE p.household_id = $1`

	var counts struct {
		Completed int `db:"completed"`
		Total     int `db:"total"`
	}
	if err := r.db.GetContext(ctx, &counts, query, householdID); err != nil {
		return 0, 0, err
	}
	return counts.Completed, counts.Total, nil
}
