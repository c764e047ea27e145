package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"refugee-portal/internal/domain"
)

type CaseNoteRepository interface {
	Create(ctx context.Context, note *domain.CaseNote) error
	ListByHousehold(ctx context.Context, householdID uuid.UUID, includeSensitive bool, params domain.PaginationParams) ([]domain.CaseNote, int64, error)
}

type caseNoteRepository struct {
	db *sqlx.DB
}

func NewCaseNoteRepository(db *sqlx.DB) CaseNoteRepository {
	return &caseNoteRepository{db: db}
}

func (r *caseNoteRepository) Create(ctx context.Context, note *domain.CaseNote) error {
	query := `
		INSERT INTO case_notes (id, household_id, author_id, category, is_sensitive, content)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		note.ID, note.HouseholdID, note.AuthorID, note.Category, note.IsSensitive, note.Content,
	).Scan(&note.CreatedAt)
}

func (r *caseNoteRepository) ListByHousehold(ctx context.Context, householdID uuid.UUID, includeSensitive bool, params domain.PaginationParams) ([]domain.CaseNote, int64, error) {
	params.Validate()

	var c conditions
	c.add("n.household_id = ?", householdID)
	if !includeSensitive {
		c.raw("n.is_sensitive = FALSE")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM case_notes n`+c.where(), c.args...); err != nil {
		return nil, 0, err
	}

	limit, args := c.page(params.PageSize, params.Offset())
	query := `
		SELECT n.*, p.full_name AS author_name
		FROM case_notes n
		LEFT JOIN profiles p ON p.id = n.author_id` + c.where() + `
		ORDER BY n.created_at DESC` + limit

	var notes []domain.CaseNote
	err := r.db.SelectContext(ctx, &notes, query, args...)
	return notes, total, err
}
