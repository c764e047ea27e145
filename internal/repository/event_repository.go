package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"refugee-portal/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.CommunityEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CommunityEvent, error)
	Update(ctx context.Context, event *domain.CommunityEvent) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]domain.CommunityEvent, int64, error)
	CountUpcoming(ctx context.Context, from domain.Date) (int64, error)

	// Register locks the event row, checks status and capacity, and inserts
	// the participation in one transaction.
	Register(ctx context.Context, p *domain.EventParticipation) error
	ListParticipants(ctx context.Context, eventID uuid.UUID) ([]domain.EventParticipation, error)
	SetAttendance(ctx context.Context, eventID, householdID uuid.UUID, attended bool) (*domain.EventParticipation, error)
}

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.CommunityEvent) error {
	query := `
		INSERT INTO community_events (id, title, description, event_type, event_date, start_time, end_time,
			location, max_participants, status, is_published, organizer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		e.ID, e.Title, e.Description, e.Type, e.EventDate, e.StartTime, e.EndTime,
		e.Location, e.MaxParticipants, e.Status, e.IsPublished, e.OrganizerID,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CommunityEvent, error) {
	var e domain.CommunityEvent
	err := r.db.GetContext(ctx, &e, `SELECT * FROM community_events WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.CommunityEvent) error {
	query := `
		UPDATE community_events
		SET title = $2, description = $3, event_type = $4, event_date = $5, start_time = $6,
			end_time = $7, location = $8, max_participants = $9, status = $10, is_published = $11,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		e.ID, e.Title, e.Description, e.Type, e.EventDate, e.StartTime, e.EndTime,
		e.Location, e.MaxParticipants, e.Status, e.IsPublished,
	).Scan(&e.UpdatedAt)
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM community_events WHERE id = $1`, id)
	return err
}

func eventConditions(filter domain.EventFilter) conditions {
	var c conditions
	if filter.From != nil {
		c.add("event_date >= ?", *filter.From)
	}
	if filter.Status != nil {
		c.add("status = ?", *filter.Status)
	}
	if filter.PublishedOnly {
		c.raw("is_published = TRUE")
	}
	return c
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]domain.CommunityEvent, int64, error) {
	params.Validate()
	c := eventConditions(filter)

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM community_events`+c.where(), c.args...); err != nil {
		return nil, 0, err
	}

	limit, args := c.page(params.PageSize, params.Offset())
	query := `SELECT * FROM community_events` + c.where() + ` ORDER BY event_date ASC, start_time ASC NULLS LAST` + limit

	var events []domain.CommunityEvent
	err := r.db.SelectContext(ctx, &events, query, args...)
	return events, total, err
}

func (r *eventRepository) CountUpcoming(ctx context.Context, from domain.Date) (int64, error) {
	status := domain.EventActive
	c := eventConditions(domain.EventFilter{From: &from, Status: &status})

	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM community_events`+c.where(), c.args...)
	return count, err
}

func (r *eventRepository) Register(ctx context.Context, p *domain.EventParticipation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var event domain.CommunityEvent
	err = tx.GetContext(ctx, &event, `SELECT * FROM community_events WHERE id = $1 FOR UPDATE`, p.EventID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrEventNotFound
	}
	if err != nil {
		return err
	}
	if event.Status != domain.EventActive {
		return domain.ErrEventNotActive
	}

	var exists bool
	err = tx.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM event_participation WHERE event_id = $1 AND household_id = $2)`,
		p.EventID, p.HouseholdID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrAlreadyRegistered
	}

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM event_participation WHERE event_id = $1`, p.EventID); err != nil {
		return err
	}
	if !event.HasCapacityFor(count) {
		return domain.ErrEventFull
	}

	query := `
		INSERT INTO event_participation (id, event_id, household_id, registered_by, attended)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING registered_at`
	if err := tx.QueryRowxContext(ctx, query, p.ID, p.EventID, p.HouseholdID, p.RegisteredBy).Scan(&p.RegisteredAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *eventRepository) ListParticipants(ctx context.Context, eventID uuid.UUID) ([]domain.EventParticipation, error) {
	var participants []domain.EventParticipation
	err := r.db.SelectContext(ctx, &participants,
		`SELECT * FROM event_participation WHERE event_id = $1 ORDER BY registered_at`, eventID)
	return participants, err
}

func (r *eventRepository) SetAttendance(ctx context.Context, eventID, householdID uuid.UUID, attended bool) (*domain.EventParticipation, error) {
	query := `
		UPDATE event_participation SET attended = $3
		WHERE event_id = $1 AND household_id = $2
		RETURNING *`

	var p domain.EventParticipation
	err := r.db.GetContext(ctx, &p, query, eventID, householdID, attended)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
