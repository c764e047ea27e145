package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refugee-portal/internal/domain"
)

var requestColumns = []string{
	"id", "user_id", "type", "urgency", "description", "status",
	"reviewed_by", "reviewed_at", "review_note", "created_at", "updated_at",
}

func TestRequestRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRequestRepository(db)

	req := &domain.Request{
		ID: uuid.New(), UserID: uuid.New(), Type: "food", Urgency: "high",
		Description: "need food", Status: domain.RequestPending,
	}

	mock.ExpectQuery(`INSERT INTO requests`).
		WithArgs(req.ID, req.UserID, "food", "high", "need food", domain.RequestPending).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(fixedTime, fixedTime))

	require.NoError(t, repo.Create(context.Background(), req))
	assert.Equal(t, fixedTime, req.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRequestRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM requests WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	req, err := repo.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Nil(t, req)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_ListFiltersByUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRequestRepository(db)
	userID := uuid.New()
	id := uuid.New()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM requests WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM requests WHERE user_id = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs(userID, 20, 0).
		WillReturnRows(sqlmock.NewRows(requestColumns).AddRow(
			id.String(), userID.String(), "food", "high", "need food", "approved",
			nil, nil, nil, fixedTime, fixedTime,
		))

	requests, total, err := repo.List(context.Background(), domain.RequestFilter{UserID: &userID}, domain.PaginationParams{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, requests, 1)
	assert.Equal(t, userID, requests[0].UserID)
	assert.Equal(t, domain.RequestApproved, requests[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_Review(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRequestRepository(db)
	reviewer := uuid.New()
	req := &domain.Request{ID: uuid.New(), Status: domain.RequestApproved, ReviewedBy: &reviewer}

	mock.ExpectQuery(`UPDATE requests\s+SET status = \$2.*WHERE id = \$1 AND status = 'pending'`).
		WithArgs(req.ID, domain.RequestApproved, reviewer, nil).
		WillReturnRows(sqlmock.NewRows([]string{"reviewed_at", "updated_at"}).AddRow(fixedTime, fixedTime))

	ok, err := repo.Review(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, req.ReviewedAt)
	assert.Equal(t, fixedTime, *req.ReviewedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_Review_NoLongerPending(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRequestRepository(db)
	req := &domain.Request{ID: uuid.New(), Status: domain.RequestRejected}

	mock.ExpectQuery(`UPDATE requests`).WillReturnError(sql.ErrNoRows)

	ok, err := repo.Review(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
