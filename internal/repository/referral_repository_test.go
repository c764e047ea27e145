package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refugee-portal/internal/domain"
)

func TestReferralRepository_CountActive_ScopedToCaseworker(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReferralRepository(db)
	caseworker := uuid.New()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM referrals WHERE household_id IN \(SELECT id FROM households WHERE caseworker_id = \$1\) AND status = ANY\(\$2\)`).
		WithArgs(caseworker, "{\"pending\",\"sent\",\"in_progress\"}").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountActive(context.Background(), &caseworker)

	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReferralRepository_ListByStatuses(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReferralRepository(db)
	household := uuid.New()
	filter := domain.ReferralFilter{
		HouseholdID: &household,
		Statuses:    []domain.ReferralStatus{domain.ReferralSent, domain.ReferralCompleted},
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM referrals WHERE household_id = \$1 AND status = ANY\(\$2\)`).
		WithArgs(household, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM referrals WHERE household_id = \$1 AND status = ANY\(\$2\) ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(household, sqlmock.AnyArg(), 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	referrals, total, err := repo.List(context.Background(), filter, domain.PaginationParams{})

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, referrals)
	require.NoError(t, mock.ExpectationsWereMet())
}
