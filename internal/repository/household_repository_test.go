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

var householdColumns = []string{
	"id", "address", "accommodation_type", "local_authority", "status",
	"caseworker_id", "head_of_household_id", "created_by", "created_at", "updated_at",
}

func TestHouseholdRepository_ListByCaseworker(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewHouseholdRepository(db)
	caseworker := uuid.New()

	rows := sqlmock.NewRows(householdColumns)
	for i := 0; i < 2; i++ {
		rows.AddRow(uuid.NewString(), "1 High St", "temporary", "Leeds", "active", caseworker.String(), nil, nil, fixedTime, fixedTime)
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM households WHERE caseworker_id = \$1`).
		WithArgs(caseworker).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM households WHERE caseworker_id = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs(caseworker, 10, 10).
		WillReturnRows(rows)

	households, total, err := repo.List(context.Background(),
		domain.HouseholdFilter{CaseworkerID: &caseworker},
		domain.PaginationParams{Page: 2, PageSize: 10})

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, households, 2)
	for _, h := range households {
		require.NotNil(t, h.CaseworkerID)
		assert.Equal(t, caseworker, *h.CaseworkerID)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHouseholdRepository_ListWithoutFilter(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewHouseholdRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM households$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM households ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(householdColumns))

	households, total, err := repo.List(context.Background(), domain.HouseholdFilter{}, domain.PaginationParams{})

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, households)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHouseholdRepository_AddMember_UnknownProfile(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewHouseholdRepository(db)

	mock.ExpectExec(`UPDATE profiles SET household_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AddMember(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
