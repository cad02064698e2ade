package repository

import (
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybreak-coffee/shift-planner/internal/config"
)

func newRepositoryMock(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5

	return NewRepository(cfg, db), mock, func() { db.Close() }
}

func TestDeleteAvailabilityOverrideScopedToOwner(t *testing.T) {
	repo, mock, cleanup := newRepositoryMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availability_overrides WHERE id = $1 AND employee_id = $2")).
		WithArgs(int64(7), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteAvailabilityOverride(7, 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAvailabilityOverrideOtherEmployee(t *testing.T) {
	repo, mock, cleanup := newRepositoryMock(t)
	defer cleanup()

	// row belongs to someone else, so the scoped delete touches nothing
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availability_overrides WHERE id = $1 AND employee_id = $2")).
		WithArgs(int64(7), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteAvailabilityOverride(7, 4)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUnavailableDateScopedToOwner(t *testing.T) {
	repo, mock, cleanup := newRepositoryMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM unavailable_dates WHERE id = $1 AND employee_id = $2")).
		WithArgs(int64(12), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteUnavailableDate(12, 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUnavailableDateOtherEmployee(t *testing.T) {
	repo, mock, cleanup := newRepositoryMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM unavailable_dates WHERE id = $1 AND employee_id = $2")).
		WithArgs(int64(12), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteUnavailableDate(12, 4)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
