package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockDB opens gorm over a sqlmock connection, for asserting the exact SQL
// the repository issues against the production driver.
func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return db, mock
}

func TestCustomerUpdate_ScopesByOrganization(t *testing.T) {
	db, mock := mockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "customers" SET .+ WHERE .*organization_id = .+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rows, err := repo.Update(7, 42, map[string]any{"phone": "555-0199"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerUpdate_NoMatchingRow(t *testing.T) {
	db, mock := mockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "customers" SET .+ WHERE .*organization_id = .+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	rows, err := repo.Update(7, 42, map[string]any{"phone": "555-0199"})
	assert.NoError(t, err)
	assert.Zero(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerDelete_IsSoftDelete(t *testing.T) {
	db, mock := mockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "customers" SET "deleted_at"=.+ WHERE .*organization_id = .+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rows, err := repo.Delete(7, 42)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
