package db

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{DisableAutomaticPing: true},
	)
	require.NoError(t, err)

	return gdb, mock
}

func TestEnsureSlotIndex(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectExec(`CREATE UNIQUE INDEX IF NOT EXISTS uniq_doctor_blocking_slot`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, ensureSlotIndex(gdb))
	require.NoError(t, mock.ExpectationsWereMet())
}

// Index creation failure (e.g. pre-existing duplicate blocking rows) must
// surface: without this index the no-double-booking invariant has no
// authority under concurrency.
func TestEnsureSlotIndexSurfacesError(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectExec(`CREATE UNIQUE INDEX IF NOT EXISTS uniq_doctor_blocking_slot`).
		WillReturnError(errors.New("could not create unique index"))

	err := ensureSlotIndex(gdb)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unique index")
}
