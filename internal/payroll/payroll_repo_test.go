package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRepoTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, _ := sqlmock.New()
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	return gdb, mock
}

// WithTx must route statements through the caller's *sql.Tx, not the pooled
// handle, or the finalize update would auto-commit outside the transaction
// that also writes the outbox rows. The pool mock carries no expectations,
// so any statement leaking to it fails the repository call.
func TestRepository_WithTx_SetFinalizedRunsOnTransaction(t *testing.T) {
	base, poolMock := newRepoTestDB(t)

	txDB, txMock, _ := sqlmock.New()
	t.Cleanup(func() { txDB.Close() })

	txMock.ExpectBegin()
	txMock.ExpectExec(`UPDATE "payslips" SET`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	txMock.ExpectCommit()

	tx, err := txDB.Begin()
	assert.NoError(t, err)

	qtx := NewRepository(base).WithTx(tx)
	affected, err := qtx.SetFinalized(
		context.Background(),
		uuid.NewString(),
		[]string{uuid.NewString(), uuid.NewString()},
		uuid.NewString(),
		time.Now(),
	)
	assert.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	assert.NoError(t, tx.Commit())
	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestRepository_WithTx_DeleteDraftRunsOnTransaction(t *testing.T) {
	base, poolMock := newRepoTestDB(t)

	txDB, txMock, _ := sqlmock.New()
	t.Cleanup(func() { txDB.Close() })

	txMock.ExpectBegin()
	txMock.ExpectExec(`UPDATE "payslips" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	txMock.ExpectRollback()

	tx, err := txDB.Begin()
	assert.NoError(t, err)

	qtx := NewRepository(base).WithTx(tx)
	err = qtx.DeleteDraft(context.Background(), uuid.NewString(), uuid.NewString())
	assert.NoError(t, err)

	assert.NoError(t, tx.Rollback())
	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestRepository_WithoutTx_UsesPooledHandle(t *testing.T) {
	base, poolMock := newRepoTestDB(t)

	poolMock.ExpectBegin()
	poolMock.ExpectExec(`UPDATE "payslips" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	poolMock.ExpectCommit()

	repo := NewRepository(base)
	affected, err := repo.ClearFinalized(
		context.Background(),
		uuid.NewString(),
		[]string{uuid.NewString()},
	)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, affected)
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
