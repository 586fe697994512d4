package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

var userColumns = []string{"id", "name", "email", "password_hash", "external_id", "created_at", "updated_at", "deleted_at"}

func TestUsers_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id.String(), "Alice", "alice@example.com", "$2a$10$hash", nil, now, now, nil))

	user, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.True(t, user.HasPassword())
	assert.False(t, user.IsLinked())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsers_FindByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsers_FindByID_StoreFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestUsers_FindByExternalID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE external_id = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id.String(), "Bob", "bob@example.com", nil, "google-sub-1", now, now, nil))

	user, err := repo.FindByExternalID(context.Background(), "google-sub-1")
	require.NoError(t, err)
	assert.False(t, user.HasPassword())
	require.True(t, user.IsLinked())
	assert.Equal(t, "google-sub-1", *user.ExternalID)
}

func TestUsers_SetPasswordHash(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "password_hash"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SetPasswordHash(context.Background(), uuid.New(), "$2a$10$new"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsers_SetPasswordHash_UnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "password_hash"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.SetPasswordHash(context.Background(), uuid.New(), "$2a$10$new")
	assert.ErrorIs(t, err, ErrNotFound)
}
