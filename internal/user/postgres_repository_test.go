package user

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cduffaut/microblog/internal/models"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "username", "email", "password", "profile_image", "created_at", "updated_at"}

func TestPostgresRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewPostgresRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (username, email, password)")).
		WithArgs("alice", "a@x.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

	u := &models.User{Username: "alice", Email: "a@x.com", Password: "hash"}
	require.NoError(t, r.Create(u))
	require.Equal(t, 1, u.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewPostgresRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(userColumns).
		AddRow(1, "alice", "a@x.com", "hash", nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1")).
		WithArgs("alice").
		WillReturnRows(rows)

	u, err := r.GetByUsername("alice")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", u.Email)
	require.Nil(t, u.ProfileImage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs("inconnu@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err = r.GetByEmail("inconnu@x.com")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpdateAccountInfo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewPostgresRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("SET username = $1, email = $2")).
		WithArgs("alice2", "alice2@x.com", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.UpdateAccountInfo(1, "alice2", "alice2@x.com"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_CheckEmailExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id != $2)")).
		WithArgs("a@x.com", 2).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := r.CheckEmailExists("a@x.com", 2)
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}
