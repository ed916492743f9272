package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/saferide/saferide/internal/common"
	"github.com/saferide/saferide/internal/server/models"
)

var userCols = []string{
	"id", "email", "hashed_password", "first_name", "last_name", "phone", "role",
	"company_id", "is_active", "is_verified", "created_at", "updated_at", "last_login",
}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func sampleRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userCols).AddRow(
		"u-1", "parent@saferide.com", "hash", "Pat", "Parent", "", models.RoleParent,
		nil, true, false, now, now, nil,
	)
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users (.+) RETURNING created_at, updated_at`).
		WithArgs("u-1", "parent@saferide.com", "hash", "Pat", "Parent", "",
			models.RoleParent, nil, true, false).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	user := &models.User{
		ID:             "u-1",
		Email:          "parent@saferide.com",
		HashedPassword: "hash",
		FirstName:      "Pat",
		LastName:       "Parent",
		Role:           models.RoleParent,
		IsActive:       true,
	}
	got, err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, now, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnRows(sampleRow())

	got, err := repo.GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	require.Equal(t, "parent@saferide.com", got.Email)
	require.Equal(t, models.RoleParent, got.Role)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByEmail_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("parent@saferide.com").
		WillReturnError(errors.New("db down"))

	_, err := repo.GetByEmail(context.Background(), "parent@saferide.com")
	require.Error(t, err)
	require.NotErrorIs(t, err, common.ErrorNotFound)
	require.Contains(t, err.Error(), "db error")
}

func TestList_ReturnsRows(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	rows := sqlmock.NewRows(userCols).
		AddRow("u-1", "a@saferide.com", "h", "A", "One", "", models.RoleParent, nil, true, false, now, now, nil).
		AddRow("u-2", "b@saferide.com", "h", "B", "Two", "", models.RoleDriver, nil, true, false, now, now, nil)

	mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY created_at DESC OFFSET \$1 LIMIT \$2`).
		WithArgs(0, 100).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "u-2", got[1].ID)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE users SET is_active = \$2, updated_at = now\(\) WHERE id = \$1`).
		WithArgs("missing", false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", false)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSetCompany_Assign(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	companyID := "c-1"
	mock.ExpectExec(`UPDATE users SET company_id = \$2, updated_at = now\(\) WHERE id = \$1`).
		WithArgs("u-1", companyID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetCompany(context.Background(), "u-1", &companyID))
}

func TestCount(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 7, n)
}
