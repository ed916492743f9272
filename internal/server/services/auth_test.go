package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/saferide/saferide/internal/common"
	"github.com/saferide/saferide/internal/server/auth"
	"github.com/saferide/saferide/internal/server/config"
	"github.com/saferide/saferide/internal/server/models"
	"github.com/saferide/saferide/internal/server/repositories/repomanager"
)

var userCols = []string{
	"id", "email", "hashed_password", "first_name", "last_name", "phone", "role",
	"company_id", "is_active", "is_verified", "created_at", "updated_at", "last_login",
}

func newAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		SecretKey:                   "test-secret",
		AccessTokenValidityDuration: time.Hour,
	}
	return NewAuthService(db, repomanager.NewPostgresRepositoryManager(), cfg), mock
}

func userRow(t *testing.T, password string, isActive bool) *sqlmock.Rows {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	now := time.Now()
	return sqlmock.NewRows(userCols).AddRow(
		"u-1", "admin@saferide.com", hash, "Admin", "User", "", models.RoleAdmin,
		nil, isActive, true, now, now, nil,
	)
}

func TestLogin_Success(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("admin@saferide.com").
		WillReturnRows(userRow(t, "admin123", true))
	mock.ExpectExec(`UPDATE users SET last_login = now\(\) WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := svc.Login(context.Background(), "admin@saferide.com", "admin123")
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.Equal(t, 3600, result.ExpiresIn)
	require.Equal(t, "u-1", result.User.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("admin@saferide.com").
		WillReturnRows(userRow(t, "admin123", true))

	_, err := svc.Login(context.Background(), "admin@saferide.com", "wrongpass")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_UnknownAccount(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("nobody@saferide.com").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Login(context.Background(), "nobody@saferide.com", "admin123")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("admin@saferide.com").
		WillReturnRows(userRow(t, "admin123", false))

	_, err := svc.Login(context.Background(), "admin@saferide.com", "admin123")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestVerifyToken_Success(t *testing.T) {
	svc, mock := newAuthService(t)

	token, err := auth.GenerateToken("u-1", []byte("test-secret"), time.Hour)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnRows(userRow(t, "admin123", true))

	user, err := svc.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "u-1", user.ID)
}

func TestVerifyToken_ExpiredToken(t *testing.T) {
	svc, _ := newAuthService(t)

	token, err := auth.GenerateToken("u-1", []byte("test-secret"), -time.Minute)
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), token)
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestVerifyToken_InactiveUser(t *testing.T) {
	svc, mock := newAuthService(t)

	token, err := auth.GenerateToken("u-1", []byte("test-secret"), time.Hour)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnRows(userRow(t, "admin123", false))

	_, err = svc.VerifyToken(context.Background(), token)
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}
