package httpapi

import (
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/saferide/saferide/internal/logging"
	"github.com/saferide/saferide/internal/server/auth"
	"github.com/saferide/saferide/internal/server/config"
	"github.com/saferide/saferide/internal/server/models"
	"github.com/saferide/saferide/internal/server/repositories/repomanager"
	"github.com/saferide/saferide/internal/server/services"
)

var userCols = []string{
	"id", "email", "hashed_password", "first_name", "last_name", "phone", "role",
	"company_id", "is_active", "is_verified", "created_at", "updated_at", "last_login",
}

func testConfig() *config.Config {
	return &config.Config{
		EndpointAddrHTTP:            ":0",
		SecretKey:                   "test-secret",
		AccessTokenValidityDuration: time.Hour,
		LoginRatePerMinute:          60,
		LoginBurst:                  10,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	manager := repomanager.NewPostgresRepositoryManager()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	srv := NewServer(cfg, logger, Services{
		Auth:          services.NewAuthService(db, manager, cfg),
		Users:         services.NewUserService(db, manager),
		Companies:     services.NewCompanyService(db, manager),
		Children:      services.NewChildService(db, manager),
		Relationships: services.NewRelationshipService(db, manager),
		Rides:         services.NewRideService(db, manager),
	})
	t.Cleanup(func() { srv.loginLimiter.Stop() })
	return srv, mock
}

func adminRow(t *testing.T) *sqlmock.Rows {
	t.Helper()
	hash, err := auth.HashPassword("admin123")
	require.NoError(t, err)

	now := time.Now()
	return sqlmock.NewRows(userCols).AddRow(
		"u-1", "admin@saferide.com", hash, "Admin", "User", "", models.RoleAdmin,
		nil, true, true, now, now, nil,
	)
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken("u-1", []byte("test-secret"), time.Hour)
	require.NoError(t, err)
	return token
}

func doRequest(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestLogin_ReturnsTokenAndUserWithoutPassword(t *testing.T) {
	srv, mock := newTestServer(t, testConfig())

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("admin@saferide.com").
		WillReturnRows(adminRow(t))
	mock.ExpectExec(`UPDATE users SET last_login = now\(\) WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email": "admin@saferide.com", "password": "admin123"}`))
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "bearer", resp.TokenType)
	require.Equal(t, "admin@saferide.com", resp.User.Email)
	require.NotContains(t, rec.Body.String(), "password")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv, mock := newTestServer(t, testConfig())

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("x").
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email": "x", "password": "wrongpass"}`))
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"detail": "Invalid credentials"}`, rec.Body.String())
}

func TestLogin_RateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.LoginRatePerMinute = 1
	cfg.LoginBurst = 1
	srv, mock := newTestServer(t, cfg)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WillReturnError(sql.ErrNoRows)

	body := `{"email": "x", "password": "y"}`

	rec := doRequest(srv, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(srv, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body)))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Contains(t, rec.Body.String(), "detail")
}

func TestMe_WithBearerToken(t *testing.T) {
	srv, mock := newTestServer(t, testConfig())

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnRows(adminRow(t))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var user UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Equal(t, "u-1", user.ID)
	require.Equal(t, "admin@saferide.com", user.Email)
}

func TestMe_WithoutToken(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"detail": "Not authenticated"}`, rec.Body.String())
}

func TestMe_GarbageToken(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_ReturnsMessage(t *testing.T) {
	srv, mock := newTestServer(t, testConfig())

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnRows(adminRow(t))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message": "Logged out successfully"}`, rec.Body.String())
}

func TestCreateUser_RequiresAdmin(t *testing.T) {
	srv, mock := newTestServer(t, testConfig())

	hash, err := auth.HashPassword("parent123")
	require.NoError(t, err)
	now := time.Now()
	parentRow := sqlmock.NewRows(userCols).AddRow(
		"u-2", "parent@saferide.com", hash, "Pat", "Parent", "", models.RoleParent,
		nil, true, true, now, now, nil,
	)

	token, err := auth.GenerateToken("u-2", []byte("test-secret"), time.Hour)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs("u-2").
		WillReturnRows(parentRow)

	req := httptest.NewRequest(http.MethodPost, "/api/users/",
		strings.NewReader(`{"email": "new@saferide.com", "password": "pw", "first_name": "N", "last_name": "U"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"detail": "Admin access required"}`, rec.Body.String())
}

func TestOptimizeRoute_Endpoint(t *testing.T) {
	srv, mock := newTestServer(t, testConfig())

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnRows(adminRow(t))

	body := `{
		"start": {"lat": 0, "lng": 0, "label": "depot"},
		"stops": [
			{"lat": 0, "lng": 2, "label": "far"},
			{"lat": 0, "lng": 1, "label": "near"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/routes/optimize", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp OptimizeRouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Stops, 2)
	require.Equal(t, "near", resp.Stops[0].Label)
	require.Equal(t, "far", resp.Stops[1].Label)
	require.Greater(t, resp.TotalDistanceKm, 0.0)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
