package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/saferide/saferide/internal/client/api"
	"github.com/saferide/saferide/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// stubStore is an in-memory tokenstore.Store.
type stubStore struct {
	mu      sync.Mutex
	token   string
	present bool
	expired bool

	clearCalls int
}

func (s *stubStore) Save(_ context.Context, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.present = true
	s.expired = false
}

func (s *stubStore) Get(_ context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.present
}

func (s *stubStore) Clear(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.present = false
	s.expired = false
	s.clearCalls++
}

func (s *stubStore) IsExpired(_ context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.present || s.expired
}

// stubBackend is a scriptable session.Backend.
type stubBackend struct {
	mu    sync.Mutex
	token string

	loginResp  *api.LoginResponse
	loginErr   error
	loginCalls atomic.Int32
	loginGate  chan struct{} // when non-nil, Login blocks until closed

	meUser  *api.User
	meErr   error
	meCalls atomic.Int32

	logoutErr   error
	logoutCalls atomic.Int32
}

func (b *stubBackend) SetToken(token string) {
	b.mu.Lock()
	b.token = token
	b.mu.Unlock()
}

func (b *stubBackend) ClearToken() { b.SetToken("") }

func (b *stubBackend) currentToken() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.token
}

func (b *stubBackend) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	b.loginCalls.Add(1)
	if b.loginGate != nil {
		<-b.loginGate
	}
	if b.loginErr != nil {
		return nil, b.loginErr
	}
	return b.loginResp, nil
}

func (b *stubBackend) Me(ctx context.Context) (*api.User, error) {
	b.meCalls.Add(1)
	if b.meErr != nil {
		return nil, b.meErr
	}
	return b.meUser, nil
}

func (b *stubBackend) Logout(ctx context.Context) error {
	b.logoutCalls.Add(1)
	return b.logoutErr
}

func newManager(backend *stubBackend, store *stubStore) *Manager {
	return NewManager(backend, store, testLogger())
}

func requireConsistent(t *testing.T, m *Manager) {
	t.Helper()
	require.Equal(t, m.User() != nil && m.Token() != "", m.IsAuthenticated())
}

func TestInitialize_FreshStorage(t *testing.T) {
	backend := &stubBackend{}
	store := &stubStore{}
	m := newManager(backend, store)

	m.Initialize(context.Background())

	require.Equal(t, StatusUnauthenticated, m.Status())
	require.False(t, m.IsAuthenticated())
	require.Empty(t, m.ErrorMessage())
	require.Zero(t, backend.meCalls.Load(), "no backend call expected")
	requireConsistent(t, m)
}

func TestInitialize_ExpiredToken(t *testing.T) {
	backend := &stubBackend{}
	store := &stubStore{token: "tok2", present: true, expired: true}
	m := newManager(backend, store)

	m.Initialize(context.Background())

	require.Equal(t, StatusUnauthenticated, m.Status())
	require.Zero(t, backend.meCalls.Load(), "expired token must not reach the network")

	_, ok := store.Get(context.Background())
	require.False(t, ok, "storage must be cleared")
	requireConsistent(t, m)
}

func TestInitialize_ValidTokenConfirmed(t *testing.T) {
	backend := &stubBackend{meUser: &api.User{ID: "1", Email: "admin@saferide.com"}}
	store := &stubStore{token: "tok1", present: true}
	m := newManager(backend, store)

	m.Initialize(context.Background())

	require.Equal(t, StatusAuthenticated, m.Status())
	require.True(t, m.IsAuthenticated())
	require.Equal(t, "tok1", m.Token())
	require.Equal(t, "tok1", backend.currentToken())
	require.False(t, m.IsLoading())
	requireConsistent(t, m)
}

func TestInitialize_BackendRejectsPersistedToken(t *testing.T) {
	backend := &stubBackend{meErr: &api.Error{StatusCode: 401, Message: "Invalid credentials"}}
	store := &stubStore{token: "tok1", present: true}
	m := newManager(backend, store)

	m.Initialize(context.Background())

	require.Equal(t, StatusUnauthenticated, m.Status())
	require.False(t, m.IsAuthenticated())
	require.Empty(t, m.ErrorMessage(), "silent expiry must not surface an error")
	require.Empty(t, backend.currentToken())

	_, ok := store.Get(context.Background())
	require.False(t, ok)
	requireConsistent(t, m)
}

func TestLogin_Success(t *testing.T) {
	backend := &stubBackend{loginResp: &api.LoginResponse{
		AccessToken: "tok1",
		User:        &api.User{ID: "1", Email: "admin@saferide.com"},
	}}
	store := &stubStore{}
	m := newManager(backend, store)

	m.Login(context.Background(), "admin@saferide.com", "admin123")

	require.True(t, m.IsAuthenticated())
	require.Equal(t, "tok1", m.Token())
	require.Equal(t, "tok1", backend.currentToken())
	require.Empty(t, m.ErrorMessage())

	saved, ok := store.Get(context.Background())
	require.True(t, ok)
	require.Equal(t, "tok1", saved)
	requireConsistent(t, m)
}

func TestLogin_CredentialRejection(t *testing.T) {
	backend := &stubBackend{loginErr: &api.Error{StatusCode: 401, Message: "Invalid credentials"}}
	m := newManager(backend, &stubStore{})

	m.Login(context.Background(), "x", "wrongpass")

	require.False(t, m.IsAuthenticated())
	require.Equal(t, StatusUnauthenticated, m.Status())
	require.Equal(t, "Invalid credentials", m.ErrorMessage())
	requireConsistent(t, m)
}

func TestLogin_TransportFailure(t *testing.T) {
	backend := &stubBackend{loginErr: errors.New("connection refused")}
	m := newManager(backend, &stubStore{})

	m.Login(context.Background(), "a@b.c", "pw")

	require.False(t, m.IsAuthenticated())
	require.Equal(t, genericLoginError, m.ErrorMessage())
	requireConsistent(t, m)
}

func TestLogin_SingleFlight(t *testing.T) {
	gate := make(chan struct{})
	backend := &stubBackend{
		loginGate: gate,
		loginResp: &api.LoginResponse{AccessToken: "tok1", User: &api.User{ID: "1"}},
	}
	m := newManager(backend, &stubStore{})

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Login(context.Background(), "a@b.c", "pw")
		}()
	}

	// Wait until the first call is on the wire, then release it.
	require.Eventually(t, func() bool { return m.IsLoading() },
		time.Second, time.Millisecond)
	close(gate)
	wg.Wait()

	require.Equal(t, int32(1), backend.loginCalls.Load(),
		"second login must adopt the first call's outcome")
	require.True(t, m.IsAuthenticated())
	require.False(t, m.IsLoading())
}

func TestLogin_LoadingFlagDuringCall(t *testing.T) {
	gate := make(chan struct{})
	backend := &stubBackend{
		loginGate: gate,
		loginResp: &api.LoginResponse{AccessToken: "tok1", User: &api.User{ID: "1"}},
	}
	m := newManager(backend, &stubStore{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Login(context.Background(), "a@b.c", "pw")
	}()

	require.Eventually(t, func() bool { return m.IsLoading() },
		time.Second, time.Millisecond)
	close(gate)
	<-done

	require.False(t, m.IsLoading())
}

func TestLogout_Idempotent(t *testing.T) {
	backend := &stubBackend{loginResp: &api.LoginResponse{
		AccessToken: "tok1", User: &api.User{ID: "1"},
	}}
	store := &stubStore{}
	m := newManager(backend, store)
	ctx := context.Background()

	m.Login(ctx, "a@b.c", "pw")
	require.True(t, m.IsAuthenticated())

	m.Logout(ctx)
	require.False(t, m.IsAuthenticated())
	require.Nil(t, m.User())
	require.Empty(t, m.Token())

	m.Logout(ctx)
	require.False(t, m.IsAuthenticated())
	require.Nil(t, m.User())
	require.Empty(t, m.Token())
	require.Equal(t, int32(1), backend.logoutCalls.Load(),
		"second logout has no token, nothing to tell the backend")
	requireConsistent(t, m)
}

func TestLogout_BackendFailureIgnored(t *testing.T) {
	backend := &stubBackend{
		loginResp: &api.LoginResponse{AccessToken: "tok1", User: &api.User{ID: "1"}},
		logoutErr: errors.New("backend down"),
	}
	store := &stubStore{}
	m := newManager(backend, store)
	ctx := context.Background()

	m.Login(ctx, "a@b.c", "pw")
	m.Logout(ctx)

	require.False(t, m.IsAuthenticated())
	require.Empty(t, backend.currentToken())
	_, ok := store.Get(ctx)
	require.False(t, ok)
}

func TestRefreshUser_ReplacesProfileKeepsToken(t *testing.T) {
	backend := &stubBackend{
		loginResp: &api.LoginResponse{AccessToken: "tok1", User: &api.User{ID: "1", FirstName: "Old"}},
		meUser:    &api.User{ID: "1", FirstName: "New"},
	}
	m := newManager(backend, &stubStore{})
	ctx := context.Background()

	m.Login(ctx, "a@b.c", "pw")
	m.RefreshUser(ctx)

	require.True(t, m.IsAuthenticated())
	require.Equal(t, "tok1", m.Token())
	require.Equal(t, "New", m.User().FirstName)
}

func TestRefreshUser_FailureClearsEverything(t *testing.T) {
	backend := &stubBackend{
		loginResp: &api.LoginResponse{AccessToken: "tok1", User: &api.User{ID: "1"}},
		meErr:     &api.Error{StatusCode: 401, Message: "Invalid credentials"},
	}
	store := &stubStore{}
	m := newManager(backend, store)
	ctx := context.Background()

	m.Login(ctx, "a@b.c", "pw")
	m.RefreshUser(ctx)

	require.False(t, m.IsAuthenticated())
	require.Nil(t, m.User())
	require.Empty(t, m.Token())
	require.Empty(t, backend.currentToken())
	_, ok := store.Get(ctx)
	require.False(t, ok)
	requireConsistent(t, m)
}

func TestSetError_TouchesOnlyErrorField(t *testing.T) {
	backend := &stubBackend{loginResp: &api.LoginResponse{
		AccessToken: "tok1", User: &api.User{ID: "1"},
	}}
	m := newManager(backend, &stubStore{})
	ctx := context.Background()

	m.Login(ctx, "a@b.c", "pw")

	m.SetError("boom")
	require.Equal(t, "boom", m.ErrorMessage())
	require.True(t, m.IsAuthenticated())
	require.Equal(t, "tok1", m.Token())
	require.False(t, m.IsLoading())

	m.ClearError()
	require.Empty(t, m.ErrorMessage())
	require.True(t, m.IsAuthenticated())
}

// TestLogin_PasswordFieldStripped drives the manager through the real API
// client against a stub backend whose user payload carries a password field,
// and verifies the field never reaches session state.
func TestLogin_PasswordFieldStripped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"access_token": "tok1",
			"user": {"id": "1", "email": "admin@saferide.com", "password": "x"}
		}`))
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, 5*time.Second)
	m := NewManager(client, &stubStore{}, testLogger())

	m.Login(context.Background(), "admin@saferide.com", "admin123")

	require.True(t, m.IsAuthenticated())
	require.Equal(t, "tok1", m.Token())
	require.Equal(t, "admin@saferide.com", m.User().Email)

	encoded, err := json.Marshal(m.User())
	require.NoError(t, err)
	require.NotContains(t, string(encoded), "password")
}
