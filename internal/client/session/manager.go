// Package session owns the client's belief about "is a user logged in". The
// Manager is the only component allowed to decide the application-wide
// authentication state: it reconciles the token store with the backend's view
// of the current user and exposes login/logout/refresh plus the derived
// IsAuthenticated flag. Everything else observes {user, token, loading,
// error} and never touches storage or the credential directly.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/saferide/saferide/internal/client/api"
	"github.com/saferide/saferide/internal/client/tokenstore"
	"github.com/saferide/saferide/internal/logging"
)

// Status is the session resolution state.
type Status string

const (
	StatusUnresolved      Status = "unresolved"
	StatusLoading         Status = "loading"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// genericLoginError is shown when a login fails without a backend-provided
// message, e.g. on a transport failure.
const genericLoginError = "Authentication failed"

// Backend is the API surface the Manager drives. *api.Client satisfies it;
// tests substitute a stub.
type Backend interface {
	SetToken(token string)
	ClearToken()
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	Me(ctx context.Context) (*api.User, error)
	Logout(ctx context.Context) error
}

// Manager holds the transient session state behind a mutex. All failures are
// terminal here: callers only ever observe the state, never an error value.
type Manager struct {
	backend Backend
	store   tokenstore.Store
	logger  logging.Logger

	mu      sync.Mutex
	status  Status
	user    *api.User
	token   string
	loading bool
	errMsg  string

	// loginFlight is non-nil while a login call is on the wire. A concurrent
	// Login waits on it and adopts the first call's outcome instead of
	// re-issuing the request.
	loginFlight chan struct{}
}

func NewManager(backend Backend, store tokenstore.Store, logger logging.Logger) *Manager {
	return &Manager{
		backend: backend,
		store:   store,
		logger:  logger,
		status:  StatusUnresolved,
	}
}

// Initialize resolves the persisted session at application start. An absent
// or expired token settles to Unauthenticated without any network call; a
// fresh token is verified against the backend, and a rejection is treated as
// silent expiry with no user-facing error.
func (m *Manager) Initialize(ctx context.Context) {
	token, ok := m.store.Get(ctx)
	if !ok || m.store.IsExpired(ctx) {
		m.store.Clear(ctx)
		m.backend.ClearToken()
		m.mu.Lock()
		m.status = StatusUnauthenticated
		m.mu.Unlock()
		return
	}

	m.backend.SetToken(token)
	m.mu.Lock()
	m.status = StatusLoading
	m.loading = true
	m.mu.Unlock()

	user, err := m.backend.Me(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false

	if err != nil {
		m.logger.Info(ctx, "persisted session rejected", "error", err.Error())
		m.store.Clear(ctx)
		m.backend.ClearToken()
		m.user = nil
		m.token = ""
		m.status = StatusUnauthenticated
		return
	}

	m.user = user
	m.token = token
	m.status = StatusAuthenticated
}

// Login authenticates with the backend. It never returns an error: all
// failures surface through the error field, as the backend's detail message
// when one was provided and a generic message otherwise. A Login issued while
// another is in flight waits for the first call and adopts its outcome.
func (m *Manager) Login(ctx context.Context, email, password string) {
	m.mu.Lock()
	if flight := m.loginFlight; flight != nil {
		m.mu.Unlock()
		select {
		case <-flight:
		case <-ctx.Done():
		}
		return
	}

	flight := make(chan struct{})
	m.loginFlight = flight
	m.loading = true
	m.errMsg = ""
	m.status = StatusLoading
	m.mu.Unlock()

	resp, err := m.backend.Login(ctx, email, password)

	m.mu.Lock()
	defer func() {
		m.loading = false
		m.loginFlight = nil
		m.mu.Unlock()
		close(flight)
	}()

	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			m.errMsg = apiErr.Message
		} else {
			m.logger.Error(ctx, "login transport failure", "error", err.Error())
			m.errMsg = genericLoginError
		}
		m.status = StatusUnauthenticated
		return
	}

	m.store.Save(ctx, resp.AccessToken)
	m.backend.SetToken(resp.AccessToken)
	m.user = resp.User
	m.token = resp.AccessToken
	m.status = StatusAuthenticated
}

// Logout clears the session locally no matter what. The backend call is
// best-effort: a failure is logged and otherwise ignored. Calling Logout on
// an already-logged-out session is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	hadToken := m.token != ""
	m.mu.Unlock()

	if hadToken {
		if err := m.backend.Logout(ctx); err != nil {
			m.logger.Warn(ctx, "backend logout failed, proceeding locally", "error", err.Error())
		}
	}

	m.store.Clear(ctx)
	m.backend.ClearToken()

	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.errMsg = ""
	m.status = StatusUnauthenticated
	m.mu.Unlock()
}

// RefreshUser re-fetches the current user's profile. On success the profile
// is replaced and the token kept; any failure tears the session down
// completely, storage included.
func (m *Manager) RefreshUser(ctx context.Context) {
	m.mu.Lock()
	if m.token == "" {
		m.mu.Unlock()
		return
	}
	m.loading = true
	m.mu.Unlock()

	user, err := m.backend.Me(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false

	if err != nil {
		m.logger.Info(ctx, "user refresh failed, clearing session", "error", err.Error())
		m.store.Clear(ctx)
		m.backend.ClearToken()
		m.user = nil
		m.token = ""
		m.status = StatusUnauthenticated
		return
	}

	m.user = user
}

// SetError sets the error field and nothing else.
func (m *Manager) SetError(msg string) {
	m.mu.Lock()
	m.errMsg = msg
	m.mu.Unlock()
}

// ClearError resets the error field and nothing else.
func (m *Manager) ClearError() {
	m.SetError("")
}

// IsAuthenticated is true exactly when both user and token are present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil && m.token != ""
}

func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// User returns the authenticated user's profile, or nil.
func (m *Manager) User() *api.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Manager) ErrorMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errMsg
}
