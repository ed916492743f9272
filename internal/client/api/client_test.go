package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRequest_HeadersWithoutToken(t *testing.T) {
	var gotContentType, gotAuth string
	var authPresent bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		_, authPresent = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)

	var out map[string]any
	require.NoError(t, c.request(context.Background(), http.MethodGet, "/api/auth/me", nil, &out))

	require.Equal(t, "application/json", gotContentType)
	require.False(t, authPresent, "no token means no Authorization header at all")
	require.Empty(t, gotAuth)
}

func TestRequest_BearerHeaderWithToken(t *testing.T) {
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	c.SetToken("tok1")

	var out map[string]any
	require.NoError(t, c.request(context.Background(), http.MethodGet, "/api/auth/me", nil, &out))
	require.Equal(t, "Bearer tok1", gotAuth)

	c.ClearToken()
	require.NoError(t, c.request(context.Background(), http.MethodGet, "/api/auth/me", nil, &out))
	require.Empty(t, gotAuth)
}

func TestRequest_ErrorWithDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Invalid credentials"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)

	_, err := c.Login(context.Background(), "x", "wrongpass")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Invalid credentials", apiErr.Message)
	require.Equal(t, "Invalid credentials", err.Error())
}

func TestRequest_ErrorWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)

	_, err := c.Me(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "HTTP error, status 500", apiErr.Message)
}

func TestRequest_TransportFailureIsNotAPIError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second)

	_, err := c.Me(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.False(t, errors.As(err, &apiErr))
}

func TestLogin_DecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"access_token": "tok1",
			"token_type": "bearer",
			"expires_in": 86400,
			"user": {"id": "1", "email": "admin@saferide.com", "role": "admin"}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)

	resp, err := c.Login(context.Background(), "admin@saferide.com", "admin123")
	require.NoError(t, err)
	require.Equal(t, "tok1", resp.AccessToken)
	require.Equal(t, 86400, resp.ExpiresIn)
	require.Equal(t, "admin@saferide.com", resp.User.Email)
	require.Equal(t, "admin", resp.User.Role)
}
