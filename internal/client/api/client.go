// Package api implements the REST client for the SafeRide backend. The
// Client is the single point of truth for the current outgoing credential:
// it holds the bearer token in memory and attaches it to every request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken replaces the in-memory token used for subsequent requests.
// Requests already in flight are unaffected.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the in-memory token; subsequent requests omit the
// Authorization header entirely.
func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// request issues an HTTP call and decodes the JSON response into out (when
// out is non-nil). Non-2xx statuses yield an *Error carrying the backend's
// detail message when the body had one.
func (c *Client) request(ctx context.Context, method, path string, body any, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("request encoding error: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return newError(resp.StatusCode, envelope.Detail)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("response decoding error: %w", err)
	}
	return nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var resp LoginResponse
	if err := c.request(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.request(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.request(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	if err := c.request(ctx, http.MethodGet, "/api/users/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) ListCompanies(ctx context.Context) ([]*Company, error) {
	var companies []*Company
	if err := c.request(ctx, http.MethodGet, "/api/companies/", nil, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (c *Client) ListChildren(ctx context.Context) ([]*Child, error) {
	var children []*Child
	if err := c.request(ctx, http.MethodGet, "/api/children/", nil, &children); err != nil {
		return nil, err
	}
	return children, nil
}

func (c *Client) SearchChildren(ctx context.Context, term string) ([]*Child, error) {
	var children []*Child
	path := "/api/children/search?q=" + url.QueryEscape(term)
	if err := c.request(ctx, http.MethodGet, path, nil, &children); err != nil {
		return nil, err
	}
	return children, nil
}

func (c *Client) ListRelationships(ctx context.Context) ([]*Relationship, error) {
	var rels []*Relationship
	if err := c.request(ctx, http.MethodGet, "/api/relationships/", nil, &rels); err != nil {
		return nil, err
	}
	return rels, nil
}

func (c *Client) RidesByUser(ctx context.Context, userID string) ([]*Ride, error) {
	var rides []*Ride
	path := "/api/rides/user/" + url.PathEscape(userID)
	if err := c.request(ctx, http.MethodGet, path, nil, &rides); err != nil {
		return nil, err
	}
	return rides, nil
}

func (c *Client) OptimizeRoute(ctx context.Context, start Waypoint, stops []Waypoint) (*RoutePlan, error) {
	body := map[string]any{"start": start, "stops": stops}

	var plan RoutePlan
	if err := c.request(ctx, http.MethodPost, "/api/routes/optimize", body, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}
