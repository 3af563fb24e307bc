// Package account is a Go client for the /api/account endpoints.
package account

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// User is the account payload sent on registration and returned by Details.
type User struct {
	ID                 string   `json:"id,omitempty"`
	UserName           string   `json:"userName"`
	NormalizedUserName string   `json:"normalizedUserName,omitempty"`
	Email              string   `json:"email"`
	NormalizedEmail    string   `json:"normalizedEmail,omitempty"`
	Password           string   `json:"password,omitempty"`
	FirstName          string   `json:"firstName,omitempty"`
	LastName           string   `json:"lastName,omitempty"`
	AddressLine1       string   `json:"addressLine1,omitempty"`
	City               string   `json:"city,omitempty"`
	State              string   `json:"state,omitempty"`
	PhoneNumber        string   `json:"phoneNumber,omitempty"`
	Roles              []string `json:"roles,omitempty"`
}

// Credentials identify an account by username or email.
type Credentials struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("account api: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client issues one request per call. It does not retry, refresh tokens or
// cache responses. ID and Token are set by the caller, typically from the
// results of Register and Login.
type Client struct {
	ID    string
	Token string

	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient returns a client for the API rooted at baseURL. The default
// http.Client has no timeout; bound calls with ctx or pass WithHTTPClient.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register submits a new account and returns the raw response text, the new
// user id.
func (c *Client) Register(ctx context.Context, user User) (string, error) {
	return c.postText(ctx, "/api/account/register", user)
}

// Login submits credentials and returns the raw response text, the bearer
// token.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	return c.postText(ctx, "/api/account/login", creds)
}

// Details fetches the profile of the account identified by c.Token.
func (c *Client) Details(ctx context.Context) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/account/details", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "bearer "+c.Token)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("decode account details: %w", err)
	}
	return &u, nil
}

func (c *Client) postText(ctx context.Context, path string, payload any) (string, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
