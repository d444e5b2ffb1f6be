// Package client is the storefront's consumer side of the QuickBite API:
// a typed HTTP client with a circuit breaker, a session that keeps the
// bearer token and cart in the shared storage collaborator, and checkout
// logic that turns a cart into an order submission.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"

	"quickbite/models"
)

// ErrUnauthorized is returned when the backend rejects the bearer token.
var ErrUnauthorized = errors.New("client: unauthorized")

// APIError carries a non-2xx backend response.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

// Client talks to the QuickBite backend. Calls go through a circuit
// breaker so a dead backend fails fast instead of piling up timeouts.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	session *Session
}

// New creates a client for the backend at baseURL. The session supplies
// the bearer token and receives it on login.
func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "quickbite-api",
			Timeout: 15 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
		session: session,
	}
}

// Session returns the session this client authenticates with.
func (c *Client) Session() *Session {
	return c.session
}

// Health checks the backend liveness probe.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// Login exchanges credentials for a bearer token and stores it in the
// session on success.
func (c *Client) Login(ctx context.Context, username, password string) (models.LoginResponse, error) {
	var resp models.LoginResponse
	req := models.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/login", req, &resp); err != nil {
		return models.LoginResponse{}, err
	}
	if err := c.session.SetToken(resp.AccessToken); err != nil {
		return models.LoginResponse{}, err
	}
	return resp, nil
}

// Menu fetches the full menu.
func (c *Client) Menu(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := c.do(ctx, http.MethodGet, "/menu", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MenuByCategory fetches the menu filtered to one category.
func (c *Client) MenuByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	path := "/menu?category=" + url.QueryEscape(category)
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateOrder submits an order and returns the created record.
func (c *Client) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	var created models.Order
	if err := c.do(ctx, http.MethodPost, "/order", order, &created); err != nil {
		return models.Order{}, err
	}
	return created, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, method, path, body, out)
	})
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&detail)
		return &APIError{StatusCode: resp.StatusCode, Detail: detail.Detail}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decode response")
		}
	}
	return nil
}
