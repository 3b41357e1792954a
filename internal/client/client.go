// Package client is the Go consumer of the Budget Formula API: a typed
// HTTP client plus an in-memory budget cache that mirrors one month's
// entries and keeps totals in step with confirmed mutations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kartik0x00/Budget-Formula/internal/budget"
	"github.com/kartik0x00/Budget-Formula/internal/models"
	"github.com/kartik0x00/Budget-Formula/internal/util"
)

// User mirrors the user object in auth responses.
type User struct {
	Name string `json:"name"`
}

// Client talks to one Budget Formula server. It keeps the bearer token
// in memory; on any 401 the token is discarded so the caller is forced
// back through Login.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs a previously saved token (session restoration).
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current bearer token, empty when logged out.
func (c *Client) Token() string { return c.token }

// ClearToken drops the session.
func (c *Client) ClearToken() { c.token = "" }

// envelope is the server's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do sends one request and decodes the envelope. Failure envelopes come
// back as *util.AppError carrying the server's status and message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(buf)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// stale or wrong token, force re-authentication
		c.ClearToken()
	}
	if !env.Success {
		return nil, &util.AppError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	return env.Data, nil
}

// ---------- auth ----------

type loginData struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type userData struct {
	User User `json:"user"`
}

// Login authenticates and stores the issued token on the client.
func (c *Client) Login(ctx context.Context, pin, userName string) (User, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, map[string]string{
		"pin":      pin,
		"userName": userName,
	})
	if err != nil {
		return User{}, err
	}
	var data loginData
	if err := json.Unmarshal(raw, &data); err != nil {
		return User{}, fmt.Errorf("decode login data: %w", err)
	}
	c.token = data.Token
	return data.User, nil
}

// VerifyToken reports whether a stored token is still accepted.
func (c *Client) VerifyToken(ctx context.Context, token string) bool {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/verify", nil, map[string]string{
		"token": token,
	})
	return err == nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (User, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil)
	if err != nil {
		return User{}, err
	}
	var data userData
	if err := json.Unmarshal(raw, &data); err != nil {
		return User{}, fmt.Errorf("decode user data: %w", err)
	}
	return data.User, nil
}

// ---------- budget ----------

func periodQuery(month, year int) url.Values {
	q := url.Values{}
	q.Set("month", strconv.Itoa(month))
	q.Set("year", strconv.Itoa(year))
	return q
}

// GetSummary fetches one month's entries and totals.
func (c *Client) GetSummary(ctx context.Context, month, year int) (*budget.Summary, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/budget/entries", periodQuery(month, year), nil)
	if err != nil {
		return nil, err
	}
	var summary budget.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	return &summary, nil
}

// GetEntry fetches a single entry by id.
func (c *Client) GetEntry(ctx context.Context, id string) (*models.BudgetEntry, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/budget/entries/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	var entry models.BudgetEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode entry: %w", err)
	}
	return &entry, nil
}

// CreateEntry persists a new entry and returns the canonical record.
func (c *Client) CreateEntry(ctx context.Context, in budget.EntryInput) (*models.BudgetEntry, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/budget/entries", nil, in)
	if err != nil {
		return nil, err
	}
	var entry models.BudgetEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode entry: %w", err)
	}
	return &entry, nil
}

// UpdateEntry applies a partial update and returns the canonical record.
func (c *Client) UpdateEntry(ctx context.Context, id string, in budget.EntryInput) (*models.BudgetEntry, error) {
	raw, err := c.do(ctx, http.MethodPut, "/api/budget/entries/"+id, nil, in)
	if err != nil {
		return nil, err
	}
	var entry models.BudgetEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode entry: %w", err)
	}
	return &entry, nil
}

// DeleteEntry removes an entry permanently.
func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/budget/entries/"+id, nil, nil)
	return err
}

// AvailableDates lists the months with entries, newest first.
func (c *Client) AvailableDates(ctx context.Context) ([]budget.Period, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/budget/available-dates", nil, nil)
	if err != nil {
		return nil, err
	}
	var periods []budget.Period
	if err := json.Unmarshal(raw, &periods); err != nil {
		return nil, fmt.Errorf("decode periods: %w", err)
	}
	return periods, nil
}
