// Package api implements the HTTP client for the two consumed backends:
// the app backend (user accounts) and the scraper backend (notices and
// push-topic subscriptions).
//
// No retry is attempted; failures are surfaced once to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"noticeease/internal/client/models"
	"noticeease/internal/common"
)

// fetchLimit is the page size for incremental notice fetches.
const fetchLimit = 100

// Client talks to the remote HTTP API.
type Client struct {
	backendURL string
	scraperURL string
	httpc      *http.Client
}

// NewClient returns a Client for the given backend (user accounts) and
// scraper (notices/messaging) base URLs.
func NewClient(backendURL, scraperURL string) *Client {
	return &Client{
		backendURL: backendURL,
		scraperURL: scraperURL,
		httpc:      &http.Client{},
	}
}

// SetTimeout applies a per-request timeout to all outbound calls.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpc.Timeout = d
}

// RegisterForm is the payload for creating a new student account.
type RegisterForm struct {
	Username    string `json:"username"`
	RollNumber  string `json:"rollNumber"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Password    string `json:"password"`
}

// LoginForm is the payload for authenticating a student.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// apiError is the error envelope the backends return on non-2xx responses.
type apiError struct {
	Error string `json:"error"`
}

// Register creates a new student account.
func (c *Client) Register(ctx context.Context, form RegisterForm) error {
	return c.postJSON(ctx, c.backendURL+"/api/users/register", form, nil)
}

// Login exchanges credentials for an auth token.
func (c *Client) Login(ctx context.Context, form LoginForm) (string, error) {
	var out struct {
		AuthToken string `json:"authToken"`
	}
	if err := c.postJSON(ctx, c.backendURL+"/api/users/login", form, &out); err != nil {
		return "", err
	}
	return out.AuthToken, nil
}

// GetUser fetches the authenticated student's profile.
func (c *Client) GetUser(ctx context.Context, authToken string) (*models.StudentInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.backendURL+"/api/users/getUser", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+authToken)

	var out struct {
		User models.StudentInfo `json:"user"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// VerifyEmail validates an email-verification token.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.backendURL+"/api/users/validate/"+url.PathEscape(token), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// FetchNotices requests the next incremental page of notices, skipping the
// given number of already-cached entries.
func (c *Client) FetchNotices(ctx context.Context, skip int) ([]models.Notice, error) {
	u := c.scraperURL + "/api/notices/getErpNotices?skip=" + strconv.Itoa(skip) +
		"&limit=" + strconv.Itoa(fetchLimit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Notices []models.Notice `json:"notices"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Notices, nil
}

// Subscribe registers a push token against the topic for rollNumber.
func (c *Client) Subscribe(ctx context.Context, token, rollNumber string) error {
	body := map[string]string{"token": token, "rollNumber": rollNumber}
	if err := c.postJSON(ctx, c.scraperURL+"/api/messaging/subscribe", body, nil); err != nil {
		return fmt.Errorf("%w: %w", common.ErrSubscription, err)
	}
	return nil
}

// Unsubscribe removes a push token from its topic. Logout callers must
// treat a failure here as non-fatal.
func (c *Client) Unsubscribe(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	if err := c.postJSON(ctx, c.scraperURL+"/api/messaging/unsubscribe", body, nil); err != nil {
		return fmt.Errorf("%w: %w", common.ErrSubscription, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, url string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do executes the request, maps transport failures and non-2xx statuses to
// common.ErrNetwork, and decodes a JSON response into out when non-nil.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%w: %s", common.ErrNetwork, apiErr.Error)
		}
		return fmt.Errorf("%w: unexpected status %s", common.ErrNetwork, resp.Status)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %w", common.ErrNetwork, err)
	}
	return nil
}
