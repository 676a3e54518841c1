package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"partner_cabinet/internal/logger"
)

// ErrService marks any failure of the external stats service: unreachable,
// non-2xx status, or an envelope with the error flag set. Callers degrade
// gracefully on it instead of aborting.
var ErrService = errors.New("stats service error")

// UserStats is the volatile per-user snapshot owned by the stats service.
// The service is the ledger of record for these numbers; the locally stored
// aggregates on the user row are an independent approximation.
type UserStats struct {
	PersonalVolume         float64 `json:"personal_volume"`
	GroupVolume            float64 `json:"group_volume"`
	Earnings               float64 `json:"earnings"`
	AvailableForWithdrawal float64 `json:"available_for_withdrawal"`
	PartnerLevel           string  `json:"partner_level"`
	TotalReferrals         int     `json:"total_referrals"`
	ActiveReferrals        int     `json:"active_referrals"`
}

// StructureMember is one immediate team member as reported by the
// structure endpoint.
type StructureMember struct {
	UserID         string  `json:"user_id"`
	PersonalVolume float64 `json:"personal_volume"`
	TeamCount      int     `json:"team_count"`
}

// Structure is the node-scoped structure read: a user's immediate team.
type Structure struct {
	Team []StructureMember `json:"team"`
}

// envelope is the JSON wrapper every stats service response uses.
type envelope struct {
	Error    bool            `json:"error"`
	ErrorMsg string          `json:"error_msg"`
	Data     json.RawMessage `json:"data"`
}

// Client talks to the external stats service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	getRetries int
	backoff    time.Duration
}

// NewClient creates a stats service client. GET requests are retried on
// transport errors and 5xx responses with a linearly growing delay; writes
// are never retried.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		getRetries: 3,
		backoff:    time.Second,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Status returns the current volatile stats for a user.
func (c *Client) Status(ctx context.Context, userID string) (*UserStats, error) {
	url := fmt.Sprintf("%s/user/users/%s/status", c.baseURL, userID)

	var stats UserStats
	if err := c.get(ctx, url, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// StructureOf returns the immediate team of a user with each member's
// instantaneous personal volume.
func (c *Client) StructureOf(ctx context.Context, userID string) (*Structure, error) {
	url := fmt.Sprintf("%s/user/users/%s/structure", c.baseURL, userID)

	var s Structure
	if err := c.get(ctx, url, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateUser mirrors a newly registered user to the stats service.
// referrerID is empty for root users.
func (c *Client) CreateUser(ctx context.Context, userID, referrerID string) error {
	url := c.baseURL + "/user/users/"

	payload := map[string]string{
		"user_id":     userID,
		"referrer_id": referrerID,
	}
	logger.Info("stats service: create user", "user_id", userID, "referrer_id", referrerID)
	return c.post(ctx, url, payload, nil)
}

// Adjust applies a balance delta for a user on the stats service.
func (c *Client) Adjust(ctx context.Context, userID string, delta float64) error {
	url := fmt.Sprintf("%s/user/users/%s/adjust", c.baseURL, userID)

	payload := map[string]float64{"delta": delta}
	return c.post(ctx, url, payload, nil)
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	var lastErr error
	for attempt := 1; attempt <= c.getRetries; attempt++ {
		err := c.do(ctx, http.MethodGet, url, nil, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable(err) || attempt == c.getRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.backoff * time.Duration(attempt)):
		}
	}
	return lastErr
}

func (c *Client) post(ctx context.Context, url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, url, body, out)
}

// statusError carries the HTTP status for retry decisions.
type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string { return e.msg }
func (e *statusError) Unwrap() error { return ErrService }

// transportError marks a request that never produced a response.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return "stats service unreachable: " + e.err.Error() }
func (e *transportError) Unwrap() error { return ErrService }

// retryable allows retries for 5xx responses and transport failures only;
// 4xx statuses and application-level envelope errors are final.
func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= http.StatusInternalServerError
	}
	var te *transportError
	if errors.As(err, &te) {
		return !errors.Is(te.err, context.Canceled) && !errors.Is(te.err, context.DeadlineExceeded)
	}
	return false
}

func (c *Client) do(ctx context.Context, method, url string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &transportError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &statusError{
			code: resp.StatusCode,
			msg:  fmt.Sprintf("stats service: %s %s: %s", method, url, string(raw)),
		}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrService, err)
	}
	// an envelope error flag is treated the same as a non-2xx status
	if env.Error {
		msg := env.ErrorMsg
		if msg == "" {
			msg = "unknown error"
		}
		return fmt.Errorf("%w: %s", ErrService, msg)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: malformed data payload: %v", ErrService, err)
		}
	}
	return nil
}
