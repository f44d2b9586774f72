package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/retainsure/retention-console/internal/api/metrics"
	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
)

// Client is the REST gateway to the insurance-retention backend. All
// authenticated calls go through the credential-attachment Transport; the
// session id travels in the request context.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a Client for the given base URL. transport should be the
// credential-attachment Transport; a nil transport falls back to the default.
func NewClient(baseURL string, timeout time.Duration, transport http.RoundTripper, log zerolog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("backend base url: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout, Transport: transport},
		log:     log,
	}, nil
}

func (c *Client) Login(ctx context.Context, input ports.LoginInput) (*ports.LoginResponse, error) {
	body := map[string]string{"email": input.Email, "password": input.Password}
	var resp ports.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, input ports.RegisterInput) error {
	body := map[string]string{
		"fullName":      input.FullName,
		"email":         input.Email,
		"password":      input.Password,
		"contactNumber": input.ContactNumber,
	}
	return c.do(ctx, http.MethodPost, "/api/auth/register", "register", body, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, input ports.ProfileUpdateInput) (*ports.ProfileResponse, error) {
	body := map[string]string{"name": input.Name, "email": input.Email}
	var resp ports.ProfileResponse
	if err := c.do(ctx, http.MethodPut, "/api/users/profile", "profile", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Customers(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	if err := c.do(ctx, http.MethodGet, "/api/customers", "customers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Policies(ctx context.Context) ([]domain.Policy, error) {
	var out []domain.Policy
	if err := c.do(ctx, http.MethodGet, "/api/policies", "policies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Predictions(ctx context.Context) ([]domain.RenewalPrediction, error) {
	var out []domain.RenewalPrediction
	if err := c.do(ctx, http.MethodGet, "/api/predictions", "predictions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Campaigns(ctx context.Context) ([]domain.Campaign, error) {
	var out []domain.Campaign
	if err := c.do(ctx, http.MethodGet, "/api/campaigns", "campaigns", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Reminders(ctx context.Context) ([]domain.Reminder, error) {
	var out []domain.Reminder
	if err := c.do(ctx, http.MethodGet, "/api/reminders", "reminders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RemindersByCustomer(ctx context.Context, customerID int64) ([]domain.Reminder, error) {
	path := fmt.Sprintf("/api/reminders/customer/%d", customerID)
	var out []domain.Reminder
	if err := c.do(ctx, http.MethodGet, path, "reminders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) BulkCreateReminders(ctx context.Context, input ports.BulkReminderInput) ([]domain.Reminder, error) {
	var out []domain.Reminder
	if err := c.do(ctx, http.MethodPost, "/api/reminders/bulk", "reminders", input, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Reports(ctx context.Context) ([]domain.RetentionReport, error) {
	var out []domain.RetentionReport
	if err := c.do(ctx, http.MethodGet, "/api/reports", "reports", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DownloadReport fetches a generated report file. Unlike the JSON endpoints
// the body is relayed verbatim, so this bypasses do.
func (c *Client) DownloadReport(ctx context.Context, format string) (*ports.ReportDownload, error) {
	path := "/api/reports/download/" + format
	u := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues("reports").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendErrorsTotal.WithLabelValues("reports", "network").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, path, "reports"); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.BackendErrorsTotal.WithLabelValues("reports", "read").Inc()
		return nil, fmt.Errorf("read report body: %w", err)
	}
	return &ports.ReportDownload{
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    dispositionFilename(resp.Header.Get("Content-Disposition")),
		Body:        body,
	}, nil
}

// dispositionFilename extracts the filename parameter from a
// Content-Disposition header, if any.
func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}

// do performs one backend call and decodes the JSON response into out when
// non-nil. endpoint is the logical name used for metrics labels.
func (c *Client) do(ctx context.Context, method, path, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	u := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendErrorsTotal.WithLabelValues(endpoint, "network").Inc()
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, path, endpoint); err != nil {
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.BackendErrorsTotal.WithLabelValues(endpoint, "decode").Inc()
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) checkStatus(resp *http.Response, path, endpoint string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Drain so the connection can be reused.
	msg := readErrorMessage(resp.Body)

	metrics.BackendErrorsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if isAuthEndpoint(path) {
			return domain.ErrInvalidCredentials
		}
		// The Transport has already revoked the session; surface the
		// failure so the caller's own error handling still runs.
		return domain.ErrSessionRevoked
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrUserNotFound
	case http.StatusConflict:
		return domain.ErrUserExists
	}

	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("backend %s: %s (status %d)", path, msg, resp.StatusCode)
}

// readErrorMessage extracts the backend's {"error": "..."} envelope, if any.
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return strings.TrimSpace(string(raw))
}
