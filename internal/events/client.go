// Package events talks to the remote event-management API and owns the local
// entity cache.
package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-plates/portal/internal/models"
)

// Client issues HTTP calls against the event-management API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates an API client for the given base URL (including the /api
// prefix).
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// ListEvents fetches the full event collection.
func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	var list []models.Event
	if err := c.do(ctx, http.MethodGet, "/events", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SearchEvents fetches events whose title or description matches q.
func (c *Client) SearchEvents(ctx context.Context, q string) ([]models.Event, error) {
	var list []models.Event
	path := "/events?q=" + url.QueryEscape(q)
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetEvent fetches a single event by id.
func (c *Client) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	var ev models.Event
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d", id), nil, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// ListOrganizations fetches the full organization collection.
func (c *Client) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	var list []models.Organization
	if err := c.do(ctx, http.MethodGet, "/organizations", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateEvent submits a new event and returns the server's record of it.
func (c *Client) CreateEvent(ctx context.Context, ev models.Event) (*models.Event, error) {
	var created models.Event
	if err := c.do(ctx, http.MethodPost, "/events", ev, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateEvent re-submits the full event record.
func (c *Client) UpdateEvent(ctx context.Context, ev models.Event) (*models.Event, error) {
	var updated models.Event
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/events/%d", ev.ID), ev, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEvent removes an event by id.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", requestID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classify(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// classify maps a non-2xx response to the error taxonomy. The API reports
// failures as {"error": "..."} bodies.
func classify(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		msg := body.Error
		if msg == "" {
			msg = "request rejected"
		}
		return &ValidationError{Message: msg}
	default:
		return &TransportError{Status: resp.StatusCode}
	}
}
