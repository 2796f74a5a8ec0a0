// Package api is the HTTP client for the recruitment-tracking backend.
//
// The backend is a black box: apptrack only consumes its JSON contracts. List
// endpoints return either a paginated envelope {items, total, page, size,
// pages} or a bare array depending on backend version; both are decoded into
// one canonical slice right here at the boundary so nothing deeper in the
// pipeline branches on shape.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tbonnaire/apptrack/internal/types"
)

// DefaultTimeout bounds every backend call.
const DefaultTimeout = 30 * time.Second

// Client talks to one backend base URL.
type Client struct {
	base string
	hc   *http.Client
}

// New returns a client for baseURL. A zero timeout falls back to
// DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: timeout},
	}
}

// FetchApplications returns all application records.
func (c *Client) FetchApplications(ctx context.Context) ([]types.ApplicationRecord, error) {
	body, status, err := c.raw(ctx, http.MethodGet, "/job-applications/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[types.ApplicationRecord](body, status)
}

// FetchEmails returns all email records.
func (c *Client) FetchEmails(ctx context.Context) ([]types.EmailRecord, error) {
	body, status, err := c.raw(ctx, http.MethodGet, "/emails", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[types.EmailRecord](body, status)
}

// FetchSummary returns the backend's aggregate processing metrics.
func (c *Client) FetchSummary(ctx context.Context) (*types.Summary, error) {
	var resp struct {
		Success bool          `json:"success"`
		Data    types.Summary `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/intelligent-tracker/processing-summary", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ProcessEmails triggers the backend's auto-process run over at most limit
// unprocessed emails. The returned counters describe the run only; callers
// must re-fetch to learn the resulting record state.
func (c *Client) ProcessEmails(ctx context.Context, limit int) (*types.ProcessResult, error) {
	path := "/intelligent-tracker/process-emails"
	if limit > 0 {
		path += "?limit=" + url.QueryEscape(fmt.Sprintf("%d", limit))
	}
	var result types.ProcessResult
	if err := c.do(ctx, http.MethodPost, path, struct{}{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateApplication creates an application and returns the created record.
func (c *Client) CreateApplication(ctx context.Context, req types.CreateApplicationRequest) (*types.ApplicationRecord, error) {
	var rec types.ApplicationRecord
	if err := c.do(ctx, http.MethodPost, "/job-applications/", req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// DeleteApplication deletes by id. The backend answers 204 on success.
func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/job-applications/"+url.PathEscape(id), nil, nil)
}

// UpdateStatus changes an application's status, with optional notes.
func (c *Client) UpdateStatus(ctx context.Context, id, status, notes string) (*types.ApplicationRecord, error) {
	payload := map[string]string{"status": status}
	if notes != "" {
		payload["notes"] = notes
	}
	var rec types.ApplicationRecord
	if err := c.do(ctx, http.MethodPatch, "/job-applications/"+url.PathEscape(id)+"/status", payload, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// SetPriority changes an application's priority.
func (c *Client) SetPriority(ctx context.Context, id, priority string) (*types.ApplicationRecord, error) {
	payload := map[string]string{"priority": priority}
	var rec types.ApplicationRecord
	if err := c.do(ctx, http.MethodPatch, "/job-applications/"+url.PathEscape(id)+"/priority", payload, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// LinkEmail points an email's application_id at an application.
func (c *Client) LinkEmail(ctx context.Context, emailID, appID string) (*types.EmailRecord, error) {
	payload := map[string]string{"application_id": appID}
	var rec types.EmailRecord
	if err := c.do(ctx, http.MethodPatch, "/emails/"+url.PathEscape(emailID)+"/link", payload, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// UnlinkEmail clears an email's application_id.
func (c *Client) UnlinkEmail(ctx context.Context, emailID string) (*types.EmailRecord, error) {
	var rec types.EmailRecord
	if err := c.do(ctx, http.MethodPatch, "/emails/"+url.PathEscape(emailID)+"/unlink", struct{}{}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// do runs one request and decodes the response into out (out may be nil for
// void endpoints).
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	body, status, err := c.raw(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return shapeError(status)
	}
	return nil
}

// raw runs one request and returns the body of a 2xx response. Transport
// failures wrap ErrNetwork; non-2xx responses become BackendError with the
// backend's own message when one can be extracted.
func (c *Client) raw(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &BackendError{
			Status:  resp.StatusCode,
			Message: errorMessage(body),
		}
	}
	return body, resp.StatusCode, nil
}

// errorMessage extracts the backend's structured message from an error body.
func errorMessage(body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Detail != "":
			return payload.Detail
		case payload.Message != "":
			return payload.Message
		case payload.Error != "":
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}

// decodeList accepts both list shapes and returns one canonical slice.
func decodeList[T any](body []byte, status int) ([]T, error) {
	var bare []T
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}
	var env struct {
		Items []T `json:"items"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Items != nil {
		return env.Items, nil
	}
	return nil, shapeError(status)
}
