// Package backend is a typed client for the remote marketplace REST API.
// Every page in this application is a thin view over these calls.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/designmatch/web-client/internal/obs"
)

// Client wraps the marketplace REST API behind typed operations.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client with a per-request timeout. There are no retries:
// a failed call is reported to the caller and nothing else.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError is a non-2xx response from the marketplace API. DebugInfo
// carries the backend's debug_info field when the body provides one.
type APIError struct {
	StatusCode int
	DebugInfo  string
}

func (e *APIError) Error() string {
	if e.DebugInfo != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.DebugInfo)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// Message returns the user-displayable failure text: the backend's
// debug_info when present, otherwise a generic message. This mirrors the
// "debug_info ?? generic" fallback every form in the UI relies on.
func (e *APIError) Message() string {
	if e.DebugInfo != "" {
		return e.DebugInfo
	}
	return "An error occurred"
}

// IsAuthError reports whether err is a 401/403 from the backend.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// ErrorMessage extracts the displayable message from err when it carries
// an APIError, falling back to the generic message otherwise.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return "An error occurred"
}

// dataEnvelope is the `{"data": ...}` wrapper the read endpoints use.
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// TokenResponse is returned by register, login and onboard calls.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type errorBody struct {
	DebugInfo string `json:"debug_info"`
}

// do performs one JSON request against the API. token may be empty for
// public endpoints. out may be nil when the response body is irrelevant.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, token string, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("[backend %s] failed to encode request: %w", operation, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("[backend %s] failed to build request: %w", operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		obs.ObserveBackendRequest(operation, 0)
		return fmt.Errorf("[backend %s] request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	obs.ObserveBackendRequest(operation, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("[backend %s] failed to decode response: %w", operation, err)
	}
	return nil
}

// doData performs a request against an endpoint that wraps its payload in
// the `{"data": ...}` envelope, decoding the inner payload into out.
func (c *Client) doData(ctx context.Context, operation, method, path string, query url.Values, token string, out any) error {
	var envelope dataEnvelope
	if err := c.do(ctx, operation, method, path, query, token, nil, &envelope); err != nil {
		return err
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("[backend %s] failed to decode data payload: %w", operation, err)
	}
	return nil
}

func apiErrorFromResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.DebugInfo = body.DebugInfo
	}
	return apiErr
}
