// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "business-lookup/internal/common/errors"
)

// maxBodyBytes caps how much of an upstream body is read.
const maxBodyBytes = 4 << 20

type Client struct {
	httpClient *http.Client
	service    string
}

// NewClient returns a client for one named third-party service. The name
// ends up in error messages and metadata.
func NewClient(service string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		service: service,
	}
}

func (c *Client) Service() string {
	return c.service
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return c.httpClient.Do(req)
}

// DoJSON sends req and decodes a 2xx JSON body into out. Transport failures,
// timeouts, non-2xx statuses and undecodable bodies come back as
// *errors.StandardError with the matching provider code.
func (c *Client) DoJSON(req *http.Request, out interface{}) error {
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(req.Context(), err) {
			return apperrors.NewProviderTimeoutError(c.service, err)
		}
		return apperrors.NewProviderRequestFailedError(c.service, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return apperrors.NewProviderRequestFailedError(c.service, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.NewProviderBadStatusError(c.service, resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewProviderDecodeFailedError(c.service, err)
	}
	return nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return true
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

// NewJSONRequest builds a request with a JSON-encoded body.
func NewJSONRequest(ctx context.Context, method, url string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}
