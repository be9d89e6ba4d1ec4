// Package api contains the HTTP client of the console. Every request is
// built at call time and reads the current bearer token from a TokenSource,
// so there is no shared mutable default header to attach or detach: the
// moment the session clears its token, the next request goes out without
// one.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/afrikanet/satellite-console/internal/lib/sl"
)

// TokenSource supplies the current bearer token, empty when logged out.
type TokenSource interface {
	Token() string
}

// Client talks to the API server.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *slog.Logger
}

// New creates a Client for baseURL.
func New(baseURL string, timeout time.Duration, tokens TokenSource, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE and expects an empty reply.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	const op = "api.do"

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Err: fmt.Errorf("%s: %w", op, err)}
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &RequestError{Err: fmt.Errorf("%s: %w", op, err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed",
			slog.String("method", method), slog.String("path", path), sl.Err(err))
		return &RequestError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		detail := decodeDetail(resp)
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthError{StatusCode: resp.StatusCode, Detail: detail}
		case http.StatusNotFound:
			return &NotFoundError{Detail: detail}
		default:
			c.log.Error("server rejected request",
				slog.String("method", method), slog.String("path", path),
				slog.Int("status", resp.StatusCode), slog.String("detail", detail))
			return &RequestError{StatusCode: resp.StatusCode, Detail: detail}
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{StatusCode: resp.StatusCode, Err: fmt.Errorf("%s: %w", op, err)}
	}
	return nil
}

// decodeDetail extracts the {"detail": ...} message of an error reply. The
// message is shown to the operator verbatim.
func decodeDetail(resp *http.Response) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Detail == "" {
		return resp.Status
	}
	return payload.Detail
}
