// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the HTTP client for the chat administration service.
//
// Every operation is a thin wrapped call: one method per endpoint,
// composed from a shared request core that attaches the bearer token,
// picks the content type (JSON or multipart), and converts non-success
// statuses into typed errors. Callers classify failures with
// IsAuthError; nothing is retried automatically.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/chatdeck-tui/internal/token"
)

// Configuration constants for the admin service API.
const (
	// DefaultBaseURL is where the backend listens in a local deployment.
	DefaultBaseURL = "http://127.0.0.1:8000/api"

	// DefaultTimeout is the default timeout for API requests. Chat
	// completions are slow; the server proxies an LLM.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client used by every Client instance unless overridden.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// Error variables for common API failures.
var (
	// ErrNoToken indicates an authenticated operation was attempted
	// without a stored token. Detected locally, before any request.
	// The message matches what the console surfaced.
	ErrNoToken = errors.New("No token found!")

	// ErrInvalidToken indicates the server rejected the token.
	// Mapped from a 401 with detail "Invalid token".
	ErrInvalidToken = errors.New("Invalid token")
)

// serverInvalidTokenDetail is the exact detail string the backend
// returns for a bad or expired JWT.
const serverInvalidTokenDetail = "Invalid token"

// APIError represents a non-success response from the service.
type APIError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error (HTTP %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api error (HTTP %d)", e.Status)
}

// IsAuthError reports whether err should force navigation to the login
// view: either no token was stored locally, or the server reported the
// token invalid. Every other failure leaves the UI usable.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNoToken) || errors.Is(err, ErrInvalidToken)
}

// apiErrorResponse is the backend's error body shape.
type apiErrorResponse struct {
	Detail string `json:"detail"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client issues requests against the admin service.
type Client struct {
	baseURL    string
	tokens     *token.Store
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client over the given token store.
func NewClient(tokens *token.Store) *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		tokens:     tokens,
		httpClient: sharedHTTPClient,
		// Guards against accidental request storms from the UI loop;
		// interactive use never comes close to this.
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// WithBaseURL sets a custom base URL for the API.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithTimeout sets the request timeout on a dedicated HTTP client.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient = &http.Client{
		Transport: sharedHTTPClient.Transport,
		Timeout:   timeout,
	}
	return c
}

// WithHTTPClient substitutes the underlying HTTP client (tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// REQUEST CORE
// =============================================================================

// requireToken returns the stored token or ErrNoToken.
func (c *Client) requireToken() (string, error) {
	tok := c.tokens.Token()
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// logRequest logs an API request without exposing sensitive data.
// Headers carry the token; bodies may carry passwords. Neither is logged.
func logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs an API response with duration.
func logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, duration)
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// do executes a prepared request and returns the raw success body.
// Non-2xx statuses become typed errors.
func (c *Client) do(ctx context.Context, req *http.Request, bearer string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	req.Header.Set("User-Agent", "chatdeck/"+Version)

	logRequest(req)
	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	// Clear the Authorization header after the request so a request
	// dump never carries the token.
	req.Header.Del("Authorization")

	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	logResponse(resp, duration)

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, handleErrorResponse(resp.StatusCode, body)
	}
	return body, nil
}

// handleErrorResponse converts an error response into a typed error.
// A 401 carrying the backend's "Invalid token" detail maps to
// ErrInvalidToken so the UI can route to login; everything else stays a
// generic *APIError for inline display.
func handleErrorResponse(statusCode int, body []byte) error {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Detail != "" {
		if statusCode == http.StatusUnauthorized && apiErr.Detail == serverInvalidTokenDetail {
			return fmt.Errorf("%w (HTTP %d)", ErrInvalidToken, statusCode)
		}
		return &APIError{Status: statusCode, Detail: apiErr.Detail}
	}
	return &APIError{Status: statusCode, Detail: strings.TrimSpace(string(body))}
}

// getJSON performs an authenticated GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	bearer, err := c.requireToken()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	body, err := c.do(ctx, req, bearer)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// postJSON performs a POST with a JSON body. When authed is false the
// request goes out without a token (login is the only such call).
func (c *Client) postJSON(ctx context.Context, url string, in, out any, authed bool) error {
	var bearer string
	if authed {
		var err error
		bearer, err = c.requireToken()
		if err != nil {
			return err
		}
	}

	bodyBytes, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(ctx, req, bearer)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// filePart describes a file attached to a multipart request.
type filePart struct {
	field    string
	filename string
	reader   io.Reader
}

// postMultipart performs an authenticated POST with a multipart form of
// string fields plus optional file parts.
func (c *Client) postMultipart(ctx context.Context, url string, fields map[string]string, files []filePart, out any) error {
	bearer, err := c.requireToken()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field: %w", err)
		}
	}
	for _, fp := range files {
		part, err := mw.CreateFormFile(fp.field, fp.filename)
		if err != nil {
			return fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, fp.reader); err != nil {
			return fmt.Errorf("failed to copy file contents: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.do(ctx, req, bearer)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
