// Package api implements the CommHub REST client: a thin JSON client plus the
// authenticated transport that attaches bearer credentials and recovers from
// access-token expiry.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mvasiljevs/commhub/internal/common"
	"github.com/mvasiljevs/commhub/internal/logging"
)

// DefaultTimeout bounds every HTTP call. A timeout surfaces as a network
// error, never as an auth failure.
const DefaultTimeout = 30 * time.Second

// Client is a JSON REST client bound to a base URL. All domain services and
// the session manager issue their calls through it.
type Client struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTransport installs a custom RoundTripper, typically an AuthTransport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport = rt }
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying http.Client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func NewClient(baseURL string, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil)
}

// PostMultipart sends a multipart form built by fill, e.g. for image uploads.
func (c *Client) PostMultipart(ctx context.Context, method string, path string, fill func(*multipart.Writer) error, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := fill(w); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.do(ctx, method, path, buf.Bytes(), w.FormDataContentType(), out)
}

func (c *Client) doJSON(ctx context.Context, method string, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}
	return c.do(ctx, method, path, payload, "application/json", out)
}

func (c *Client) do(ctx context.Context, method string, path string, body []byte, contentType string, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if uerr, ok := err.(*url.Error); ok {
			// Errors produced inside the auth transport (e.g. session expiry)
			// keep their identity; genuine connectivity failures become
			// ErrUnavailable.
			if isTransportSentinel(uerr.Err) {
				return uerr.Err
			}
		}
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return newAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func isTransportSentinel(err error) bool {
	for _, sentinel := range []error{common.ErrSessionExpired, common.ErrRefreshFailed, common.ErrNoRefreshToken} {
		if err != nil && errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
