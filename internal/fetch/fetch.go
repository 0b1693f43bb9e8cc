// Package fetch retrieves text resources addressed by root-relative paths.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Client resolves resource paths against an origin and downloads them.
// It never retries and sets no timeout of its own; cancellation is the
// caller's context.
type Client struct {
	origin string
	http   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// New returns a Client for origin, e.g. "https://example.com" or
// "https://example.com/personal-website". An empty origin is allowed; every
// fetch then fails with ErrOriginUnavailable.
func New(origin string, opts ...Option) *Client {
	c := &Client{
		origin: origin,
		http:   &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Origin returns the origin the client resolves against.
func (c *Client) Origin() string {
	return c.origin
}

// Resolve joins the root-relative path with the client's origin.
func (c *Client) Resolve(path string) (string, error) {
	base, err := parseOrigin(c.origin)
	if err != nil {
		return "", &Error{Kind: KindOriginUnavailable, Path: path, Err: err}
	}
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return "", &Error{Kind: KindFetchFailure, Path: path, Err: errors.New("path is not root-relative")}
	}

	raw := base.Scheme + "://" + base.Host + strings.TrimSuffix(base.EscapedPath(), "/") + path
	u, err := url.Parse(raw)
	if err != nil {
		return "", &Error{Kind: KindFetchFailure, Path: path, Err: err}
	}
	return u.String(), nil
}

// Fetch downloads the resource at path and returns its body as text.
func (c *Client) Fetch(ctx context.Context, path string) (string, error) {
	target, err := c.Resolve(path)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &Error{Kind: KindFetchFailure, Path: path, URL: target, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &Error{Kind: KindFetchFailure, Path: path, URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindFetchFailure, Path: path, URL: target, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{
			Kind:   KindFetchFailure,
			Path:   path,
			URL:    target,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if !utf8.Valid(body) {
		return "", &Error{
			Kind:   KindFetchFailure,
			Path:   path,
			URL:    target,
			Status: resp.StatusCode,
			Err:    errors.New("response body is not text"),
		}
	}

	return string(body), nil
}

func parseOrigin(origin string) (*url.URL, error) {
	if strings.TrimSpace(origin) == "" {
		return nil, errors.New("no origin configured")
	}
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported origin scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("origin has no host")
	}
	return u, nil
}
