package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tutorboard/internal/metrics"
)

type ctxKey int

const tokenKey ctxKey = iota

// ContextWithToken attaches the session's bearer token to a request
// context. The client reads it back on every call, so handlers never
// thread the token through service signatures.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func tokenFrom(ctx context.Context) string {
	if v, ok := ctx.Value(tokenKey).(string); ok {
		return v
	}
	return ""
}

// Client is the single HTTP adapter in front of the platform API.
// Every resource service below is a thin typed wrapper over do.
type Client struct {
	base *url.URL
	http *http.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base: u,
		http: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do issues one JSON request. Transport failures are returned as-is so
// callers can tell "request failed" from "empty result"; non-2xx bodies
// become *Error carrying the server's message(s).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(ctx, req)

	return c.send(req, out)
}

// upload sends a single file as a multipart form, field name per the
// API contract.
func (c *Client) upload(ctx context.Context, path, field, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(ctx, req)

	return c.send(req, out)
}

func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if tok := tokenFrom(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

func (c *Client) send(req *http.Request, out any) error {
	metrics.UpstreamRequests.Inc()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamErrors.Inc()
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamErrors.Inc()
		return fmt.Errorf("%s %s: read body: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode/100 != 2 {
		metrics.UpstreamErrors.Inc()
		return decodeError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
