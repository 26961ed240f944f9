package gateway

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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenSource yields the current bearer token, or "" when logged out.
type TokenSource interface {
	Token() string
}

// Client is the single HTTP client every data-fetching component goes through.
// It attaches the bearer token to outgoing requests, except for the handful of
// endpoints that precede authentication. It does not retry and does not cache;
// callers translate errors into user-facing messages.
type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
	log    *zap.Logger
}

// Endpoints called before a token exists. Everything else is authenticated.
var unauthenticatedPaths = map[string]struct{}{
	"/auth/login":           {},
	"/auth/register":        {},
	"/auth/forgot-password": {},
	"/auth/reset-password":  {},
}

func New(baseURL string, tokens TokenSource, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   httpClient,
		tokens: tokens,
		log:    log,
	}
}

// Get issues a GET and decodes the JSON response into out (ignored when nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, "", nil, out)
}

// Post issues a JSON POST. Creating POSTs carry an idempotency key so a
// client-side retry of the same invocation cannot double-create.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	rd, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, "application/json", rd, out)
}

// Put issues a JSON PUT.
func (c *Client) Put(ctx context.Context, path string, query url.Values, body any, out any) error {
	rd, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.doWithQuery(ctx, http.MethodPut, path, query, "application/json", rd, out)
}

// Patch issues a PATCH with no body.
func (c *Client) Patch(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, "", nil, out)
}

// Delete issues a DELETE with no body.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil, out)
}

// PostMultipart issues a multipart/form-data POST with text fields and
// optional file parts.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, files map[string][]byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	for name, data := range files {
		part, err := w.CreateFormFile(name, name+".jpg")
		if err != nil {
			return err
		}
		if _, err := part.Write(data); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	return c.do(ctx, http.MethodPost, path, nil, w.FormDataContentType(), &buf, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	return c.doWithQuery(ctx, method, path, query, contentType, body, out)
}

func (c *Client) doWithQuery(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	if method == http.MethodPost {
		req.Header.Set("X-Idempotency-Key", uuid.NewString())
	}

	if c.authenticated(path) {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return apiNetwork(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiNetwork(err)
	}

	c.log.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) authenticated(path string) bool {
	_, skip := unauthenticatedPaths[path]
	return !skip
}

func encodeJSON(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(raw), nil
}
