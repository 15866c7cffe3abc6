package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"gemstore/internal/ids"
	"gemstore/internal/models"
	"gemstore/internal/obs"
)

// Client is the single configured HTTP client for the storefront backend.
// Every call carries the calling session's cookies; the backend is the
// sole authority on business state, so there are no retries and no
// client-side caching.
type Client struct {
	base *url.URL
	http *http.Client
	lg   *zap.SugaredLogger
}

func New(baseURL string, timeout time.Duration, lg *zap.SugaredLogger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		base: u,
		http: &http.Client{Timeout: timeout},
		lg:   lg,
	}, nil
}

// Request describes one backend call.
type Request struct {
	Method string
	Path   string
	Query  url.Values

	// Body is JSON-encoded when non-nil. RawBody/ContentType take
	// precedence for multipart payloads.
	Body        any
	RawBody     io.Reader
	ContentType string

	// Cookies are the session's backend credentials.
	Cookies []*http.Cookie
}

// Result carries the envelope metadata of a successful call.
type Result struct {
	Message    string
	Pagination *models.Pagination
	Cookies    []*http.Cookie
}

type envelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Data       json.RawMessage    `json:"data"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// Do performs a single round trip and decodes the backend's
// {success, message, data, pagination} envelope into out.
func (c *Client) Do(ctx context.Context, req Request, out any) (*Result, error) {
	u := c.base.JoinPath(req.Path)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.RawBody != nil:
		body = req.RawBody
		contentType = req.ContentType
	case req.Body != nil:
		buf, err := json.Marshal(req.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		hreq.Header.Set("Content-Type", contentType)
	}
	hreq.Header.Set("Accept", "application/json")
	hreq.Header.Set("X-Request-ID", ids.New())
	for _, ck := range req.Cookies {
		hreq.AddCookie(ck)
	}

	start := time.Now()
	resp, err := c.http.Do(hreq)
	if err != nil {
		obs.ObserveUpstream(req.Method, req.Path, 0, time.Since(start))
		c.lg.Warnw("backend unreachable", "method", req.Method, "path", req.Path, "error", err)
		return nil, &Error{Status: 0, Message: FallbackMessage}
	}
	defer resp.Body.Close()
	obs.ObserveUpstream(req.Method, req.Path, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Message: FallbackMessage}
	}

	var env envelope
	if len(raw) > 0 {
		// Tolerate non-envelope error bodies; the status code decides.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = FallbackMessage
		}
		status := resp.StatusCode
		if status >= 200 && status < 300 {
			// Envelope said failure on a 2xx transport status.
			status = http.StatusBadRequest
		}
		return nil, &Error{Status: status, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			c.lg.Errorw("backend payload mismatch", "path", req.Path, "error", err)
			return nil, &Error{Status: resp.StatusCode, Message: FallbackMessage}
		}
	}
	return &Result{
		Message:    env.Message,
		Pagination: env.Pagination,
		Cookies:    resp.Cookies(),
	}, nil
}

// Get is shorthand for a credentialed GET.
func (c *Client) Get(ctx context.Context, path string, query url.Values, cookies []*http.Cookie, out any) (*Result, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query, Cookies: cookies}, out)
}

// Post is shorthand for a credentialed JSON POST.
func (c *Client) Post(ctx context.Context, path string, body any, cookies []*http.Cookie, out any) (*Result, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body, Cookies: cookies}, out)
}
