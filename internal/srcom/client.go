// Package srcom consumes the upstream catalog REST API: game lookup and
// search, user resolution, and lazily paginated run and game listings.
//
// Responses use the envelope format {"data": ..., "pagination": ...}.
// Sequences are restartable per call: every listing call constructs a
// fresh iterator that pages underneath and ends with types.ErrEndOfSeq.
// See docs/ARCHITECTURE.md § Catalog Client.
package srcom

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/speedarch/speedarch/pkg/types"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "speedarch/0.2"
)

// Client talks to one catalog API endpoint. Timeouts on individual calls
// belong here; rate limiting between games is the orchestrator's job.
type Client struct {
	base     string
	hc       *http.Client
	pageSize int
}

// New returns a Client for the API rooted at base, requesting pageSize
// elements per page from paginated endpoints.
func New(base string, pageSize int) *Client {
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return &Client{
		base:     base,
		hc:       &http.Client{Timeout: defaultTimeout},
		pageSize: pageSize,
	}
}

// get performs one GET and classifies failures: 404 is types.ErrNotFound,
// timeouts, rate limiting, and server errors are transient, anything else
// is terminal for the call.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &types.TransientError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.TransientError{Op: "GET " + path, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("GET %s: %w", path, types.ErrNotFound)
	case resp.StatusCode == http.StatusRequestTimeout,
		resp.StatusCode == 420, // upstream's rate-limit status
		resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode >= 500:
		return nil, &types.TransientError{
			Op:  "GET " + path,
			Err: fmt.Errorf("status %d", resp.StatusCode),
		}
	default:
		return nil, fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
}

// pageQuery returns query with pagination parameters applied.
func (c *Client) pageQuery(query url.Values, offset int) url.Values {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("max", strconv.Itoa(c.pageSize))
	q.Set("offset", strconv.Itoa(offset))
	return q
}
