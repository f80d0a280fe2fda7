// Package backend is the thin client for the library REST API.
//
// Every resource exposes the same four calls:
//
//	GET    /{resource}/       list
//	POST   /{resource}/       create, echoes the created object
//	PUT    /{resource}/{id}/  full update, echoes the updated object
//	DELETE /{resource}/{id}/  delete, no body
//
// Calls are never retried; a failure is returned to the caller as is.
package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"library-admin/internal/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxErrorBody bounds how much of a failed response is kept for display.
const maxErrorBody = 2048

// Client issues JSON requests against the backend base URL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a client for baseURL with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/") + "/",
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) collectionURL(resource string) string {
	return c.BaseURL + resource + "/"
}

func (c *Client) itemURL(resource string, id int) string {
	return c.BaseURL + resource + "/" + strconv.Itoa(id) + "/"
}

// Ping checks that the backend answers at all. Any non-5xx status counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("backend unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// do sends one request and decodes the JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, resource, op, method, url string, body, out interface{}) error {
	start := time.Now()
	err := c.send(ctx, resource, op, method, url, body, out)

	outcome := "success"
	if err != nil {
		outcome = "error"
		log.Printf("[Backend] %s %s failed: %v", method, url, err)
	}
	metrics.BackendRequestsTotal.WithLabelValues(resource, op, outcome).Inc()
	metrics.BackendRequestDuration.WithLabelValues(resource, op).Observe(time.Since(start).Seconds())
	return err
}

func (c *Client) send(ctx context.Context, resource, op, method, url string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", resource, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Resource:   resource,
			Operation:  op,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}
