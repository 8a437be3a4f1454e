// Package store implements a client for a document-oriented key-value
// HTTP service addressed by path-as-key: every document lives at
// <base>/<path>.json and is read with GET and upserted with PUT.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/marketpro/internal/common"
	"github.com/dmitrijs2005/marketpro/internal/logging"
)

type Client struct {
	baseURL string
	httpc   *http.Client
	log     logging.Logger
}

// NewClient builds a store client. Every request is bounded by timeout;
// a request that exceeds it surfaces as common.ErrStoreUnavailable.
// Calls are never retried automatically.
func NewClient(baseURL string, timeout time.Duration, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.Trim(path, "/") + ".json"
}

// Get fetches the document at path. A missing document (the service
// returns the literal "null") yields (nil, nil).
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "store get failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn(ctx, "store get rejected", "path", path, "status", resp.Status)
		return nil, fmt.Errorf("%w: unexpected status %s", common.ErrStoreUnavailable, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	if isNull(body) {
		return nil, nil
	}
	return json.RawMessage(body), nil
}

// Put upserts doc at path as one atomic document write.
func (c *Client) Put(ctx context.Context, path string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.url(path), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "store put failed", "path", path, "error", err)
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn(ctx, "store put rejected", "path", path, "status", resp.Status)
		return fmt.Errorf("%w: unexpected status %s", common.ErrStoreUnavailable, resp.Status)
	}
	return nil
}

func isNull(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
