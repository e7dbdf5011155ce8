// Package relayapi is the console's typed client for the relay API.
// Every call goes through the authenticated transport; read failures are
// returned unchanged so views can degrade them to empty result sets.
package relayapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clocklear/pirelayconsole/internal/errors"
	"github.com/clocklear/pirelayconsole/notify"
)

type Client struct {
	root string
	http *http.Client
}

type Options struct {
	// Token supplies the current bearer token per request.
	Token TokenSource
	// Notifier receives the keyed notifications raised on 400/401/403.
	Notifier *notify.Notifier
	// OnUnauthorized is called when the API answers 401.
	OnUnauthorized UnauthorizedFunc
	// Base overrides the underlying round tripper.
	Base http.RoundTripper
	// Timeout for each call; defaults to 10s.
	Timeout time.Duration
}

func New(root string, opts Options) *Client {
	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}
	token := opts.Token
	if token == nil {
		token = func() string { return "" }
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		root: root,
		http: &http.Client{
			Timeout: timeout,
			Transport: &transport{
				base:           base,
				token:          token,
				notifier:       opts.Notifier,
				onUnauthorized: opts.OnUnauthorized,
			},
		},
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("[Client %s %s] marshal body: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.root+path, reader)
	if err != nil {
		return fmt.Errorf("[Client %s %s] build request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("[Client %s %s] %w", method, path, err)
	}
	defer res.Body.Close()

	if err := statusError(res.StatusCode); err != nil {
		return errors.Wrapf(err, "[Client %s %s]", method, path)
	}
	if out != nil && res.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("[Client %s %s] decode response: %w", method, path, err)
		}
	}
	return nil
}

func statusError(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusBadRequest:
		return errors.ErrBadRequest
	case status == http.StatusUnauthorized:
		return errors.ErrUnauthorized
	case status == http.StatusForbidden:
		return errors.ErrForbidden
	case status == http.StatusNotFound:
		return errors.ErrNotFound
	default:
		return fmt.Errorf("unexpected status %d", status)
	}
}
