package relayapi

import (
	"context"
	"fmt"
)

// APIKey is the listable form of a key; the secret itself is only
// returned once, at creation.
type APIKey struct {
	ID   string `json:"id"`
	Desc string `json:"desc"`
}

type createAPIKeyRequest struct {
	Desc string `json:"desc"`
}

type createAPIKeyResponse struct {
	Key string `json:"key"`
}

func (c *Client) APIKeys(ctx context.Context) ([]APIKey, error) {
	var keys []APIKey
	if err := c.get(ctx, "/config/keys", &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// CreateAPIKey returns the new key's secret. Show it to the operator
// immediately; it cannot be retrieved again.
func (c *Client) CreateAPIKey(ctx context.Context, desc string) (string, error) {
	var resp createAPIKeyResponse
	if err := c.post(ctx, "/config/keys", createAPIKeyRequest{Desc: desc}, &resp); err != nil {
		return "", err
	}
	return resp.Key, nil
}

func (c *Client) RemoveAPIKey(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/config/keys/%s", id))
}
