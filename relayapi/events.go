package relayapi

import (
	"context"
	"time"
)

// Event is one timestamped activity log entry. The API returns them
// newest first.
type Event struct {
	Stamp time.Time `json:"stamp"`
	Msg   string    `json:"msg"`
}

func (c *Client) Events(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := c.get(ctx, "/events", &events); err != nil {
		return nil, err
	}
	return events, nil
}
