package relayapi

import (
	"context"
	"fmt"
)

// Relay is one switched relay as reported by the API. State is 0 or 1.
type Relay struct {
	Name  string `json:"name"`
	Relay int    `json:"relay"`
	State int    `json:"state"`
}

func (r Relay) IsOn() bool {
	return r.State == 1
}

type relayStatus struct {
	RelayStates []Relay `json:"relayStates"`
}

func (c *Client) Relays(ctx context.Context) ([]Relay, error) {
	var status relayStatus
	if err := c.get(ctx, "/relays", &status); err != nil {
		return nil, err
	}
	return status.RelayStates, nil
}

// ToggleRelay flips a relay and returns the refreshed states.
func (c *Client) ToggleRelay(ctx context.Context, relay int) ([]Relay, error) {
	var status relayStatus
	if err := c.post(ctx, fmt.Sprintf("/relays/%d/toggle", relay), nil, &status); err != nil {
		return nil, err
	}
	return status.RelayStates, nil
}

type setRelayNameRequest struct {
	RelayName string `json:"relayName"`
}

func (c *Client) SetRelayName(ctx context.Context, relay int, name string) error {
	return c.post(ctx, fmt.Sprintf("/config/relay/%d/name", relay), setRelayNameRequest{RelayName: name}, nil)
}
