package relayapi

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/clocklear/pirelayconsole/internal/errors"
)

// Schedule maps a relay action to a five-field cron expression.
type Schedule struct {
	ID         string `json:"id"`
	Relay      int    `json:"relay"`
	Expression string `json:"expression"`
	Action     string `json:"action"`
}

const (
	ActionOn  = "on"
	ActionOff = "off"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a schedule locally before it is submitted, so a
// malformed expression becomes a form warning instead of a server 400.
func ValidateSchedule(s Schedule) error {
	if s.Relay <= 0 {
		return errors.Wrapf(errors.ErrBadRequest, "a relay must be selected")
	}
	if s.Action != ActionOn && s.Action != ActionOff {
		return errors.Wrapf(errors.ErrBadRequest, "action must be %q or %q", ActionOn, ActionOff)
	}
	if _, err := cronParser.Parse(s.Expression); err != nil {
		return errors.Wrapf(errors.ErrBadRequest, "invalid cron expression %q", s.Expression)
	}
	return nil
}

func (c *Client) Schedules(ctx context.Context) ([]Schedule, error) {
	var schedules []Schedule
	if err := c.get(ctx, "/config/schedules", &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// SaveSchedule creates a schedule, or updates it when it carries an ID.
func (c *Client) SaveSchedule(ctx context.Context, s Schedule) error {
	if err := ValidateSchedule(s); err != nil {
		return err
	}
	return c.post(ctx, "/config/schedules", s, nil)
}

func (c *Client) RemoveSchedule(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/config/schedules/%s", id))
}
