package server

import (
	"context"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/clocklear/pirelayconsole/relayapi"
)

const defaultRefreshInterval = 5 * time.Second

// Refresher polls relay states and activity in the background while a
// session is live, so views render from a recent snapshot instead of
// blocking on the API.
type Refresher struct {
	api      *relayapi.Client
	interval time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool

	relays   []relayapi.Relay
	relaysOK bool
	events   []relayapi.Event
	eventsOK bool
}

func NewRefresher(api *relayapi.Client, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &Refresher{api: api, interval: interval}
}

// Start begins polling. Calling Start on a running Refresher is a no-op.
func (rf *Refresher) Start() {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	if rf.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	rf.cancel = cancel
	rf.running = true
	go rf.loop(ctx)
}

// Stop halts polling and clears the cached snapshot. Safe to call when
// not running.
func (rf *Refresher) Stop() {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	if rf.cancel != nil {
		rf.cancel()
		rf.cancel = nil
	}
	rf.running = false
	rf.relays, rf.relaysOK = nil, false
	rf.events, rf.eventsOK = nil, false
}

func (rf *Refresher) loop(ctx context.Context) {
	rf.refresh(ctx)
	ticker := time.NewTicker(rf.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rf.refresh(ctx)
		}
	}
}

func (rf *Refresher) refresh(ctx context.Context) {
	relays, relaysErr := rf.api.Relays(ctx)
	events, eventsErr := rf.api.Events(ctx)

	rf.mu.Lock()
	defer rf.mu.Unlock()
	if ctx.Err() != nil {
		// Stopped while the fetch was in flight, discard the result.
		return
	}
	if relaysErr == nil {
		rf.relays, rf.relaysOK = relays, true
	} else {
		zlog.Debug().Err(relaysErr).Msg("relay state refresh failed")
	}
	if eventsErr == nil {
		rf.events, rf.eventsOK = events, true
	} else {
		zlog.Debug().Err(eventsErr).Msg("activity refresh failed")
	}
}

// Relays returns the most recent relay snapshot, if one has been fetched.
func (rf *Refresher) Relays() ([]relayapi.Relay, bool) {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	return rf.relays, rf.relaysOK
}

// Events returns the most recent activity snapshot, if one has been fetched.
func (rf *Refresher) Events() ([]relayapi.Event, bool) {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	return rf.events, rf.eventsOK
}

// UpdateRelays replaces the relay snapshot, used when a toggle returns
// refreshed state so the next render does not wait on the ticker.
func (rf *Refresher) UpdateRelays(relays []relayapi.Relay) {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	rf.relays, rf.relaysOK = relays, true
}
