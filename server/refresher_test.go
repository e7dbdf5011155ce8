package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clocklear/pirelayconsole/relayapi"
)

func TestRefresherPollsAndStops(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/relays":
			w.Write([]byte(`{"relayStates":[{"name":"Pump","relay":1,"state":1}]}`))
		case "/events":
			w.Write([]byte(`[{"stamp":"2026-08-30T12:00:00Z","msg":"Relay 1 turned on"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer backend.Close()

	rf := NewRefresher(relayapi.New(backend.URL, relayapi.Options{}), 10*time.Millisecond)
	rf.Start()
	defer rf.Stop()

	require.Eventually(t, func() bool {
		relays, ok := rf.Relays()
		return ok && len(relays) == 1 && relays[0].Name == "Pump"
	}, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		events, ok := rf.Events()
		return ok && len(events) == 1
	}, time.Second, 5*time.Millisecond)

	rf.Stop()
	_, ok := rf.Relays()
	require.False(t, ok)
	_, ok = rf.Events()
	require.False(t, ok)
}

func TestRefresherStartIsIdempotent(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer backend.Close()

	rf := NewRefresher(relayapi.New(backend.URL, relayapi.Options{}), time.Minute)
	rf.Start()
	rf.Start()
	rf.Stop()
	rf.Stop()
}

func TestRefresherUpdateRelays(t *testing.T) {
	rf := NewRefresher(relayapi.New("http://localhost:0", relayapi.Options{}), time.Minute)

	_, ok := rf.Relays()
	require.False(t, ok)

	rf.UpdateRelays([]relayapi.Relay{{Name: "Heater", Relay: 2, State: 0}})
	relays, ok := rf.Relays()
	require.True(t, ok)
	require.Equal(t, "Heater", relays[0].Name)
}
