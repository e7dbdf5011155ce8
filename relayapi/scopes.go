package relayapi

// Scopes recognised by the relay API. The API enforces them; the console
// uses them to disable affordances the session can't exercise.
const (
	ScopeReadConfig           = "read:config"
	ScopeReadEvents           = "read:events"
	ScopeReadMe               = "read:me"
	ScopeReadRelays           = "read:relays"
	ScopeWriteConfigSchedules = "write:config.schedules"
	ScopeWriteRelayName       = "write:relay.name"
	ScopeWriteRelayToggle     = "write:relay.toggle"
)
