package service

// Broadcaster pushes session events out over WebSocket. Implemented by the
// ws hub; services hold the interface so they stay transport-agnostic.
type Broadcaster interface {
	BroadcastToOwner(sessionID string, msgType string, payload interface{})
	BroadcastToWatchers(sessionID string, msgType string, payload interface{})
}
