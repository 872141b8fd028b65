package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Watcher (case dashboard) message types
const (
	MsgProgressUpdate    MessageType = "progress_update"
	MsgSessionCompleted  MessageType = "session_completed"
	MsgDocumentReady     MessageType = "document_ready"
	MsgDiscrepancyUpdate MessageType = "discrepancy_update"
	MsgWatcherJoined     MessageType = "watcher_joined"
	MsgWatcherLeft       MessageType = "watcher_left"
)

// Owner (filer) message types
const (
	MsgValidationResult MessageType = "validation_result"
	MsgError            MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections per form session. The session owner is
// the filer working through the questionnaire; watchers are case dashboards
// following their progress.
type Hub struct {
	ownerConns   map[string]*Connection            // sessionID -> conn
	watcherConns map[string]map[string]*Connection // sessionID -> watcherID -> conn

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	SessionID string
	WatcherID string // Empty for owner connections
	IsOwner   bool
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	SessionID string
	ToOwner   bool
	Message   *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		ownerConns:   make(map[string]*Connection),
		watcherConns: make(map[string]map[string]*Connection),
		register:     make(chan *Connection),
		unregister:   make(chan *Connection),
		broadcast:    make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if conn.IsOwner {
				h.ownerConns[conn.SessionID] = conn
				log.Printf("Owner connected to session %s", conn.SessionID)
			} else {
				if h.watcherConns[conn.SessionID] == nil {
					h.watcherConns[conn.SessionID] = make(map[string]*Connection)
				}
				h.watcherConns[conn.SessionID][conn.WatcherID] = conn
				log.Printf("Watcher %s connected to session %s", conn.WatcherID, conn.SessionID)
				h.notifyOwnerWatcher(conn.SessionID, conn.WatcherID, MsgWatcherJoined)
			}
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conn.IsOwner {
				if existing, ok := h.ownerConns[conn.SessionID]; ok && existing == conn {
					delete(h.ownerConns, conn.SessionID)
					close(conn.Send)
					log.Printf("Owner disconnected from session %s", conn.SessionID)
				}
			} else {
				if watchers, ok := h.watcherConns[conn.SessionID]; ok {
					if existing, ok := watchers[conn.WatcherID]; ok && existing == conn {
						delete(watchers, conn.WatcherID)
						close(conn.Send)
						log.Printf("Watcher %s disconnected from session %s", conn.WatcherID, conn.SessionID)
						h.notifyOwnerWatcher(conn.SessionID, conn.WatcherID, MsgWatcherLeft)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if msg.ToOwner {
				if conn, ok := h.ownerConns[msg.SessionID]; ok {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			} else {
				if watchers, ok := h.watcherConns[msg.SessionID]; ok {
					for _, conn := range watchers {
						select {
						case conn.Send <- data:
						default:
						}
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToOwner sends a message to the session owner (implements
// service.Broadcaster)
func (h *Hub) BroadcastToOwner(sessionID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SessionID: sessionID,
		ToOwner:   true,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// BroadcastToWatchers sends a message to all dashboards watching a session
// (implements service.Broadcaster)
func (h *Hub) BroadcastToWatchers(sessionID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SessionID: sessionID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

func (h *Hub) notifyOwnerWatcher(sessionID, watcherID string, msgType MessageType) {
	if conn, ok := h.ownerConns[sessionID]; ok {
		data, _ := json.Marshal(&Message{
			Type:    msgType,
			Payload: json.RawMessage(`{"watcherId":"` + watcherID + `"}`),
		})
		select {
		case conn.Send <- data:
		default:
		}
	}
}
