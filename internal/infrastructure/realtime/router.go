package realtime

import (
	"sync"
)

// Router tracks the websocket sessions of the single chat room. It keeps
// one active Connection per participant name and fans payloads out to the
// sessions an allow predicate accepts, so delivery can honor the same
// visibility rule as the HTTP message listing.
type Router struct {
	mu       sync.RWMutex
	sessions map[string]*Connection // sessionID -> connection
	users    map[string]string      // user -> sessionID
}

// NewRouter constructs an initialized Router.
func NewRouter() *Router {
	return &Router{
		sessions: make(map[string]*Connection),
		users:    make(map[string]string),
	}
}

// Attach registers a connection for its user. A previous session for the
// same user is closed after the swap to enforce one active socket per user.
func (r *Router) Attach(conn *Connection) {
	var previous *Connection

	r.mu.Lock()
	if existingID, ok := r.users[conn.User]; ok {
		previous = r.sessions[existingID]
		delete(r.sessions, existingID)
	}
	r.sessions[conn.ID] = conn
	r.users[conn.User] = conn.ID
	r.mu.Unlock()

	conn.Start()

	if previous != nil {
		previous.Close(4001, "session replaced")
	}
}

// Detach removes a connection if it is still tracked.
func (r *Router) Detach(conn *Connection) {
	r.mu.Lock()
	if _, ok := r.sessions[conn.ID]; ok {
		delete(r.sessions, conn.ID)
		if current, ok := r.users[conn.User]; ok && current == conn.ID {
			delete(r.users, conn.User)
		}
	}
	r.mu.Unlock()
}

// Broadcast writes payload to every session whose user the allow
// predicate accepts. A nil predicate delivers to everyone. Returns the
// number of successful deliveries.
func (r *Router) Broadcast(payload []byte, allow func(user string) bool) int {
	r.mu.RLock()
	conns := make([]*Connection, 0, len(r.sessions))
	for _, conn := range r.sessions {
		if allow == nil || allow(conn.User) {
			conns = append(conns, conn)
		}
	}
	r.mu.RUnlock()

	delivered := 0
	for _, conn := range conns {
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// Close terminates all tracked connections and clears router state.
func (r *Router) Close() {
	r.mu.Lock()
	conns := make([]*Connection, 0, len(r.sessions))
	for _, conn := range r.sessions {
		conns = append(conns, conn)
	}
	r.sessions = make(map[string]*Connection)
	r.users = make(map[string]string)
	r.mu.Unlock()

	for _, conn := range conns {
		conn.Close(1001, "router shutdown")
	}
}
