package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Router tracks gateway connections and the rooms they joined. A room is
// one conversation channel: the sorted pair of participant ids. Broadcast
// fans a payload out to every member, the sender included — clients own
// their echo handling.
type Router struct {
	mu        sync.RWMutex
	conns     map[string]*Connection            // connection ID -> connection
	rooms     map[string]map[string]*Connection // room ID -> connection ID -> connection
	connRooms map[string]map[string]struct{}    // connection ID -> joined room IDs
}

// NewRouter constructs an initialized Router.
func NewRouter() *Router {
	return &Router{
		conns:     make(map[string]*Connection),
		rooms:     make(map[string]map[string]*Connection),
		connRooms: make(map[string]map[string]struct{}),
	}
}

// Attach registers a connection and starts its write loop.
func (r *Router) Attach(conn *Connection) {
	r.mu.Lock()
	r.conns[conn.ID] = conn
	r.connRooms[conn.ID] = make(map[string]struct{})
	r.mu.Unlock()

	conn.Start()
}

// Detach removes the connection from all rooms and forgets it.
func (r *Router) Detach(conn *Connection) {
	r.mu.Lock()
	if _, ok := r.conns[conn.ID]; ok {
		delete(r.conns, conn.ID)
		for roomID := range r.connRooms[conn.ID] {
			r.leaveLocked(roomID, conn.ID)
		}
		delete(r.connRooms, conn.ID)
	}
	r.mu.Unlock()
}

// Join adds the connection to the room, creating the room on first join.
func (r *Router) Join(roomID string, conn *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[conn.ID]; !ok {
		return
	}

	room := r.rooms[roomID]
	if room == nil {
		room = make(map[string]*Connection)
		r.rooms[roomID] = room
	}
	room[conn.ID] = conn

	memberships := r.connRooms[conn.ID]
	if memberships == nil {
		memberships = make(map[string]struct{})
		r.connRooms[conn.ID] = memberships
	}
	memberships[roomID] = struct{}{}
}

// Leave removes the connection from the room.
func (r *Router) Leave(roomID string, conn *Connection) {
	r.mu.Lock()
	r.leaveLocked(roomID, conn.ID)
	r.mu.Unlock()
}

// Broadcast writes payload to every member of the room and returns the
// number of successful deliveries.
func (r *Router) Broadcast(roomID string, payload []byte) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	delivered := 0
	for _, conn := range r.rooms[roomID] {
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// Close terminates all tracked connections and clears router state.
func (r *Router) Close() {
	r.mu.Lock()
	conns := make([]*Connection, 0, len(r.conns))
	for _, conn := range r.conns {
		conns = append(conns, conn)
	}
	r.conns = make(map[string]*Connection)
	r.rooms = make(map[string]map[string]*Connection)
	r.connRooms = make(map[string]map[string]struct{})
	r.mu.Unlock()

	for _, conn := range conns {
		conn.Close(websocket.CloseGoingAway, "gateway shutdown")
	}
}

func (r *Router) leaveLocked(roomID string, connID string) {
	room := r.rooms[roomID]
	if room == nil {
		return
	}
	delete(room, connID)
	if len(room) == 0 {
		delete(r.rooms, roomID)
	}
	if memberships, ok := r.connRooms[connID]; ok {
		delete(memberships, roomID)
	}
}
