package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
)

// Hub owns the room registry and routes every inbound envelope. It also
// runs the reaper that evicts idle peers and deletes abandoned rooms.
//
// Locking: hub.mu guards the rooms map and every client's room pointer.
// Room mutation (join, leave) happens with hub.mu held so that membership
// and the room pointers never diverge. hub.mu is always taken before any
// room's own mutex.
type Hub struct {
	cfg *Config

	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewHub(cfg *Config) *Hub {
	return &Hub{
		cfg:   cfg,
		rooms: make(map[string]*Room),
	}
}

// Run drives the reaper until ctx is cancelled, then closes every
// connection and drops all rooms.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.sweep(time.Now())
		}
	}
}

// Register starts the pumps for a freshly upgraded connection.
func (h *Hub) Register(c *Client) {
	log.Printf("peer %s (%s) connected from %s", c.Name(), c.peerID, c.ip)
	relayConnectionsActive.Inc()

	go c.ReadPump()
	go c.WritePump()
}

// Disconnect runs the leave path for a closed connection. Called exactly
// once, from the read pump's exit, whatever caused the closure.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	h.leaveLocked(c)
	h.mu.Unlock()

	c.closeSend()
	relayConnectionsActive.Dec()
	log.Printf("peer %s (%s) disconnected", c.Name(), c.peerID)
}

// HandleMessage decodes one inbound frame and dispatches it. All
// failures are reported to the sender only; the connection stays open.
func (h *Hub) HandleMessage(c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("invalid JSON from peer %s: %v", c.peerID, err)
		relayProtocolErrors.Inc()
		c.SendError("invalid JSON format")
		return
	}

	if env.RoomID == "" && env.Type != msgCreateRoom && env.Type != msgPing {
		relayProtocolErrors.Inc()
		c.SendError("room ID is required for this action")
		return
	}

	switch env.Type {
	case msgPing:
		c.Enqueue(outbound{Type: msgPong})
	case msgCreateRoom:
		h.handleCreateRoom(c, env)
	case msgJoinRoom:
		var req createRoomRequest
		if len(env.Payload) > 0 {
			_ = json.Unmarshal(env.Payload, &req)
		}
		h.join(c, env.RoomID, req.Password)
	case msgUpdateNickname:
		h.handleNickname(c, env)
	default:
		h.relay(c, env)
	}
}

func (h *Hub) handleCreateRoom(c *Client, env Envelope) {
	var req createRoomRequest
	if len(env.Payload) > 0 {
		_ = json.Unmarshal(env.Payload, &req)
	}

	id := req.RequestedRoomID
	if id == "" {
		id = NewRoomID()
	}

	// Hash outside the registry lock; bcrypt is slow on purpose.
	hash, err := HashRoomPassword(req.Password)
	if err != nil {
		relayProtocolErrors.Inc()
		c.SendError("invalid room password")
		return
	}

	h.mu.Lock()
	if _, exists := h.rooms[id]; exists {
		h.mu.Unlock()
		relayProtocolErrors.Inc()
		c.SendError(fmt.Sprintf("room %s already exists", id))
		return
	}
	room := NewRoom(id, hash)
	h.rooms[id] = room
	log.Printf("room %s created by peer %s (protected=%t)", id, c.peerID, room.passwordProtected)
	relayRoomsActive.Inc()

	h.joinLocked(c, room)
	h.mu.Unlock()
}

// join implements the join protocol: not-found check, password gate,
// implicit leave of the previous room, then membership plus the
// room-joined / peer-joined notifications.
func (h *Hub) join(c *Client, roomID, attempt string) {
	h.mu.RLock()
	room := h.rooms[roomID]
	h.mu.RUnlock()

	if room == nil {
		relayProtocolErrors.Inc()
		c.SendError(fmt.Sprintf("room %s does not exist", roomID))
		return
	}
	// Password fields are immutable, so the check can run unlocked.
	if room.passwordProtected && !CheckRoomPassword(room.passwordHash, attempt) {
		relayProtocolErrors.Inc()
		c.SendError(fmt.Sprintf("incorrect password for room %s", roomID))
		return
	}

	h.mu.Lock()
	// The reaper may have deleted the room between the lookup and here.
	if h.rooms[roomID] != room {
		h.mu.Unlock()
		relayProtocolErrors.Inc()
		c.SendError(fmt.Sprintf("room %s does not exist", roomID))
		return
	}
	h.joinLocked(c, room)
	h.mu.Unlock()
}

func (h *Hub) joinLocked(c *Client, room *Room) {
	if c.room != nil {
		h.leaveLocked(c)
	}

	room.Add(c)
	c.room = room

	name := c.Name()
	c.Enqueue(outbound{Type: msgRoomJoined, Payload: roomJoinedPayload{
		SelfID:   c.peerID,
		SelfName: name,
		Peers:    room.PeersExcept(c.peerID),
		RoomID:   room.id,
	}})
	room.Broadcast(c.peerID, outbound{Type: msgPeerJoined, Payload: peerInfo{
		PeerID:   c.peerID,
		PeerName: name,
	}})
	log.Printf("peer %s (%s) joined room %s", name, c.peerID, room.id)
}

// leaveLocked removes c from its current room, if any, and tells the
// remaining members. It never deletes the room: emptiness is handled by
// the reaper so a room survives a grace period for quick reconnects.
func (h *Hub) leaveLocked(c *Client) {
	room := c.room
	if room == nil {
		return
	}

	name := c.Name()
	room.Remove(c)
	room.Broadcast(c.peerID, outbound{Type: msgPeerLeft, Payload: peerInfo{
		PeerID:   c.peerID,
		PeerName: name,
	}})
	c.room = nil
	log.Printf("peer %s (%s) left room %s", name, c.peerID, room.id)
}

func (h *Hub) handleNickname(c *Client, env Envelope) {
	var req nicknameRequest
	if len(env.Payload) > 0 {
		_ = json.Unmarshal(env.Payload, &req)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	room := c.room
	if room == nil || room.id != env.RoomID {
		// Stale client talking about a room it isn't in.
		return
	}

	c.SetName(req.NewNickname)
	room.Broadcast(c.peerID, outbound{Type: msgNicknameUpdated, Payload: nicknameUpdatedPayload{
		PeerID:      c.peerID,
		NewNickname: req.NewNickname,
	}})
	c.Enqueue(outbound{Type: msgNicknameSelfUpdate, Payload: nicknameSelfPayload{
		NewNickname: req.NewNickname,
	}})
}

// relay forwards an opaque envelope. With a valid targetPeerId in the
// payload it goes to that one member, otherwise to everyone but the
// sender. Non-members are dropped silently: a stale client, not a fault.
func (h *Hub) relay(c *Client, env Envelope) {
	h.mu.RLock()
	room := c.room
	h.mu.RUnlock()

	if room == nil || room.id != env.RoomID {
		return
	}

	payload := map[string]any{}
	if len(env.Payload) > 0 {
		_ = json.Unmarshal(env.Payload, &payload)
	}
	target, _ := payload["targetPeerId"].(string)
	payload["senderPeerId"] = c.peerID

	msg := outbound{Type: env.Type, Payload: payload}
	relayMessagesRelayed.Inc()

	if target != "" {
		if tc := room.Member(target); tc != nil {
			tc.Enqueue(msg)
			room.Touch()
			return
		}
	}
	room.Broadcast(c.peerID, msg)
}

// sweep is one reaper pass: terminate idle peers, then delete rooms that
// have been empty past the room idle threshold. Peer eviction only closes
// the transport; removal happens through the ordinary disconnect path, so
// a room emptied by eviction is deleted no earlier than the next sweep.
func (h *Hub) sweep(now time.Time) {
	h.mu.RLock()
	snapshot := make([]*Room, 0, len(h.rooms))
	for _, room := range h.rooms {
		snapshot = append(snapshot, room)
	}
	h.mu.RUnlock()

	for _, room := range snapshot {
		room.EachMember(func(c *Client) {
			if now.Sub(c.LastActive()) > h.cfg.PeerIdleTimeout {
				log.Printf("evicting idle peer %s from room %s", c.peerID, room.id)
				relayPeersEvicted.Inc()
				c.Terminate()
			}
		})
	}

	h.mu.Lock()
	for id, room := range h.rooms {
		if room.MemberCount() == 0 && now.Sub(room.LastActivity()) > h.cfg.RoomIdleTimeout {
			delete(h.rooms, id)
			relayRoomsActive.Dec()
			relayRoomsReaped.Inc()
			log.Printf("room %s reaped (empty past idle threshold)", id)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, room := range h.rooms {
		room.CloseAll()
	}
	h.rooms = make(map[string]*Room)
	relayRoomsActive.Set(0)
}

// LookupRoom returns the registered room or nil.
func (h *Hub) LookupRoom(id string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[id]
}

func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}
