package main

import (
	"sync"
	"time"
)

// Room is a set of clients sharing a signaling namespace. Membership and
// lastActivity are guarded by the room's own mutex; the hub mutex is
// always taken first when both are held.
type Room struct {
	id string

	mu           sync.RWMutex
	members      map[string]*Client // keyed by peerID
	lastActivity time.Time

	// Set once at creation, immutable afterwards. passwordHash is a
	// bcrypt hash of the room password; the original design compared
	// plaintext, which is deliberately not preserved.
	passwordProtected bool
	passwordHash      []byte
}

func NewRoom(id string, passwordHash []byte) *Room {
	return &Room{
		id:                id,
		members:           make(map[string]*Client),
		lastActivity:      time.Now(),
		passwordProtected: len(passwordHash) > 0,
		passwordHash:      passwordHash,
	}
}

func (r *Room) Add(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[c.peerID] = c
	r.lastActivity = time.Now()
}

func (r *Room) Remove(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, c.peerID)
	r.lastActivity = time.Now()
}

// Member returns the client registered under peerID, or nil.
func (r *Room) Member(peerID string) *Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.members[peerID]
}

func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (r *Room) LastActivity() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastActivity
}

func (r *Room) Touch() {
	r.mu.Lock()
	r.lastActivity = time.Now()
	r.mu.Unlock()
}

// PeersExcept snapshots {peerId, peerName} for every member other than
// the given peer. Used for the room-joined roster.
func (r *Room) PeersExcept(peerID string) []peerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	peers := make([]peerInfo, 0, len(r.members))
	for id, m := range r.members {
		if id == peerID {
			continue
		}
		peers = append(peers, peerInfo{PeerID: id, PeerName: m.Name()})
	}
	return peers
}

// Broadcast enqueues an envelope for every member except excludePeerID.
func (r *Room) Broadcast(excludePeerID string, msg outbound) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastActivity = time.Now()
	for id, m := range r.members {
		if id == excludePeerID {
			continue
		}
		m.Enqueue(msg)
	}
}

// EachMember calls fn for every member. Used by the reaper's idle scan.
func (r *Room) EachMember(fn func(*Client)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.members {
		fn(m)
	}
}

func (r *Room) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		m.Terminate()
	}
}
