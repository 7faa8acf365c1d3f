package main

import "encoding/json"

// Inbound message types the router understands. Anything else is treated
// as an opaque signaling message and relayed without interpretation.
const (
	msgPing           = "ping"
	msgCreateRoom     = "create-room"
	msgJoinRoom       = "join-room"
	msgUpdateNickname = "update-nickname"
)

// Outbound message types.
const (
	msgPong               = "pong"
	msgError              = "error"
	msgRoomJoined         = "room-joined"
	msgPeerJoined         = "peer-joined"
	msgPeerLeft           = "peer-left"
	msgNicknameUpdated    = "nickname-updated"
	msgNicknameSelfUpdate = "nickname-self-updated"
)

// Envelope is the wire shape of every inbound frame. The payload stays
// raw: only the handlers that need fields out of it decode it, and the
// relay path forwards it untouched apart from the senderPeerId stamp.
type Envelope struct {
	Type    string          `json:"type"`
	RoomID  string          `json:"roomId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// createRoomRequest is the payload of create-room and join-room frames.
type createRoomRequest struct {
	RequestedRoomID string `json:"requestedRoomId"`
	Password        string `json:"password"`
}

type nicknameRequest struct {
	NewNickname string `json:"newNickname"`
}

type peerInfo struct {
	PeerID   string `json:"peerId"`
	PeerName string `json:"peerName"`
}

type roomJoinedPayload struct {
	SelfID   string     `json:"selfId"`
	SelfName string     `json:"selfName"`
	Peers    []peerInfo `json:"peers"`
	RoomID   string     `json:"roomId"`
}

type nicknameUpdatedPayload struct {
	PeerID      string `json:"peerId"`
	NewNickname string `json:"newNickname"`
}

type nicknameSelfPayload struct {
	NewNickname string `json:"newNickname"`
}
