// E2E test: runs two WebSocket clients through a live relay — create a
// room, join it, exchange a targeted offer and a broadcast candidate.
// Usage: go run ./cmd/e2etest -relay ws://localhost:8080/
package main

import (
	"encoding/json"
	"flag"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

var (
	relayURL = flag.String("relay", "ws://localhost:8080/", "relay WebSocket URL")
	password = flag.String("password", "", "optional room password")
)

type envelope struct {
	Type    string         `json:"type"`
	RoomID  string         `json:"roomId,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	log.Println(">> Connecting host...")
	host := dial(*relayURL)
	defer host.Close()

	log.Println(">> Creating room...")
	send(host, envelope{Type: "create-room", Payload: map[string]any{"password": *password}})
	joined := expect(host, "room-joined")
	roomID, _ := joined["roomId"].(string)
	hostID, _ := joined["selfId"].(string)
	log.Printf("   Room %s created, host peer %s ✓", roomID, hostID)

	log.Println(">> Connecting guest...")
	guest := dial(*relayURL)
	defer guest.Close()

	send(guest, envelope{Type: "join-room", RoomID: roomID, Payload: map[string]any{"password": *password}})
	guestJoined := expect(guest, "room-joined")
	guestID, _ := guestJoined["selfId"].(string)
	expect(host, "peer-joined")
	log.Printf("   Guest %s joined ✓", guestID)

	log.Println(">> Targeted offer host -> guest...")
	send(host, envelope{Type: "offer", RoomID: roomID, Payload: map[string]any{
		"targetPeerId": guestID,
		"sdp":          "v=0 fake-offer",
	}})
	offer := expect(guest, "offer")
	if offer["senderPeerId"] != hostID {
		log.Fatalf("offer senderPeerId = %v, want %s", offer["senderPeerId"], hostID)
	}
	log.Println("   Offer relayed ✓")

	log.Println(">> Broadcast candidate guest -> room...")
	send(guest, envelope{Type: "ice-candidate", RoomID: roomID, Payload: map[string]any{
		"candidate": "candidate:0 1 UDP 1 127.0.0.1 9 typ host",
	}})
	expect(host, "ice-candidate")
	log.Println("   Candidate relayed ✓")

	log.Println(">> Ping...")
	send(host, envelope{Type: "ping"})
	expect(host, "pong")
	log.Println("   Pong ✓")

	log.Println("E2E PASSED")
}

func dial(url string) *websocket.Conn {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Fatalf("dial %s: %v", url, err)
	}
	return conn
}

func send(conn *websocket.Conn, env envelope) {
	if err := conn.WriteJSON(env); err != nil {
		log.Fatal("write:", err)
	}
}

// expect reads frames until one of the wanted type arrives, and returns
// its payload. Anything else within the deadline is logged and skipped.
func expect(conn *websocket.Conn, wantType string) map[string]any {
	deadline := time.Now().Add(5 * time.Second)
	_ = conn.SetReadDeadline(deadline)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("waiting for %q: %v", wantType, err)
		}
		var msg struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Fatalf("bad frame %s: %v", data, err)
		}
		if msg.Type != wantType {
			log.Printf("   (skipping %q)", msg.Type)
			continue
		}
		payload := map[string]any{}
		if len(msg.Payload) > 0 {
			_ = json.Unmarshal(msg.Payload, &payload)
		}
		return payload
	}
}
