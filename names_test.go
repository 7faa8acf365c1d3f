package main

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewPeerID(t *testing.T) {
	id := NewPeerID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("peer id %q is not a UUID: %v", id, err)
	}
	if id == NewPeerID() {
		t.Error("consecutive peer ids should differ")
	}
}

func TestNewRoomID(t *testing.T) {
	for i := 0; i < 10; i++ {
		id := NewRoomID()
		if len(id) != 12 {
			t.Errorf("room id %q should be 12 characters", id)
		}
	}
}

func TestGenerateDisplayName(t *testing.T) {
	for i := 0; i < 20; i++ {
		name := GenerateDisplayName()
		parts := strings.Split(name, " ")
		if len(parts) != 3 {
			t.Fatalf("name %q should be two words and a number", name)
		}
		n, err := strconv.Atoi(parts[2])
		if err != nil || n < 0 || n > 99 {
			t.Errorf("name %q should end in a number 0-99", name)
		}
	}
}
