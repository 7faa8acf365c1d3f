package main

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

var nameAdjectives = []string{
	"Electric", "Blue", "Quick", "Silent", "Happy",
	"Green", "Fast", "Clever", "Brave", "Shiny",
	"Wise", "Gentle", "Red", "Cosmic", "Digital",
}

var nameNouns = []string{
	"Muffin", "Panda", "River", "Star", "Fox",
	"Cloud", "Tiger", "Ocean", "Lion", "Moon",
	"Robot", "Wizard", "Comet", "Galaxy", "Pixel",
}

// NewPeerID returns a fresh peer identifier. Uniqueness among live
// connections follows from UUIDv4 collision odds.
func NewPeerID() string {
	return uuid.NewString()
}

// NewRoomID returns a server-generated 12-character room id.
func NewRoomID() string {
	return uuid.NewString()[:12]
}

// GenerateDisplayName picks a two-word name plus a small number, e.g.
// "Cosmic Panda 42". No uniqueness guarantee; clients can rename anyway.
func GenerateDisplayName() string {
	adj := nameAdjectives[rand.Intn(len(nameAdjectives))]
	noun := nameNouns[rand.Intn(len(nameNouns))]
	return fmt.Sprintf("%s %s %d", adj, noun, rand.Intn(100))
}
