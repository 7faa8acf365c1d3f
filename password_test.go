package main

import "testing"

func TestHashRoomPassword_EmptyMeansOpen(t *testing.T) {
	hash, err := HashRoomPassword("")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash != nil {
		t.Error("empty password should produce no hash")
	}
	if !CheckRoomPassword(nil, "anything") {
		t.Error("no hash means every attempt passes")
	}
}

func TestCheckRoomPassword(t *testing.T) {
	hash, err := HashRoomPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if string(hash) == "hunter2" {
		t.Fatal("password must not be stored as plaintext")
	}

	if !CheckRoomPassword(hash, "hunter2") {
		t.Error("correct password should pass")
	}
	if CheckRoomPassword(hash, "hunter3") {
		t.Error("wrong password should fail")
	}
	if CheckRoomPassword(hash, "") {
		t.Error("empty attempt against a protected room should fail")
	}
}
