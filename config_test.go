package main

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.PeerIdleTimeout != 10*time.Minute {
		t.Errorf("PeerIdleTimeout = %v, want 10m", cfg.PeerIdleTimeout)
	}
	if cfg.RoomIdleTimeout != 15*time.Minute {
		t.Errorf("RoomIdleTimeout = %v, want 15m", cfg.RoomIdleTimeout)
	}
	if cfg.SweepInterval != 30*time.Second {
		t.Errorf("SweepInterval = %v, want 30s", cfg.SweepInterval)
	}
	if cfg.RoomIdleTimeout <= cfg.PeerIdleTimeout {
		t.Error("room idle threshold should exceed the peer threshold by default")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RELAY_ADDR", ":9999")
	t.Setenv("RELAY_PEER_IDLE_TIMEOUT", "90s")
	t.Setenv("RELAY_MAX_MESSAGE_SIZE", "1024")

	cfg := LoadConfig()

	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Addr)
	}
	if cfg.PeerIdleTimeout != 90*time.Second {
		t.Errorf("PeerIdleTimeout = %v, want 90s", cfg.PeerIdleTimeout)
	}
	if cfg.MaxMessageSize != 1024 {
		t.Errorf("MaxMessageSize = %d, want 1024", cfg.MaxMessageSize)
	}
}

func TestLoadConfig_BadValuesFallBack(t *testing.T) {
	t.Setenv("RELAY_SWEEP_INTERVAL", "not-a-duration")
	t.Setenv("RELAY_MAX_MESSAGE_SIZE", "lots")

	cfg := LoadConfig()

	if cfg.SweepInterval != 30*time.Second {
		t.Errorf("SweepInterval = %v, want default 30s", cfg.SweepInterval)
	}
	if cfg.MaxMessageSize != 65536 {
		t.Errorf("MaxMessageSize = %d, want default 65536", cfg.MaxMessageSize)
	}
}
