package main

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr            string
	TLSCert         string
	TLSKey          string
	MetricsAddr     string
	MaxMessageSize  int64
	PeerIdleTimeout time.Duration
	RoomIdleTimeout time.Duration
	SweepInterval   time.Duration
	RateLimitPerIP  float64
}

func LoadConfig() *Config {
	return &Config{
		Addr:            envStr("RELAY_ADDR", ":8080"),
		TLSCert:         envStr("RELAY_TLS_CERT", ""),
		TLSKey:          envStr("RELAY_TLS_KEY", ""),
		MetricsAddr:     envStr("RELAY_METRICS_ADDR", ""),
		MaxMessageSize:  int64(envInt("RELAY_MAX_MESSAGE_SIZE", 65536)),
		PeerIdleTimeout: envDur("RELAY_PEER_IDLE_TIMEOUT", 10*time.Minute),
		RoomIdleTimeout: envDur("RELAY_ROOM_IDLE_TIMEOUT", 15*time.Minute),
		SweepInterval:   envDur("RELAY_SWEEP_INTERVAL", 30*time.Second),
		RateLimitPerIP:  float64(envInt("RELAY_RATE_LIMIT_PER_IP", 20)),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// envDur accepts Go duration syntax ("90s", "10m").
func envDur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
