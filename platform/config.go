package platform

import (
	"os"
	"strconv"
	"time"
)

// Config collects the runtime knobs of the mock service. Everything comes from
// environment variables (loaded from .env by main) with the original client's
// reference values as defaults.
type Config struct {
	Port         string
	AccessSecret string

	// Delivery simulation
	SimInterval    time.Duration
	SimMessageProb float64
	SimTypingProb  float64

	// Outgoing send simulation
	SendFailProb  float64
	SendDelayMin  time.Duration
	SendDelayMax  time.Duration

	// Number of scripted turns materialized when a chat is opened
	HistorySize int
}

func LoadConfig() Config {
	return Config{
		Port:           getEnv("PORT", "8000"),
		AccessSecret:   getEnv("ACCESS_SECRET", "mockchat-dev-secret"),
		SimInterval:    getEnvDuration("SIM_INTERVAL", 15*time.Second),
		SimMessageProb: getEnvFloat("SIM_MESSAGE_PROB", 0.2),
		SimTypingProb:  getEnvFloat("SIM_TYPING_PROB", 0.3),
		SendFailProb:   getEnvFloat("SEND_FAIL_PROB", 0.1),
		SendDelayMin:   getEnvDuration("SEND_DELAY_MIN", 300*time.Millisecond),
		SendDelayMax:   getEnvDuration("SEND_DELAY_MAX", 800*time.Millisecond),
		HistorySize:    getEnvInt("HISTORY_SIZE", 15),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		Logger.Warnf("invalid value for %s: %s, using default", key, v)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		Logger.Warnf("invalid value for %s: %s, using default", key, v)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		Logger.Warnf("invalid value for %s: %s, using default", key, v)
	}
	return fallback
}
