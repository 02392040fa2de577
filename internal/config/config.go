package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// BatchPolicy decides what happens to a batch containing an invalid transaction.
type BatchPolicy string

const (
	// PolicyDrop skips invalid transactions and keeps the rest.
	PolicyDrop BatchPolicy = "drop"
	// PolicyReject fails the whole batch on the first invalid transaction.
	PolicyReject BatchPolicy = "reject"
)

// Config holds the command configuration loaded from environment variables.
type Config struct {
	LogLevel            string
	LogFormat           string
	BatchPolicy         BatchPolicy
	GenerateEndToEndIDs bool
	IndentXML           bool
}

// Validate checks configuration values that have a closed set of options.
func (c Config) Validate() error {
	switch c.BatchPolicy {
	case PolicyDrop, PolicyReject:
		return nil
	default:
		return fmt.Errorf("BATCH_POLICY must be %q or %q, got %q", PolicyDrop, PolicyReject, c.BatchPolicy)
	}
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
		BatchPolicy:         BatchPolicy(strings.ToLower(getEnv("BATCH_POLICY", string(PolicyDrop)))),
		GenerateEndToEndIDs: getEnvBool("GENERATE_END_TO_END_ID", false),
		IndentXML:           getEnvBool("XML_INDENT", true),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
