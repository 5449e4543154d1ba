// shared/config/config.go
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// CommonConfig holds configuration fields shared by every service binary.
type CommonConfig struct {
	RedisAddrs              []string      // Redis server addresses (e.g., "redis-cluster:6379")
	RedisPassword           string        // Redis password for authentication
	HeartbeatInterval       time.Duration // How often to send a heartbeat to the registry (e.g., 5s)
	HeartbeatTTL            time.Duration // How long an instance is considered alive without a heartbeat (e.g., 15s)
	RegistryCleanupInterval time.Duration // How often the registrar cleans stale entries (e.g., 30s)
	ServiceIP               string        // The IP address this service advertises for registration
	ServicePort             int           // The port this service listens on, used for registration
	LogLevel                string        // debug, info, warn or error
	LogFile                 string        // Empty logs to stdout
}

// CardServiceConfig holds configuration specific to the card-service.
type CardServiceConfig struct {
	CommonConfig
	ListenAddr      string        // Address for the HTTP server, built from PORT (e.g., ":3000")
	LichessBaseURL  string        // Upstream API root (e.g., "https://lichess.org")
	UpstreamTimeout time.Duration // Timeout for a single upstream profile fetch
	DefaultVariant  string        // Card layout used when the request has no ?variant=
	RegistryEnabled bool          // Heartbeat this instance into the Redis service registry

	MongoDBConnStr           string // Empty disables the lookup audit log
	MongoDBDatabase          string
	MongoDBLookupsCollection string
}

// LoadCommonConfig loads common configuration from environment variables.
func LoadCommonConfig() (CommonConfig, error) {
	cfg := CommonConfig{}
	var err error

	redisAddrsStr := os.Getenv("REDIS_ADDRS")
	if redisAddrsStr == "" {
		cfg.RedisAddrs = []string{"localhost:6379"}
	} else {
		for _, addr := range strings.Split(redisAddrsStr, ",") {
			if trimmed := strings.TrimSpace(addr); trimmed != "" {
				cfg.RedisAddrs = append(cfg.RedisAddrs, trimmed)
			}
		}
	}
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	cfg.HeartbeatInterval, err = getDuration("SERVICE_HEARTBEAT_INTERVAL", 5*time.Second)
	if err != nil {
		return cfg, err
	}
	cfg.HeartbeatTTL, err = getDuration("SERVICE_HEARTBEAT_TTL", 15*time.Second)
	if err != nil {
		return cfg, err
	}
	cfg.RegistryCleanupInterval, err = getDuration("SERVICE_REGISTRY_CLEANUP_INTERVAL", 30*time.Second)
	if err != nil {
		return cfg, err
	}

	cfg.ServiceIP = os.Getenv("POD_IP") // Injected by Kubernetes
	if cfg.ServiceIP == "" {
		cfg.ServiceIP = "0.0.0.0"
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFile = os.Getenv("LOG_FILE")

	return cfg, nil
}

// LoadCardServiceConfig loads configuration for the card-service.
// A .env file in the working directory is applied first if present.
func LoadCardServiceConfig() (*CardServiceConfig, error) {
	_ = godotenv.Load()

	common, err := LoadCommonConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load common config for card-service: %w", err)
	}

	cfg := &CardServiceConfig{
		CommonConfig:             common,
		ListenAddr:               ":" + getEnv("PORT", "3000"),
		LichessBaseURL:           strings.TrimRight(getEnv("LICHESS_BASE_URL", "https://lichess.org"), "/"),
		DefaultVariant:           getEnv("CARD_VARIANT", "compact"),
		MongoDBConnStr:           os.Getenv("MONGODB_CONN_STR"),
		MongoDBDatabase:          getEnv("MONGODB_DATABASE", "lichess_stats"),
		MongoDBLookupsCollection: getEnv("MONGODB_LOOKUPS_COLLECTION", "lookups"),
	}

	cfg.ServicePort, err = extractPort(cfg.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to extract port from PORT '%s': %w", cfg.ListenAddr, err)
	}
	cfg.UpstreamTimeout, err = getDuration("UPSTREAM_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.RegistryEnabled, err = getBool("REGISTRY_ENABLED", false)
	if err != nil {
		return nil, err
	}

	if cfg.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must be positive (got %s)", cfg.UpstreamTimeout)
	}
	if cfg.RegistryEnabled && len(cfg.RedisAddrs) == 0 {
		return nil, fmt.Errorf("REGISTRY_ENABLED requires at least one REDIS_ADDRS entry")
	}

	return cfg, nil
}

func getEnv(envKey, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	return defaultVal
}

// Helper function to parse duration from environment variable
func getDuration(envKey string, defaultVal time.Duration) (time.Duration, error) {
	valStr := os.Getenv(envKey)
	if valStr == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format for %s: %w", envKey, err)
	}
	return d, nil
}

func getBool(envKey string, defaultVal bool) (bool, error) {
	valStr := os.Getenv(envKey)
	if valStr == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("invalid boolean format for %s: %w", envKey, err)
	}
	return b, nil
}

// extractPort extracts the numeric port from a listen address (e.g., ":3000" -> 3000, "0.0.0.0:3000" -> 3000)
func extractPort(listenAddr string) (int, error) {
	_, portStr, err := net.SplitHostPort(listenAddr)
	if err != nil {
		if strings.HasPrefix(listenAddr, ":") {
			portStr = strings.TrimPrefix(listenAddr, ":")
		} else {
			return 0, fmt.Errorf("invalid ListenAddr format for port extraction: %w", err)
		}
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number '%s': %w", portStr, err)
	}
	if port < 0 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}
