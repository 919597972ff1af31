package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration. Stores and the audit pipeline
// are optional: an empty DSN, URL or broker list selects the in-memory
// fallback so the service runs without external infrastructure.
type Server struct {
	Addr          string
	JWTSigningKey string
	PostgresDSN   string
	RedisURL      string
	KafkaBrokers  []string
	AuditTopic    string
}

// AccountCacheTTL bounds how long restored account records may be served from
// the Redis cache before falling through to the primary store.
var AccountCacheTTL = 5 * time.Minute

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("IBANGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("IBANGATE_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	var brokers []string
	if raw := os.Getenv("IBANGATE_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	topic := os.Getenv("IBANGATE_AUDIT_TOPIC")
	if topic == "" {
		topic = "ibangate.audit"
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		PostgresDSN:   os.Getenv("IBANGATE_POSTGRES_DSN"),
		RedisURL:      os.Getenv("IBANGATE_REDIS_URL"),
		KafkaBrokers:  brokers,
		AuditTopic:    topic,
	}
}
