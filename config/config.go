package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Config holds the application configuration settings.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Gateway       GatewayConfig       `yaml:"gateway"`
	Events        EventsConfig        `yaml:"events"`
	Transfer      TransferConfig      `yaml:"transfer"`
	Membership    MembershipConfig    `yaml:"membership"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL      string `yaml:"url"`
	NkeySeed string `yaml:"nkey_seed"`
}

// HTTPConfig holds the ops/read API server configuration.
type HTTPConfig struct {
	Address   string `yaml:"address"` // empty disables the HTTP server
	JWTSecret string `yaml:"jwt_secret"`
}

// GatewayConfig holds tunables for the platform gateway client.
type GatewayConfig struct {
	// BotUserID is the gateway bot account; provisioned channels carry an
	// explicit overwrite for it.
	BotUserID      sharedtypes.UserID `yaml:"bot_user_id"`
	RequestTimeout time.Duration      `yaml:"request_timeout"`
	RequestsPerSec float64            `yaml:"requests_per_sec"`
	Burst          int                `yaml:"burst"`
}

// EventsConfig holds event-workflow policy knobs.
type EventsConfig struct {
	// CountPendingPaymentTowardCapacity controls whether a fee-bearing
	// registration occupies a capacity slot before payment verification.
	CountPendingPaymentTowardCapacity bool `yaml:"count_pending_payment_toward_capacity"`
}

// TransferConfig holds presidency-transfer policy knobs.
type TransferConfig struct {
	// PendingTTL is how long an owner-approval transfer request may stay
	// pending before the sweep expires it.
	PendingTTL time.Duration `yaml:"pending_ttl"`
}

// MembershipConfig holds membership-workflow policy knobs.
type MembershipConfig struct {
	MinInterestReasonLength int `yaml:"min_interest_reason_length"`
}

// ObservabilityConfig holds observability settings.
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	TracingEnabled bool   `yaml:"tracing_enabled"`
}

// LoadConfig loads configuration from a YAML file, falling back to and
// overridden by environment variables.
func LoadConfig(filename string) (*Config, error) {
	cfg := defaults()

	if data, err := os.ReadFile(filename); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres DSN not set (postgres.dsn or DATABASE_URL)")
	}
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS URL not set (nats.url or NATS_URL)")
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Gateway: GatewayConfig{
			RequestTimeout: 5 * time.Second,
			RequestsPerSec: 25,
			Burst:          10,
		},
		Events: EventsConfig{
			CountPendingPaymentTowardCapacity: true,
		},
		Transfer: TransferConfig{
			PendingTTL: 72 * time.Hour,
		},
		Membership: MembershipConfig{
			MinInterestReasonLength: 20,
		},
		Observability: ObservabilityConfig{
			Environment: "development",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("NATS_NKEY_SEED"); v != "" {
		cfg.NATS.NkeySeed = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.HTTP.JWTSecret = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("TRACING_ENABLED"); v != "" {
		cfg.Observability.TracingEnabled = v == "true"
	}
	if v := os.Getenv("BOT_USER_ID"); v != "" {
		cfg.Gateway.BotUserID = sharedtypes.UserID(v)
	}
	if v := os.Getenv("GATEWAY_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Gateway.RequestTimeout = d
		}
	}
	if v := os.Getenv("GATEWAY_REQUESTS_PER_SEC"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Gateway.RequestsPerSec = f
		}
	}
	if v := os.Getenv("COUNT_PENDING_PAYMENT_TOWARD_CAPACITY"); v != "" {
		cfg.Events.CountPendingPaymentTowardCapacity = v == "true"
	}
	if v := os.Getenv("TRANSFER_PENDING_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Transfer.PendingTTL = d
		}
	}
	if v := os.Getenv("MIN_INTEREST_REASON_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Membership.MinInterestReasonLength = n
		}
	}
}
