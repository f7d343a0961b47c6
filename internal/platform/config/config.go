package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends understood by cmd/server.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Storage selects the record store backend.
type Storage struct {
	Backend     string `yaml:"backend"`
	PostgresDSN string `yaml:"postgres_dsn"`
	SQLitePath  string `yaml:"sqlite_path"`
}

// RedisConfig configures the shared redis client.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	KeyPrefix    string        `yaml:"key_prefix"`
}

// Auth holds the bearer token verification settings.
type Auth struct {
	JWTSigningKey string `yaml:"jwt_signing_key"`
	Issuer        string `yaml:"issuer"`
	Audience      string `yaml:"audience"`
}

// Advisory configures the external hazard analysis gateway.
// An empty APIKey disables the gateway.
type Advisory struct {
	APIKey            string        `yaml:"api_key"`
	BaseURL           string        `yaml:"base_url"`
	Model             string        `yaml:"model"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

// RateLimit bounds requests per caller on authenticated routes. Callers are
// keyed by user id.
type RateLimit struct {
	Enabled        bool `yaml:"enabled"`
	ReadPerMinute  int  `yaml:"read_per_minute"`
	WritePerMinute int  `yaml:"write_per_minute"`
}

// Dashboard carries inputs the engine reports but does not compute.
type Dashboard struct {
	TrainingCompliance *float64 `yaml:"training_compliance"`
	DaysSinceIncident  *int     `yaml:"days_since_incident"`
}

// Log selects the slog handler.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the full server configuration.
type Config struct {
	Server    Server      `yaml:"server"`
	Storage   Storage     `yaml:"storage"`
	Redis     RedisConfig `yaml:"redis"`
	Auth      Auth        `yaml:"auth"`
	Advisory  Advisory    `yaml:"advisory"`
	RateLimit RateLimit   `yaml:"rate_limit"`
	Dashboard Dashboard   `yaml:"dashboard"`
	Log       Log         `yaml:"log"`
	Seed      bool        `yaml:"seed"`
}

// Default returns a config suitable for local development.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: Storage{
			Backend:    BackendMemory,
			SQLitePath: "frontier.db",
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			KeyPrefix:    "frontier",
		},
		Auth: Auth{
			// Use a default for development - should be overridden in production
			JWTSigningKey: "dev-secret-key-change-in-production",
			Issuer:        "frontier-auth",
		},
		Advisory: Advisory{
			Model:             "gpt-4o-mini",
			Timeout:           30 * time.Second,
			RequestsPerMinute: 20,
		},
		RateLimit: RateLimit{
			Enabled:        true,
			ReadPerMinute:  600,
			WritePerMinute: 60,
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// FromEnv builds the config from FRONTIER_CONFIG (if set) and then applies
// environment overrides so main stays lean.
func FromEnv() (*Config, error) {
	var c *Config
	if path := os.Getenv("FRONTIER_CONFIG"); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		c = loaded
	} else {
		d := Default()
		c = &d
	}

	setString(&c.Server.Addr, "FRONTIER_ADDR")
	setString(&c.Storage.Backend, "FRONTIER_STORAGE_BACKEND")
	setString(&c.Storage.PostgresDSN, "DATABASE_URL")
	setString(&c.Storage.SQLitePath, "FRONTIER_SQLITE_PATH")
	setString(&c.Redis.URL, "REDIS_URL")
	setString(&c.Auth.JWTSigningKey, "JWT_SIGNING_KEY")
	setString(&c.Auth.Issuer, "JWT_ISSUER")
	setString(&c.Auth.Audience, "JWT_AUDIENCE")
	setString(&c.Advisory.APIKey, "OPENAI_API_KEY")
	setString(&c.Advisory.BaseURL, "OPENAI_BASE_URL")
	setString(&c.Advisory.Model, "FRONTIER_ADVISORY_MODEL")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if v := os.Getenv("FRONTIER_TRAINING_COMPLIANCE"); v != "" {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("parse FRONTIER_TRAINING_COMPLIANCE: %w", err)
		}
		c.Dashboard.TrainingCompliance = &f
	}
	if v := os.Getenv("FRONTIER_DAYS_SINCE_INCIDENT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse FRONTIER_DAYS_SINCE_INCIDENT: %w", err)
		}
		c.Dashboard.DaysSinceIncident = &n
	}
	if v := os.Getenv("FRONTIER_RATE_LIMIT_ENABLED"); v != "" {
		c.RateLimit.Enabled = v == "true"
	}
	if v := os.Getenv("FRONTIER_SEED"); v != "" {
		c.Seed = v == "true"
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendSQLite:
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage backend %q requires a postgres dsn", c.Storage.Backend)
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("storage backend %q requires a redis url", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Auth.JWTSigningKey == "" {
		return fmt.Errorf("jwt signing key is required")
	}
	if tc := c.Dashboard.TrainingCompliance; tc != nil && (*tc < 0 || *tc > 100) {
		return fmt.Errorf("training compliance must be a percentage, got %v", *tc)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
