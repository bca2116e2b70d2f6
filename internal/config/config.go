package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Cache    CacheConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
	RateLimit       float64
	RateBurst       int
}

type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// DSN returns the connection string handed to the pool.
func (c *DatabaseConfig) DSN() string {
	return c.URL
}

type AuthConfig struct {
	JWTSecret     string
	JWTIssuer     string
	JWTExpiry     time.Duration
	WebhookSecret string
}

type CacheConfig struct {
	TTL time.Duration
}

func Load() (*Config, error) {
	config := &Config{}

	config.Server.Port = os.Getenv("PORT")
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	config.Server.ShutdownTimeout = 10 * time.Second
	if val := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.Server.ShutdownTimeout = time.Duration(parsed) * time.Second
		} else {
			fmt.Fprintf(os.Stderr, "Warning: Invalid SHUTDOWN_TIMEOUT_SECONDS value '%s', using default\n", val)
		}
	}

	config.Server.RateLimit = 20
	if val := os.Getenv("RATE_LIMIT_PER_SECOND"); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			config.Server.RateLimit = parsed
		} else {
			fmt.Fprintf(os.Stderr, "Warning: Invalid RATE_LIMIT_PER_SECOND value '%s', using default\n", val)
		}
	}

	config.Server.RateBurst = 40
	if val := os.Getenv("RATE_LIMIT_BURST"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.Server.RateBurst = parsed
		} else {
			fmt.Fprintf(os.Stderr, "Warning: Invalid RATE_LIMIT_BURST value '%s', using default\n", val)
		}
	}

	config.Database.URL = os.Getenv("DATABASE_URL")

	config.Database.MaxConns = 10
	if val := os.Getenv("DB_MAX_CONNS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.Database.MaxConns = parsed
		} else {
			fmt.Fprintf(os.Stderr, "Warning: Invalid DB_MAX_CONNS value '%s', using default\n", val)
		}
	}

	config.Database.MinConns = 2
	if val := os.Getenv("DB_MIN_CONNS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.Database.MinConns = parsed
		} else {
			fmt.Fprintf(os.Stderr, "Warning: Invalid DB_MIN_CONNS value '%s', using default\n", val)
		}
	}

	config.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	config.Auth.JWTIssuer = os.Getenv("JWT_ISSUER")
	if config.Auth.JWTIssuer == "" {
		config.Auth.JWTIssuer = "scope-service"
	}
	config.Auth.JWTExpiry = 24 * time.Hour
	if val := os.Getenv("JWT_EXPIRY_HOURS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.Auth.JWTExpiry = time.Duration(parsed) * time.Hour
		} else {
			fmt.Fprintf(os.Stderr, "Warning: Invalid JWT_EXPIRY_HOURS value '%s', using default\n", val)
		}
	}

	config.Auth.WebhookSecret = os.Getenv("IDENTITY_WEBHOOK_SECRET")

	config.Cache.TTL = 5 * time.Minute
	if val := os.Getenv("CACHE_TTL_SECONDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.Cache.TTL = time.Duration(parsed) * time.Second
		} else {
			fmt.Fprintf(os.Stderr, "Warning: Invalid CACHE_TTL_SECONDS value '%s', using default\n", val)
		}
	}

	if config.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	if config.Auth.WebhookSecret == "" {
		return nil, fmt.Errorf("IDENTITY_WEBHOOK_SECRET must be set")
	}

	return config, nil
}
