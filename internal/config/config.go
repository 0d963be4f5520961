package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

type SnapshotSource string

const (
	SnapshotSourceFile     SnapshotSource = "file"
	SnapshotSourcePostgres SnapshotSource = "postgres"
)

const (
	defaultPort     = 8123
	defaultCacheTTL = 5 * time.Minute
)

type Config struct {
	port               int
	sentryDSN          string
	snapshotSource     SnapshotSource
	snapshotPath       string
	dBConnectionString string
	allowedOrigins     []string
	cacheTTL           time.Duration
	env                environment
}

func (c *Config) Port() int {
	return c.port
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

func (c *Config) SnapshotSource() SnapshotSource {
	return c.snapshotSource
}

func (c *Config) SnapshotPath() string {
	return c.snapshotPath
}

func (c *Config) DBConnectionString() string {
	return c.dBConnectionString
}

// Domain suffixes allowed to make cross origin requests
func (c *Config) AllowedOrigins() []string {
	return append([]string(nil), c.allowedOrigins...)
}

func (c *Config) CacheTTL() time.Duration {
	return c.cacheTTL
}

func (c *Config) Environment() string {
	return string(c.env)
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf(
		"Config{env: %s, port: %d, snapshotSource: %s, cacheTTL: %s, ...}",
		string(c.env), c.port, string(c.snapshotSource), c.cacheTTL,
	)
}

func parseAllowedOrigins(raw string) []string {
	origins := []string{}
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}
	invalidValue := func(key, value string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s (%s)", ErrInvalidValue, key, value)
	}

	var env environment
	rawEnv, ok := os.LookupEnv("MEEPLESTATS_ENVIRONMENT")
	if !ok {
		return missingKey("MEEPLESTATS_ENVIRONMENT")
	}
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return invalidValue("MEEPLESTATS_ENVIRONMENT", rawEnv)
	}
	if string(env) == "" {
		panic("logic error: env is empty")
	}

	port := defaultPort
	if rawPort := os.Getenv("PORT"); rawPort != "" {
		parsed, err := strconv.Atoi(rawPort)
		if err != nil || parsed <= 0 || parsed > 65535 {
			return invalidValue("PORT", rawPort)
		}
		port = parsed
	}

	var snapshotSource SnapshotSource
	switch rawSource := os.Getenv("SNAPSHOT_SOURCE"); rawSource {
	case "", string(SnapshotSourceFile):
		snapshotSource = SnapshotSourceFile
	case string(SnapshotSourcePostgres):
		snapshotSource = SnapshotSourcePostgres
	default:
		return invalidValue("SNAPSHOT_SOURCE", rawSource)
	}

	cacheTTL := defaultCacheTTL
	if rawTTL := os.Getenv("CACHE_TTL"); rawTTL != "" {
		parsed, err := time.ParseDuration(rawTTL)
		if err != nil || parsed <= 0 {
			return invalidValue("CACHE_TTL", rawTTL)
		}
		cacheTTL = parsed
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	snapshotPath := os.Getenv("SNAPSHOT_PATH")
	dbConnectionString := os.Getenv("DB_CONNECTION_STRING")
	allowedOrigins := parseAllowedOrigins(os.Getenv("ALLOWED_ORIGINS"))

	if snapshotSource == SnapshotSourceFile && snapshotPath == "" {
		return missingKey("SNAPSHOT_PATH")
	}

	if env == production || env == staging {
		if sentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
		if snapshotSource == SnapshotSourcePostgres && dbConnectionString == "" {
			return missingKey("DB_CONNECTION_STRING")
		}
	}

	return Config{
		port:               port,
		sentryDSN:          sentryDSN,
		snapshotSource:     snapshotSource,
		snapshotPath:       snapshotPath,
		dBConnectionString: dbConnectionString,
		allowedOrigins:     allowedOrigins,
		cacheTTL:           cacheTTL,
		env:                env,
	}, nil
}
