// Package config loads application configuration from environment variables
// (optionally seeded from a .env file). Configuration is read once at start
// up into immutable values that are passed to constructors.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DatabaseURL  string // go-sql-driver/mysql DSN
	SecretKey    string // secret used to sign access tokens
	Algorithm    string // HMAC signing algorithm (HS256, HS384, HS512)
	AccessTTLMin int    // access token time‑to‑live in minutes
	BcryptCost   int    // bcrypt cost for password hashing
	LogLevel     string // logrus level name
	LogFormat    string // "text" or "json"

	Cache  CacheConfig
	Redis  RedisConfig
	Events EventsConfig
}

// ErrMissingSecret is returned by Load when SECRET_KEY is unset.
var ErrMissingSecret = errors.New("missing required env var: SECRET_KEY")

// Load reads a .env file from the working directory when present and then
// builds a Config from the process environment. Variables already set in the
// environment win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config using lookup to read variables. SECRET_KEY is
// required; malformed integers are reported rather than silently defaulted.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	e := &env{lookup: lookup}
	cfg := Config{
		Env:          e.str("APP_ENV", "dev"),
		Port:         e.str("APP_PORT", "8000"),
		DatabaseURL:  e.str("DATABASE_URL", ""),
		SecretKey:    e.str("SECRET_KEY", ""),
		Algorithm:    strings.ToUpper(e.str("ALGORITHM", "HS256")),
		AccessTTLMin: e.integer("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		BcryptCost:   e.integer("BCRYPT_COST", 10),
		LogLevel:     e.str("LOG_LEVEL", "info"),
		LogFormat:    e.str("LOG_FORMAT", "text"),
		Cache:        loadCacheConfig(e),
		Redis:        loadRedisConfig(e),
		Events:       loadEventsConfig(e),
	}
	if cfg.SecretKey == "" {
		e.errs = append(e.errs, ErrMissingSecret)
	}
	if cfg.AccessTTLMin <= 0 {
		e.errs = append(e.errs, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %d", cfg.AccessTTLMin))
	}
	switch cfg.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		e.errs = append(e.errs, fmt.Errorf("unsupported ALGORITHM %q", cfg.Algorithm))
	}
	if len(e.errs) > 0 {
		return Config{}, errors.Join(e.errs...)
	}
	return cfg, nil
}

// RequireDatabase reports an error when no DSN is configured. Commands that
// touch the database call it; token-only tooling does not.
func (c Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return errors.New("missing required env var: DATABASE_URL")
	}
	return nil
}

// env wraps a lookup function and collects parse errors.
type env struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *env) str(key, def string) string {
	if v, ok := e.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (e *env) integer(key string, def int) int {
	s := e.str(key, "")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid int for %s: %q", key, s))
		return def
	}
	return n
}

func (e *env) boolean(key string, def bool) bool {
	switch strings.ToLower(e.str(key, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}
