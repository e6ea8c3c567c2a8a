// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/interview-assistant/internal/session"
)

// Defaults applied after env and file values.
const (
	DefaultPort           = 3001
	DefaultMaxUploadBytes = 10 << 20
)

// Config holds settings loaded from the environment and an optional JSON file.
// Environment values win over file values, which win over defaults.
type Config struct {
	Port   int    `json:"port,omitempty"`
	APIKey string `json:"api_key,omitempty"` // Gemini API key

	// Sessions
	SessionBackend string `json:"session_backend,omitempty"` // memory, redis or postgres
	SessionTTL     string `json:"session_ttl,omitempty"`     // Go duration, e.g. "24h"; empty or "0s" disables expiry for memory
	RedisURL       string `json:"redis_url,omitempty"`       // redis:// URL or host:port
	RedisPassword  string `json:"redis_password,omitempty"`
	RedisDB        int    `json:"redis_db,omitempty"`
	DatabaseURL    string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// HTTP
	MaxUploadBytes int64    `json:"max_upload_bytes,omitempty"`
	CORSOrigins    []string `json:"cors_origins,omitempty"`

	Verbose bool `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables. Unset variables
// leave fields zero so they can be filled by MergeWithDefaults.
func FromEnv() *Config {
	return &Config{
		Port:           getEnvInt("PORT", 0),
		APIKey:         os.Getenv("GEMINI_API_KEY"),
		SessionBackend: os.Getenv("SESSION_BACKEND"),
		SessionTTL:     os.Getenv("SESSION_TTL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 0)),
		CORSOrigins:    splitList(os.Getenv("CORS_ORIGINS")),
	}
}

// Load merges the environment over an optional config file and the defaults,
// then validates the result.
func Load(path string) (*Config, error) {
	cfg := *FromEnv()
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = cfg.MergeWithDefaults(*file)
	}
	cfg = cfg.MergeWithDefaults(Defaults())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:           DefaultPort,
		SessionBackend: session.BackendMemory,
		MaxUploadBytes: DefaultMaxUploadBytes,
		CORSOrigins:    []string{"*"},
	}
}

// Validate checks that the configuration has valid values.
// The API key is not required here; commands that call the model check it.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config error: 'redis_db' must be non-negative")
	}
	if _, err := c.TTL(); err != nil {
		return err
	}

	switch c.SessionBackend {
	case "", session.BackendMemory:
	case session.BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config error: 'redis_url' is required for the redis session backend")
		}
	case session.BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres session backend")
		}
	default:
		return fmt.Errorf("config error: unknown session backend %q", c.SessionBackend)
	}

	return nil
}

// TTL parses SessionTTL. An empty value yields 0, the backend default.
func (c *Config) TTL() (time.Duration, error) {
	if c.SessionTTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return 0, fmt.Errorf("config error: invalid 'session_ttl' %q: %w", c.SessionTTL, err)
	}
	if ttl < 0 {
		return 0, fmt.Errorf("config error: 'session_ttl' must be non-negative")
	}
	return ttl, nil
}

// SessionConfig converts to the session package's configuration.
func (c *Config) SessionConfig() session.Config {
	ttl, _ := c.TTL()
	return session.Config{
		Backend:       c.SessionBackend,
		TTL:           ttl,
		RedisURL:      c.RedisURL,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		DatabaseURL:   c.DatabaseURL,
	}
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SessionBackend == "" {
		result.SessionBackend = defaults.SessionBackend
	}
	if result.SessionTTL == "" {
		result.SessionTTL = defaults.SessionTTL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.RedisPassword == "" {
		result.RedisPassword = defaults.RedisPassword
	}
	if result.RedisDB == 0 {
		result.RedisDB = defaults.RedisDB
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if len(result.CORSOrigins) == 0 {
		result.CORSOrigins = defaults.CORSOrigins
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitList(list string) []string {
	var result []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
