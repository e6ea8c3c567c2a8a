package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig overrides the default limit for one route and method.
// A Path ending in "/" matches every path below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int // bucket size; Limit when 0
}

// DefaultConfig allows 1000 requests a minute per client and endpoint.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
	}
}

// LoadConfig reads RATE_LIMIT_* variables over DefaultConfig and the
// endpoint table. Unparseable values are ignored.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	if v, ok := lookup("RATE_LIMIT_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil && !b {
			return &Config{}
		}
	}

	if v, ok := lookup("RATE_LIMIT_DEFAULT_LIMIT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DefaultLimit = n
		}
	}
	if v, ok := lookup("RATE_LIMIT_DEFAULT_WINDOW"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.DefaultWindow = d
		}
	}
	if v, ok := lookup("RATE_LIMIT_CLEANUP_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CleanupInterval = d
		}
	}
	if v, ok := lookup("RATE_LIMIT_WHITELIST"); ok {
		cfg.Whitelist = clientSet(v)
	}
	if v, ok := lookup("RATE_LIMIT_BLACKLIST"); ok {
		cfg.Blacklist = clientSet(v)
	}
	cfg.EndpointConfigs = DefaultEndpointConfigs()

	return cfg
}

// DefaultEndpointConfigs limits the routes that call the model or fetch
// remote content. Context reads use the default limit.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/answer/generate", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/speech/transcribe", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/resume/upload", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/api/job/add", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}
