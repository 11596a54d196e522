package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix prefixes the rate limit environment variables.
const EnvPrefix = "ATS_RATE_LIMIT_"

// Rule limits one method and path. Paths match exactly.
type Rule struct {
	Method string
	Path   string
	Limit  int           // Requests per Window; 0 or less means unlimited
	Window time.Duration
	Burst  int           // Bucket capacity; defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration // How often idle buckets are swept; 0 disables the sweeper
	IdleTTL         time.Duration // Buckets unused for this long are dropped
	Allowlist       map[string]bool
	Denylist        map[string]bool
	Rules           []Rule
}

// DefaultRules limits the analysis endpoints, which parse uploads, more
// tightly than reads. Health checks are never limited.
func DefaultRules() []Rule {
	return []Rule{
		{Method: "POST", Path: "/analyze", Limit: 120, Window: time.Minute, Burst: 20},
		{Method: "POST", Path: "/analyze/upload", Limit: 30, Window: time.Minute, Burst: 5},
		{Method: "POST", Path: "/", Limit: 30, Window: time.Minute, Burst: 5},
		{Method: "GET", Path: "/health", Limit: 0},
	}
}

// LoadConfig builds the configuration from ATS_RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	cfg := &Config{
		Enabled:         envBool(EnvPrefix+"ENABLED", true),
		DefaultLimit:    envInt(EnvPrefix+"DEFAULT_LIMIT", 600),
		DefaultWindow:   envDuration(EnvPrefix+"DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration(EnvPrefix+"CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         envDuration(EnvPrefix+"IDLE_TTL", time.Hour),
		Allowlist:       parseIPList(os.Getenv(EnvPrefix + "ALLOWLIST")),
		Denylist:        parseIPList(os.Getenv(EnvPrefix + "DENYLIST")),
		Rules:           DefaultRules(),
	}
	return cfg
}

// rule returns the rule for method and path, falling back to the default limit.
func (c *Config) rule(method, path string) Rule {
	for _, r := range c.Rules {
		if r.Method == method && r.Path == path {
			return r
		}
	}
	return Rule{Method: method, Path: path, Limit: c.DefaultLimit, Window: c.DefaultWindow}
}

func envInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
