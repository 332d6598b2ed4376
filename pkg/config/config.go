package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/Rejean-McCormick/Ariane/pkg/auth"
)

// Config holds server configuration.
type Config struct {
	Addr      string
	LogLevel  string
	LogFormat string // "json" or "text"

	CORSOrigins []string

	AuthHeader string

	RateLimitRPS   int
	RateLimitBurst int

	MaxContexts              int
	MaxStatesPerContext      int
	MaxTransitionsPerContext int

	SigningSecret    string
	SigningAlgorithm string

	APIKeys []auth.KeyConfig

	OTLPEndpoint string
	Environment  string
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Addr:             ":8080",
		LogLevel:         "INFO",
		LogFormat:        "json",
		AuthHeader:       "X-API-Key",
		RateLimitRPS:     50,
		RateLimitBurst:   100,
		SigningAlgorithm: "sha256",
		Environment:      "development",
	}
}

// Load builds the configuration from ATLAS_* environment variables,
// then overlays the YAML profile named by ATLAS_PROFILE when set.
func Load() (*Config, error) {
	cfg := Default()

	cfg.Addr = envStr("ATLAS_ADDR", cfg.Addr)
	cfg.LogLevel = envStr("ATLAS_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envStr("ATLAS_LOG_FORMAT", cfg.LogFormat)
	cfg.AuthHeader = envStr("ATLAS_AUTH_HEADER", cfg.AuthHeader)
	cfg.Environment = envStr("ATLAS_ENVIRONMENT", cfg.Environment)

	if origins := os.Getenv("ATLAS_CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	cfg.RateLimitRPS = envInt("ATLAS_RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.RateLimitBurst = envInt("ATLAS_RATE_LIMIT_BURST", cfg.RateLimitBurst)

	cfg.MaxContexts = envInt("ATLAS_MAX_CONTEXTS", cfg.MaxContexts)
	cfg.MaxStatesPerContext = envInt("ATLAS_MAX_STATES_PER_CONTEXT", cfg.MaxStatesPerContext)
	cfg.MaxTransitionsPerContext = envInt("ATLAS_MAX_TRANSITIONS_PER_CONTEXT", cfg.MaxTransitionsPerContext)

	cfg.SigningSecret = envStr("ATLAS_SIGNING_SECRET", cfg.SigningSecret)
	cfg.SigningAlgorithm = envStr("ATLAS_SIGNING_ALGORITHM", cfg.SigningAlgorithm)

	// A single env-provided key gets admin scope. Richer key tables
	// come from ATLAS_API_KEYS or the profile file.
	if key := os.Getenv("ATLAS_API_KEY"); key != "" {
		cfg.APIKeys = append(cfg.APIKeys, auth.KeyConfig{
			Key:    key,
			ID:     "env",
			Scopes: []string{auth.ScopeAdmin},
		})
	}
	// ATLAS_API_KEYS holds comma-separated "id:key" or "id:key:scope|scope"
	// entries. Entries without scopes get read and write.
	if keys := os.Getenv("ATLAS_API_KEYS"); keys != "" {
		for _, entry := range strings.Split(keys, ",") {
			kc, ok := parseKeyEntry(strings.TrimSpace(entry))
			if !ok {
				continue
			}
			cfg.APIKeys = append(cfg.APIKeys, kc)
		}
	}

	cfg.OTLPEndpoint = envStr("ATLAS_OTLP_ENDPOINT", cfg.OTLPEndpoint)

	if path := os.Getenv("ATLAS_PROFILE"); path != "" {
		profile, err := LoadProfile(path)
		if err != nil {
			return nil, err
		}
		profile.Apply(cfg)
	}

	return cfg, nil
}

func parseKeyEntry(entry string) (auth.KeyConfig, bool) {
	parts := strings.SplitN(entry, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return auth.KeyConfig{}, false
	}
	kc := auth.KeyConfig{
		ID:     parts[0],
		Key:    parts[1],
		Scopes: []string{auth.ScopeRead, auth.ScopeWrite},
	}
	if len(parts) == 3 && parts[2] != "" {
		kc.Scopes = strings.Split(parts[2], "|")
	}
	return kc, true
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
