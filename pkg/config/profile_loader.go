package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Rejean-McCormick/Ariane/pkg/auth"
)

// Profile is a deployment-specific configuration overlay loaded from
// YAML. Only set fields override the environment-derived config.
type Profile struct {
	Name      string `yaml:"name"`
	Addr      string `yaml:"addr"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	CORSOrigins []string `yaml:"cors_origins"`

	AuthHeader string `yaml:"auth_header"`

	RateLimit struct {
		RPS   int `yaml:"rps"`
		Burst int `yaml:"burst"`
	} `yaml:"rate_limit"`

	Capacity struct {
		MaxContexts              int `yaml:"max_contexts"`
		MaxStatesPerContext      int `yaml:"max_states_per_context"`
		MaxTransitionsPerContext int `yaml:"max_transitions_per_context"`
	} `yaml:"capacity"`

	Signing struct {
		Secret    string `yaml:"secret"`
		Algorithm string `yaml:"algorithm"`
	} `yaml:"signing"`

	APIKeys []auth.KeyConfig `yaml:"api_keys"`

	OTLPEndpoint string `yaml:"otlp_endpoint"`
	Environment  string `yaml:"environment"`
}

// LoadProfile reads and parses a profile YAML file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", path, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse profile %q: %w", path, err)
	}

	return &profile, nil
}

// Apply overlays the profile onto cfg. Zero values leave cfg untouched,
// except api_keys which replace the whole key table when present.
func (p *Profile) Apply(cfg *Config) {
	if p.Addr != "" {
		cfg.Addr = p.Addr
	}
	if p.LogLevel != "" {
		cfg.LogLevel = p.LogLevel
	}
	if p.LogFormat != "" {
		cfg.LogFormat = p.LogFormat
	}
	if p.AuthHeader != "" {
		cfg.AuthHeader = p.AuthHeader
	}
	if len(p.CORSOrigins) > 0 {
		cfg.CORSOrigins = p.CORSOrigins
	}
	if p.RateLimit.RPS > 0 {
		cfg.RateLimitRPS = p.RateLimit.RPS
	}
	if p.RateLimit.Burst > 0 {
		cfg.RateLimitBurst = p.RateLimit.Burst
	}
	if p.Capacity.MaxContexts > 0 {
		cfg.MaxContexts = p.Capacity.MaxContexts
	}
	if p.Capacity.MaxStatesPerContext > 0 {
		cfg.MaxStatesPerContext = p.Capacity.MaxStatesPerContext
	}
	if p.Capacity.MaxTransitionsPerContext > 0 {
		cfg.MaxTransitionsPerContext = p.Capacity.MaxTransitionsPerContext
	}
	if p.Signing.Secret != "" {
		cfg.SigningSecret = p.Signing.Secret
	}
	if p.Signing.Algorithm != "" {
		cfg.SigningAlgorithm = p.Signing.Algorithm
	}
	if len(p.APIKeys) > 0 {
		cfg.APIKeys = p.APIKeys
	}
	if p.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = p.OTLPEndpoint
	}
	if p.Environment != "" {
		cfg.Environment = p.Environment
	}
}
