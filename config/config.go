// Package config holds the service configuration and its loading logic.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mcuadros/go-defaults"
)

// envPrefix is the prefix for environment variable overrides
const envPrefix = "DOSSIER_"

// Config holds service configuration
type Config struct {
	// Server holds HTTP server settings
	Server Server `koanf:"server" json:"server"`
	// Scrape holds page fetching settings
	Scrape Scrape `koanf:"scrape" json:"scrape"`
	// Registry holds company registry client settings
	Registry Registry `koanf:"registry" json:"registry"`
	// Dossier holds dossier assembly limits
	Dossier Dossier `koanf:"dossier" json:"dossier"`
	// Slack holds Slack notification settings
	Slack Slack `koanf:"slack" json:"slack"`
}

// Server holds HTTP server settings
type Server struct {
	// Listen is the address and port the server binds to
	Listen string `koanf:"listen" json:"listen" default:":8080"`
	// Debug enables debug level logging
	Debug bool `koanf:"debug" json:"debug" default:"false"`
	// Pretty enables human readable logging output
	Pretty bool `koanf:"pretty" json:"pretty" default:"false"`
	// ReadTimeout is the maximum duration for reading a request
	ReadTimeout time.Duration `koanf:"read_timeout" json:"read_timeout" default:"30s"`
	// WriteTimeout is the maximum duration for writing a response
	WriteTimeout time.Duration `koanf:"write_timeout" json:"write_timeout" default:"30s"`
	// ShutdownGracePeriod is how long to wait for in-flight requests on shutdown
	ShutdownGracePeriod time.Duration `koanf:"shutdown_grace_period" json:"shutdown_grace_period" default:"10s"`
	// MaxBodySize caps request body size in bytes
	MaxBodySize int64 `koanf:"max_body_size" json:"max_body_size" default:"102400"`
	// RequestTimeout bounds any single request at the router level
	RequestTimeout time.Duration `koanf:"request_timeout" json:"request_timeout" default:"60s"`
}

// Scrape holds page fetching settings
type Scrape struct {
	// Timeout is the per-request fetch timeout
	Timeout time.Duration `koanf:"timeout" json:"timeout" default:"5s"`
	// MaxRedirects caps the redirect chain length per fetch
	MaxRedirects int `koanf:"max_redirects" json:"max_redirects" default:"5"`
	// UserAgent is the User-Agent header sent with every fetch
	UserAgent string `koanf:"user_agent" json:"user_agent"`
}

// Registry holds company registry client settings
type Registry struct {
	// BaseURL overrides the registry endpoint, mainly for testing
	BaseURL string `koanf:"base_url" json:"base_url"`
	// Timeout is the per-lookup HTTP timeout
	Timeout time.Duration `koanf:"timeout" json:"timeout" default:"10s"`
}

// Dossier holds dossier assembly limits
type Dossier struct {
	// MaxLegalPages caps the number of legal pages fetched per site
	MaxLegalPages int `koanf:"max_legal_pages" json:"max_legal_pages" default:"5"`
	// MaxCandidates caps how many identifiers are considered for registry lookup
	MaxCandidates int `koanf:"max_candidates" json:"max_candidates" default:"6"`
	// MaxCompanies caps how many registry records are kept per dossier
	MaxCompanies int `koanf:"max_companies" json:"max_companies" default:"3"`
	// HomeTextLimit caps the homepage text included in the dossier, in characters
	HomeTextLimit int `koanf:"home_text_limit" json:"home_text_limit" default:"8000"`
	// LegalTextLimit caps each legal page text included in the dossier, in characters
	LegalTextLimit int `koanf:"legal_text_limit" json:"legal_text_limit" default:"5000"`
	// AnalyzeTimeout bounds a full dossier assembly
	AnalyzeTimeout time.Duration `koanf:"analyze_timeout" json:"analyze_timeout" default:"45s"`
}

// Slack holds Slack notification settings
type Slack struct {
	// WebhookURL is the Slack incoming webhook URL
	WebhookURL string `koanf:"webhook_url" json:"webhook_url" sensitive:"true"`
	// RequestTimeout is the timeout for webhook delivery
	RequestTimeout time.Duration `koanf:"request_timeout" json:"request_timeout" default:"10s"`
}

// Load reads configuration from the optional YAML file at cfgFile, then
// applies DOSSIER_ prefixed environment variable overrides on top of the
// struct tag defaults.
func Load(cfgFile *string) (*Config, error) {
	k := koanf.New(".")

	cfg := &Config{}
	defaults.SetDefaults(cfg)

	if cfgFile != nil && *cfgFile != "" {
		if _, err := os.Stat(*cfgFile); err == nil {
			if err := k.Load(file.Provider(*cfgFile), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrConfigLoad, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigLoad, err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	return cfg, nil
}

// envToKey maps DOSSIER_SERVER_LISTEN to server.listen. Only the first
// underscore separates the section from the field, so field names may
// themselves contain underscores.
func envToKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))

	return strings.Replace(s, "_", ".", 1)
}
