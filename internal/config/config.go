// Package config loads runtime settings from flags, environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Stores.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds every runtime setting. Keys map to upper-case environment
// variables, e.g. database_url is DATABASE_URL.
type Config struct {
	Addr            string        `mapstructure:"addr"`
	Store           string        `mapstructure:"store"`
	DatabaseURL     string        `mapstructure:"database_url"`
	WebDir          string        `mapstructure:"web_dir"`
	AppName         string        `mapstructure:"app_name"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	JWTSecret        string        `mapstructure:"jwt_secret"`
	TokenValidity    time.Duration `mapstructure:"token_validity"`
	TrustForwardAuth bool          `mapstructure:"trust_forward_auth"`

	OIDCIssuer       string `mapstructure:"oidc_issuer"`
	OIDCClientID     string `mapstructure:"oidc_client_id"`
	OIDCClientSecret string `mapstructure:"oidc_client_secret"`
	OIDCRedirectURL  string `mapstructure:"oidc_redirect_url"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// New returns a viper instance with defaults and environment binding set.
// Callers may bind command-line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("store", StorePostgres)
	v.SetDefault("database_url", "")
	v.SetDefault("web_dir", "web")
	v.SetDefault("app_name", "feedbackApp")
	v.SetDefault("shutdown_timeout", 10*time.Second)

	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_validity", 24*time.Hour)
	v.SetDefault("trust_forward_auth", false)

	v.SetDefault("oidc_issuer", "")
	v.SetDefault("oidc_client_id", "")
	v.SetDefault("oidc_client_secret", "")
	v.SetDefault("oidc_redirect_url", "")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// Load reads the optional config file and decodes v into a Config.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Validate checks settings the server cannot start without.
func (c *Config) Validate() error {
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.OIDCIssuer != "" && (c.OIDCClientID == "" || c.OIDCRedirectURL == "") {
		return errors.New("OIDC_CLIENT_ID and OIDC_REDIRECT_URL are required with OIDC_ISSUER")
	}
	return nil
}

// OIDCEnabled reports whether single sign-on is configured.
func (c *Config) OIDCEnabled() bool {
	return c.OIDCIssuer != ""
}
