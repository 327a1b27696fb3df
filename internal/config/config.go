// Package config provides Viper-based hierarchical configuration for the
// bot: defaults, an optional config.yaml and FINZAP_* environment
// variables, with secrets always taken from unprefixed environment
// variables.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`

	WhatsApp struct {
		Token         string `mapstructure:"token" yaml:"-"` // Never serialize credentials
		VerifyToken   string `mapstructure:"verify_token" yaml:"-"`
		PhoneNumberID string `mapstructure:"phone_number_id"`
		BaseURL       string `mapstructure:"base_url"`
	} `mapstructure:"whatsapp"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled"`
		Model          string `mapstructure:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai"`

	Dedup struct {
		MaxEntries int `mapstructure:"max_entries"`
		TTLHours   int `mapstructure:"ttl_hours"`
	} `mapstructure:"dedup"`

	Lexicon struct {
		File string `mapstructure:"file"`
	} `mapstructure:"lexicon"`
}

// Load reads the configuration: .env file (if present), defaults, an
// optional config.yaml and FINZAP_* environment variables, in increasing
// order of precedence.
func Load() (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.finzap")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FINZAP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
		// No config file is fine, defaults and env vars apply.
	}

	// Credentials come from their conventional environment variables,
	// never from the config file.
	bindSecret(v, "whatsapp.token", "WHATSAPP_TOKEN")
	bindSecret(v, "whatsapp.verify_token", "VERIFY_TOKEN")
	bindSecret(v, "whatsapp.phone_number_id", "PHONE_NUMBER_ID")
	bindSecret(v, "ai.api_key", "GEMINI_API_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func bindSecret(v *viper.Viper, key, envVar string) {
	if err := v.BindEnv(key, envVar); err != nil {
		fmt.Printf("Warning: failed to bind %s environment variable: %v\n", envVar, err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.port", 8080)

	v.SetDefault("whatsapp.base_url", "https://graph.facebook.com/v19.0")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-1.5-flash-latest")
	v.SetDefault("ai.timeout_seconds", 25)

	v.SetDefault("dedup.max_entries", 100000)
	v.SetDefault("dedup.ttl_hours", 24)

	v.SetDefault("lexicon.file", "")
}

func validate(cfg *Config) error {
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}

	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", cfg.Log.Format)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", cfg.Server.Port)
	}

	if cfg.AI.Enabled {
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI interpretation is enabled")
		}
		if cfg.AI.TimeoutSeconds < 1 || cfg.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", cfg.AI.TimeoutSeconds)
		}
	}

	if cfg.Dedup.MaxEntries < 1 {
		return fmt.Errorf("dedup.max_entries must be positive, got: %d", cfg.Dedup.MaxEntries)
	}
	if cfg.Dedup.TTLHours < 1 {
		return fmt.Errorf("dedup.ttl_hours must be positive, got: %d", cfg.Dedup.TTLHours)
	}

	return nil
}
