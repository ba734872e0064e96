package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional config.yaml in the working
// directory plus environment variables with the HELPER_ prefix (nested keys
// joined by underscores, e.g. HELPER_LLM_GEMINI_API_KEY). Environment
// variables take precedence over file values. The populated Config is
// validated before being returned; validation failures are fatal to the
// caller by design.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 10000)
	v.SetDefault("server.log_level", "info")
	// Registered empty so AutomaticEnv can see the key when it is supplied
	// through the environment only.
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", "gemini-2.5-flash")
	v.SetDefault("llm.request_timeout_seconds", 120)
	v.SetDefault("llm.section_delay_ms", 500)
	v.SetDefault("session.ttl_minutes", 60)
	v.SetDefault("session.purge_minutes", 10)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("HELPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; env vars and defaults carry the load.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
