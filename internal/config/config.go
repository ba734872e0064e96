package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm"     validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains all generation-backend settings. A missing API key is a
// fatal startup condition, not a per-request error.
type LLMConfig struct {
	GeminiAPIKey          string `mapstructure:"gemini_api_key"          validate:"required"`
	ModelName             string `mapstructure:"model_name"              validate:"required"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	SectionDelayMs        int    `mapstructure:"section_delay_ms"        validate:"required,gte=500"`
}

// SessionConfig bounds the in-memory chat session store.
type SessionConfig struct {
	TTLMinutes   int `mapstructure:"ttl_minutes"   validate:"required,gt=0"`
	PurgeMinutes int `mapstructure:"purge_minutes" validate:"required,gt=0"`
}
