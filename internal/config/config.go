// Package config loads and validates application configuration from the
// environment and an optional config file.
package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Study    StudyConfig    `mapstructure:"study" validate:"required"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig selects and configures the session store backend.
// Type "memory" keeps everything in process; "sqlite" persists to Path;
// "postgres" connects to URL.
type DatabaseConfig struct {
	Type string `mapstructure:"type" validate:"omitempty,oneof=memory sqlite sqlite3 postgres postgresql"`
	Path string `mapstructure:"path"`
	URL  string `mapstructure:"url" validate:"omitempty,url"`
}

// LLMConfig contains the Gemini integration settings. An empty API key
// disables generation; the rest of the application still works over
// stored history.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name"`
	MaxRetries   int    `mapstructure:"max_retries" validate:"omitempty,gte=1,lte=5"`
}

// StudyConfig contains the study-session policy settings.
type StudyConfig struct {
	// DailyLimit is the ceiling on generated study sets per day.
	DailyLimit int `mapstructure:"daily_limit" validate:"required,gte=1"`
}
