package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Broker   BrokerConfig   `mapstructure:"broker"   validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`

	// AutoMigrate runs the embedded goose migrations on startup when true.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// BrokerConfig contains the settings for the driver-created event channel.
// An empty URL disables the broker connection and keeps notifications
// in-process.
type BrokerConfig struct {
	URL string `mapstructure:"url"`

	// Queue is the fixed logical channel the driver-rating/onboarding
	// consumers read from.
	Queue string `mapstructure:"queue" validate:"required"`
}

// AuthConfig contains the authentication gate settings. The gate is optional:
// when Enabled is false requests pass through unauthenticated, which keeps
// local development and the handler tests free of token plumbing.
type AuthConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	JWTSecret string `mapstructure:"jwt_secret" validate:"required_if=Enabled true,omitempty,min=32"`
}
