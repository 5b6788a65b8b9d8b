package config

import "time"

// Config holds all server configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1,lte=300"`
}

// DatabaseConfig contains Postgres connection settings.
type DatabaseConfig struct {
	URL            string `mapstructure:"url" validate:"required,url"`
	MaxConns       int32  `mapstructure:"max_conns" validate:"gte=1,lte=100"`
	MigrateOnStart bool   `mapstructure:"migrate_on_start"`
}

// AuthConfig contains token and password hashing settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lt=525601"`
	BCryptCost           int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// ClientConfig holds the terminal client's configuration.
type ClientConfig struct {
	Client     ClientSettings   `mapstructure:"client" validate:"required"`
	Practice   PracticeConfig   `mapstructure:"practice" validate:"required"`
	Dictionary DictionaryConfig `mapstructure:"dictionary" validate:"required"`
}

// ClientSettings describes how to reach the word store.
type ClientSettings struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	TokenFile string        `mapstructure:"token_file"`
	LogLevel  string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// PracticeConfig tunes the practice modes.
type PracticeConfig struct {
	CountdownSeconds int `mapstructure:"countdown_seconds" validate:"gte=1,lte=60"`
}

// DictionaryConfig tunes the dictionary pager.
type DictionaryConfig struct {
	PageSize int `mapstructure:"page_size" validate:"gte=1,lte=100"`
}
