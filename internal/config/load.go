package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// WORDSAVER_DATABASE_URL for database.url.
const EnvPrefix = "WORDSAVER"

var validate = validator.New()

// Load reads the server configuration. Environment variables take precedence
// over values from config.yaml in the working directory or ./config.
func Load() (*Config, error) {
	v := newViper("config")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.migrate_on_start", true)
	v.SetDefault("auth.token_lifetime_minutes", 1440)
	v.SetDefault("auth.bcrypt_cost", 10)

	// Keys without defaults must be bound so Unmarshal sees them.
	for _, key := range []string{"database.url", "auth.jwt_secret"} {
		env := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := readAndUnmarshal(v, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadClient reads the terminal client's configuration from vocab.yaml and
// the environment.
func LoadClient() (*ClientConfig, error) {
	v := newViper("vocab")

	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.timeout", 10*time.Second)
	v.SetDefault("client.token_file", defaultTokenFile())
	v.SetDefault("client.log_level", "warn")
	v.SetDefault("practice.countdown_seconds", 5)
	v.SetDefault("dictionary.page_size", 5)

	var cfg ClientConfig
	if err := readAndUnmarshal(v, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newViper(name string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func readAndUnmarshal(v *viper.Viper, out any) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "wordsaver", "token")
}
