package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the process configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig selects the backing store.
type DatabaseConfig struct {
	// Path to the SQLite database file. Ignored when InMemory is set.
	Path string `mapstructure:"path"`

	// InMemory backs the store with a private in-memory database, mostly
	// useful for tests and dry runs.
	InMemory bool `mapstructure:"in_memory"`

	// Migrate applies pending schema migrations on open.
	Migrate bool `mapstructure:"migrate"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the given file, if any, with MONEYBASE_*
// environment variables taking precedence. A missing file is fine; the
// defaults describe a migrated on-disk database next to the binary.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("database.path", "moneybase.db")
	v.SetDefault("database.in_memory", false)
	v.SetDefault("database.migrate", true)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("MONEYBASE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
