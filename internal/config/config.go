// Package config resolves runtime options from flags, TALLY_* environment
// variables and an optional config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options holds the resolved configuration.
type Options struct {
	// Backend selects the storage implementation.
	Backend string `mapstructure:"backend"`
	// DBPath is the sqlite database file.
	DBPath string `mapstructure:"db"`
	// RedisURL is used when Backend is redis.
	RedisURL string `mapstructure:"redis_url"`
	// RedisPrefix namespaces every key written to redis.
	RedisPrefix string `mapstructure:"redis_prefix"`
	// LogLevel is a zap level name.
	LogLevel string `mapstructure:"log_level"`
	// Addr is the listen address of the HTTP server.
	Addr string `mapstructure:"addr"`
}

// New returns a viper instance with defaults and env binding set up
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("backend", BackendSQLite)
	v.SetDefault("db", "")
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("redis_prefix", "tally:")
	v.SetDefault("log_level", "warn")
	v.SetDefault("addr", "localhost:8080")

	v.SetEnvPrefix("tally")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags maps command-line flags onto config keys
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, flag := range map[string]string{
		"backend":   "backend",
		"db":        "db",
		"redis_url": "redis-url",
		"log_level": "log-level",
		"addr":      "addr",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}
	return nil
}

// Load reads the config file (explicit path, or ~/.tally/config.yaml when present)
// and decodes the merged options.
func Load(v *viper.Viper, file string) (*Options, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(home, ".tally"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error while reading config file: %w", err)
		}
	}

	opts := &Options{}
	if err := v.Unmarshal(opts); err != nil {
		return nil, fmt.Errorf("error while parsing config: %w", err)
	}

	switch opts.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown backend %q (want sqlite, redis or memory)", opts.Backend)
	}
	return opts, nil
}
