// Package config loads settings for the clicktree commands from a YAML file,
// CLICKTREE_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override, e.g. CLICKTREE_HTTP_ADDR.
const EnvPrefix = "CLICKTREE"

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config is the full command configuration.
type Config struct {
	LogLevel  string      `mapstructure:"log_level"`
	RowHeight int         `mapstructure:"row_height"`
	Strict    bool        `mapstructure:"strict"`
	Sources   string      `mapstructure:"sources"`
	Store     StoreConfig `mapstructure:"store"`
	HTTP      HTTPConfig  `mapstructure:"http"`
	MCP       MCPConfig   `mapstructure:"mcp"`
}

// StoreConfig selects where session snapshots live.
type StoreConfig struct {
	Kind   string        `mapstructure:"kind"`
	Path   string        `mapstructure:"path"`
	Prefix string        `mapstructure:"prefix"`
	TTL    time.Duration `mapstructure:"ttl"`
	Redis  RedisConfig   `mapstructure:"redis"`

	// EncryptionKey is a base64 AES-256 key. When set, snapshots are sealed at rest.
	EncryptionKey string `mapstructure:"encryption_key"`
	// FallbackKeys still decrypt snapshots sealed before a key rotation.
	FallbackKeys []string `mapstructure:"fallback_keys"`
}

// RedisConfig holds the connection settings for the redis store and locker.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// HTTPConfig configures `clicktree serve`.
type HTTPConfig struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
}

// MCPConfig configures `clicktree mcp`.
type MCPConfig struct {
	Transport string `mapstructure:"transport"`
	Addr      string `mapstructure:"addr"`
	BaseURL   string `mapstructure:"base_url"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"log-level":  "log_level",
	"row-height": "row_height",
	"strict":     "strict",
	"sources":    "sources",
	"store":      "store.kind",
	"store-path": "store.path",
	"redis-addr": "store.redis.addr",
	"addr":       "http.addr",
	"metrics":    "http.metrics",
	"transport":  "mcp.transport",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("row_height", 35)
	v.SetDefault("strict", false)
	v.SetDefault("sources", "")
	v.SetDefault("store.kind", StoreMemory)
	v.SetDefault("store.path", "")
	v.SetDefault("store.prefix", "")
	v.SetDefault("store.ttl", time.Duration(0))
	v.SetDefault("store.encryption_key", "")
	v.SetDefault("store.fallback_keys", []string{})
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.metrics", true)
	v.SetDefault("mcp.transport", "stdio")
	v.SetDefault("mcp.addr", ":8081")
	v.SetDefault("mcp.base_url", "http://localhost:8081")
}

// Load reads the configuration. An explicit path must exist; without one a
// clicktree.yaml in the working directory is used when present. Flags that were
// set on the command line override file and environment values.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("clicktree")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Store.Kind {
	case StoreMemory, StoreFile, StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("unknown store kind %q", c.Store.Kind)
	}
	if c.Store.Kind == StoreSQLite && c.Store.Path == "" {
		return errors.New("store.path is required for the sqlite store")
	}
	if c.RowHeight <= 0 {
		return fmt.Errorf("row_height must be positive, got %d", c.RowHeight)
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("unknown mcp transport %q", c.MCP.Transport)
	}
	return nil
}
