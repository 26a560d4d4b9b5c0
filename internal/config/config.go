// Package config loads the formation CLI configuration.
//
// Values come from a YAML file (formation.yaml by default), then from
// FORMATION_* environment variables. Nested keys are joined with an
// underscore, so store.redis_addr is overridden by FORMATION_STORE_REDIS_ADDR.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/aretw0/formation/pkg/models"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "formation.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FORMATION_"

// Store kinds.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the resolved CLI configuration.
type Config struct {
	Document string        `mapstructure:"document" yaml:"document"`
	Model    string        `mapstructure:"model" yaml:"model"`
	LogLevel string        `mapstructure:"log_level" yaml:"log_level"`
	Store    StoreConfig   `mapstructure:"store" yaml:"store"`
	HTTP     HTTPConfig    `mapstructure:"http" yaml:"http"`
	Metrics  MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Kind          string        `mapstructure:"kind" yaml:"kind"`
	Dir           string        `mapstructure:"dir" yaml:"dir"`
	RedisAddr     string        `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password" yaml:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db" yaml:"redis_db"`
	Prefix        string        `mapstructure:"prefix" yaml:"prefix"`
	TTL           time.Duration `mapstructure:"ttl" yaml:"ttl"`
	// EncryptionKey is a base64 AES-256 key. When set, stored documents
	// are encrypted and FallbackKeys are tried on read.
	EncryptionKey string   `mapstructure:"encryption_key" yaml:"encryption_key"`
	FallbackKeys  []string `mapstructure:"fallback_keys" yaml:"fallback_keys"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// MetricsConfig toggles the Prometheus collectors.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Document: "formation.conf",
		Model:    models.Default,
		LogLevel: "info",
		Store: StoreConfig{
			Kind:      StoreFile,
			Dir:       ".formation/documents",
			RedisAddr: "localhost:6379",
		},
		HTTP:    HTTPConfig{Addr: ":8080"},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads path and applies environment overrides on top of Default.
// A missing file is not an error.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.Environ())
}

// LoadWithEnv is Load with an explicit environment in KEY=VALUE form.
func LoadWithEnv(path string, environ []string) (Config, error) {
	raw := map[string]any{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	applyEnv(raw, environ)

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values a command cannot work around.
func (c Config) Validate() error {
	switch c.Store.Kind {
	case StoreFile, StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("invalid config: unknown store kind %q", c.Store.Kind)
	}
	if c.Store.TTL < 0 {
		return fmt.Errorf("invalid config: negative store ttl")
	}
	if c.Model == "" {
		return fmt.Errorf("invalid config: empty model")
	}
	return nil
}

// sections are the nested keys an environment variable can address.
var sections = []string{"store", "http", "metrics"}

func applyEnv(raw map[string]any, environ []string) {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if name == "" {
			continue
		}

		nested := false
		for _, section := range sections {
			field, found := strings.CutPrefix(name, section+"_")
			if !found {
				continue
			}
			sub, _ := raw[section].(map[string]any)
			if sub == nil {
				sub = map[string]any{}
				raw[section] = sub
			}
			sub[field] = value
			nested = true
			break
		}
		if !nested {
			raw[name] = value
		}
	}
}
