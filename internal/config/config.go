package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/nutshell/pkg/symmetry"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "nutshell.yaml"

// Config holds the compiler settings.
type Config struct {
	LogLevel       string `yaml:"log_level" env:"NUTSHELL_LOG_LEVEL"`
	Seed           uint64 `yaml:"seed" env:"NUTSHELL_SEED"`
	OrbitCacheSize int    `yaml:"orbit_cache_size" env:"NUTSHELL_ORBIT_CACHE_SIZE"`
	Stats          bool   `yaml:"stats" env:"NUTSHELL_STATS"`

	// RedisAddr enables the report cache of the compile server.
	RedisAddr     string        `yaml:"redis_addr" env:"NUTSHELL_REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"NUTSHELL_REDIS_PASSWORD"`
	CacheTTL      time.Duration `yaml:"cache_ttl" env:"NUTSHELL_CACHE_TTL"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:       "info",
		OrbitCacheSize: symmetry.DefaultOrbitCacheSize,
		CacheTTL:       time.Hour,
	}
}

// Load layers, in order: defaults, the YAML file at path, a .env file in the
// working directory and NUTSHELL_* environment variables. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	_ = godotenv.Load()
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
