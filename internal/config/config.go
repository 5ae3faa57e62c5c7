package config

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// FileEnv names the environment variable holding an optional YAML config path
const FileEnv = "TTT_CONFIG"

// Config is the server configuration. Every field can be set from the
// environment; a YAML file named by TTT_CONFIG is read first when present.
type Config struct {
	HTTP    HTTP    `yaml:"http"`
	Log     Log     `yaml:"log"`
	Storage Storage `yaml:"storage"`

	SessionTTL time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`
	StaticDir  string        `yaml:"static-dir" env:"STATIC_DIR"`
}

type HTTP struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:""`
	Port int    `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

type Storage struct {
	Type     string        `yaml:"type" env:"STORAGE_TYPE" env-default:"memory"`
	RedisURL string        `yaml:"redis-url" env:"REDIS_URL"`
	GameTTL  time.Duration `yaml:"game-ttl" env:"GAME_TTL" env-default:"24h"`
}

// Load reads configuration from the file named by TTT_CONFIG, if set, and the environment
func Load() (*Config, error) {
	return LoadFile(os.Getenv(FileEnv))
}

// LoadFile reads configuration from path (when non-empty) and the environment
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the tags cannot express
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "memory":
	case "redis":
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be 'memory' or 'redis'", c.Storage.Type)
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTP.Port)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: must be 'json' or 'text'", c.Log.Format)
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Addr returns the listen address
func (h HTTP) Addr() string {
	return net.JoinHostPort(h.Host, fmt.Sprint(h.Port))
}

// NewLogger builds the application logger described by the config
func (l Log) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(l.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.ToLower(l.Format) == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Usage returns a description of every environment variable
func Usage() string {
	var sb strings.Builder
	header := "Environment variables:"
	cleanenv.FUsage(&sb, &Config{}, &header)()
	return sb.String()
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return level, nil
}
