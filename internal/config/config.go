package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Game     GameConfig     `yaml:"game"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig configures the WebSocket listener.
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
}

// RedisConfig configures the stats store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig holds the match rules knobs.
type GameConfig struct {
	TurnTimeout   int `yaml:"turn_timeout"`    // seconds before auto-play
	NextHandDelay int `yaml:"next_hand_delay"` // seconds between hands
	TargetScore   int `yaml:"target_score"`    // points to win the match
}

// SecurityConfig configures transport hardening.
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins"` // empty = allow all
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
	MessageLimit   MsgLimitConfig  `yaml:"message_limit"`
}

// RateLimitConfig limits connection attempts per IP.
type RateLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
	MaxPerMinute int `yaml:"max_per_minute"`
	BanMinutes   int `yaml:"ban_minutes"`
}

// MsgLimitConfig limits message throughput per client.
type MsgLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
}

// TurnTimeoutDuration returns the auto-play timeout.
func (c *GameConfig) TurnTimeoutDuration() time.Duration {
	return time.Duration(c.TurnTimeout) * time.Second
}

// NextHandDelayDuration returns the pause between hands.
func (c *GameConfig) NextHandDelayDuration() time.Duration {
	return time.Duration(c.NextHandDelay) * time.Second
}

// BanDurationTime returns how long an abusive IP stays banned.
func (c *RateLimitConfig) BanDurationTime() time.Duration {
	return time.Duration(c.BanMinutes) * time.Minute
}

// Load reads and parses a config file, backfilling defaults for any
// zero-valued field.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3001
	}
	if cfg.Server.MaxConnections == 0 {
		cfg.Server.MaxConnections = 1000
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Game.TurnTimeout == 0 {
		cfg.Game.TurnTimeout = 30
	}
	if cfg.Game.NextHandDelay == 0 {
		cfg.Game.NextHandDelay = 2
	}
	if cfg.Game.TargetScore == 0 {
		cfg.Game.TargetScore = 12
	}
	if cfg.Security.RateLimit.MaxPerSecond == 0 {
		cfg.Security.RateLimit.MaxPerSecond = 5
	}
	if cfg.Security.RateLimit.MaxPerMinute == 0 {
		cfg.Security.RateLimit.MaxPerMinute = 60
	}
	if cfg.Security.RateLimit.BanMinutes == 0 {
		cfg.Security.RateLimit.BanMinutes = 10
	}
	if cfg.Security.MessageLimit.MaxPerSecond == 0 {
		cfg.Security.MessageLimit.MaxPerSecond = 20
	}
}
