// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"telegram-menu-bot/internal/domain"
)

// ListenHost is fixed: the webhook server always binds all interfaces.
const ListenHost = "0.0.0.0"

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token       string `yaml:"token" env:"BOT_TOKEN"`
	Language    string `yaml:"language" env:"BOT_LANGUAGE"` // en | ru
	APIEndpoint string `yaml:"api_endpoint" env:"BOT_API_ENDPOINT"`
	Debug       bool   `yaml:"debug" env:"BOT_DEBUG"`
}

type WebhookConfig struct {
	Host        string        `yaml:"host" env:"WEBHOOK_HOST"`
	RenderHost  string        `yaml:"-" env:"RENDER_EXTERNAL_HOSTNAME"`
	Scheme      string        `yaml:"scheme" env:"WEBHOOK_SCHEME"`
	Port        int           `yaml:"port" env:"PORT"`
	DropPending bool          `yaml:"drop_pending" env:"WEBHOOK_DROP_PENDING"`
	Register    *bool         `yaml:"register"` // nil means true
	ReadTimeout time.Duration `yaml:"read_timeout"`
	ShutdownTTL time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level    string `yaml:"level" env:"LOG_LEVEL"`   // trace|debug|info|warn|error
	Format   string `yaml:"format" env:"LOG_FORMAT"` // json|console
	Sampling bool   `yaml:"sampling"`                // enable sampling in prod
}

type MetricsConfig struct {
	Port int `yaml:"port" env:"METRICS_PORT"` // 0 disables the metrics listener
}

type Config struct {
	Bot     BotConfig     `yaml:"bot"`
	Webhook WebhookConfig `yaml:"webhook"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the optional YAML file, overlays the environment (a .env
// file in the working directory is honoured) and applies defaults.
func LoadConfig(path string, dev bool) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
			// environment only
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Runtime.Dev = dev
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	c.Bot.Token = strings.TrimSpace(c.Bot.Token)
	if c.Bot.Language == "" {
		c.Bot.Language = "en"
	}
	if c.Webhook.Host == "" {
		c.Webhook.Host = c.Webhook.RenderHost
	}
	c.Webhook.Host = strings.TrimSuffix(strings.TrimSpace(c.Webhook.Host), "/")
	if c.Webhook.Host == "" && c.Runtime.Dev {
		c.Webhook.Host = "localhost"
	}
	if c.Webhook.Scheme == "" {
		c.Webhook.Scheme = "https"
	}
	if c.Webhook.Port <= 0 {
		c.Webhook.Port = 8080
	}
	if c.Webhook.ReadTimeout <= 0 {
		c.Webhook.ReadTimeout = 10 * time.Second
	}
	if c.Webhook.ShutdownTTL <= 0 {
		c.Webhook.ShutdownTTL = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// Validate checks the settings the process cannot start without.
func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return fmt.Errorf("%w: bot.token (BOT_TOKEN) is required", domain.ErrConfigurationMissing)
	}
	if c.Webhook.Host == "" {
		return fmt.Errorf("%w: webhook.host (RENDER_EXTERNAL_HOSTNAME or WEBHOOK_HOST) is required", domain.ErrConfigurationMissing)
	}
	if strings.Contains(c.Webhook.Host, "://") {
		return fmt.Errorf("webhook.host must be a bare hostname, got %q", c.Webhook.Host)
	}
	switch c.Webhook.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("webhook.scheme must be http or https, got %q", c.Webhook.Scheme)
	}
	switch c.Bot.Language {
	case "en", "ru":
	default:
		return fmt.Errorf("bot.language must be en or ru, got %q", c.Bot.Language)
	}
	if c.Metrics.Port != 0 && c.Metrics.Port == c.Webhook.Port {
		return errors.New("metrics.port must differ from webhook.port")
	}
	return nil
}

// ListenAddr is the webhook server address.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", ListenHost, c.Webhook.Port)
}

// ShouldRegister reports whether the lifecycle hooks talk to the platform.
func (c *Config) ShouldRegister() bool {
	return c.Webhook.Register == nil || *c.Webhook.Register
}
