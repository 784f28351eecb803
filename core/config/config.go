package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	AdminID int64  `yaml:"admin_id" envconfig:"ADMIN_CHAT_ID"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
	// BroadcastChatID optionally mirrors admin notifications to a channel.
	BroadcastChatID int64 `yaml:"broadcast_chat_id" envconfig:"BROADCAST_CHAT_ID"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"SERVER_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"PORT"`
}

// HealthConfig controls the liveness endpoint. An empty listen address disables it.
type HealthConfig struct {
	Listen string `yaml:"listen" envconfig:"HEALTH_LISTEN"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
}

// DatabaseConfig holds connection settings for the optional order archive.
// An empty host disables archiving entirely.
type DatabaseConfig struct {
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// Enabled reports whether the archive database is configured.
func (c DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != ""
}

// LifecycleConfig tunes eviction of abandoned sessions and orders.
// A zero TTL keeps entries forever.
type LifecycleConfig struct {
	SessionTTL    time.Duration `yaml:"session_ttl" envconfig:"SESSION_TTL"`
	OrderTTL      time.Duration `yaml:"order_ttl" envconfig:"ORDER_TTL"`
	SweepSchedule string        `yaml:"sweep_schedule" envconfig:"SWEEP_SCHEDULE"`
}

// ShopConfig carries the static retail details rendered into messages.
type ShopConfig struct {
	Name           string `yaml:"name" envconfig:"SHOP_NAME"`
	Currency       string `yaml:"currency" envconfig:"SHOP_CURRENCY"`
	PaymentAccount string `yaml:"payment_account" envconfig:"SHOP_PAYMENT_ACCOUNT"`
	PaymentNumber  string `yaml:"payment_number" envconfig:"SHOP_PAYMENT_NUMBER"`
	PickupLocation string `yaml:"pickup_location" envconfig:"SHOP_PICKUP_LOCATION"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

// Config aggregates all application configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Health    HealthConfig    `yaml:"health"`
	Logging   LoggingConfig   `yaml:"logging"`
	Database  DatabaseConfig  `yaml:"database"`
	Lifecycle LifecycleConfig `yaml:"lifecycle"`
	Shop      ShopConfig      `yaml:"shop"`
}

// Load reads configuration from an optional YAML file and environment
// variables. Environment values always win over the file.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}
	if cfg.Telegram.AdminID == 0 {
		return fmt.Errorf("telegram admin_id is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			cfg.Webhook.Listen = "0.0.0.0"
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if cfg.Lifecycle.SessionTTL < 0 || cfg.Lifecycle.OrderTTL < 0 {
		return fmt.Errorf("lifecycle TTL values must be >= 0")
	}
	if cfg.Lifecycle.SweepSchedule == "" {
		cfg.Lifecycle.SweepSchedule = "@every 10m"
	}

	if cfg.Health.Listen == "" {
		cfg.Health.Listen = ":8080"
	}

	if cfg.Database.Enabled() {
		if cfg.Database.Port == "" {
			cfg.Database.Port = "5432"
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
		if cfg.Database.MaxConnections <= 0 {
			cfg.Database.MaxConnections = 5
		}
	}

	if cfg.Shop.Name == "" {
		cfg.Shop.Name = "Abdul iPhone Shop"
	}
	if cfg.Shop.Currency == "" {
		cfg.Shop.Currency = "GHS"
	}
	if cfg.Shop.PickupLocation == "" {
		cfg.Shop.PickupLocation = "OBUASI OPPOSITE SARK MOMO SHOP"
	}
	return nil
}
