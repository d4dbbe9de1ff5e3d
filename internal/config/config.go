package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server     ServerConfig     `envPrefix:"SERVER_"`
	Database   DatabaseConfig   `envPrefix:"DATABASE_"`
	Kafka      KafkaConfig      `envPrefix:"KAFKA_"`
	Auth       AuthConfig       `envPrefix:"AUTH_"`
	Payments   PaymentsConfig   `envPrefix:"PAYMENTS_"`
	Engine     EngineConfig     `envPrefix:"ENGINE_"`
	Moderation ModerationConfig `envPrefix:"MODERATION_"`
}

type ServerConfig struct {
	Addr string `env:"ADDR" envDefault:":8080"`
}

type DatabaseConfig struct {
	Hosts    []string `env:"HOSTS" envDefault:"localhost:27017"`
	Database string   `env:"DATABASE" envDefault:"livechat"`
	Username string   `env:"USERNAME"`
	Password string   `env:"PASSWORD"`
	AuthDB   string   `env:"AUTH_DB" envDefault:"admin"`
	Direct   bool     `env:"DIRECT" envDefault:"true"`
}

type KafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"false"`
	Brokers []string `env:"BROKERS" envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"chat-events"`
	GroupID string   `env:"GROUP_ID" envDefault:"live-chat"`
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET,required"`
}

type PaymentsConfig struct {
	BaseURL string `env:"BASE_URL"`
	APIKey  string `env:"API_KEY"`
	// VerifyCharges enables a provider-side lookup before trusting a
	// confirmation webhook.
	VerifyCharges bool `env:"VERIFY_CHARGES" envDefault:"false"`
}

// EngineConfig exposes the engagement tunables. Defaults are the product
// rules; override only for load tests.
type EngineConfig struct {
	BufferSize      int           `env:"BUFFER_SIZE" envDefault:"100"`
	TickInterval    time.Duration `env:"TICK_INTERVAL" envDefault:"1s"`
	FluxoDwell      time.Duration `env:"FLUXO_DWELL" envDefault:"60s"`
	OverlayDuration time.Duration `env:"OVERLAY_DURATION" envDefault:"6s"`
	SlowModeWindow  time.Duration `env:"SLOW_MODE_WINDOW" envDefault:"3s"`
}

type ModerationConfig struct {
	// RulesPath points at an external rule set; empty uses the embedded
	// default.
	RulesPath string `env:"RULES_PATH"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
