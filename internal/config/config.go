package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTPAddr     string `env:"HTTP_ADDR" env-default:":8080"`
	AppURL       string `env:"APP_URL" env-default:"http://localhost:3000"`
	DatabaseURL  string `env:"DATABASE_URL" env-required:"true"`
	RedisAddr    string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	NATSURL      string `env:"NATS_URL" env-default:""`
	OTLPEndpoint string `env:"OTLP_ENDPOINT" env-default:""`
	LogLevel     string `env:"LOG_LEVEL" env-default:"info"`
	SMTPHost     string `env:"SMTP_HOST" env-default:""`
	SMTPPort     string `env:"SMTP_PORT" env-default:"587"`
	SMTPUser     string `env:"SMTP_USER" env-default:""`
	SMTPPass     string `env:"SMTP_PASS" env-default:""`
	SMTPFrom     string `env:"SMTP_FROM" env-default:""`
}

func Load() (*Config, error) {
	var cfg Config

	// Environment variables only; no config files in this deployment shape.
	err := cleanenv.ReadEnv(&cfg)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return &cfg, nil
}
