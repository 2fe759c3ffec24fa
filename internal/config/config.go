package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full application configuration, populated from the
// environment.
type Config struct {
	LogLevel          int               `env:"LOG_LEVEL" envDefault:"0"`
	Database          Database          `envPrefix:"DATABASE_"`
	JWT               JWT               `envPrefix:"JWT_"`
	ForgottenPassword ForgottenPassword `envPrefix:"FORGOTTEN_PASSWORD_"`
	SMTP              SMTP              `envPrefix:"SMTP_"`
	Cleanup           Cleanup           `envPrefix:"CLEANUP_"`
}

type Database struct {
	DSN string `env:"DSN,required"`
}

// JWT configures token signing. HS* algorithms use SecretKey; RS*,
// ES* and EdDSA use the PEM-encoded PrivateKey/PublicKey pair.
// AccessTokenLifetime is in minutes, RefreshTokenLifetime in days.
type JWT struct {
	Algorithm            string `env:"ALGORITHM" envDefault:"HS512"`
	SecretKey            string `env:"SECRET_KEY"`
	PrivateKey           string `env:"PRIVATE_KEY"`
	PublicKey            string `env:"PUBLIC_KEY"`
	AccessTokenLifetime  int    `env:"ACCESS_TOKEN_LIFETIME" envDefault:"15"`
	RefreshTokenLifetime int    `env:"REFRESH_TOKEN_LIFETIME" envDefault:"7"`
}

// ForgottenPassword configures the password-reset flow.
// ExpirationDuration is in hours.
type ForgottenPassword struct {
	ExpirationDuration int    `env:"EXPIRATION_DURATION" envDefault:"24"`
	BaseURL            string `env:"BASE_URL"`
	EmailFrom          string `env:"EMAIL_FROM"`
}

type SMTP struct {
	Host     string        `env:"HOST"`
	Port     int           `env:"PORT" envDefault:"587"`
	Username string        `env:"USERNAME"`
	Password string        `env:"PASSWORD"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Cleanup configures the periodic expired refresh token sweep.
type Cleanup struct {
	Interval time.Duration `env:"INTERVAL" envDefault:"1h"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
