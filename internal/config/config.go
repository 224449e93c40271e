package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio y del cliente de chat.
type Config struct {
	HTTPPort            string `env:"HTTP_PORT" envDefault:"8080"`
	QueryBaseURL        string `env:"QUERY_BASE_URL" envDefault:"http://localhost:3000"`
	QueryTimeoutSeconds int    `env:"QUERY_TIMEOUT_SECONDS" envDefault:"0"`
	JWTSecret           string `env:"JWT_SECRET"`
	SessionTTLMinutes   int    `env:"SESSION_TTL_MINUTES" envDefault:"60"`
	LogLevel            string `env:"LOG_LEVEL" envDefault:"info"`
}

// ErrJWTSecretMissing indica que JWT_SECRET no esta configurado.
var ErrJWTSecretMissing = errors.New("JWT_SECRET is required")

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RequireJWTSecret falla si falta el secreto de los tokens de sesion. Solo
// lo necesita cmd/api; cmd/cli_chat no emite tokens.
func (c *Config) RequireJWTSecret() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return ErrJWTSecretMissing
	}
	return nil
}

// QueryTimeout devuelve el timeout de las consultas; cero significa sin limite.
func (c *Config) QueryTimeout() time.Duration {
	if c.QueryTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.QueryTimeoutSeconds) * time.Second
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}
