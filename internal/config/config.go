package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Auth modes accepted in AUTH_MODE.
const (
	AuthModeJWT  = "jwt"
	AuthModeNone = "none"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT, default=8080"`
	MySQLDSN   string `env:"MYSQL_DSN, default=user:password@tcp(localhost:3306)/buslink?charset=utf8mb4&parseTime=True&loc=Local"`

	RedisAddr string `env:"REDIS_ADDR, default=localhost:6379"`
	RedisDB   int    `env:"REDIS_DB, default=0"`
	RedisPass string `env:"REDIS_PASSWORD"`

	JWTSecret string `env:"JWT_SECRET, default=change-me"`

	// AuthMode selects the authenticator: "jwt" validates bearer tokens,
	// "none" is a pass-through that injects DevUserID on every request.
	AuthMode  string `env:"AUTH_MODE, default=jwt"`
	DevUserID string `env:"DEV_USER_ID, default=local-dev"`

	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	SwaggerHost string `env:"SWAGGER_HOST"`
}

// Load builds Config from the environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if cfg.AuthMode != AuthModeJWT && cfg.AuthMode != AuthModeNone {
		return nil, fmt.Errorf("invalid AUTH_MODE %q", cfg.AuthMode)
	}
	return &cfg, nil
}
