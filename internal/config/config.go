package config

import (
	"os"
	"strings"
	"time"
)

const (
	defaultAddr      = ":8080"
	defaultDBPath    = "petcare.db"
	defaultTokenTTL  = 24 * time.Hour
	defaultJWTSecret = "dev-secret-change-in-production"
)

// Config agrupa toda la configuración del servicio, leída de env.
type Config struct {
	Addr      string
	DBPath    string // vacío => repos in-memory
	JWTSecret string
	TokenTTL  time.Duration
}

// FromEnv lee:
// - PORT (default 8080)
// - DB_PATH (default petcare.db), DB_MODE=memory fuerza in-memory
// - JWT_SECRET (default de dev, cambiar en prod)
// - TOKEN_TTL (Go duration, default 24h)
func FromEnv() Config {
	cfg := Config{
		Addr:      defaultAddr,
		DBPath:    defaultDBPath,
		JWTSecret: defaultJWTSecret,
		TokenTTL:  defaultTokenTTL,
	}

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Addr = ":" + v
	}
	if v := strings.TrimSpace(os.Getenv("DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("DB_MODE")), "memory") {
		cfg.DBPath = ""
	}
	if v := strings.TrimSpace(os.Getenv("JWT_SECRET")); v != "" {
		cfg.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("TOKEN_TTL")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TokenTTL = d
		}
	}

	return cfg
}
