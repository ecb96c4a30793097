package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config настройки процесса. Источник: переменные окружения, .env подхватывается при наличии.
type Config struct {
	Addr            string
	GinMode         string
	JWTSecret       string
	CollabBaseURL   string
	CollabTimeout   time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

const devSecret = "skladpro-dev-secret"

// Load читает .env (если есть) и окружение
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv собирает конфигурацию из функции чтения переменных
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Addr:            ":9091",
		GinMode:         getenv("GIN_MODE"),
		JWTSecret:       getenv("SKLAD_JWT_SECRET"),
		CollabBaseURL:   strings.TrimRight(getenv("SKLAD_COLLAB_BASE_URL"), "/"),
		CollabTimeout:   5 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		CORSOrigins:     []string{"*"},
	}
	if v := getenv("SKLAD_ADDR"); v != "" {
		cfg.Addr = v
	}
	if cfg.JWTSecret == "" {
		log.Println("[WARN] SKLAD_JWT_SECRET is not set, using development secret")
		cfg.JWTSecret = devSecret
	}
	var err error
	if cfg.CollabTimeout, err = duration(getenv, "SKLAD_COLLAB_TIMEOUT", cfg.CollabTimeout); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = duration(getenv, "SKLAD_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return Config{}, err
	}
	if v := getenv("SKLAD_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	return cfg, nil
}

func duration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, v)
	}
	return d, nil
}
