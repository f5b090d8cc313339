package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr           string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	FrontendDir    string
	Environment    string
	LoginUser      string
	LoginPassword  string
	AdminKey       string
	BaseDesignCost float64
	RunMigrations  bool
	RunSeed        bool
	MaxBodyBytes   int64
	MetricsEnabled bool
}

func Load() Config {
	return Config{
		Addr:           getEnv("APP_ADDR", ":8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 12*time.Hour),
		FrontendDir:    getEnv("FRONTEND_DIR", "frontend/dist"),
		Environment:    getEnv("APP_ENV", "development"),
		LoginUser:      getEnv("LOGIN_USER", "studio"),
		LoginPassword:  getEnv("LOGIN_PASSWORD", "studio"),
		AdminKey:       getEnv("ADMIN_KEY", "studio-admin"),
		BaseDesignCost: getEnvFloat("BASE_DESIGN_COST", 180),
		RunMigrations:  getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:        getEnvBool("RUN_SEED", true),
		MaxBodyBytes:   int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" || c.JWTSecret == "dev-secret" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.LoginPassword == "studio" {
			return fmt.Errorf("LOGIN_PASSWORD must be changed in production")
		}
		if c.AdminKey == "studio-admin" {
			return fmt.Errorf("ADMIN_KEY must be changed in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.BaseDesignCost <= 0 {
		return fmt.Errorf("BASE_DESIGN_COST must be positive")
	}
	return nil
}
