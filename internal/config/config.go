package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Environment string
	HTTPPort    string
	LogLevel    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Load reads configuration from the environment, overlaying a .env file when
// one is present. Every setting has a working default; a missing database
// password only fails later, at connect time.
func Load() Config {
	_ = godotenv.Load()

	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}

	return Config{
		App: AppConfig{
			Environment: opt("APP_ENV", "production"),
			HTTPPort:    opt("HTTP_PORT", "8080"),
			LogLevel:    opt("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			DBHost:     opt("DB_HOST", "localhost"),
			DBPort:     opt("DB_PORT", "5432"),
			DBName:     opt("DB_NAME", "career-copilot"),
			DBUser:     opt("DB_USER", "postgres"),
			DBPassword: os.Getenv("DB_PASSWORD"),
			DBSSLMode:  opt("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     opt("REDIS_HOST", "localhost"),
			Port:     opt("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}
}
