package config

import (
	"os"
	"time"
)

type Config struct {
	DBConnStr  string
	JWTSecret  []byte
	ServerPort string
	TokenTTL   time.Duration
}

func LoadConfig() *Config {
	return &Config{
		DBConnStr:  getEnvOrDefault("DB_CONN", "host=localhost port=5432 user=postgres password=postgres dbname=shopdb sslmode=disable"),
		JWTSecret:  []byte(getEnvOrDefault("JWT_SECRET", "")),
		ServerPort: getEnvOrDefault("PORT", "8080"),
		TokenTTL:   getDurationOrDefault("TOKEN_TTL", 24*time.Hour),
	}
}

func getEnvOrDefault(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func getDurationOrDefault(key string, def time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return def
	}
	return d
}
