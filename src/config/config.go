package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DatabaseURL      string
	RedisAddr        string
	BankOffersFile   string
	SocialOffersFile string
	BankOffersURL    string
	RefreshInterval  int // hours
	RateLimitPerMin  int
}

func Load() Config {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		BankOffersFile:   getEnv("BANK_OFFERS_FILE", ""),
		SocialOffersFile: getEnv("SOCIAL_OFFERS_FILE", ""),
		BankOffersURL:    getEnv("BANK_OFFERS_URL", ""),
		RefreshInterval:  getEnvInt("REFRESH_INTERVAL_HOURS", 48),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MIN", 30),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
		log.Printf("ERROR: Invalid %s=%q, using default %d", key, value, fallback)
	}
	return fallback
}
