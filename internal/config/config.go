package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	DatabaseURL      string
	Port             int
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string // Empty disables the auth middleware
	BcryptCost       int
	CacheTTL         time.Duration
	HeadcountRefresh time.Duration
}

func Load() (*Config, error) {
	// .env is a development convenience; real deployments set the environment
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg := &Config{
		DatabaseURL:      databaseURL,
		Port:             getEnvInt("PORT", 8080),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		BcryptCost:       getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		CacheTTL:         time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		HeadcountRefresh: time.Duration(getEnvInt("HEADCOUNT_REFRESH_SECONDS", 300)) * time.Second,
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
