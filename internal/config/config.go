package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	SessionSecret string

	GinMode    string
	ListenAddr string
	BaseURL    string

	// AuthStrategy selects the credential strategy: "session" or "token".
	AuthStrategy string

	// AllowClearValue enables the "null" sentinel that clears a copy's
	// progress or rating.
	AllowClearValue bool

	SteamAPIKey  string
	SteamTimeout time.Duration
}

func Load() *Config {
	loadDotenv()

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "library"),
		DBPassword: getEnv("DB_PASSWORD", "librarypassword"),
		DBName:     getEnv("DB_NAME", "game_library"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),

		GinMode:    getEnv("GIN_MODE", "debug"),
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
		BaseURL:    getEnv("BASE_URL", "http://localhost:8080"),

		AuthStrategy:    getEnv("AUTH_STRATEGY", "session"),
		AllowClearValue: getEnvBool("ALLOW_CLEAR_VALUE", true),

		SteamAPIKey:  getEnv("STEAM_API_KEY", ""),
		SteamTimeout: getEnvDuration("STEAM_TIMEOUT", 15*time.Second),
	}
}

// loadDotenv loads the first .env found in the working directory or its
// parents. Missing files are not an error.
func loadDotenv() {
	for _, p := range []string{".env", filepath.Join("..", ".env"), filepath.Join("..", "..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Overload(p)
			log.Println("Loaded environment from", p)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
