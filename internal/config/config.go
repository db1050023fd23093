package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	PostgresURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	PlacesAPIKey  string
	PlacesBaseURL string

	LLMProvider  string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	JWTSecret string
	JWTTTL    time.Duration

	TravelBuffer      time.Duration
	MaxRepairPasses   int
	HoursCacheTTL     time.Duration
	EnrichConcurrency int
	DayPolicyFile     string
}

// Load reads the environment, optionally seeded from a .env file in the working directory.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %v", err)
	}

	return Config{
		Port:        getEnvWithDefault("PORT", "8080"),
		Environment: getEnvWithDefault("APP_ENV", "development"),
		PostgresURL: os.Getenv("POSTGRES_URL"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		PlacesAPIKey:  os.Getenv("GOOGLE_PLACES_API_KEY"),
		PlacesBaseURL: getEnvWithDefault("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),

		LLMProvider:  strings.ToLower(getEnvWithDefault("LLM_PROVIDER", "gemini")),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    getDurationEnv("JWT_TTL", time.Hour),

		TravelBuffer:      getDurationEnv("TRAVEL_BUFFER", 15*time.Minute),
		MaxRepairPasses:   getIntEnv("MAX_REPAIR_PASSES", 3),
		HoursCacheTTL:     getDurationEnv("HOURS_CACHE_TTL", 7*24*time.Hour),
		EnrichConcurrency: getIntEnv("ENRICH_CONCURRENCY", 4),
		DayPolicyFile:     os.Getenv("DAY_POLICY_FILE"),
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		log.Printf("Ignoring %s=%q: not a duration", key, value)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("Ignoring %s=%q: not an integer", key, value)
	}
	return fallback
}
