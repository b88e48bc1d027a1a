package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Budget is the raw user-supplied budget text, e.g. "under $50" or "15k".
	// It is parsed and validated before any other work starts.
	Budget string

	WeightPrice  float64
	WeightRating float64

	ResultsPerPlatform int
	MaxConcurrency     int
	MaxRetries         int

	FeedDir       string
	CSVOutputPath string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "shopper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "shopper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "shopper_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		Budget: getEnv("BUDGET", ""),

		WeightPrice:  getEnvFloat("WEIGHT_PRICE", 0.5),
		WeightRating: getEnvFloat("WEIGHT_RATING", 0.5),

		ResultsPerPlatform: getEnvInt("RESULTS_PER_PLATFORM", 2),
		MaxConcurrency:     getEnvInt("MAX_CONCURRENCY", 3),
		MaxRetries:         getEnvInt("MAX_RETRIES", 3),

		FeedDir:       getEnv("FEED_DIR", "./feeds"),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/raw_listings.csv"),
	}

	// Cap to avoid excessive work per platform.
	if cfg.ResultsPerPlatform < 1 {
		cfg.ResultsPerPlatform = 1
	}
	if cfg.ResultsPerPlatform > 20 {
		cfg.ResultsPerPlatform = 20
	}

	return cfg
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}
