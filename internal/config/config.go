// Package config centralises all environment configuration for the server.
// It should be imported only by `cmd/server` (and test code). Business-logic
// layers receive an already-built Config instance via dependency-injection.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime option the server needs.
// Keep it flat and simple; prefer primitive types over embedding structs.
type Config struct {
	// Network
	Port string

	// Data store
	MongoURI string
	DBName   string

	// Advice generation. AIProvider selects "gemini", "dummy" (canned output
	// for local dev) or "" for deterministic fallback suggestions. Gemini
	// credentials are resolved by the client library from the environment
	// (GOOGLE_APPLICATION_CREDENTIALS), never from a literal default.
	AIProvider  string
	ProjectID   string
	Location    string
	GeminiModel string
	AITimeout   time.Duration

	// Match / search limits
	AdviceWebLimit int
	AdviceAPILimit int
	SearchLimit    int

	// Server tuning
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load parses the environment (and an optional .env file) into Config.
// It terminates the process on missing critical variables so
// mis-configurations fail fast.
func Load() Config {
	// godotenv.Load() is a no-op if .env doesn't exist; safe in production.
	_ = godotenv.Load()

	return Config{
		Port:           must("PORT"),
		MongoURI:       must("MONGODB_URI"),
		DBName:         getEnv("MONGODB_DB", "bookswap"),
		AIProvider:     getEnv("AI_PROVIDER", ""),
		ProjectID:      getEnv("GCP_PROJECT_ID", ""),
		Location:       getEnv("GCP_LOCATION", "us-central1"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		AITimeout:      getDuration("AI_TIMEOUT_SEC", 20),
		AdviceWebLimit: getInt("ADVICE_WEB_LIMIT", 20),
		AdviceAPILimit: getInt("ADVICE_API_LIMIT", 50),
		SearchLimit:    getInt("SEARCH_LIMIT", 100),
		ReadTimeout:    getDuration("READ_TIMEOUT_SEC", 5),
		WriteTimeout:   getDuration("WRITE_TIMEOUT_SEC", 30),
	}
}

// must fetches a required env var or terminates the program.
func must(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("env var %s is required", key)
	}
	return val
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getInt reads a positive integer from env, falling back to defaultVal.
func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("invalid %s=%q; using default %d", key, v, defaultVal)
	}
	return defaultVal
}

// getDuration reads an integer (seconds) from env, falling back to defaultSec.
func getDuration(key string, defaultSec int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			return time.Duration(sec) * time.Second
		}
		log.Printf("invalid %s=%q; using default %ds", key, v, defaultSec)
	}
	return time.Duration(defaultSec) * time.Second
}
