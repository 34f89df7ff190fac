package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// ErrMissingSecret means JWT_SECRET or API_MASTER_SECRET is unset; with an empty secret
// anyone can sign admin tokens and API keys.
var ErrMissingSecret = errors.New("JWT_SECRET and API_MASTER_SECRET must be set")

// Config holds the server settings read from the environment
type Config struct {
	Port          string
	GinMode       string
	DatabaseURL   string // postgres DSN; sqlite is used when empty
	DataPath      string // sqlite file
	JWTSecret     string
	MasterSecret  string // signs API keys
	AdminUsername string
	AdminPassword string
}

// LoadEnv loads the first .env file found in the working directory or its parents.
// A missing file is not an error.
func LoadEnv() string {
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return p
		}
	}
	return ""
}

// FromEnv builds a Config from environment variables, filling in defaults
func FromEnv() Config {
	return Config{
		Port:          getenv("PORT", "8000"),
		GinMode:       os.Getenv("GIN_MODE"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DataPath:      getenv("DATA_PATH", "wichtel.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		MasterSecret:  os.Getenv("API_MASTER_SECRET"),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate checks the settings the server cannot run without
func (c Config) Validate() error {
	if c.JWTSecret == "" || c.MasterSecret == "" {
		return ErrMissingSecret
	}
	return nil
}
