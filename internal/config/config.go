package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Firestore FirestoreConfig
	Auth      AuthConfig
	Meta      MetaConfig
	Services  ServicesConfig
	Server    ServerConfig
}

// FirestoreConfig holds document store connection settings
type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string // optional, falls back to application default credentials
}

// AuthConfig holds authentication-related configuration
type AuthConfig struct {
	JWTSecret string
}

// MetaConfig holds Meta Graph API settings
type MetaConfig struct {
	APIVersion string
	BaseURL    string
}

// ServicesConfig holds external service API keys and configuration
type ServicesConfig struct {
	GoogleAIAPIKey string
	WebAppURI      string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	var err error
	if cfg.Firestore.ProjectID, err = requireEnv("FIRESTORE_PROJECT_ID"); err != nil {
		return nil, err
	}
	cfg.Firestore.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")

	if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}

	cfg.Meta.APIVersion = getEnvWithDefault("META_API_VERSION", "v19.0")
	cfg.Meta.BaseURL = getEnvWithDefault("META_BASE_URL", "https://graph.facebook.com")

	if cfg.Services.GoogleAIAPIKey, err = requireEnv("GOOGLE_AI_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.Services.WebAppURI, err = requireEnv("WEBAPP_URI"); err != nil {
		return nil, err
	}

	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}

	return cfg, nil
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
