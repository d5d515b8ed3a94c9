package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	API      APIConfig
	Realtime RealtimeConfig
	Payment  PaymentConfig
	Checkout CheckoutConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type APIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type RealtimeConfig struct {
	URL        string
	MaxBackoff time.Duration
}

type PaymentConfig struct {
	BaseURL        string
	PublishableKey string
	Environment    string // "test" or "live"
}

type CheckoutConfig struct {
	DefaultCountry   string
	UrgencyThreshold time.Duration // countdown escalates below this
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
			APIKey:  getEnv("API_KEY", ""),
			Timeout: getEnvAsDuration("API_TIMEOUT_SECONDS", 30),
		},
		Realtime: RealtimeConfig{
			URL:        getEnv("REALTIME_URL", "ws://localhost:8080/ws"),
			MaxBackoff: getEnvAsDuration("REALTIME_MAX_BACKOFF_SECONDS", 30),
		},
		Payment: PaymentConfig{
			BaseURL:        getEnv("PAYMENT_BASE_URL", "https://api.stripe.com"),
			PublishableKey: getEnv("PAYMENT_PUBLISHABLE_KEY", ""),
			Environment:    getEnv("PAYMENT_ENVIRONMENT", "test"),
		},
		Checkout: CheckoutConfig{
			DefaultCountry:   getEnv("DEFAULT_COUNTRY", "US"),
			UrgencyThreshold: getEnvAsDuration("URGENCY_THRESHOLD_SECONDS", 60),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}
