package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Port string
	Env  string

	JWTSecret string
	JWTExpiry time.Duration

	// API client allowed to request tokens. Auth is disabled when the hash is empty.
	ClientID         string
	ClientSecretHash string

	WeatherAPIKey      string
	WeatherBaseURL     string
	WeatherTimeout     time.Duration
	WeatherDefaultCity string

	AlphabetsFile           string
	GeneratorMaxLength      int
	GeneratorMaxCount       int
	GeneratorMaxHashedCount int

	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() Config {
	cfg := Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		JWTSecret:               getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry:               getDuration("JWT_EXPIRY", time.Hour),
		ClientID:                getEnv("API_CLIENT_ID", "passforge-client"),
		ClientSecretHash:        getEnv("API_CLIENT_SECRET_HASH", ""),
		WeatherAPIKey:           getEnv("OWM_API_KEY", ""),
		WeatherBaseURL:          getEnv("OWM_BASE_URL", "https://api.openweathermap.org/data/2.5/weather"),
		WeatherTimeout:          getDuration("WEATHER_TIMEOUT", 5*time.Second),
		WeatherDefaultCity:      getEnv("WEATHER_DEFAULT_CITY", "Chennai"),
		AlphabetsFile:           getEnv("ALPHABETS_FILE", ""),
		GeneratorMaxLength:      getInt("GENERATOR_MAX_LENGTH", 128),
		GeneratorMaxCount:       getInt("GENERATOR_MAX_COUNT", 50),
		GeneratorMaxHashedCount: getInt("GENERATOR_MAX_HASHED_COUNT", 5),
		RateLimitRPS:            getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:          getInt("RATE_LIMIT_BURST", 10),
	}

	if cfg.Env == "production" && cfg.JWTSecret == devJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

// AuthEnabled reports whether an API client is configured.
func (c Config) AuthEnabled() bool {
	return c.ClientSecretHash != ""
}

// WeatherEnabled reports whether the weather lookup has an upstream API key.
func (c Config) WeatherEnabled() bool {
	return c.WeatherAPIKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("invalid number in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
