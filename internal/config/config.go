package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Env string

	Server    ServerConfig
	Database  DatabaseConfig
	AI        AIConfig
	Unsplash  UnsplashConfig
	Countries CountriesConfig
	Redis     RedisConfig
	Auth      AuthConfig
}

type ServerConfig struct {
	Port            string
	WebAppURL       string // origin of the web app that owns the sign-in and home pages
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL         string
	AutoMigrate bool
}

// AIConfig selects the text generation provider used to draft itineraries.
type AIConfig struct {
	Provider       string // "gemini" | "openai"
	GeminiAPIKey   string
	GeminiModel    string
	OpenAIAPIKey   string
	OpenAIModel    string
	EmbeddingModel string
	RequestTimeout time.Duration
}

type UnsplashConfig struct {
	AccessKey string
	BaseURL   string
	RPS       int
}

type CountriesConfig struct {
	BaseURL  string
	CacheTTL time.Duration
}

// RedisConfig is optional; an empty Addr keeps the country cache in process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	RedirectURL        string
	JWTSecret          string
	SessionTTL         time.Duration
	CookieName         string
	SecureCookie       bool
	AdminEmails        []string
}

// Load loads configuration from the environment, reading .env first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := &Config{
		Env: getEnv("APP_ENV", "dev"),
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			WebAppURL:       getEnv("WEB_APP_URL", "http://localhost:5173"),
			AllowedOrigins:  getListEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Database: DatabaseConfig{
			URL:         os.Getenv("POSTGRES_URL"),
			AutoMigrate: getBoolEnv("DB_AUTO_MIGRATE", true),
		},
		AI: AIConfig{
			Provider:       strings.ToLower(getEnv("AI_PROVIDER", "gemini")),
			GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
			GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			EmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			RequestTimeout: getDurationEnv("AI_REQUEST_TIMEOUT", 60*time.Second),
		},
		Unsplash: UnsplashConfig{
			AccessKey: os.Getenv("UNSPLASH_ACCESS_KEY"),
			BaseURL:   getEnv("UNSPLASH_BASE_URL", "https://api.unsplash.com"),
			RPS:       getIntEnv("UNSPLASH_RPS", 5),
		},
		Countries: CountriesConfig{
			BaseURL:  getEnv("COUNTRIES_BASE_URL", "https://restcountries.com/v3.1"),
			CacheTTL: getDurationEnv("COUNTRIES_CACHE_TTL", 24*time.Hour),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:        getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/callback"),
			JWTSecret:          os.Getenv("JWT_SECRET"),
			SessionTTL:         getDurationEnv("SESSION_TTL", 7*24*time.Hour),
			CookieName:         getEnv("SESSION_COOKIE_NAME", "wayfarer_session"),
			SecureCookie:       getBoolEnv("SESSION_COOKIE_SECURE", false),
			AdminEmails:        getListEnv("ADMIN_EMAILS", nil),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		log.Printf("Warning: JWT_SECRET is empty, sessions are signed with an empty key")
	}

	return cfg, nil
}

// IsDev reports whether the app runs with development defaults.
func (c *Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Warning: invalid integer for %s: %q", key, value)
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		log.Printf("Warning: invalid boolean for %s: %q", key, value)
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration for %s: %q", key, value)
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
