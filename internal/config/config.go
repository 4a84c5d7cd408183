package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Menu     MenuConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Static   StaticConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines the quota-token parameters.
type AuthConfig struct {
	JWTSecret          string
	WindowSeconds      int
	MessagesLimit      int
	EnforceFingerprint bool
	RequireToken       bool
	QuotaStore         string
}

// MenuConfig lists candidate menu document locations, probed in order.
type MenuConfig struct {
	Paths []string
}

// UpstreamConfig holds the completion API connection values.
type UpstreamConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	TimeoutSeconds int
	Temperature    float64
	MaxTokens      int
}

// RedisConfig holds Redis connection values for the optional quota store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StaticConfig controls serving of the built client assets.
type StaticConfig struct {
	Dir      string
	Disabled bool
}

// DefaultJWTSecret is the insecure fallback signing secret. Deployments must
// override AUTH_JWT_SECRET.
const DefaultJWTSecret = "dev-secret-change-in-production"

// QuotaStore values.
const (
	QuotaStoreNone  = "none"
	QuotaStoreRedis = "redis"
)

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	temperature, err := strconv.ParseFloat(getEnv("OPENROUTER_TEMPERATURE", "0.7"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OPENROUTER_TEMPERATURE: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "menu-assistant"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "5174"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("AUTH_JWT_SECRET", DefaultJWTSecret),
			WindowSeconds:      getEnvAsInt("AUTH_WINDOW_SECONDS", 43200),
			MessagesLimit:      getEnvAsInt("AUTH_MESSAGES_LIMIT", 5),
			EnforceFingerprint: getEnvAsBool("AUTH_ENFORCE_FINGERPRINT", false),
			RequireToken:       getEnvAsBool("AUTH_REQUIRE_TOKEN", true),
			QuotaStore:         getEnv("AUTH_QUOTA_STORE", QuotaStoreNone),
		},
		Menu: MenuConfig{
			Paths: getEnvAsList("MENU_PATHS", []string{
				"menu.json",
				"public/menu.json",
				"src/data/menu.json",
			}),
		},
		Upstream: UpstreamConfig{
			APIKey:         os.Getenv("OPENROUTER_API_KEY"),
			Model:          getEnv("OPENROUTER_MODEL", "openai/gpt-3.5-turbo"),
			BaseURL:        getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			TimeoutSeconds: getEnvAsInt("OPENROUTER_TIMEOUT_SECONDS", 20),
			Temperature:    temperature,
			MaxTokens:      getEnvAsInt("OPENROUTER_MAX_TOKENS", 600),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Static: StaticConfig{
			Dir:      getEnv("PUBLIC_DIR", "dist"),
			Disabled: getEnvAsBool("STATIC_DISABLED", false),
		},
	}

	if cfg.Auth.QuotaStore != QuotaStoreNone && cfg.Auth.QuotaStore != QuotaStoreRedis {
		return nil, fmt.Errorf("invalid AUTH_QUOTA_STORE: %q", cfg.Auth.QuotaStore)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Window returns the quota window duration.
func (a AuthConfig) Window() time.Duration {
	return time.Duration(a.WindowSeconds) * time.Second
}

// Timeout returns the upstream request timeout.
func (u UpstreamConfig) Timeout() time.Duration {
	if u.TimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(u.TimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
