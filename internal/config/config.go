// README: Config loader with env defaults for HTTP, storage, AI and provider adapters.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"

	AIGemini = "gemini"
	AIGroq   = "groq"
	AINone   = "none"
)

type ProviderConfig struct {
	OpenWeatherKey    string
	OpenWeatherURL    string
	ExchangeRateURL   string
	LibreTranslateURL string
	GoogleMapsKey     string
	Timeout           time.Duration
}

type AIConfig struct {
	Provider  string
	GeminiKey string
	GroqKey   string
	Timeout   time.Duration
}

type Config struct {
	HTTP struct {
		Addr         string
		CORSOrigins  []string
		MaxBodyBytes int64
	}
	LogLevel string
	Store    string
	DB       struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Firebase struct {
		ProjectID       string
		CredentialsFile string
	}
	AI          AIConfig
	Providers   ProviderConfig
	PlanTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; variables already set win.
// Returns an error naming every variable the selected backends require but lack.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("JOURNEO_HTTP_ADDR", ":8080")
	cfg.HTTP.CORSOrigins = splitCSV(envOrDefault("JOURNEO_CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"))
	cfg.HTTP.MaxBodyBytes = int64(envOrDefaultInt("JOURNEO_MAX_BODY_BYTES", 1<<20))
	cfg.LogLevel = envOrDefault("JOURNEO_LOG_LEVEL", "info")
	cfg.Store = strings.ToLower(envOrDefault("JOURNEO_STORE", StoreMemory))
	cfg.DB.DSN = os.Getenv("JOURNEO_DB_DSN")
	cfg.Redis.Addr = envOrDefault("JOURNEO_REDIS_ADDR", "localhost:6379")
	cfg.Firebase.ProjectID = os.Getenv("JOURNEO_FIREBASE_PROJECT_ID")
	cfg.Firebase.CredentialsFile = os.Getenv("JOURNEO_FIREBASE_CREDENTIALS")

	cfg.AI.Provider = strings.ToLower(envOrDefault("JOURNEO_AI_PROVIDER", AIGemini))
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.GroqKey = os.Getenv("GROQ_API_KEY")
	cfg.AI.Timeout = envOrDefaultDuration("JOURNEO_AI_TIMEOUT", 45*time.Second)

	cfg.Providers.OpenWeatherKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.Providers.OpenWeatherURL = envOrDefault("OPENWEATHER_API_URL", "https://api.openweathermap.org/data/2.5")
	cfg.Providers.ExchangeRateURL = envOrDefault("EXCHANGERATE_API_URL", "https://api.exchangerate.host")
	cfg.Providers.LibreTranslateURL = envOrDefault("LIBRETRANSLATE_API_URL", "https://libretranslate.de")
	cfg.Providers.GoogleMapsKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.Providers.Timeout = envOrDefaultDuration("JOURNEO_PROVIDER_TIMEOUT", 10*time.Second)

	cfg.PlanTimeout = envOrDefaultDuration("JOURNEO_PLAN_TIMEOUT", 90*time.Second)

	var missing []string
	switch cfg.Store {
	case StoreMemory, StoreRedis:
	case StorePostgres:
		if cfg.DB.DSN == "" {
			missing = append(missing, "JOURNEO_DB_DSN")
		}
	default:
		return Config{}, fmt.Errorf("unknown JOURNEO_STORE %q (want memory, postgres or redis)", cfg.Store)
	}
	switch cfg.AI.Provider {
	case AINone:
	case AIGemini:
		if cfg.AI.GeminiKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	case AIGroq:
		if cfg.AI.GroqKey == "" {
			missing = append(missing, "GROQ_API_KEY")
		}
	default:
		return Config{}, fmt.Errorf("unknown JOURNEO_AI_PROVIDER %q (want gemini, groq or none)", cfg.AI.Provider)
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
