package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string

	// CORS
	AllowedOrigins []string

	// Oracle (language model backend)
	OracleMode    string // subprocess | openai
	OracleModel   string
	OracleBaseURL string // OpenAI-compatible endpoint (Ollama /v1 or api.openai.com)
	OracleAPIKey  string
	OracleTimeout time.Duration

	// Scheduling
	DefaultTimezone string // IANA zone name sent to calendar providers
	TimezoneOffset  string // fixed +-HH:MM offset used for serialized instants, no DST
	MeetingDuration time.Duration
	WeekdayPolicy   string // same-week | next-week (bare weekday mention resolution)

	// Google Calendar (server-side helper)
	GoogleCredentialsFile string
	GoogleTokenFile       string

	// Optional infrastructure
	RedisURL           string
	JWTSecret          string
	SuggestionCacheTTL time.Duration
	RateLimitPerMinute int
}

func Load() (*Config, error) {
	return &Config{
		Port:        getEnv("PORT", "5000"),
		Environment: getEnv("ENV", "development"),

		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{
			"https://mail.google.com",
			"https://outlook.office.com",
			"https://outlook.live.com",
			"chrome-extension://*",
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}),

		OracleMode:    getEnv("ORACLE_MODE", "subprocess"),
		OracleModel:   getEnv("ORACLE_MODEL", "emailsenglish2:latest"),
		OracleBaseURL: getEnv("ORACLE_BASE_URL", "http://localhost:11434/v1"),
		OracleAPIKey:  getEnv("ORACLE_API_KEY", "ollama"),
		OracleTimeout: time.Duration(getEnvInt("ORACLE_TIMEOUT_SEC", 60)) * time.Second,

		DefaultTimezone: getEnv("DEFAULT_TIMEZONE", "America/Chicago"),
		TimezoneOffset:  getEnv("TIMEZONE_OFFSET", "-06:00"),
		MeetingDuration: time.Duration(getEnvInt("MEETING_DURATION_MIN", 120)) * time.Minute,
		WeekdayPolicy:   getEnv("WEEKDAY_POLICY", "same-week"),

		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		GoogleTokenFile:       getEnv("GOOGLE_TOKEN_FILE", "token.json"),

		RedisURL:           getEnv("REDIS_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		SuggestionCacheTTL: time.Duration(getEnvInt("SUGGESTION_CACHE_TTL_MIN", 30)) * time.Minute,
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
