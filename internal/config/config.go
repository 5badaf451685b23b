package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Messenger    MessengerConfig
	Admin        AdminConfig
	Session      SessionConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	PublicDir             string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// MessengerConfig holds Messenger platform credentials and endpoints.
type MessengerConfig struct {
	VerifyToken        string
	PageAccessToken    string
	SendAPIURL         string
	SendTimeoutSeconds int
}

// AdminConfig guards the destructive admin operations.
type AdminConfig struct {
	Token string
}

// SessionConfig selects the conversation session backend.
type SessionConfig struct {
	Backend    string
	TTLMinutes int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "incident-report-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			PublicDir:             getEnv("PUBLIC_DIR", "public"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Messenger: MessengerConfig{
			VerifyToken:        os.Getenv("VERIFY_TOKEN"),
			PageAccessToken:    os.Getenv("PAGE_ACCESS_TOKEN"),
			SendAPIURL:         getEnv("MESSENGER_SEND_API_URL", "https://graph.facebook.com/v21.0/me/messages"),
			SendTimeoutSeconds: getEnvAsInt("MESSENGER_SEND_TIMEOUT_SECONDS", 10),
		},
		Admin: AdminConfig{
			// Insecure default carried over from the deployed configuration.
			Token: getEnv("ADMIN_TOKEN", "admin123"),
		},
		Session: SessionConfig{
			Backend:    getEnv("SESSION_BACKEND", "memory"),
			TTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 60),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", ""),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
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

// SendTimeout returns the outbound send timeout duration.
func (m MessengerConfig) SendTimeout() time.Duration {
	if m.SendTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(m.SendTimeoutSeconds) * time.Second
}

// TTL returns the session expiry for backends that support it.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
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
