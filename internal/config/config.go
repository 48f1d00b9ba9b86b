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
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Backend  BackendConfig
	Storage  StorageConfig
	Mail     MailConfig
	Invite   InviteConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	CORSAllowOrigins      string
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

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level       string
	Encoding    string
	Development bool
	Service     string
}

// BackendConfig selects between the live store and the in-memory store.
type BackendConfig struct {
	// Preferred is "live" or "mock".
	Preferred           string
	ProbeTimeoutSeconds int
	ReprobeAfterSeconds int
}

// StorageConfig points at the bucket holding company documents.
type StorageConfig struct {
	Bucket          string
	CredentialsJSON string
	PublicBaseURL   string
}

// MailConfig configures the transactional e-mail provider.
type MailConfig struct {
	APIURL     string
	APIKey     string
	From       string
	PortalURL  string
	CareersURL string
}

// InviteConfig configures signed employee invitation links.
type InviteConfig struct {
	TokenSecret   string
	TokenTTLHours int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	preferred := strings.ToLower(getEnv("DATA_BACKEND", "live"))
	if preferred != "live" && preferred != "mock" {
		return nil, fmt.Errorf("invalid DATA_BACKEND %q: want live or mock", preferred)
	}

	appEnv := getEnv("APP_ENV", "development")
	appName := getEnv("APP_NAME", "hris-service")

	cfg := &Config{
		App: AppConfig{
			Name:                  appName,
			Env:                   appEnv,
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			CORSAllowOrigins:      getEnv("CORS_ALLOW_ORIGINS", "*"),
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
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Encoding:    getEnv("LOG_ENCODING", "json"),
			Development: appEnv == "development",
			Service:     appName,
		},
		Backend: BackendConfig{
			Preferred:           preferred,
			ProbeTimeoutSeconds: getEnvAsInt("BACKEND_PROBE_TIMEOUT_SECONDS", 2),
			ReprobeAfterSeconds: getEnvAsInt("BACKEND_REPROBE_INTERVAL_SECONDS", 30),
		},
		Storage: StorageConfig{
			Bucket:          os.Getenv("GCS_BUCKET"),
			CredentialsJSON: os.Getenv("GCS_CREDENTIALS_JSON"),
			PublicBaseURL:   getEnv("GCS_PUBLIC_BASE_URL", "https://storage.googleapis.com"),
		},
		Mail: MailConfig{
			APIURL:     os.Getenv("MAIL_API_URL"),
			APIKey:     os.Getenv("MAIL_API_KEY"),
			From:       getEnv("MAIL_FROM", "HR Team <noreply@example.com>"),
			PortalURL:  getEnv("PORTAL_URL", "http://localhost:5174"),
			CareersURL: getEnv("CAREERS_URL", "http://localhost:5175"),
		},
		Invite: InviteConfig{
			TokenSecret:   getEnv("INVITE_TOKEN_SECRET", "dev-invite-secret"),
			TokenTTLHours: getEnvAsInt("INVITE_TOKEN_TTL_HOURS", 72),
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

// Configured reports whether the DSN holds real credentials.
func (p PostgresConfig) Configured() bool {
	return !IsPlaceholder(p.DSN)
}

// ProbeTimeout bounds the live store connection check.
func (b BackendConfig) ProbeTimeout() time.Duration {
	return seconds(b.ProbeTimeoutSeconds)
}

// ReprobeInterval is how long an unreachable live store is left alone.
func (b BackendConfig) ReprobeInterval() time.Duration {
	return seconds(b.ReprobeAfterSeconds)
}

// Configured reports whether an outbound mail provider is set up.
func (m MailConfig) Configured() bool {
	return !IsPlaceholder(m.APIURL) && !IsPlaceholder(m.APIKey)
}

// Configured reports whether a document bucket is set up.
func (s StorageConfig) Configured() bool {
	return !IsPlaceholder(s.Bucket)
}

// InviteTTL returns how long invitation links stay valid.
func (i InviteConfig) InviteTTL() time.Duration {
	if i.TokenTTLHours <= 0 {
		return 72 * time.Hour
	}
	return time.Duration(i.TokenTTLHours) * time.Hour
}

var placeholderMarkers = []string{"your-", "your_", "changeme", "placeholder", "xxx"}

// IsPlaceholder reports whether a credential is empty or a template value left unfilled.
func IsPlaceholder(val string) bool {
	v := strings.ToLower(strings.TrimSpace(val))
	if v == "" {
		return true
	}
	if strings.HasPrefix(v, "<") && strings.HasSuffix(v, ">") {
		return true
	}
	for _, marker := range placeholderMarkers {
		if strings.Contains(v, marker) {
			return true
		}
	}
	return false
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
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
