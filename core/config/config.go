package config

import (
	"path/filepath"
	"strings"
	"time"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App        AppConfig
	Paths      PathsConfig
	Database   DatabaseConfig
	Upstream   UpstreamConfig
	Notifier   NotifierConfig
	Calendar   CalendarConfig
	WorkerPool WorkerPoolConfig
}

type AppConfig struct {
	Version            string
	Port               string
	Debug              bool
	Environment        string
	BasicAuth          []string
	BasePath           string
	TrustedProxies     []string
	BaseUrl            string
	CorsAllowedOrigins []string
	ServerID           string
}

type PathsConfig struct {
	Storages string
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string // File path for SQLite, DB name for Postgres
	ValkeyEnabled   bool
	ValkeyAddress   string
	ValkeyPassword  string
	ValkeyDB        int
	ValkeyKeyPrefix string
}

// UpstreamConfig points at the external content services. When Mode is
// "embedded" the local gorm-backed store serves the same contracts and the
// URLs are ignored.
type UpstreamConfig struct {
	Mode           string // "embedded" or "remote"
	PostsURL       string
	SchedulesURL   string
	ApprovalURL    string
	APIToken       string
	RequestTimeout time.Duration
}

type NotifierConfig struct {
	BaseDelayMs               int
	JitterRangeMs             int
	BulkSendDelayMs           int
	WebhookURL                string // outbound transport target
	WebhookSecret             string
	WebhookInsecureSkipVerify bool
	DefaultRecipient          string
}

type CalendarConfig struct {
	Timezone string // IANA name used for display labels; bucketing stays UTC
}

type WorkerPoolConfig struct {
	Size      int
	QueueSize int
}

// Global provides access to the loaded configuration (set by LoadConfig).
var Global *Config

// LoadConfig loads configuration from environment variables or defaults.
func LoadConfig() (*Config, error) {
	storages := getEnv("APP_BASE_DIR", "storages")

	var basicAuth []string
	if v := getEnv("APP_BASIC_AUTH", ""); v != "" {
		basicAuth = strings.Split(v, ",")
	}

	corsOrigins := []string{"http://localhost:4200", "http://localhost:3000"}
	if v := getEnv("APP_CORS_ALLOWED_ORIGINS", ""); v != "" {
		corsOrigins = strings.Split(v, ",")
	}

	appCfg := AppConfig{
		Version:            "v1.4.0",
		Port:               getEnv("APP_PORT", "3000"),
		Debug:              getEnvBool("APP_DEBUG", false),
		Environment:        getEnv("APP_ENV", "development"),
		BasicAuth:          basicAuth,
		BasePath:           getEnv("APP_BASE_PATH", ""),
		BaseUrl:            getEnv("APP_BASE_URL", "http://localhost:3000"),
		CorsAllowedOrigins: corsOrigins,
		ServerID:           getEnv("SERVER_ID", ""),
	}
	if v := getEnv("APP_TRUSTED_PROXIES", ""); v != "" {
		appCfg.TrustedProxies = strings.Split(v, ",")
	}

	dbCfg := DatabaseConfig{
		Driver:          getEnv("DB_DRIVER", "sqlite"),
		Name:            getEnv("DB_NAME", filepath.Join(storages, "content.db")),
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvInt("DB_PORT", 5432),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", ""),
		ValkeyEnabled:   getEnvBool("VALKEY_ENABLED", false),
		ValkeyAddress:   getEnv("VALKEY_ADDRESS", "localhost:6379"),
		ValkeyPassword:  getEnv("VALKEY_PASSWORD", ""),
		ValkeyDB:        getEnvInt("VALKEY_DB", 0),
		ValkeyKeyPrefix: getEnv("VALKEY_KEY_PREFIX", "acpro:"),
	}

	upstreamCfg := UpstreamConfig{
		Mode:           getEnv("CONTENT_API_MODE", "embedded"),
		PostsURL:       getEnv("POSTS_API_URL", "http://localhost:3333/api"),
		SchedulesURL:   getEnv("SCHEDULES_API_URL", "http://localhost:3333/api"),
		ApprovalURL:    getEnv("APPROVAL_API_URL", "http://localhost:3333/api"),
		APIToken:       getEnv("CONTENT_API_TOKEN", ""),
		RequestTimeout: time.Duration(getEnvInt("CONTENT_API_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	notifierCfg := NotifierConfig{
		BaseDelayMs:               getEnvInt("NOTIFY_BASE_DELAY_MS", 12000),
		JitterRangeMs:             getEnvInt("NOTIFY_JITTER_RANGE_MS", 3000),
		BulkSendDelayMs:           getEnvInt("NOTIFY_BULK_SEND_DELAY_MS", 2000),
		WebhookURL:                getEnv("NOTIFY_TRANSPORT_WEBHOOK_URL", ""),
		WebhookSecret:             getEnv("NOTIFY_TRANSPORT_WEBHOOK_SECRET", ""),
		WebhookInsecureSkipVerify: getEnvBool("NOTIFY_TRANSPORT_WEBHOOK_INSECURE_SKIP_VERIFY", false),
		DefaultRecipient:          getEnv("NOTIFY_DEFAULT_RECIPIENT", ""),
	}

	cfg := &Config{
		App:        appCfg,
		Paths:      PathsConfig{Storages: storages},
		Database:   dbCfg,
		Upstream:   upstreamCfg,
		Notifier:   notifierCfg,
		Calendar:   CalendarConfig{Timezone: getEnv("CALENDAR_TIMEZONE", "UTC")},
		WorkerPool: WorkerPoolConfig{Size: getEnvInt("COMMAND_WORKER_POOL_SIZE", 8), QueueSize: getEnvInt("COMMAND_WORKER_QUEUE_SIZE", 256)},
	}

	Global = cfg
	return cfg, nil
}
