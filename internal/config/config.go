package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Telegram  TelegramConfig
	Storage   StorageConfig
	Cache     CacheConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port          string `validate:"required"`
	Environment   string
	LogFilePath   string
	AuditLogPath  string
	NatsURL       string
	RedisURL      string
	UpdateTimeout time.Duration
	ReportTopic   string `validate:"required"`
}

type DatabaseConfig struct {
	Connection string `validate:"required"`
}

type TelegramConfig struct {
	Token         string `validate:"required"`
	WebhookPath   string `validate:"required"`
	WebhookSecret string
	WebhookURL    string
}

type StorageConfig struct {
	Driver         string `validate:"oneof=gcs local"`
	Bucket         string `validate:"required"`
	Credentials    string `validate:"required_if=Driver gcs"`
	CDNDomain      string
	EvidenceFolder string `validate:"required"`
	LocalDir       string `validate:"required_if=Driver local"`
	PublicBaseURL  string
}

type TelemetryConfig struct {
	Enabled     bool
	Endpoint    string
	SampleRatio float64 `validate:"gte=0,lte=1"`
}

type CacheConfig struct {
	CatalogTTL time.Duration
	UpdateTTL  time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	credentials := getEnv("GOOGLE_APPLICATION_CREDENTIALS_JSON", "")
	if credentials == "" {
		credentials = getEnv("GOOGLE_APPLICATION_CREDENTIALS", "")
	}

	return &Config{
		App: AppConfig{
			Port:          getEnv("APP_PORT", "3000"),
			Environment:   getEnv("GO_ENV", "development"),
			LogFilePath:   getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogPath:  getEnv("AUDIT_LOG_PATH", "logs/report_audit.log"),
			NatsURL:       getEnv("NATS_URL", ""),
			RedisURL:      getEnv("REDIS_URL", ""),
			UpdateTimeout: getEnvAsDuration("UPDATE_TIMEOUT", 60*time.Second),
			ReportTopic:   getEnv("REPORT_TOPIC_NAME", "REPORT_SUBMITTED"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Telegram: TelegramConfig{
			Token:         getEnv("BOT_TOKEN", ""),
			WebhookPath:   getEnv("TELEGRAM_WEBHOOK_PATH", "/webhook"),
			WebhookSecret: getEnv("TELEGRAM_WEBHOOK_SECRET", ""),
			WebhookURL:    getEnv("TELEGRAM_WEBHOOK_URL", ""),
		},
		Storage: StorageConfig{
			Driver:         getEnv("STORAGE_DRIVER", "gcs"),
			Bucket:         getEnv("STORAGE_BUCKET", "eviden-bot"),
			Credentials:    credentials,
			CDNDomain:      getEnv("STORAGE_CDN_DOMAIN", ""),
			EvidenceFolder: getEnv("EVIDENCE_FOLDER", "EVIDENCE_FOLDER"),
			LocalDir:       getEnv("STORAGE_LOCAL_DIR", "./uploads"),
			PublicBaseURL:  getEnv("APP_BASE_URL", "http://localhost:3000"),
		},
		Cache: CacheConfig{
			CatalogTTL: getEnvAsDuration("CATALOG_CACHE_TTL", 5*time.Minute),
			UpdateTTL:  getEnvAsDuration("UPDATE_DEDUP_TTL", 24*time.Hour),
		},
		Telemetry: TelemetryConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1),
		},
	}
}

// Validate memastikan secret wajib tersedia. Gagal di sini berarti proses tidak boleh start.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %v", fields)
		}
		return err
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}
