package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	MetricsPort string
	Database    DatabaseConfig
	Redis       RedisConfig
	Engine      EngineConfig
	Tracing     TracingConfig
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver   string
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type EngineConfig struct {
	AuditTrailCapacity   int
	SuspiciousMultiplier float64
	DocumentationRate    float64
	WorkerCount          int
	QueueSize            int
	AuditInterval        time.Duration
	ReportCacheTTL       time.Duration
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() (*Config, error) {
	// A missing .env is fine; the environment may be set by the host.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("METRICS_PORT", "9090")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_PATH", "finaudit.db")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("ENGINE_AUDIT_TRAIL_CAPACITY", 10000)
	viper.SetDefault("ENGINE_SUSPICIOUS_MULTIPLIER", 3.0)
	viper.SetDefault("ENGINE_DOCUMENTATION_RATE", 0.9)
	viper.SetDefault("ENGINE_WORKER_COUNT", 4)
	viper.SetDefault("ENGINE_QUEUE_SIZE", 256)
	viper.SetDefault("ENGINE_AUDIT_INTERVAL", "1h")
	viper.SetDefault("ENGINE_REPORT_CACHE_TTL", "5m")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_ENDPOINT", "localhost:4317")

	var cfg Config

	cfg.AppEnv = viper.GetString("APP_ENV")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")
	cfg.MetricsPort = viper.GetString("METRICS_PORT")

	cfg.Database.Driver = viper.GetString("DB_DRIVER")
	cfg.Database.Path = viper.GetString("DB_PATH")
	cfg.Database.Host = viper.GetString("DB_HOST")
	cfg.Database.Port = viper.GetString("DB_PORT")
	cfg.Database.User = viper.GetString("DB_USER")
	cfg.Database.Password = viper.GetString("DB_PASSWORD")
	cfg.Database.Name = viper.GetString("DB_NAME")
	cfg.Database.SSLMode = viper.GetString("DB_SSL_MODE")

	cfg.Redis.Enabled = viper.GetBool("REDIS_ENABLED")
	cfg.Redis.Host = viper.GetString("REDIS_HOST")
	cfg.Redis.Port = viper.GetString("REDIS_PORT")
	cfg.Redis.Password = viper.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = viper.GetInt("REDIS_DB")

	cfg.Engine.AuditTrailCapacity = viper.GetInt("ENGINE_AUDIT_TRAIL_CAPACITY")
	cfg.Engine.SuspiciousMultiplier = viper.GetFloat64("ENGINE_SUSPICIOUS_MULTIPLIER")
	cfg.Engine.DocumentationRate = viper.GetFloat64("ENGINE_DOCUMENTATION_RATE")
	cfg.Engine.WorkerCount = viper.GetInt("ENGINE_WORKER_COUNT")
	cfg.Engine.QueueSize = viper.GetInt("ENGINE_QUEUE_SIZE")
	cfg.Engine.AuditInterval = viper.GetDuration("ENGINE_AUDIT_INTERVAL")
	cfg.Engine.ReportCacheTTL = viper.GetDuration("ENGINE_REPORT_CACHE_TTL")

	cfg.Tracing.Enabled = viper.GetBool("TRACING_ENABLED")
	cfg.Tracing.Endpoint = viper.GetString("TRACING_ENDPOINT")

	return &cfg, nil
}
