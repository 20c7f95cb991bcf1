// Package config loads the service configuration from an env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultSecretKey is the development signing key. It is rejected in production.
const DefaultSecretKey = "you-will-never-guess"

// Config holds application configuration values.
type Config struct {
	AppHost  string `mapstructure:"APP_HOST"`
	AppPort  string `mapstructure:"APP_PORT"`
	GRPCPort string `mapstructure:"GRPC_PORT"`
	LogLevel string `mapstructure:"APP_LOG_LEVEL"`
	Env      string `mapstructure:"APP_ENV"`
	BaseURL  string `mapstructure:"BASE_URL"`

	PGHost         string `mapstructure:"POSTGRES_HOST"`
	PGPort         int    `mapstructure:"POSTGRES_PORT"`
	PGUser         string `mapstructure:"POSTGRES_USER"`
	PGPassword     string `mapstructure:"POSTGRES_PASSWORD"`
	PGDB           string `mapstructure:"POSTGRES_DB"`
	PGMaxOpenConns int    `mapstructure:"POSTGRES_MAX_OPEN_CONNS"`
	PGMaxIdleConns int    `mapstructure:"POSTGRES_MAX_IDLE_CONNS"`

	RedisHost           string `mapstructure:"REDIS_HOST"`
	RedisPort           int    `mapstructure:"REDIS_PORT"`
	RedisDB             int    `mapstructure:"REDIS_DB"`
	RedisPassword       string `mapstructure:"REDIS_PASSWORD"`
	RedisPoolSize       int    `mapstructure:"REDIS_POOL_SIZE"`
	RedisMinIdleConns   int    `mapstructure:"REDIS_MIN_IDLE_CONNS"`
	CountCacheTTLSecond int    `mapstructure:"COUNT_CACHE_TTL_SECOND"`

	SecretKey           string `mapstructure:"SECRET_KEY"`
	JWTExpSecond        int    `mapstructure:"JWT_EXP_SECOND"`
	ResetTokenExpSecond int    `mapstructure:"RESET_TOKEN_EXP_SECOND"`

	PostsPerPage int `mapstructure:"POSTS_PER_PAGE"`

	MailServer    string `mapstructure:"MAIL_SERVER"`
	MailPort      int    `mapstructure:"MAIL_PORT"`
	MailUseTLS    bool   `mapstructure:"MAIL_USE_TLS"`
	MailUsername  string `mapstructure:"MAIL_USERNAME"`
	MailPassword  string `mapstructure:"MAIL_PASSWORD"`
	Admins        string `mapstructure:"ADMINS"`
	MailQueueSize int    `mapstructure:"MAIL_QUEUE_SIZE"`

	KafkaBrokers   string `mapstructure:"KAFKA_BROKERS"`
	KafkaMailTopic string `mapstructure:"KAFKA_MAIL_TOPIC"`
	KafkaGroupID   string `mapstructure:"KAFKA_GROUP_ID"`

	ElasticsearchURL string `mapstructure:"ELASTICSEARCH_URL"`

	TranslatorKey    string `mapstructure:"MS_TRANSLATOR_KEY"`
	TranslatorRegion string `mapstructure:"MS_TRANSLATOR_REGION"`

	TracingExporter string `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint    string `mapstructure:"OTLP_ENDPOINT"`
}

var defaults = map[string]any{
	"APP_HOST":      "localhost",
	"APP_PORT":      "8080",
	"GRPC_PORT":     "50051",
	"APP_LOG_LEVEL": "info",
	"APP_ENV":       "development",
	"BASE_URL":      "http://localhost:8080",

	"POSTGRES_HOST":           "localhost",
	"POSTGRES_PORT":           5432,
	"POSTGRES_USER":           "user",
	"POSTGRES_PASSWORD":       "password",
	"POSTGRES_DB":             "microblog",
	"POSTGRES_MAX_OPEN_CONNS": 16,
	"POSTGRES_MAX_IDLE_CONNS": 8,

	"REDIS_HOST":             "localhost",
	"REDIS_PORT":             6379,
	"REDIS_DB":               0,
	"REDIS_PASSWORD":         "",
	"REDIS_POOL_SIZE":        10,
	"REDIS_MIN_IDLE_CONNS":   2,
	"COUNT_CACHE_TTL_SECOND": 60,

	"SECRET_KEY":             DefaultSecretKey,
	"JWT_EXP_SECOND":         3600,
	"RESET_TOKEN_EXP_SECOND": 600,

	"POSTS_PER_PAGE": 25,

	"MAIL_SERVER":     "",
	"MAIL_PORT":       25,
	"MAIL_USE_TLS":    false,
	"MAIL_USERNAME":   "",
	"MAIL_PASSWORD":   "",
	"ADMINS":          "admin@example.com",
	"MAIL_QUEUE_SIZE": 64,

	"KAFKA_BROKERS":    "",
	"KAFKA_MAIL_TOPIC": "microblog.mail",
	"KAFKA_GROUP_ID":   "microblog-mailer",

	"ELASTICSEARCH_URL": "",

	"MS_TRANSLATOR_KEY":    "",
	"MS_TRANSLATOR_REGION": "westus",

	"TRACING_EXPORTER": "none",
	"OTLP_ENDPOINT":    "localhost:4318",
}

// Load reads the env file at path (a missing file is not an error), overlays
// the process environment and returns the validated configuration.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(path)

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate ensures that required values are present and production secrets are sane.
func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("APP_PORT is required")
	}
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY is required")
	}
	if c.PostsPerPage <= 0 {
		return errors.New("POSTS_PER_PAGE must be positive")
	}
	if c.ResetTokenExpSecond <= 0 {
		return errors.New("RESET_TOKEN_EXP_SECOND must be positive")
	}

	switch c.TracingExporter {
	case "", "none", "stdout", "otlp":
	default:
		return fmt.Errorf("unknown TRACING_EXPORTER %q", c.TracingExporter)
	}

	if c.IsProduction() {
		if c.SecretKey == DefaultSecretKey {
			return errors.New("SECRET_KEY must be changed from the default value in production")
		}
		if len(c.SecretKey) < 32 {
			return errors.New("SECRET_KEY must be at least 32 characters in production")
		}
	}

	return nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// PostgresDSN builds the pgx connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDB)
}

// RedisAddr returns host:port of the Redis server.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// AdminList splits ADMINS on commas. The first entry is the mail sender.
func (c *Config) AdminList() []string {
	return splitList(c.Admins)
}

// KafkaBrokerList splits KAFKA_BROKERS on commas.
func (c *Config) KafkaBrokerList() []string {
	return splitList(c.KafkaBrokers)
}

func (c *Config) JWTExp() time.Duration {
	return time.Duration(c.JWTExpSecond) * time.Second
}

func (c *Config) ResetTokenExp() time.Duration {
	return time.Duration(c.ResetTokenExpSecond) * time.Second
}

func (c *Config) CountCacheTTL() time.Duration {
	return time.Duration(c.CountCacheTTLSecond) * time.Second
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
