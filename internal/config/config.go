package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	instance *Config
	mu       sync.RWMutex
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Mongo       MongoConfig       `mapstructure:"mongo"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
	Auth        AuthConfig        `mapstructure:"auth"`
	AWS         AWSConfig         `mapstructure:"aws"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LogConfig contains logger configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// MongoConfig contains document store configuration.
// A zero QueryTimeout leaves store calls bounded only by the driver.
type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
}

// CacheConfig contains category cache configuration
type CacheConfig struct {
	Shards int           `mapstructure:"shards"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// ConcurrencyConfig contains concurrency settings
type ConcurrencyConfig struct {
	HTTPMaxWorkers   int `mapstructure:"http_max_workers"`
	ProcessorWorkers int `mapstructure:"processor_workers"`
}

// CatalogConfig toggles optional business rules
type CatalogConfig struct {
	UniqueTitles       bool `mapstructure:"unique_titles"`
	VerifyCategoryRefs bool `mapstructure:"verify_category_refs"`
}

// TelemetryConfig contains tracing configuration. An empty endpoint disables export.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	ServiceName  string `mapstructure:"service_name"`
	Environment  string `mapstructure:"environment"`
}

// AuthConfig contains crypto adapter settings
type AuthConfig struct {
	SaltCost  int    `mapstructure:"salt_cost"`
	SecretKey string `mapstructure:"secret_key"`
}

// AWSConfig contains object storage and notification settings. Empty values disable the proxies.
type AWSConfig struct {
	Region   string `mapstructure:"region"`
	Bucket   string `mapstructure:"bucket"`
	TopicARN string `mapstructure:"topic_arn"`
}

// Get returns the current configuration. Before Load it returns an empty Config.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		return &Config{}
	}
	return instance
}

// Load reads .env, the config file and environment variables
func Load(configPath string) error {
	mu.Lock()
	defer mu.Unlock()

	return load(configPath)
}

// Reload discards the current configuration and loads it again
func Reload(configPath string) error {
	mu.Lock()
	defer mu.Unlock()

	instance = nil
	viper.Reset()
	return load(configPath)
}

// LoadDotEnv loads variables from a .env file. A missing file is not an error.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func load(configPath string) error {
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()

	setDefaults()

	if configPath != "" {
		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := bindEnvVars(); err != nil {
		return fmt.Errorf("failed to bind env: %w", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	instance = cfg
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.request_timeout", 30*time.Second)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.development", false)

	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "catalog")
	viper.SetDefault("mongo.connect_timeout", 10*time.Second)
	viper.SetDefault("mongo.query_timeout", time.Duration(0))

	viper.SetDefault("cache.shards", 16)
	viper.SetDefault("cache.ttl", 5*time.Minute)

	viper.SetDefault("concurrency.http_max_workers", 100)
	viper.SetDefault("concurrency.processor_workers", 10)

	viper.SetDefault("catalog.unique_titles", false)
	viper.SetDefault("catalog.verify_category_refs", false)

	viper.SetDefault("telemetry.otlp_endpoint", "")
	viper.SetDefault("telemetry.service_name", "catalog")
	viper.SetDefault("telemetry.environment", "development")

	viper.SetDefault("auth.salt_cost", 10)
	viper.SetDefault("auth.secret_key", "")

	viper.SetDefault("aws.region", "")
	viper.SetDefault("aws.bucket", "")
	viper.SetDefault("aws.topic_arn", "")
}

// envBindings maps viper keys to environment variables
var envBindings = map[string]string{
	"server.host":                   "APP_SERVER_HOST",
	"server.port":                   "APP_SERVER_PORT",
	"server.request_timeout":        "APP_SERVER_REQUEST_TIMEOUT",
	"log.level":                     "APP_LOG_LEVEL",
	"log.development":               "APP_LOG_DEVELOPMENT",
	"mongo.uri":                     "APP_MONGO_URI",
	"mongo.database":                "APP_MONGO_DATABASE",
	"mongo.connect_timeout":         "APP_MONGO_CONNECT_TIMEOUT",
	"mongo.query_timeout":           "APP_MONGO_QUERY_TIMEOUT",
	"cache.shards":                  "APP_CACHE_SHARDS",
	"cache.ttl":                     "APP_CACHE_TTL",
	"concurrency.http_max_workers":  "APP_CONCURRENCY_HTTP_MAX_WORKERS",
	"concurrency.processor_workers": "APP_CONCURRENCY_PROCESSOR_WORKERS",
	"catalog.unique_titles":         "APP_CATALOG_UNIQUE_TITLES",
	"catalog.verify_category_refs":  "APP_CATALOG_VERIFY_CATEGORY_REFS",
	"telemetry.otlp_endpoint":       "APP_TELEMETRY_OTLP_ENDPOINT",
	"telemetry.service_name":        "APP_TELEMETRY_SERVICE_NAME",
	"telemetry.environment":         "APP_TELEMETRY_ENVIRONMENT",
	"auth.salt_cost":                "APP_AUTH_SALT_COST",
	"auth.secret_key":               "APP_AUTH_SECRET_KEY",
	"aws.region":                    "APP_AWS_REGION",
	"aws.bucket":                    "APP_AWS_BUCKET",
	"aws.topic_arn":                 "APP_AWS_TOPIC_ARN",
}

// bindEnvVars binds environment variables to viper keys
func bindEnvVars() error {
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return err
		}
	}
	return nil
}

// validate performs validation on the configuration
func validate(cfg *Config) error {
	if cfg.Server.Host == "" {
		return fmt.Errorf("server.host is required")
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if cfg.Server.RequestTimeout < 0 {
		return fmt.Errorf("server.request_timeout must be non-negative")
	}

	if cfg.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is required")
	}
	if cfg.Mongo.Database == "" {
		return fmt.Errorf("mongo.database is required")
	}
	if cfg.Mongo.QueryTimeout < 0 {
		return fmt.Errorf("mongo.query_timeout must be non-negative")
	}

	if cfg.Cache.Shards < 1 {
		return fmt.Errorf("cache.shards must be at least 1")
	}
	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be non-negative")
	}

	if cfg.Concurrency.HTTPMaxWorkers < 1 {
		return fmt.Errorf("concurrency.http_max_workers must be at least 1")
	}
	if cfg.Concurrency.ProcessorWorkers < 1 {
		return fmt.Errorf("concurrency.processor_workers must be at least 1")
	}

	if cfg.Auth.SaltCost < 4 || cfg.Auth.SaltCost > 31 {
		return fmt.Errorf("auth.salt_cost must be between 4 and 31")
	}

	if (cfg.AWS.Bucket != "" || cfg.AWS.TopicARN != "") && cfg.AWS.Region == "" {
		return fmt.Errorf("aws.region is required when aws.bucket or aws.topic_arn is set")
	}

	return nil
}
