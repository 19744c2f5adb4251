package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// StoreMongo selects the MongoDB record stores.
	StoreMongo = "mongo"
	// StoreMySQL selects the GORM/MySQL record stores.
	StoreMySQL = "mysql"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServiceName   string        `yaml:"service_name"`
	ServerPort    string        `yaml:"server_port"`
	StoreDriver   string        `yaml:"store_driver"`
	MongoURI      string        `yaml:"mongo_uri"`
	MongoDatabase string        `yaml:"mongo_database"`
	MySQLDSN      string        `yaml:"mysql_dsn"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisDB       int           `yaml:"redis_db"`
	RedisPass     string        `yaml:"redis_password"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
	LogLevel      string        `yaml:"log_level"`
	LogFormat     string        `yaml:"log_format"`
	SwaggerHost   string        `yaml:"swagger_host"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		ServiceName:   "feedsvc",
		ServerPort:    "3000",
		StoreDriver:   StoreMongo,
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "feed",
		MySQLDSN:      "user:password@tcp(localhost:3306)/feed?charset=utf8mb4&parseTime=True&loc=UTC",
		RedisAddr:     "localhost:6379",
		CacheTTL:      30 * time.Second,
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// Load builds Config from defaults, an optional YAML file named by CONFIG_FILE
// and finally the environment. Environment values win.
func Load() (*Config, error) {
	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}
	cfg.overlayEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMongo, StoreMySQL:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.TokenTTL < 0 || c.CacheTTL < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) overlayEnv() {
	c.ServiceName = getEnv("SERVICE_NAME", c.ServiceName)
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.StoreDriver = getEnv("STORE_DRIVER", c.StoreDriver)
	c.MongoURI = getEnv("MONGO_URI", c.MongoURI)
	c.MongoDatabase = getEnv("MONGO_DATABASE", c.MongoDatabase)
	c.MySQLDSN = getEnv("MYSQL_DSN", c.MySQLDSN)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisDB = getEnvInt("REDIS_DB", c.RedisDB)
	c.RedisPass = getEnv("REDIS_PASSWORD", c.RedisPass)
	c.CacheTTL = getEnvDuration("CACHE_TTL", c.CacheTTL)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.TokenTTL = getEnvDuration("TOKEN_TTL", c.TokenTTL)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.SwaggerHost = getEnv("SWAGGER_HOST", c.SwaggerHost)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
