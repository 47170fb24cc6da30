package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort         string
	ServerHost         string
	CORSAllowedOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string
	JWTExpiry time.Duration

	LogLevel  string
	LogFormat string

	Catalog   CatalogConfig
	Recommend RecommendConfig
	RateLimit RateLimitConfig
	LLM       LLMConfig
}

// CatalogConfig selects where the recipe catalog is loaded from at startup.
type CatalogConfig struct {
	Source   string // file, db or s3
	Path     string
	S3Key    string
	S3Bucket string
	Region   string
}

// RecommendConfig sizes the balanced selection.
type RecommendConfig struct {
	TargetSize        int
	PerCategoryTarget int
	CacheTTL          time.Duration
}

// RateLimitConfig bounds requests per client per window.
type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

// LLMConfig configures the optional external recommendation path.
type LLMConfig struct {
	Enabled bool
	URL     string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// DSN returns the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are ignored; an empty list loads ./.env.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	v := newViper()

	cfg := &Config{
		Environment:        env,
		ServerPort:         v.GetString("server.port"),
		ServerHost:         v.GetString("server.host"),
		CORSAllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
		DBDriver:           strings.ToLower(v.GetString("db.driver")),
		DBHost:             v.GetString("db.host"),
		DBPort:             v.GetString("db.port"),
		DBUser:             v.GetString("db.user"),
		DBName:             v.GetString("db.name"),
		DBSSLMode:          v.GetString("db.ssl_mode"),
		SQLitePath:         v.GetString("sqlite.path"),
		RedisURL:           v.GetString("redis.url"),
		RedisDB:            v.GetInt("redis.db"),
		JWTExpiry:          v.GetDuration("jwt.expiry"),
		LogLevel:           v.GetString("log.level"),
		LogFormat:          v.GetString("log.format"),
		Catalog: CatalogConfig{
			Source:   strings.ToLower(v.GetString("catalog.source")),
			Path:     v.GetString("catalog.path"),
			S3Key:    v.GetString("catalog.s3_key"),
			S3Bucket: v.GetString("s3.bucket_name"),
			Region:   v.GetString("aws.region"),
		},
		Recommend: RecommendConfig{
			TargetSize:        v.GetInt("recommend.target_size"),
			PerCategoryTarget: v.GetInt("recommend.per_category"),
			CacheTTL:          v.GetDuration("recommend.cache_ttl"),
		},
		RateLimit: RateLimitConfig{
			Enabled:  v.GetBool("rate_limit.enabled"),
			Requests: v.GetInt("rate_limit.requests"),
			Window:   v.GetDuration("rate_limit.window"),
		},
		LLM: LLMConfig{
			Enabled: v.GetBool("llm.enabled"),
			URL:     v.GetString("llm.url"),
			Model:   v.GetString("llm.model"),
			Timeout: v.GetDuration("llm.timeout"),
		},
	}

	if env.usesSecretFiles() {
		loadSecretFiles(cfg)
	} else {
		loadSecretEnv(cfg)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("cors.allowed_origins", "http://localhost:5173")

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.name", "mealplanner")
	v.SetDefault("db.ssl_mode", "disable")
	v.SetDefault("sqlite.path", "mealplanner.db")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.expiry", "24h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.path", "data/recipes.json")
	v.SetDefault("catalog.s3_key", "catalog/recipes.json")
	v.SetDefault("s3.bucket_name", "mealplanner-catalog")
	v.SetDefault("aws.region", "us-east-1")

	v.SetDefault("recommend.target_size", 15)
	v.SetDefault("recommend.per_category", 5)
	v.SetDefault("recommend.cache_ttl", "10m")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 60)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("llm.enabled", false)
	v.SetDefault("llm.url", "https://api.deepseek.com/v1")
	v.SetDefault("llm.model", "deepseek-chat")
	v.SetDefault("llm.timeout", "30s")

	// server.port -> SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadSecretFiles reads credentials from Docker secrets
func loadSecretFiles(cfg *Config) {
	cfg.DBPassword = readSecret("db_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.LLM.APIKey = readSecret("llm_api_key")
}

// loadSecretEnv reads credentials from CI-provided environment variables
func loadSecretEnv(cfg *Config) {
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.LLM.APIKey = os.Getenv("LLM_API_KEY")
}

func secretsDir() string {
	if dir := os.Getenv("SECRETS_DIR"); dir != "" {
		return dir
	}
	return "/run/secrets"
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	if data, err := os.ReadFile(filepath.Join(secretsDir(), name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
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
