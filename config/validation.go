package config

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "\n")
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequiredEnvVars []string
	RequiredSecrets []string
}

var requirements = map[Environment]ConfigRequirements{
	Development: {
		RequiredSecrets: []string{"jwt_secret"},
	},
	Test: {
		RequiredSecrets: []string{"jwt_secret"},
	},
	CI: {
		RequiredEnvVars: []string{"DB_HOST", "DB_PORT", "DB_NAME", "JWT_SECRET"},
	},
	Production: {
		RequiredEnvVars: []string{"SERVER_PORT", "DB_HOST", "DB_NAME", "REDIS_URL"},
		RequiredSecrets: []string{"jwt_secret", "db_password"},
	},
}

var (
	validDrivers        = []string{"postgres", "sqlite"}
	validCatalogSources = []string{"file", "db", "s3"}
)

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	fail := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	env := cfg.Environment
	if env == "" {
		env = GetEnvironment()
	}
	reqs := requirements[env]

	for _, name := range reqs.RequiredEnvVars {
		if os.Getenv(name) == "" {
			fail(name, "required environment variable is not set")
		}
	}
	if env.usesSecretFiles() {
		for _, name := range reqs.RequiredSecrets {
			if readSecret(name) == "" {
				fail(name, "required secret is not set")
			}
		}
	}

	if cfg.JWTSecret == "" {
		fail("jwt_secret", "is required")
	}
	if !oneOf(cfg.DBDriver, validDrivers) {
		fail("DB_DRIVER", "must be one of %s, got %q", strings.Join(validDrivers, ", "), cfg.DBDriver)
	}
	if cfg.DBDriver == "postgres" && cfg.DBPassword == "" && env != Development {
		fail("db_password", "is required for the postgres driver")
	}
	if !oneOf(cfg.Catalog.Source, validCatalogSources) {
		fail("CATALOG_SOURCE", "must be one of %s, got %q", strings.Join(validCatalogSources, ", "), cfg.Catalog.Source)
	}
	if cfg.Catalog.Source == "file" && cfg.Catalog.Path == "" {
		fail("CATALOG_PATH", "is required when the catalog source is file")
	}
	if cfg.Catalog.Source == "s3" && (cfg.Catalog.S3Bucket == "" || cfg.Catalog.S3Key == "") {
		fail("CATALOG_S3_KEY", "bucket and key are required when the catalog source is s3")
	}
	if cfg.Recommend.TargetSize < 0 {
		fail("RECOMMEND_TARGET_SIZE", "must be non-negative")
	}
	if cfg.Recommend.PerCategoryTarget < 0 {
		fail("RECOMMEND_PER_CATEGORY", "must be non-negative")
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0) {
		fail("RATE_LIMIT_REQUESTS", "requests and window must be positive when rate limiting is enabled")
	}
	if cfg.LLM.Enabled && cfg.LLM.APIKey == "" {
		fail("llm_api_key", "is required when the LLM path is enabled")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
