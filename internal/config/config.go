package config

import (
	"errors"
	"os"
	"strconv"

	"expenseanalyzer/internal/secrets"
)

// APIKeySecret is the secret name holding the completion API credential.
const APIKeySecret = "OPENAI_API_KEY"

// ErrMissingCredential is returned when no API key could be resolved from the secret store.
var ErrMissingCredential = errors.New("missing " + APIKeySecret + " in secrets")

// OpenAIConfig holds settings for the remote chat completion endpoint.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// HasCredential reports whether an API key is configured.
func (c OpenAIConfig) HasCredential() bool {
	return c.APIKey != ""
}

// Credential returns the API key, or ErrMissingCredential when absent.
func (c OpenAIConfig) Credential() (string, error) {
	if !c.HasCredential() {
		return "", ErrMissingCredential
	}
	return c.APIKey, nil
}

// UploadConfig bounds the size of accepted form submissions.
type UploadConfig struct {
	MaxSizeMB int
}

// MaxBytes returns the upload limit in bytes.
func (u UploadConfig) MaxBytes() int {
	return u.MaxSizeMB << 20
}

// RateLimitConfig controls the per-client limit on analysis submissions.
type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

// AppConfig is the centralized configuration struct for the application.
// Plain settings come from environment variables; the API key comes from the secret store.
type AppConfig struct {
	AppHost     string
	Port        string
	SecretsFile string
	Swagger     bool
	OpenAI      OpenAIConfig
	Upload      UploadConfig
	RateLimit   RateLimitConfig
}

// Load reads configuration from environment variables and resolves the API key
// through the secret store chain (environment first, then the YAML secrets file).
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
//
// The returned config is always populated; the error is ErrMissingCredential
// when no key was found, or a secrets file read error.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		SecretsFile: getEnv("SECRETS_FILE", "secrets.yaml"),
		Swagger:     getEnvBool("SWAGGER_ENABLED", true),
		OpenAI: OpenAIConfig{
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Upload: UploadConfig{
			MaxSizeMB: getEnvInt("MAX_UPLOAD_SIZE_MB", 20),
		},
		RateLimit: RateLimitConfig{
			PerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 10),
			Burst:     getEnvInt("RATE_LIMIT_BURST", 3),
		},
	}

	fileStore, err := secrets.NewFileStore(cfg.SecretsFile)
	if err != nil {
		return cfg, err
	}
	store := secrets.Chain{secrets.EnvStore{}, fileStore}

	key, ok := store.Lookup(APIKeySecret)
	if !ok || key == "" {
		return cfg, ErrMissingCredential
	}
	cfg.OpenAI.APIKey = key

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
