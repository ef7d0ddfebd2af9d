package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-test")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "5")
	t.Setenv("SWAGGER_ENABLED", "false")
	t.Setenv("SECRETS_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-test", cfg.OpenAI.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, 5, cfg.Upload.MaxSizeMB)
	assert.Equal(t, 5<<20, cfg.Upload.MaxBytes())
	assert.False(t, cfg.Swagger)
	assert.True(t, cfg.OpenAI.HasCredential())
}

func TestLoad_KeyFromSecretsFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	path := filepath.Join(t.TempDir(), "secrets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("OPENAI_API_KEY: sk-from-file\n"), 0o600))
	t.Setenv("SECRETS_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-from-file", cfg.OpenAI.APIKey)
}

func TestLoad_MissingCredential(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("SECRETS_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	assert.ErrorIs(t, err, ErrMissingCredential)
	require.NotNil(t, cfg)
	assert.False(t, cfg.OpenAI.HasCredential())
}

func TestLoad_BrokenSecretsFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	path := filepath.Join(t.TempDir(), "secrets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0o600))
	t.Setenv("SECRETS_FILE", path)

	_, err := Load()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingCredential)
}

func TestOpenAIConfig_Credential(t *testing.T) {
	_, err := OpenAIConfig{}.Credential()
	assert.ErrorIs(t, err, ErrMissingCredential)

	key, err := OpenAIConfig{APIKey: "sk"}.Credential()
	assert.NoError(t, err)
	assert.Equal(t, "sk", key)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
