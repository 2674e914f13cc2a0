package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Vero970/ProjFit/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("USDA_API_KEY", "test-key")
	t.Setenv("BLOB_CONTAINER", "ingestoes")
}

// TestLoadConfig tests basic configuration loading from environment variables.
func TestLoadConfig(t *testing.T) {
	setRequired(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("STORAGE_CONNECTION_STRING", "Region=sa-east-1;AccessKeyId=AK;SecretAccessKey=SK")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("ENABLE_CIRCUIT_BREAKER", "false")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "test-key", cfg.USDA.APIKey)
	assert.Equal(t, config.DefaultUSDABaseURL, cfg.USDA.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.USDA.Timeout)
	assert.False(t, cfg.USDA.EnableCircuitBreaker)
	assert.Equal(t, "ingestoes", cfg.Storage.Container)
	assert.Equal(t, config.StorageProviderS3, cfg.Storage.Provider)
	assert.Contains(t, cfg.Storage.ConnectionString, "AccessKeyId=AK")
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"missing api key", "USDA_API_KEY"},
		{"missing container", "BLOB_CONTAINER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.unset, "")

			cfg, err := config.LoadConfig()

			assert.Nil(t, cfg)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_RejectsUnknownProvider(t *testing.T) {
	setRequired(t)
	t.Setenv("STORAGE_PROVIDER", "azure")

	_, err := config.LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_PlainSecondsTimeout(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_TIMEOUT", "15")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.USDA.Timeout)
}

func TestLoadConfig_FileOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
environment: staging
usda:
  api_key: file-key
  timeout: 4s
storage:
  provider: memory
  container: from-file
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("USDA_API_KEY", "")
	t.Setenv("BLOB_CONTAINER", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("STORAGE_PROVIDER", "")
	t.Setenv("HTTP_TIMEOUT", "")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "file-key", cfg.USDA.APIKey)
	assert.Equal(t, 4*time.Second, cfg.USDA.Timeout)
	assert.Equal(t, config.StorageProviderMemory, cfg.Storage.Provider)
	assert.Equal(t, "from-file", cfg.Storage.Container)

	t.Run("Environment wins over file", func(t *testing.T) {
		t.Setenv("BLOB_CONTAINER", "from-env")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Storage.Container)
	})
}

func TestLoadConfig_MissingFile(t *testing.T) {
	setRequired(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := config.LoadConfig()
	assert.Error(t, err)
}

func TestLoadClientConfig(t *testing.T) {
	t.Run("Should default to local handler", func(t *testing.T) {
		t.Setenv("FUNCTION_URL", "")

		cfg, err := config.LoadClientConfig()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api/intake", cfg.FunctionURL)
		assert.Equal(t, ":8501", cfg.WebAddress)
	})

	t.Run("Should reject malformed URL", func(t *testing.T) {
		t.Setenv("FUNCTION_URL", "not a url")

		_, err := config.LoadClientConfig()
		assert.Error(t, err)
	})
}
