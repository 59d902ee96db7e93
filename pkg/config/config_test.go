package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configData := `
source:
  url: "https://en.wikipedia.org/wiki/List_of_Star_Wars_characters"
  rate_limit: 1.5
  timeout: 30

backend:
  url: "http://localhost:9200"
  index: "starwars"
  settings_path: "settings.json"

artifacts:
  corpus_path: "dataset.json"
  bulk_path: "bulk.json"
`
	err := os.WriteFile(configPath, []byte(configData), 0644)
	require.NoError(t, err)

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "https://en.wikipedia.org/wiki/List_of_Star_Wars_characters", config.Source.URL)
	assert.Equal(t, 1.5, config.Source.RateLimit)
	assert.Equal(t, 30, config.Source.Timeout)
	assert.Equal(t, "http://localhost:9200", config.Backend.URL)
	assert.Equal(t, "starwars", config.Backend.Index)
	assert.Equal(t, "settings.json", config.Backend.SettingsPath)
	assert.Equal(t, "dataset.json", config.Artifacts.CorpusPath)
	assert.Equal(t, "bulk.json", config.Artifacts.BulkPath)
}

func TestLoadConfigDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("backend:\n  index: test\n"), 0644))

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "https://en.wikipedia.org/wiki/List_of_Star_Wars_characters", config.Source.URL)
	assert.Equal(t, 2.0, config.Source.RateLimit)
	assert.Zero(t, config.Source.Timeout)
	assert.Equal(t, "http://localhost:9200", config.Backend.URL)
	assert.Equal(t, "test", config.Backend.Index)
	assert.Equal(t, "settings.json", config.Backend.SettingsPath)
	assert.Equal(t, "dataset.json", config.Artifacts.CorpusPath)
	assert.Equal(t, "bulk.json", config.Artifacts.BulkPath)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://search:9200")
	t.Setenv("BACKEND_INDEX", "characters")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("backend:\n  url: http://localhost:9200\n"), 0644))

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://search:9200", config.Backend.URL)
	assert.Equal(t, "characters", config.Backend.Index)
}

func TestLoadConfigBadYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("source: [not a mapping"), 0644))

	_, err := LoadConfig(configPath)
	assert.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	valid := func() Config {
		var c Config
		applyDefaults(&c)
		return c
	}

	tests := []struct {
		name         string
		mutate       func(c *Config)
		expectedErrs int
		fields       []string
	}{
		{
			name:         "valid defaults",
			mutate:       func(c *Config) {},
			expectedErrs: 0,
		},
		{
			name: "missing source URL",
			mutate: func(c *Config) {
				c.Source.URL = ""
			},
			expectedErrs: 1,
			fields:       []string{"source.url"},
		},
		{
			name: "relative source URL",
			mutate: func(c *Config) {
				c.Source.URL = "wiki/List_of_Star_Wars_characters"
			},
			expectedErrs: 1,
			fields:       []string{"source.url"},
		},
		{
			name: "bad rate limit and timeout",
			mutate: func(c *Config) {
				c.Source.RateLimit = -1
				c.Source.Timeout = -5
			},
			expectedErrs: 2,
			fields:       []string{"source.rate_limit", "source.timeout"},
		},
		{
			name: "missing backend pieces",
			mutate: func(c *Config) {
				c.Backend.URL = ""
				c.Backend.Index = ""
				c.Backend.SettingsPath = ""
			},
			expectedErrs: 3,
			fields:       []string{"backend.url", "backend.index", "backend.settings_path"},
		},
		{
			name: "missing artifact paths",
			mutate: func(c *Config) {
				c.Artifacts.CorpusPath = ""
				c.Artifacts.BulkPath = ""
			},
			expectedErrs: 2,
			fields:       []string{"artifacts.corpus_path", "artifacts.bulk_path"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(&config)

			errs := config.Validate()
			assert.Len(t, errs, tt.expectedErrs)

			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
				assert.NotEmpty(t, e.Error())
			}
			for _, field := range tt.fields {
				assert.Contains(t, fields, field)
			}
		})
	}
}
