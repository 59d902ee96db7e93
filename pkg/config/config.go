package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Source struct {
		URL       string  `yaml:"url"`
		RateLimit float64 `yaml:"rate_limit"`
		Timeout   int     `yaml:"timeout"` // seconds, 0 disables
	} `yaml:"source"`

	Backend struct {
		URL          string `yaml:"url"`
		Index        string `yaml:"index"`
		SettingsPath string `yaml:"settings_path"`
		Timeout      int    `yaml:"timeout"` // seconds, 0 disables
	} `yaml:"backend"`

	Artifacts struct {
		CorpusPath string `yaml:"corpus_path"`
		BulkPath   string `yaml:"bulk_path"`
	} `yaml:"artifacts"`
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/holocron/config.yaml"),
			"/etc/holocron/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	// Merge with environment variables
	mergeWithEnv(&config)

	// Apply defaults for unset values
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	mergeWithEnv(config)
	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Source.URL == "" {
		config.Source.URL = "https://en.wikipedia.org/wiki/List_of_Star_Wars_characters"
	}
	if config.Source.RateLimit == 0 {
		config.Source.RateLimit = 2.0
	}

	if config.Backend.URL == "" {
		config.Backend.URL = "http://localhost:9200"
	}
	if config.Backend.Index == "" {
		config.Backend.Index = "starwars"
	}
	if config.Backend.SettingsPath == "" {
		config.Backend.SettingsPath = "settings.json"
	}

	if config.Artifacts.CorpusPath == "" {
		config.Artifacts.CorpusPath = "dataset.json"
	}
	if config.Artifacts.BulkPath == "" {
		config.Artifacts.BulkPath = "bulk.json"
	}
}

func mergeWithEnv(config *Config) {
	if backendURL := os.Getenv("BACKEND_URL"); backendURL != "" {
		config.Backend.URL = backendURL
	}
	if sourceURL := os.Getenv("SOURCE_URL"); sourceURL != "" {
		config.Source.URL = sourceURL
	}
	if index := os.Getenv("BACKEND_INDEX"); index != "" {
		config.Backend.Index = index
	}
}
