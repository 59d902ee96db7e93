package config

import (
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate Source config
	if c.Source.URL == "" {
		errors = append(errors, ValidationError{
			Field:   "source.url",
			Message: "source URL is required",
		})
	} else if u, err := url.Parse(c.Source.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "source.url",
			Message: "invalid source URL",
		})
	}

	if c.Source.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "source.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	if c.Source.Timeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "source.timeout",
			Message: "timeout must be non-negative",
		})
	}

	// Validate Backend config
	if c.Backend.URL == "" {
		errors = append(errors, ValidationError{
			Field:   "backend.url",
			Message: "backend URL is required",
		})
	} else if u, err := url.Parse(c.Backend.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "backend.url",
			Message: "invalid backend URL",
		})
	}

	if c.Backend.Index == "" {
		errors = append(errors, ValidationError{
			Field:   "backend.index",
			Message: "index name is required",
		})
	}

	if c.Backend.SettingsPath == "" {
		errors = append(errors, ValidationError{
			Field:   "backend.settings_path",
			Message: "settings path is required",
		})
	}

	if c.Backend.Timeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "backend.timeout",
			Message: "timeout must be non-negative",
		})
	}

	// Validate Artifacts config
	if c.Artifacts.CorpusPath == "" {
		errors = append(errors, ValidationError{
			Field:   "artifacts.corpus_path",
			Message: "corpus path is required",
		})
	}

	if c.Artifacts.BulkPath == "" {
		errors = append(errors, ValidationError{
			Field:   "artifacts.bulk_path",
			Message: "bulk path is required",
		})
	}

	return errors
}
