package solr

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config carries the two Solr endpoints used by the pipeline: the geo core
// (read-only lookups) and the events core (post-commit story mirroring).
type Config struct {
	GeoURL       string
	EventURL     string
	QueryTimeout time.Duration
}

const defaultQueryTimeout = 3 * time.Second

type ConfigErrorCode string

const (
	ConfigErrorMissingGeoURL   ConfigErrorCode = "missing_geo_url"
	ConfigErrorInvalidGeoURL   ConfigErrorCode = "invalid_geo_url"
	ConfigErrorMissingEventURL ConfigErrorCode = "missing_event_url"
	ConfigErrorInvalidEventURL ConfigErrorCode = "invalid_event_url"
)

type ConfigError struct {
	Code  ConfigErrorCode
	Value string
	Cause error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid solr config"
	}
	switch e.Code {
	case ConfigErrorMissingGeoURL:
		return "SOLR_GEO_URL is required"
	case ConfigErrorInvalidGeoURL:
		return fmt.Sprintf("invalid SOLR_GEO_URL=%q; expected absolute URL like http://solr:8983/solr/geo", e.Value)
	case ConfigErrorMissingEventURL:
		return "SOLR_EVENT_URL is required"
	case ConfigErrorInvalidEventURL:
		return fmt.Sprintf("invalid SOLR_EVENT_URL=%q; expected absolute URL like http://solr:8983/solr/events", e.Value)
	default:
		return "invalid solr config"
	}
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func ResolveConfigFromEnv() (Config, error) {
	cfg := Config{
		GeoURL:       strings.TrimSpace(os.Getenv("SOLR_GEO_URL")),
		EventURL:     strings.TrimSpace(os.Getenv("SOLR_EVENT_URL")),
		QueryTimeout: defaultQueryTimeout,
	}
	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func ValidateConfig(cfg Config) error {
	if cfg.GeoURL == "" {
		return &ConfigError{Code: ConfigErrorMissingGeoURL}
	}
	if err := validateURL(cfg.GeoURL); err != nil {
		return &ConfigError{Code: ConfigErrorInvalidGeoURL, Value: cfg.GeoURL, Cause: err}
	}
	if cfg.EventURL == "" {
		return &ConfigError{Code: ConfigErrorMissingEventURL}
	}
	if err := validateURL(cfg.EventURL); err != nil {
		return &ConfigError{Code: ConfigErrorInvalidEventURL, Value: cfg.EventURL, Cause: err}
	}
	return nil
}

func validateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if strings.TrimSpace(parsed.Scheme) == "" || strings.TrimSpace(parsed.Host) == "" {
		return fmt.Errorf("missing scheme or host")
	}
	return nil
}
