package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Dataset sources.
const (
	SourceCSV       = "csv"
	SourceFirestore = "firestore"
)

// Country match modes.
const (
	MatchSubstring = "substring"
	MatchExact     = "exact"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port                string  `env:"PORT" envDefault:"8080" validate:"required,numeric"`
	GinMode             string  `env:"GIN_MODE" envDefault:"release" validate:"oneof=debug release test"`
	MissionsCSV         string  `env:"MISSIONS_CSV" envDefault:"data/Space_Corrected.csv"`
	LatLongCSV          string  `env:"LATLONG_CSV" envDefault:"data/LatLong.csv"`
	DatasetSource       string  `env:"DATASET_SOURCE" envDefault:"csv" validate:"oneof=csv firestore"`
	CountryMatch        string  `env:"COUNTRY_MATCH" envDefault:"substring" validate:"oneof=substring exact"`
	AllowedOrigins      string  `env:"ALLOWED_ORIGINS"`
	RateLimitRPS        float64 `env:"RATE_LIMIT_RPS" envDefault:"20" validate:"gte=0"`
	RateLimitBurst      int     `env:"RATE_LIMIT_BURST" envDefault:"40" validate:"gte=0"`
	FirebaseProjectID   string  `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredsBase64 string  `env:"FIREBASE_CREDS_BASE64"`
	FirebaseCredsFile   string  `env:"FIREBASE_CREDS_FILE"`
}

var validate = validator.New()

// Load reads environment variables into a Config with sensible defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.trim()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) trim() {
	c.Port = strings.TrimSpace(c.Port)
	c.GinMode = strings.TrimSpace(c.GinMode)
	c.MissionsCSV = strings.TrimSpace(c.MissionsCSV)
	c.LatLongCSV = strings.TrimSpace(c.LatLongCSV)
	c.DatasetSource = strings.ToLower(strings.TrimSpace(c.DatasetSource))
	c.CountryMatch = strings.ToLower(strings.TrimSpace(c.CountryMatch))
	c.AllowedOrigins = strings.TrimSpace(c.AllowedOrigins)
	c.FirebaseProjectID = strings.TrimSpace(c.FirebaseProjectID)
	c.FirebaseCredsBase64 = strings.TrimSpace(c.FirebaseCredsBase64)
	c.FirebaseCredsFile = strings.TrimSpace(c.FirebaseCredsFile)
}

// Validate ensures required fields are present for the selected dataset source.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	switch c.DatasetSource {
	case SourceCSV:
		if c.MissionsCSV == "" || c.LatLongCSV == "" {
			return errors.New("MISSIONS_CSV and LATLONG_CSV are required for the csv source")
		}
	case SourceFirestore:
		return c.ValidateFirestore()
	}
	return nil
}

// ValidateFirestore checks the settings needed to open a Firestore client.
func (c Config) ValidateFirestore() error {
	if c.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required")
	}
	if c.FirebaseCredsBase64 == "" && c.FirebaseCredsFile == "" {
		return errors.New("provide FIREBASE_CREDS_BASE64 or FIREBASE_CREDS_FILE for Firestore auth")
	}
	return nil
}

// FirebaseCredentialsJSON returns the service account JSON bytes and the source used.
func (c Config) FirebaseCredentialsJSON() ([]byte, string, error) {
	if c.FirebaseCredsBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(c.FirebaseCredsBase64)
		if err != nil {
			return nil, "base64", fmt.Errorf("decode FIREBASE_CREDS_BASE64: %w", err)
		}
		return decoded, "base64", nil
	}
	if c.FirebaseCredsFile != "" {
		data, err := os.ReadFile(c.FirebaseCredsFile)
		if err != nil {
			return nil, "file", fmt.Errorf("read FIREBASE_CREDS_FILE: %w", err)
		}
		return data, "file", nil
	}
	return nil, "", errors.New("no firebase credentials found")
}
