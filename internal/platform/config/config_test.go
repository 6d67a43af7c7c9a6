package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "DATASET_SOURCE", "COUNTRY_MATCH", "MISSIONS_CSV", "LATLONG_CSV", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.GinMode != "release" {
		t.Errorf("unexpected server defaults: %+v", cfg)
	}
	if cfg.DatasetSource != SourceCSV || cfg.CountryMatch != MatchSubstring {
		t.Errorf("unexpected dataset defaults: source=%q match=%q", cfg.DatasetSource, cfg.CountryMatch)
	}
	if cfg.MissionsCSV != "data/Space_Corrected.csv" || cfg.LatLongCSV != "data/LatLong.csv" {
		t.Errorf("unexpected csv paths: %q %q", cfg.MissionsCSV, cfg.LatLongCSV)
	}
	if cfg.RateLimitRPS != 20 || cfg.RateLimitBurst != 40 {
		t.Errorf("unexpected rate limit: %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("COUNTRY_MATCH", " EXACT ")
	t.Setenv("RATE_LIMIT_RPS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.GinMode != "debug" {
		t.Errorf("unexpected server config: %+v", cfg)
	}
	if cfg.CountryMatch != MatchExact {
		t.Errorf("CountryMatch = %q, want %q", cfg.CountryMatch, MatchExact)
	}
	if cfg.RateLimitRPS != 0 {
		t.Errorf("RateLimitRPS = %v, want 0", cfg.RateLimitRPS)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		Port:          "8080",
		GinMode:       "release",
		MissionsCSV:   "m.csv",
		LatLongCSV:    "l.csv",
		DatasetSource: SourceCSV,
		CountryMatch:  MatchSubstring,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid csv config", mutate: func(c *Config) {}},
		{name: "non numeric port", mutate: func(c *Config) { c.Port = "http" }, wantErr: true},
		{name: "unknown gin mode", mutate: func(c *Config) { c.GinMode = "verbose" }, wantErr: true},
		{name: "unknown source", mutate: func(c *Config) { c.DatasetSource = "s3" }, wantErr: true},
		{name: "unknown match mode", mutate: func(c *Config) { c.CountryMatch = "fuzzy" }, wantErr: true},
		{name: "missing csv path", mutate: func(c *Config) { c.LatLongCSV = "" }, wantErr: true},
		{name: "negative burst", mutate: func(c *Config) { c.RateLimitBurst = -1 }, wantErr: true},
		{name: "firestore without project", mutate: func(c *Config) { c.DatasetSource = SourceFirestore }, wantErr: true},
		{
			name: "firestore without credentials",
			mutate: func(c *Config) {
				c.DatasetSource = SourceFirestore
				c.FirebaseProjectID = "space"
			},
			wantErr: true,
		},
		{
			name: "firestore with credentials",
			mutate: func(c *Config) {
				c.DatasetSource = SourceFirestore
				c.FirebaseProjectID = "space"
				c.FirebaseCredsFile = "creds.json"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFirebaseCredentialsJSON(t *testing.T) {
	raw := []byte(`{"type":"service_account"}`)

	cfg := Config{FirebaseCredsBase64: base64.StdEncoding.EncodeToString(raw)}
	got, source, err := cfg.FirebaseCredentialsJSON()
	if err != nil || source != "base64" || string(got) != string(raw) {
		t.Fatalf("base64 creds = %q, %q, %v", got, source, err)
	}

	path := filepath.Join(t.TempDir(), "creds.json")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write creds: %v", err)
	}
	cfg = Config{FirebaseCredsFile: path}
	got, source, err = cfg.FirebaseCredentialsJSON()
	if err != nil || source != "file" || string(got) != string(raw) {
		t.Fatalf("file creds = %q, %q, %v", got, source, err)
	}

	if _, _, err := (Config{}).FirebaseCredentialsJSON(); err == nil {
		t.Fatalf("expected error without credentials")
	}
}
