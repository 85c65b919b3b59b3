package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "FRONTEND_URL", "AMADEUS_API_URL", "AMADEUS_ENV",
		"AMADEUS_CLIENT_ID", "AMADEUS_CLIENT_SECRET", "AMADEUS_TIMEOUT", "AIRPORTS_CSV",
		"DEFAULT_DESTINATION", "HOTEL_CITY_CODE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "5001" {
		t.Errorf("expected port 5001, got %q", cfg.Port)
	}
	if cfg.AmadeusBaseURL != testBaseURL {
		t.Errorf("expected test base URL, got %q", cfg.AmadeusBaseURL)
	}
	if cfg.AmadeusTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.AmadeusTimeout)
	}
	if cfg.DefaultDestination != "DEL" || cfg.HotelCityCode != "DEL" {
		t.Errorf("expected DEL defaults, got %q/%q", cfg.DefaultDestination, cfg.HotelCityCode)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error without credentials")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AMADEUS_API_URL", "http://localhost:9999/")
	t.Setenv("AMADEUS_CLIENT_ID", "id")
	t.Setenv("AMADEUS_CLIENT_SECRET", "secret")
	t.Setenv("AMADEUS_TIMEOUT", "5s")
	t.Setenv("FRONTEND_URL", "https://a.example, ,https://b.example")
	t.Setenv("HOTEL_CITY_CODE", "bom")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AmadeusBaseURL != "http://localhost:9999" {
		t.Errorf("expected trimmed base URL, got %q", cfg.AmadeusBaseURL)
	}
	if cfg.AmadeusTimeout != 5*time.Second {
		t.Errorf("expected 5s, got %v", cfg.AmadeusTimeout)
	}
	if cfg.HotelCityCode != "BOM" {
		t.Errorf("expected BOM, got %q", cfg.HotelCityCode)
	}
	origins := cfg.AllowedOrigins()
	if len(origins) != 4 || origins[3] != "https://b.example" {
		t.Errorf("unexpected origins: %v", origins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLoadProductionEnv(t *testing.T) {
	t.Setenv("AMADEUS_API_URL", "")
	t.Setenv("AMADEUS_ENV", "production")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AmadeusBaseURL != productionBaseURL {
		t.Errorf("expected production URL, got %q", cfg.AmadeusBaseURL)
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	t.Setenv("AMADEUS_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid timeout")
	}
}
