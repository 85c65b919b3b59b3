package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	testBaseURL       = "https://test.api.amadeus.com"
	productionBaseURL = "https://api.amadeus.com"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	// Extra CORS origins on top of the local dev servers.
	FrontendOrigins []string

	AmadeusBaseURL      string
	AmadeusClientID     string
	AmadeusClientSecret string
	AmadeusTimeout      time.Duration

	AirportsCSV        string
	DefaultDestination string
	HotelCityCode      string
}

// LoadDotEnv reads .env into the process environment. It reports whether a
// file was found; a missing file is not an error.
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Load builds a Config from the environment.
func Load() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("AMADEUS_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid AMADEUS_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:                getEnv("PORT", "5001"),
		GinMode:             os.Getenv("GIN_MODE"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		FrontendOrigins:     splitList(os.Getenv("FRONTEND_URL")),
		AmadeusBaseURL:      amadeusBaseURL(),
		AmadeusClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		AmadeusClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		AmadeusTimeout:      timeout,
		AirportsCSV:         getEnv("AIRPORTS_CSV", "data/airports.csv"),
		DefaultDestination:  strings.ToUpper(getEnv("DEFAULT_DESTINATION", "DEL")),
		HotelCityCode:       strings.ToUpper(getEnv("HOTEL_CITY_CODE", "DEL")),
	}
	return cfg, nil
}

// Validate checks that the Amadeus credentials needed to serve requests are present.
func (c *Config) Validate() error {
	var missing []string
	if c.AmadeusBaseURL == "" {
		missing = append(missing, "AMADEUS_API_URL")
	}
	if c.AmadeusClientID == "" {
		missing = append(missing, "AMADEUS_CLIENT_ID")
	}
	if c.AmadeusClientSecret == "" {
		missing = append(missing, "AMADEUS_CLIENT_SECRET")
	}
	if len(missing) > 0 {
		return errors.New("missing required Amadeus settings: " + strings.Join(missing, ", "))
	}
	return nil
}

// AllowedOrigins returns the CORS allow list.
func (c *Config) AllowedOrigins() []string {
	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	return append(origins, c.FrontendOrigins...)
}

func amadeusBaseURL() string {
	if u := os.Getenv("AMADEUS_API_URL"); u != "" {
		return strings.TrimRight(u, "/")
	}
	env := os.Getenv("AMADEUS_ENV")
	if env == "" || env == "test" {
		return testBaseURL
	}
	return productionBaseURL
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
