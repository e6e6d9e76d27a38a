package config

import (
	"os"
	"time"
)

const (
	// DevelopmentAPIURL is where a locally running API listens.
	DevelopmentAPIURL = "http://localhost:8000"
	// PlaceholderAPIURL is used in production when API_URL is unset.
	PlaceholderAPIURL = "https://your-backend-url.com"
)

// ClientConfig is resolved once at startup and handed to the upload client
type ClientConfig struct {
	APIURL  string
	Timeout time.Duration
}

// APIURLFor returns the analysis API base URL for env. override wins when non-empty.
func APIURLFor(env Environment, override string) string {
	if override != "" {
		return override
	}
	if env == Production {
		return PlaceholderAPIURL
	}
	return DevelopmentAPIURL
}

// LoadClientConfig reads ENV, API_URL and CLIENT_TIMEOUT
func LoadClientConfig() ClientConfig {
	env := GetEnvironment()
	override := ""
	if env == Production {
		override = os.Getenv("API_URL")
	}
	return ClientConfig{
		APIURL:  APIURLFor(env, override),
		Timeout: parseDurationOrDefault(os.Getenv("CLIENT_TIMEOUT"), 10*time.Minute),
	}
}
