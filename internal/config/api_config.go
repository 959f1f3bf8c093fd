package config

import "time"

// DefaultAPIBaseURL is used when API_BASE_URL is not set.
const DefaultAPIBaseURL = "https://staging-ims-api.ezmedtech.ai"

type APIConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
	GetCoalesceRefresh() bool
}

type API struct{}

var _ APIConfig = API{}

// GetAPIBaseURL returns the backend REST API base URL (e.g., "https://ims-api.example.com")
func (API) GetAPIBaseURL() string {
	return GetEnv("API_BASE_URL", DefaultAPIBaseURL)
}

func (API) GetRequestTimeout() time.Duration {
	return GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)
}

// GetCoalesceRefresh reports whether concurrent token refreshes share one backend call.
func (API) GetCoalesceRefresh() bool {
	return GetEnvBool("COALESCE_REFRESH", false)
}
