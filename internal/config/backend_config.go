package config

const (
	apiBaseURLVar     = "API_BASE_URL"
	imageBaseURLVar   = "IMAGE_BASE_URL"
	backendTimeoutVar = "BACKEND_TIMEOUT_SECONDS"
)

// Backend holds the connection settings for the remote marketplace API.
type Backend struct{}

var _ BackendConfig = Backend{}

// GetAPIBaseURL returns the base URL of the marketplace REST API
// (e.g., "https://designmatch.ddns.net").
func (Backend) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "https://designmatch.ddns.net")
}

// GetImageBaseURL returns the base URL that vendor logos and project
// images are served from.
func (Backend) GetImageBaseURL() string {
	return GetEnv(imageBaseURLVar, "https://designmatch-images.s3.amazonaws.com")
}

// GetBackendTimeout returns the per-request timeout, in seconds, for
// calls to the marketplace API.
func (Backend) GetBackendTimeout() int {
	return GetEnvInt(backendTimeoutVar, 30)
}
