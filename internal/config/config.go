package config

type Config interface {
	EnvConfig
	BackendConfig
	RateLimitConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetSessionMaxAge() int
}

type BackendConfig interface {
	GetAPIBaseURL() string
	GetImageBaseURL() string
	GetBackendTimeout() int
}

type RateLimitConfig interface {
	GetRateLimitPerSecond() float64
	GetRateLimitBurst() int
}

type mainConfig struct {
	EnvVars
	Backend
	RateLimit
}

func New() Config {
	return mainConfig{}
}
