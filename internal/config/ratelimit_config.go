package config

import "strconv"

const (
	rateLimitPerSecondVar = "RATE_LIMIT_PER_SECOND"
	rateLimitBurstVar     = "RATE_LIMIT_BURST"
)

// RateLimit configures the per-client request limiter on the page server.
type RateLimit struct{}

var _ RateLimitConfig = RateLimit{}

func (RateLimit) GetRateLimitPerSecond() float64 {
	value := GetEnv(rateLimitPerSecondVar, "20")
	perSecond, err := strconv.ParseFloat(value, 64)
	if err != nil || perSecond <= 0 {
		return 20
	}
	return perSecond
}

func (RateLimit) GetRateLimitBurst() int {
	return GetEnvInt(rateLimitBurstVar, 40)
}
