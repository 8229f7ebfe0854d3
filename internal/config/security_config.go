package config

import "time"

type SecurityConfig interface {
	// GetJWTSecret returns the base64-encoded HMAC signing secret.
	GetJWTSecret() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetJanitorInterval() time.Duration
	// IsProduction toggles the Secure attribute on refresh cookies.
	IsProduction() bool
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetJWTSecret() string {
	// Dev fallback only; deployments must set JWT_SECRET.
	return GetEnv("JWT_SECRET", "ZGV2LW9ubHktc2VjcmV0LWRvLW5vdC11c2UtaW4tcHJvZCE=")
}

func (Security) GetAccessTokenTTL() time.Duration {
	return durationEnv("ACCESS_TOKEN_TTL", time.Hour)
}

func (Security) GetRefreshTokenTTL() time.Duration {
	return durationEnv("REFRESH_TOKEN_TTL", 7*24*time.Hour)
}

func (Security) GetJanitorInterval() time.Duration {
	return durationEnv("TOKEN_CLEANUP_INTERVAL", 24*time.Hour)
}

func (s Security) IsProduction() bool {
	return EnvVars{}.GetEnv() == "PROD"
}

func durationEnv(envVar string, defaultValue time.Duration) time.Duration {
	value := GetEnv(envVar, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
