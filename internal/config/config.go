package config

type Config interface {
	EnvConfig
	SecurityConfig
	CorsConfig
	OIDCConfig
}

type mainConfig struct {
	EnvVars
	Security
	Cors
	OIDC
}

func New() Config {
	return mainConfig{}
}
