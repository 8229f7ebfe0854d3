package config

type OIDCConfig interface {
	// OIDCEnabled reports whether federated login is configured.
	OIDCEnabled() bool
	GetOIDCIssuerURL() string
	GetOIDCClientID() string
	GetOIDCClientSecret() string
	GetOIDCRedirectURL() string
}

type OIDC struct{}

var _ OIDCConfig = OIDC{}

func (o OIDC) OIDCEnabled() bool {
	return o.GetOIDCIssuerURL() != "" && o.GetOIDCClientID() != ""
}

func (OIDC) GetOIDCIssuerURL() string {
	return GetEnv("OIDC_ISSUER_URL", "")
}

func (OIDC) GetOIDCClientID() string {
	return GetEnv("OIDC_CLIENT_ID", "")
}

func (OIDC) GetOIDCClientSecret() string {
	return GetEnv("OIDC_CLIENT_SECRET", "")
}

func (OIDC) GetOIDCRedirectURL() string {
	return GetEnv("OIDC_REDIRECT_URL", "http://localhost:8080/auth/oidc/callback")
}
