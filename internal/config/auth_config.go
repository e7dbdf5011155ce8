package config

type Auth struct{}

var _ AuthConfig = Auth{}

// GetIdentityDomain returns the Auth0 tenant domain, e.g. "example.auth0.com".
func (Auth) GetIdentityDomain() string {
	return GetEnv("AUTH0_DOMAIN", "")
}

func (Auth) GetClientID() string {
	return GetEnv("AUTH0_CLIENT_ID", "")
}

// GetRedirectURI is where the identity provider sends the operator back
// with an authorization code (or an error).
func (Auth) GetRedirectURI() string {
	return GetEnv("AUTH0_REDIRECT_URI", "http://localhost:3001/callbacks/auth0")
}

func (Auth) GetAudience() string {
	return GetEnv("AUTH0_AUDIENCE", "")
}

// GetLogoutReturnURI is where the identity provider sends the operator
// after a provider-side logout.
func (Auth) GetLogoutReturnURI() string {
	return GetEnv("AUTH0_LOGOUT_RETURN_URI", "http://localhost:3001/auth/logout")
}

func (Auth) GetScopes() []string {
	return []string{"openid", "profile", "email"}
}
