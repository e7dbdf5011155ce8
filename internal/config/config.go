package config

type Config interface {
	EnvConfig
	APIConfig
	AuthConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

type APIConfig interface {
	GetAPIRoot() string
}

type AuthConfig interface {
	GetIdentityDomain() string
	GetClientID() string
	GetRedirectURI() string
	GetAudience() string
	GetLogoutReturnURI() string
	GetScopes() []string
}

type mainConfig struct {
	EnvVars
	Auth
}

func New() Config {
	return mainConfig{}
}
