package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all token verification settings.
//
// JWTSecret verifies tokens signed with a symmetric (HMAC family)
// algorithm. Tokens signed with any other algorithm are verified against
// a remote key set: JWKSURL when set, otherwise the key set published at
// <JWTIssuer>/.well-known/jwks.json. When JWTIssuer is set, the token's
// issuer claim must match it.
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret"           validate:"required,min=32"`
	JWTIssuer          string `mapstructure:"jwt_issuer"           validate:"omitempty,url"`
	JWKSURL            string `mapstructure:"jwks_url"             validate:"omitempty,url"`
	JWKSTimeoutSeconds int    `mapstructure:"jwks_timeout_seconds" validate:"gte=1,lte=60"`
}
