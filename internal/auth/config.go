package auth

import (
	"fmt"
	"time"
)

// DefaultTokenTTL is the lifetime of tokens minted by GenerateJWT when none is configured
const DefaultTokenTTL = time.Hour

// AuthConfig holds the settings used to verify bearer tokens issued by the identity provider
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" json:"jwt_secret"`
	Issuer    string        `yaml:"issuer,omitempty" json:"issuer,omitempty"`
	Audience  string        `yaml:"audience,omitempty" json:"audience,omitempty"`
	TokenTTL  time.Duration `yaml:"token_ttl,omitempty" json:"token_ttl,omitempty"`
}

// ValidateConfig validates the authentication configuration
func (c *AuthConfig) ValidateConfig() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("JWT secret must be at least 16 characters")
	}
	if c.TokenTTL < 0 {
		return fmt.Errorf("token TTL cannot be negative")
	}
	return nil
}

func (c *AuthConfig) tokenTTL() time.Duration {
	if c.TokenTTL == 0 {
		return DefaultTokenTTL
	}
	return c.TokenTTL
}
