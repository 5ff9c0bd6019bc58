package keycloak

import (
	"strings"
	"time"
)

// Config carries the provider coordinates used by the verifier, the key
// source, and the credential exchange client. It is passed explicitly into
// constructors; nothing in this package reads ambient state.
type Config struct {
	ServerURL     string // e.g. https://id.example.com, no trailing slash
	Realm         string
	ClientID      string
	AdminUser     string
	AdminPassword string

	// Timeout bounds every network call to the provider. Zero means 5s.
	Timeout time.Duration

	// VerifyAudience enables the aud check against ClientID. The upstream
	// password-grant flow omits this client from aud, so it defaults to off.
	VerifyAudience bool
}

const defaultTimeout = 5 * time.Second

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

func (c Config) base() string {
	return strings.TrimRight(c.ServerURL, "/")
}

// Issuer is the exact iss value tokens must carry.
func (c Config) Issuer() string {
	return c.base() + "/realms/" + c.Realm
}

// JWKSURL is the realm's published key-set endpoint.
func (c Config) JWKSURL() string {
	return c.Issuer() + "/protocol/openid-connect/certs"
}

// TokenURL is the realm's token endpoint (password grant).
func (c Config) TokenURL() string {
	return c.Issuer() + "/protocol/openid-connect/token"
}

// AdminTokenURL is the master-realm token endpoint used for the admin grant.
func (c Config) AdminTokenURL() string {
	return c.base() + "/realms/master/protocol/openid-connect/token"
}

// AdminUsersURL is the admin REST endpoint for account management.
func (c Config) AdminUsersURL() string {
	return c.base() + "/admin/realms/" + c.Realm + "/users"
}
