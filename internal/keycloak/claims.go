package keycloak

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the strongly typed view of a verified access token. Optional
// provider claims are explicit fields so missing-claim handling stays
// exhaustive instead of hiding in a map.
type Claims struct {
	Email             string `json:"email"`
	PreferredUsername string `json:"preferred_username"`
	Name              string `json:"name"`
	AuthorizedParty   string `json:"azp"`

	jwt.RegisteredClaims
}

// DisplayName picks the best available human-readable name, falling back to
// the email the same way the provider's preferred_username default does.
func (c *Claims) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.PreferredUsername != "" {
		return c.PreferredUsername
	}
	return c.Email
}
