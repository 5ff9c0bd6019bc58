package keycloak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigURLs(t *testing.T) {
	cfg := Config{ServerURL: "https://id.example.com/", Realm: "shop"}

	assert.Equal(t, "https://id.example.com/realms/shop", cfg.Issuer())
	assert.Equal(t, "https://id.example.com/realms/shop/protocol/openid-connect/certs", cfg.JWKSURL())
	assert.Equal(t, "https://id.example.com/realms/shop/protocol/openid-connect/token", cfg.TokenURL())
	assert.Equal(t, "https://id.example.com/realms/master/protocol/openid-connect/token", cfg.AdminTokenURL())
	assert.Equal(t, "https://id.example.com/admin/realms/shop/users", cfg.AdminUsersURL())
}

func TestConfigTimeoutDefault(t *testing.T) {
	assert.Equal(t, 5*time.Second, Config{}.timeout())
	assert.Equal(t, time.Second, Config{Timeout: time.Second}.timeout())
}
