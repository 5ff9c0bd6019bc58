package keycloak

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwk"
)

// KeySource resolves the provider's public signing keys by key id. Every call
// fetches the published set fresh within the configured bound, so a kid is
// only ever served after it has just been confirmed to exist; a token signed
// under a rotated or revoked key id cannot ride a stale entry.
type KeySource struct {
	url    string
	client *http.Client
	bound  time.Duration
}

// NewKeySource builds a key source for the realm's JWKS endpoint.
func NewKeySource(cfg Config) *KeySource {
	return &KeySource{
		url:    cfg.JWKSURL(),
		client: &http.Client{Timeout: cfg.timeout()},
		bound:  cfg.timeout(),
	}
}

// SigningKey fetches the key set and returns the RSA public key matching kid.
func (s *KeySource) SigningKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	ctx, cancel := context.WithTimeout(ctx, s.bound)
	defer cancel()

	set, err := jwk.Fetch(ctx, s.url, jwk.WithHTTPClient(s.client))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFetch, err)
	}

	key, ok := set.LookupKeyID(kid)
	if !ok {
		return nil, fmt.Errorf("%w: kid %q", ErrKeyNotFound, kid)
	}

	var pub rsa.PublicKey
	if err := jwk.Export(key, &pub); err != nil {
		return nil, fmt.Errorf("%w: export kid %q: %v", ErrKeyFetch, kid, err)
	}
	return &pub, nil
}
