package keycloak

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates bearer tokens issued by the provider. Claim checks are
// performed explicitly after signature verification so each failure surfaces
// as its own typed error in the order: key resolution, signature, issuer,
// expiry, audience (optional), authorized party, email.
type Verifier struct {
	cfg    Config
	keys   *KeySource
	parser *jwt.Parser

	// now is swappable for tests.
	now func() time.Time
}

// NewVerifier builds a verifier backed by the given key source.
func NewVerifier(cfg Config, keys *KeySource) *Verifier {
	return &Verifier{
		cfg:  cfg,
		keys: keys,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
		now: time.Now,
	}
}

// Verify parses and validates raw, returning the typed claims on success.
func (v *Verifier) Verify(ctx context.Context, raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := v.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		kid, ok := t.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, fmt.Errorf("%w: no kid in header", ErrMalformedToken)
		}
		return v.keys.SigningKey(ctx, kid)
	})
	if err != nil {
		return nil, mapParseError(err)
	}
	if !tok.Valid {
		return nil, ErrInvalidSignature
	}

	if claims.Issuer != v.cfg.Issuer() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIssuer, claims.Issuer)
	}

	now := v.now()
	if claims.ExpiresAt == nil || !now.Before(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}
	if claims.NotBefore != nil && now.Before(claims.NotBefore.Time) {
		return nil, ErrTokenExpired
	}

	if v.cfg.VerifyAudience && !audienceContains(claims.Audience, v.cfg.ClientID) {
		return nil, ErrInvalidAudience
	}

	if claims.AuthorizedParty != v.cfg.ClientID {
		return nil, fmt.Errorf("%w: azp %q", ErrClientMismatch, claims.AuthorizedParty)
	}

	if claims.Email == "" {
		return nil, ErrMissingEmailClaim
	}
	return claims, nil
}

func audienceContains(aud jwt.ClaimStrings, clientID string) bool {
	for _, a := range aud {
		if a == clientID {
			return true
		}
	}
	return false
}

// mapParseError folds golang-jwt parse failures into this package's taxonomy.
// Keyfunc errors are wrapped by the parser, so the typed key errors are
// checked first.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, ErrKeyFetch),
		errors.Is(err, ErrKeyNotFound),
		errors.Is(err, ErrMalformedToken):
		return err
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
}
