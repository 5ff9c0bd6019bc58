package keycloak

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKID = "test-signing-key"

// testProvider serves a JWKS endpoint for the realm and returns the config
// pointing at it plus the private key tokens should be signed with.
func testProvider(t *testing.T) (Config, *rsa.PrivateKey) {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pub, err := jwk.Import(priv.Public())
	require.NoError(t, err)
	require.NoError(t, pub.Set(jwk.KeyIDKey, testKID))
	require.NoError(t, pub.Set(jwk.AlgorithmKey, "RS256"))

	set := jwk.NewSet()
	require.NoError(t, set.AddKey(pub))
	body, err := json.Marshal(set)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/realms/shop/protocol/openid-connect/certs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return Config{
		ServerURL: srv.URL,
		Realm:     "shop",
		ClientID:  "storefront-web",
	}, priv
}

func signToken(t *testing.T, priv *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		tok.Header["kid"] = kid
	}
	raw, err := tok.SignedString(priv)
	require.NoError(t, err)
	return raw
}

func baseClaims(cfg Config) jwt.MapClaims {
	return jwt.MapClaims{
		"iss":   cfg.Issuer(),
		"exp":   time.Now().Add(time.Hour).Unix(),
		"azp":   cfg.ClientID,
		"email": "buyer@example.com",
		"name":  "Test Buyer",
	}
}

func TestVerify_Success(t *testing.T) {
	cfg, priv := testProvider(t)
	v := NewVerifier(cfg, NewKeySource(cfg))

	raw := signToken(t, priv, testKID, baseClaims(cfg))

	claims, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, "Test Buyer", claims.DisplayName())
}

func TestVerify_MissingKIDHeader(t *testing.T) {
	cfg, priv := testProvider(t)
	v := NewVerifier(cfg, NewKeySource(cfg))

	raw := signToken(t, priv, "", baseClaims(cfg))

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestVerify_UnknownKID(t *testing.T) {
	cfg, priv := testProvider(t)
	v := NewVerifier(cfg, NewKeySource(cfg))

	raw := signToken(t, priv, "rotated-away", baseClaims(cfg))

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestVerify_WrongKeySignature(t *testing.T) {
	cfg, _ := testProvider(t)
	v := NewVerifier(cfg, NewKeySource(cfg))

	// Signed by a different key but claiming the published kid.
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	raw := signToken(t, other, testKID, baseClaims(cfg))

	_, err = v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_WrongIssuer(t *testing.T) {
	cfg, priv := testProvider(t)
	v := NewVerifier(cfg, NewKeySource(cfg))

	claims := baseClaims(cfg)
	claims["iss"] = "https://rogue.example.com/realms/shop"
	raw := signToken(t, priv, testKID, claims)

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidIssuer)
}

func TestVerify_Expired(t *testing.T) {
	cfg, priv := testProvider(t)
	v := NewVerifier(cfg, NewKeySource(cfg))

	claims := baseClaims(cfg)
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	raw := signToken(t, priv, testKID, claims)

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_MissingExpiry(t *testing.T) {
	cfg, priv := testProvider(t)
	v := NewVerifier(cfg, NewKeySource(cfg))

	claims := baseClaims(cfg)
	delete(claims, "exp")
	raw := signToken(t, priv, testKID, claims)

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_NotYetValid(t *testing.T) {
	cfg, priv := testProvider(t)
	v := NewVerifier(cfg, NewKeySource(cfg))

	claims := baseClaims(cfg)
	claims["nbf"] = time.Now().Add(time.Hour).Unix()
	raw := signToken(t, priv, testKID, claims)

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_ClientMismatch(t *testing.T) {
	cfg, priv := testProvider(t)
	v := NewVerifier(cfg, NewKeySource(cfg))

	claims := baseClaims(cfg)
	claims["azp"] = "some-other-client"
	raw := signToken(t, priv, testKID, claims)

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrClientMismatch)
}

func TestVerify_MissingEmail(t *testing.T) {
	cfg, priv := testProvider(t)
	v := NewVerifier(cfg, NewKeySource(cfg))

	claims := baseClaims(cfg)
	delete(claims, "email")
	raw := signToken(t, priv, testKID, claims)

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrMissingEmailClaim)
}

func TestVerify_AudienceOptionalByDefault(t *testing.T) {
	cfg, priv := testProvider(t)
	v := NewVerifier(cfg, NewKeySource(cfg))

	claims := baseClaims(cfg)
	claims["aud"] = "account"
	raw := signToken(t, priv, testKID, claims)

	_, err := v.Verify(context.Background(), raw)
	assert.NoError(t, err)
}

func TestVerify_AudienceEnforcedWhenEnabled(t *testing.T) {
	cfg, priv := testProvider(t)
	cfg.VerifyAudience = true
	v := NewVerifier(cfg, NewKeySource(cfg))

	claims := baseClaims(cfg)
	claims["aud"] = "account"
	raw := signToken(t, priv, testKID, claims)

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidAudience)

	claims["aud"] = []string{"account", cfg.ClientID}
	raw = signToken(t, priv, testKID, claims)
	_, err = v.Verify(context.Background(), raw)
	assert.NoError(t, err)
}

func TestVerify_GarbageToken(t *testing.T) {
	cfg, _ := testProvider(t)
	v := NewVerifier(cfg, NewKeySource(cfg))

	_, err := v.Verify(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestVerify_KeyEndpointDown(t *testing.T) {
	cfg, priv := testProvider(t)
	raw := signToken(t, priv, testKID, baseClaims(cfg))

	down := Config{ServerURL: "http://127.0.0.1:1", Realm: "shop", ClientID: cfg.ClientID, Timeout: time.Second}
	v := NewVerifier(down, NewKeySource(down))

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrKeyFetch)
}
