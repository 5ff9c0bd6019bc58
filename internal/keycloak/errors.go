package keycloak

import "errors"

// Typed failures for the bearer-verification pipeline and the credential
// exchange flows. Handlers map all of them to a uniform 401; the concrete
// cause only ever reaches the logs.
var (
	ErrMalformedToken    = errors.New("malformed token")
	ErrKeyFetch          = errors.New("failed to fetch signing keys")
	ErrKeyNotFound       = errors.New("signing key not found")
	ErrInvalidSignature  = errors.New("invalid token signature")
	ErrInvalidIssuer     = errors.New("invalid token issuer")
	ErrTokenExpired      = errors.New("token expired or not yet valid")
	ErrInvalidAudience   = errors.New("invalid token audience")
	ErrClientMismatch    = errors.New("token issued for another client")
	ErrMissingEmailClaim = errors.New("email claim missing")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminAuthFailed    = errors.New("admin authentication failed")
	ErrUserCreationFailed = errors.New("remote user creation failed")
)
