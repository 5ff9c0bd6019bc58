package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rkhatri/storefront-core/internal/application"
	"github.com/rkhatri/storefront-core/internal/domain/entity"
	"github.com/rkhatri/storefront-core/internal/keycloak"
	"github.com/rkhatri/storefront-core/pkg/response"
)

// CtxUserKey is the gin context key holding the resolved *entity.User.
const CtxUserKey = "authUser"

// Auth verifies the bearer token against the identity provider's keys and
// resolves the local user row, creating it on first sight of the email.
// Every authentication failure collapses to the same 401 body; the concrete
// cause goes to the log only.
func Auth(verifier *keycloak.Verifier, auth *application.AuthService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.AbortError[any](c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims, err := verifier.Verify(c.Request.Context(), raw)
		if err != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Info("bearer token rejected")
			response.AbortError[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}

		// Token-path users start unverified; only a signin marks them verified.
		user, err := auth.ResolveOrCreate(c.Request.Context(), claims.Email, claims.DisplayName(), false)
		if err != nil {
			logger.WithError(err).WithField("email", claims.Email).Error("failed to resolve local user")
			response.AbortError[any](c, http.StatusInternalServerError, "failed to resolve user", nil)
			return
		}

		c.Set(CtxUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by Auth, nil when absent.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
