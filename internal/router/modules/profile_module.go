package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/rkhatri/storefront-core/internal/application"
	"github.com/rkhatri/storefront-core/internal/container"
	handlers "github.com/rkhatri/storefront-core/internal/interface/http"
	"github.com/rkhatri/storefront-core/internal/interface/middleware"
	"github.com/rkhatri/storefront-core/internal/keycloak"
)

type ProfileModule struct {
	Handler  *handlers.ProfileHandler
	Verifier *keycloak.Verifier
	Auth     *application.AuthService
}

func NewProfileModule(h *handlers.ProfileHandler, v *keycloak.Verifier, auth *application.AuthService) *ProfileModule {
	return &ProfileModule{Handler: h, Verifier: v, Auth: auth}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Verifier, m.Auth, container.GetLogger()))
	{
		auth.GET("/profile", m.Handler.Get)
		auth.PUT("/profile", m.Handler.Update)
	}
}
