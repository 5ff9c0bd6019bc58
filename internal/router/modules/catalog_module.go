package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/rkhatri/storefront-core/internal/application"
	"github.com/rkhatri/storefront-core/internal/container"
	handlers "github.com/rkhatri/storefront-core/internal/interface/http"
	"github.com/rkhatri/storefront-core/internal/interface/middleware"
	"github.com/rkhatri/storefront-core/internal/keycloak"
)

type CatalogModule struct {
	Handler  *handlers.ProductHandler
	Verifier *keycloak.Verifier
	Auth     *application.AuthService
}

func NewCatalogModule(h *handlers.ProductHandler, v *keycloak.Verifier, auth *application.AuthService) *CatalogModule {
	return &CatalogModule{Handler: h, Verifier: v, Auth: auth}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Verifier, m.Auth, container.GetLogger()))
	{
		auth.GET("/products", m.Handler.List)
		auth.POST("/products", m.Handler.Create)
	}
}
