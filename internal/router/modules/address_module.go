package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/rkhatri/storefront-core/internal/application"
	"github.com/rkhatri/storefront-core/internal/container"
	handlers "github.com/rkhatri/storefront-core/internal/interface/http"
	"github.com/rkhatri/storefront-core/internal/interface/middleware"
	"github.com/rkhatri/storefront-core/internal/keycloak"
)

type AddressModule struct {
	Handler  *handlers.AddressHandler
	Verifier *keycloak.Verifier
	Auth     *application.AuthService
}

func NewAddressModule(h *handlers.AddressHandler, v *keycloak.Verifier, auth *application.AuthService) *AddressModule {
	return &AddressModule{Handler: h, Verifier: v, Auth: auth}
}

func (m *AddressModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Verifier, m.Auth, container.GetLogger()))
	{
		auth.GET("/addresses", m.Handler.List)
		auth.POST("/addresses", m.Handler.Create)
		auth.GET("/addresses/:id", m.Handler.Get)
		auth.PUT("/addresses/:id", m.Handler.Update)
	}
}
