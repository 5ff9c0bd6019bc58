package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/rkhatri/storefront-core/internal/application"
	"github.com/rkhatri/storefront-core/internal/container"
	handlers "github.com/rkhatri/storefront-core/internal/interface/http"
	"github.com/rkhatri/storefront-core/internal/interface/middleware"
	"github.com/rkhatri/storefront-core/internal/keycloak"
)

type OrderModule struct {
	Orders    *handlers.OrderHandler
	Dashboard *handlers.DashboardHandler
	Verifier  *keycloak.Verifier
	Auth      *application.AuthService
}

func NewOrderModule(orders *handlers.OrderHandler, dashboard *handlers.DashboardHandler, v *keycloak.Verifier, auth *application.AuthService) *OrderModule {
	return &OrderModule{Orders: orders, Dashboard: dashboard, Verifier: v, Auth: auth}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Verifier, m.Auth, container.GetLogger()))
	{
		auth.GET("/orders", m.Orders.List)
		auth.POST("/orders", m.Orders.Create)
		auth.GET("/dashboard", m.Dashboard.Get)
	}
}
