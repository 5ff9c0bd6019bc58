package router

import (
	"github.com/rkhatri/storefront-core/internal/application"
	"github.com/rkhatri/storefront-core/internal/container"
	pginfra "github.com/rkhatri/storefront-core/internal/infrastructure/postgres"
	handlers "github.com/rkhatri/storefront-core/internal/interface/http"
	"github.com/rkhatri/storefront-core/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during application startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(pool)
	products := pginfra.NewProductRepository(pool)
	addresses := pginfra.NewAddressRepository(pool)
	orders := pginfra.NewOrderRepository(pool)

	authSvc := application.NewAuthService(users, container.GetKeycloakClient(), logger, container.GetRabbitPub())
	orderSvc := application.NewOrderService(orders, products, addresses, logger)

	verifier := container.GetKeycloakVerifier()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(users, logger), verifier, authSvc))
	r.Add(modules.NewCatalogModule(handlers.NewProductHandler(products, logger), verifier, authSvc))
	r.Add(modules.NewAddressModule(handlers.NewAddressHandler(addresses, logger), verifier, authSvc))
	r.Add(modules.NewOrderModule(handlers.NewOrderHandler(orderSvc, logger), handlers.NewDashboardHandler(orderSvc, logger), verifier, authSvc))
}
