package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rkhatri/storefront-core/internal/domain/entity"
	"github.com/rkhatri/storefront-core/internal/domain/repository"
	"github.com/rkhatri/storefront-core/pkg/response"
	"github.com/rkhatri/storefront-core/pkg/validation"
)

type ProductHandler struct {
	Products repository.ProductRepository
	Logger   *logrus.Logger
}

func NewProductHandler(products repository.ProductRepository, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Products: products, Logger: logger}
}

type createProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Category string          `json:"category"`
}

// List returns the active catalog only; retired products stay queryable by
// existing order snapshots but never appear here.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Products.ListActive(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("product list failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load products", nil)
		return
	}
	views := make([]productView, 0, len(products))
	for i := range products {
		views = append(views, toProductView(&products[i]))
	}
	response.Success(c, http.StatusOK, views, "products")
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.Price.IsNegative() {
		response.Error[any](c, http.StatusBadRequest, "price must not be negative", nil)
		return
	}

	p := &entity.Product{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		IsActive: true,
	}
	if err := h.Products.Create(c.Request.Context(), p); err != nil {
		h.Logger.WithError(err).Error("product create failed")
		response.Error[any](c, http.StatusInternalServerError, "could not create product", nil)
		return
	}
	response.Success(c, http.StatusCreated, toProductView(p), "product created")
}
