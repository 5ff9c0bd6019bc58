package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rkhatri/storefront-core/internal/application"
	"github.com/rkhatri/storefront-core/internal/interface/middleware"
	"github.com/rkhatri/storefront-core/pkg/response"
	"github.com/rkhatri/storefront-core/pkg/validation"
)

type OrderHandler struct {
	Svc    *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(svc *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Logger: logger}
}

type orderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

type createOrderRequest struct {
	AddressID *int64             `json:"address_id"`
	Items     []orderItemRequest `json:"items" binding:"required"`
}

func (h *OrderHandler) List(c *gin.Context) {
	u := middleware.CurrentUser(c)
	orders, err := h.Svc.List(c.Request.Context(), u.ID)
	if err != nil {
		h.Logger.WithError(err).Error("order list failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load orders", nil)
		return
	}
	response.Success(c, http.StatusOK, toOrderViews(orders), "orders")
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	items := make([]application.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, application.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	u := middleware.CurrentUser(c)
	order, err := h.Svc.Create(c.Request.Context(), u, req.AddressID, items)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmptyOrder):
			response.Error[any](c, http.StatusBadRequest, "order has no items", nil)
		case errors.Is(err, application.ErrInvalidQuantity):
			response.Error[any](c, http.StatusBadRequest, "item quantity must be at least 1", nil)
		case errors.Is(err, application.ErrProductNotFound):
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
		default:
			h.Logger.WithError(err).Error("order create failed")
			response.Error[any](c, http.StatusInternalServerError, "could not create order", nil)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"order_id":   order.OrderID,
		"net_amount": order.NetAmount,
		"gst":        order.TaxAmount,
	}, "order created")
}
