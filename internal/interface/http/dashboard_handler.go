package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rkhatri/storefront-core/internal/application"
	"github.com/rkhatri/storefront-core/internal/interface/middleware"
	"github.com/rkhatri/storefront-core/pkg/response"
)

type DashboardHandler struct {
	Svc    *application.OrderService
	Logger *logrus.Logger
}

func NewDashboardHandler(svc *application.OrderService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

type dashboardView struct {
	TotalOrders     int             `json:"total_orders"`
	ActiveOrders    int             `json:"active_orders"`
	CompletedOrders int             `json:"completed_orders"`
	CancelledOrders int             `json:"cancelled_orders"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	RecentOrders    []orderView     `json:"recent_orders"`
}

func (h *DashboardHandler) Get(c *gin.Context) {
	u := middleware.CurrentUser(c)
	summary, err := h.Svc.Dashboard(c.Request.Context(), u.ID)
	if err != nil {
		h.Logger.WithError(err).Error("dashboard aggregation failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load dashboard", nil)
		return
	}

	response.Success(c, http.StatusOK, dashboardView{
		TotalOrders:     summary.TotalOrders,
		ActiveOrders:    summary.ActiveOrders,
		CompletedOrders: summary.CompletedOrders,
		CancelledOrders: summary.CancelledOrders,
		TotalAmount:     summary.NetSum,
		RecentOrders:    toOrderViews(summary.RecentOrders),
	}, "dashboard")
}
