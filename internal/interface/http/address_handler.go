package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rkhatri/storefront-core/internal/domain/entity"
	"github.com/rkhatri/storefront-core/internal/domain/repository"
	"github.com/rkhatri/storefront-core/internal/interface/middleware"
	"github.com/rkhatri/storefront-core/pkg/response"
	"github.com/rkhatri/storefront-core/pkg/validation"
)

type AddressHandler struct {
	Addresses repository.AddressRepository
	Logger    *logrus.Logger
}

func NewAddressHandler(addresses repository.AddressRepository, logger *logrus.Logger) *AddressHandler {
	return &AddressHandler{Addresses: addresses, Logger: logger}
}

type addressRequest struct {
	Address string `json:"address" binding:"required"`
}

func (h *AddressHandler) List(c *gin.Context) {
	u := middleware.CurrentUser(c)
	addresses, err := h.Addresses.ListByUser(c.Request.Context(), u.ID)
	if err != nil {
		h.Logger.WithError(err).Error("address list failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load addresses", nil)
		return
	}
	views := make([]addressView, 0, len(addresses))
	for i := range addresses {
		views = append(views, toAddressView(&addresses[i]))
	}
	response.Success(c, http.StatusOK, views, "addresses")
}

func (h *AddressHandler) Create(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u := middleware.CurrentUser(c)
	a := &entity.Address{
		UserID:  u.ID,
		Address: req.Address,
	}
	if err := h.Addresses.Create(c.Request.Context(), a); err != nil {
		h.Logger.WithError(err).Error("address create failed")
		response.Error[any](c, http.StatusInternalServerError, "could not create address", nil)
		return
	}
	response.Success(c, http.StatusCreated, toAddressView(a), "address created")
}

// Get is owner-scoped: an id belonging to another user reads as not found.
func (h *AddressHandler) Get(c *gin.Context) {
	id, ok := addressID(c)
	if !ok {
		return
	}
	u := middleware.CurrentUser(c)
	a, err := h.Addresses.GetByIDForUser(c.Request.Context(), id, u.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "address not found", nil)
			return
		}
		h.Logger.WithError(err).Error("address read failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load address", nil)
		return
	}
	response.Success(c, http.StatusOK, toAddressView(a), "address")
}

func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := addressID(c)
	if !ok {
		return
	}
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u := middleware.CurrentUser(c)
	a, err := h.Addresses.GetByIDForUser(c.Request.Context(), id, u.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "address not found", nil)
			return
		}
		h.Logger.WithError(err).Error("address read failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load address", nil)
		return
	}

	a.Address = req.Address
	if err := h.Addresses.Update(c.Request.Context(), a); err != nil {
		h.Logger.WithError(err).Error("address update failed")
		response.Error[any](c, http.StatusInternalServerError, "could not update address", nil)
		return
	}
	response.Success(c, http.StatusOK, toAddressView(a), "address updated")
}

func addressID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid address id", nil)
		return 0, false
	}
	return id, true
}
