package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rkhatri/storefront-core/internal/domain/repository"
	"github.com/rkhatri/storefront-core/internal/interface/middleware"
	"github.com/rkhatri/storefront-core/pkg/response"
	"github.com/rkhatri/storefront-core/pkg/validation"
)

type ProfileHandler struct {
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewProfileHandler(users repository.UserRepository, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Users: users, Logger: logger}
}

// updateProfileRequest carries the writable profile fields. Email, user_id,
// and verification state are read-only; payload values for them are ignored.
type updateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Company   *string `json:"company"`
	GSTNumber *string `json:"gst_number"`
}

func (h *ProfileHandler) Get(c *gin.Context) {
	u := middleware.CurrentUser(c)
	response.Success(c, http.StatusOK, toUserView(u), "profile")
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u := middleware.CurrentUser(c)
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Company != nil {
		u.Company = *req.Company
	}
	if req.GSTNumber != nil {
		u.GSTNumber = *req.GSTNumber
	}

	if err := h.Users.Update(c.Request.Context(), u); err != nil {
		h.Logger.WithError(err).Error("profile update failed")
		response.Error[any](c, http.StatusInternalServerError, "profile update failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "profile updated")
}
