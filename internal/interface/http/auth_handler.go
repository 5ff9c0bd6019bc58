package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rkhatri/storefront-core/internal/application"
	"github.com/rkhatri/storefront-core/internal/keycloak"
	"github.com/rkhatri/storefront-core/pkg/response"
	"github.com/rkhatri/storefront-core/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	FullName string `json:"full_name" binding:"required"`
}

type signinRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signinResponse struct {
	Access    string   `json:"access"`
	Refresh   string   `json:"refresh"`
	ExpiresIn int      `json:"expires_in"`
	User      userView `json:"user"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	_, err := h.Svc.Signup(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Error[any](c, http.StatusBadRequest, "email already registered", nil)
		case errors.Is(err, keycloak.ErrUserCreationFailed), errors.Is(err, keycloak.ErrAdminAuthFailed):
			h.Logger.WithError(err).Error("identity provisioning failed")
			response.Error[any](c, http.StatusBadGateway, "could not provision account", nil)
		default:
			h.Logger.WithError(err).Error("signup failed")
			response.Error[any](c, http.StatusInternalServerError, "signup failed", nil)
		}
		return
	}
	response.Success[any](c, http.StatusCreated, gin.H{"message": "account created"}, "account created")
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	tokens, user, err := h.Svc.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, keycloak.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		h.Logger.WithError(err).Error("signin failed")
		response.Error[any](c, http.StatusInternalServerError, "signin failed", nil)
		return
	}

	response.Success(c, http.StatusOK, signinResponse{
		Access:    tokens.AccessToken,
		Refresh:   tokens.RefreshToken,
		ExpiresIn: tokens.ExpiresIn,
		User:      toUserView(user),
	}, "signed in")
}
