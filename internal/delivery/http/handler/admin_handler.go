package handler

import (
	"net/http"

	"github.com/umeshkhanal/rumooz/internal/middleware"
	"github.com/umeshkhanal/rumooz/internal/usecase/admin"
	appErrors "github.com/umeshkhanal/rumooz/pkg/errors"
	"github.com/umeshkhanal/rumooz/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service *admin.Service
}

func NewAdminHandler(service *admin.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// RegisterRoutes mounts the login and code endpoints. authLimit guards them against guessing.
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup, authLimit gin.HandlerFunc) {
	adminGroup := router.Group("/admin")
	adminGroup.Use(authLimit)
	{
		adminGroup.POST("/login", h.Login)
		adminGroup.POST("/send-code", h.SendCode)
		adminGroup.POST("/confirm-code", h.ConfirmCode)
	}
}

func (h *AdminHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	adminGroup := router.Group("/admin")
	{
		adminGroup.GET("/profile", h.GetProfile)
		adminGroup.POST("/change-email", h.ChangeEmail)
		adminGroup.POST("/change-contact-mail", h.ChangeContactMail)
		adminGroup.POST("/change-password", h.ChangePassword)
	}
}

// Login answers 403 on success: the client must confirm the emailed code before it gets a token.
func (h *AdminHandler) Login(c *gin.Context) {
	var req admin.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.ErrorResponseWithData(c, http.StatusForbidden, "Please verify your email before login", resp)
}

func (h *AdminHandler) SendCode(c *gin.Context) {
	var req admin.SendCodeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.service.SendCode(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Verification code sent", nil)
}

func (h *AdminHandler) ConfirmCode(c *gin.Context) {
	var req admin.ConfirmCodeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.ConfirmCode(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Verified successfully", resp)
}

func (h *AdminHandler) GetProfile(c *gin.Context) {
	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		respondWithError(c, appErrors.ErrUnauthorized)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), adminID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *AdminHandler) ChangeEmail(c *gin.Context) {
	var req admin.ChangeEmailRequest
	h.change(c, &req, "Email updated successfully", func(adminID uint) (*admin.TokenResponse, error) {
		return h.service.ChangeEmail(c.Request.Context(), adminID, &req)
	})
}

func (h *AdminHandler) ChangeContactMail(c *gin.Context) {
	var req admin.ChangeContactMailRequest
	h.change(c, &req, "Contact mail updated successfully", func(adminID uint) (*admin.TokenResponse, error) {
		return h.service.ChangeContactMail(c.Request.Context(), adminID, &req)
	})
}

func (h *AdminHandler) ChangePassword(c *gin.Context) {
	var req admin.ChangePasswordRequest
	h.change(c, &req, "Password updated successfully", func(adminID uint) (*admin.TokenResponse, error) {
		return h.service.ChangePassword(c.Request.Context(), adminID, &req)
	})
}

// change binds req, runs apply for the authenticated admin and returns the replacement token.
func (h *AdminHandler) change(c *gin.Context, req any, message string, apply func(adminID uint) (*admin.TokenResponse, error)) {
	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		respondWithError(c, appErrors.ErrUnauthorized)
		return
	}

	if err := c.ShouldBindJSON(req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := apply(adminID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, resp)
}
