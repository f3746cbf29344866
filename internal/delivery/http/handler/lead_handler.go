package handler

import (
	"net/http"

	"github.com/umeshkhanal/rumooz/internal/usecase/lead"
	"github.com/umeshkhanal/rumooz/pkg/utils"

	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	service *lead.Service
}

func NewLeadHandler(service *lead.Service) *LeadHandler {
	return &LeadHandler{service: service}
}

func (h *LeadHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/requests", h.CreateRequest)
	router.POST("/contact", h.SubmitContact)
}

func (h *LeadHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/requests", h.ListRequests)
	router.GET("/contact", h.ListContacts)
}

func (h *LeadHandler) CreateRequest(c *gin.Context) {
	var req lead.CreateRequestRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.CreateRequest(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Request submitted successfully", resp)
}

func (h *LeadHandler) ListRequests(c *gin.Context) {
	requests, err := h.service.ListRequests(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Requests retrieved successfully", requests)
}

func (h *LeadHandler) SubmitContact(c *gin.Context) {
	var req lead.ContactRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.SubmitContact(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Message sent successfully", resp)
}

func (h *LeadHandler) ListContacts(c *gin.Context) {
	messages, err := h.service.ListContacts(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Contact messages retrieved successfully", messages)
}
