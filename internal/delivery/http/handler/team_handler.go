package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/umeshkhanal/rumooz/internal/usecase/team"
	"github.com/umeshkhanal/rumooz/pkg/utils"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	service *team.Service
}

func NewTeamHandler(service *team.Service) *TeamHandler {
	return &TeamHandler{service: service}
}

func (h *TeamHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/team", h.ListMembers)
}

func (h *TeamHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/team", h.CreateMember)
	router.PUT("/team/:id", h.UpdateMember)
}

func (h *TeamHandler) ListMembers(c *gin.Context) {
	members, err := h.service.ListMembers(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Team members retrieved successfully", members)
}

func (h *TeamHandler) CreateMember(c *gin.Context) {
	var req team.CreateMemberRequest

	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	photo, closePhoto, err := formPhoto(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid photo upload")
		return
	}
	defer closePhoto()

	resp, err := h.service.CreateMember(c.Request.Context(), &req, photo)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Team member created successfully", resp)
}

func (h *TeamHandler) UpdateMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid team member ID")
		return
	}

	var req team.UpdateMemberRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	photo, closePhoto, err := formPhoto(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid photo upload")
		return
	}
	defer closePhoto()

	resp, err := h.service.UpdateMember(c.Request.Context(), uint(id), &req, photo)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Team member updated successfully", resp)
}

// formPhoto opens the optional "photo" file field. A missing field yields a nil photo.
func formPhoto(c *gin.Context) (*team.Photo, func(), error) {
	noop := func() {}

	header, err := c.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("failed to open uploaded photo: %w", err)
	}

	return &team.Photo{Filename: header.Filename, Content: file}, func() { _ = file.Close() }, nil
}
