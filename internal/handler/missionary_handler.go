package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ministerio-antioquia/antioquia-api/internal/dto"
	"github.com/ministerio-antioquia/antioquia-api/internal/service"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
	"github.com/ministerio-antioquia/antioquia-api/pkg/response"
)

// MissionaryHandler exposes the missionary directory.
type MissionaryHandler struct {
	service *service.MissionaryService
}

// NewMissionaryHandler constructs a missionary handler.
func NewMissionaryHandler(svc *service.MissionaryService) *MissionaryHandler {
	return &MissionaryHandler{service: svc}
}

// List godoc
// @Summary List missionaries
// @Tags Missionaries
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/missionaries [get]
func (h *MissionaryHandler) List(c *gin.Context) {
	missionaries, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, missionaries, nil)
}

// Get godoc
// @Summary Fetch a single missionary profile
// @Tags Missionaries
// @Produce json
// @Param id path string true "Missionary ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/missionaries/{id} [get]
func (h *MissionaryHandler) Get(c *gin.Context) {
	missionary, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, missionary, nil)
}

// Create godoc
// @Summary Add a missionary profile
// @Tags Missionaries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.MissionaryRequest true "Missionary payload"
// @Success 201 {object} response.Envelope
// @Router /api/admin/missionaries [post]
func (h *MissionaryHandler) Create(c *gin.Context) {
	var req dto.MissionaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid missionary payload"))
		return
	}
	missionary, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, missionary)
}

// Update godoc
// @Summary Update a missionary profile
// @Tags Missionaries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Missionary ID"
// @Param payload body dto.MissionaryRequest true "Missionary payload"
// @Success 200 {object} response.Envelope
// @Router /api/admin/missionaries/{id} [put]
func (h *MissionaryHandler) Update(c *gin.Context) {
	var req dto.MissionaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid missionary payload"))
		return
	}
	missionary, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, missionary, nil)
}

// Delete godoc
// @Summary Remove a missionary profile
// @Tags Missionaries
// @Security BearerAuth
// @Param id path string true "Missionary ID"
// @Success 204
// @Router /api/admin/missionaries/{id} [delete]
func (h *MissionaryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
