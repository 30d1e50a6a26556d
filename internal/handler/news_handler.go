package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ministerio-antioquia/antioquia-api/internal/dto"
	"github.com/ministerio-antioquia/antioquia-api/internal/service"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
	"github.com/ministerio-antioquia/antioquia-api/pkg/response"
)

// NewsHandler exposes the news feed, public reads and admin writes.
type NewsHandler struct {
	service *service.NewsService
}

// NewNewsHandler constructs a news handler.
func NewNewsHandler(svc *service.NewsService) *NewsHandler {
	return &NewsHandler{service: svc}
}

// List godoc
// @Summary List news items, newest first
// @Tags News
// @Produce json
// @Param limit query int false "Maximum number of items"
// @Success 200 {object} response.Envelope
// @Router /api/news [get]
func (h *NewsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.service.List(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Fetch a single news item
// @Tags News
// @Produce json
// @Param id path string true "News item ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/news/{id} [get]
func (h *NewsHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Publish a news item
// @Tags News
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.NewsRequest true "News payload"
// @Success 201 {object} response.Envelope
// @Router /api/admin/news [post]
func (h *NewsHandler) Create(c *gin.Context) {
	var req dto.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid news payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update a news item
// @Tags News
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "News item ID"
// @Param payload body dto.NewsRequest true "News payload"
// @Success 200 {object} response.Envelope
// @Router /api/admin/news/{id} [put]
func (h *NewsHandler) Update(c *gin.Context) {
	var req dto.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid news payload"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete a news item
// @Tags News
// @Security BearerAuth
// @Param id path string true "News item ID"
// @Success 204
// @Router /api/admin/news/{id} [delete]
func (h *NewsHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
