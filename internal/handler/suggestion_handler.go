package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ministerio-antioquia/antioquia-api/internal/dto"
	"github.com/ministerio-antioquia/antioquia-api/internal/service"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
	"github.com/ministerio-antioquia/antioquia-api/pkg/response"
)

// SuggestionHandler exposes the public submission endpoint and the admin
// moderation endpoints.
type SuggestionHandler struct {
	service *service.SuggestionService
	metrics *service.MetricsService
}

// NewSuggestionHandler constructs a suggestion handler.
func NewSuggestionHandler(svc *service.SuggestionService, metrics *service.MetricsService) *SuggestionHandler {
	return &SuggestionHandler{service: svc, metrics: metrics}
}

// Submit godoc
// @Summary Submit a post-it suggestion for the active board
// @Tags Suggestions
// @Accept json
// @Produce json
// @Param payload body dto.CreateSuggestionRequest true "Suggestion payload"
// @Success 201 {object} response.Envelope
// @Router /api/suggestions [post]
func (h *SuggestionHandler) Submit(c *gin.Context) {
	var req dto.CreateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid suggestion payload"))
		return
	}
	suggestion, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, suggestion)
}

// ListPending godoc
// @Summary Moderation queue, oldest first
// @Tags Suggestions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/admin/suggestions/pending [get]
func (h *SuggestionHandler) ListPending(c *gin.Context) {
	pending, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pending, nil)
}

// ListHistory godoc
// @Summary Reviewed suggestions, latest decision first
// @Tags Suggestions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/admin/suggestions/history [get]
func (h *SuggestionHandler) ListHistory(c *gin.Context) {
	history, err := h.service.ListHistory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}

// Approve godoc
// @Summary Approve a suggestion and pin it to its board
// @Tags Suggestions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Suggestion ID"
// @Success 200 {object} response.Envelope
// @Router /api/admin/suggestions/{id}/approve [post]
func (h *SuggestionHandler) Approve(c *gin.Context) {
	suggestion, postIt, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountModeration("approved")
	response.JSON(c, http.StatusOK, gin.H{"suggestion": suggestion, "post_it": postIt}, nil)
}

// Refuse godoc
// @Summary Refuse a suggestion, keeping it in history
// @Tags Suggestions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Suggestion ID"
// @Success 200 {object} response.Envelope
// @Router /api/admin/suggestions/{id}/refuse [post]
func (h *SuggestionHandler) Refuse(c *gin.Context) {
	suggestion, err := h.service.Refuse(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountModeration("refused")
	response.JSON(c, http.StatusOK, suggestion, nil)
}

// PendingCount godoc
// @Summary Number of suggestions awaiting review
// @Tags Suggestions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/admin/suggestions/pending/count [get]
func (h *SuggestionHandler) PendingCount(c *gin.Context) {
	count, err := h.service.PendingCount(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"pending": count}, nil)
}
