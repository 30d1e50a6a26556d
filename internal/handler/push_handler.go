package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ministerio-antioquia/antioquia-api/internal/dto"
	"github.com/ministerio-antioquia/antioquia-api/internal/service"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
	"github.com/ministerio-antioquia/antioquia-api/pkg/response"
)

// PushHandler manages web push subscriptions and admin broadcasts.
type PushHandler struct {
	service *service.NotificationService
	metrics *service.MetricsService
}

// NewPushHandler constructs a push handler.
func NewPushHandler(svc *service.NotificationService, metrics *service.MetricsService) *PushHandler {
	return &PushHandler{service: svc, metrics: metrics}
}

// Subscribe godoc
// @Summary Register a browser push subscription
// @Tags Push
// @Accept json
// @Produce json
// @Param payload body dto.SubscribeRequest true "Push subscription"
// @Success 201 {object} response.Envelope
// @Router /api/push/subscribe [post]
func (h *PushHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subscription payload"))
		return
	}
	if err := h.service.Subscribe(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"subscribed": true})
}

// Broadcast godoc
// @Summary Queue a push notification to every subscriber
// @Tags Push
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.BroadcastRequest true "Notification payload"
// @Success 202 {object} response.Envelope
// @Router /api/admin/push/broadcast [post]
func (h *PushHandler) Broadcast(c *gin.Context) {
	var req dto.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid broadcast payload"))
		return
	}
	queued, err := h.service.Broadcast(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountPushQueued(queued)
	response.JSON(c, http.StatusAccepted, gin.H{"queued": queued}, nil)
}
