package handler

import (
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ministerio-antioquia/antioquia-api/internal/realtime"
)

const heartbeatInterval = 25 * time.Second

// EventsHandler streams moderation events to admin dashboards over SSE.
type EventsHandler struct {
	broker *realtime.Broker
	logger *zap.Logger
}

// NewEventsHandler constructs the SSE handler.
func NewEventsHandler(broker *realtime.Broker, logger *zap.Logger) *EventsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventsHandler{broker: broker, logger: logger}
}

// Stream godoc
// @Summary Live moderation event stream
// @Description Server-sent events; every frame is "data: <json>" and the
// @Description first frame is the connected handshake.
// @Tags Suggestions
// @Security BearerAuth
// @Produce text/event-stream
// @Router /api/admin/events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	ch := h.broker.Subscribe()
	defer h.broker.Unsubscribe(ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	if err := writeEvent(c.Writer, realtime.Event{Type: realtime.EventConnected}); err != nil {
		return
	}
	c.Writer.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()
	clientGone := c.Request.Context().Done()

	for {
		select {
		case <-clientGone:
			return
		case event, open := <-ch:
			if !open {
				return
			}
			if err := writeEvent(c.Writer, event); err != nil {
				h.logger.Debug("sse write failed, dropping client", zap.Error(err))
				return
			}
			c.Writer.Flush()
		case <-heartbeat.C:
			// Comment frame keeps proxies from closing idle streams.
			if _, err := fmt.Fprint(c.Writer, ": ping\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}

func writeEvent(w io.Writer, event realtime.Event) error {
	body, err := event.Marshal()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", body)
	return err
}
