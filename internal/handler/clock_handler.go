package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ministerio-antioquia/antioquia-api/internal/dto"
	"github.com/ministerio-antioquia/antioquia-api/internal/service"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
	"github.com/ministerio-antioquia/antioquia-api/pkg/response"
)

// ClockHandler exposes prayer clock endpoints, public and admin.
type ClockHandler struct {
	service *service.ClockService
}

// NewClockHandler constructs a clock handler.
func NewClockHandler(svc *service.ClockService) *ClockHandler {
	return &ClockHandler{service: svc}
}

// PublicView godoc
// @Summary Current prayer clock with its full roster
// @Tags Clock
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/clock [get]
func (h *ClockHandler) PublicView(c *gin.Context) {
	view, err := h.service.PublicView(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// List godoc
// @Summary List prayer clocks
// @Tags Clock
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/admin/clocks [get]
func (h *ClockHandler) List(c *gin.Context) {
	clocks, err := h.service.ListClocks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, clocks, nil)
}

// Create godoc
// @Summary Create a prayer clock
// @Tags Clock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.ClockRequest true "Clock payload"
// @Success 201 {object} response.Envelope
// @Router /api/admin/clocks [post]
func (h *ClockHandler) Create(c *gin.Context) {
	var req dto.ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid clock payload"))
		return
	}
	clock, err := h.service.CreateClock(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, clock)
}

// Update godoc
// @Summary Update a prayer clock
// @Tags Clock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Clock ID"
// @Param payload body dto.ClockRequest true "Clock payload"
// @Success 200 {object} response.Envelope
// @Router /api/admin/clocks/{id} [put]
func (h *ClockHandler) Update(c *gin.Context) {
	var req dto.ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid clock payload"))
		return
	}
	clock, err := h.service.UpdateClock(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, clock, nil)
}

// Delete godoc
// @Summary Delete a prayer clock and its roster
// @Tags Clock
// @Security BearerAuth
// @Param id path string true "Clock ID"
// @Success 204
// @Router /api/admin/clocks/{id} [delete]
func (h *ClockHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteClock(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddVolunteer godoc
// @Summary Claim an hour on a clock's roster
// @Tags Clock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Clock ID"
// @Param payload body dto.VolunteerRequest true "Volunteer payload"
// @Success 201 {object} response.Envelope
// @Router /api/admin/clocks/{id}/volunteers [post]
func (h *ClockHandler) AddVolunteer(c *gin.Context) {
	var req dto.VolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid volunteer payload"))
		return
	}
	slot, err := h.service.AddVolunteer(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// UpdateVolunteer godoc
// @Summary Rename or move a roster entry
// @Tags Clock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param payload body dto.VolunteerRequest true "Volunteer payload"
// @Success 200 {object} response.Envelope
// @Router /api/admin/volunteers/{id} [put]
func (h *ClockHandler) UpdateVolunteer(c *gin.Context) {
	var req dto.VolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid volunteer payload"))
		return
	}
	slot, err := h.service.UpdateVolunteer(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// RemoveVolunteer godoc
// @Summary Free an hour on the roster
// @Tags Clock
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 204
// @Router /api/admin/volunteers/{id} [delete]
func (h *ClockHandler) RemoveVolunteer(c *gin.Context) {
	if err := h.service.RemoveVolunteer(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddPrayerRequest godoc
// @Summary Attach an intention to a clock
// @Tags Clock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Clock ID"
// @Param payload body dto.PrayerRequestPayload true "Intention payload"
// @Success 201 {object} response.Envelope
// @Router /api/admin/clocks/{id}/requests [post]
func (h *ClockHandler) AddPrayerRequest(c *gin.Context) {
	var req dto.PrayerRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid prayer request payload"))
		return
	}
	request, err := h.service.AddPrayerRequest(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, request)
}

// UpdatePrayerRequest godoc
// @Summary Edit an intention
// @Tags Clock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Intention ID"
// @Param payload body dto.PrayerRequestPayload true "Intention payload"
// @Success 200 {object} response.Envelope
// @Router /api/admin/requests/{id} [put]
func (h *ClockHandler) UpdatePrayerRequest(c *gin.Context) {
	var req dto.PrayerRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid prayer request payload"))
		return
	}
	request, err := h.service.UpdatePrayerRequest(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}

// RemovePrayerRequest godoc
// @Summary Remove an intention
// @Tags Clock
// @Security BearerAuth
// @Param id path string true "Intention ID"
// @Success 204
// @Router /api/admin/requests/{id} [delete]
func (h *ClockHandler) RemovePrayerRequest(c *gin.Context) {
	if err := h.service.RemovePrayerRequest(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Download a clock's roster as CSV or PDF
// @Tags Clock
// @Security BearerAuth
// @Param id path string true "Clock ID"
// @Param format query string false "csv or pdf" default(pdf)
// @Success 200 {file} binary
// @Router /api/admin/clocks/{id}/export [get]
func (h *ClockHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "pdf")
	payload, filename, err := h.service.ExportRoster(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	contentType := "application/pdf"
	if format == "csv" {
		contentType = "text/csv"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}
