package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ministerio-antioquia/antioquia-api/internal/dto"
	"github.com/ministerio-antioquia/antioquia-api/internal/service"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
	"github.com/ministerio-antioquia/antioquia-api/pkg/response"
)

// BoardHandler exposes post-it board endpoints, public and admin.
type BoardHandler struct {
	service *service.BoardService
}

// NewBoardHandler constructs a board handler.
func NewBoardHandler(svc *service.BoardService) *BoardHandler {
	return &BoardHandler{service: svc}
}

// PublicView godoc
// @Summary Currently active board with its post-its
// @Tags Board
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/board [get]
func (h *BoardHandler) PublicView(c *gin.Context) {
	view, err := h.service.PublicView(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// List godoc
// @Summary List boards
// @Tags Board
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/admin/boards [get]
func (h *BoardHandler) List(c *gin.Context) {
	boards, err := h.service.ListBoards(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, boards, nil)
}

// Create godoc
// @Summary Create a board
// @Tags Board
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.BoardRequest true "Board payload"
// @Success 201 {object} response.Envelope
// @Router /api/admin/boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	var req dto.BoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid board payload"))
		return
	}
	board, err := h.service.CreateBoard(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, board)
}

// Update godoc
// @Summary Update a board's title and range
// @Tags Board
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Board ID"
// @Param payload body dto.BoardRequest true "Board payload"
// @Success 200 {object} response.Envelope
// @Router /api/admin/boards/{id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	var req dto.BoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid board payload"))
		return
	}
	board, err := h.service.UpdateBoard(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, board, nil)
}

// Delete godoc
// @Summary Delete a board with its post-its and suggestions
// @Tags Board
// @Security BearerAuth
// @Param id path string true "Board ID"
// @Success 204
// @Router /api/admin/boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteBoard(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListPostIts godoc
// @Summary List every post-it with its board
// @Tags Board
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/admin/postits [get]
func (h *BoardHandler) ListPostIts(c *gin.Context) {
	postIts, err := h.service.ListPostIts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, postIts, nil)
}

// CreatePostIt godoc
// @Summary Pin a note to a board
// @Tags Board
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.CreatePostItRequest true "Post-it payload"
// @Success 201 {object} response.Envelope
// @Router /api/admin/postits [post]
func (h *BoardHandler) CreatePostIt(c *gin.Context) {
	var req dto.CreatePostItRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid post-it payload"))
		return
	}
	postIt, err := h.service.CreatePostIt(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, postIt)
}

// UpdatePostIt godoc
// @Summary Edit a note's text
// @Tags Board
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Post-it ID"
// @Param payload body dto.UpdatePostItRequest true "Post-it payload"
// @Success 200 {object} response.Envelope
// @Router /api/admin/postits/{id} [put]
func (h *BoardHandler) UpdatePostIt(c *gin.Context) {
	var req dto.UpdatePostItRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid post-it payload"))
		return
	}
	postIt, err := h.service.UpdatePostIt(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, postIt, nil)
}

// DeletePostIt godoc
// @Summary Remove a note
// @Tags Board
// @Security BearerAuth
// @Param id path string true "Post-it ID"
// @Success 204
// @Router /api/admin/postits/{id} [delete]
func (h *BoardHandler) DeletePostIt(c *gin.Context) {
	if err := h.service.DeletePostIt(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
