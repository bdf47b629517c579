package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"borntoday/internal/domains/star/model"
	"borntoday/internal/domains/star/service"
	"borntoday/internal/shared/response"
	"borntoday/internal/shared/utils"
)

// AdminHandler: JSON API quản trị ngôi sao (thấy cả bản chưa publish)
type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// List GET /admin/api/stars
func (h *AdminHandler) List(c *gin.Context) {
	stars, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.List(c, stars, len(stars))
}

// Get GET /admin/api/stars/:id
func (h *AdminHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	star, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, star)
}

// Update PUT /admin/api/stars/:id
func (h *AdminHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var form model.StarForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	star, err := h.svc.Update(c.Request.Context(), id, form)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, star)
}

// SetPublished PATCH /admin/api/stars/:id/publish
func (h *AdminHandler) SetPublished(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req model.SetPublishedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsPublished == nil {
		response.BadRequest(c, "is_published is required")
		return
	}

	star, err := h.svc.SetPublished(c.Request.Context(), id, *req.IsPublished)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, star)
}

func (h *AdminHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := utils.ParseInt64ID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid star ID")
		return 0, false
	}
	return id, true
}

func (h *AdminHandler) handleError(c *gin.Context, err error) {
	if fe, ok := model.AsFieldErrors(err); ok {
		response.ValidationFailed(c, fe)
		return
	}

	switch {
	case errors.Is(err, model.ErrStarNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeStarNotFound, "Star not found")
	case errors.Is(err, model.ErrDuplicateSlug):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeDuplicateSlug, "Slug already in use")
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("star admin request failed")
		response.InternalServerError(c, "Internal server error")
	}
}
