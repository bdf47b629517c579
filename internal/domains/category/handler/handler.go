package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"borntoday/internal/domains/category/model"
	"borntoday/internal/domains/category/service"
	"borntoday/internal/shared/response"
	"borntoday/internal/shared/utils"
)

// Handler: admin JSON API cho categories
type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// List GET /admin/api/categories
func (h *Handler) List(c *gin.Context) {
	categories, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.List(c, categories, len(categories))
}

// Create POST /admin/api/categories
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, category)
}

// Update PUT /admin/api/categories/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParseInt64ID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req model.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, category)
}

// Delete DELETE /admin/api/categories/:id (chỉ gỡ liên kết, ngôi sao vẫn còn)
func (h *Handler) Delete(c *gin.Context) {
	id, err := utils.ParseInt64ID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationFailed(c, verrs)
	case errors.Is(err, model.ErrCategoryNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeCategoryNotFound, "Category not found")
	case errors.Is(err, model.ErrDuplicateSlug):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeDuplicateSlug, "Slug already in use")
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("category admin request failed")
		response.InternalServerError(c, "Internal server error")
	}
}
