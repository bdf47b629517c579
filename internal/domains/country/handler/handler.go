package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"borntoday/internal/domains/country/model"
	"borntoday/internal/domains/country/service"
	"borntoday/internal/shared/response"
	"borntoday/internal/shared/utils"
)

// Handler: admin JSON API cho countries
type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// List GET /admin/api/countries
func (h *Handler) List(c *gin.Context) {
	countries, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.List(c, countries, len(countries))
}

// Create POST /admin/api/countries
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	country, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, country)
}

// Update PUT /admin/api/countries/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParseInt64ID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid country ID")
		return
	}

	var req model.UpdateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	country, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, country)
}

// Delete DELETE /admin/api/countries/:id (xóa luôn các ngôi sao của quốc gia)
func (h *Handler) Delete(c *gin.Context) {
	id, err := utils.ParseInt64ID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid country ID")
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
	case errors.Is(err, model.ErrCountryNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeCountryNotFound, "Country not found")
	case errors.Is(err, model.ErrDuplicateSlug):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeDuplicateSlug, "Slug already in use")
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("country admin request failed")
		response.InternalServerError(c, "Internal server error")
	}
}
