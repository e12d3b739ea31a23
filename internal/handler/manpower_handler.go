package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fms-api/internal/dto"
	"github.com/noah-isme/fms-api/internal/models"
	"github.com/noah-isme/fms-api/internal/service"
	appErrors "github.com/noah-isme/fms-api/pkg/errors"
	"github.com/noah-isme/fms-api/pkg/response"
)

// ManpowerHandler exposes manpower roster endpoints.
type ManpowerHandler struct {
	service *service.ManpowerService
}

func NewManpowerHandler(svc *service.ManpowerService) *ManpowerHandler {
	return &ManpowerHandler{service: svc}
}

// Create godoc
// @Summary Create manpower record
// @Tags Manpower
// @Accept json
// @Produce json
// @Param request body dto.ManpowerRequest true "Manpower payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /manpower [post]
func (h *ManpowerHandler) Create(c *gin.Context) {
	var req dto.ManpowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid manpower payload"))
		return
	}

	record, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "manpower record created", record)
}

// Get godoc
// @Summary Get manpower record
// @Tags Manpower
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /manpower/{id} [get]
func (h *ManpowerHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "manpower record", record, nil)
}

// List godoc
// @Summary List manpower records
// @Tags Manpower
// @Produce json
// @Param division query string false "Division filter"
// @Param search query string false "Free text search"
// @Param includeArchived query bool false "Include archived rows"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /manpower [get]
func (h *ManpowerHandler) List(c *gin.Context) {
	records, pagination, err := h.service.List(c.Request.Context(), models.ManpowerFilter{
		DivisionName:    c.Query("division"),
		Search:          c.Query("search"),
		IncludeArchived: queryBool(c, "includeArchived"),
		Page:            queryInt(c, "page", 1),
		PageSize:        queryInt(c, "pageSize", 20),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "manpower records", records, pagination)
}

// Update godoc
// @Summary Update manpower record
// @Tags Manpower
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param request body dto.ManpowerRequest true "Manpower payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /manpower/{id} [put]
func (h *ManpowerHandler) Update(c *gin.Context) {
	var req dto.ManpowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid manpower payload"))
		return
	}

	record, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "manpower record updated", record, nil)
}

// Archive godoc
// @Summary Archive manpower record
// @Tags Manpower
// @Produce json
// @Param id path string true "Record ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /manpower/{id} [delete]
func (h *ManpowerHandler) Archive(c *gin.Context) {
	if err := h.service.Archive(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
