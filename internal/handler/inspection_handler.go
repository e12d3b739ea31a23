package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fms-api/internal/dto"
	"github.com/noah-isme/fms-api/internal/service"
	appErrors "github.com/noah-isme/fms-api/pkg/errors"
	"github.com/noah-isme/fms-api/pkg/response"
)

// InspectionHandler exposes inspection report endpoints.
type InspectionHandler struct {
	service *service.InspectionService
}

func NewInspectionHandler(svc *service.InspectionService) *InspectionHandler {
	return &InspectionHandler{service: svc}
}

// Create godoc
// @Summary Create inspection report
// @Tags Inspections
// @Accept json
// @Produce json
// @Param request body dto.InspectionRequest true "Inspection payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /inspections [post]
func (h *InspectionHandler) Create(c *gin.Context) {
	var req dto.InspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid inspection payload"))
		return
	}

	report, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "inspection report created", report)
}

// Get godoc
// @Summary Get inspection report
// @Tags Inspections
// @Produce json
// @Param id path string true "Inspection ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /inspections/{id} [get]
func (h *InspectionHandler) Get(c *gin.Context) {
	report, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "inspection report", report, nil)
}

// List godoc
// @Summary List inspection reports
// @Tags Inspections
// @Produce json
// @Param search query string false "Free text search"
// @Param includeArchived query bool false "Include archived rows"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /inspections [get]
func (h *InspectionHandler) List(c *gin.Context) {
	reports, pagination, err := h.service.List(c.Request.Context(),
		c.Query("search"),
		queryBool(c, "includeArchived"),
		queryInt(c, "page", 1),
		queryInt(c, "pageSize", 20),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "inspection reports", reports, pagination)
}

// Update godoc
// @Summary Update inspection report
// @Tags Inspections
// @Accept json
// @Produce json
// @Param id path string true "Inspection ID"
// @Param request body dto.InspectionRequest true "Inspection payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /inspections/{id} [put]
func (h *InspectionHandler) Update(c *gin.Context) {
	var req dto.InspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid inspection payload"))
		return
	}

	report, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "inspection report updated", report, nil)
}

// Archive godoc
// @Summary Archive inspection report
// @Tags Inspections
// @Produce json
// @Param id path string true "Inspection ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /inspections/{id} [delete]
func (h *InspectionHandler) Archive(c *gin.Context) {
	if err := h.service.Archive(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
