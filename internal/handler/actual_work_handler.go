package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fms-api/internal/dto"
	"github.com/noah-isme/fms-api/internal/service"
	appErrors "github.com/noah-isme/fms-api/pkg/errors"
	"github.com/noah-isme/fms-api/pkg/response"
)

// ActualWorkHandler exposes actual-work report endpoints.
type ActualWorkHandler struct {
	service *service.ActualWorkService
}

func NewActualWorkHandler(svc *service.ActualWorkService) *ActualWorkHandler {
	return &ActualWorkHandler{service: svc}
}

// Create godoc
// @Summary Create actual-work report
// @Tags ActualWork
// @Accept json
// @Produce json
// @Param request body dto.ActualWorkRequest true "Actual work payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /actual-works [post]
func (h *ActualWorkHandler) Create(c *gin.Context) {
	var req dto.ActualWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid actual work payload"))
		return
	}

	report, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "actual work report created", report)
}

// Get godoc
// @Summary Get actual-work report
// @Tags ActualWork
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /actual-works/{id} [get]
func (h *ActualWorkHandler) Get(c *gin.Context) {
	report, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "actual work report", report, nil)
}

// List godoc
// @Summary List actual-work reports
// @Tags ActualWork
// @Produce json
// @Param search query string false "Free text search"
// @Param includeArchived query bool false "Include archived rows"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /actual-works [get]
func (h *ActualWorkHandler) List(c *gin.Context) {
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
	response.JSON(c, http.StatusOK, "actual work reports", reports, pagination)
}

// Update godoc
// @Summary Update actual-work report
// @Tags ActualWork
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param request body dto.ActualWorkRequest true "Actual work payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /actual-works/{id} [put]
func (h *ActualWorkHandler) Update(c *gin.Context) {
	var req dto.ActualWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid actual work payload"))
		return
	}

	report, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "actual work report updated", report, nil)
}

// Archive godoc
// @Summary Archive actual-work report
// @Tags ActualWork
// @Produce json
// @Param id path string true "Report ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /actual-works/{id} [delete]
func (h *ActualWorkHandler) Archive(c *gin.Context) {
	if err := h.service.Archive(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
