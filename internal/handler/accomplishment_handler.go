package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fms-api/internal/dto"
	"github.com/noah-isme/fms-api/internal/service"
	appErrors "github.com/noah-isme/fms-api/pkg/errors"
	"github.com/noah-isme/fms-api/pkg/response"
)

// AccomplishmentHandler exposes accomplishment report endpoints.
type AccomplishmentHandler struct {
	service *service.AccomplishmentService
}

func NewAccomplishmentHandler(svc *service.AccomplishmentService) *AccomplishmentHandler {
	return &AccomplishmentHandler{service: svc}
}

// Upsert godoc
// @Summary Create or update accomplishment report
// @Description One accomplishment report exists per work request; posting again updates it.
// @Tags Accomplishments
// @Accept json
// @Produce json
// @Param request body dto.AccomplishmentRequest true "Accomplishment payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /accomplishments [post]
func (h *AccomplishmentHandler) Upsert(c *gin.Context) {
	var req dto.AccomplishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid accomplishment payload"))
		return
	}

	report, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "accomplishment report saved", report, nil)
}

// Get godoc
// @Summary Get accomplishment report
// @Tags Accomplishments
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /accomplishments/{id} [get]
func (h *AccomplishmentHandler) Get(c *gin.Context) {
	report, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "accomplishment report", report, nil)
}

// GetByRequest godoc
// @Summary Get accomplishment report for a work request
// @Tags Accomplishments
// @Produce json
// @Param requestId path string true "Work request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /requests/{requestId}/accomplishment [get]
func (h *AccomplishmentHandler) GetByRequest(c *gin.Context) {
	report, err := h.service.GetByRequest(c.Request.Context(), c.Param("requestId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "accomplishment report", report, nil)
}

// List godoc
// @Summary List accomplishment reports
// @Tags Accomplishments
// @Produce json
// @Param requestId query string false "Filter by work request"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /accomplishments [get]
func (h *AccomplishmentHandler) List(c *gin.Context) {
	reports, pagination, err := h.service.List(c.Request.Context(),
		c.Query("requestId"),
		queryInt(c, "page", 1),
		queryInt(c, "pageSize", 20),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "accomplishment reports", reports, pagination)
}
