package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fms-api/internal/service"
	"github.com/noah-isme/fms-api/pkg/response"
)

// DashboardHandler serves the aggregated dashboard summary.
type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Summary godoc
// @Summary Dashboard summary
// @Description Aggregated counts per status, per category, and feedback ratings for a fiscal year.
// @Tags Dashboard
// @Produce json
// @Param fiscalYear query string true "Fiscal year, e.g. 2026"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), c.Query("fiscalYear"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "dashboard summary", summary, nil)
}
