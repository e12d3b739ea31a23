package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fms-api/internal/service"
	"github.com/noah-isme/fms-api/pkg/response"
)

// AuditHandler exposes the audit trail.
type AuditHandler struct {
	service *service.AuditService
}

func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{service: svc}
}

// List godoc
// @Summary List audit trail entries
// @Tags Audit
// @Produce json
// @Param resource query string false "Resource filter, e.g. work_request"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /audit [get]
func (h *AuditHandler) List(c *gin.Context) {
	entries, pagination, err := h.service.List(c.Request.Context(),
		c.Query("resource"),
		queryInt(c, "page", 1),
		queryInt(c, "pageSize", 20),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "audit trail", entries, pagination)
}
