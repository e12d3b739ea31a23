package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fms-api/internal/dto"
	"github.com/noah-isme/fms-api/internal/service"
	appErrors "github.com/noah-isme/fms-api/pkg/errors"
	"github.com/noah-isme/fms-api/pkg/response"
)

// FeedbackHandler exposes feedback endpoints for the final pipeline stage.
type FeedbackHandler struct {
	service *service.FeedbackService
}

func NewFeedbackHandler(svc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

// Upsert godoc
// @Summary Submit or update feedback
// @Description Feedback is keyed by accomplishment and work request; resubmitting updates the existing row.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body dto.FeedbackRequest true "Feedback payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /feedback [post]
func (h *FeedbackHandler) Upsert(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid feedback payload"))
		return
	}

	feedback, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "feedback saved", feedback, nil)
}

// GetByPair godoc
// @Summary Get feedback for an accomplishment and work request
// @Tags Feedback
// @Produce json
// @Param accomplishmentId query string true "Accomplishment ID"
// @Param requestId query string true "Work request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /feedback/lookup [get]
func (h *FeedbackHandler) GetByPair(c *gin.Context) {
	accomplishmentID := c.Query("accomplishmentId")
	requestID := c.Query("requestId")
	if accomplishmentID == "" || requestID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "accomplishmentId and requestId are required"))
		return
	}

	feedback, err := h.service.GetByPair(c.Request.Context(), accomplishmentID, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "feedback", feedback, nil)
}

// List godoc
// @Summary List feedback entries
// @Tags Feedback
// @Produce json
// @Param requestId query string false "Filter by work request"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /feedback [get]
func (h *FeedbackHandler) List(c *gin.Context) {
	entries, pagination, err := h.service.List(c.Request.Context(),
		c.Query("requestId"),
		queryInt(c, "page", 1),
		queryInt(c, "pageSize", 20),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "feedback entries", entries, pagination)
}
