package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fms-api/internal/dto"
	"github.com/noah-isme/fms-api/internal/models"
	"github.com/noah-isme/fms-api/internal/service"
	appErrors "github.com/noah-isme/fms-api/pkg/errors"
	"github.com/noah-isme/fms-api/pkg/response"
)

// WorkRequestHandler exposes work-request endpoints.
type WorkRequestHandler struct {
	service   *service.WorkRequestService
	dashboard *service.DashboardService
}

// NewWorkRequestHandler creates a new handler.
func NewWorkRequestHandler(svc *service.WorkRequestService, dashboard *service.DashboardService) *WorkRequestHandler {
	return &WorkRequestHandler{service: svc, dashboard: dashboard}
}

// Create godoc
// @Summary Submit work request
// @Description Submit a new work request, optionally with an attachment
// @Tags WorkRequests
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /requests [post]
func (h *WorkRequestHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	req, upload, err := bindWorkRequestForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), dto.CreateWorkRequestRequest{
		Description:  req.Description,
		OfficeName:   req.OfficeName,
		LocationName: req.LocationName,
		CategoryName: req.CategoryName,
		Area:         req.Area,
		Overtime:     req.Overtime,
		FiscalYear:   req.FiscalYear,
	}, upload, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.dashboard != nil {
		h.dashboard.Invalidate(c.Request.Context(), created.FiscalYear)
	}
	response.Created(c, "work request submitted", created)
}

// Get godoc
// @Summary Get work request
// @Tags WorkRequests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /requests/{id} [get]
func (h *WorkRequestHandler) Get(c *gin.Context) {
	request, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "work request", request, nil)
}

// List godoc
// @Summary List work requests
// @Tags WorkRequests
// @Produce json
// @Param status query string false "Status filter"
// @Param location query string false "Location filter"
// @Param category query string false "Category filter"
// @Param division query string false "Division filter"
// @Param fiscalYear query string false "Fiscal year filter"
// @Param search query string false "Free text search"
// @Param includeArchived query bool false "Include archived rows"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /requests [get]
func (h *WorkRequestHandler) List(c *gin.Context) {
	filter := models.WorkRequestFilter{
		Status:          c.Query("status"),
		LocationName:    c.Query("location"),
		CategoryName:    c.Query("category"),
		DivisionName:    c.Query("division"),
		FiscalYear:      c.Query("fiscalYear"),
		Search:          c.Query("search"),
		IncludeArchived: queryBool(c, "includeArchived"),
		Page:            queryInt(c, "page", 1),
		PageSize:        queryInt(c, "pageSize", 20),
		SortBy:          c.Query("sortBy"),
		SortOrder:       c.Query("sortOrder"),
	}

	requests, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "work requests", requests, pagination)
}

// Update godoc
// @Summary Update work request
// @Tags WorkRequests
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /requests/{id} [put]
func (h *WorkRequestHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	req, upload, err := bindWorkRequestForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), dto.UpdateWorkRequestRequest{
		Description:  req.Description,
		OfficeName:   req.OfficeName,
		LocationName: req.LocationName,
		CategoryName: req.CategoryName,
		Area:         req.Area,
		Overtime:     req.Overtime,
		FiscalYear:   req.FiscalYear,
		Status:       req.Status,
	}, upload, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.dashboard != nil {
		h.dashboard.Invalidate(c.Request.Context(), updated.FiscalYear)
	}
	response.JSON(c, http.StatusOK, "work request updated", updated, nil)
}

// UpdateStatus godoc
// @Summary Update work request status
// @Tags WorkRequests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /requests/{id}/status [patch]
func (h *WorkRequestHandler) UpdateStatus(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "status required"))
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), payload.Status, claims.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "status updated", nil, nil)
}

// Archive godoc
// @Summary Archive work request
// @Tags WorkRequests
// @Produce json
// @Param id path string true "Request ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /requests/{id} [delete]
func (h *WorkRequestHandler) Archive(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Archive(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

type workRequestForm struct {
	Description  string
	OfficeName   string
	LocationName string
	CategoryName string
	Area         string
	Overtime     bool
	FiscalYear   string
	Status       string
}

// bindWorkRequestForm accepts either multipart form-data (with optional
// file part) or a plain JSON body.
func bindWorkRequestForm(c *gin.Context) (*workRequestForm, *dto.FileUpload, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var body struct {
			Description  string `json:"description"`
			OfficeName   string `json:"office_name"`
			LocationName string `json:"location_name"`
			CategoryName string `json:"category_name"`
			Area         string `json:"area"`
			Overtime     bool   `json:"overtime"`
			FiscalYear   string `json:"fiscal_year"`
			Status       string `json:"status"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid work request payload")
		}
		return &workRequestForm{
			Description:  body.Description,
			OfficeName:   body.OfficeName,
			LocationName: body.LocationName,
			CategoryName: body.CategoryName,
			Area:         body.Area,
			Overtime:     body.Overtime,
			FiscalYear:   body.FiscalYear,
			Status:       body.Status,
		}, nil, nil
	}

	overtime, _ := strconv.ParseBool(c.PostForm("overtime"))
	form := &workRequestForm{
		Description:  c.PostForm("description"),
		OfficeName:   c.PostForm("office_name"),
		LocationName: c.PostForm("location_name"),
		CategoryName: c.PostForm("category_name"),
		Area:         c.PostForm("area"),
		Overtime:     overtime,
		FiscalYear:   c.PostForm("fiscal_year"),
		Status:       c.PostForm("status"),
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return form, nil, nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read attachment")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read attachment")
	}

	return form, &dto.FileUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        data,
	}, nil
}
