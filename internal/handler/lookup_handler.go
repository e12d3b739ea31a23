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

// LookupHandler serves the reference-data tables (categories, offices,
// locations, divisions, user types) through a single route group keyed
// by the :kind path parameter.
type LookupHandler struct {
	service *service.LookupService
}

func NewLookupHandler(svc *service.LookupService) *LookupHandler {
	return &LookupHandler{service: svc}
}

func lookupKind(c *gin.Context) models.LookupKind {
	return models.LookupKind(c.Param("kind"))
}

// List godoc
// @Summary List lookup entries
// @Tags Lookups
// @Produce json
// @Param kind path string true "Lookup kind" Enums(categories, offices, locations, divisions, user_types)
// @Param search query string false "Free text search"
// @Param includeArchived query bool false "Include archived rows"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /lookups/{kind} [get]
func (h *LookupHandler) List(c *gin.Context) {
	items, pagination, err := h.service.List(c.Request.Context(), lookupKind(c), models.LookupFilter{
		Search:          c.Query("search"),
		IncludeArchived: queryBool(c, "includeArchived"),
		Page:            queryInt(c, "page", 1),
		PageSize:        queryInt(c, "pageSize", 20),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "lookup entries", items, pagination)
}

// Get godoc
// @Summary Get lookup entry
// @Tags Lookups
// @Produce json
// @Param kind path string true "Lookup kind"
// @Param id path string true "Entry ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lookups/{kind}/{id} [get]
func (h *LookupHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), lookupKind(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "lookup entry", item, nil)
}

// Create godoc
// @Summary Create lookup entry
// @Tags Lookups
// @Accept json
// @Produce json
// @Param kind path string true "Lookup kind"
// @Param request body dto.LookupRequest true "Entry payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /lookups/{kind} [post]
func (h *LookupHandler) Create(c *gin.Context) {
	var req dto.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid lookup payload"))
		return
	}

	item, err := h.service.Create(c.Request.Context(), lookupKind(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "lookup entry created", item)
}

// Update godoc
// @Summary Update lookup entry
// @Tags Lookups
// @Accept json
// @Produce json
// @Param kind path string true "Lookup kind"
// @Param id path string true "Entry ID"
// @Param request body dto.LookupRequest true "Entry payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lookups/{kind}/{id} [put]
func (h *LookupHandler) Update(c *gin.Context) {
	var req dto.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid lookup payload"))
		return
	}

	item, err := h.service.Update(c.Request.Context(), lookupKind(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "lookup entry updated", item, nil)
}

// Archive godoc
// @Summary Archive lookup entry
// @Tags Lookups
// @Produce json
// @Param kind path string true "Lookup kind"
// @Param id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /lookups/{kind}/{id} [delete]
func (h *LookupHandler) Archive(c *gin.Context) {
	if err := h.service.Archive(c.Request.Context(), lookupKind(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
