package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alumni-connect-api/internal/models"
	"github.com/noah-isme/alumni-connect-api/internal/service"
	appErrors "github.com/noah-isme/alumni-connect-api/pkg/errors"
	"github.com/noah-isme/alumni-connect-api/pkg/response"
)

// OpportunityHandler wires the job posting endpoints.
type OpportunityHandler struct {
	service *service.OpportunityService
}

// NewOpportunityHandler creates a new handler.
func NewOpportunityHandler(svc *service.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{service: svc}
}

// List godoc
// @Summary List active opportunities
// @Tags Opportunities
// @Produce json
// @Param type query string false "Filter by type (job, internship)"
// @Param posted_by query int false "Filter by poster"
// @Success 200 {object} response.Envelope
// @Router /opportunities [get]
func (h *OpportunityHandler) List(c *gin.Context) {
	var filter models.OpportunityFilter
	if typ := c.Query("type"); typ != "" {
		filter.Type = &typ
	}
	if raw := c.Query("posted_by"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid posted_by filter"))
			return
		}
		filter.PostedBy = &id
	}

	opportunities, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, opportunities, nil)
}

// Get godoc
// @Summary Get opportunity
// @Tags Opportunities
// @Produce json
// @Param id path int true "Opportunity ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /opportunities/{id} [get]
func (h *OpportunityHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	opp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, opp, nil)
}

// Create godoc
// @Summary Post opportunity
// @Description Publish a job or internship; alumni and admins only
// @Tags Opportunities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateOpportunityRequest true "Opportunity payload"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /opportunities [post]
func (h *OpportunityHandler) Create(c *gin.Context) {
	var req models.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid opportunity payload"))
		return
	}

	opp, err := h.service.Create(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, opp)
}

// Update godoc
// @Summary Update opportunity
// @Tags Opportunities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Opportunity ID"
// @Param payload body models.OpportunityPatch true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /opportunities/{id} [put]
func (h *OpportunityHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var patch models.OpportunityPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid update payload"))
		return
	}

	opp, err := h.service.Update(c.Request.Context(), identityFromContext(c), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, opp, nil)
}

// Delete godoc
// @Summary Deactivate opportunity
// @Tags Opportunities
// @Produce json
// @Security BearerAuth
// @Param id path int true "Opportunity ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /opportunities/{id} [delete]
func (h *OpportunityHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), identityFromContext(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
