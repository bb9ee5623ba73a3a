package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alumni-connect-api/internal/models"
	"github.com/noah-isme/alumni-connect-api/internal/service"
	appErrors "github.com/noah-isme/alumni-connect-api/pkg/errors"
	"github.com/noah-isme/alumni-connect-api/pkg/response"
)

// ScholarshipHandler wires scholarship and application endpoints.
type ScholarshipHandler struct {
	service *service.ScholarshipService
}

// NewScholarshipHandler creates a new handler.
func NewScholarshipHandler(svc *service.ScholarshipService) *ScholarshipHandler {
	return &ScholarshipHandler{service: svc}
}

// List godoc
// @Summary List active scholarships
// @Description Active scholarships ordered by soonest deadline
// @Tags Scholarships
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /scholarships [get]
func (h *ScholarshipHandler) List(c *gin.Context) {
	scholarships, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scholarships, nil)
}

// Eligible godoc
// @Summary List eligible scholarships
// @Description Scholarships the calling student qualifies for
// @Tags Scholarships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /scholarships/eligible [get]
func (h *ScholarshipHandler) Eligible(c *gin.Context) {
	scholarships, err := h.service.ListEligible(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scholarships, nil)
}

// Get godoc
// @Summary Get scholarship
// @Tags Scholarships
// @Produce json
// @Param id path int true "Scholarship ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /scholarships/{id} [get]
func (h *ScholarshipHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	scholarship, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scholarship, nil)
}

// Create godoc
// @Summary Create scholarship
// @Tags Scholarships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateScholarshipRequest true "Scholarship payload"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /scholarships [post]
func (h *ScholarshipHandler) Create(c *gin.Context) {
	var req models.CreateScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid scholarship payload"))
		return
	}

	scholarship, err := h.service.Create(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, scholarship)
}

// Update godoc
// @Summary Update scholarship
// @Tags Scholarships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholarship ID"
// @Param payload body models.ScholarshipPatch true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /scholarships/{id} [put]
func (h *ScholarshipHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var patch models.ScholarshipPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid update payload"))
		return
	}

	scholarship, err := h.service.Update(c.Request.Context(), identityFromContext(c), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scholarship, nil)
}

// Delete godoc
// @Summary Deactivate scholarship
// @Tags Scholarships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholarship ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /scholarships/{id} [delete]
func (h *ScholarshipHandler) Delete(c *gin.Context) {
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

// Apply godoc
// @Summary Apply to scholarship
// @Description Submit an application; one per student per scholarship
// @Tags Scholarships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholarship ID"
// @Param payload body models.ApplyScholarshipRequest true "Application payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /scholarships/{id}/apply [post]
func (h *ScholarshipHandler) Apply(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.ApplyScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid application payload"))
		return
	}

	app, err := h.service.Apply(c.Request.Context(), identityFromContext(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, app)
}

// Applicants godoc
// @Summary List scholarship applicants
// @Description Applications for a scholarship; creator and admins only
// @Tags Scholarships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholarship ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /scholarships/{id}/applications [get]
func (h *ScholarshipHandler) Applicants(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	rows, err := h.service.Applicants(c.Request.Context(), identityFromContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// MyApplications godoc
// @Summary List my scholarship applications
// @Tags Scholarships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /scholarships/applications/my [get]
func (h *ScholarshipHandler) MyApplications(c *gin.Context) {
	rows, err := h.service.MyApplications(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// ReviewApplication godoc
// @Summary Review scholarship application
// @Description Move an application through the review state machine
// @Tags Scholarships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param payload body object true "New status"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /scholarships/applications/{id}/status [put]
func (h *ScholarshipHandler) ReviewApplication(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var payload struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "status required"))
		return
	}

	if err := h.service.ReviewApplication(c.Request.Context(), identityFromContext(c), id, models.ApplicationStatus(payload.Status)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
