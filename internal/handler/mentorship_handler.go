package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alumni-connect-api/internal/models"
	"github.com/noah-isme/alumni-connect-api/internal/service"
	appErrors "github.com/noah-isme/alumni-connect-api/pkg/errors"
	"github.com/noah-isme/alumni-connect-api/pkg/response"
)

// MentorshipHandler wires the mentor directory and mentorship requests.
type MentorshipHandler struct {
	service *service.MentorshipService
}

// NewMentorshipHandler creates a new handler.
func NewMentorshipHandler(svc *service.MentorshipService) *MentorshipHandler {
	return &MentorshipHandler{service: svc}
}

// Mentors godoc
// @Summary List available mentors
// @Description Alumni available for mentorship, ordered by name
// @Tags Mentorship
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /mentorship/mentors [get]
func (h *MentorshipHandler) Mentors(c *gin.Context) {
	mentors, err := h.service.Mentors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mentors, nil)
}

// Request godoc
// @Summary Request mentorship
// @Description Students request mentorship from an alumni mentor
// @Tags Mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateMentorshipRequest true "Request payload"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /mentorship/requests [post]
func (h *MentorshipHandler) Request(c *gin.Context) {
	var req models.CreateMentorshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid mentorship payload"))
		return
	}

	request, err := h.service.Request(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, request)
}

// List godoc
// @Summary List my mentorship requests
// @Description Requests where the caller is the student or the mentor
// @Tags Mentorship
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /mentorship/requests [get]
func (h *MentorshipHandler) List(c *gin.Context) {
	requests, err := h.service.List(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, nil)
}

// UpdateStatus godoc
// @Summary Update mentorship request status
// @Description Mentors accept or reject; accepted requests may be completed
// @Tags Mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param payload body models.UpdateMentorshipStatusRequest true "New status"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /mentorship/requests/{id} [put]
func (h *MentorshipHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.UpdateMentorshipStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "status required"))
		return
	}

	request, err := h.service.UpdateStatus(c.Request.Context(), identityFromContext(c), id, models.MentorshipStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}
