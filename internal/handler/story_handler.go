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

// StoryHandler wires success story endpoints.
type StoryHandler struct {
	service *service.StoryService
}

// NewStoryHandler creates a new handler.
func NewStoryHandler(svc *service.StoryService) *StoryHandler {
	return &StoryHandler{service: svc}
}

// List godoc
// @Summary List stories
// @Description Published stories, optionally filtered by category or featured flag
// @Tags Stories
// @Produce json
// @Param category query string false "Category filter"
// @Param featured query bool false "Featured only"
// @Success 200 {object} response.Envelope
// @Router /stories [get]
func (h *StoryHandler) List(c *gin.Context) {
	var filter models.StoryFilter
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}
	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid featured filter"))
			return
		}
		filter.Featured = &featured
	}

	stories, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stories, nil)
}

// Get godoc
// @Summary Get story
// @Tags Stories
// @Produce json
// @Param id path int true "Story ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /stories/{id} [get]
func (h *StoryHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	story, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, story, nil)
}

// Create godoc
// @Summary Share a story
// @Tags Stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateStoryRequest true "Story payload"
// @Success 201 {object} response.Envelope
// @Router /stories [post]
func (h *StoryHandler) Create(c *gin.Context) {
	var req models.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid story payload"))
		return
	}

	story, err := h.service.Create(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, story)
}

// Update godoc
// @Summary Update story
// @Tags Stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Story ID"
// @Param payload body models.StoryPatch true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /stories/{id} [put]
func (h *StoryHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var patch models.StoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid update payload"))
		return
	}

	story, err := h.service.Update(c.Request.Context(), identityFromContext(c), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, story, nil)
}

// Delete godoc
// @Summary Delete story
// @Tags Stories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Story ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /stories/{id} [delete]
func (h *StoryHandler) Delete(c *gin.Context) {
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
