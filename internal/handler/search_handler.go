package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alumni-connect-api/internal/service"
	"github.com/noah-isme/alumni-connect-api/pkg/response"
)

// SearchHandler wires the federated search endpoint.
type SearchHandler struct {
	service *service.SearchService
}

// NewSearchHandler creates a new handler.
func NewSearchHandler(svc *service.SearchService) *SearchHandler {
	return &SearchHandler{service: svc}
}

// Search godoc
// @Summary Federated search
// @Description Searches users, opportunities, scholarships and stories
// @Tags Search
// @Produce json
// @Param query query string true "Search query, minimum 2 characters"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	result, err := h.service.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
