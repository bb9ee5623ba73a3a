package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumni-connect-api/internal/models"
	"github.com/noah-isme/alumni-connect-api/internal/service"
)

type searchRepoStub struct {
	results []models.SearchResult
}

func (s *searchRepoStub) Search(ctx context.Context, pattern string) ([]models.SearchResult, error) {
	return s.results, nil
}

func searchRequest(t *testing.T, h *SearchHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, target, nil)
	c.Request = req
	h.Search(c)
	return w
}

func TestSearchHandlerRejectsShortQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSearchHandler(service.NewSearchService(&searchRepoStub{}, nil, 0, nil, nil))

	w := searchRequest(t, h, "/search?query=a")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchHandlerReturnsEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSearchHandler(service.NewSearchService(&searchRepoStub{results: []models.SearchResult{
		{Type: "opportunity", ID: 3, Title: "Campus recruiter"},
	}}, nil, 0, nil, nil))

	w := searchRequest(t, h, "/search?query=campus")
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.SearchResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, 1, envelope.Data.Count)
	require.Equal(t, "campus", envelope.Data.Query)
}
