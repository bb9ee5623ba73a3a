package service

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

type mockSearchRepo struct {
	pattern string
	results []models.SearchResult
}

func (m *mockSearchRepo) Search(ctx context.Context, pattern string) ([]models.SearchResult, error) {
	m.pattern = pattern
	return m.results, nil
}

func TestSearchRejectsShortQueries(t *testing.T) {
	svc := NewSearchService(&mockSearchRepo{}, nil, 0, nil, nil)

	_, err := svc.Search(context.Background(), "a")
	assert.Equal(t, 400, statusOf(t, err))

	_, err = svc.Search(context.Background(), "  a  ")
	assert.Equal(t, 400, statusOf(t, err))

	_, err = svc.Search(context.Background(), "")
	assert.Equal(t, 400, statusOf(t, err))
}

func TestSearchWrapsPatternAndCounts(t *testing.T) {
	repo := &mockSearchRepo{results: []models.SearchResult{
		{Type: "student", ID: 4, Title: "Ada"},
		{Type: "opportunity", ID: 1, Title: "Backend Engineer"},
	}}
	svc := NewSearchService(repo, nil, 0, nil, nil)

	resp, err := svc.Search(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, "%ada%", repo.pattern)
	assert.Equal(t, "ada", resp.Query)
	assert.Equal(t, 2, resp.Count)
}

func TestSearchTruncatesLongDescriptions(t *testing.T) {
	long := strings.Repeat("x", 500)
	repo := &mockSearchRepo{results: []models.SearchResult{
		{Type: "mentorship", ID: 1, Title: "Long", Description: &long},
	}}
	svc := NewSearchService(repo, nil, 0, nil, nil)

	resp, err := svc.Search(context.Background(), "long")
	require.NoError(t, err)
	require.NotNil(t, resp.Results[0].Description)
	assert.Len(t, *resp.Results[0].Description, searchSnippetLength)
}

func TestSearchEmptyResultIsNotNil(t *testing.T) {
	svc := NewSearchService(&mockSearchRepo{}, nil, 0, nil, nil)

	resp, err := svc.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, resp.Results)
	assert.Zero(t, resp.Count)
}

func TestSearchTimesTheDatabaseQuery(t *testing.T) {
	metrics := NewMetricsService()
	repo := &mockSearchRepo{results: []models.SearchResult{
		{Type: "opportunity", ID: 3, Title: "Campus recruiter"},
	}}
	svc := NewSearchService(repo, nil, 0, metrics, nil)

	_, err := svc.Search(context.Background(), "campus")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, w.Body.String(), `db_query_duration_seconds_count{query="federated_search"} 1`)
}
