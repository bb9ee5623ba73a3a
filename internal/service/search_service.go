package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/alumni-connect-api/internal/models"
	appErrors "github.com/noah-isme/alumni-connect-api/pkg/errors"
)

const (
	searchMinQueryLen   = 2
	searchSnippetLength = 200
)

type searchRepository interface {
	Search(ctx context.Context, pattern string) ([]models.SearchResult, error)
}

// SearchService runs federated search across members, opportunities,
// scholarships and stories.
type SearchService struct {
	repo     searchRepository
	cache    *CacheService
	cacheTTL time.Duration
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewSearchService constructs a SearchService instance.
func NewSearchService(repo searchRepository, cache *CacheService, cacheTTL time.Duration, metrics *MetricsService, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{repo: repo, cache: cache, cacheTTL: cacheTTL, metrics: metrics, logger: logger}
}

// Search matches the query against every entity type. Queries shorter
// than two characters are rejected; descriptions are truncated to
// snippet length.
func (s *SearchService) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if len(query) < searchMinQueryLen {
		return nil, appErrors.Clone(appErrors.ErrValidation, "query must be at least 2 characters")
	}

	cacheKey := cacheKeySearchPrefix + strings.ToLower(query)
	var cached models.SearchResponse
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	start := time.Now()
	results, err := s.repo.Search(ctx, "%"+query+"%")
	s.metrics.ObserveDBQuery("federated_search", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "search failed")
	}

	for i := range results {
		if results[i].Description == nil {
			continue
		}
		if runes := []rune(*results[i].Description); len(runes) > searchSnippetLength {
			snippet := string(runes[:searchSnippetLength])
			results[i].Description = &snippet
		}
	}
	if results == nil {
		results = []models.SearchResult{}
	}

	resp := &models.SearchResponse{Query: query, Count: len(results), Results: results}
	s.cache.Set(ctx, cacheKey, resp, s.cacheTTL)
	return resp, nil
}
