package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

type mockStoryRepo struct {
	stories map[int64]*models.Story
	nextID  int64
	deleted []int64
	patches map[int64]models.StoryPatch
}

func (m *mockStoryRepo) List(_ context.Context, filter models.StoryFilter) ([]models.Story, error) {
	var out []models.Story
	for _, story := range m.stories {
		if filter.Featured != nil && story.IsFeatured != *filter.Featured {
			continue
		}
		out = append(out, *story)
	}
	return out, nil
}

func (m *mockStoryRepo) FindByID(_ context.Context, id int64) (*models.Story, error) {
	story, ok := m.stories[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *story
	return &clone, nil
}

func (m *mockStoryRepo) Create(_ context.Context, s *models.Story) error {
	m.nextID++
	s.ID = m.nextID
	if m.stories == nil {
		m.stories = map[int64]*models.Story{}
	}
	clone := *s
	m.stories[s.ID] = &clone
	return nil
}

func (m *mockStoryRepo) UpdatePatch(_ context.Context, id int64, patch models.StoryPatch) error {
	story, ok := m.stories[id]
	if !ok {
		return sql.ErrNoRows
	}
	if patch.Title != nil {
		story.Title = *patch.Title
	}
	if patch.Content != nil {
		story.Content = *patch.Content
	}
	if patch.IsFeatured != nil {
		story.IsFeatured = *patch.IsFeatured
	}
	if m.patches == nil {
		m.patches = map[int64]models.StoryPatch{}
	}
	m.patches[id] = patch
	return nil
}

func (m *mockStoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.stories[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.stories, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func seededStoryRepo(authorID int64) *mockStoryRepo {
	return &mockStoryRepo{
		stories: map[int64]*models.Story{
			1: {ID: 1, AuthorID: authorID, Title: "From intern to lead", Content: "It took five years."},
		},
		nextID: 1,
	}
}

func TestStoryCreateSetsAuthor(t *testing.T) {
	repo := &mockStoryRepo{}
	svc := NewStoryService(repo, nil, nil, nil)

	story, err := svc.Create(context.Background(), alumni(9), models.CreateStoryRequest{
		Title:   "Landing my first job",
		Content: "The alumni network made the introduction.",
	})
	require.NoError(t, err)
	require.Equal(t, int64(9), story.AuthorID)
	require.NotZero(t, story.ID)
}

func TestStoryCreateRequiresContent(t *testing.T) {
	svc := NewStoryService(&mockStoryRepo{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), alumni(9), models.CreateStoryRequest{Title: "No body"})
	require.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestStoryUpdateNonAuthorForbidden(t *testing.T) {
	repo := seededStoryRepo(9)
	svc := NewStoryService(repo, nil, nil, nil)

	title := "Rewritten"
	_, err := svc.Update(context.Background(), student(4), 1, models.StoryPatch{Title: &title})
	require.Equal(t, http.StatusForbidden, statusOf(t, err))
}

func TestStoryUpdateAuthorCannotFeature(t *testing.T) {
	repo := seededStoryRepo(9)
	svc := NewStoryService(repo, nil, nil, nil)

	featured := true
	title := "Still my story"
	story, err := svc.Update(context.Background(), alumni(9), 1, models.StoryPatch{Title: &title, IsFeatured: &featured})
	require.NoError(t, err)
	require.False(t, story.IsFeatured)
	require.Nil(t, repo.patches[1].IsFeatured)
	require.Equal(t, "Still my story", story.Title)
}

func TestStoryUpdateAdminCanFeature(t *testing.T) {
	repo := seededStoryRepo(9)
	svc := NewStoryService(repo, nil, nil, nil)

	featured := true
	story, err := svc.Update(context.Background(), admin(1), 1, models.StoryPatch{IsFeatured: &featured})
	require.NoError(t, err)
	require.True(t, story.IsFeatured)
}

func TestStoryUpdateEmptyPatchRejected(t *testing.T) {
	repo := seededStoryRepo(9)
	svc := NewStoryService(repo, nil, nil, nil)

	// For a non-admin a lone is_featured flag is stripped, leaving nothing
	// to apply.
	featured := true
	_, err := svc.Update(context.Background(), alumni(9), 1, models.StoryPatch{IsFeatured: &featured})
	require.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestStoryDeleteAuthorOrAdmin(t *testing.T) {
	repo := seededStoryRepo(9)
	svc := NewStoryService(repo, nil, nil, nil)

	err := svc.Delete(context.Background(), student(4), 1)
	require.Equal(t, http.StatusForbidden, statusOf(t, err))

	require.NoError(t, svc.Delete(context.Background(), admin(1), 1))
	require.Equal(t, []int64{1}, repo.deleted)

	err = svc.Delete(context.Background(), admin(1), 1)
	require.Equal(t, http.StatusNotFound, statusOf(t, err))
}
