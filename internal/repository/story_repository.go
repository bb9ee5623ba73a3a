package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

// StoryRepository provides database access for success stories.
type StoryRepository struct {
	db *sqlx.DB
}

// NewStoryRepository creates a new instance of StoryRepository.
func NewStoryRepository(db *sqlx.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

// List returns stories matching the filter, newest first.
func (r *StoryRepository) List(ctx context.Context, filter models.StoryFilter) ([]models.Story, error) {
	query := `SELECT st.id, st.author_id, st.title, st.content, st.category, st.is_featured, st.created_at,
			u.name AS author_name
		FROM stories st
		LEFT JOIN users u ON st.author_id = u.id
		WHERE 1=1`
	args := []interface{}{}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		query += fmt.Sprintf(" AND st.category = $%d", len(args))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		query += fmt.Sprintf(" AND st.is_featured = $%d", len(args))
	}
	query += " ORDER BY st.created_at DESC"

	var stories []models.Story
	if err := r.db.SelectContext(ctx, &stories, query, args...); err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	return stories, nil
}

// FindByID returns a single story.
func (r *StoryRepository) FindByID(ctx context.Context, id int64) (*models.Story, error) {
	const query = `SELECT st.id, st.author_id, st.title, st.content, st.category, st.is_featured, st.created_at,
			u.name AS author_name
		FROM stories st
		LEFT JOIN users u ON st.author_id = u.id
		WHERE st.id = $1 LIMIT 1`
	var story models.Story
	if err := r.db.GetContext(ctx, &story, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find story by id: %w", err)
	}
	return &story, nil
}

// Create inserts a new story.
func (r *StoryRepository) Create(ctx context.Context, s *models.Story) error {
	const query = `INSERT INTO stories (author_id, title, content, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_featured, created_at`
	row := r.db.QueryRowxContext(ctx, query, s.AuthorID, s.Title, s.Content, s.Category)
	if err := row.Scan(&s.ID, &s.IsFeatured, &s.CreatedAt); err != nil {
		return fmt.Errorf("create story: %w", err)
	}
	return nil
}

// UpdatePatch applies the non-nil fields of the patch. Returns
// sql.ErrNoRows for an empty patch or a missing row.
func (r *StoryRepository) UpdatePatch(ctx context.Context, id int64, patch models.StoryPatch) error {
	var pb patchBuilder
	if patch.Title != nil {
		pb.set("title", *patch.Title)
	}
	if patch.Content != nil {
		pb.set("content", *patch.Content)
	}
	if patch.Category != nil {
		pb.set("category", *patch.Category)
	}
	if patch.IsFeatured != nil {
		pb.set("is_featured", *patch.IsFeatured)
	}

	if pb.empty() {
		return sql.ErrNoRows
	}

	pb.args = append(pb.args, id)
	query := fmt.Sprintf("UPDATE stories SET %s WHERE id = $%d", strings.Join(pb.assignments, ", "), len(pb.args))
	res, err := r.db.ExecContext(ctx, query, pb.args...)
	if err != nil {
		return fmt.Errorf("update story: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a story.
func (r *StoryRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM stories WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
