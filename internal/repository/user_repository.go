package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

const userColumns = `id, email, password_hash, name, role, graduation_year, major, company, position, bio, skills, cgpa, category, phone, email_verified, created_at`

// UserRepository provides database access for user accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 LIMIT 1`, userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 LIMIT 1`, userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// List returns users matching the filter, newest first.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	where := []string{"1=1"}
	var args []interface{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		where = append(where, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(major) LIKE $%d OR LOWER(company) LIKE $%d)", len(args), len(args), len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY created_at DESC`, userColumns, strings.Join(where, " AND "))
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create inserts a new user and returns the assigned id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const query = `INSERT INTO users (email, password_hash, name, role, graduation_year, major, company, position, bio, skills, cgpa, category, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, email_verified, created_at`
	row := r.db.QueryRowxContext(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.Role,
		user.GraduationYear, user.Major, user.Company, user.Position,
		user.Bio, user.Skills, user.CGPA, user.Category, user.Phone,
	)
	if err := row.Scan(&user.ID, &user.EmailVerified, &user.CreatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UpdatePatch applies the non-nil fields of the patch to the user row.
// The explicit field-to-column mapping doubles as the update allow-list;
// callers strip role/email for non-admin actors. Returns sql.ErrNoRows
// when nothing was provided to update.
func (r *UserRepository) UpdatePatch(ctx context.Context, id int64, patch models.UserPatch) error {
	var pb patchBuilder
	if patch.Name != nil {
		pb.set("name", *patch.Name)
	}
	if patch.Email != nil {
		pb.set("email", *patch.Email)
	}
	if patch.Role != nil {
		pb.set("role", *patch.Role)
	}
	if patch.GraduationYear != nil {
		pb.set("graduation_year", *patch.GraduationYear)
	}
	if patch.Major != nil {
		pb.set("major", *patch.Major)
	}
	if patch.Company != nil {
		pb.set("company", *patch.Company)
	}
	if patch.Position != nil {
		pb.set("position", *patch.Position)
	}
	if patch.Bio != nil {
		pb.set("bio", *patch.Bio)
	}
	if patch.Skills != nil {
		pb.set("skills", *patch.Skills)
	}
	if patch.CGPA != nil {
		pb.set("cgpa", *patch.CGPA)
	}
	if patch.Category != nil {
		pb.set("category", *patch.Category)
	}
	if patch.Phone != nil {
		pb.set("phone", *patch.Phone)
	}

	if pb.empty() {
		return sql.ErrNoRows
	}

	pb.args = append(pb.args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(pb.assignments, ", "), len(pb.args))
	res, err := r.db.ExecContext(ctx, query, pb.args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a user row permanently. Admin-only; irreversible.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
