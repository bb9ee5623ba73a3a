package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/alumni-connect-api/internal/models"
	appErrors "github.com/noah-isme/alumni-connect-api/pkg/errors"
)

type mockAuthRepo struct {
	userByEmail    *models.User
	userByID       *models.User
	findByEmailErr error
	findByIDErr    error
	createErr      error
	created        *models.User
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	return m.userByEmail, nil
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if m.findByIDErr != nil {
		return nil, m.findByIDErr
	}
	if m.userByID != nil {
		return m.userByID, nil
	}
	return m.userByEmail, nil
}

func (m *mockAuthRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	user.CreatedAt = time.Now()
	m.created = user
	return nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{TokenSecret: "test-secret", TokenExpiry: time.Hour, Issuer: "alumni-connect-api"}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return appErrors.FromError(err).Status
}

func TestRegisterDefaultsToStudent(t *testing.T) {
	repo := &mockAuthRepo{}
	svc := NewAuthService(repo, nil, nil, nil, testAuthConfig())

	resp, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "secret1",
		Name:     "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	require.NotNil(t, repo.created)
	assert.NotEqual(t, "secret1", repo.created.PasswordHash)
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	repo := &mockAuthRepo{createErr: &pq.Error{Code: "23505"}}
	svc := NewAuthService(repo, nil, nil, nil, testAuthConfig())

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "secret1",
		Name:     "Ada",
	})
	assert.Equal(t, 409, statusOf(t, err))
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc := NewAuthService(&mockAuthRepo{}, nil, nil, nil, testAuthConfig())

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "secret1",
		Name:     "Ada",
		Role:     "admin",
	})
	assert.Equal(t, 400, statusOf(t, err))
}

func TestLoginSuccessIssuesValidToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := &mockAuthRepo{userByEmail: &models.User{
		ID: 4, Email: "ada@example.com", PasswordHash: string(hash), Name: "Ada", Role: models.RoleStudent,
	}}
	svc := NewAuthService(repo, nil, nil, nil, testAuthConfig())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(4), claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := &mockAuthRepo{userByEmail: &models.User{ID: 4, Email: "ada@example.com", PasswordHash: string(hash)}}
	svc := NewAuthService(repo, nil, nil, nil, testAuthConfig())

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.Equal(t, 401, statusOf(t, err))
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := &mockAuthRepo{findByEmailErr: sql.ErrNoRows}
	svc := NewAuthService(repo, nil, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	assert.Equal(t, 401, statusOf(t, err))
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	repo := &mockAuthRepo{}
	svc := NewAuthService(repo, nil, nil, nil, testAuthConfig())

	other := NewAuthService(repo, nil, nil, nil, AuthConfig{TokenSecret: "other-secret", TokenExpiry: time.Hour})
	resp, err := other.Register(context.Background(), models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "secret1",
		Name:     "Ada",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken)
	assert.Equal(t, 401, statusOf(t, err))
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	repo := &mockAuthRepo{}
	expired := NewAuthService(repo, nil, nil, nil, AuthConfig{TokenSecret: "test-secret", TokenExpiry: -time.Minute})
	resp, err := expired.Register(context.Background(), models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "secret1",
		Name:     "Ada",
	})
	require.NoError(t, err)

	svc := NewAuthService(repo, nil, nil, nil, testAuthConfig())
	_, err = svc.ValidateToken(resp.AccessToken)
	assert.Equal(t, 401, statusOf(t, err))
}
