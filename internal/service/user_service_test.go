package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumni-connect-api/internal/models"
)

type mockUserRepo struct {
	users     map[int64]*models.User
	deleted   []int64
	patchedID int64
	lastPatch models.UserPatch
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) UpdatePatch(ctx context.Context, id int64, patch models.UserPatch) error {
	if _, ok := m.users[id]; !ok {
		return sql.ErrNoRows
	}
	m.patchedID = id
	m.lastPatch = patch
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return sql.ErrNoRows
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func phone(v string) *string { return &v }

func testUsers() map[int64]*models.User {
	return map[int64]*models.User{
		1: {ID: 1, Email: "admin@example.com", Name: "Root", Role: models.RoleAdmin},
		4: {ID: 4, Email: "ada@example.com", Name: "Ada", Role: models.RoleStudent, Phone: phone("555-0100")},
	}
}

func TestUserGetStripsContactForOthers(t *testing.T) {
	svc := NewUserService(&mockUserRepo{users: testUsers()}, nil, nil, nil)

	other, err := svc.Get(context.Background(), student(7), 4)
	require.NoError(t, err)
	assert.Empty(t, other.Email)
	assert.Nil(t, other.Phone)

	self, err := svc.Get(context.Background(), student(4), 4)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", self.Email)

	asAdmin, err := svc.Get(context.Background(), admin(1), 4)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", asAdmin.Email)
}

func TestUserUpdateOwnerOnly(t *testing.T) {
	repo := &mockUserRepo{users: testUsers()}
	svc := NewUserService(repo, nil, nil, nil)

	name := "Ada L."
	_, err := svc.Update(context.Background(), student(7), 4, models.UserPatch{Name: &name})
	assert.Equal(t, 403, statusOf(t, err))

	_, err = svc.Update(context.Background(), student(4), 4, models.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(4), repo.patchedID)
}

func TestUserUpdateDropsRoleForNonAdmins(t *testing.T) {
	repo := &mockUserRepo{users: testUsers()}
	svc := NewUserService(repo, nil, nil, nil)

	role := "admin"
	name := "Ada"
	_, err := svc.Update(context.Background(), student(4), 4, models.UserPatch{Name: &name, Role: &role})
	require.NoError(t, err)
	assert.Nil(t, repo.lastPatch.Role)

	alumniRole := "alumni"
	_, err = svc.Update(context.Background(), admin(1), 4, models.UserPatch{Role: &alumniRole})
	require.NoError(t, err)
	require.NotNil(t, repo.lastPatch.Role)
	assert.Equal(t, "alumni", *repo.lastPatch.Role)
}

func TestUserUpdateEmptyPatchRejected(t *testing.T) {
	svc := NewUserService(&mockUserRepo{users: testUsers()}, nil, nil, nil)

	role := "admin"
	// The only field becomes nil after the non-admin strip, leaving
	// nothing to update.
	_, err := svc.Update(context.Background(), student(4), 4, models.UserPatch{Role: &role})
	assert.Equal(t, 400, statusOf(t, err))
}

func TestUserDeleteAdminOnly(t *testing.T) {
	repo := &mockUserRepo{users: testUsers()}
	svc := NewUserService(repo, nil, nil, nil)

	err := svc.Delete(context.Background(), student(4), 4)
	assert.Equal(t, 403, statusOf(t, err))

	err = svc.Delete(context.Background(), admin(1), 4)
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, repo.deleted)
}

func TestUserAdminCannotDeleteSelf(t *testing.T) {
	repo := &mockUserRepo{users: testUsers()}
	svc := NewUserService(repo, nil, nil, nil)

	err := svc.Delete(context.Background(), admin(1), 1)
	assert.Equal(t, 400, statusOf(t, err))
	assert.Empty(t, repo.deleted)
}

func TestUserListPublicProfiles(t *testing.T) {
	svc := NewUserService(&mockUserRepo{users: testUsers()}, nil, nil, nil)

	users, err := svc.List(context.Background(), student(7), models.UserFilter{})
	require.NoError(t, err)
	for _, u := range users {
		assert.Empty(t, u.Email)
	}

	users, err = svc.List(context.Background(), admin(1), models.UserFilter{})
	require.NoError(t, err)
	found := false
	for _, u := range users {
		if u.Email != "" {
			found = true
		}
	}
	assert.True(t, found)
}
