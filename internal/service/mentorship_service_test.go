package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumni-connect-api/internal/authz"
	"github.com/noah-isme/alumni-connect-api/internal/models"
)

type mockMentorshipRepo struct {
	mentors   []models.Mentor
	requests  map[int64]*models.MentorshipRequest
	created   *models.MentorshipRequest
	updatedTo models.MentorshipStatus
}

func (m *mockMentorshipRepo) ListMentors(ctx context.Context) ([]models.Mentor, error) {
	return m.mentors, nil
}

func (m *mockMentorshipRepo) Create(ctx context.Context, req *models.MentorshipRequest) error {
	req.ID = 10
	m.created = req
	return nil
}

func (m *mockMentorshipRepo) ListAll(ctx context.Context) ([]models.MentorshipRequest, error) {
	var out []models.MentorshipRequest
	for _, r := range m.requests {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockMentorshipRepo) ListForUser(ctx context.Context, userID int64) ([]models.MentorshipRequest, error) {
	var out []models.MentorshipRequest
	for _, r := range m.requests {
		if r.StudentID == userID || r.MentorID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockMentorshipRepo) FindByID(ctx context.Context, id int64) (*models.MentorshipRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return r, nil
}

func (m *mockMentorshipRepo) UpdateStatus(ctx context.Context, id int64, status models.MentorshipStatus) error {
	r, ok := m.requests[id]
	if !ok {
		return sql.ErrNoRows
	}
	r.Status = status
	m.updatedTo = status
	return nil
}

type mockUserLookup struct {
	users map[int64]*models.User
}

func (m *mockUserLookup) FindByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func student(id int64) *authz.Identity {
	return &authz.Identity{ID: id, Role: models.RoleStudent}
}

func alumni(id int64) *authz.Identity {
	return &authz.Identity{ID: id, Role: models.RoleAlumni}
}

func admin(id int64) *authz.Identity {
	return &authz.Identity{ID: id, Role: models.RoleAdmin}
}

func TestMentorshipRequestHappyPath(t *testing.T) {
	repo := &mockMentorshipRepo{}
	users := &mockUserLookup{users: map[int64]*models.User{
		2: {ID: 2, Role: models.RoleAlumni, Name: "Grace"},
	}}
	svc := NewMentorshipService(repo, users, nil, nil, nil)

	req, err := svc.Request(context.Background(), student(4), models.CreateMentorshipRequest{
		MentorID: 2, Subject: "Career advice", Message: "Hi!",
	})
	require.NoError(t, err)
	assert.Equal(t, models.MentorshipPending, req.Status)
	assert.Equal(t, int64(4), req.StudentID)
}

func TestMentorshipRequestMentorMustBeAlumni(t *testing.T) {
	repo := &mockMentorshipRepo{}
	users := &mockUserLookup{users: map[int64]*models.User{
		3: {ID: 3, Role: models.RoleStudent},
	}}
	svc := NewMentorshipService(repo, users, nil, nil, nil)

	_, err := svc.Request(context.Background(), student(4), models.CreateMentorshipRequest{
		MentorID: 3, Subject: "Hello", Message: "Hi!",
	})
	assert.Equal(t, 404, statusOf(t, err))

	_, err = svc.Request(context.Background(), student(4), models.CreateMentorshipRequest{
		MentorID: 999, Subject: "Hello", Message: "Hi!",
	})
	assert.Equal(t, 404, statusOf(t, err))
}

func TestMentorshipRequestOnlyStudents(t *testing.T) {
	svc := NewMentorshipService(&mockMentorshipRepo{}, &mockUserLookup{}, nil, nil, nil)

	_, err := svc.Request(context.Background(), alumni(2), models.CreateMentorshipRequest{
		MentorID: 3, Subject: "Hello", Message: "Hi!",
	})
	assert.Equal(t, 403, statusOf(t, err))
}

func TestMentorshipAcceptByMentor(t *testing.T) {
	repo := &mockMentorshipRepo{requests: map[int64]*models.MentorshipRequest{
		10: {ID: 10, StudentID: 4, MentorID: 2, Status: models.MentorshipPending},
	}}
	svc := NewMentorshipService(repo, &mockUserLookup{}, nil, nil, nil)

	updated, err := svc.UpdateStatus(context.Background(), alumni(2), 10, models.MentorshipAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.MentorshipAccepted, updated.Status)
}

func TestMentorshipStudentCannotSelfAccept(t *testing.T) {
	repo := &mockMentorshipRepo{requests: map[int64]*models.MentorshipRequest{
		10: {ID: 10, StudentID: 4, MentorID: 2, Status: models.MentorshipPending},
	}}
	svc := NewMentorshipService(repo, &mockUserLookup{}, nil, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), student(4), 10, models.MentorshipAccepted)
	assert.Equal(t, 403, statusOf(t, err))
}

func TestMentorshipPendingCannotComplete(t *testing.T) {
	repo := &mockMentorshipRepo{requests: map[int64]*models.MentorshipRequest{
		10: {ID: 10, StudentID: 4, MentorID: 2, Status: models.MentorshipPending},
	}}
	svc := NewMentorshipService(repo, &mockUserLookup{}, nil, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), alumni(2), 10, models.MentorshipCompleted)
	assert.Equal(t, 409, statusOf(t, err))
}

func TestMentorshipAdminMayTransition(t *testing.T) {
	repo := &mockMentorshipRepo{requests: map[int64]*models.MentorshipRequest{
		10: {ID: 10, StudentID: 4, MentorID: 2, Status: models.MentorshipAccepted},
	}}
	svc := NewMentorshipService(repo, &mockUserLookup{}, nil, nil, nil)

	updated, err := svc.UpdateStatus(context.Background(), admin(1), 10, models.MentorshipCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.MentorshipCompleted, updated.Status)
}
