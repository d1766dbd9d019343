package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/pkg/validator"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	users  map[string]*entity.User
	nextID int
}

var _ repository.UserRepository = &fakeUserRepo{}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user entity.User) (*entity.User, error) {
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	stored := user
	r.users[user.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *fakeUserRepo) ListUsers(ctx context.Context, page, pageSize int) (*entity.Page[entity.User], error) {
	var items []entity.User
	for _, u := range r.users {
		items = append(items, *u)
	}
	return &entity.Page[entity.User]{Items: items, Total: int64(len(items)), Page: 1, PageSize: pageSize}, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, entity.ErrUserNotFound
	}
	stored := *user
	r.users[user.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return entity.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func newTestUsecase() (*UserUsecase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewUsecase(repo, validator.NewValidator(), zap.NewNop()), repo
}

func TestCreateUser(t *testing.T) {
	uc, _ := newTestUsecase()

	user, err := uc.CreateUser(context.Background(), &entity.CreateUserRequest{
		Name:  "Ada",
		Email: "ada@example.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Ada", user.Name)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	uc, _ := newTestUsecase()

	_, err := uc.CreateUser(context.Background(), &entity.CreateUserRequest{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = uc.CreateUser(context.Background(), &entity.CreateUserRequest{Name: "Someone", Email: "ada@example.com"})
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "already registered")
}

func TestCreateUser_RejectsBadEmail(t *testing.T) {
	uc, repo := newTestUsecase()

	_, err := uc.CreateUser(context.Background(), &entity.CreateUserRequest{Name: "Ada", Email: "not-an-email"})
	assert.Error(t, err)
	assert.True(t, entity.IsValidation(err))
	assert.Empty(t, repo.users)
}

func TestUpdateUser_PatchesFields(t *testing.T) {
	uc, _ := newTestUsecase()

	user, err := uc.CreateUser(context.Background(), &entity.CreateUserRequest{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	updated, err := uc.UpdateUser(context.Background(), user.ID, &entity.CreateUserRequest{Name: "Ada L."})
	require.NoError(t, err)

	assert.Equal(t, "Ada L.", updated.Name)
	assert.Equal(t, "ada@example.com", updated.Email, "unset fields are untouched")
}

func TestDeleteUser_Unknown(t *testing.T) {
	uc, _ := newTestUsecase()
	err := uc.DeleteUser(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}
