package user

import (
	"context"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
)

type UserUsecase interface {
	CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	ListUsers(ctx context.Context, page, pageSize int) (*entity.Page[entity.User], error)
	UpdateUser(ctx context.Context, id string, req *entity.CreateUserRequest) (*entity.User, error)
	DeleteUser(ctx context.Context, id string) error
}
