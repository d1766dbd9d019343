package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/pkg/validator"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/repository"
	"go.uber.org/zap"
)

// UserUsecase implements user account business logic
type UserUsecase struct {
	userRepo  repository.UserRepository
	validator *validator.Validator
	logger    *zap.Logger
}

// NewUsecase creates a new user use case
func NewUsecase(
	userRepo repository.UserRepository,
	validator *validator.Validator,
	logger *zap.Logger,
) *UserUsecase {
	return &UserUsecase{
		userRepo:  userRepo,
		validator: validator,
		logger:    logger,
	}
}

// CreateUser registers a user. Emails are unique by convention, checked with
// a lookup before insert rather than a storage-level constraint.
func (uc *UserUsecase) CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error) {
	if err := uc.validator.ValidateCreateUser(req); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, entity.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %q already registered", entity.ErrInvalidParameter, req.Email)
	}

	user := entity.User{
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}

	return uc.userRepo.CreateUser(ctx, user)
}

// GetUser returns a user by id
func (uc *UserUsecase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return uc.userRepo.GetUserByID(ctx, id)
}

// GetUserByEmail returns a user by email
func (uc *UserUsecase) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return uc.userRepo.GetUserByEmail(ctx, email)
}

// ListUsers returns a page of users
func (uc *UserUsecase) ListUsers(ctx context.Context, page, pageSize int) (*entity.Page[entity.User], error) {
	return uc.userRepo.ListUsers(ctx, page, pageSize)
}

// UpdateUser patches name and email
func (uc *UserUsecase) UpdateUser(ctx context.Context, id string, req *entity.CreateUserRequest) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	return uc.userRepo.UpdateUser(ctx, user)
}

// DeleteUser removes a user
func (uc *UserUsecase) DeleteUser(ctx context.Context, id string) error {
	return uc.userRepo.DeleteUser(ctx, id)
}
