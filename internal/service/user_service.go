package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parksys/internal/errors"
	"parksys/internal/model"
	"parksys/internal/repository"
)

// UserUpdate carries the mutable fields of a staff account. Nil fields are
// left unchanged.
type UserUpdate struct {
	Name   *string
	Email  *string
	Role   *model.UserRole
	Active *bool
}

// UserService manages staff accounts.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, update UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, update UserUpdate) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		if existing, err := s.userRepo.FindByEmail(ctx, *update.Email); err == nil && existing.ID != user.ID {
			return nil, errors.ErrUserAlreadyExists
		} else if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check email: %w", err)
		}
		user.Email = *update.Email
	}
	if update.Role != nil {
		if *update.Role != model.UserRoleAdmin && *update.Role != model.UserRoleStaff {
			return nil, fmt.Errorf("%w: unknown role %q", errors.ErrValidation, *update.Role)
		}
		user.Role = *update.Role
	}
	if update.Active != nil {
		user.Active = *update.Active
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes an account. The last admin cannot be deleted.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == model.UserRoleAdmin {
		users, err := s.userRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		admins := 0
		for _, u := range users {
			if u.Role == model.UserRoleAdmin {
				admins++
			}
		}
		if admins <= 1 {
			return fmt.Errorf("%w: cannot delete the last admin account", errors.ErrForbidden)
		}
	}
	return s.userRepo.Delete(ctx, id)
}
