package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"parksys/internal/errors"
	"parksys/internal/model"
)

func TestUserService_UpdateUser(t *testing.T) {
	userID := uuid.New()

	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
		ID:     userID,
		Name:   "Old Name",
		Email:  "old@parksys.local",
		Role:   model.UserRoleStaff,
		Active: true,
	}, nil)
	userRepo.On("FindByEmail", mock.Anything, "new@parksys.local").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Name == "New Name" && u.Email == "new@parksys.local" && !u.Active
	})).Return(nil)

	name := "New Name"
	email := "new@parksys.local"
	active := false
	user, err := svc.UpdateUser(context.Background(), userID, UserUpdate{
		Name:   &name,
		Email:  &email,
		Active: &active,
	})

	assert.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
	assert.False(t, user.Active)
	// role untouched when not supplied
	assert.Equal(t, model.UserRoleStaff, user.Role)
	userRepo.AssertExpectations(t)
}

func TestUserService_UpdateUserEmailTaken(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()

	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	userRepo.On("FindByEmail", mock.Anything, "taken@parksys.local").Return(&model.User{ID: otherID}, nil)

	email := "taken@parksys.local"
	_, err := svc.UpdateUser(context.Background(), userID, UserUpdate{Email: &email})
	assert.ErrorIs(t, err, errors.ErrUserAlreadyExists)
}

func TestUserService_DeleteUser(t *testing.T) {
	adminID := uuid.New()
	staffID := uuid.New()

	tests := []struct {
		name          string
		targetID      uuid.UUID
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "staff account deleted",
			targetID: staffID,
			setupMock: func(u *MockUserRepository) {
				u.On("FindByID", mock.Anything, staffID).Return(&model.User{ID: staffID, Role: model.UserRoleStaff}, nil)
				u.On("Delete", mock.Anything, staffID).Return(nil)
			},
		},
		{
			name:     "last admin protected",
			targetID: adminID,
			setupMock: func(u *MockUserRepository) {
				u.On("FindByID", mock.Anything, adminID).Return(&model.User{ID: adminID, Role: model.UserRoleAdmin}, nil)
				u.On("List", mock.Anything).Return([]model.User{
					{ID: adminID, Role: model.UserRoleAdmin},
					{ID: staffID, Role: model.UserRoleStaff},
				}, nil)
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:     "unknown user",
			targetID: staffID,
			setupMock: func(u *MockUserRepository) {
				u.On("FindByID", mock.Anything, staffID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMock(userRepo)
			svc := NewUserService(userRepo)

			err := svc.DeleteUser(context.Background(), tt.targetID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			userRepo.AssertExpectations(t)
		})
	}
}
