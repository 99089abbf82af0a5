package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"parksys/internal/auth"
	"parksys/internal/errors"
	"parksys/internal/model"
)

func newAuthFixture() (*MockUserRepository, *MockTokenStore, AuthService) {
	userRepo := new(MockUserRepository)
	tokenStore := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(userRepo, jwtService, tokenStore)
	return userRepo, tokenStore, svc
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	userID := uuid.New()

	tests := []struct {
		name          string
		identifier    string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:       "successful login by username",
			identifier: "admin",
			password:   "admin123",
			setupMock: func(u *MockUserRepository, ts *MockTokenStore) {
				u.On("FindByUsername", mock.Anything, "admin").Return(&model.User{
					ID:           userID,
					Username:     "admin",
					Role:         model.UserRoleAdmin,
					PasswordHash: string(hashed),
					Active:       true,
				}, nil)
				ts.On("StoreRefreshToken", mock.Anything, mock.Anything, userID.String(), "admin", model.UserRoleAdmin, auth.RefreshTokenExpiry).Return(nil)
				u.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:       "email identifier routes to email lookup",
			identifier: "admin@parksys.local",
			password:   "admin123",
			setupMock: func(u *MockUserRepository, ts *MockTokenStore) {
				u.On("FindByEmail", mock.Anything, "admin@parksys.local").Return(&model.User{
					ID:           userID,
					Username:     "admin",
					Role:         model.UserRoleAdmin,
					PasswordHash: string(hashed),
					Active:       true,
				}, nil)
				ts.On("StoreRefreshToken", mock.Anything, mock.Anything, userID.String(), "admin", model.UserRoleAdmin, auth.RefreshTokenExpiry).Return(nil)
				u.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:       "unknown user",
			identifier: "ghost",
			password:   "admin123",
			setupMock: func(u *MockUserRepository, ts *MockTokenStore) {
				u.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:       "wrong password",
			identifier: "admin",
			password:   "nope",
			setupMock: func(u *MockUserRepository, ts *MockTokenStore) {
				u.On("FindByUsername", mock.Anything, "admin").Return(&model.User{
					ID:           userID,
					Username:     "admin",
					PasswordHash: string(hashed),
					Active:       true,
				}, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:       "deactivated account",
			identifier: "admin",
			password:   "admin123",
			setupMock: func(u *MockUserRepository, ts *MockTokenStore) {
				u.On("FindByUsername", mock.Anything, "admin").Return(&model.User{
					ID:           userID,
					Username:     "admin",
					PasswordHash: string(hashed),
					Active:       false,
				}, nil)
			},
			expectedError: errors.ErrUserInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo, tokenStore, svc := newAuthFixture()
			tt.setupMock(userRepo, tokenStore)

			user, tokens, err := svc.Login(context.Background(), tt.identifier, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, tokens.AccessToken)
				assert.NotEmpty(t, tokens.RefreshToken)
				assert.NotNil(t, user.LastLogin)
			}

			userRepo.AssertExpectations(t)
			tokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		req           RegisterRequest
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful registration defaults to staff",
			req:  RegisterRequest{Username: "newstaff", Email: "new@parksys.local", Password: "secret1"},
			setupMock: func(u *MockUserRepository) {
				u.On("FindByUsername", mock.Anything, "newstaff").Return(nil, gorm.ErrRecordNotFound)
				u.On("FindByEmail", mock.Anything, "new@parksys.local").Return(nil, gorm.ErrRecordNotFound)
				u.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name: "username taken",
			req:  RegisterRequest{Username: "admin", Email: "other@parksys.local", Password: "secret1"},
			setupMock: func(u *MockUserRepository) {
				u.On("FindByUsername", mock.Anything, "admin").Return(&model.User{Username: "admin"}, nil)
			},
			expectedError: errors.ErrUserAlreadyExists,
		},
		{
			name:          "short password rejected",
			req:           RegisterRequest{Username: "x", Email: "x@parksys.local", Password: "123"},
			setupMock:     func(u *MockUserRepository) {},
			expectedError: errors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo, _, svc := newAuthFixture()
			tt.setupMock(userRepo)

			user, err := svc.Register(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.UserRoleStaff, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				assert.True(t, user.Active)
			}
			userRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshRotatesToken(t *testing.T) {
	userRepo, tokenStore, svc := newAuthFixture()
	jwtService := auth.NewJWTService("test-secret")

	userID := uuid.New()
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, "staff", model.UserRoleStaff)
	assert.NoError(t, err)

	tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(userID.String(), "staff", model.UserRoleStaff, nil)
	userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
		ID:       userID,
		Username: "staff",
		Role:     model.UserRoleStaff,
		Active:   true,
	}, nil)
	tokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)
	tokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, userID.String(), "staff", model.UserRoleStaff, auth.RefreshTokenExpiry).Return(nil)

	tokens, err := svc.RefreshTokens(context.Background(), refreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEqual(t, refreshToken, tokens.RefreshToken)

	tokenStore.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestAuthService_RefreshRejectsGarbage(t *testing.T) {
	_, _, svc := newAuthFixture()

	tokens, err := svc.RefreshTokens(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, errors.ErrInvalidToken)
	assert.Nil(t, tokens)
}

func TestAuthService_ChangePassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpass"), bcrypt.DefaultCost)
	userID := uuid.New()

	userRepo, _, svc := newAuthFixture()
	userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
		ID:           userID,
		PasswordHash: string(hashed),
		Active:       true,
	}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("newpass1")) == nil
	})).Return(nil)

	err := svc.ChangePassword(context.Background(), userID, "oldpass", "newpass1")
	assert.NoError(t, err)

	err = svc.ChangePassword(context.Background(), userID, "wrong", "newpass1")
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)

	userRepo.AssertExpectations(t)
}
