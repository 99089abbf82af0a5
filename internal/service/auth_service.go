package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"parksys/internal/auth"
	"parksys/internal/errors"
	"parksys/internal/model"
	"parksys/internal/repository"
)

// TokenPair bundles the tokens issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterRequest carries the fields of a new staff account.
type RegisterRequest struct {
	Username string
	Email    string
	Name     string
	Password string
	Role     model.UserRole
}

// AuthService handles staff authentication and account lifecycle.
type AuthService interface {
	// Login accepts a username or an email address as the identifier.
	Login(ctx context.Context, identifier, password string) (*model.User, *TokenPair, error)
	Register(ctx context.Context, req RegisterRequest) (*model.User, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

func (s *authService) Login(ctx context.Context, identifier, password string) (*model.User, *TokenPair, error) {
	if identifier == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: username and password are required", errors.ErrValidation)
	}

	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	if !user.Active {
		return nil, nil, errors.ErrUserInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, errors.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("stamp last login: %w", err)
	}
	return user, pair, nil
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.Username == "" || req.Email == "" || len(req.Password) < 6 {
		return nil, fmt.Errorf("%w: username, email and a password of at least 6 characters are required", errors.ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = model.UserRoleStaff
	}
	if role != model.UserRoleAdmin && role != model.UserRoleStaff {
		return nil, fmt.Errorf("%w: unknown role %q", errors.ErrValidation, req.Role)
	}

	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, errors.ErrUserAlreadyExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, errors.ErrUserAlreadyExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		Name:         req.Name,
		Role:         role,
		PasswordHash: string(hash),
		Active:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// RefreshTokens rotates a refresh token: the old token is revoked and a fresh
// pair is issued.
func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}
	userID, _, _, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrInvalidToken
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.Active {
		return nil, errors.ErrUserInactive
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, tokenID); err != nil {
		return nil, fmt.Errorf("revoke old token: %w", err)
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return errors.ErrInvalidToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: new password must be at least 6 characters", errors.ErrValidation)
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return errors.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return s.userRepo.Update(ctx, user)
}

func (s *authService) findByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	if strings.Contains(identifier, "@") {
		return s.userRepo.FindByEmail(ctx, identifier)
	}
	return s.userRepo.FindByUsername(ctx, identifier)
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*TokenPair, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID.String(), user.Username, user.Role, auth.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
