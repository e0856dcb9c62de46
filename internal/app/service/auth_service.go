package service

import (
	"context"
	"errors"
	"fmt"

	"newsdesk/internal/common"
	"newsdesk/internal/common/security"
	"newsdesk/internal/domain/model"
	"newsdesk/internal/domain/repository"
	"newsdesk/internal/platform/config"
	"newsdesk/internal/platform/tokenstore"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService struct {
	userRepo     repository.UserRepository
	refreshStore tokenstore.RefreshStore
}

func NewAuthService(userRepo repository.UserRepository, refreshStore tokenstore.RefreshStore) *AuthService {
	return &AuthService{userRepo: userRepo, refreshStore: refreshStore}
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 150)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&r.Role, validation.In(model.RoleAdmin, model.RoleContributor)),
	)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair is the /token response shape.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// LoginResponse is the /users/login response shape.
type LoginResponse struct {
	Token   string      `json:"token"`
	Refresh string      `json:"refresh"`
	User    *model.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleContributor // Default role
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           role,
		Bio:            req.Bio,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo might return common.ErrConflict
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.HashedPassword = ""
	return user, nil
}

func (s *AuthService) authenticate(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, common.ErrBadRequest
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}
	return user, nil
}

func (s *AuthService) issuePair(ctx context.Context, user *model.User) (*TokenPair, error) {
	access, err := security.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, jti, err := security.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	if err := s.refreshStore.Save(ctx, jti, user.ID, config.AppConfig.JWTRefreshExp); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Token exchanges credentials for an access/refresh token pair.
func (s *AuthService) Token(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	user, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issuePair(ctx, user)
}

// Login is the alternate credential exchange returning the serialized user
// alongside the token pair.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return &LoginResponse{Token: pair.Access, Refresh: pair.Refresh, User: user}, nil
}

// Refresh rotates a refresh token: the presented token must be live in the
// store; it is revoked and a fresh pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, common.ErrBadRequest
	}

	userID, jti, err := security.DecodeRefreshToken(refreshToken)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	live, err := s.refreshStore.Exists(ctx, jti)
	if err != nil {
		return nil, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if !live {
		return nil, common.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.refreshStore.Revoke(ctx, jti); err != nil {
		zap.L().Warn("failed to revoke used refresh token", zap.Error(err))
	}
	return s.issuePair(ctx, user)
}
