package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/entity"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/repository"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/dto/request"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/dto/response"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAuthService(repo *repository.Repository, log *zap.Logger) AuthService {
	return &authService{
		repo: repo,
		log:  log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, validationError(utils.FormatValidationErrors(errs))
	}

	if req.Password != req.ConfirmPassword {
		return nil, validationError("Password and Confirm Password fields must be the same!")
	}

	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existingUser != nil {
		return nil, validationError("Email already exists!")
	}

	existingUser, err = s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existingUser != nil {
		return nil, validationError("A user with that username already exists.")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		IsStaff:      false,
	}

	// The token is born with the account, in the same transaction. It is
	// never reissued on later updates to the user.
	token := &entity.AuthToken{
		Key:       uuid.New(),
		UserID:    user.ID,
		CreatedAt: now,
	}

	if err := s.repo.User.CreateWithToken(ctx, user, token); err != nil {
		s.log.Error("Failed to create account", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.RegisterToResponse(user, token)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, validationError(utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid credentials", zap.String("username", req.Username))
		return nil, unauthorizedError("Unable to log in with provided credentials.")
	}

	token, err := s.repo.Token.FindByUserID(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to find token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("find token: %w", err)
	}

	// The token normally exists from registration; it is only absent after
	// a logout deleted it, in which case a fresh one is issued.
	if token == nil {
		token = &entity.AuthToken{
			Key:       uuid.New(),
			UserID:    user.ID,
			CreatedAt: time.Now(),
		}
		if err := s.repo.Token.Create(ctx, token); err != nil {
			s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
			return nil, fmt.Errorf("issue token: %w", err)
		}
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.LoginResponse{Token: token.Key.String()}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Token.DeleteByKey(ctx, token); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return unauthorizedError("Invalid token")
		}
		s.log.Error("Failed to delete token", zap.Error(err))
		return fmt.Errorf("delete token: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}
