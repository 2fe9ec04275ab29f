package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Donny1114/Device-Management-System/internal/model"
	"github.com/Donny1114/Device-Management-System/internal/repository"
	"github.com/Donny1114/Device-Management-System/internal/utils"

	"go.uber.org/zap"
)

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, username, password, confirmPassword string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.Session, error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   utils.PasswordHasher
	jwtUtil  *utils.JWTUtil
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService. jwtUtil may be nil, in which case
// sessions carry no token.
func NewAuthService(userRepo repository.UserRepository, hasher utils.PasswordHasher, jwtUtil *utils.JWTUtil, logger *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		jwtUtil:  jwtUtil,
		logger:   logger,
	}
}

// Register creates a new user account with role "user"
func (s *authService) Register(ctx context.Context, username, password, confirmPassword string) (*model.User, error) {
	if isBlank(username) || password == "" || confirmPassword == "" {
		return nil, ErrMissingFields
	}
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	// Check-then-insert is not atomic. A unique index on users.username closes
	// the gap: the insert then fails with repository.ErrDuplicate.
	existingUser, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, dataAccessError(err)
	}
	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, dataAccessError(err)
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login checks a username/password pair against the credential store
func (s *authService) Login(ctx context.Context, username, password string) (*model.Session, error) {
	if isBlank(username) || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, dataAccessError(err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.upgradeHash(ctx, user, password)
	}

	session := &model.Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	if s.jwtUtil != nil {
		token, err := s.jwtUtil.GenerateToken(user.ID, user.Username, user.Role)
		if err != nil {
			return nil, fmt.Errorf("failed to generate token: %w", err)
		}
		session.Token = token
	}

	s.logger.Info("login successful", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return session, nil
}

// upgradeHash rewrites a credential stored under an older scheme. Failure
// does not affect the login.
func (s *authService) upgradeHash(ctx context.Context, user *model.User, password string) {
	newHash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Warn("failed to rehash password", zap.Int64("user_id", user.ID), zap.Error(err))
		return
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
		s.logger.Warn("failed to store upgraded password hash", zap.Int64("user_id", user.ID), zap.Error(err))
		return
	}
	user.PasswordHash = newHash
	s.logger.Info("password hash upgraded", zap.Int64("user_id", user.ID))
}
