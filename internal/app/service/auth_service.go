package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/app/repository"
	apperrors "github.com/ikkim/foodgram-backend/internal/errors"
	"github.com/ikkim/foodgram-backend/pkg/logger"
	"github.com/ikkim/foodgram-backend/pkg/redis"
	"github.com/ikkim/foodgram-backend/pkg/util"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*util.TokenPair, error)
	Logout(ctx context.Context, token string, claims *util.Claims) error
	SetPassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)

	logger.Info("Attempting user registration", map[string]interface{}{
		"email":    input.Email,
		"username": input.Username,
	})

	if err := util.ValidateUsername(input.Username); err != nil {
		return nil, apperrors.ValidationField(apperrors.ValidationInvalidFormat, "username", err.Error())
	}
	if err := util.ValidatePassword(input.Password); err != nil {
		return nil, apperrors.ValidationField(apperrors.ValidationTooShort, "password", err.Error())
	}

	// 중복 체크
	emailTaken, usernameTaken, err := s.userRepo.ExistsByEmailOrUsername(ctx, input.Email, input.Username)
	if err != nil {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, err
	}
	if emailTaken {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": input.Email,
		})
		return nil, ErrEmailAlreadyExists
	}
	if usernameTaken {
		logger.Warn("Registration failed: username already exists", map[string]interface{}{
			"username": input.Username,
		})
		return nil, ErrUsernameAlreadyExists
	}

	hashedPassword, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, err
	}

	user := &model.User{
		Email:        input.Email,
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hashedPassword,
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// a concurrent registration can pass the check above
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*util.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email":   email,
			"user_id": user.ID,
		})
		return nil, ErrInvalidCredentials
	}

	// 슈퍼유저도 토큰에는 admin 권한으로 기록
	role := model.RoleUser
	if user.IsAdmin() {
		role = model.RoleAdmin
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"role":    role,
	})
	return tokens, nil
}

// Logout revokes the token for the rest of its lifetime
func (s *authService) Logout(ctx context.Context, token string, claims *util.Claims) error {
	var ttl time.Duration
	if claims != nil && claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}

	if err := redis.BlacklistToken(ctx, token, ttl); err != nil {
		logger.Error("Failed to revoke token on logout", err)
		return err
	}

	if claims != nil {
		logger.Info("User logged out", map[string]interface{}{
			"user_id": claims.UserID,
		})
	}
	return nil
}

func (s *authService) SetPassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !util.VerifyPassword(user.PasswordHash, currentPassword) {
		logger.Warn("Password change failed: wrong current password", map[string]interface{}{
			"user_id": userID,
		})
		return ErrWrongPassword
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		return apperrors.ValidationField(apperrors.ValidationTooShort, "new_password", err.Error())
	}

	hashed, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	logger.Info("User password changed", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
