package service

import (
	"context"
	"errors"

	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/app/repository"
	"gorm.io/gorm"
)

// UserProfile is a user as seen by the requester
type UserProfile struct {
	User         *model.User
	IsSubscribed bool
}

type UserService interface {
	GetProfile(ctx context.Context, viewerID, userID uint) (*UserProfile, error)
	ListUsers(ctx context.Context, viewerID uint, page, limit int) ([]UserProfile, int64, error)
}

type userService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) UserService {
	return &userService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, viewerID, userID uint) (*UserProfile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	flags, err := s.followRepo.FollowedAmong(ctx, viewerID, []uint{userID})
	if err != nil {
		return nil, err
	}

	return &UserProfile{User: user, IsSubscribed: flags[userID]}, nil
}

func (s *userService) ListUsers(ctx context.Context, viewerID uint, page, limit int) ([]UserProfile, int64, error) {
	offset, limit := pageBounds(page, limit)

	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	flags, err := s.followRepo.FollowedAmong(ctx, viewerID, ids)
	if err != nil {
		return nil, 0, err
	}

	profiles := make([]UserProfile, len(users))
	for i := range users {
		profiles[i] = UserProfile{User: &users[i], IsSubscribed: flags[users[i].ID]}
	}
	return profiles, total, nil
}
