package service

import (
	"context"
	"errors"

	"github.com/ikkim/foodgram-backend/internal/access"
	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/app/repository"
	"github.com/ikkim/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

// Subscription is a followed author with a preview of their recipes
type Subscription struct {
	Author       *model.User
	IsSubscribed bool
	Recipes      []model.Recipe
	RecipesCount int64
}

type FollowService interface {
	Follow(ctx context.Context, p access.Principal, authorID uint, recipesLimit int) (*Subscription, error)
	Unfollow(ctx context.Context, p access.Principal, authorID uint) error
	ListFollowed(ctx context.Context, p access.Principal, page, limit, recipesLimit int) ([]Subscription, int64, error)
}

type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	recipeRepo repository.RecipeRepository
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	recipeRepo repository.RecipeRepository,
) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
	}
}

// checkTarget runs the checks shared by follow and unfollow
func (s *followService) checkTarget(ctx context.Context, p access.Principal, authorID uint) (*model.User, error) {
	if err := p.RequireAuthenticated(); err != nil {
		return nil, err
	}
	// 자기 자신은 항상 거부
	if p.UserID == authorID {
		return nil, ErrSelfFollow
	}

	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return author, nil
}

func (s *followService) Follow(ctx context.Context, p access.Principal, authorID uint, recipesLimit int) (*Subscription, error) {
	author, err := s.checkTarget(ctx, p, authorID)
	if err != nil {
		return nil, err
	}

	exists, err := s.followRepo.Exists(ctx, p.UserID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFollowing
	}

	if err := s.followRepo.Create(ctx, p.UserID, authorID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}

	logger.Info("User subscribed to author", map[string]interface{}{
		"user_id":   p.UserID,
		"author_id": authorID,
	})
	return s.subscription(ctx, author, recipesLimit)
}

func (s *followService) Unfollow(ctx context.Context, p access.Principal, authorID uint) error {
	if _, err := s.checkTarget(ctx, p, authorID); err != nil {
		return err
	}

	deleted, err := s.followRepo.Delete(ctx, p.UserID, authorID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFollowing
	}

	logger.Info("User unsubscribed from author", map[string]interface{}{
		"user_id":   p.UserID,
		"author_id": authorID,
	})
	return nil
}

func (s *followService) ListFollowed(ctx context.Context, p access.Principal, page, limit, recipesLimit int) ([]Subscription, int64, error) {
	if err := p.RequireAuthenticated(); err != nil {
		return nil, 0, err
	}
	offset, limit := pageBounds(page, limit)

	authors, total, err := s.followRepo.FindFollowedAuthors(ctx, p.UserID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	subs := make([]Subscription, 0, len(authors))
	for i := range authors {
		sub, err := s.subscription(ctx, &authors[i], recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		subs = append(subs, *sub)
	}
	return subs, total, nil
}

// subscription loads the recipe preview; recipesLimit <= 0 returns every recipe
func (s *followService) subscription(ctx context.Context, author *model.User, recipesLimit int) (*Subscription, error) {
	recipes, err := s.recipeRepo.FindByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipeRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	return &Subscription{
		Author:       author,
		IsSubscribed: true,
		Recipes:      recipes,
		RecipesCount: count,
	}, nil
}
