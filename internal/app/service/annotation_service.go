package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/foodgram-backend/internal/access"
	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/app/repository"
	"github.com/ikkim/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

// AnnotationService toggles favorites and cart items. Repeating an Add or a
// Remove is an error, not a no-op.
type AnnotationService interface {
	Add(ctx context.Context, p access.Principal, kind model.AnnotationKind, recipeID uint) (*model.Recipe, error)
	Remove(ctx context.Context, p access.Principal, kind model.AnnotationKind, recipeID uint) error
}

type annotationService struct {
	annotationRepo repository.AnnotationRepository
	recipeRepo     repository.RecipeRepository
}

func NewAnnotationService(annotationRepo repository.AnnotationRepository, recipeRepo repository.RecipeRepository) AnnotationService {
	return &annotationService{
		annotationRepo: annotationRepo,
		recipeRepo:     recipeRepo,
	}
}

// annotationErrors returns the (already exists, not present) errors for kind
func annotationErrors(kind model.AnnotationKind) (error, error) {
	if kind == model.AnnotationCart {
		return ErrCartExists, ErrCartNotFound
	}
	return ErrFavoriteExists, ErrFavoriteNotFound
}

func (s *annotationService) loadRecipe(ctx context.Context, p access.Principal, kind model.AnnotationKind, recipeID uint) (*model.Recipe, error) {
	if err := p.RequireAuthenticated(); err != nil {
		return nil, err
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown annotation kind %q", kind)
	}

	recipe, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *annotationService) Add(ctx context.Context, p access.Principal, kind model.AnnotationKind, recipeID uint) (*model.Recipe, error) {
	recipe, err := s.loadRecipe(ctx, p, kind, recipeID)
	if err != nil {
		return nil, err
	}
	errExists, _ := annotationErrors(kind)

	exists, err := s.annotationRepo.Exists(ctx, kind, p.UserID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Warn("Annotation already exists", map[string]interface{}{
			"kind":      kind,
			"user_id":   p.UserID,
			"recipe_id": recipeID,
		})
		return nil, errExists
	}

	if err := s.annotationRepo.Create(ctx, kind, p.UserID, recipeID); err != nil {
		// 동시 요청은 유니크 인덱스에서 걸러짐
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errExists
		}
		return nil, err
	}

	logger.Info("Annotation added", map[string]interface{}{
		"kind":      kind,
		"user_id":   p.UserID,
		"recipe_id": recipeID,
	})
	return recipe, nil
}

func (s *annotationService) Remove(ctx context.Context, p access.Principal, kind model.AnnotationKind, recipeID uint) error {
	if _, err := s.loadRecipe(ctx, p, kind, recipeID); err != nil {
		return err
	}
	_, errMissing := annotationErrors(kind)

	deleted, err := s.annotationRepo.Delete(ctx, kind, p.UserID, recipeID)
	if err != nil {
		return err
	}
	if !deleted {
		return errMissing
	}

	logger.Info("Annotation removed", map[string]interface{}{
		"kind":      kind,
		"user_id":   p.UserID,
		"recipe_id": recipeID,
	})
	return nil
}
