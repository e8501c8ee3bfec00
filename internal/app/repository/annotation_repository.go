package repository

import (
	"context"
	"fmt"

	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnnotationRepository stores favorites and cart items. Both sets share the
// same (user_id, recipe_id) shape and are addressed by kind.
type AnnotationRepository interface {
	Create(ctx context.Context, kind model.AnnotationKind, userID, recipeID uint) error
	Exists(ctx context.Context, kind model.AnnotationKind, userID, recipeID uint) (bool, error)
	Delete(ctx context.Context, kind model.AnnotationKind, userID, recipeID uint) (bool, error)
}

type annotationRepository struct {
	db *gorm.DB
}

func NewAnnotationRepository(db *gorm.DB) AnnotationRepository {
	return &annotationRepository{db: db}
}

func annotationRow(kind model.AnnotationKind, userID, recipeID uint) (interface{}, error) {
	switch kind {
	case model.AnnotationFavorite:
		return &model.Favorite{UserID: userID, RecipeID: recipeID}, nil
	case model.AnnotationCart:
		return &model.CartItem{UserID: userID, RecipeID: recipeID}, nil
	}
	return nil, fmt.Errorf("unknown annotation kind %q", kind)
}

func (r *annotationRepository) Create(ctx context.Context, kind model.AnnotationKind, userID, recipeID uint) error {
	logger.Debug("Creating annotation in database", map[string]interface{}{
		"kind":      kind,
		"user_id":   userID,
		"recipe_id": recipeID,
	})

	row, err := annotationRow(kind, userID, recipeID)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		logger.Error("Failed to create annotation in database", err, map[string]interface{}{
			"kind":      kind,
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return err
	}
	return nil
}

func (r *annotationRepository) Exists(ctx context.Context, kind model.AnnotationKind, userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table(kind.TableName()).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check annotation in database", err, map[string]interface{}{
			"kind":      kind,
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return false, err
	}
	return count > 0, nil
}

// Delete reports whether a row was removed
func (r *annotationRepository) Delete(ctx context.Context, kind model.AnnotationKind, userID, recipeID uint) (bool, error) {
	row, err := annotationRow(kind, 0, 0)
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(row)
	if result.Error != nil {
		logger.Error("Failed to delete annotation from database", result.Error, map[string]interface{}{
			"kind":      kind,
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return false, result.Error
	}

	logger.Debug("Annotation deleted from database", map[string]interface{}{
		"kind":      kind,
		"user_id":   userID,
		"recipe_id": recipeID,
		"deleted":   result.RowsAffected,
	})
	return result.RowsAffected > 0, nil
}
