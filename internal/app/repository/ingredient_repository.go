package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

type IngredientRepository interface {
	FindAll(ctx context.Context, namePrefix string) ([]model.Ingredient, error)
	FindByID(ctx context.Context, id uint) (*model.Ingredient, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Ingredient, error)
	// FirstOrCreate returns true when a new row was inserted
	FirstOrCreate(ctx context.Context, ingredient *model.Ingredient) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// escapeLike escapes LIKE wildcards so the prefix is matched literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *ingredientRepository) FindAll(ctx context.Context, namePrefix string) ([]model.Ingredient, error) {
	logger.Debug("Finding ingredients in database", map[string]interface{}{
		"name_prefix": namePrefix,
	})

	query := r.db.WithContext(ctx).Model(&model.Ingredient{})
	if namePrefix != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, escapeLike(strings.ToLower(namePrefix))+"%")
	}

	var ingredients []model.Ingredient
	if err := query.Order("name ASC").Order("id ASC").Find(&ingredients).Error; err != nil {
		logger.Error("Failed to find ingredients in database", err, map[string]interface{}{
			"name_prefix": namePrefix,
		})
		return nil, err
	}

	logger.Debug("Ingredients found in database", map[string]interface{}{
		"count": len(ingredients),
	})
	return ingredients, nil
}

func (r *ingredientRepository) FindByID(ctx context.Context, id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find ingredient by ID in database", err, map[string]interface{}{
				"ingredient_id": id,
			})
		}
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Ingredient, error) {
	if len(ids) == 0 {
		return []model.Ingredient{}, nil
	}

	var ingredients []model.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		logger.Error("Failed to find ingredients by IDs in database", err, map[string]interface{}{
			"ids": ids,
		})
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) FirstOrCreate(ctx context.Context, ingredient *model.Ingredient) (bool, error) {
	result := r.db.WithContext(ctx).
		Where(model.Ingredient{Name: ingredient.Name, MeasurementUnit: ingredient.MeasurementUnit}).
		FirstOrCreate(ingredient)
	if result.Error != nil {
		logger.Error("Failed to upsert ingredient in database", result.Error, map[string]interface{}{
			"name": ingredient.Name,
			"unit": ingredient.MeasurementUnit,
		})
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ingredientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Ingredient{}).Count(&count).Error
	return count, err
}
