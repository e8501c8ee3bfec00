package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/app/repository"
	"github.com/ikkim/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

type IngredientService interface {
	ListIngredients(ctx context.Context, namePrefix string) ([]model.Ingredient, error)
	GetIngredient(ctx context.Context, id uint) (*model.Ingredient, error)
	// ImportIngredients adds catalog entries, skipping ones that already exist
	ImportIngredients(ctx context.Context, ingredients []model.Ingredient) (int, error)
}

type ingredientService struct {
	ingredientRepo repository.IngredientRepository
}

func NewIngredientService(ingredientRepo repository.IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepo: ingredientRepo}
}

func (s *ingredientService) ListIngredients(ctx context.Context, namePrefix string) ([]model.Ingredient, error) {
	return s.ingredientRepo.FindAll(ctx, strings.TrimSpace(namePrefix))
}

func (s *ingredientService) GetIngredient(ctx context.Context, id uint) (*model.Ingredient, error) {
	ingredient, err := s.ingredientRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return ingredient, nil
}

func (s *ingredientService) ImportIngredients(ctx context.Context, ingredients []model.Ingredient) (int, error) {
	logger.Info("Importing ingredients", map[string]interface{}{
		"rows": len(ingredients),
	})

	created := 0
	for i := range ingredients {
		ing := ingredients[i]
		ing.Name = strings.TrimSpace(ing.Name)
		ing.MeasurementUnit = model.MeasurementUnit(strings.TrimSpace(string(ing.MeasurementUnit)))

		if ing.Name == "" {
			return created, fmt.Errorf("row %d: ingredient name is empty", i+1)
		}
		if !ing.MeasurementUnit.IsValid() {
			return created, fmt.Errorf("row %d: unknown measurement unit %q", i+1, ing.MeasurementUnit)
		}

		inserted, err := s.ingredientRepo.FirstOrCreate(ctx, &ing)
		if err != nil {
			return created, fmt.Errorf("row %d: %w", i+1, err)
		}
		if inserted {
			created++
		}
	}

	logger.Info("Ingredients imported", map[string]interface{}{
		"rows":    len(ingredients),
		"created": created,
	})
	return created, nil
}
