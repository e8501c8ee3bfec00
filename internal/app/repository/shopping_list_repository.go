package repository

import (
	"context"

	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

type ShoppingListRepository interface {
	Aggregate(ctx context.Context, userID uint) ([]model.ShoppingListItem, error)
}

type shoppingListRepository struct {
	db *gorm.DB
}

func NewShoppingListRepository(db *gorm.DB) ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

// Aggregate sums the ingredient lines of every recipe in the user's cart,
// grouped by ingredient name and unit, ordered by name
func (r *shoppingListRepository) Aggregate(ctx context.Context, userID uint) ([]model.ShoppingListItem, error) {
	logger.Debug("Aggregating shopping list in database", map[string]interface{}{
		"user_id": userID,
	})

	items := []model.ShoppingListItem{}
	err := r.db.WithContext(ctx).
		Table("ingredient_lines").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_lines.quantity) AS total_quantity").
		Joins("JOIN ingredients ON ingredients.id = ingredient_lines.ingredient_id").
		Joins("JOIN cart_items ON cart_items.recipe_id = ingredient_lines.recipe_id").
		Where("cart_items.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Order("ingredients.measurement_unit ASC").
		Scan(&items).Error
	if err != nil {
		logger.Error("Failed to aggregate shopping list in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Shopping list aggregated in database", map[string]interface{}{
		"user_id": userID,
		"rows":    len(items),
	})
	return items, nil
}
