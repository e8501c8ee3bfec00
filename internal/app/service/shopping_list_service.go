package service

import (
	"context"

	"github.com/ikkim/foodgram-backend/internal/access"
	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/app/repository"
	"github.com/ikkim/foodgram-backend/pkg/logger"
)

type ShoppingListService interface {
	// BuildShoppingList returns an empty slice for an empty cart
	BuildShoppingList(ctx context.Context, p access.Principal) ([]model.ShoppingListItem, error)
}

type shoppingListService struct {
	shoppingListRepo repository.ShoppingListRepository
}

func NewShoppingListService(shoppingListRepo repository.ShoppingListRepository) ShoppingListService {
	return &shoppingListService{shoppingListRepo: shoppingListRepo}
}

func (s *shoppingListService) BuildShoppingList(ctx context.Context, p access.Principal) ([]model.ShoppingListItem, error) {
	if err := p.RequireAuthenticated(); err != nil {
		return nil, err
	}

	items, err := s.shoppingListRepo.Aggregate(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	logger.Info("Shopping list built", map[string]interface{}{
		"user_id": p.UserID,
		"rows":    len(items),
	})
	return items, nil
}
