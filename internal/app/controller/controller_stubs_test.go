package controller

import (
	"context"

	"github.com/ikkim/foodgram-backend/internal/access"
	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/app/service"
)

type stubRecipeService struct {
	lastInput service.RecipeInput
	lastQuery service.RecipeQuery
	lastID    uint
	view      *service.RecipeView
	err       error
}

func (s *stubRecipeService) CreateRecipe(ctx context.Context, p access.Principal, input service.RecipeInput) (*service.RecipeView, error) {
	s.lastInput = input
	return s.view, s.err
}

func (s *stubRecipeService) UpdateRecipe(ctx context.Context, p access.Principal, recipeID uint, input service.RecipeInput) (*service.RecipeView, error) {
	s.lastID = recipeID
	s.lastInput = input
	return s.view, s.err
}

func (s *stubRecipeService) DeleteRecipe(ctx context.Context, p access.Principal, recipeID uint) error {
	s.lastID = recipeID
	return s.err
}

func (s *stubRecipeService) GetRecipe(ctx context.Context, p access.Principal, recipeID uint) (*service.RecipeView, error) {
	s.lastID = recipeID
	return s.view, s.err
}

func (s *stubRecipeService) ListRecipes(ctx context.Context, p access.Principal, query service.RecipeQuery) ([]service.RecipeView, int64, error) {
	s.lastQuery = query
	if s.view == nil {
		return nil, 0, s.err
	}
	return []service.RecipeView{*s.view}, 1, s.err
}

type stubAnnotationService struct {
	lastKind model.AnnotationKind
	recipe   *model.Recipe
	err      error
}

func (s *stubAnnotationService) Add(ctx context.Context, p access.Principal, kind model.AnnotationKind, recipeID uint) (*model.Recipe, error) {
	s.lastKind = kind
	return s.recipe, s.err
}

func (s *stubAnnotationService) Remove(ctx context.Context, p access.Principal, kind model.AnnotationKind, recipeID uint) error {
	s.lastKind = kind
	return s.err
}

type stubShoppingListService struct {
	items []model.ShoppingListItem
	err   error
}

func (s *stubShoppingListService) BuildShoppingList(ctx context.Context, p access.Principal) ([]model.ShoppingListItem, error) {
	if err := p.RequireAuthenticated(); err != nil {
		return nil, err
	}
	return s.items, s.err
}
