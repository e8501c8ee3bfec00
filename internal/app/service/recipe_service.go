package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ikkim/foodgram-backend/internal/access"
	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/app/repository"
	"github.com/ikkim/foodgram-backend/internal/storage"
	"github.com/ikkim/foodgram-backend/pkg/logger"
	"github.com/ikkim/foodgram-backend/pkg/util"
	"gorm.io/gorm"
)

const recipeImageFolder = "recipes"

// IngredientAmount is one submitted ingredient line
type IngredientAmount struct {
	IngredientID uint
	Quantity     int
}

// RecipeInput is the full write payload of a recipe. Image is a data URI;
// on update an empty Image keeps the stored one.
type RecipeInput struct {
	Name        string
	Description string
	CookTime    int
	Image       string
	TagIDs      []uint
	Ingredients []IngredientAmount
}

// RecipeQuery filters a recipe listing
type RecipeQuery struct {
	AuthorID         *uint
	TagSlugs         []string
	IsFavorited      *bool
	IsInShoppingCart *bool
	Page             int
	Limit            int
}

// RecipeView is a recipe annotated for the requester
type RecipeView struct {
	Recipe           *model.Recipe
	AuthorSubscribed bool
}

type RecipeService interface {
	CreateRecipe(ctx context.Context, p access.Principal, input RecipeInput) (*RecipeView, error)
	UpdateRecipe(ctx context.Context, p access.Principal, recipeID uint, input RecipeInput) (*RecipeView, error)
	DeleteRecipe(ctx context.Context, p access.Principal, recipeID uint) error
	GetRecipe(ctx context.Context, p access.Principal, recipeID uint) (*RecipeView, error)
	ListRecipes(ctx context.Context, p access.Principal, query RecipeQuery) ([]RecipeView, int64, error)
}

type recipeService struct {
	db             *gorm.DB
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	tagRepo        repository.TagRepository
	followRepo     repository.FollowRepository
	orphanRepo     repository.OrphanImageRepository
	images         storage.ImageStorage
}

func NewRecipeService(
	db *gorm.DB,
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	tagRepo repository.TagRepository,
	followRepo repository.FollowRepository,
	orphanRepo repository.OrphanImageRepository,
	images storage.ImageStorage,
) RecipeService {
	return &recipeService{
		db:             db,
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		tagRepo:        tagRepo,
		followRepo:     followRepo,
		orphanRepo:     orphanRepo,
		images:         images,
	}
}

// validatedRecipe is a RecipeInput that passed every check
type validatedRecipe struct {
	tagIDs []uint
	lines  []model.IngredientLine
	image  *util.DecodedImage
}

// validate runs every check before anything is written
func (s *recipeService) validate(ctx context.Context, input RecipeInput) (*validatedRecipe, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrRecipeNameRequired
	}
	if input.CookTime < 1 {
		return nil, ErrInvalidCookTime
	}
	if len(input.Ingredients) == 0 {
		return nil, ErrIngredientsRequired
	}

	requested := make([]uint, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		requested = append(requested, item.IngredientID)
	}
	ingredients, err := s.ingredientRepo.FindByIDs(ctx, requested)
	if err != nil {
		return nil, err
	}
	known := make(map[uint]bool, len(ingredients))
	for _, ing := range ingredients {
		known[ing.ID] = true
	}

	// 항목별로 존재 여부, 중복, 수량 순서로 검사
	seen := make(map[uint]bool, len(input.Ingredients))
	lines := make([]model.IngredientLine, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		if !known[item.IngredientID] {
			return nil, ErrIngredientNotFound
		}
		if seen[item.IngredientID] {
			return nil, ErrDuplicateIngredient
		}
		seen[item.IngredientID] = true
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		lines = append(lines, model.IngredientLine{IngredientID: item.IngredientID, Quantity: item.Quantity})
	}

	// 중복 태그는 하나로 합침
	tagSeen := make(map[uint]bool, len(input.TagIDs))
	tagIDs := make([]uint, 0, len(input.TagIDs))
	for _, id := range input.TagIDs {
		if !tagSeen[id] {
			tagSeen[id] = true
			tagIDs = append(tagIDs, id)
		}
	}
	tags, err := s.tagRepo.FindByIDs(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, ErrTagNotFound
	}

	result := &validatedRecipe{tagIDs: tagIDs, lines: lines}
	if input.Image != "" {
		img, err := util.DecodeImageDataURI(input.Image)
		if err != nil {
			return nil, ErrInvalidImage
		}
		result.image = img
	}
	return result, nil
}

func (s *recipeService) saveImage(ctx context.Context, img *util.DecodedImage) (string, error) {
	if img == nil {
		return "", nil
	}
	url, err := s.images.Save(ctx, recipeImageFolder, img.Filename, img.ContentType, img.Data)
	if err != nil {
		logger.Error("Failed to store recipe image", err, map[string]interface{}{
			"filename": img.Filename,
		})
		return "", fmt.Errorf("store recipe image: %w", err)
	}
	return url, nil
}

// discardImage queues a stored image for the cleanup job
func (s *recipeService) discardImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.orphanRepo.Create(context.WithoutCancel(ctx), url); err != nil {
		logger.Warn("Failed to queue orphan image", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
	}
}

// writeAggregate stores the scalar fields and children of a recipe in one
// transaction. A new recipe (ID 0) is inserted, an existing one updated.
func (s *recipeService) writeAggregate(ctx context.Context, recipe *model.Recipe, v *validatedRecipe) error {
	// 트랜잭션 시작
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		logger.Error("Failed to begin recipe transaction", tx.Error)
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Recipe transaction rolled back due to panic", nil, map[string]interface{}{
				"recipe_id": recipe.ID,
				"panic":     r,
			})
			panic(r)
		}
	}()

	// 1. 레시피 본문 저장
	var err error
	if recipe.ID == 0 {
		err = s.recipeRepo.Create(tx, recipe)
	} else {
		err = s.recipeRepo.UpdateFields(tx, recipe)
	}
	if err != nil {
		tx.Rollback()
		return err
	}

	// 2. 태그와 재료 교체
	if err := s.recipeRepo.ReplaceChildren(tx, recipe.ID, v.tagIDs, v.lines); err != nil {
		tx.Rollback()
		logger.Error("Failed to replace recipe children", err, map[string]interface{}{
			"recipe_id": recipe.ID,
		})
		return err
	}

	// 3. 커밋
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to commit recipe transaction", err, map[string]interface{}{
			"recipe_id": recipe.ID,
		})
		return err
	}
	return nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, p access.Principal, input RecipeInput) (*RecipeView, error) {
	if err := p.RequireAuthenticated(); err != nil {
		return nil, err
	}

	logger.Info("Creating recipe", map[string]interface{}{
		"author_id":   p.UserID,
		"name":        input.Name,
		"ingredients": len(input.Ingredients),
		"tags":        len(input.TagIDs),
	})

	v, err := s.validate(ctx, input)
	if err != nil {
		logger.Warn("Recipe validation failed", map[string]interface{}{
			"author_id": p.UserID,
			"error":     err.Error(),
		})
		return nil, err
	}

	imageURL, err := s.saveImage(ctx, v.image)
	if err != nil {
		return nil, err
	}

	authorID := p.UserID
	recipe := &model.Recipe{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		CookTime:    input.CookTime,
		Image:       imageURL,
		AuthorID:    &authorID,
	}

	if err := s.writeAggregate(ctx, recipe, v); err != nil {
		s.discardImage(ctx, imageURL)
		return nil, err
	}

	logger.Info("Recipe created successfully", map[string]interface{}{
		"recipe_id": recipe.ID,
		"author_id": p.UserID,
	})
	return s.GetRecipe(ctx, p, recipe.ID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, p access.Principal, recipeID uint, input RecipeInput) (*RecipeView, error) {
	if err := p.RequireAuthenticated(); err != nil {
		return nil, err
	}

	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := access.CanModifyRecipe(p, recipe); err != nil {
		logger.Warn("Recipe update denied", map[string]interface{}{
			"recipe_id": recipeID,
			"user_id":   p.UserID,
		})
		return nil, err
	}

	v, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	newImageURL, err := s.saveImage(ctx, v.image)
	if err != nil {
		return nil, err
	}

	oldImageURL := recipe.Image
	recipe.Name = strings.TrimSpace(input.Name)
	recipe.Description = input.Description
	recipe.CookTime = input.CookTime
	if newImageURL != "" {
		recipe.Image = newImageURL
	}

	if err := s.writeAggregate(ctx, recipe, v); err != nil {
		s.discardImage(ctx, newImageURL)
		return nil, err
	}
	if newImageURL != "" && oldImageURL != newImageURL {
		s.discardImage(ctx, oldImageURL)
	}

	logger.Info("Recipe updated successfully", map[string]interface{}{
		"recipe_id": recipeID,
		"user_id":   p.UserID,
	})
	return s.GetRecipe(ctx, p, recipeID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, p access.Principal, recipeID uint) error {
	if err := p.RequireAuthenticated(); err != nil {
		return err
	}

	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if err := access.CanModifyRecipe(p, recipe); err != nil {
		logger.Warn("Recipe deletion denied", map[string]interface{}{
			"recipe_id": recipeID,
			"user_id":   p.UserID,
		})
		return err
	}

	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	s.discardImage(ctx, recipe.Image)

	logger.Info("Recipe deleted successfully", map[string]interface{}{
		"recipe_id": recipeID,
		"user_id":   p.UserID,
	})
	return nil
}

func (s *recipeService) GetRecipe(ctx context.Context, p access.Principal, recipeID uint) (*RecipeView, error) {
	recipe, err := s.recipeRepo.FindDetailed(ctx, p.UserID, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	views, err := s.annotateAuthors(ctx, p, []model.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *recipeService) ListRecipes(ctx context.Context, p access.Principal, query RecipeQuery) ([]RecipeView, int64, error) {
	offset, limit := pageBounds(query.Page, query.Limit)

	recipes, total, err := s.recipeRepo.FindWithFilter(ctx, p.UserID, repository.RecipeFilter{
		AuthorID:         query.AuthorID,
		TagSlugs:         query.TagSlugs,
		IsFavorited:      query.IsFavorited,
		IsInShoppingCart: query.IsInShoppingCart,
		Offset:           offset,
		Limit:            limit,
	})
	if err != nil {
		return nil, 0, err
	}

	views, err := s.annotateAuthors(ctx, p, recipes)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// annotateAuthors adds the requester's subscription flag for each author
func (s *recipeService) annotateAuthors(ctx context.Context, p access.Principal, recipes []model.Recipe) ([]RecipeView, error) {
	authorIDs := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		if r.AuthorID != nil {
			authorIDs = append(authorIDs, *r.AuthorID)
		}
	}

	flags, err := s.followRepo.FollowedAmong(ctx, p.UserID, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]RecipeView, len(recipes))
	for i := range recipes {
		views[i] = RecipeView{Recipe: &recipes[i]}
		if recipes[i].AuthorID != nil {
			views[i].AuthorSubscribed = flags[*recipes[i].AuthorID]
		}
	}
	return views, nil
}

func (s *recipeService) findRecipe(ctx context.Context, id uint) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}
