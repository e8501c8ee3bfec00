package repository

import (
	"context"
	"errors"

	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

// RecipeFilter narrows a recipe listing. Nil pointers mean "no filter".
type RecipeFilter struct {
	AuthorID         *uint
	TagSlugs         []string
	IsFavorited      *bool
	IsInShoppingCart *bool
	Offset           int
	Limit            int
}

type RecipeRepository interface {
	Create(tx *gorm.DB, recipe *model.Recipe) error
	UpdateFields(tx *gorm.DB, recipe *model.Recipe) error
	ReplaceChildren(tx *gorm.DB, recipeID uint, tagIDs []uint, lines []model.IngredientLine) error
	FindByID(ctx context.Context, id uint) (*model.Recipe, error)
	FindDetailed(ctx context.Context, viewerID uint, id uint) (*model.Recipe, error)
	FindWithFilter(ctx context.Context, viewerID uint, filter RecipeFilter) ([]model.Recipe, int64, error)
	FindByAuthor(ctx context.Context, authorID uint, limit int) ([]model.Recipe, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

const (
	favoritedExpr = "EXISTS (SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?)"
	inCartExpr    = "EXISTS (SELECT 1 FROM cart_items WHERE cart_items.recipe_id = recipes.id AND cart_items.user_id = ?)"
	hasTagExpr    = "EXISTS (SELECT 1 FROM recipe_tags JOIN tags ON tags.id = recipe_tags.tag_id WHERE recipe_tags.recipe_id = recipes.id AND tags.slug IN ?)"
)

func (r *recipeRepository) Create(tx *gorm.DB, recipe *model.Recipe) error {
	logger.Debug("Creating recipe in database", map[string]interface{}{
		"name":      recipe.Name,
		"author_id": recipe.AuthorID,
	})

	if err := tx.Omit("Author", "IngredientLines", "RecipeTags").Create(recipe).Error; err != nil {
		logger.Error("Failed to create recipe in database", err, map[string]interface{}{
			"name": recipe.Name,
		})
		return err
	}

	logger.Debug("Recipe created in database", map[string]interface{}{
		"recipe_id": recipe.ID,
	})
	return nil
}

// UpdateFields writes the scalar columns; author is never changed
func (r *recipeRepository) UpdateFields(tx *gorm.DB, recipe *model.Recipe) error {
	logger.Debug("Updating recipe fields in database", map[string]interface{}{
		"recipe_id": recipe.ID,
	})

	err := tx.Model(&model.Recipe{ID: recipe.ID}).
		Select("name", "description", "cook_time", "image").
		Updates(map[string]interface{}{
			"name":        recipe.Name,
			"description": recipe.Description,
			"cook_time":   recipe.CookTime,
			"image":       recipe.Image,
		}).Error
	if err != nil {
		logger.Error("Failed to update recipe fields in database", err, map[string]interface{}{
			"recipe_id": recipe.ID,
		})
		return err
	}
	return nil
}

// ReplaceChildren makes the recipe's tag links and ingredient lines equal to
// the given sets. Only the difference is written: removed rows are deleted,
// changed quantities updated and new rows inserted.
func (r *recipeRepository) ReplaceChildren(tx *gorm.DB, recipeID uint, tagIDs []uint, lines []model.IngredientLine) error {
	// 태그 diff
	var currentTags []model.RecipeTag
	if err := tx.Where("recipe_id = ?", recipeID).Find(&currentTags).Error; err != nil {
		return err
	}

	wantTags := make(map[uint]bool, len(tagIDs))
	for _, id := range tagIDs {
		wantTags[id] = true
	}

	var removeTags []uint
	for _, rt := range currentTags {
		if wantTags[rt.TagID] {
			delete(wantTags, rt.TagID)
			continue
		}
		removeTags = append(removeTags, rt.TagID)
	}

	if len(removeTags) > 0 {
		if err := tx.Where("recipe_id = ? AND tag_id IN ?", recipeID, removeTags).Delete(&model.RecipeTag{}).Error; err != nil {
			return err
		}
	}

	// keep insertion in request order
	var addTags []model.RecipeTag
	for _, id := range tagIDs {
		if wantTags[id] {
			addTags = append(addTags, model.RecipeTag{RecipeID: recipeID, TagID: id})
			delete(wantTags, id)
		}
	}
	if len(addTags) > 0 {
		if err := tx.Omit("Tag").Create(&addTags).Error; err != nil {
			return err
		}
	}

	// 재료 diff
	var currentLines []model.IngredientLine
	if err := tx.Where("recipe_id = ?", recipeID).Find(&currentLines).Error; err != nil {
		return err
	}

	wantLines := make(map[uint]int, len(lines))
	for _, l := range lines {
		wantLines[l.IngredientID] = l.Quantity
	}

	var removeLines []uint
	updated := 0
	for _, cur := range currentLines {
		qty, keep := wantLines[cur.IngredientID]
		if !keep {
			removeLines = append(removeLines, cur.ID)
			continue
		}
		if qty != cur.Quantity {
			if err := tx.Model(&model.IngredientLine{}).Where("id = ?", cur.ID).Update("quantity", qty).Error; err != nil {
				return err
			}
			updated++
		}
		delete(wantLines, cur.IngredientID)
	}

	if len(removeLines) > 0 {
		if err := tx.Where("id IN ?", removeLines).Delete(&model.IngredientLine{}).Error; err != nil {
			return err
		}
	}

	var addLines []model.IngredientLine
	for _, l := range lines {
		if qty, ok := wantLines[l.IngredientID]; ok {
			addLines = append(addLines, model.IngredientLine{RecipeID: recipeID, IngredientID: l.IngredientID, Quantity: qty})
			delete(wantLines, l.IngredientID)
		}
	}
	if len(addLines) > 0 {
		if err := tx.Omit("Ingredient").Create(&addLines).Error; err != nil {
			return err
		}
	}

	logger.Debug("Recipe children replaced", map[string]interface{}{
		"recipe_id":     recipeID,
		"tags_added":    len(addTags),
		"tags_removed":  len(removeTags),
		"lines_added":   len(addLines),
		"lines_updated": updated,
		"lines_removed": len(removeLines),
	})
	return nil
}

func (r *recipeRepository) FindByID(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find recipe by ID in database", err, map[string]interface{}{
				"recipe_id": id,
			})
		}
		return nil, err
	}
	return &recipe, nil
}

// withRelations preloads everything the read representation needs
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("RecipeTags", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_tags.tag_id ASC")
		}).
		Preload("RecipeTags.Tag").
		Preload("IngredientLines", func(db *gorm.DB) *gorm.DB {
			return db.Order("ingredient_lines.id ASC")
		}).
		Preload("IngredientLines.Ingredient")
}

// withAnnotations selects is_favorited / is_in_shopping_cart for the viewer.
// Anonymous viewers (id 0) get no sub-selects; the fields stay false.
func withAnnotations(db *gorm.DB, viewerID uint) *gorm.DB {
	if viewerID == 0 {
		return db
	}
	return db.Select("recipes.*, "+favoritedExpr+" AS is_favorited, "+inCartExpr+" AS is_in_shopping_cart", viewerID, viewerID)
}

func (r *recipeRepository) FindDetailed(ctx context.Context, viewerID uint, id uint) (*model.Recipe, error) {
	logger.Debug("Finding recipe with relations in database", map[string]interface{}{
		"recipe_id": id,
		"viewer_id": viewerID,
	})

	var recipe model.Recipe
	query := withAnnotations(r.db.WithContext(ctx).Model(&model.Recipe{}), viewerID)
	if err := withRelations(query).Where("recipes.id = ?", id).First(&recipe).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find recipe with relations in database", err, map[string]interface{}{
				"recipe_id": id,
			})
		}
		return nil, err
	}
	return &recipe, nil
}

func applyRecipeFilter(db *gorm.DB, viewerID uint, filter RecipeFilter) *gorm.DB {
	if filter.AuthorID != nil {
		db = db.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		db = db.Where(hasTagExpr, filter.TagSlugs)
	}
	if filter.IsFavorited != nil {
		db = annotationFilter(db, favoritedExpr, viewerID, *filter.IsFavorited)
	}
	if filter.IsInShoppingCart != nil {
		db = annotationFilter(db, inCartExpr, viewerID, *filter.IsInShoppingCart)
	}
	return db
}

func annotationFilter(db *gorm.DB, expr string, viewerID uint, want bool) *gorm.DB {
	if viewerID == 0 {
		// 비로그인 사용자는 항상 false
		if want {
			return db.Where("1 = 0")
		}
		return db
	}
	if want {
		return db.Where(expr, viewerID)
	}
	return db.Where("NOT "+expr, viewerID)
}

func (r *recipeRepository) FindWithFilter(ctx context.Context, viewerID uint, filter RecipeFilter) ([]model.Recipe, int64, error) {
	logger.Debug("Finding recipes with filter in database", map[string]interface{}{
		"viewer_id": viewerID,
		"author_id": filter.AuthorID,
		"tags":      filter.TagSlugs,
		"offset":    filter.Offset,
		"limit":     filter.Limit,
	})

	var total int64
	countQuery := applyRecipeFilter(r.db.WithContext(ctx).Model(&model.Recipe{}), viewerID, filter)
	if err := countQuery.Count(&total).Error; err != nil {
		logger.Error("Failed to count recipes in database", err)
		return nil, 0, err
	}

	var recipes []model.Recipe
	query := withAnnotations(r.db.WithContext(ctx).Model(&model.Recipe{}), viewerID)
	query = withRelations(applyRecipeFilter(query, viewerID, filter))
	err := query.
		Order("recipes.created_at DESC").
		Order("recipes.id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&recipes).Error
	if err != nil {
		logger.Error("Failed to find recipes with filter in database", err)
		return nil, 0, err
	}

	logger.Debug("Recipes found with filter in database", map[string]interface{}{
		"count": len(recipes),
		"total": total,
	})
	return recipes, total, nil
}

// FindByAuthor returns the author's first recipes by id; limit <= 0 means all
func (r *recipeRepository) FindByAuthor(ctx context.Context, authorID uint, limit int) ([]model.Recipe, error) {
	query := r.db.WithContext(ctx).Where("author_id = ?", authorID).Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recipes []model.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		logger.Error("Failed to find recipes by author in database", err, map[string]interface{}{
			"author_id": authorID,
		})
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *recipeRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the recipe together with its lines, tag links and annotations
func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	logger.Debug("Deleting recipe from database", map[string]interface{}{
		"recipe_id": id,
	})

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		children := []interface{}{
			&model.IngredientLine{},
			&model.RecipeTag{},
			&model.Favorite{},
			&model.CartItem{},
		}
		for _, child := range children {
			if err := tx.Where("recipe_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&model.Recipe{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to delete recipe from database", err, map[string]interface{}{
				"recipe_id": id,
			})
		}
		return err
	}

	logger.Debug("Recipe deleted from database", map[string]interface{}{
		"recipe_id": id,
	})
	return nil
}
