// Package seed loads catalog data and builds demo content for development.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/pkg/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DemoPassword is the password of every generated user
const DemoPassword = "password123"

// Options controls how much demo content is generated
type Options struct {
	Users          int
	RecipesPerUser int
	MaxIngredients int
}

// Summary counts what a demo run created
type Summary struct {
	Users     int
	Recipes   int
	Follows   int
	Favorites int
	CartItems int
}

// Factory builds domain entities and persists them to the database
type Factory struct {
	db           *gorm.DB
	rnd          *rand.Rand
	passwordHash string
	nextID       int
}

func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		// #nosec G404: acceptable for seeding
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a generated user; overrides run before saving
func (f *Factory) CreateUser(overrides ...func(*model.User)) (*model.User, error) {
	if f.passwordHash == "" {
		hash, err := util.HashPassword(DemoPassword)
		if err != nil {
			return nil, err
		}
		f.passwordHash = hash
	}

	f.nextID++
	person := gofakeit.Person()
	user := &model.User{
		Email:        fmt.Sprintf("demo%d.%s", f.nextID, gofakeit.Email()),
		Username:     fmt.Sprintf("%s%d", gofakeit.Username(), f.nextID),
		FirstName:    person.FirstName,
		LastName:     person.LastName,
		PasswordHash: f.passwordHash,
		Role:         model.RoleUser,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateRecipe persists a generated recipe with up to maxIngredients distinct
// ingredients from the catalog and a random subset of tags
func (f *Factory) CreateRecipe(author *model.User, ingredients []model.Ingredient, tags []model.Tag, maxIngredients int, overrides ...func(*model.Recipe)) (*model.Recipe, error) {
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("ingredient catalog is empty")
	}
	if maxIngredients <= 0 || maxIngredients > len(ingredients) {
		maxIngredients = len(ingredients)
	}

	recipe := &model.Recipe{
		Name:        gofakeit.Dessert(),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		CookTime:    gofakeit.Number(5, 180),
		AuthorID:    &author.ID,
		CreatedAt:   time.Now().Add(-time.Duration(f.rnd.Intn(90*24)) * time.Hour),
	}
	for _, override := range overrides {
		override(recipe)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}

		count := 1 + f.rnd.Intn(maxIngredients)
		lines := make([]model.IngredientLine, 0, count)
		for _, idx := range f.rnd.Perm(len(ingredients))[:count] {
			lines = append(lines, model.IngredientLine{
				RecipeID:     recipe.ID,
				IngredientID: ingredients[idx].ID,
				Quantity:     gofakeit.Number(1, 500),
			})
		}
		if err := tx.Omit(clause.Associations).Create(&lines).Error; err != nil {
			return err
		}
		recipe.IngredientLines = lines

		var recipeTags []model.RecipeTag
		for _, tag := range tags {
			if gofakeit.Bool() {
				recipeTags = append(recipeTags, model.RecipeTag{RecipeID: recipe.ID, TagID: tag.ID})
			}
		}
		if len(recipeTags) > 0 {
			if err := tx.Omit(clause.Associations).Create(&recipeTags).Error; err != nil {
				return err
			}
		}
		recipe.RecipeTags = recipeTags
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// Demo generates users with recipes, then links them with follows,
// favorites and cart items. The ingredient catalog must already be loaded.
func Demo(db *gorm.DB, opts Options) (*Summary, error) {
	if opts.Users <= 0 {
		return nil, fmt.Errorf("users must be positive")
	}
	if opts.MaxIngredients <= 0 {
		opts.MaxIngredients = 6
	}

	var ingredients []model.Ingredient
	if err := db.Order("id").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	var tags []model.Tag
	if err := db.Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}

	f := NewFactory(db)
	summary := &Summary{}

	users := make([]*model.User, 0, opts.Users)
	var recipes []*model.Recipe
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return summary, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
		summary.Users++

		for j := 0; j < opts.RecipesPerUser; j++ {
			recipe, err := f.CreateRecipe(user, ingredients, tags, opts.MaxIngredients)
			if err != nil {
				return summary, fmt.Errorf("create recipe: %w", err)
			}
			recipes = append(recipes, recipe)
			summary.Recipes++
		}
	}

	for _, user := range users {
		for _, author := range users {
			if author.ID == user.ID || !gofakeit.Bool() {
				continue
			}
			if err := db.Omit(clause.Associations).Create(&model.Follow{UserID: user.ID, AuthorID: author.ID}).Error; err != nil {
				return summary, fmt.Errorf("create follow: %w", err)
			}
			summary.Follows++
		}

		for _, recipe := range recipes {
			if f.rnd.Intn(4) == 0 {
				if err := db.Omit(clause.Associations).Create(&model.Favorite{UserID: user.ID, RecipeID: recipe.ID}).Error; err != nil {
					return summary, fmt.Errorf("create favorite: %w", err)
				}
				summary.Favorites++
			}
			if f.rnd.Intn(6) == 0 {
				if err := db.Omit(clause.Associations).Create(&model.CartItem{UserID: user.ID, RecipeID: recipe.ID}).Error; err != nil {
					return summary, fmt.Errorf("create cart item: %w", err)
				}
				summary.CartItems++
			}
		}
	}

	return summary, nil
}
