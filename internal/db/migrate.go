package db

import (
	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every persisted model in migration order
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Ingredient{},
		&model.Tag{},
		&model.Recipe{},
		&model.IngredientLine{},
		&model.RecipeTag{},
		&model.Favorite{},
		&model.CartItem{},
		&model.Follow{},
		&model.OrphanImage{},
	}
}

// DefaultTags are created on first migration
var DefaultTags = []model.Tag{
	{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
}

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := SeedTags(DB); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// SeedTags 기본 태그 생성 (이미 있으면 건너뜀)
func SeedTags(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Tag{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Tags already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding tag data...")

	return db.Transaction(func(tx *gorm.DB) error {
		for _, tag := range DefaultTags {
			tag := tag
			if err := tag.Validate(); err != nil {
				return err
			}
			if err := tx.Create(&tag).Error; err != nil {
				logger.Error("Failed to create tag", err, map[string]interface{}{
					"tag": tag.Name,
				})
				return err
			}
		}

		logger.Info("Tags seeded successfully", map[string]interface{}{
			"total_tags": len(DefaultTags),
		})
		return nil
	})
}
