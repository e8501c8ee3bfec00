package repository

import (
	"context"

	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrphanImageRepository interface {
	Create(ctx context.Context, url string) error
	FindBatch(ctx context.Context, limit int) ([]model.OrphanImage, error)
	Delete(ctx context.Context, id uint) error
	IncrementAttempts(ctx context.Context, id uint) error
}

type orphanImageRepository struct {
	db *gorm.DB
}

func NewOrphanImageRepository(db *gorm.DB) OrphanImageRepository {
	return &orphanImageRepository{db: db}
}

func (r *orphanImageRepository) Create(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}

	if err := r.db.WithContext(ctx).Create(&model.OrphanImage{URL: url}).Error; err != nil {
		logger.Error("Failed to record orphan image", err, map[string]interface{}{
			"url": url,
		})
		return err
	}

	logger.Debug("Orphan image recorded", map[string]interface{}{
		"url": url,
	})
	return nil
}

// FindBatch returns the least retried orphans first, oldest first within the same attempt count
func (r *orphanImageRepository) FindBatch(ctx context.Context, limit int) ([]model.OrphanImage, error) {
	var images []model.OrphanImage
	err := r.db.WithContext(ctx).Order("attempts ASC, id ASC").Limit(limit).Find(&images).Error
	if err != nil {
		logger.Error("Failed to load orphan images", err)
		return nil, err
	}
	return images, nil
}

func (r *orphanImageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.OrphanImage{}, id).Error
}

func (r *orphanImageRepository) IncrementAttempts(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.OrphanImage{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}
