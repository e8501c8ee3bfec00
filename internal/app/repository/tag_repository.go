package repository

import (
	"context"
	"errors"

	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

type TagRepository interface {
	FindAll(ctx context.Context) ([]model.Tag, error)
	FindByID(ctx context.Context, id uint) (*model.Tag, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) FindAll(ctx context.Context) ([]model.Tag, error) {
	logger.Debug("Finding all tags in database")

	var tags []model.Tag
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tags).Error; err != nil {
		logger.Error("Failed to find tags in database", err)
		return nil, err
	}

	logger.Debug("Tags found in database", map[string]interface{}{
		"count": len(tags),
	})
	return tags, nil
}

func (r *tagRepository) FindByID(ctx context.Context, id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find tag by ID in database", err, map[string]interface{}{
				"tag_id": id,
			})
		}
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Tag, error) {
	if len(ids) == 0 {
		return []model.Tag{}, nil
	}

	var tags []model.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&tags).Error; err != nil {
		logger.Error("Failed to find tags by IDs in database", err, map[string]interface{}{
			"ids": ids,
		})
		return nil, err
	}
	return tags, nil
}
