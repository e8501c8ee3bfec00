package repository

import (
	"context"

	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository interface {
	Create(ctx context.Context, userID, authorID uint) error
	Exists(ctx context.Context, userID, authorID uint) (bool, error)
	Delete(ctx context.Context, userID, authorID uint) (bool, error)
	FindFollowedAuthors(ctx context.Context, userID uint, offset, limit int) ([]model.User, int64, error)
	FollowedAmong(ctx context.Context, userID uint, authorIDs []uint) (map[uint]bool, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, userID, authorID uint) error {
	logger.Debug("Creating follow in database", map[string]interface{}{
		"user_id":   userID,
		"author_id": authorID,
	})

	follow := &model.Follow{UserID: userID, AuthorID: authorID}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(follow).Error; err != nil {
		logger.Error("Failed to create follow in database", err, map[string]interface{}{
			"user_id":   userID,
			"author_id": authorID,
		})
		return err
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) Delete(ctx context.Context, userID, authorID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&model.Follow{})
	if result.Error != nil {
		logger.Error("Failed to delete follow from database", result.Error, map[string]interface{}{
			"user_id":   userID,
			"author_id": authorID,
		})
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindFollowedAuthors pages through the authors userID follows, oldest subscription first
func (r *followRepository) FindFollowedAuthors(ctx context.Context, userID uint, offset, limit int) ([]model.User, int64, error) {
	logger.Debug("Finding followed authors in database", map[string]interface{}{
		"user_id": userID,
		"offset":  offset,
		"limit":   limit,
	})

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.User{}).
			Joins("JOIN follows ON follows.author_id = users.id").
			Where("follows.user_id = ?", userID)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		logger.Error("Failed to count followed authors in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, 0, err
	}

	var authors []model.User
	err := base().
		Select("users.*").
		Order("follows.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&authors).Error
	if err != nil {
		logger.Error("Failed to find followed authors in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, 0, err
	}

	logger.Debug("Followed authors found in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(authors),
		"total":   total,
	})
	return authors, total, nil
}

// FollowedAmong returns the subset of authorIDs that userID follows
func (r *followRepository) FollowedAmong(ctx context.Context, userID uint, authorIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool, len(authorIDs))
	if userID == 0 || len(authorIDs) == 0 {
		return result, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		logger.Error("Failed to load follow flags from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
