package service

import (
	"context"
	"errors"
	"time"

	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/app/repository"
	"github.com/ikkim/foodgram-backend/internal/observability"
	"github.com/ikkim/foodgram-backend/pkg/logger"
	"github.com/ikkim/foodgram-backend/pkg/redis"
	"gorm.io/gorm"
)

const (
	tagListCacheKey = "tags:all"
	tagListCacheTTL = 10 * time.Minute
)

type TagService interface {
	ListTags(ctx context.Context) ([]model.Tag, error)
	GetTag(ctx context.Context, id uint) (*model.Tag, error)
	// InvalidateCache drops the cached tag list so the next read goes to the database
	InvalidateCache(ctx context.Context) error
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

// ListTags 태그 목록 조회 (Redis 캐시 우선)
func (s *tagService) ListTags(ctx context.Context) ([]model.Tag, error) {
	var cached []model.Tag
	hit, err := redis.GetJSON(ctx, tagListCacheKey, &cached)
	switch {
	case err != nil:
		observability.TagCacheLookups.WithLabelValues("error").Inc()
		logger.Warn("Tag cache read failed, falling back to database", map[string]interface{}{
			"error": err.Error(),
		})
	case hit:
		observability.TagCacheLookups.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		observability.TagCacheLookups.WithLabelValues("miss").Inc()
	}

	tags, err := s.tagRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := redis.SetJSON(ctx, tagListCacheKey, tags, tagListCacheTTL); err != nil {
		logger.Warn("Failed to cache tag list", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return tags, nil
}

// GetTag 태그 단건 조회
func (s *tagService) GetTag(ctx context.Context, id uint) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) InvalidateCache(ctx context.Context) error {
	if err := redis.Delete(ctx, tagListCacheKey); err != nil {
		logger.Error("Failed to invalidate tag cache", err)
		return err
	}
	logger.Info("Tag cache invalidated")
	return nil
}
