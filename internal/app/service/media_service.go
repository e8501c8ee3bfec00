package service

import (
	"context"
	"errors"

	"github.com/ikkim/foodgram-backend/internal/app/repository"
	"github.com/ikkim/foodgram-backend/internal/observability"
	"github.com/ikkim/foodgram-backend/internal/storage"
	"github.com/ikkim/foodgram-backend/pkg/logger"
)

const orphanPurgeBatchSize = 100

// orphanMaxAttempts is how many failed deletions an orphan gets before it is dropped from the queue
const orphanMaxAttempts = 10

type MediaService interface {
	// PurgeOrphans deletes queued images from storage and returns how many were removed.
	// Failed deletions stay queued behind fresh orphans until orphanMaxAttempts is reached.
	PurgeOrphans(ctx context.Context) (int, error)
}

type mediaService struct {
	orphanRepo repository.OrphanImageRepository
	images     storage.ImageStorage
}

func NewMediaService(orphanRepo repository.OrphanImageRepository, images storage.ImageStorage) MediaService {
	return &mediaService{
		orphanRepo: orphanRepo,
		images:     images,
	}
}

func (s *mediaService) PurgeOrphans(ctx context.Context) (int, error) {
	orphans, err := s.orphanRepo.FindBatch(ctx, orphanPurgeBatchSize)
	if err != nil {
		return 0, err
	}
	if len(orphans) == 0 {
		return 0, nil
	}

	logger.Info("Purging orphan images", map[string]interface{}{
		"count": len(orphans),
	})

	purged, abandoned := 0, 0
	for _, orphan := range orphans {
		if err := ctx.Err(); err != nil {
			return purged, err
		}

		if orphan.Attempts >= orphanMaxAttempts {
			logger.Warn("Giving up on orphan image", map[string]interface{}{
				"orphan_id": orphan.ID,
				"url":       orphan.URL,
				"attempts":  orphan.Attempts,
			})
			if err := s.orphanRepo.Delete(ctx, orphan.ID); err != nil {
				return purged, err
			}
			observability.OrphanImagesPurged.WithLabelValues("abandoned").Inc()
			abandoned++
			continue
		}

		err := s.images.Delete(ctx, orphan.URL)
		if err != nil && !errors.Is(err, storage.ErrForeignURL) {
			observability.OrphanImagesPurged.WithLabelValues("failed").Inc()
			logger.Warn("Failed to delete orphan image, will retry", map[string]interface{}{
				"orphan_id": orphan.ID,
				"url":       orphan.URL,
				"attempts":  orphan.Attempts + 1,
				"error":     err.Error(),
			})
			if err := s.orphanRepo.IncrementAttempts(ctx, orphan.ID); err != nil {
				logger.Error("Failed to record orphan image attempt", err, map[string]interface{}{
					"orphan_id": orphan.ID,
				})
			}
			continue
		}
		if errors.Is(err, storage.ErrForeignURL) {
			// 다른 저장소의 URL은 삭제할 수 없으므로 기록만 제거
			logger.Warn("Dropping orphan image from another storage", map[string]interface{}{
				"url": orphan.URL,
			})
		}

		if err := s.orphanRepo.Delete(ctx, orphan.ID); err != nil {
			return purged, err
		}
		observability.OrphanImagesPurged.WithLabelValues("deleted").Inc()
		purged++
	}

	logger.Info("Orphan images purged", map[string]interface{}{
		"purged":    purged,
		"abandoned": abandoned,
		"failed":    len(orphans) - purged - abandoned,
	})
	return purged, nil
}
