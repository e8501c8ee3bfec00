package scheduler

import (
	"context"
	"time"

	"github.com/ikkim/foodgram-backend/internal/app/service"
	"github.com/ikkim/foodgram-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

const purgeTimeout = 10 * time.Minute

// ImageCleanupScheduler 고아 이미지 정리 스케줄러
type ImageCleanupScheduler struct {
	cron         *cron.Cron
	spec         string
	mediaService service.MediaService
}

// NewImageCleanupScheduler 이미지 정리 스케줄러 생성 (spec: cron 표현식)
func NewImageCleanupScheduler(mediaService service.MediaService, spec string) *ImageCleanupScheduler {
	return &ImageCleanupScheduler{
		cron:         cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		spec:         spec,
		mediaService: mediaService,
	}
}

// RunOnce purges one round of orphan images
func (s *ImageCleanupScheduler) RunOnce(ctx context.Context) {
	logger.Info("Starting scheduled orphan image cleanup")

	ctx, cancel := context.WithTimeout(ctx, purgeTimeout)
	defer cancel()

	purged, err := s.mediaService.PurgeOrphans(ctx)
	if err != nil {
		logger.Error("Failed to purge orphan images", err, map[string]interface{}{
			"purged": purged,
		})
		return
	}

	logger.Info("Orphan image cleanup finished", map[string]interface{}{
		"purged": purged,
	})
}

// Start 스케줄러 시작
func (s *ImageCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		logger.Error("Failed to add cron job for image cleanup", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Image cleanup scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

// Stop 스케줄러 중지; 실행 중인 작업이 끝날 때까지 기다린다
func (s *ImageCleanupScheduler) Stop() {
	logger.Info("Stopping image cleanup scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Image cleanup scheduler stopped")
}
