package app

import (
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/gcp"
	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/logger"
	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/openai"
	"github.com/educoreai-lotus/contentstudio-backend/internal/services"
	"github.com/educoreai-lotus/contentstudio-backend/internal/sse"
)

type Services struct {
	AI              openai.Client
	Bucket          gcp.BucketService
	Bus             services.SSEBus
	Notifier        services.ContentNotifier
	ContentHistory  services.ContentHistoryService
	QualityCheck    services.QualityCheckService
	Narration       services.NarrationService
	ContentMutation services.ContentMutationService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, hub *sse.SSEHub) (Services, error) {
	log.Info("Wiring services...")

	// AI, storage, and the bus are optional collaborators. Missing config
	// degrades the pipeline (no quality gate, no narration, no fan-out)
	// instead of blocking startup.
	var ai openai.Client
	if strings.TrimSpace(os.Getenv("OPENAI_API_KEY")) != "" {
		var err error
		ai, err = openai.NewClient(log)
		if err != nil {
			return Services{}, err
		}
	} else {
		log.Warn("OPENAI_API_KEY not set; language detection, quality checks, and narration are disabled")
	}

	var bucket gcp.BucketService
	if strings.TrimSpace(os.Getenv("NARRATION_GCS_BUCKET_NAME")) != "" {
		var err error
		bucket, err = gcp.NewBucketService(log)
		if err != nil {
			return Services{}, err
		}
	} else {
		log.Warn("NARRATION_GCS_BUCKET_NAME not set; narration audio storage is disabled")
	}

	var bus services.SSEBus
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		var err error
		bus, err = services.NewRedisSSEBus(log)
		if err != nil {
			return Services{}, err
		}
	} else {
		log.Warn("REDIS_ADDR not set; SSE events stay on this instance only")
	}

	notifier := services.NewContentNotifier(hub, bus)
	history := services.NewContentHistoryService(db, log, repos.ContentHistory)
	quality := services.NewQualityCheckService(db, log, ai, repos.Content, repos.QualityCheck, repos.Topic)

	var narration services.NarrationService
	if ai != nil && bucket != nil {
		narration = services.NewNarrationService(log, ai, bucket)
	}

	mutation := services.NewContentMutationService(
		db, log,
		repos.Content, repos.QualityCheck, repos.Topic, repos.Course,
		history, quality, narration, notifier, ai,
	)

	return Services{
		AI:              ai,
		Bucket:          bucket,
		Bus:             bus,
		Notifier:        notifier,
		ContentHistory:  history,
		QualityCheck:    quality,
		Narration:       narration,
		ContentMutation: mutation,
	}, nil
}
