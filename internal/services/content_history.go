package services

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	contentrepos "github.com/educoreai-lotus/contentstudio-backend/internal/data/repos/content"
	types "github.com/educoreai-lotus/contentstudio-backend/internal/domain"
	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/logger"
)

// ContentHistoryService snapshots content rows before they are overwritten.
type ContentHistoryService interface {
	// SaveVersion archives the row as it currently stands. When force is
	// false and the newest snapshot already carries identical content_data,
	// no new snapshot is written and (nil, nil) is returned.
	SaveVersion(ctx context.Context, tx *gorm.DB, content *types.Content, force bool) (*types.ContentHistory, error)
	GetHistory(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) ([]*types.ContentHistory, error)
}

type contentHistoryService struct {
	db          *gorm.DB
	log         *logger.Logger
	historyRepo contentrepos.ContentHistoryRepo
}

func NewContentHistoryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	historyRepo contentrepos.ContentHistoryRepo,
) ContentHistoryService {
	return &contentHistoryService{
		db:          db,
		log:         baseLog.With("service", "ContentHistoryService"),
		historyRepo: historyRepo,
	}
}

func (s *contentHistoryService) SaveVersion(ctx context.Context, tx *gorm.DB, content *types.Content, force bool) (*types.ContentHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	if !force {
		latest, err := s.historyRepo.GetLatestByContentID(ctx, transaction, content.ID)
		if err != nil {
			return nil, err
		}
		if latest != nil && bytes.Equal(latest.ContentData, content.ContentData) {
			s.log.Debug("skipping snapshot; latest already matches", "contentID", content.ID)
			return nil, nil
		}
	}

	snapshot := &types.ContentHistory{
		ID:                 uuid.New(),
		ContentID:          content.ID,
		TopicID:            content.TopicID,
		ContentTypeID:      content.ContentTypeID,
		ContentData:        content.ContentData,
		GenerationMethodID: content.GenerationMethodID,
		QualityCheckStatus: content.QualityCheckStatus,
		QualityCheckData:   content.QualityCheckData,
		ArchivedAt:         time.Now().UTC(),
	}
	if _, err := s.historyRepo.Create(ctx, transaction, []*types.ContentHistory{snapshot}); err != nil {
		return nil, err
	}

	s.log.Info("archived content version", "contentID", content.ID, "historyID", snapshot.ID)
	return snapshot, nil
}

func (s *contentHistoryService) GetHistory(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) ([]*types.ContentHistory, error) {
	return s.historyRepo.GetByContentID(ctx, tx, contentID)
}
