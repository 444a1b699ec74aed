package content

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/educoreai-lotus/contentstudio-backend/internal/domain"
	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/logger"
)

type ContentHistoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ContentHistory) ([]*types.ContentHistory, error)
	GetByContentID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) ([]*types.ContentHistory, error)
	GetLatestByContentID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) (*types.ContentHistory, error)
	CountByContentID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) (int64, error)
}

type contentHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentHistoryRepo(db *gorm.DB, baseLog *logger.Logger) ContentHistoryRepo {
	return &contentHistoryRepo{db: db, log: baseLog.With("repo", "ContentHistoryRepo")}
}

func (r *contentHistoryRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ContentHistory) ([]*types.ContentHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.ContentHistory{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *contentHistoryRepo) GetByContentID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) ([]*types.ContentHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []*types.ContentHistory
	if err := transaction.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("archived_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *contentHistoryRepo) GetLatestByContentID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) (*types.ContentHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.ContentHistory
	err := transaction.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("archived_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *contentHistoryRepo) CountByContentID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ContentHistory{}).
		Where("content_id = ?", contentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
