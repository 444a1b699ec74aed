package content

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/educoreai-lotus/contentstudio-backend/internal/domain"
	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/logger"
)

type QualityCheckRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.QualityCheck) ([]*types.QualityCheck, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.QualityCheck, error)
	GetByContentID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) ([]*types.QualityCheck, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type qualityCheckRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQualityCheckRepo(db *gorm.DB, baseLog *logger.Logger) QualityCheckRepo {
	return &qualityCheckRepo{db: db, log: baseLog.With("repo", "QualityCheckRepo")}
}

func (r *qualityCheckRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.QualityCheck) ([]*types.QualityCheck, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.QualityCheck{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *qualityCheckRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.QualityCheck, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.QualityCheck
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *qualityCheckRepo) GetByContentID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) ([]*types.QualityCheck, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []*types.QualityCheck
	if err := transaction.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *qualityCheckRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.QualityCheck{}).Error
}
