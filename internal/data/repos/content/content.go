package content

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/educoreai-lotus/contentstudio-backend/internal/domain"
	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/logger"
)

type ContentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Content) ([]*types.Content, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Content, error)
	GetLatestByTopicAndType(ctx context.Context, tx *gorm.DB, topicID uuid.UUID, contentTypeID int) (*types.Content, error)
	GetAllByTopicID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*types.Content, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID, hard bool) error
	GetContentTypeNamesByIDs(ctx context.Context, tx *gorm.DB, ids []int) (map[int]string, error)
}

type contentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentRepo(db *gorm.DB, baseLog *logger.Logger) ContentRepo {
	return &contentRepo{db: db, log: baseLog.With("repo", "ContentRepo")}
}

func (r *contentRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Content) ([]*types.Content, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Content{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *contentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Content, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.Content
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

func (r *contentRepo) GetLatestByTopicAndType(ctx context.Context, tx *gorm.DB, topicID uuid.UUID, contentTypeID int) (*types.Content, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.Content
	err := transaction.WithContext(ctx).
		Where("topic_id = ? AND content_type_id = ?", topicID, contentTypeID).
		Order("updated_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *contentRepo) GetAllByTopicID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*types.Content, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []*types.Content
	if err := transaction.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *contentRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Content{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *contentRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID, hard bool) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx)
	if hard {
		q = q.Unscoped()
	}
	return q.Where("id = ?", id).Delete(&types.Content{}).Error
}

func (r *contentRepo) GetContentTypeNamesByIDs(ctx context.Context, tx *gorm.DB, ids []int) (map[int]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	out := make(map[int]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []*types.ContentTypeRow
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.Name
	}
	return out, nil
}
