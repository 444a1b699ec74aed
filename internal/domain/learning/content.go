package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Generation method ids, as persisted on content rows.
const (
	GenerationMethodManual       = 1
	GenerationMethodManualEdited = 2
	GenerationMethodAIAssisted   = 3
)

// Quality check statuses. A null status means the gate was not required.
const (
	QualityStatusPending  = "pending"
	QualityStatusApproved = "approved"
	QualityStatusRejected = "rejected"
)

// Content is one authored or generated artifact of a specific format for a topic.
// The shape of ContentData depends on ContentTypeID (see modules/content).
type Content struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	TopicID       uuid.UUID `gorm:"type:uuid;not null;index" json:"topic_id"`
	ContentTypeID int       `gorm:"not null;index" json:"content_type_id"`

	ContentData datatypes.JSON `gorm:"type:jsonb;not null" json:"content_data"`

	GenerationMethodID int `gorm:"not null;default:1" json:"generation_method_id"`

	QualityCheckStatus *string        `gorm:"column:quality_check_status;index" json:"quality_check_status,omitempty"`
	QualityCheckData   datatypes.JSON `gorm:"type:jsonb" json:"quality_check_data,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// StatusTrail is the ordered progress narrative for the submission that
	// produced this row. Populated by the mutation pipeline, never persisted.
	StatusTrail []string `gorm:"-" json:"status_trail,omitempty"`
}

func (Content) TableName() string { return "content" }

// ContentHistory is an immutable copy of a content row captured at the
// instant before it was overwritten.
type ContentHistory struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	ContentID     uuid.UUID `gorm:"type:uuid;not null;index" json:"content_id"`
	TopicID       uuid.UUID `gorm:"type:uuid;not null;index" json:"topic_id"`
	ContentTypeID int       `gorm:"not null" json:"content_type_id"`

	ContentData        datatypes.JSON `gorm:"type:jsonb;not null" json:"content_data"`
	GenerationMethodID int            `gorm:"not null" json:"generation_method_id"`
	QualityCheckStatus *string        `gorm:"column:quality_check_status" json:"quality_check_status,omitempty"`
	QualityCheckData   datatypes.JSON `gorm:"type:jsonb" json:"quality_check_data,omitempty"`

	ArchivedAt time.Time `gorm:"not null;default:now();index" json:"archived_at"`
}

func (ContentHistory) TableName() string { return "content_history" }

// QualityCheck is the durable audit record of one quality evaluation.
type QualityCheck struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	ContentID uuid.UUID `gorm:"type:uuid;index" json:"content_id"`
	TopicID   uuid.UUID `gorm:"type:uuid;index" json:"topic_id"`

	Status   string         `gorm:"not null;index" json:"status"`
	Score    float64        `gorm:"not null;default:0" json:"score"`
	Feedback datatypes.JSON `gorm:"type:jsonb" json:"feedback,omitempty"`
	Mode     string         `gorm:"not null;default:'create'" json:"mode"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (QualityCheck) TableName() string { return "quality_check" }

// ContentTypeRow is the lookup table mapping numeric content type ids to
// canonical names. Seeded at migration time.
type ContentTypeRow struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

func (ContentTypeRow) TableName() string { return "content_type" }
