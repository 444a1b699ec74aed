package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Topic is the lesson-level unit that owns content items across formats.
// Its effective language is Language, falling back to the parent course.
type Topic struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	Title    string     `gorm:"not null" json:"title"`
	Language string     `gorm:"column:language;index" json:"language,omitempty"`
	CourseID *uuid.UUID `gorm:"type:uuid;index" json:"course_id,omitempty"`
	Skills   datatypes.JSON `gorm:"type:jsonb" json:"skills,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Topic) TableName() string { return "topic" }

type Course struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	Title    string `gorm:"not null" json:"title"`
	Language string `gorm:"column:language;not null;default:'en'" json:"language"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Course) TableName() string { return "course" }
