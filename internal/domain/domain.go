package domain

import (
	"github.com/educoreai-lotus/contentstudio-backend/internal/domain/learning"
)

type (
	Content        = learning.Content
	ContentHistory = learning.ContentHistory
	QualityCheck   = learning.QualityCheck
	ContentTypeRow = learning.ContentTypeRow
	Topic          = learning.Topic
	Course         = learning.Course
)

const (
	GenerationMethodManual       = learning.GenerationMethodManual
	GenerationMethodManualEdited = learning.GenerationMethodManualEdited
	GenerationMethodAIAssisted   = learning.GenerationMethodAIAssisted

	QualityStatusPending  = learning.QualityStatusPending
	QualityStatusApproved = learning.QualityStatusApproved
	QualityStatusRejected = learning.QualityStatusRejected
)
