package app

import (
	"gorm.io/gorm"

	contentrepos "github.com/educoreai-lotus/contentstudio-backend/internal/data/repos/content"
	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/logger"
)

type Repos struct {
	Content        contentrepos.ContentRepo
	ContentHistory contentrepos.ContentHistoryRepo
	QualityCheck   contentrepos.QualityCheckRepo
	Topic          contentrepos.TopicRepo
	Course         contentrepos.CourseRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Content:        contentrepos.NewContentRepo(db, log),
		ContentHistory: contentrepos.NewContentHistoryRepo(db, log),
		QualityCheck:   contentrepos.NewQualityCheckRepo(db, log),
		Topic:          contentrepos.NewTopicRepo(db, log),
		Course:         contentrepos.NewCourseRepo(db, log),
	}
}
