package content

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/educoreai-lotus/contentstudio-backend/internal/data/repos/testutil"
	types "github.com/educoreai-lotus/contentstudio-backend/internal/domain"
)

func TestTopicRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	courseRepo := NewCourseRepo(db, testutil.Logger(t))
	topicRepo := NewTopicRepo(db, testutil.Logger(t))

	course := &types.Course{
		ID:       uuid.New(),
		Title:    "Intro to Databases",
		Language: "he",
	}
	if _, err := courseRepo.Create(ctx, tx, []*types.Course{course}); err != nil {
		t.Fatalf("Create course: %v", err)
	}

	topic := &types.Topic{
		ID:       uuid.New(),
		Title:    "Normalization",
		CourseID: &course.ID,
		Skills:   datatypes.JSON([]byte(`["sql","modeling"]`)),
	}
	if _, err := topicRepo.Create(ctx, tx, []*types.Topic{topic}); err != nil {
		t.Fatalf("Create topic: %v", err)
	}

	gotTopic, err := topicRepo.GetByID(ctx, tx, topic.ID)
	if err != nil {
		t.Fatalf("GetByID topic: %v", err)
	}
	if gotTopic == nil || gotTopic.Title != "Normalization" {
		t.Fatalf("GetByID topic: got %v", gotTopic)
	}
	if gotTopic.Language != "" {
		t.Fatalf("GetByID topic: expected empty language, got %q", gotTopic.Language)
	}

	gotCourse, err := courseRepo.GetByID(ctx, tx, course.ID)
	if err != nil {
		t.Fatalf("GetByID course: %v", err)
	}
	if gotCourse == nil || gotCourse.Language != "he" {
		t.Fatalf("GetByID course: got %v", gotCourse)
	}

	if err := topicRepo.UpdateFields(ctx, tx, topic.ID, map[string]interface{}{"language": "ar"}); err != nil {
		t.Fatalf("UpdateFields topic: %v", err)
	}
	updated, err := topicRepo.GetByID(ctx, tx, topic.ID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if updated.Language != "ar" {
		t.Fatalf("UpdateFields topic: language not persisted, got %q", updated.Language)
	}

	missing, err := topicRepo.GetByID(ctx, tx, uuid.New())
	if err != nil {
		t.Fatalf("GetByID (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID (missing): expected nil, got %v", missing)
	}
}
