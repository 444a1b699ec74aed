package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	contentrepos "github.com/educoreai-lotus/contentstudio-backend/internal/data/repos/content"
	types "github.com/educoreai-lotus/contentstudio-backend/internal/domain"
	"github.com/educoreai-lotus/contentstudio-backend/internal/modules/content"
	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/logger"
	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/openai"
)

// maxNarrationChars is the hard ceiling for text sent to speech synthesis.
// Longer text fails the submission rather than being silently truncated.
const maxNarrationChars = 4000

// SubmitContentInput is one content submission for a topic. ContentType is
// deliberately loose: numeric ids, numeric strings, and canonical names are
// all accepted.
type SubmitContentInput struct {
	TopicID            uuid.UUID
	ContentType        any
	ContentData        map[string]any
	GenerationMethodID int
}

// ContentMutationService runs the full submission pipeline: type resolution,
// language gate, version archival, quality gate, persistence, and narration.
type ContentMutationService interface {
	SubmitContent(ctx context.Context, tx *gorm.DB, in SubmitContentInput) (*types.Content, error)
	GetContent(ctx context.Context, tx *gorm.DB, topicID uuid.UUID, rawType any) (*types.Content, error)
	GetTopicContent(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*types.Content, error)
	GetContentHistory(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) ([]*types.ContentHistory, error)
}

type contentMutationService struct {
	db        *gorm.DB
	log       *logger.Logger
	contents  contentrepos.ContentRepo
	checks    contentrepos.QualityCheckRepo
	topics    contentrepos.TopicRepo
	courses   contentrepos.CourseRepo
	history   ContentHistoryService
	quality   QualityCheckService
	narration NarrationService
	notifier  ContentNotifier
	ai        openai.Client
}

func NewContentMutationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	contents contentrepos.ContentRepo,
	checks contentrepos.QualityCheckRepo,
	topics contentrepos.TopicRepo,
	courses contentrepos.CourseRepo,
	history ContentHistoryService,
	quality QualityCheckService,
	narration NarrationService,
	notifier ContentNotifier,
	ai openai.Client,
) ContentMutationService {
	return &contentMutationService{
		db:        db,
		log:       baseLog.With("service", "ContentMutationService"),
		contents:  contents,
		checks:    checks,
		topics:    topics,
		courses:   courses,
		history:   history,
		quality:   quality,
		narration: narration,
		notifier:  notifier,
		ai:        ai,
	}
}

func (s *contentMutationService) SubmitContent(ctx context.Context, tx *gorm.DB, in SubmitContentInput) (*types.Content, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	if in.TopicID == uuid.Nil {
		return nil, &ValidationError{Message: "topic id is required"}
	}
	if len(in.ContentData) == 0 {
		return nil, &ValidationError{Message: "content data is required"}
	}

	topic, err := s.topics.GetByID(ctx, transaction, in.TopicID)
	if err != nil {
		return nil, fmt.Errorf("load topic: %w", err)
	}
	if topic == nil {
		return nil, &ValidationError{Message: fmt.Sprintf("topic %s not found", in.TopicID)}
	}

	contentType, err := s.resolveType(ctx, transaction, in.ContentType)
	if err != nil {
		return nil, err
	}

	trail := NewStatusTrail(s.notifier, in.TopicID, int(contentType))
	trail.Add(ctx, fmt.Sprintf("Submission received for %s content.", contentType.Name()))

	payload := content.Payload(in.ContentData)

	method := in.GenerationMethodID
	existing := s.findExisting(ctx, transaction, in.TopicID, contentType)
	if method == 0 {
		if existing != nil {
			method = types.GenerationMethodManualEdited
		} else {
			method = types.GenerationMethodManual
		}
	}
	if method < types.GenerationMethodManual || method > types.GenerationMethodAIAssisted {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown generation method %d", method)}
	}

	// Language and quality gating apply to human-authored content only;
	// AI-drafted content bypasses both.
	qualityRequired := method == types.GenerationMethodManual || method == types.GenerationMethodManualEdited

	if qualityRequired && (s.quality == nil || !s.quality.Available()) {
		err := &MissingCollaboratorError{Name: "quality evaluator"}
		s.notifyFailure(ctx, in.TopicID, contentType, err)
		return nil, err
	}

	if qualityRequired {
		if err := s.runLanguageGate(ctx, transaction, topic, contentType, payload, trail); err != nil {
			s.notifyFailure(ctx, in.TopicID, contentType, err)
			return nil, err
		}
	}

	encoded, err := content.EncodePayload(payload)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid content data: %v", err)}
	}

	var row *types.Content
	if existing != nil {
		row, err = s.updateExisting(ctx, transaction, existing, encoded, method, qualityRequired, trail)
	} else {
		row, err = s.createNew(ctx, transaction, in.TopicID, contentType, encoded, method, qualityRequired, trail)
	}
	if err != nil {
		s.notifyFailure(ctx, in.TopicID, contentType, err)
		return nil, err
	}

	if err := s.attachAudio(ctx, transaction, row, contentType, trail); err != nil {
		s.notifyFailure(ctx, in.TopicID, contentType, err)
		return nil, err
	}

	final, err := s.contents.GetByID(ctx, transaction, row.ID)
	if err != nil {
		return nil, fmt.Errorf("reload final content: %w", err)
	}
	if final == nil {
		return nil, fmt.Errorf("content %s disappeared during submission", row.ID)
	}

	trail.Add(ctx, "Content saved successfully.")
	final.StatusTrail = trail.Entries()
	if s.notifier != nil {
		s.notifier.ContentSaved(ctx, in.TopicID, final)
	}
	return final, nil
}

// resolveType widens the raw identifier into the candidate set and picks the
// canonical type that matches any candidate.
func (s *contentMutationService) resolveType(ctx context.Context, tx *gorm.DB, raw any) (content.Type, error) {
	lookup := func(ids []int) (map[int]string, error) {
		return s.contents.GetContentTypeNamesByIDs(ctx, tx, ids)
	}
	candidates := content.Candidates(raw, lookup)
	for _, t := range content.AllTypes() {
		if content.MatchesAny(int(t), candidates) {
			return t, nil
		}
	}
	return 0, &ValidationError{Message: fmt.Sprintf("unrecognized content type %v", raw)}
}

// findExisting locates the latest row for the topic and type. A failed probe
// means "not found by that probe", not a dead pipeline: it is logged and the
// lookup falls back to scanning the topic's rows.
func (s *contentMutationService) findExisting(ctx context.Context, tx *gorm.DB, topicID uuid.UUID, t content.Type) *types.Content {
	existing, err := s.contents.GetLatestByTopicAndType(ctx, tx, topicID, int(t))
	if err == nil {
		return existing
	}
	s.log.Warn("existing content probe failed; scanning topic content instead",
		"topicID", topicID,
		"contentTypeID", int(t),
		"error", err)

	rows, err := s.contents.GetAllByTopicID(ctx, tx, topicID)
	if err != nil {
		s.log.Warn("topic content scan failed; treating submission as new content",
			"topicID", topicID,
			"error", err)
		return nil
	}
	var latest *types.Content
	for _, row := range rows {
		if row.ContentTypeID != int(t) {
			continue
		}
		if latest == nil || row.UpdatedAt.After(latest.UpdatedAt) {
			latest = row
		}
	}
	return latest
}

func (s *contentMutationService) runLanguageGate(ctx context.Context, tx *gorm.DB, topic *types.Topic, t content.Type, payload content.Payload, trail *StatusTrail) error {
	expected := topic.Language
	if expected == "" && topic.CourseID != nil {
		course, err := s.courses.GetByID(ctx, tx, *topic.CourseID)
		if err != nil {
			return fmt.Errorf("load course: %w", err)
		}
		if course != nil {
			expected = course.Language
		}
	}
	if expected == "" {
		return nil
	}

	trail.Add(ctx, "Validating content language...")

	var detector content.Detector
	if s.ai != nil {
		detector = s.ai
	}
	if err := content.CheckLanguage(ctx, t, payload, expected, detector); err != nil {
		trail.Add(ctx, "Language validation failed.")
		return err
	}

	trail.Add(ctx, "Language validation passed.")
	return nil
}

// updateExisting archives the current row, persists the new data as pending,
// runs the quality check against the persisted row, and rolls the row back to
// its pre-update state when the verdict is anything but approved.
func (s *contentMutationService) updateExisting(ctx context.Context, tx *gorm.DB, existing *types.Content, encoded datatypes.JSON, method int, qualityRequired bool, trail *StatusTrail) (*types.Content, error) {
	prevData := existing.ContentData
	prevStatus := existing.QualityCheckStatus
	prevQualityData := existing.QualityCheckData
	prevMethod := existing.GenerationMethodID

	trail.Add(ctx, "Archiving previous version...")
	if _, err := s.history.SaveVersion(ctx, tx, existing, true); err != nil {
		trail.Add(ctx, "Failed to archive previous version; aborting.")
		return nil, &HistoryArchiveError{Err: err}
	}
	trail.Add(ctx, "Previous version archived.")

	fields := map[string]interface{}{
		"content_data":         encoded,
		"generation_method_id": method,
		"updated_at":           time.Now().UTC(),
	}
	if qualityRequired {
		fields["quality_check_status"] = types.QualityStatusPending
		fields["quality_check_data"] = nil
	} else {
		fields["quality_check_status"] = nil
		fields["quality_check_data"] = nil
	}
	if err := s.contents.UpdateFields(ctx, tx, existing.ID, fields); err != nil {
		return nil, fmt.Errorf("persist updated content: %w", err)
	}

	if !qualityRequired {
		return s.reload(ctx, tx, existing.ID)
	}

	qualityErr := s.quality.TriggerQualityCheck(ctx, tx, existing.ID, "update", trail)
	var row *types.Content
	if qualityErr == nil {
		row, qualityErr = s.reload(ctx, tx, existing.ID)
	}
	if qualityErr == nil {
		// A verdict other than approved fails the update even though the
		// check itself completed.
		if row.QualityCheckStatus == nil || *row.QualityCheckStatus != types.QualityStatusApproved {
			status := "unknown"
			if row.QualityCheckStatus != nil {
				status = *row.QualityCheckStatus
			}
			qualityErr = &QualityCheckFailedError{Status: status, Feedback: feedbackSummary(row.QualityCheckData)}
		}
	}

	if qualityErr != nil {
		trail.Add(ctx, "Quality check failed; restoring previous version.")
		restore := map[string]interface{}{
			"content_data":         prevData,
			"quality_check_status": prevStatus,
			"quality_check_data":   prevQualityData,
			"generation_method_id": prevMethod,
		}
		if rbErr := s.contents.UpdateFields(ctx, tx, existing.ID, restore); rbErr != nil {
			s.log.Warn("rollback after failed quality check did not complete",
				"contentID", existing.ID,
				"error", rbErr)
		}
		return nil, qualityErr
	}

	trail.Add(ctx, "Quality check passed.")
	return row, nil
}

// createNew evaluates quality before anything is persisted; only approved
// content is ever written.
func (s *contentMutationService) createNew(ctx context.Context, tx *gorm.DB, topicID uuid.UUID, t content.Type, encoded datatypes.JSON, method int, qualityRequired bool, trail *StatusTrail) (*types.Content, error) {
	row := &types.Content{
		ID:                 uuid.New(),
		TopicID:            topicID,
		ContentTypeID:      int(t),
		ContentData:        encoded,
		GenerationMethodID: method,
	}

	var qualityCheckID uuid.UUID
	if qualityRequired {
		result, err := s.quality.ValidateBeforeSave(ctx, tx, row, topicID, trail)
		if err != nil {
			return nil, err
		}
		if result.Status != types.QualityStatusApproved {
			return nil, &QualityCheckFailedError{
				Status:   result.Status,
				Score:    result.Score,
				Feedback: joinFeedback(result.Feedback),
			}
		}
		qualityCheckID = result.QualityCheckID

		checkData, err := json.Marshal(map[string]any{
			"quality_check_id": result.QualityCheckID,
			"score":            result.Score,
			"feedback":         result.Feedback,
			"checked_at":       time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			return nil, fmt.Errorf("marshal quality data: %w", err)
		}
		approved := types.QualityStatusApproved
		row.QualityCheckStatus = &approved
		row.QualityCheckData = datatypes.JSON(checkData)
	}

	trail.Add(ctx, "Saving new content...")
	if _, err := s.contents.Create(ctx, tx, []*types.Content{row}); err != nil {
		// The audit record points at a row that never materialized.
		if qualityCheckID != uuid.Nil {
			if delErr := s.checks.DeleteByID(ctx, tx, qualityCheckID); delErr != nil {
				s.log.Warn("orphaned quality check record not cleaned up",
					"qualityCheckID", qualityCheckID,
					"error", delErr)
			}
		}
		return nil, fmt.Errorf("persist new content: %w", err)
	}
	return row, nil
}

// attachAudio narrates approved text content. Failures are logged and the
// submission still succeeds, with one exception: text over the narration
// ceiling fails hard instead of being truncated.
func (s *contentMutationService) attachAudio(ctx context.Context, tx *gorm.DB, row *types.Content, t content.Type, trail *StatusTrail) error {
	if t != content.TypeText || s.narration == nil {
		return nil
	}
	if row.QualityCheckStatus != nil && *row.QualityCheckStatus != types.QualityStatusApproved {
		return nil
	}

	payload, err := content.DecodePayload(row.ContentData)
	if err != nil {
		s.log.Warn("undecodable content data; skipping narration", "contentID", row.ID, "error", err)
		return nil
	}
	if payload.String("audioUrl") != "" {
		return nil
	}

	text := payload.String("text")
	if text == "" {
		return nil
	}
	if len([]rune(text)) > maxNarrationChars {
		trail.Add(ctx, "Text exceeds the narration limit.")
		return &ValidationError{Message: fmt.Sprintf("text length %d exceeds the %d character narration limit", len([]rune(text)), maxNarrationChars)}
	}

	trail.Add(ctx, "Generating narration audio...")
	result, err := s.narration.GenerateAudio(ctx, row.ID, text, "")
	if err != nil {
		s.log.Warn("narration failed; content saved without audio", "contentID", row.ID, "error", err)
		trail.Add(ctx, "Audio generation failed; continuing without audio.")
		return nil
	}

	cleaned := content.Payload{
		"text":          text,
		"audioUrl":      result.AudioURL,
		"audioFormat":   result.Format,
		"audioVoice":    result.Voice,
		"audioDuration": result.DurationSeconds,
	}
	encoded, err := content.EncodePayload(cleaned)
	if err != nil {
		s.log.Warn("narrated payload not encodable; content saved without audio", "contentID", row.ID, "error", err)
		return nil
	}
	if err := s.contents.UpdateFields(ctx, tx, row.ID, map[string]interface{}{"content_data": encoded}); err != nil {
		s.log.Warn("narrated payload not persisted; content saved without audio", "contentID", row.ID, "error", err)
		trail.Add(ctx, "Audio generation failed; continuing without audio.")
		return nil
	}

	trail.Add(ctx, "Narration audio attached.")
	return nil
}

func (s *contentMutationService) reload(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Content, error) {
	row, err := s.contents.GetByID(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("reload content: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("content %s not found after update", id)
	}
	return row, nil
}

func (s *contentMutationService) notifyFailure(ctx context.Context, topicID uuid.UUID, t content.Type, err error) {
	if s.notifier == nil {
		return
	}
	s.notifier.MutationFailed(ctx, topicID, int(t), err.Error())
}

func (s *contentMutationService) GetContent(ctx context.Context, tx *gorm.DB, topicID uuid.UUID, rawType any) (*types.Content, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	lookup := func(ids []int) (map[int]string, error) {
		return s.contents.GetContentTypeNamesByIDs(ctx, transaction, ids)
	}
	candidates := content.Candidates(rawType, lookup)

	rows, err := s.contents.GetAllByTopicID(ctx, transaction, topicID)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if content.MatchesAny(row.ContentTypeID, candidates) {
			return row, nil
		}
	}
	return nil, nil
}

func (s *contentMutationService) GetTopicContent(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*types.Content, error) {
	return s.contents.GetAllByTopicID(ctx, tx, topicID)
}

func (s *contentMutationService) GetContentHistory(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) ([]*types.ContentHistory, error) {
	return s.history.GetHistory(ctx, tx, contentID)
}

func feedbackSummary(raw datatypes.JSON) string {
	if len(raw) == 0 {
		return ""
	}
	var data struct {
		Feedback []string `json:"feedback"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return ""
	}
	return joinFeedback(data.Feedback)
}

func joinFeedback(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += "; "
		}
		out += item
	}
	return out
}
