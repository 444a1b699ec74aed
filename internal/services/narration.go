package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/gcp"
	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/logger"
	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/openai"
)

// NarrationResult describes one synthesized narration clip.
type NarrationResult struct {
	AudioURL        string  `json:"audioUrl"`
	Format          string  `json:"audioFormat"`
	Voice           string  `json:"audioVoice"`
	DurationSeconds float64 `json:"audioDuration"`
}

// NarrationService turns text content into hosted narration audio.
type NarrationService interface {
	GenerateAudio(ctx context.Context, contentID uuid.UUID, text string, voice string) (*NarrationResult, error)
}

type narrationService struct {
	log    *logger.Logger
	ai     openai.Client
	bucket gcp.BucketService
}

func NewNarrationService(baseLog *logger.Logger, ai openai.Client, bucket gcp.BucketService) NarrationService {
	return &narrationService{
		log:    baseLog.With("service", "NarrationService"),
		ai:     ai,
		bucket: bucket,
	}
}

func (s *narrationService) GenerateAudio(ctx context.Context, contentID uuid.UUID, text string, voice string) (*NarrationResult, error) {
	if s.ai == nil {
		return nil, &MissingCollaboratorError{Name: "speech generator"}
	}
	if s.bucket == nil {
		return nil, &MissingCollaboratorError{Name: "audio storage"}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("narration text required")
	}

	gen, err := s.ai.GenerateSpeech(ctx, text, openai.SpeechOptions{Voice: voice})
	if err != nil {
		return nil, fmt.Errorf("synthesize narration: %w", err)
	}

	key := fmt.Sprintf("narration/%s/%s.%s", contentID, uuid.New(), gen.Format)
	if err := s.bucket.UploadFile(ctx, gcp.BucketCategoryNarration, key, bytes.NewReader(gen.Bytes)); err != nil {
		return nil, fmt.Errorf("upload narration: %w", err)
	}

	result := &NarrationResult{
		AudioURL:        s.bucket.GetPublicURL(gcp.BucketCategoryNarration, key),
		Format:          gen.Format,
		Voice:           gen.Voice,
		DurationSeconds: estimateSpeechSeconds(text),
	}

	s.log.Info("narration generated",
		"contentID", contentID,
		"key", key,
		"bytes", len(gen.Bytes),
		"voice", gen.Voice)
	return result, nil
}

// estimateSpeechSeconds approximates clip length at a 150 words-per-minute
// speaking rate. Exact duration would require decoding the audio container.
func estimateSpeechSeconds(text string) float64 {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return float64(words) / 150.0 * 60.0
}
