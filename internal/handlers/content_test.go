package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/educoreai-lotus/contentstudio-backend/internal/modules/content"
	"github.com/educoreai-lotus/contentstudio-backend/internal/services"
)

func TestSubmitError_MapsPipelineFamilies(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation",
			err:        &services.ValidationError{Message: "bad input"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_submission",
		},
		{
			name:       "language mismatch",
			err:        &content.MismatchError{Detected: "he", Expected: "en"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "language_mismatch",
		},
		{
			name:       "detection failed",
			err:        &content.DetectionFailedError{Err: errors.New("timeout")},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "language_detection_failed",
		},
		{
			name:       "quality rejected",
			err:        &services.QualityCheckFailedError{Status: "rejected"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "quality_check_failed",
		},
		{
			name:       "missing collaborator",
			err:        &services.MissingCollaboratorError{Name: "quality evaluator"},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "collaborator_unavailable",
		},
		{
			name:       "archive failed",
			err:        &services.HistoryArchiveError{Err: errors.New("insert failed")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "archive_failed",
		},
		{
			name:       "unclassified",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "submission_failed",
		},
	}
	for _, tc := range cases {
		apiErr := submitError(tc.err)
		if apiErr.Status != tc.wantStatus {
			t.Fatalf("%s: status = %d, want %d", tc.name, apiErr.Status, tc.wantStatus)
		}
		if apiErr.Code != tc.wantCode {
			t.Fatalf("%s: code = %q, want %q", tc.name, apiErr.Code, tc.wantCode)
		}
		if !errors.Is(apiErr, tc.err) {
			t.Fatalf("%s: wrapped cause lost", tc.name)
		}
	}
}
