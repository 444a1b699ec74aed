package content

import (
	"context"
	"strings"
)

// CheckLanguage runs the language gate for one submission payload: extracts
// the validatable text for the format and compares its detected language to
// expectedLanguage. A nil error means the gate passed or was skipped (code
// content with no explanation). Failures are *MismatchError,
// *DetectionFailedError, or an unexpected detector error; all block the
// mutation.
func CheckLanguage(ctx context.Context, t Type, p Payload, expectedLanguage string, detector Detector) error {
	expected := strings.ToLower(strings.TrimSpace(expectedLanguage))
	if expected == "" {
		return nil
	}

	text, ok := ValidatableText(t, p)
	if !ok {
		return nil
	}

	detected, err := DetectLanguage(ctx, text, detector)
	if err != nil {
		return err
	}
	if detected != expected {
		return &MismatchError{Detected: detected, Expected: expected, IsCode: t == TypeCode}
	}
	return nil
}
