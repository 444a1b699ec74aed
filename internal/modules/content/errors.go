package content

import "fmt"

// MismatchError reports a language gate failure: the submission's detected
// language does not match the topic's expected language.
type MismatchError struct {
	Detected string
	Expected string
	IsCode   bool
}

func (e *MismatchError) Error() string {
	if e.IsCode {
		return fmt.Sprintf("Explanation language (%s) does not match expected language (%s)", e.Detected, e.Expected)
	}
	return fmt.Sprintf("Content language (%s) does not match expected language (%s)", e.Detected, e.Expected)
}

// DetectionFailedError means no verifiable language claim could be made.
// The gate fails closed: absence of an answer blocks the mutation rather
// than letting ambiguous content spend quality-check tokens.
type DetectionFailedError struct {
	Err error
}

func (e *DetectionFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("language detection failed: %v", e.Err)
	}
	return "language detection failed"
}

func (e *DetectionFailedError) Unwrap() error { return e.Err }
