package services

import "fmt"

// ValidationError rejects a submission before any persistence happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// MissingCollaboratorError means a required service dependency was not
// configured for the requested operation.
type MissingCollaboratorError struct {
	Name string
}

func (e *MissingCollaboratorError) Error() string {
	return fmt.Sprintf("required collaborator %q is not configured", e.Name)
}

// HistoryArchiveError aborts a mutation: updates never proceed without a
// pre-update snapshot.
type HistoryArchiveError struct {
	Err error
}

func (e *HistoryArchiveError) Error() string {
	return fmt.Sprintf("failed to archive previous content version: %v", e.Err)
}

func (e *HistoryArchiveError) Unwrap() error { return e.Err }

// QualityCheckFailedError reports a quality gate verdict other than approved.
type QualityCheckFailedError struct {
	Status   string
	Score    float64
	Feedback string
}

func (e *QualityCheckFailedError) Error() string {
	if e.Feedback != "" {
		return fmt.Sprintf("quality check failed with status %q (score %.2f): %s", e.Status, e.Score, e.Feedback)
	}
	return fmt.Sprintf("quality check failed with status %q (score %.2f)", e.Status, e.Score)
}
