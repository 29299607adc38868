package homework

import (
	"context"
	"errors"
)

var ErrAssignmentNotFound = errors.New("assignment not found")

// AssignmentStore is the published-assignment collection: append-only, no
// in-place edits.
type AssignmentStore interface {
	Append(ctx context.Context, a Assignment) error
	Get(ctx context.Context, id string) (Assignment, error)
	// List returns assignments visible to the viewer: students see only
	// their own group (plus ungrouped assignments), authoring and admin
	// viewers see everything.
	List(ctx context.Context, viewer Viewer) ([]Assignment, error)
}

// GradeStore holds grade records keyed by (studentID, assignmentID). Upsert
// overwrites on conflict; duplicate keys are never surfaced as errors.
type GradeStore interface {
	Upsert(ctx context.Context, rec GradeRecord) error
	Find(ctx context.Context, studentID, assignmentID string) (GradeRecord, bool, error)
	// List returns the viewer's own records for students, everything for
	// teacher/admin viewers.
	List(ctx context.Context, viewer Viewer) ([]GradeRecord, error)
}
