package homework

import (
	"context"
	"sync"
)

// MemoryAssignmentStore keeps assignments in insertion order. Useful for
// tests and single-process dev runs.
type MemoryAssignmentStore struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]Assignment
}

func NewMemoryAssignmentStore() *MemoryAssignmentStore {
	return &MemoryAssignmentStore{byID: map[string]Assignment{}}
}

func (m *MemoryAssignmentStore) Append(_ context.Context, a Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byID[a.ID]; !exists {
		m.order = append(m.order, a.ID)
	}
	m.byID[a.ID] = a
	return nil
}

func (m *MemoryAssignmentStore) Get(_ context.Context, id string) (Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.byID[id]
	if !ok {
		return Assignment{}, ErrAssignmentNotFound
	}
	return a, nil
}

func (m *MemoryAssignmentStore) List(_ context.Context, viewer Viewer) ([]Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Assignment, 0, len(m.order))
	for _, id := range m.order {
		a := m.byID[id]
		if viewer.IsStudent() && a.GroupID != "" && a.GroupID != viewer.GroupID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// MemoryGradeStore keys records by (studentID, assignmentID) so a
// resubmission replaces the prior record.
type MemoryGradeStore struct {
	mu    sync.RWMutex
	order []string
	byKey map[string]GradeRecord
}

func NewMemoryGradeStore() *MemoryGradeStore {
	return &MemoryGradeStore{byKey: map[string]GradeRecord{}}
}

func gradeKey(studentID, assignmentID string) string {
	return studentID + "\x00" + assignmentID
}

func (m *MemoryGradeStore) Upsert(_ context.Context, rec GradeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := gradeKey(rec.StudentID, rec.AssignmentID)
	if _, exists := m.byKey[k]; !exists {
		m.order = append(m.order, k)
	}
	m.byKey[k] = rec
	return nil
}

func (m *MemoryGradeStore) Find(_ context.Context, studentID, assignmentID string) (GradeRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.byKey[gradeKey(studentID, assignmentID)]
	return rec, ok, nil
}

func (m *MemoryGradeStore) List(_ context.Context, viewer Viewer) ([]GradeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]GradeRecord, 0, len(m.order))
	for _, k := range m.order {
		rec := m.byKey[k]
		if viewer.IsStudent() && rec.StudentID != viewer.ID {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
