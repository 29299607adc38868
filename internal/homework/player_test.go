package homework

import (
	"context"
	"errors"
	"testing"
)

func interactiveAssignment() Assignment {
	return Assignment{
		ID:    "hw-1",
		Title: "Unit 3 practice",
		Type:  AssignmentInteractive,
		Points: 15,
		Exercises: []Exercise{
			mcExercise("e1", 5, []string{"go", "went", "gone"}, "went"),
			fbExercise("e2", 10, "I {1} and {2}.", []string{"walk", "run"}),
		},
	}
}

func student() Viewer {
	return Viewer{ID: "u-student", Name: "Student", Role: "student", GroupID: "grp-b2"}
}

func TestNewPlayerStudentStartsInAttempt(t *testing.T) {
	p, err := NewPlayer(interactiveAssignment(), student(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Mode() != ModeAttempt {
		t.Fatalf("mode = %s, want attempt", p.Mode())
	}
	if _, ok := p.Result(); ok {
		t.Fatal("no result expected before submit")
	}
}

func TestNewPlayerTeacherStartsInReview(t *testing.T) {
	p, err := NewPlayer(interactiveAssignment(), Viewer{ID: "u-t", Role: "teacher"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Mode() != ModeReview {
		t.Fatalf("mode = %s, want review", p.Mode())
	}
	res, ok := p.Result()
	if !ok || res.Total != 0 || res.MaxScore != 15 {
		t.Fatalf("preview result = %+v/%v, want 0/15", res, ok)
	}
}

func TestNewPlayerWithPriorAnswersStartsInReview(t *testing.T) {
	prior := AnswerSet{"e1": ChoiceAnswer("went")}
	p, err := NewPlayer(interactiveAssignment(), student(), prior)
	if err != nil {
		t.Fatal(err)
	}
	if p.Mode() != ModeReview {
		t.Fatalf("mode = %s, want review", p.Mode())
	}
	res, ok := p.Result()
	if !ok || res.Total != 5 {
		t.Fatalf("re-opened result = %+v/%v, want total 5", res, ok)
	}
}

func TestNewPlayerRejectsLegacyAssignment(t *testing.T) {
	a := Assignment{ID: "old", Type: AssignmentLegacy}
	if _, err := NewPlayer(a, student(), nil); !errors.Is(err, ErrNotInteractive) {
		t.Fatalf("err = %v, want ErrNotInteractive", err)
	}
}

func TestRecordAnswerSparseBlankFill(t *testing.T) {
	p, _ := NewPlayer(interactiveAssignment(), student(), nil)
	p.RecordAnswer("e2", "run", 1)
	p.RecordAnswer("e2", "walk", 0)
	ans := p.Answers()["e2"]
	if !ans.IsBlanks() || ans.Blanks[0] != "walk" || ans.Blanks[1] != "run" {
		t.Fatalf("answers = %+v, want [walk run]", ans)
	}
}

func TestRecordAnswerRejectsOutOfRangeBlankIndex(t *testing.T) {
	p, _ := NewPlayer(interactiveAssignment(), student(), nil)
	// e2 has two blanks: index 2 and anything absurd must be dropped rather
	// than grow the slice.
	p.RecordAnswer("e2", "x", 2)
	p.RecordAnswer("e2", "x", 1<<30)
	p.RecordAnswer("ghost", "x", 0) // unknown exercise id
	if len(p.Answers()) != 0 {
		t.Fatalf("answers = %+v, want none recorded", p.Answers())
	}
	p.RecordAnswer("e2", "run", 1)
	if ans := p.Answers()["e2"]; len(ans.Blanks) != 2 || ans.Blanks[1] != "run" {
		t.Fatalf("answer = %+v, want two slots with run at index 1", ans)
	}
}

func TestRecordAnswerIgnoredInReview(t *testing.T) {
	p, _ := NewPlayer(interactiveAssignment(), Viewer{ID: "u-t", Role: "teacher"}, nil)
	p.RecordAnswer("e1", "went", -1)
	if len(p.Answers()) != 0 {
		t.Fatal("review mode must not accept answers")
	}
}

func TestSubmitMovesToReviewAndStoresGrade(t *testing.T) {
	p, _ := NewPlayer(interactiveAssignment(), student(), nil)
	p.RecordAnswer("e1", "went", -1)
	p.RecordAnswer("e2", "walk", 0)

	grades := NewMemoryGradeStore()
	res, err := p.Submit(context.Background(), grades)
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 10 { // 5 + floor(10/2)
		t.Fatalf("total = %d, want 10", res.Total)
	}
	if p.Mode() != ModeReview {
		t.Fatalf("mode = %s, want review", p.Mode())
	}
	rec, ok, _ := grades.Find(context.Background(), "u-student", "hw-1")
	if !ok {
		t.Fatal("grade record not stored")
	}
	if rec.Score != 10 || rec.MaxScore != 15 {
		t.Fatalf("record = %d/%d, want 10/15", rec.Score, rec.MaxScore)
	}
	if rec.AssignmentTitle != "Unit 3 practice" || rec.StudentName != "Student" {
		t.Fatalf("record denormalization wrong: %+v", rec)
	}
}

func TestSubmitTwiceRejected(t *testing.T) {
	p, _ := NewPlayer(interactiveAssignment(), student(), nil)
	grades := NewMemoryGradeStore()
	if _, err := p.Submit(context.Background(), grades); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Submit(context.Background(), grades); !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("err = %v, want ErrAlreadyReviewed", err)
	}
}

func TestSubmitByTeacherRejected(t *testing.T) {
	p, _ := NewPlayer(interactiveAssignment(), Viewer{ID: "u-t", Role: "teacher"}, nil)
	if _, err := p.Submit(context.Background(), NewMemoryGradeStore()); !errors.Is(err, ErrViewOnly) {
		t.Fatalf("err = %v, want ErrViewOnly", err)
	}
}

// blockingGradeStore parks Upsert until released so a second submit can be
// issued while the first is in flight.
type blockingGradeStore struct {
	entered chan struct{}
	release chan struct{}
	inner   GradeStore
}

func (b *blockingGradeStore) Upsert(ctx context.Context, rec GradeRecord) error {
	close(b.entered)
	<-b.release
	return b.inner.Upsert(ctx, rec)
}

func (b *blockingGradeStore) Find(ctx context.Context, s, a string) (GradeRecord, bool, error) {
	return b.inner.Find(ctx, s, a)
}

func (b *blockingGradeStore) List(ctx context.Context, v Viewer) ([]GradeRecord, error) {
	return b.inner.List(ctx, v)
}

func TestSubmitWhileInFlightRejected(t *testing.T) {
	p, _ := NewPlayer(interactiveAssignment(), student(), nil)
	store := &blockingGradeStore{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		inner:   NewMemoryGradeStore(),
	}

	done := make(chan error, 1)
	go func() {
		_, err := p.Submit(context.Background(), store)
		done <- err
	}()
	<-store.entered

	if p.Mode() != ModeSubmitting {
		t.Fatalf("mode = %s, want submitting", p.Mode())
	}
	if _, err := p.Submit(context.Background(), store); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("err = %v, want ErrSubmitInFlight", err)
	}

	close(store.release)
	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if p.Mode() != ModeReview {
		t.Fatalf("mode = %s, want review after first submit", p.Mode())
	}
}

type failingGradeStore struct{}

func (failingGradeStore) Upsert(context.Context, GradeRecord) error { return errors.New("db down") }
func (failingGradeStore) Find(context.Context, string, string) (GradeRecord, bool, error) {
	return GradeRecord{}, false, nil
}
func (failingGradeStore) List(context.Context, Viewer) ([]GradeRecord, error) { return nil, nil }

func TestSubmitStoreFailureAllowsRetry(t *testing.T) {
	p, _ := NewPlayer(interactiveAssignment(), student(), nil)
	p.RecordAnswer("e1", "went", -1)

	if _, err := p.Submit(context.Background(), failingGradeStore{}); err == nil {
		t.Fatal("expected store error")
	}
	if p.Mode() != ModeAttempt {
		t.Fatalf("mode = %s, want attempt after failed submit", p.Mode())
	}

	grades := NewMemoryGradeStore()
	res, err := p.Submit(context.Background(), grades)
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 5 || p.Mode() != ModeReview {
		t.Fatalf("retry: total=%d mode=%s, want 5/review", res.Total, p.Mode())
	}
}
