package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/study-link/studylink/internal/auth"
	"github.com/study-link/studylink/internal/homework"
)

// asUser injects claims the way the JWT middleware would.
func asUser(c *auth.Claims) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), c)))
		})
	}
}

func testRouter(assignments homework.AssignmentStore, grades homework.GradeStore, sessions *homework.Sessions, claims *auth.Claims) *chi.Mux {
	r := chi.NewRouter()
	r.Use(asUser(claims))
	r.Get("/assignments", ListAssignmentsHandler(assignments, grades))
	r.Post("/assignments/{assignmentID}/player", OpenPlayerHandler(assignments, grades, sessions))
	r.Put("/player/{sessionID}/answers", RecordAnswerHandler(sessions))
	r.Post("/player/{sessionID}/submit", SubmitHandler(grades, sessions, nil))
	r.Delete("/player/{sessionID}", ClosePlayerHandler(sessions))
	r.Get("/grades", ListGradesHandler(grades))
	return r
}

func seedAssignment(t *testing.T, store homework.AssignmentStore) homework.Assignment {
	t.Helper()
	a := homework.Assignment{
		ID: "hw-1", Title: "Unit 3", DueDate: "2026-09-15", GroupID: "grp-b2",
		Type: homework.AssignmentInteractive, Points: 15,
		Exercises: []homework.Exercise{
			{ID: "e1", Type: homework.TypeMultipleChoice, Points: 5,
				Choice: &homework.MultipleChoice{Question: "q", Options: []string{"go", "went"}, CorrectAnswer: "went"}},
			{ID: "e2", Type: homework.TypeFillBlank, Points: 10,
				Blank: &homework.FillBlank{TextWithBlanks: "I {1} and {2}.", CorrectAnswers: []string{"walk", "run"}}},
		},
	}
	if err := store.Append(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	return a
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStudentAttemptFlow(t *testing.T) {
	assignments := homework.NewMemoryAssignmentStore()
	grades := homework.NewMemoryGradeStore()
	sessions := homework.NewSessions()
	seedAssignment(t, assignments)

	student := &auth.Claims{Sub: "u-student", Name: "Student", Role: "student", GroupID: "grp-b2"}
	r := testRouter(assignments, grades, sessions, student)

	// Open a player session.
	w := do(t, r, "POST", "/assignments/hw-1/player", nil)
	if w.Code != 201 {
		t.Fatalf("open: status %d: %s", w.Code, w.Body)
	}
	var opened playerView
	if err := json.Unmarshal(w.Body.Bytes(), &opened); err != nil {
		t.Fatal(err)
	}
	if opened.Mode != homework.ModeAttempt {
		t.Fatalf("mode = %s, want attempt", opened.Mode)
	}

	// Answer both exercises.
	one := 1
	for _, req := range []answerReq{
		{ExerciseID: "e1", Value: "went"},
		{ExerciseID: "e2", Value: "walk", BlankIndex: new(int)},
		{ExerciseID: "e2", Value: "run", BlankIndex: &one},
	} {
		w = do(t, r, "PUT", "/player/"+opened.SessionID+"/answers", req)
		if w.Code != 200 {
			t.Fatalf("answer: status %d: %s", w.Code, w.Body)
		}
	}

	// Submit and check review.
	w = do(t, r, "POST", "/player/"+opened.SessionID+"/submit", nil)
	if w.Code != 200 {
		t.Fatalf("submit: status %d: %s", w.Code, w.Body)
	}
	var reviewed playerView
	if err := json.Unmarshal(w.Body.Bytes(), &reviewed); err != nil {
		t.Fatal(err)
	}
	if reviewed.Mode != homework.ModeReview || reviewed.Result == nil {
		t.Fatalf("after submit: mode=%s result=%v", reviewed.Mode, reviewed.Result)
	}
	if reviewed.Result.Total != 15 {
		t.Fatalf("total = %d, want 15", reviewed.Result.Total)
	}

	// Double submit is rejected.
	if w = do(t, r, "POST", "/player/"+opened.SessionID+"/submit", nil); w.Code != 409 {
		t.Fatalf("double submit: status %d, want 409", w.Code)
	}

	// Assignment list now shows GRADED with the grade summary.
	w = do(t, r, "GET", "/assignments", nil)
	var list []assignmentView
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Status != homework.StatusGraded || list[0].Grade == nil {
		t.Fatalf("list = %+v, want one graded entry", list)
	}
	if list[0].Grade.Score != 15 {
		t.Fatalf("grade score = %d, want 15", list[0].Grade.Score)
	}

	// Close, then re-open: lands straight in review with prior answers.
	if w = do(t, r, "DELETE", "/player/"+opened.SessionID, nil); w.Code != 204 {
		t.Fatalf("close: status %d", w.Code)
	}
	w = do(t, r, "POST", "/assignments/hw-1/player", nil)
	var reopened playerView
	if err := json.Unmarshal(w.Body.Bytes(), &reopened); err != nil {
		t.Fatal(err)
	}
	if reopened.Mode != homework.ModeReview || reopened.Result == nil || reopened.Result.Total != 15 {
		t.Fatalf("re-open = %+v, want review with total 15", reopened)
	}
}

func TestTeacherPreviewCannotSubmit(t *testing.T) {
	assignments := homework.NewMemoryAssignmentStore()
	grades := homework.NewMemoryGradeStore()
	sessions := homework.NewSessions()
	seedAssignment(t, assignments)

	teacher := &auth.Claims{Sub: "u-teacher", Name: "Teacher", Role: "teacher"}
	r := testRouter(assignments, grades, sessions, teacher)

	w := do(t, r, "POST", "/assignments/hw-1/player", nil)
	var opened playerView
	if err := json.Unmarshal(w.Body.Bytes(), &opened); err != nil {
		t.Fatal(err)
	}
	if opened.Mode != homework.ModeReview {
		t.Fatalf("teacher mode = %s, want review", opened.Mode)
	}
	if w = do(t, r, "POST", "/player/"+opened.SessionID+"/submit", nil); w.Code != 403 {
		t.Fatalf("teacher submit: status %d, want 403", w.Code)
	}
}

func TestOpenPlayerUnknownAssignment(t *testing.T) {
	r := testRouter(homework.NewMemoryAssignmentStore(), homework.NewMemoryGradeStore(),
		homework.NewSessions(), &auth.Claims{Sub: "s", Role: "student"})
	if w := do(t, r, "POST", "/assignments/nope/player", nil); w.Code != 404 {
		t.Fatalf("status %d, want 404", w.Code)
	}
}

func TestListAssignmentsMixedStatuses(t *testing.T) {
	assignments := homework.NewMemoryAssignmentStore()
	grades := homework.NewMemoryGradeStore()
	sessions := homework.NewSessions()
	seedAssignment(t, assignments)
	_ = assignments.Append(context.Background(), homework.Assignment{
		ID: "hw-2", Title: "Unit 4", Type: homework.AssignmentInteractive, Points: 5,
		Exercises: []homework.Exercise{
			{ID: "e1", Type: homework.TypeMultipleChoice, Points: 5,
				Choice: &homework.MultipleChoice{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: "a"}},
		},
	})
	_ = grades.Upsert(context.Background(), homework.GradeRecord{
		ID: "g1", StudentID: "u-student", AssignmentID: "hw-1", Score: 12, MaxScore: 15,
		Answers: homework.AnswerSet{"e1": homework.ChoiceAnswer("went")},
	})

	student := &auth.Claims{Sub: "u-student", Role: "student", GroupID: "grp-b2"}
	w := do(t, testRouter(assignments, grades, sessions, student), "GET", "/assignments", nil)
	var list []assignmentView
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d assignments, want 2", len(list))
	}
	if list[0].Status != homework.StatusGraded || list[0].Grade == nil || list[0].Grade.Score != 12 {
		t.Fatalf("hw-1 = %+v, want graded with score 12", list[0])
	}
	if len(list[0].Grade.Answers) != 0 {
		t.Fatal("grade answers must not leak into the list view")
	}
	if list[1].Status != homework.StatusPending || list[1].Grade != nil {
		t.Fatalf("hw-2 = %+v, want pending without a grade", list[1])
	}
}

func TestGradesVisibilityByRole(t *testing.T) {
	grades := homework.NewMemoryGradeStore()
	_ = grades.Upsert(context.Background(), homework.GradeRecord{StudentID: "alice", AssignmentID: "hw"})
	_ = grades.Upsert(context.Background(), homework.GradeRecord{StudentID: "bob", AssignmentID: "hw"})

	sessions := homework.NewSessions()
	assignments := homework.NewMemoryAssignmentStore()

	r := testRouter(assignments, grades, sessions, &auth.Claims{Sub: "alice", Role: "student"})
	w := do(t, r, "GET", "/grades", nil)
	var own []homework.GradeRecord
	if err := json.Unmarshal(w.Body.Bytes(), &own); err != nil {
		t.Fatal(err)
	}
	if len(own) != 1 || own[0].StudentID != "alice" {
		t.Fatalf("student grades = %+v, want only alice", own)
	}

	r = testRouter(assignments, grades, sessions, &auth.Claims{Sub: "t", Role: "teacher"})
	w = do(t, r, "GET", "/grades", nil)
	var all []homework.GradeRecord
	if err := json.Unmarshal(w.Body.Bytes(), &all); err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("teacher grades = %d records, want 2", len(all))
	}
}
