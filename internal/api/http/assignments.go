package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/study-link/studylink/internal/eventlog"
	"github.com/study-link/studylink/internal/homework"
)

// assignmentView is an assignment plus the viewer-dependent fields the list
// endpoint adds: derived status and, for graded students, the grade summary.
type assignmentView struct {
	homework.Assignment
	Status homework.Status       `json:"status"`
	Grade  *homework.GradeRecord `json:"grade,omitempty"`
}

func ListAssignmentsHandler(assignments homework.AssignmentStore, grades homework.GradeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFrom(r)
		list, err := assignments.List(r.Context(), viewer)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		// One grade query for the whole list, indexed by assignment.
		var byAssignment map[string]homework.GradeRecord
		if viewer.IsStudent() {
			recs, err := grades.List(r.Context(), viewer)
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			byAssignment = make(map[string]homework.GradeRecord, len(recs))
			for _, rec := range recs {
				byAssignment[rec.AssignmentID] = rec
			}
		}
		out := make([]assignmentView, 0, len(list))
		for _, a := range list {
			v := assignmentView{Assignment: a, Status: homework.StatusPending}
			if rec, ok := byAssignment[a.ID]; ok {
				v.Status = homework.DeriveStatus(&rec, true)
				rec.Answers = nil // answers only travel through the player
				v.Grade = &rec
			}
			out = append(out, v)
		}
		writeJSON(w, 200, out)
	}
}

func GetAssignmentHandler(assignments homework.AssignmentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "assignmentID")
		a, err := assignments.Get(r.Context(), id)
		if err != nil {
			http.Error(w, "assignment not found", 404)
			return
		}
		writeJSON(w, 200, a)
	}
}

func PublishAssignmentHandler(assignments homework.AssignmentStore, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in homework.PublishInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		a, err := homework.Publish(in)
		if err != nil {
			if homework.IsValidation(err) {
				http.Error(w, err.Error(), 422)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		if err := assignments.Append(r.Context(), a); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if events != nil {
			if err := events.Append(r.Context(), eventlog.TypeAssignmentPublished, a.ID,
				map[string]any{"title": a.Title, "points": a.Points}); err != nil {
				log.Printf("eventlog: %v", err)
			}
		}
		writeJSON(w, 201, a)
	}
}

type generateReq struct {
	SourceText string `json:"sourceText"`
}

// GenerateExercisesHandler calls the exercise generator and returns the
// validated draft list. Nothing is persisted; the author reviews and then
// publishes explicitly.
func GenerateExercisesHandler(gen homework.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		exercises, err := gen.GenerateExercises(r.Context(), req.SourceText)
		if err != nil {
			log.Printf("generate: %v", err)
			writeJSON(w, 502, map[string]any{
				"error":     "generation failed, please retry",
				"retryable": true,
			})
			return
		}
		writeJSON(w, 200, map[string]any{"exercises": exercises})
	}
}
