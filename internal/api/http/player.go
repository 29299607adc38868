package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/study-link/studylink/internal/eventlog"
	"github.com/study-link/studylink/internal/homework"
)

// playerView is the wire shape of a player session. Result is present only
// in review.
type playerView struct {
	SessionID string                `json:"sessionId"`
	Mode      homework.Mode         `json:"mode"`
	Exercises []homework.Exercise   `json:"exercises"`
	Answers   homework.AnswerSet    `json:"answers"`
	Result    *homework.ScoreResult `json:"result,omitempty"`
}

func playerViewOf(p *homework.Player) playerView {
	v := playerView{
		SessionID: p.ID,
		Mode:      p.Mode(),
		Exercises: p.Assignment.Exercises,
		Answers:   p.Answers(),
	}
	if res, ok := p.Result(); ok {
		v.Result = &res
	}
	return v
}

// OpenPlayerHandler starts a player session for one assignment. A student
// with a prior grade re-opens straight into review with their saved answers;
// teachers and admins always get a read-only preview.
func OpenPlayerHandler(assignments homework.AssignmentStore, grades homework.GradeStore, sessions *homework.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFrom(r)
		a, err := assignments.Get(r.Context(), chi.URLParam(r, "assignmentID"))
		if err != nil {
			http.Error(w, "assignment not found", 404)
			return
		}

		var prior homework.AnswerSet
		if viewer.IsStudent() {
			rec, ok, err := grades.Find(r.Context(), viewer.ID, a.ID)
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			if ok {
				prior = rec.Answers
				if prior == nil {
					prior = homework.AnswerSet{}
				}
			}
		}

		p, err := homework.NewPlayer(a, viewer, prior)
		if err != nil {
			if errors.Is(err, homework.ErrNotInteractive) {
				http.Error(w, err.Error(), 409)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		sessions.Put(p)
		writeJSON(w, 201, playerViewOf(p))
	}
}

type answerReq struct {
	ExerciseID string `json:"exerciseId"`
	Value      string `json:"value"`
	BlankIndex *int   `json:"blankIndex,omitempty"` // nil for multiple choice
}

// RecordAnswerHandler stores one answer on an open session. Outside attempt
// mode the write is silently ignored, mirroring a read-only review screen.
func RecordAnswerHandler(sessions *homework.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := sessions.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "session not found", 404)
			return
		}
		var req answerReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.ExerciseID == "" {
			http.Error(w, "exerciseId required", 400)
			return
		}
		idx := -1
		if req.BlankIndex != nil {
			if *req.BlankIndex < 0 {
				http.Error(w, "blankIndex must be >= 0", 400)
				return
			}
			idx = *req.BlankIndex
		}
		p.RecordAnswer(req.ExerciseID, req.Value, idx)
		writeJSON(w, 200, playerViewOf(p))
	}
}

// SubmitHandler grades the session and persists the grade record. Double
// submits map to 409; a store failure is 503 and leaves the attempt intact
// for retry.
func SubmitHandler(grades homework.GradeStore, sessions *homework.Sessions, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := sessions.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "session not found", 404)
			return
		}
		res, err := p.Submit(r.Context(), grades)
		switch {
		case err == nil:
		case errors.Is(err, homework.ErrViewOnly):
			http.Error(w, err.Error(), 403)
			return
		case errors.Is(err, homework.ErrSubmitInFlight), errors.Is(err, homework.ErrAlreadyReviewed):
			http.Error(w, err.Error(), 409)
			return
		default:
			http.Error(w, "could not save grade, try again", 503)
			return
		}
		if events != nil {
			viewer := viewerFrom(r)
			if err := events.Append(r.Context(), eventlog.TypeGradeSubmitted, p.Assignment.ID,
				map[string]any{"studentId": viewer.ID, "score": res.Total, "maxScore": res.MaxScore}); err != nil {
				log.Printf("eventlog: %v", err)
			}
		}
		writeJSON(w, 200, playerViewOf(p))
	}
}

// ClosePlayerHandler drops the session; closing twice is fine.
func ClosePlayerHandler(sessions *homework.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.Close(chi.URLParam(r, "sessionID"))
		w.WriteHeader(http.StatusNoContent)
	}
}
