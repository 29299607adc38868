package http

import (
	"net/http"

	"github.com/study-link/studylink/internal/homework"
)

// ListGradesHandler returns the gradebook: a student sees only their own
// records, teachers and admins see everything.
func ListGradesHandler(grades homework.GradeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFrom(r)
		list, err := grades.List(r.Context(), viewer)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		for i := range list {
			list[i].Answers = nil // answers only travel through the player
		}
		writeJSON(w, 200, list)
	}
}
