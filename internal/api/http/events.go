package http

import (
	"net/http"
	"strconv"

	"github.com/study-link/studylink/internal/eventlog"
)

// ListEventsHandler pages through the audit log: ?after=<offset>&limit=<n>,
// oldest first.
func ListEventsHandler(events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		after, _ := strconv.ParseInt(r.URL.Query().Get("after"), 10, 64)
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		list, err := events.Since(r.Context(), after, limit)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, 200, list)
	}
}
