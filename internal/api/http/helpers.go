package http

import (
	"encoding/json"
	"net/http"

	"github.com/study-link/studylink/internal/auth"
	"github.com/study-link/studylink/internal/homework"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// viewerFrom maps the authenticated claims to a store/player viewer. The
// zero Viewer (no id) means the request slipped past the JWT middleware.
func viewerFrom(r *http.Request) homework.Viewer {
	c := auth.ClaimsFromContext(r.Context())
	if c == nil {
		return homework.Viewer{}
	}
	return homework.Viewer{
		ID:      c.Sub,
		Name:    c.Name,
		Role:    c.Role,
		GroupID: c.GroupID,
	}
}
