package http

import (
	"database/sql"
	"net/http"

	"github.com/study-link/studylink/internal/auth"
	"github.com/study-link/studylink/internal/flashcards"
)

// FlashcardsHandler serves the vocabulary deck for the caller's level. A
// ?level= query overrides it (teachers previewing another level's deck).
func FlashcardsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		level := r.URL.Query().Get("level")
		if level == "" {
			userID := auth.SubjectFromContext(r.Context())
			// Best effort: an unknown user or empty level falls back to B2.
			_ = db.QueryRowContext(r.Context(),
				`SELECT level FROM users WHERE id=$1`, userID).Scan(&level)
		}
		if level == "" {
			level = "B2"
		}
		writeJSON(w, 200, map[string]any{
			"level": level,
			"cards": flashcards.DeckForLevel(level),
		})
	}
}
