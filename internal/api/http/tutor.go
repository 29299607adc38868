package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/study-link/studylink/internal/genai"
)

type tutorReq struct {
	Message string       `json:"message"`
	History []genai.Turn `json:"history,omitempty"`
}

// TutorChatHandler relays one chat turn to the tutor model. The endpoint
// never fails on model trouble: the client always gets a reply string, a
// canned one when the model is unreachable.
func TutorChatHandler(client *genai.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tutorReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.Message == "" {
			http.Error(w, "message required", 400)
			return
		}
		reply, err := client.TutorReply(r.Context(), req.Message, req.History)
		if err != nil {
			if errors.Is(err, genai.ErrNotConfigured) {
				reply = genai.TutorUnavailableReply
			} else {
				log.Printf("tutor: %v", err)
				reply = genai.TutorErrorReply
			}
		}
		writeJSON(w, 200, map[string]string{"reply": reply})
	}
}
