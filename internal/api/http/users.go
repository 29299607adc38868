package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/study-link/studylink/internal/auth"
	"github.com/study-link/studylink/internal/eventlog"
)

type userView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Role    string `json:"role"`
	Level   string `json:"level,omitempty"`
	GroupID string `json:"groupId,omitempty"`
}

func ListUsersHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := r.URL.Query().Get("role")
		q := `SELECT id, name, phone, role, level, group_id FROM users`
		args := []any{}
		if role != "" {
			q += ` WHERE role = $1`
			args = append(args, role)
		}
		q += ` ORDER BY name`

		rows, err := db.QueryContext(r.Context(), q, args...)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		defer rows.Close()
		out := []userView{}
		for rows.Next() {
			var u userView
			if err := rows.Scan(&u.ID, &u.Name, &u.Phone, &u.Role, &u.Level, &u.GroupID); err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			out = append(out, u)
		}
		writeJSON(w, 200, out)
	}
}

type createUserReq struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Level    string `json:"level"`
	GroupID  string `json:"groupId"`
}

func CreateUserHandler(db *sql.DB, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.Name == "" || req.Phone == "" || req.Password == "" {
			http.Error(w, "name, phone and password required", 400)
			return
		}
		if req.Role == "" {
			req.Role = "student"
		}
		if req.Role != "student" && req.Role != "teacher" && req.Role != "admin" {
			http.Error(w, "invalid role: "+req.Role, 400)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		id := uuid.NewString()
		_, err = db.ExecContext(r.Context(),
			`INSERT INTO users (id, name, phone, password_hash, role, level, group_id, created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			id, req.Name, req.Phone, string(hash), req.Role, req.Level, req.GroupID, time.Now().Unix())
		if err != nil {
			http.Error(w, "phone already registered", 409)
			return
		}
		if events != nil {
			if err := events.Append(r.Context(), eventlog.TypeUserCreated, id,
				map[string]string{"role": req.Role}); err != nil {
				log.Printf("eventlog: %v", err)
			}
		}
		writeJSON(w, 201, userView{
			ID: id, Name: req.Name, Phone: req.Phone,
			Role: req.Role, Level: req.Level, GroupID: req.GroupID,
		})
	}
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func ChangePasswordHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		if userID == "" {
			http.Error(w, "unauthorized", 401)
			return
		}
		var req changePasswordReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.NewPassword == "" {
			http.Error(w, "new password required", 400)
			return
		}

		var storedHash string
		err := db.QueryRowContext(r.Context(),
			`SELECT password_hash FROM users WHERE id=$1`, userID).Scan(&storedHash)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "user not found", 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.OldPassword)) != nil {
			http.Error(w, "incorrect old password", 403)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if _, err := db.ExecContext(r.Context(),
			`UPDATE users SET password_hash=$1 WHERE id=$2`, hash, userID); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
