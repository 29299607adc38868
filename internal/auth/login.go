package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

type loginReq struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type loginUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Level   string `json:"level,omitempty"`
	GroupID string `json:"groupId,omitempty"`
}

// POST /auth/login  { "phoneNumber": "...", "password": "..." }
func LoginHandler(a *AuthService, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		var u loginUser
		var hash string
		err := db.QueryRowContext(r.Context(),
			`SELECT id, name, password_hash, role, level, group_id FROM users WHERE phone=$1`,
			req.PhoneNumber,
		).Scan(&u.ID, &u.Name, &hash, &u.Role, &u.Level, &u.GroupID)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "invalid phone number or password", http.StatusUnauthorized)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
			http.Error(w, "invalid phone number or password", http.StatusUnauthorized)
			return
		}

		tok, err := a.IssueJWT(u.ID, u.Name, u.Role, u.GroupID)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": tok,
			"user":         u,
		})
	}
}
