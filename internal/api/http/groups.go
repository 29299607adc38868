package http

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

type groupView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Level     string `json:"level"`
	TeacherID string `json:"teacherId,omitempty"`
	Students  int    `json:"students"`
}

func ListGroupsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.QueryContext(r.Context(),
			`SELECT g.id, g.name, g.level, g.teacher_id,
			        (SELECT COUNT(*) FROM users u WHERE u.group_id = g.id) AS students
			 FROM groups g ORDER BY g.name`)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		defer rows.Close()
		out := []groupView{}
		for rows.Next() {
			var g groupView
			if err := rows.Scan(&g.ID, &g.Name, &g.Level, &g.TeacherID, &g.Students); err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			out = append(out, g)
		}
		writeJSON(w, 200, out)
	}
}

type createGroupReq struct {
	Name      string `json:"name"`
	Level     string `json:"level"`
	TeacherID string `json:"teacherId"`
}

func CreateGroupHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGroupReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.Name == "" {
			http.Error(w, "name required", 400)
			return
		}
		id := uuid.NewString()
		_, err := db.ExecContext(r.Context(),
			`INSERT INTO groups (id, name, level, teacher_id) VALUES ($1,$2,$3,$4)`,
			id, req.Name, req.Level, req.TeacherID)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, 201, groupView{ID: id, Name: req.Name, Level: req.Level, TeacherID: req.TeacherID})
	}
}
