package eventlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// Event types recorded by the gateway.
const (
	TypeGradeSubmitted      = "grade.submitted"
	TypeAssignmentPublished = "assignment.published"
	TypeUserCreated         = "user.created"
)

// Event is one append-only audit record. Key identifies the subject
// (assignment id, user id) and Data carries a JSON snapshot.
type Event struct {
	Offset    int64  `json:"offset"`
	Type      string `json:"type"`
	Key       string `json:"key"`
	DataJSON  string `json:"data"`
	CreatedAt int64  `json:"createdAt"`
}

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

// Append writes one event. Payloads that fail to marshal are recorded with
// an empty body rather than dropped.
func (r *Repo) Append(ctx context.Context, typ, key string, payload any) error {
	data := ""
	if payload != nil {
		if b, err := json.Marshal(payload); err == nil {
			data = string(b)
		}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4)`,
		typ, key, data, time.Now().Unix())
	return err
}

// Since returns up to limit events after the given offset, oldest first.
func (r *Repo) Since(ctx context.Context, offset int64, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT "offset", typ, key, data, created_at FROM event_log
		 WHERE "offset" > $1 ORDER BY "offset" LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Offset, &e.Type, &e.Key, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
