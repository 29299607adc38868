package homework

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// SQLAssignmentStore persists assignments with the exercise list as a JSON
// column, the same way attempts persist their responses.
type SQLAssignmentStore struct {
	db *sql.DB
}

func NewSQLAssignmentStore(db *sql.DB) *SQLAssignmentStore {
	return &SQLAssignmentStore{db: db}
}

func (s *SQLAssignmentStore) Append(ctx context.Context, a Assignment) error {
	var ej []byte
	if a.Exercises != nil {
		var err error
		ej, err = json.Marshal(a.Exercises)
		if err != nil {
			return err
		}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assignments (id,title,description,due_date,course_id,group_id,type,points,exercises_json,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.Title, a.Description, a.DueDate, a.CourseID, a.GroupID, string(a.Type), a.Points, string(ej), time.Now().Unix())
	return err
}

func (s *SQLAssignmentStore) Get(ctx context.Context, id string) (Assignment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,title,description,due_date,course_id,group_id,type,points,exercises_json
		 FROM assignments WHERE id=$1`, id)
	return scanAssignment(row)
}

func (s *SQLAssignmentStore) List(ctx context.Context, viewer Viewer) ([]Assignment, error) {
	q := `SELECT id,title,description,due_date,course_id,group_id,type,points,exercises_json
	      FROM assignments ORDER BY created_at`
	args := []interface{}{}
	if viewer.IsStudent() {
		q = `SELECT id,title,description,due_date,course_id,group_id,type,points,exercises_json
		     FROM assignments WHERE group_id='' OR group_id=$1 ORDER BY created_at`
		args = append(args, viewer.GroupID)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAssignment(row rowScanner) (Assignment, error) {
	var a Assignment
	var typ, ej string
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.DueDate, &a.CourseID, &a.GroupID, &typ, &a.Points, &ej); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Assignment{}, ErrAssignmentNotFound
		}
		return Assignment{}, err
	}
	a.Type = AssignmentType(typ)
	if ej != "" {
		if err := json.Unmarshal([]byte(ej), &a.Exercises); err != nil {
			return Assignment{}, err
		}
	}
	return a, nil
}

// SQLGradeStore enforces the one-record-per-(student,assignment) invariant
// with a unique key and ON CONFLICT overwrite.
type SQLGradeStore struct {
	db *sql.DB
}

func NewSQLGradeStore(db *sql.DB) *SQLGradeStore {
	return &SQLGradeStore{db: db}
}

func (s *SQLGradeStore) Upsert(ctx context.Context, rec GradeRecord) error {
	aj, err := json.Marshal(rec.Answers)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO grades (id,student_id,student_name,assignment_id,assignment_title,score,max_score,submitted_on,answers_json,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT (student_id, assignment_id) DO UPDATE SET
		   id=EXCLUDED.id, student_name=EXCLUDED.student_name,
		   assignment_title=EXCLUDED.assignment_title, score=EXCLUDED.score,
		   max_score=EXCLUDED.max_score, submitted_on=EXCLUDED.submitted_on,
		   answers_json=EXCLUDED.answers_json`,
		rec.ID, rec.StudentID, rec.StudentName, rec.AssignmentID, rec.AssignmentTitle,
		rec.Score, rec.MaxScore, rec.Date, string(aj), time.Now().Unix())
	return err
}

func (s *SQLGradeStore) Find(ctx context.Context, studentID, assignmentID string) (GradeRecord, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,student_id,student_name,assignment_id,assignment_title,score,max_score,submitted_on,answers_json
		 FROM grades WHERE student_id=$1 AND assignment_id=$2`, studentID, assignmentID)
	rec, err := scanGrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return GradeRecord{}, false, nil
	}
	if err != nil {
		return GradeRecord{}, false, err
	}
	return rec, true, nil
}

func (s *SQLGradeStore) List(ctx context.Context, viewer Viewer) ([]GradeRecord, error) {
	q := `SELECT id,student_id,student_name,assignment_id,assignment_title,score,max_score,submitted_on,answers_json
	      FROM grades ORDER BY created_at`
	args := []interface{}{}
	if viewer.IsStudent() {
		q = `SELECT id,student_id,student_name,assignment_id,assignment_title,score,max_score,submitted_on,answers_json
		     FROM grades WHERE student_id=$1 ORDER BY created_at`
		args = append(args, viewer.ID)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []GradeRecord
	for rows.Next() {
		rec, err := scanGrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanGrade(row rowScanner) (GradeRecord, error) {
	var rec GradeRecord
	var aj string
	if err := row.Scan(&rec.ID, &rec.StudentID, &rec.StudentName, &rec.AssignmentID,
		&rec.AssignmentTitle, &rec.Score, &rec.MaxScore, &rec.Date, &aj); err != nil {
		return GradeRecord{}, err
	}
	if aj != "" {
		if err := json.Unmarshal([]byte(aj), &rec.Answers); err != nil {
			rec.Answers = AnswerSet{}
		}
	}
	return rec, nil
}
