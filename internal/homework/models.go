package homework

import (
	"encoding/json"
	"errors"
	"fmt"
)

type ExerciseType string

const (
	TypeMultipleChoice ExerciseType = "multiple_choice"
	TypeFillBlank      ExerciseType = "fill_blank"
)

// MultipleChoice is the content payload for a single-answer question.
type MultipleChoice struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// FillBlank is the content payload for templated text with {1}..{n} markers.
// CorrectAnswers holds one entry per marker, in marker order.
type FillBlank struct {
	TextWithBlanks string   `json:"textWithBlanks"`
	CorrectAnswers []string `json:"correctAnswer"`
}

// Exercise is one gradable question unit. Exactly one of Choice/Blank is set,
// matching Type.
type Exercise struct {
	ID          string
	Type        ExerciseType
	Instruction string
	Points      int

	Choice *MultipleChoice
	Blank  *FillBlank
}

// exerciseWire preserves the published JSON shape: a variant "content" object
// keyed by "type".
type exerciseWire struct {
	ID          string          `json:"id"`
	Type        ExerciseType    `json:"type"`
	Instruction string          `json:"instruction"`
	Points      int             `json:"points"`
	Content     json.RawMessage `json:"content"`
}

func (e Exercise) MarshalJSON() ([]byte, error) {
	var content interface{}
	switch e.Type {
	case TypeMultipleChoice:
		content = e.Choice
	case TypeFillBlank:
		content = e.Blank
	default:
		return nil, fmt.Errorf("exercise %s: unknown type %q", e.ID, e.Type)
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(exerciseWire{
		ID:          e.ID,
		Type:        e.Type,
		Instruction: e.Instruction,
		Points:      e.Points,
		Content:     raw,
	})
}

func (e *Exercise) UnmarshalJSON(data []byte) error {
	var w exerciseWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.ID = w.ID
	e.Type = w.Type
	e.Instruction = w.Instruction
	e.Points = w.Points
	e.Choice = nil
	e.Blank = nil
	if len(w.Content) == 0 {
		return nil
	}
	switch w.Type {
	case TypeMultipleChoice:
		var mc MultipleChoice
		if err := json.Unmarshal(w.Content, &mc); err != nil {
			return err
		}
		e.Choice = &mc
	case TypeFillBlank:
		var fb FillBlank
		if err := json.Unmarshal(w.Content, &fb); err != nil {
			return err
		}
		e.Blank = &fb
	default:
		return fmt.Errorf("exercise %s: unknown type %q", w.ID, w.Type)
	}
	return nil
}

// Validate enforces the content-shape invariants: the payload must match the
// declared type, options must be distinct with the key among them, and the
// blank marker count must equal the answer-key length.
func (e Exercise) Validate() error {
	if e.Points < 0 {
		return fmt.Errorf("exercise %s: negative points", e.ID)
	}
	switch e.Type {
	case TypeMultipleChoice:
		if e.Choice == nil || e.Blank != nil {
			return fmt.Errorf("exercise %s: content does not match type %s", e.ID, e.Type)
		}
		if len(e.Choice.Options) < 2 {
			return fmt.Errorf("exercise %s: need at least 2 options", e.ID)
		}
		seen := make(map[string]struct{}, len(e.Choice.Options))
		keyFound := false
		for _, opt := range e.Choice.Options {
			if _, dup := seen[opt]; dup {
				return fmt.Errorf("exercise %s: duplicate option %q", e.ID, opt)
			}
			seen[opt] = struct{}{}
			if opt == e.Choice.CorrectAnswer {
				keyFound = true
			}
		}
		if !keyFound {
			return fmt.Errorf("exercise %s: correct answer not among options", e.ID)
		}
	case TypeFillBlank:
		if e.Blank == nil || e.Choice != nil {
			return fmt.Errorf("exercise %s: content does not match type %s", e.ID, e.Type)
		}
		n, err := CountBlanks(e.Blank.TextWithBlanks)
		if err != nil {
			return fmt.Errorf("exercise %s: %w", e.ID, err)
		}
		if n == 0 {
			return fmt.Errorf("exercise %s: no blank markers", e.ID)
		}
		if n != len(e.Blank.CorrectAnswers) {
			return fmt.Errorf("exercise %s: %d markers but %d answers", e.ID, n, len(e.Blank.CorrectAnswers))
		}
	default:
		return fmt.Errorf("exercise %s: unknown type %q", e.ID, e.Type)
	}
	return nil
}

type AssignmentType string

const (
	AssignmentLegacy      AssignmentType = "legacy"
	AssignmentInteractive AssignmentType = "interactive"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSubmitted Status = "SUBMITTED"
	StatusGraded    Status = "GRADED"
)

// Assignment is a gradable unit of work. Published assignments are immutable;
// the collection is append-only. Status is never stored here: it is derived
// per viewer (see DeriveStatus).
type Assignment struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DueDate     string         `json:"dueDate"`
	CourseID    string         `json:"courseId"`
	GroupID     string         `json:"groupId,omitempty"`
	Type        AssignmentType `json:"type"`
	Points      int            `json:"points"`
	Exercises   []Exercise     `json:"exercises,omitempty"`
}

// Validate checks the interactive invariants: points equal the exercise sum
// and every exercise is itself valid.
func (a Assignment) Validate() error {
	if a.Type != AssignmentInteractive {
		return nil
	}
	if len(a.Exercises) == 0 {
		return errors.New("interactive assignment has no exercises")
	}
	sum := 0
	for _, ex := range a.Exercises {
		if err := ex.Validate(); err != nil {
			return err
		}
		sum += ex.Points
	}
	if sum != a.Points {
		return fmt.Errorf("assignment points %d != exercise sum %d", a.Points, sum)
	}
	return nil
}

// GradeRecord is one learner's outcome for one assignment. At most one exists
// per (StudentID, AssignmentID); a resubmission overwrites the prior record.
type GradeRecord struct {
	ID              string    `json:"id"`
	StudentID       string    `json:"studentId"`
	StudentName     string    `json:"studentName"`
	AssignmentID    string    `json:"assignmentId"`
	AssignmentTitle string    `json:"assignmentTitle"`
	Score           int       `json:"score"`
	MaxScore        int       `json:"maxScore"`
	Date            string    `json:"date"`
	Answers         AnswerSet `json:"answers,omitempty"`
}

// DeriveStatus computes the per-viewer assignment status. GRADED once a grade
// record exists, SUBMITTED when answers exist without a grade (not reachable
// while grading is synchronous), else PENDING.
func DeriveStatus(grade *GradeRecord, hasAnswers bool) Status {
	switch {
	case grade != nil:
		return StatusGraded
	case hasAnswers:
		return StatusSubmitted
	default:
		return StatusPending
	}
}
