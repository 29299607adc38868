package homework

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Mode is the player state. submitting is a first-class state so "submission
// in flight" can be observed and tested, not an ad hoc flag.
type Mode string

const (
	ModeAttempt    Mode = "attempt"
	ModeSubmitting Mode = "submitting"
	ModeReview     Mode = "review"
)

// Viewer identifies who opened a player (or store query) and with what role.
type Viewer struct {
	ID      string
	Name    string
	Role    string // "student" | "teacher" | "admin"
	GroupID string
}

func (v Viewer) IsStudent() bool { return v.Role == "student" }

var (
	ErrNotInteractive  = errors.New("assignment has no interactive content")
	ErrViewOnly        = errors.New("viewer cannot submit")
	ErrSubmitInFlight  = errors.New("submission already in flight")
	ErrAlreadyReviewed = errors.New("attempt already submitted")
)

// Player drives one viewing session of an interactive assignment: capture
// answers in attempt mode, grade on submit, read-only thereafter.
//
//	attempt --Submit--> submitting --store ok--> review (terminal)
//	                      \--store error--> attempt (manual retry)
type Player struct {
	mu sync.Mutex

	ID         string
	Assignment Assignment
	viewer     Viewer

	mode    Mode
	answers AnswerSet
	result  *ScoreResult
}

// NewPlayer opens a session. It starts in review when prior answers are
// supplied (re-opening a graded assignment) or when the viewer is not a
// student (author preview, scored against an empty answer set); otherwise in
// attempt.
func NewPlayer(a Assignment, viewer Viewer, prior AnswerSet) (*Player, error) {
	if a.Type != AssignmentInteractive || len(a.Exercises) == 0 {
		return nil, ErrNotInteractive
	}
	p := &Player{
		ID:         uuid.NewString(),
		Assignment: a,
		viewer:     viewer,
		mode:       ModeAttempt,
		answers:    AnswerSet{},
	}
	if !viewer.IsStudent() {
		p.mode = ModeReview
	} else if prior != nil {
		p.mode = ModeReview
		p.answers = prior.Clone()
	}
	if p.mode == ModeReview {
		res := Score(a.Exercises, p.answers)
		p.result = &res
	}
	return p, nil
}

func (p *Player) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// Answers returns a snapshot of the working answer set.
func (p *Player) Answers() AnswerSet {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.answers.Clone()
}

// Result returns the graded outcome once the player is in review.
func (p *Player) Result() (ScoreResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.result == nil {
		return ScoreResult{}, false
	}
	return *p.result, true
}

// RecordAnswer stores one answer while in attempt mode; outside attempt it is
// a no-op. blankIndex < 0 replaces the whole answer with a choice value; a
// non-negative blankIndex replaces that one blank, sparse-filling the
// sequence as needed and leaving other blanks untouched. A blankIndex beyond
// the exercise's blank count is ignored, so the slice never grows past the
// answer key.
func (p *Player) RecordAnswer(exerciseID, value string, blankIndex int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != ModeAttempt {
		return
	}
	if blankIndex < 0 {
		p.answers[exerciseID] = ChoiceAnswer(value)
		return
	}
	if blankIndex >= p.blankCount(exerciseID) {
		return
	}
	cur := p.answers[exerciseID]
	blanks := cur.Blanks
	for len(blanks) <= blankIndex {
		blanks = append(blanks, "")
	}
	blanks[blankIndex] = value
	p.answers[exerciseID] = BlanksAnswer(blanks)
}

// blankCount returns the answer-slot count for a fill-blank exercise, 0 for
// unknown ids and other exercise types.
func (p *Player) blankCount(exerciseID string) int {
	for _, ex := range p.Assignment.Exercises {
		if ex.ID == exerciseID && ex.Blank != nil {
			return len(ex.Blank.CorrectAnswers)
		}
	}
	return 0
}

// Submit grades the current answers, persists the grade record (overwriting
// any prior record for this learner and assignment) and moves the player to
// review. Only one submission is accepted: concurrent calls while one is in
// flight get ErrSubmitInFlight, and review is terminal. A store failure
// returns the player to attempt so the learner can retry.
func (p *Player) Submit(ctx context.Context, grades GradeStore) (ScoreResult, error) {
	p.mu.Lock()
	if !p.viewer.IsStudent() {
		p.mu.Unlock()
		return ScoreResult{}, ErrViewOnly
	}
	switch p.mode {
	case ModeSubmitting:
		p.mu.Unlock()
		return ScoreResult{}, ErrSubmitInFlight
	case ModeReview:
		p.mu.Unlock()
		return ScoreResult{}, ErrAlreadyReviewed
	}
	p.mode = ModeSubmitting
	answers := p.answers.Clone()
	p.mu.Unlock()

	res := Score(p.Assignment.Exercises, answers)
	rec := GradeRecord{
		ID:              uuid.NewString(),
		StudentID:       p.viewer.ID,
		StudentName:     p.viewer.Name,
		AssignmentID:    p.Assignment.ID,
		AssignmentTitle: p.Assignment.Title,
		Score:           res.Total,
		MaxScore:        p.Assignment.Points,
		Date:            time.Now().Format("2006-01-02"),
		Answers:         answers,
	}
	err := grades.Upsert(ctx, rec)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.mode = ModeAttempt
		return ScoreResult{}, err
	}
	p.mode = ModeReview
	p.result = &res
	return res, nil
}
