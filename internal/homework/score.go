package homework

import (
	"math"
	"strings"
)

// Outcome classifies one exercise for review display. It is derived from the
// same comparisons that produce the numeric score, so the two cannot drift.
type Outcome string

const (
	OutcomeCorrect    Outcome = "correct"
	OutcomeIncorrect  Outcome = "incorrect"
	OutcomePartial    Outcome = "partial"
	OutcomeUnanswered Outcome = "unanswered"
)

// ExerciseResult is the graded outcome of one exercise.
type ExerciseResult struct {
	ExerciseID string  `json:"exerciseId"`
	Awarded    int     `json:"awarded"`
	MaxPoints  int     `json:"maxPoints"`
	Outcome    Outcome `json:"outcome"`
	// BlankCorrect marks each blank of a fill_blank exercise; nil for
	// multiple_choice.
	BlankCorrect []bool `json:"blankCorrect,omitempty"`
}

// ScoreResult is the graded outcome of a whole answer set, in exercise order.
type ScoreResult struct {
	Total     int              `json:"total"`
	MaxScore  int              `json:"maxScore"`
	Exercises []ExerciseResult `json:"exercises"`
}

// scorer grades a single exercise kind. Mirrors the per-type strategy
// routing of the submit path.
type scorer func(ex Exercise, ans Answer) ExerciseResult

var scorers = map[ExerciseType]scorer{
	TypeMultipleChoice: scoreChoice,
	TypeFillBlank:      scoreBlanks,
}

// Score grades answers against exercises. It is a pure function: no side
// effects, deterministic, safe to recompute at submit time and again when a
// past review is re-displayed. Answers for unknown exercise ids are ignored;
// missing or malformed answers contribute 0 and never error.
func Score(exercises []Exercise, answers AnswerSet) ScoreResult {
	res := ScoreResult{Exercises: make([]ExerciseResult, 0, len(exercises))}
	for _, ex := range exercises {
		res.MaxScore += ex.Points
		ans, has := answers[ex.ID]
		var er ExerciseResult
		if !has {
			er = ExerciseResult{ExerciseID: ex.ID, MaxPoints: ex.Points, Outcome: OutcomeUnanswered}
		} else if grade, ok := scorers[ex.Type]; ok {
			er = grade(ex, ans)
		} else {
			er = ExerciseResult{ExerciseID: ex.ID, MaxPoints: ex.Points, Outcome: OutcomeIncorrect}
		}
		res.Total += er.Awarded
		res.Exercises = append(res.Exercises, er)
	}
	return res
}

func scoreChoice(ex Exercise, ans Answer) ExerciseResult {
	res := ExerciseResult{ExerciseID: ex.ID, MaxPoints: ex.Points, Outcome: OutcomeIncorrect}
	if ex.Choice == nil || !ans.IsChoice() {
		return res
	}
	// Case-sensitive exact match; options are verbatim strings.
	if ans.Choice == ex.Choice.CorrectAnswer {
		res.Awarded = ex.Points
		res.Outcome = OutcomeCorrect
	}
	return res
}

func scoreBlanks(ex Exercise, ans Answer) ExerciseResult {
	res := ExerciseResult{ExerciseID: ex.ID, MaxPoints: ex.Points, Outcome: OutcomeIncorrect}
	if ex.Blank == nil || !ans.IsBlanks() {
		return res
	}
	keys := ex.Blank.CorrectAnswers
	if len(keys) == 0 {
		return res
	}
	res.BlankCorrect = make([]bool, len(keys))
	weight := float64(ex.Points) / float64(len(keys))
	earned := 0.0
	matched := 0
	for i, key := range keys {
		var got string
		if i < len(ans.Blanks) {
			got = ans.Blanks[i]
		}
		if blankMatches(got, key) {
			res.BlankCorrect[i] = true
			earned += weight
			matched++
		}
	}
	// Per-exercise floor: fractional credit across blanks is truncated,
	// never rounded up. A fully correct exercise earns exactly its points so
	// the correct classification and full credit cannot drift apart on
	// accumulated float error.
	switch {
	case matched == len(keys):
		res.Awarded = ex.Points
		res.Outcome = OutcomeCorrect
	case matched > 0:
		res.Awarded = int(math.Floor(earned))
		res.Outcome = OutcomePartial
	}
	return res
}

// blankMatches compares one blank answer against its key: case-insensitive,
// whitespace-trimmed.
func blankMatches(got, key string) bool {
	return strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(key))
}
