package homework

import (
	"reflect"
	"testing"
)

func mcExercise(id string, points int, options []string, key string) Exercise {
	return Exercise{
		ID: id, Type: TypeMultipleChoice, Points: points,
		Choice: &MultipleChoice{Question: "q", Options: options, CorrectAnswer: key},
	}
}

func fbExercise(id string, points int, text string, keys []string) Exercise {
	return Exercise{
		ID: id, Type: TypeFillBlank, Points: points,
		Blank: &FillBlank{TextWithBlanks: text, CorrectAnswers: keys},
	}
}

func TestScoreMixedAssignment(t *testing.T) {
	exercises := []Exercise{
		mcExercise("e1", 5, []string{"go", "went", "gone"}, "went"),
		fbExercise("e2", 10, "I {1} to school and {2} home.", []string{"walk", "run"}),
	}
	answers := AnswerSet{
		"e1": ChoiceAnswer("went"),
		"e2": BlanksAnswer([]string{"walk", "swim"}),
	}

	res := Score(exercises, answers)
	if res.MaxScore != 15 {
		t.Fatalf("max score = %d, want 15", res.MaxScore)
	}
	if res.Total != 10 {
		t.Fatalf("total = %d, want 10", res.Total)
	}
	if res.Exercises[0].Outcome != OutcomeCorrect || res.Exercises[0].Awarded != 5 {
		t.Errorf("e1 = %+v, want correct/5", res.Exercises[0])
	}
	if res.Exercises[1].Outcome != OutcomePartial || res.Exercises[1].Awarded != 5 {
		t.Errorf("e2 = %+v, want partial/5", res.Exercises[1])
	}
	if got := res.Exercises[1].BlankCorrect; !reflect.DeepEqual(got, []bool{true, false}) {
		t.Errorf("e2 blanks = %v, want [true false]", got)
	}
}

func TestScoreChoiceCaseSensitive(t *testing.T) {
	ex := []Exercise{mcExercise("e1", 3, []string{"Paris", "paris"}, "Paris")}
	res := Score(ex, AnswerSet{"e1": ChoiceAnswer("paris")})
	if res.Total != 0 || res.Exercises[0].Outcome != OutcomeIncorrect {
		t.Fatalf("got %+v, choice match must be case-sensitive", res.Exercises[0])
	}
}

func TestScoreBlanksCaseInsensitiveTrimmed(t *testing.T) {
	ex := []Exercise{fbExercise("e1", 4, "{1} and {2}", []string{"Apple", "pear"})}
	res := Score(ex, AnswerSet{"e1": BlanksAnswer([]string{"  apple ", "PEAR"})})
	if res.Total != 4 || res.Exercises[0].Outcome != OutcomeCorrect {
		t.Fatalf("got total=%d outcome=%s, want 4/correct", res.Total, res.Exercises[0].Outcome)
	}
}

func TestScoreBlanksPartialFloors(t *testing.T) {
	// 7 points over 3 blanks, 2 correct: 2*(7/3) = 4.66..., floored to 4.
	ex := []Exercise{fbExercise("e1", 7, "{1} {2} {3}", []string{"a", "b", "c"})}
	res := Score(ex, AnswerSet{"e1": BlanksAnswer([]string{"a", "b", "x"})})
	if res.Total != 4 {
		t.Fatalf("total = %d, want 4 (floored)", res.Total)
	}
	if res.Exercises[0].Outcome != OutcomePartial {
		t.Fatalf("outcome = %s, want partial", res.Exercises[0].Outcome)
	}
}

func TestScoreBlanksFullMatchAwardsExactPoints(t *testing.T) {
	// 1 point over 3 blanks: per-blank weight is not representable exactly,
	// but a fully correct exercise must still earn its full 1 point.
	ex := []Exercise{fbExercise("e1", 1, "{1} {2} {3}", []string{"a", "b", "c"})}
	res := Score(ex, AnswerSet{"e1": BlanksAnswer([]string{"a", "b", "c"})})
	if res.Total != 1 || res.Exercises[0].Outcome != OutcomeCorrect {
		t.Fatalf("got total=%d outcome=%s, want 1/correct", res.Total, res.Exercises[0].Outcome)
	}
}

func TestScoreUnansweredAndMalformed(t *testing.T) {
	ex := []Exercise{
		mcExercise("e1", 2, []string{"a", "b"}, "a"),
		fbExercise("e2", 2, "{1}", []string{"x"}),
	}
	// e1 missing entirely, e2 answered with the wrong shape.
	res := Score(ex, AnswerSet{"e2": ChoiceAnswer("x")})
	if res.Total != 0 {
		t.Fatalf("total = %d, want 0", res.Total)
	}
	if res.Exercises[0].Outcome != OutcomeUnanswered {
		t.Errorf("e1 outcome = %s, want unanswered", res.Exercises[0].Outcome)
	}
	if res.Exercises[1].Outcome != OutcomeIncorrect {
		t.Errorf("e2 outcome = %s, want incorrect", res.Exercises[1].Outcome)
	}
}

func TestScoreIgnoresUnknownExerciseIDs(t *testing.T) {
	ex := []Exercise{mcExercise("e1", 2, []string{"a", "b"}, "a")}
	res := Score(ex, AnswerSet{"e1": ChoiceAnswer("a"), "ghost": ChoiceAnswer("a")})
	if res.Total != 2 || len(res.Exercises) != 1 {
		t.Fatalf("got %+v, unknown ids must be ignored", res)
	}
}

func TestScoreDeterministic(t *testing.T) {
	ex := []Exercise{
		mcExercise("e1", 5, []string{"a", "b"}, "b"),
		fbExercise("e2", 6, "{1} {2}", []string{"x", "y"}),
	}
	ans := AnswerSet{"e1": ChoiceAnswer("b"), "e2": BlanksAnswer([]string{"x", "wrong"})}
	first := Score(ex, ans)
	for i := 0; i < 10; i++ {
		if got := Score(ex, ans); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d diverged: %+v vs %+v", i, got, first)
		}
	}
}
