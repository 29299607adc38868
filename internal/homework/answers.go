package homework

import "encoding/json"

// Answer is a learner's raw answer for one exercise: a scalar choice for
// multiple_choice, an ordered string sequence for fill_blank. Exactly one
// side is meaningful; a malformed wire value decodes to the zero Answer and
// is treated permissively by the scorer.
type Answer struct {
	Choice string
	Blanks []string

	isChoice bool
	isBlanks bool
}

func ChoiceAnswer(v string) Answer { return Answer{Choice: v, isChoice: true} }

func BlanksAnswer(vs []string) Answer { return Answer{Blanks: vs, isBlanks: true} }

func (a Answer) IsChoice() bool { return a.isChoice }
func (a Answer) IsBlanks() bool { return a.isBlanks }

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.isBlanks {
		return json.Marshal(a.Blanks)
	}
	return json.Marshal(a.Choice)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	*a = Answer{}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Choice = s
		a.isChoice = true
		return nil
	}
	var vs []string
	if err := json.Unmarshal(data, &vs); err == nil {
		a.Blanks = vs
		a.isBlanks = true
		return nil
	}
	// Unknown shape: keep the zero value rather than failing the whole
	// record. The scorer treats it as worth nothing.
	return nil
}

// AnswerSet maps exercise id to the learner's answer for it.
type AnswerSet map[string]Answer

// Clone returns a deep copy so a player session can mutate its working set
// without aliasing the stored snapshot.
func (s AnswerSet) Clone() AnswerSet {
	if s == nil {
		return nil
	}
	out := make(AnswerSet, len(s))
	for k, v := range s {
		if v.isBlanks {
			blanks := make([]string, len(v.Blanks))
			copy(blanks, v.Blanks)
			v.Blanks = blanks
		}
		out[k] = v
	}
	return out
}
