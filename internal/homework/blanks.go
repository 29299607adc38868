package homework

import (
	"fmt"
	"regexp"
	"strconv"
)

var blankMarker = regexp.MustCompile(`\{(\d+)\}`)

// CountBlanks returns the number of {n} markers in text after checking that
// they run 1..n ascending with no gaps.
func CountBlanks(text string) (int, error) {
	matches := blankMarker.FindAllStringSubmatch(text, -1)
	for i, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("bad blank marker %q", m[0])
		}
		if n != i+1 {
			return 0, fmt.Errorf("blank markers out of order: expected {%d}, got %q", i+1, m[0])
		}
	}
	return len(matches), nil
}

// Segment is one piece of a fill-blank template: either literal text or a
// blank position (1-based). Used to render the template without re-parsing
// markers on the client.
type Segment struct {
	Text  string `json:"text,omitempty"`
	Blank int    `json:"blank,omitempty"`
}

// SplitBlanks splits templated text into alternating text and blank segments,
// in document order. Empty text runs are dropped.
func SplitBlanks(text string) []Segment {
	var out []Segment
	last := 0
	for _, loc := range blankMarker.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			out = append(out, Segment{Text: text[last:loc[0]]})
		}
		n, _ := strconv.Atoi(text[loc[2]:loc[3]])
		out = append(out, Segment{Blank: n})
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, Segment{Text: text[last:]})
	}
	return out
}
