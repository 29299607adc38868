package homework

import (
	"reflect"
	"testing"
)

func TestCountBlanks(t *testing.T) {
	cases := []struct {
		text    string
		want    int
		wantErr bool
	}{
		{"no markers here", 0, false},
		{"I {1} to school.", 1, false},
		{"{1} and {2} and {3}", 3, false},
		{"starts at {2}", 0, true},
		{"gap: {1} then {3}", 0, true},
		{"out of order {2} {1}", 0, true},
	}
	for _, c := range cases {
		got, err := CountBlanks(c.text)
		if c.wantErr {
			if err == nil {
				t.Errorf("CountBlanks(%q): expected error", c.text)
			}
			continue
		}
		if err != nil {
			t.Errorf("CountBlanks(%q): %v", c.text, err)
			continue
		}
		if got != c.want {
			t.Errorf("CountBlanks(%q) = %d, want %d", c.text, got, c.want)
		}
	}
}

func TestSplitBlanks(t *testing.T) {
	got := SplitBlanks("I {1} home {2}.")
	want := []Segment{
		{Text: "I "},
		{Blank: 1},
		{Text: " home "},
		{Blank: 2},
		{Text: "."},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitBlanks = %+v, want %+v", got, want)
	}
}

func TestSplitBlanksAdjacentMarkers(t *testing.T) {
	got := SplitBlanks("{1}{2}")
	want := []Segment{{Blank: 1}, {Blank: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitBlanks = %+v, want %+v", got, want)
	}
}
