package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/study-link/studylink/internal/homework"
)

// ErrGeneration wraps every failure of the exercise-generation call so the
// authoring flow can report one retryable error kind: transport errors,
// non-JSON payloads, empty lists and shape violations all land here.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return "exercise generation failed: " + e.Err.Error() }
func (e *GenerationError) Unwrap() error { return e.Err }

// exerciseInstruction fixes the contract with the generator: exactly the two
// supported exercise shapes, JSON only.
const exerciseInstruction = `You are an assistant that creates English practice exercises from source text.
Respond with a JSON array only, no prose and no markdown fences.
Each element must have this shape:
{
  "type": "multiple_choice" | "fill_blank",
  "instruction": "learner-facing prompt",
  "points": <positive integer>,
  "content": {
    for multiple_choice:
      "question": "...",
      "options": ["...", "...", "...", "..."],   // at least 2 distinct strings
      "correctAnswer": "..."                     // exactly one of options
    for fill_blank:
      "textWithBlanks": "text with {1}, {2} markers in ascending order",
      "correctAnswer": ["answer for {1}", "answer for {2}"]  // one per marker
  }
}
Create 3 to 6 exercises, mixing both types. The correctAnswer field is mandatory.`

// GenerateExercises turns free source text into a validated exercise list.
// Every returned exercise carries a fresh unique id; ids from the generator
// are never trusted. Any failure is a *GenerationError and leaves no state
// behind, so the author can simply retry.
func (c *Client) GenerateExercises(ctx context.Context, sourceText string) ([]homework.Exercise, error) {
	if strings.TrimSpace(sourceText) == "" {
		return nil, &GenerationError{Err: fmt.Errorf("empty source text")}
	}
	text, err := c.generateContent(ctx, exerciseInstruction,
		[]genContent{{Role: "user", Parts: []genPart{{Text: sourceText}}}},
		generationConfig{Temperature: 0.7, TopK: 40, TopP: 0.95, ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	var exercises []homework.Exercise
	if err := json.Unmarshal([]byte(stripFences(text)), &exercises); err != nil {
		return nil, &GenerationError{Err: fmt.Errorf("malformed payload: %w", err)}
	}
	if len(exercises) == 0 {
		return nil, &GenerationError{Err: fmt.Errorf("no exercises in payload")}
	}
	for i := range exercises {
		exercises[i].ID = uuid.NewString()
		if err := exercises[i].Validate(); err != nil {
			return nil, &GenerationError{Err: err}
		}
	}
	return exercises, nil
}

// stripFences removes a markdown code fence if the model wrapped its JSON in
// one despite the instruction.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
