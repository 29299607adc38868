package homework

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Generator produces exercises from free source text by delegating to the
// external generative-language collaborator.
type Generator interface {
	GenerateExercises(ctx context.Context, sourceText string) ([]Exercise, error)
}

// ValidationError blocks a publish locally; nothing is persisted.
type ValidationError struct{ msg string }

func (e *ValidationError) Error() string { return e.msg }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var validate = validator.New()

// PublishInput is the authoring form for an interactive assignment.
type PublishInput struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	DueDate     string     `json:"dueDate" validate:"required"`
	CourseID    string     `json:"courseId"`
	GroupID     string     `json:"groupId" validate:"required"`
	Exercises   []Exercise `json:"exercises" validate:"required,min=1"`
}

// Publish builds a valid interactive assignment from authoring input: fresh
// id, points summed from the exercises, interactive type. Missing required
// fields or an empty exercise list reject the publish without side effects.
func Publish(in PublishInput) (Assignment, error) {
	if err := validate.Struct(in); err != nil {
		return Assignment{}, &ValidationError{msg: publishErrMsg(err)}
	}
	points := 0
	for _, ex := range in.Exercises {
		if err := ex.Validate(); err != nil {
			return Assignment{}, &ValidationError{msg: err.Error()}
		}
		points += ex.Points
	}
	courseID := in.CourseID
	if courseID == "" {
		courseID = "ENG-AI-GEN"
	}
	return Assignment{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		CourseID:    courseID,
		GroupID:     in.GroupID,
		Type:        AssignmentInteractive,
		Points:      points,
		Exercises:   in.Exercises,
	}, nil
}

func publishErrMsg(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		if f.Tag() == "min" || f.Field() == "Exercises" {
			return "at least one exercise is required"
		}
		return fmt.Sprintf("%s is required", f.Field())
	}
	return err.Error()
}
