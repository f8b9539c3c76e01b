package solver

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/beesolve/internal/model"
)

var (
	// ErrLetterCount is returned when the letters do not normalize to PuzzleSize unique letters.
	ErrLetterCount = errors.New("enter 7 letters")
	// ErrInvalidCenter is returned when the center is not a single letter of the puzzle.
	ErrInvalidCenter = errors.New("invalid letter")
)

// PuzzleInput is a normalized puzzle submission.
type PuzzleInput struct {
	Letters string `validate:"required,len=7,fieldcontains=Center"`
	Center  string `validate:"required,len=1"`
}

var validate = validator.New()

// NewPuzzle normalizes and validates raw form values.
func NewPuzzle(rawLetters, rawCenter string) (model.Puzzle, error) {
	in := PuzzleInput{
		Letters: Normalize(rawLetters),
		Center:  Normalize(rawCenter),
	}
	if err := validate.Struct(in); err != nil {
		return model.Puzzle{}, inputError(in, err)
	}
	center, _ := utf8.DecodeRuneInString(in.Center)
	return model.Puzzle{Letters: in.Letters, Center: center}, nil
}

func inputError(in PuzzleInput, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("invalid puzzle: %w", err)
	}
	fe := verrs[0]
	if fe.Field() == "Letters" && fe.Tag() != "fieldcontains" {
		return fmt.Errorf("%w: got %d unique letters %q", ErrLetterCount, utf8.RuneCountInString(in.Letters), in.Letters)
	}
	return fmt.Errorf("%w: center %q must be one of %q", ErrInvalidCenter, in.Center, in.Letters)
}

// FormMessage returns the short message shown next to a rejected form.
func FormMessage(err error) string {
	switch {
	case errors.Is(err, ErrLetterCount):
		return "Enter 7 letters"
	case errors.Is(err, ErrInvalidCenter):
		return "Invalid letter"
	default:
		return err.Error()
	}
}
