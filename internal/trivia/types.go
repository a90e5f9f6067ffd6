package trivia

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// PageSize is the fixed number of questions per page.
const PageSize = 10

// Difficulty bounds for a question.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

var (
	// ErrValidation marks a create payload with missing or empty required fields.
	ErrValidation = errors.New("validation failed")
	// ErrPageOutOfRange marks a request for a page past the end of the
	// unfiltered question list.
	ErrPageOutOfRange = errors.New("page out of range")
)

// Question is a trivia question as served on the wire. Category carries the
// category id, not the name.
type Question struct {
	ID         int32  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int32  `json:"category"`
	Difficulty int32  `json:"difficulty"`
}

// Category is a named grouping of questions.
type Category struct {
	ID   int32
	Name string
}

// NewQuestion carries the fields required to create a question.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int32
	Difficulty int32
}

// Validate checks required fields. Category existence is deliberately not
// checked; unknown category ids are accepted.
func (n NewQuestion) Validate() error {
	if n.Question == "" {
		return fmt.Errorf("%w: question text is required", ErrValidation)
	}
	if n.Answer == "" {
		return fmt.Errorf("%w: answer text is required", ErrValidation)
	}
	if n.Category <= 0 {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if n.Difficulty < MinDifficulty || n.Difficulty > MaxDifficulty {
		return fmt.Errorf("%w: difficulty must be between %d and %d", ErrValidation, MinDifficulty, MaxDifficulty)
	}
	return nil
}

// FlexID is an id that clients may encode as a JSON number or a quoted
// number (the reference web client sends category ids as strings).
type FlexID int32

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 32)
	if err != nil {
		return fmt.Errorf("invalid id %q", data)
	}
	*f = FlexID(v)
	return nil
}
