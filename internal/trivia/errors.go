package trivia

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLine is returned for a recognized-prefix line that is too
	// short to hold its prefix.
	ErrMalformedLine = errors.New("malformed line")

	// ErrEmptyPool is returned when a category resource yields no questions.
	ErrEmptyPool = errors.New("category has no questions")

	// ErrPoolExhausted is returned when every question of a category has
	// already been served and repeats are disabled.
	ErrPoolExhausted = errors.New("question pool exhausted")
)

// ParseError locates a malformed resource line.
type ParseError struct {
	Category Category
	Line     int // 1-based
	Text     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s line %d: %v: %q", e.Category.Slug(), e.Line, ErrMalformedLine, e.Text)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedLine
}
