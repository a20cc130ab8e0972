package parser

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidSyntax is wrapped by every error Parse returns.
var ErrInvalidSyntax = errors.New("invalid syntax")

// Position locates a parse failure in the caller's raw input.
type Position struct {
	Column int // 1-based rune column, whitespace included
	Offset int // 0-based byte offset
}

// ParseError reports where the parser gave up.
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid syntax at column %d: %s", e.Pos.Column, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidSyntax.
func (e *ParseError) Unwrap() error {
	return ErrInvalidSyntax
}

// Common error messages
const (
	errUnexpectedChar = "unexpected %q"
	errUnexpectedEnd  = "unexpected end of input"
	errEmptyInput     = "empty formula"
)

// normalize removes every whitespace rune. offsets[i] is the byte offset in
// input of byte i of the result.
func normalize(input string) (string, []int) {
	out := make([]byte, 0, len(input))
	offsets := make([]int, 0, len(input))
	for i, r := range input {
		if unicode.IsSpace(r) {
			continue
		}
		size := utf8.RuneLen(r)
		if r == utf8.RuneError {
			_, size = utf8.DecodeRuneInString(input[i:])
		}
		for k := 0; k < size; k++ {
			out = append(out, input[i+k])
			offsets = append(offsets, i+k)
		}
	}
	return string(out), offsets
}

// syntaxError builds the error for the furthest failure recorded by p.
func (p *parser) syntaxError(input string, offsets []int) *ParseError {
	if len(p.src) == 0 {
		return &ParseError{Pos: Position{Column: 1}, Message: errEmptyInput}
	}

	pos := p.furthest
	if pos < 0 {
		pos = 0
	}
	if pos >= len(p.src) {
		return &ParseError{
			Pos:     Position{Column: utf8.RuneCountInString(input) + 1, Offset: len(input)},
			Message: errUnexpectedEnd,
		}
	}

	offset := offsets[pos]
	r, _ := utf8.DecodeRuneInString(input[offset:])
	return &ParseError{
		Pos:     Position{Column: utf8.RuneCountInString(input[:offset]) + 1, Offset: offset},
		Message: fmt.Sprintf(errUnexpectedChar, r),
	}
}
