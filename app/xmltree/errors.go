package xmltree

import (
	"errors"
	"fmt"
)

var (
	ErrNoRootElement  = errors.New("no root element")
	ErrInvalidTagName = errors.New("invalid tag name")
	ErrMissingEndTag  = errors.New("missing end tag")
	ErrIterationLimit = errors.New("iteration limit exceeded")
)

// SyntaxError is a structural parse failure with the 1-based position of
// the offending byte in the original input.
type SyntaxError struct {
	Err    error
	Detail string
	Line   int
	Col    int
}

func (e *SyntaxError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("line %d:%d: %v: %s", e.Line, e.Col, e.Err, e.Detail)
	}
	return fmt.Sprintf("line %d:%d: %v", e.Line, e.Col, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func (s *scanner) syntaxErr(off int, err error, detail string) *SyntaxError {
	line, col := position(s.src, off)
	return &SyntaxError{Err: err, Detail: detail, Line: line, Col: col}
}

func position(src string, off int) (line, col int) {
	if off > len(src) {
		off = len(src)
	}
	line, col = 1, 1
	for i := 0; i < off; i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
