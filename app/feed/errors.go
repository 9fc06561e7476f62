package feed

import (
	"errors"
	"fmt"

	"github.com/feedsift/feedsift/app/xmltree"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	ErrorMalformedXML ErrorKind = iota + 1
	ErrorInvalidJSON
	ErrorChannelNotFound
	ErrorFeedRootNotFound
	ErrorVersionNotFound
	ErrorItemsNotFound
	ErrorTitleNotFound
	ErrorUnsupportedFormat
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorMalformedXML:
		return "malformed xml"
	case ErrorInvalidJSON:
		return "invalid json"
	case ErrorChannelNotFound:
		return "rss channel not found"
	case ErrorFeedRootNotFound:
		return "atom feed root not found"
	case ErrorVersionNotFound:
		return "json feed version not found"
	case ErrorItemsNotFound:
		return "json feed items not found"
	case ErrorTitleNotFound:
		return "json feed title not found"
	case ErrorUnsupportedFormat:
		return "unsupported feed format"
	default:
		return "parse error"
	}
}

// Error is the typed failure returned across the package boundary: a kind,
// the source URL, an optional position, and an optional underlying cause.
type Error struct {
	Kind      ErrorKind
	SourceURL string
	Line      int
	Col       int
	Err       error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.SourceURL != "" {
		msg = fmt.Sprintf("%s: %s", e.SourceURL, msg)
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d:%d)", msg, e.Line, e.Col)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether re-fetching the same document could help.
// Everything the parser itself produces is deterministic, so the answer is
// always no; retryable errors belong to the fetch layer.
func (e *Error) Retryable() bool {
	return false
}

// NewError builds a boundary error with no position information.
func NewError(kind ErrorKind, sourceURL string, err error) *Error {
	return &Error{Kind: kind, SourceURL: sourceURL, Err: err}
}

// WrapXML converts a tree-builder failure into a boundary error, carrying
// over the syntax position when there is one.
func WrapXML(sourceURL string, err error) *Error {
	e := &Error{Kind: ErrorMalformedXML, SourceURL: sourceURL, Err: err}
	var syn *xmltree.SyntaxError
	if errors.As(err, &syn) {
		e.Line, e.Col = syn.Line, syn.Col
	}
	return e
}

// KindOf extracts the ErrorKind from err, or 0 if err is not a feed error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
