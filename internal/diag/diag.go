// Package diag maps source locations back to file/line/column spans and
// carries the pipeline's error taxonomy.
//
// A Location never owns a buffer; it is a thin (file, offset) pair that
// stays valid for as long as the Source it points into does (see
// package source for ownership rules).
package diag

import (
	"fmt"
	"sync"
)

// Kind classifies an Error by which pipeline stage raised it.
type Kind int

const (
	Lex Kind = iota
	Parse
	Lower
	Slice
	BoolOp
	Triangulate
	IO
	CLI
)

var kindNames = [...]string{
	Lex:         "lex",
	Parse:       "parse",
	Lower:       "lower",
	Slice:       "slice",
	BoolOp:      "boolop",
	Triangulate: "triangulate",
	IO:          "io",
	CLI:         "cli",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Policy names the three ways a diagnostic of a given Kind can be
// handled: fail, warn or ignore. No stage of the pipeline reads a Policy
// value; every diagnostic is handled as PolicyFail.
type Policy int

const (
	PolicyFail Policy = iota
	PolicyWarn
	PolicyIgnore
)

// Locatable is implemented by anything that can resolve an Offset back to
// a file, line, and column. Package source implements this.
type Locatable interface {
	Describe(offset int) (file string, line, col int, snippet string)
}

// Location is any byte offset into a source file's working buffer.
type Location struct {
	File   Locatable
	Offset int
}

// IsZero reports whether the location carries no file.
func (l Location) IsZero() bool { return l.File == nil }

func (l Location) String() string {
	if l.IsZero() {
		return "<no location>"
	}
	file, line, col, _ := l.File.Describe(l.Offset)
	return fmt.Sprintf("%s:%d:%d", file, line, col)
}

// Error is the pipeline's single error record shape. It is always wrapped
// by Go's error interface via (*Error).Error, never returned bare.
type Error struct {
	Kind      Kind
	Message   string
	Primary   Location
	Secondary *Location // optional related site, e.g. an unterminated block's opener
}

func (e *Error) Error() string {
	if e.Primary.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	file, line, col, snippet := e.Primary.File.Describe(e.Primary.Offset)
	msg := fmt.Sprintf("%s:%d:%d: %s: %s", file, line, col, e.Kind, e.Message)
	if snippet != "" {
		caret := make([]byte, 0, col)
		for i := 1; i < col; i++ {
			caret = append(caret, ' ')
		}
		msg += fmt.Sprintf("\n  %s\n  %s^", snippet, string(caret))
	}
	if e.Secondary != nil {
		msg += fmt.Sprintf(" (related: %s)", e.Secondary)
	}
	return msg
}

// New builds an Error at the given location.
func New(kind Kind, loc Location, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Primary: loc}
}

// WithSecondary attaches a related location, e.g. the opening brace of an
// unterminated block, and returns the same *Error for chaining.
func (e *Error) WithSecondary(loc Location) *Error {
	e.Secondary = &loc
	return e
}

// Sink is the layer driver's error record described in spec §5 and §7:
// of every error reported through it, the one from the lowest layer index
// wins, regardless of the order concurrent workers report in. It is safe
// for concurrent use by the layer driver's worker pool.
type Sink struct {
	mu    sync.Mutex
	err   *Error
	layer int
}

// Report records err as the sink's error if none has been recorded yet,
// or if layer is strictly lower than the layer of the error already
// recorded (spec §4.4: "the driver reports the first such error (lowest
// layer index wins on ties)"). It reports whether this call's error is
// the one now held.
func (s *Sink) Report(layer int, err *Error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil && layer >= s.layer {
		return false
	}
	s.err = err
	s.layer = layer
	return true
}

// Err returns the recorded error with the lowest layer index, or nil if
// none was ever reported.
func (s *Sink) Err() *Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// HasErr reports whether an error has already been recorded. Workers in the
// layer driver poll this cooperatively to stop acquiring further work.
func (s *Sink) HasErr() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err != nil
}
