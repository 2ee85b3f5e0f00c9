// Package syntax holds the surface syntax tree produced by the parser
// (spec §3, §4.2): tagged Value variants, Arguments, and function-call
// Forms. It follows the teacher's pkg/compiler/ast.go idiom of a small
// interface with unexported marker methods standing in for a sum type,
// rather than an open class hierarchy with runtime casts (spec §9,
// "Tagged variant trees").
package syntax

import (
	"fmt"
	"strings"

	"gocsg/internal/diag"
)

// Value is implemented by every surface value variant: identifier,
// integer, float, string, range, and array (spec §3).
type Value interface {
	valueNode()
	Loc() diag.Location
	String() string
}

// Ident is a bare name used as a value, e.g. a positional argument that is
// itself an identifier rather than a literal.
type Ident struct {
	Name     string
	Location diag.Location
}

func (*Ident) valueNode()          {}
func (v *Ident) Loc() diag.Location { return v.Location }
func (v *Ident) String() string     { return v.Name }

// Int is an integer literal.
type Int struct {
	Val      int64
	Location diag.Location
}

func (*Int) valueNode()          {}
func (v *Int) Loc() diag.Location { return v.Location }
func (v *Int) String() string     { return fmt.Sprintf("%d", v.Val) }

// Float is a floating point literal.
type Float struct {
	Val      float64
	Location diag.Location
}

func (*Float) valueNode()          {}
func (v *Float) Loc() diag.Location { return v.Location }
func (v *Float) String() string     { return fmt.Sprintf("%g", v.Val) }

// Str is a string literal.
type Str struct {
	Val      string
	Location diag.Location
}

func (*Str) valueNode()          {}
func (v *Str) Loc() diag.Location { return v.Location }
func (v *Str) String() string     { return fmt.Sprintf("%q", v.Val) }

// Range is the bracketed [start:end] or [start:step:end] form. Step is nil
// when the two-value form was used, in which case the unit step (1) is
// implied (spec §4.2).
//
// Open question (spec §9): the source grammar binds the *middle*
// colon-separated value to the step and the *last* to the end when three
// values appear — i.e. [start:step:end], not [start:end:step]. We keep
// that binding (Step is the middle value) and name the fields so the
// binding is visible at the call site instead of relying on positional
// order, which is exactly the ambiguity spec §9 flags.
type Range struct {
	Start    Value
	Step     Value // nil => implied step of 1
	End      Value
	Location diag.Location
}

func (*Range) valueNode()          {}
func (v *Range) Loc() diag.Location { return v.Location }
func (v *Range) String() string {
	if v.Step != nil {
		return fmt.Sprintf("[%s:%s:%s]", v.Start, v.Step, v.End)
	}
	return fmt.Sprintf("[%s:%s]", v.Start, v.End)
}

// Array is the bracketed [a, b, c] form.
type Array struct {
	Elems    []Value
	Location diag.Location
}

func (*Array) valueNode()          {}
func (v *Array) Loc() diag.Location { return v.Location }
func (v *Array) String() string {
	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Argument is a single call argument: a positional value, or a
// key=value pair when Key is non-empty (spec §3).
type Argument struct {
	Key   string // empty for a positional argument
	Value Value
}

func (a Argument) String() string {
	if a.Key == "" {
		return a.Value.String()
	}
	return fmt.Sprintf("%s=%s", a.Key, a.Value)
}
