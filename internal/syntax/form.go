package syntax

import (
	"strings"

	"gocsg/internal/diag"
)

// Modifier is an OR of the four SCAD subtree modifier bits (spec §3, §4.2).
type Modifier uint8

const (
	ModShowOnly   Modifier = 1 << iota // !
	ModDisable                         // *
	ModBackground                      // %
	ModHighlight                       // #
)

func (m Modifier) String() string {
	var b strings.Builder
	if m&ModShowOnly != 0 {
		b.WriteByte('!')
	}
	if m&ModDisable != 0 {
		b.WriteByte('*')
	}
	if m&ModBackground != 0 {
		b.WriteByte('%')
	}
	if m&ModHighlight != 0 {
		b.WriteByte('#')
	}
	return b.String()
}

// GroupFunctor is the synthetic functor name used for an anonymous "{ }"
// group, whose only purpose is to carry children (spec §3).
const GroupFunctor = "{"

// Form is a single surface-syntax function-call form: a functor name,
// accumulated modifier flags, an argument list, and a body of child forms
// (spec §3).
//
// Assign marks the "id = value ;" variable-binding sugar (spec §8
// scenario 5 exercises it; it is not in the § 4.2 call grammar itself but
// is part of the surface syntax a SCAD-like front end needs to support
// `x = [1:2:10];`-style top-level bindings). An assignment Form has
// Functor set to the bound name and exactly one positional Argument
// holding the value; it never has a Body.
type Form struct {
	Functor  string
	Mods     Modifier
	Assign   bool
	Args     []Argument
	Body     []*Form
	Location diag.Location
}

func (f *Form) String() string {
	var b strings.Builder
	b.WriteString(f.Mods.String())
	if f.Assign {
		b.WriteString(f.Functor)
		b.WriteString(" = ")
		b.WriteString(f.Args[0].Value.String())
		b.WriteByte(';')
		return b.String()
	}
	b.WriteString(f.Functor)
	if f.Functor != GroupFunctor {
		b.WriteByte('(')
		for i, a := range f.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteByte(')')
	}
	if len(f.Body) == 0 {
		b.WriteByte(';')
		return b.String()
	}
	b.WriteString(" { ")
	for _, c := range f.Body {
		b.WriteString(c.String())
		b.WriteByte(' ')
	}
	b.WriteByte('}')
	return b.String()
}

// Print renders a body of top-level forms as source text, one per line.
// Used both for --dump-syn and for the parser round-trip property in
// spec §8.
func Print(body []*Form) string {
	var b strings.Builder
	for _, f := range body {
		b.WriteString(f.String())
		b.WriteByte('\n')
	}
	return b.String()
}
