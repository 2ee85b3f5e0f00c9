// Package token defines the lexical unit kind produced by package scan.
package token

import "fmt"

// Kind identifies the category of a scanned token. Single-character
// punctuation (spec §3: "reserved 1..127, identity-mapped") is represented
// by its own byte value, so Kind('{') == Kind(123). The named kinds below
// all live outside that range.
type Kind int

const (
	EOF Kind = -(iota + 1)
	IDENT
	INT
	FLOAT
	STRING
	LineComment
	BlockComment
	Error
)

var kindNames = map[Kind]string{
	EOF:          "EOF",
	IDENT:        "IDENT",
	INT:          "INT",
	FLOAT:        "FLOAT",
	STRING:       "STRING",
	LineComment:  "LINE_COMMENT",
	BlockComment: "BLOCK_COMMENT",
	Error:        "ERROR",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	if k >= 1 && k <= 127 {
		return fmt.Sprintf("%q", byte(k))
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsPunct reports whether k is one of the identity-mapped single-byte
// punctuation kinds.
func (k Kind) IsPunct() bool { return k >= 1 && k <= 127 }

// Token is a single lexical unit: a kind plus the offset of its lexeme's
// first byte in the owning source.File's Working buffer. Lexeme is a copy
// of the token's text, taken before the scanner writes its NUL
// terminator into Working: a leading '+' is stripped from numerics, and
// a string's text is stored without its quotes and with its backslash
// escapes left as written (the parser decodes them).
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    int // byte offset in the file's Working/Original buffer
}

func (t Token) String() string {
	return fmt.Sprintf("%-14s %-12q @%d", t.Kind, t.Lexeme, t.Pos)
}
