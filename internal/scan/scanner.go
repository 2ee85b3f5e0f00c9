// Package scan implements the hand-written scanner of spec §4.1: an
// in-place, zero-copy tokenizer over a source.File's mutable Working
// buffer.
//
// The teacher's pkg/compiler/lexer.go scans a copied []rune slice and
// never mutates it; this scanner instead walks the owning source.File's
// Working buffer directly and writes a NUL terminator one byte past every
// number/identifier/string lexeme, exactly as spec §4.1 requires, so two
// adjacent lexeme-bearing tokens with no separating byte collide and are
// rejected. Go strings don't need C-style NUL termination for anything
// downstream of the scanner; we keep the mutation anyway because the
// adjacent-lexeme rejection (spec §8, scenario 4) is an observable
// behavior of the language being modeled, not an implementation detail of
// the teacher.
package scan

import (
	"gocsg/internal/diag"
	"gocsg/internal/logging"
	"gocsg/internal/source"
	"gocsg/internal/token"
)

// Scanner holds all mutable state for a single scanning pass over a
// source.File.
type Scanner struct {
	file *source.File
	buf  []byte // alias of file.Working
	end  int    // len(file.Original); real end of input, distinct from len(buf)
	pos  int

	err *diag.Error // sticky: once set, further advancement is a no-op
}

// New creates a Scanner positioned at the start of file.
func New(file *source.File) *Scanner {
	logging.Logger(logging.Scan).Debugf("scanning %s (%d bytes)", file.Name, len(file.Original))
	return &Scanner{file: file, buf: file.Working, end: len(file.Original)}
}

func (s *Scanner) loc(pos int) diag.Location { return diag.Location{File: s.file, Offset: pos} }

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '$' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (s *Scanner) at(i int) byte {
	if i < 0 || i >= len(s.buf) {
		return 0
	}
	return s.buf[i]
}

func (s *Scanner) peek() byte  { return s.at(s.pos) }
func (s *Scanner) peek2() byte { return s.at(s.pos + 1) }

func (s *Scanner) advance() byte {
	c := s.at(s.pos)
	s.pos++
	return c
}

func (s *Scanner) skipWhitespace() {
	for s.pos < s.end && isSpace(s.file.Original[s.pos]) {
		s.pos++
	}
}

// terminate writes a NUL one byte past a just-scanned lexeme, per the
// in-place tokenization contract of spec §4.1. It never writes beyond
// len(buf); source.New always allocates one spare trailing byte so a
// lexeme ending exactly at end-of-input still has room.
func (s *Scanner) terminate(end int) {
	if end >= 0 && end < len(s.buf) {
		s.buf[end] = 0
	}
}

// fail sets the sticky scanner error (first writer wins within a single
// Scanner, mirroring diag.Sink's broader first-writer-wins policy) and
// returns it.
func (s *Scanner) fail(pos int, format string, args ...any) (token.Token, error) {
	if s.err == nil {
		s.err = diag.New(diag.Lex, s.loc(pos), format, args...)
		logging.Logger(logging.Scan).Debugf("scan error at %s: %s", s.loc(pos), s.err.Message)
	}
	return token.Token{Kind: token.Error, Pos: pos}, s.err
}

func (s *Scanner) scanIdent() token.Token {
	start := s.pos
	s.pos++ // first char already validated by caller
	for s.pos < s.end && isIdentCont(s.buf[s.pos]) {
		s.pos++
	}
	lex := string(s.buf[start:s.pos])
	s.terminate(s.pos)
	return token.Token{Kind: token.IDENT, Lexeme: lex, Pos: start}
}

func (s *Scanner) scanNumber() token.Token {
	start := s.pos
	isFloat := false

	if c := s.peek(); c == '+' || c == '-' {
		s.pos++
	}
	for s.pos < s.end && isDigit(s.buf[s.pos]) {
		s.pos++
	}
	if s.peek() == '.' {
		isFloat = true
		s.pos++
		for s.pos < s.end && isDigit(s.buf[s.pos]) {
			s.pos++
		}
	}
	if c := s.peek(); c == 'e' || c == 'E' {
		isFloat = true
		s.pos++
		if c := s.peek(); c == '+' || c == '-' {
			s.pos++
		}
		for s.pos < s.end && isDigit(s.buf[s.pos]) {
			s.pos++
		}
	}

	lex := string(s.buf[start:s.pos])
	if len(lex) > 0 && lex[0] == '+' {
		lex = lex[1:] // "a leading + is dropped from the lexeme"
	}

	kind := token.INT
	if isFloat {
		kind = token.FLOAT
	}
	s.terminate(s.pos)
	return token.Token{Kind: kind, Lexeme: lex, Pos: start}
}

func (s *Scanner) scanString() (token.Token, error) {
	start := s.pos
	s.pos++ // consume opening quote
	for {
		if s.pos >= s.end {
			return s.fail(start, "unterminated string literal")
		}
		c := s.buf[s.pos]
		if c == '"' {
			break
		}
		if c == '\\' {
			s.pos++ // backslash escapes one following byte, whatever it is
			if s.pos >= s.end {
				return s.fail(start, "unterminated string literal")
			}
		}
		s.pos++
	}
	lex := string(s.buf[start+1 : s.pos])
	s.pos++ // consume closing quote
	s.terminate(s.pos)
	return token.Token{Kind: token.STRING, Lexeme: lex, Pos: start}, nil
}

func (s *Scanner) skipLineComment() token.Token {
	start := s.pos
	for s.pos < s.end && s.buf[s.pos] != '\n' {
		s.pos++
	}
	return token.Token{Kind: token.LineComment, Pos: start}
}

func (s *Scanner) skipBlockComment() (token.Token, error) {
	start := s.pos
	for {
		if s.pos >= s.end {
			return s.fail(start, "unterminated block comment")
		}
		if s.buf[s.pos] == '*' && s.at(s.pos+1) == '/' {
			s.pos += 2
			return token.Token{Kind: token.BlockComment, Pos: start}, nil
		}
		s.pos++
	}
}

// rawNext returns the next low-level token, including comments. It is
// Next's unexported building block; Next filters the comment tokens out.
func (s *Scanner) rawNext() (token.Token, error) {
	if s.err != nil {
		return token.Token{Kind: token.Error}, s.err
	}

	s.skipWhitespace()
	if s.pos >= s.end {
		return token.Token{Kind: token.EOF, Pos: s.pos}, nil
	}

	// Adjacent-lexeme rejection (spec §4.1, §8 scenario 4): a NUL here,
	// while real input remains, means a previous lexeme's terminator
	// overwrote this byte. The original byte is then read back: a
	// punctuation byte is a valid separator and is scanned as usual, but
	// the start of another number, identifier or string means two
	// lexemes touch with no separator between them.
	ch := s.buf[s.pos]
	if ch == 0 {
		ch = s.file.Original[s.pos]
		if ch == 0 || isDigit(ch) || ch == '+' || ch == '-' || ch == '.' || isIdentStart(ch) || ch == '"' {
			return s.fail(s.pos, "Expected no number/identifier here")
		}
	}

	if ch == '/' && s.peek2() == '/' {
		s.pos += 2
		return s.skipLineComment(), nil
	}
	if ch == '/' && s.peek2() == '*' {
		s.pos += 2
		return s.skipBlockComment()
	}

	if isDigit(ch) || ch == '+' || ch == '-' || ch == '.' {
		return s.scanNumber(), nil
	}
	if isIdentStart(ch) {
		return s.scanIdent(), nil
	}
	if ch == '"' {
		return s.scanString()
	}

	s.pos++
	if ch > 127 {
		return s.fail(s.pos-1, "unexpected byte 0x%02x", ch)
	}
	return token.Token{Kind: token.Kind(ch), Lexeme: string(ch), Pos: s.pos - 1}, nil
}

// Next returns the next token visible to the parser: comments are scanned
// (so they still participate in the adjacent-lexeme and NUL-termination
// rules) but never surfaced.
func (s *Scanner) Next() (token.Token, error) {
	for {
		tok, err := s.rawNext()
		if err != nil {
			return tok, err
		}
		if tok.Kind == token.LineComment || tok.Kind == token.BlockComment {
			continue
		}
		return tok, nil
	}
}
