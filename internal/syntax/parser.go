package syntax

import (
	"strconv"
	"strings"

	"gocsg/internal/diag"
	"gocsg/internal/logging"
	"gocsg/internal/scan"
	"gocsg/internal/source"
	"gocsg/internal/token"
)

// Parser is a recursive-descent parser with one-token lookahead over the
// flat token slice produced by package scan, mirroring the shape of
// pkg/compiler/parser.go in the teacher: a token slice, a cursor, and a
// sticky first-error record (spec §4.2, §7).
//
// Grammar (spec §4.2):
//
//	body    = { form } .
//	form    = modifier* ( "{" body "}"  |  id "=" value ";"  |  id "(" [args] ")" tail ) .
//	tail    = ";"  |  "{" body "}"  |  form .
//	modifier= "!" | "*" | "%" | "#" .
//	args    = arg { "," arg } [","] .
//	arg     = [ id "=" ] value  .
//	value   = int | float | string | id | "[" value-tail .
//	value-tail
//	        = "]"
//	        | value  ( ":" value [ ":" value ] "]"     (range)
//	                 | { "," value } [","] "]" )       (array)
type Parser struct {
	file *source.File
	toks []token.Token
	pos  int
	err  *diag.Error
}

// Parse scans and parses file in one call, returning the top-level body
// of forms.
func Parse(file *source.File) ([]*Form, error) {
	s := scan.New(file)
	var toks []token.Token
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	p := &Parser{file: file, toks: toks}
	body := p.parseBody(func(k token.Kind) bool { return k == token.EOF })
	if p.err != nil {
		logging.Logger(logging.Pars).Debugf("parse error in %s: %s", file.Name, p.err.Message)
		return nil, p.err
	}
	logging.Logger(logging.Pars).Debugf("parsed %s into %d top-level forms", file.Name, len(body))
	return body, nil
}

func (p *Parser) loc(tok token.Token) diag.Location {
	return diag.Location{File: p.file, Offset: tok.Pos}
}

func (p *Parser) peek() token.Token { return p.peekAt(0) }

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos+n]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

// fail records the first parse error (subsequent calls must not overwrite
// it, per spec §4.2 and §7) and returns it.
func (p *Parser) fail(tok token.Token, format string, args ...any) *diag.Error {
	if p.err == nil {
		p.err = diag.New(diag.Parse, p.loc(tok), format, args...)
	}
	return p.err
}

func (p *Parser) expect(kind token.Kind, what string) (token.Token, bool) {
	if p.err != nil {
		return token.Token{}, false
	}
	tok := p.peek()
	if tok.Kind != kind {
		p.fail(tok, "expected %s, found %v", what, tok.Kind)
		return token.Token{}, false
	}
	return p.advance(), true
}

// parseBody parses zero or more forms until the stop predicate matches
// the current token's kind, or a parse error occurs.
func (p *Parser) parseBody(stop func(token.Kind) bool) []*Form {
	var forms []*Form
	for p.err == nil && !stop(p.peek().Kind) {
		f := p.parseForm()
		if p.err != nil {
			return forms
		}
		forms = append(forms, f)
	}
	return forms
}

func modifierBit(k token.Kind) (Modifier, bool) {
	switch k {
	case token.Kind('!'):
		return ModShowOnly, true
	case token.Kind('*'):
		return ModDisable, true
	case token.Kind('%'):
		return ModBackground, true
	case token.Kind('#'):
		return ModHighlight, true
	}
	return 0, false
}

func (p *Parser) parseForm() *Form {
	startTok := p.peek()
	var mods Modifier
	for {
		bit, ok := modifierBit(p.peek().Kind)
		if !ok {
			break
		}
		mods |= bit
		p.advance()
	}

	if p.peek().Kind == token.Kind('{') {
		p.advance()
		body := p.parseBody(func(k token.Kind) bool { return k == token.Kind('}') })
		if p.err != nil {
			return nil
		}
		if _, ok := p.expect(token.Kind('}'), "'}'"); !ok {
			return nil
		}
		return &Form{Functor: GroupFunctor, Mods: mods, Body: body, Location: p.loc(startTok)}
	}

	nameTok, ok := p.expect(token.IDENT, "an identifier or '{'")
	if !ok {
		return nil
	}

	if p.peek().Kind == token.Kind('=') {
		p.advance()
		val := p.parseValue()
		if p.err != nil {
			return nil
		}
		if _, ok := p.expect(token.Kind(';'), "';'"); !ok {
			return nil
		}
		return &Form{
			Functor:  nameTok.Lexeme,
			Mods:     mods,
			Assign:   true,
			Args:     []Argument{{Value: val}},
			Location: p.loc(startTok),
		}
	}

	if _, ok := p.expect(token.Kind('('), "'('"); !ok {
		return nil
	}
	var args []Argument
	if p.peek().Kind != token.Kind(')') {
		args = p.parseArgs()
		if p.err != nil {
			return nil
		}
	}
	if _, ok := p.expect(token.Kind(')'), "')'"); !ok {
		return nil
	}

	body := p.parseTail()
	if p.err != nil {
		return nil
	}
	return &Form{Functor: nameTok.Lexeme, Mods: mods, Args: args, Body: body, Location: p.loc(startTok)}
}

func (p *Parser) parseTail() []*Form {
	switch p.peek().Kind {
	case token.Kind(';'):
		p.advance()
		return nil
	case token.Kind('{'):
		p.advance()
		body := p.parseBody(func(k token.Kind) bool { return k == token.Kind('}') })
		if p.err != nil {
			return nil
		}
		if _, ok := p.expect(token.Kind('}'), "'}'"); !ok {
			return nil
		}
		return body
	default:
		child := p.parseForm()
		if p.err != nil {
			return nil
		}
		return []*Form{child}
	}
}

func (p *Parser) parseArgs() []Argument {
	var args []Argument
	for {
		arg := p.parseArg()
		if p.err != nil {
			return nil
		}
		args = append(args, arg)
		if p.peek().Kind == token.Kind(',') {
			p.advance()
			if p.peek().Kind == token.Kind(')') {
				break // trailing comma
			}
			continue
		}
		break
	}
	return args
}

func (p *Parser) parseArg() Argument {
	if p.peek().Kind == token.IDENT && p.peekAt(1).Kind == token.Kind('=') {
		key := p.advance().Lexeme
		p.advance() // '='
		val := p.parseValue()
		return Argument{Key: key, Value: val}
	}
	return Argument{Value: p.parseValue()}
}

func (p *Parser) parseValue() Value {
	if p.err != nil {
		return nil
	}
	tok := p.peek()
	switch tok.Kind {
	case token.INT:
		p.advance()
		n, err := strconv.ParseInt(tok.Lexeme, 0, 64)
		if err != nil {
			p.fail(tok, "malformed integer literal %q", tok.Lexeme)
			return nil
		}
		return &Int{Val: n, Location: p.loc(tok)}
	case token.FLOAT:
		p.advance()
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.fail(tok, "malformed float literal %q", tok.Lexeme)
			return nil
		}
		return &Float{Val: f, Location: p.loc(tok)}
	case token.STRING:
		p.advance()
		return &Str{Val: unescape(tok.Lexeme), Location: p.loc(tok)}
	case token.IDENT:
		p.advance()
		return &Ident{Name: tok.Lexeme, Location: p.loc(tok)}
	case token.Kind('['):
		p.advance()
		return p.parseBracket(p.loc(tok))
	default:
		p.fail(tok, "expected a value, found %v", tok.Kind)
		return nil
	}
}

// parseBracket handles value-tail: the one-token-of-lookahead
// disambiguation between a range ([start:end] / [start:step:end]) and an
// array ([a, b, c]) happens here, after the first element, per spec §4.2.
func (p *Parser) parseBracket(loc diag.Location) Value {
	if p.peek().Kind == token.Kind(']') {
		p.advance()
		return &Array{Location: loc}
	}

	first := p.parseValue()
	if p.err != nil {
		return nil
	}

	if p.peek().Kind == token.Kind(':') {
		p.advance()
		second := p.parseValue()
		if p.err != nil {
			return nil
		}
		if p.peek().Kind == token.Kind(':') {
			p.advance()
			third := p.parseValue()
			if p.err != nil {
				return nil
			}
			if _, ok := p.expect(token.Kind(']'), "']'"); !ok {
				return nil
			}
			// [start:step:end]: the middle value is the increment, the
			// last is the end (spec §4.2, flagged as an open question
			// in spec §9 because it reads counter to the usual
			// [start:end:step] intuition).
			return &Range{Start: first, Step: second, End: third, Location: loc}
		}
		if _, ok := p.expect(token.Kind(']'), "']'"); !ok {
			return nil
		}
		return &Range{Start: first, End: second, Location: loc}
	}

	elems := []Value{first}
	for p.peek().Kind == token.Kind(',') {
		p.advance()
		if p.peek().Kind == token.Kind(']') {
			break // trailing comma
		}
		v := p.parseValue()
		if p.err != nil {
			return nil
		}
		elems = append(elems, v)
	}
	if _, ok := p.expect(token.Kind(']'), "']'"); !ok {
		return nil
	}
	return &Array{Elems: elems, Location: loc}
}

// unescape resolves the backslash escapes the scanner left untouched in a
// string lexeme (scan.Scanner only verifies escape well-formedness enough
// to find the closing quote; decoding is the parser's job).
func unescape(raw string) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(raw[i])
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
