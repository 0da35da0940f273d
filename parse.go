package goscheme

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

var (
	EOF = errors.New("unexpected end of file")
)

type TokenType int

const (
	TokenOpenParen TokenType = iota
	TokenCloseParen
	TokenQuoteTick
	TokenBoolean
	TokenNumber
	TokenString
	TokenIdent
)

// Token is the payload of an atomic expression.
type Token struct {
	Type TokenType
	Bool bool
	Num  float64
	Text string
}

func (t Token) String() string {
	switch t.Type {
	case TokenOpenParen:
		return "("
	case TokenCloseParen:
		return ")"
	case TokenQuoteTick:
		return "'"
	case TokenBoolean:
		if t.Bool {
			return "#true"
		}
		return "#false"
	case TokenNumber:
		return formatNumber(t.Num)
	case TokenString:
		return strconv.Quote(t.Text)
	default:
		return t.Text
	}
}

// Expr is a parsed expression: either an atom carrying a Token or a list of
// sub-expressions.
type Expr struct {
	tok    Token
	items  []Expr
	isList bool
}

func AtomExpr(tok Token) Expr {
	return Expr{tok: tok}
}

func ListExpr(items ...Expr) Expr {
	if items == nil {
		items = []Expr{}
	}
	return Expr{items: items, isList: true}
}

func Ident(name string) Expr {
	return AtomExpr(Token{Type: TokenIdent, Text: name})
}

func Num(f float64) Expr {
	return AtomExpr(Token{Type: TokenNumber, Num: f})
}

func Str(s string) Expr {
	return AtomExpr(Token{Type: TokenString, Text: s})
}

func Boolean(b bool) Expr {
	return AtomExpr(Token{Type: TokenBoolean, Bool: b})
}

func (e Expr) IsList() bool {
	return e.isList
}

func (e Expr) Token() Token {
	return e.tok
}

func (e Expr) Items() []Expr {
	return e.items
}

// Ident returns the identifier name if e is an identifier atom.
func (e Expr) Ident() (string, bool) {
	if e.isList || e.tok.Type != TokenIdent {
		return "", false
	}
	return e.tok.Text, true
}

func (e Expr) String() string {
	if !e.isList {
		return e.tok.String()
	}
	var buf bytes.Buffer
	buf.WriteByte('(')
	for i, item := range e.items {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(item.String())
	}
	buf.WriteByte(')')
	return buf.String()
}

func NewParser(r io.Reader) *Parser {
	return &Parser{
		buf: bufio.NewReader(r),
	}
}

// ParseString parses every expression in src.
func ParseString(src string) ([]Expr, error) {
	return NewParser(strings.NewReader(src)).Parse()
}

type Parser struct {
	buf  *bufio.Reader
	pos  int
	last int
}

func (p *Parser) SkipWhite() {
	for {
		r, err := p.readRune()
		if err != nil {
			return
		}
		if r == ';' {
			for {
				r, err = p.readRune()
				if err != nil {
					return
				}
				if r == '\n' {
					break
				}
			}
			continue
		}
		if !unicode.IsSpace(r) {
			p.unreadRune()
			return
		}
	}
}

// ParseParen parses list items up to and including the closing paren. The
// opening paren must already be consumed.
func (p *Parser) ParseParen() (Expr, error) {
	items := []Expr{}
	for {
		p.SkipWhite()
		b, err := p.buf.Peek(1)
		if err == io.EOF {
			return Expr{}, EOF
		}
		if err != nil {
			return Expr{}, err
		}
		if b[0] == ')' {
			p.readRune()
			break
		}
		child, err := p.ParseAny()
		if err != nil {
			if err == io.EOF {
				return Expr{}, EOF
			}
			return Expr{}, err
		}
		items = append(items, child)
	}
	return ListExpr(items...), nil
}

func (p *Parser) ParseString() (Expr, error) {
	var buf bytes.Buffer
	for {
		r, err := p.readRune()
		if err != nil {
			if err == io.EOF {
				return Expr{}, EOF
			}
			return Expr{}, err
		}

		if r == '\\' {
			r, err = p.readRune()
			if err != nil {
				return Expr{}, EOF
			}
			switch r {
			case 'n':
				r = '\n'
			case 'r':
				r = '\r'
			case 't':
				r = '\t'
			case 'b':
				r = '\b'
			case 'f':
				r = '\f'
			}
			buf.WriteRune(r)
			continue
		}
		if r == '"' {
			break
		}
		buf.WriteRune(r)
	}
	return Str(buf.String()), nil
}

// ParseQuote expands 'x into (quote x).
func (p *Parser) ParseQuote() (Expr, error) {
	node, err := p.ParseAny()
	if err != nil {
		if err == io.EOF {
			return Expr{}, EOF
		}
		return Expr{}, err
	}
	return ListExpr(Ident("quote"), node), nil
}

func isDelimiter(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(`()'";`, r)
}

func (p *Parser) Pos() int {
	return p.pos
}

func (p *Parser) readRune() (rune, error) {
	r, n, err := p.buf.ReadRune()
	p.pos += n
	p.last = n
	return r, err
}

func (p *Parser) unreadRune() error {
	err := p.buf.UnreadRune()
	if err == nil {
		p.pos -= p.last
		p.last = 0
	}
	return err
}

func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	if c == '+' || c == '-' || c == '.' {
		if len(s) == 1 {
			return false
		}
		c = s[1]
		if c == '.' && len(s) > 2 {
			c = s[2]
		}
	}
	return c >= '0' && c <= '9'
}

func (p *Parser) ParsePrimitive() (Expr, error) {
	var buf bytes.Buffer
	for {
		r, err := p.readRune()
		if err != nil {
			if err == io.EOF {
				break
			}
			return Expr{}, err
		}

		if isDelimiter(r) {
			p.unreadRune()
			break
		}
		buf.WriteRune(r)
	}

	s := buf.String()

	switch s {
	case "#t", "#true":
		return Boolean(true), nil
	case "#f", "#false":
		return Boolean(false), nil
	}
	if looksNumeric(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Num(f), nil
		}
	}
	return Ident(s), nil
}

// ParseAny parses one expression. It returns io.EOF when no input is left.
func (p *Parser) ParseAny() (Expr, error) {
	p.SkipWhite()
	r, err := p.readRune()
	if err != nil {
		return Expr{}, err
	}

	switch r {
	case '(':
		return p.ParseParen()
	case ')':
		return Expr{}, Errorf(UnexpectedToken, "')' at %d", p.Pos())
	case '\'':
		return p.ParseQuote()
	case '"':
		return p.ParseString()
	}
	if unicode.IsPrint(r) {
		p.unreadRune()
		return p.ParsePrimitive()
	}
	return Expr{}, fmt.Errorf("invalid token: '%c' (%d)", r, p.Pos())
}

// Parse parses every remaining expression.
func (p *Parser) Parse() ([]Expr, error) {
	var exprs []Expr
	for {
		expr, err := p.ParseAny()
		if err == io.EOF {
			return exprs, nil
		}
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
}
