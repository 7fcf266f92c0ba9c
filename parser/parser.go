// Package parser implements SmartCalc's recursive-descent syntax parser
// (spec.md §4.4), grounded on the teacher's parser.go shape: a flat
// token-index cursor with one token of lookahead.
package parser

import (
	"fmt"

	"github.com/smartcalc/smartcalc/ast"
	"github.com/smartcalc/smartcalc/lexer"
)

// ParseError reports a span the parser could not fit the grammar at.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Line, e.Column)
}

// VariableLookup resolves a previously assigned name to the line index
// that published it, read-only over the session's binding snapshot
// (spec.md §4.4: "variable list snapshot, a read-only view of the
// session").
type VariableLookup func(name string) (lineIndex int, ok bool)

// Parser walks a rewritten token stream with a single token of lookahead.
// Self-reference guarding (a name may not reference its own
// not-yet-published line) is the session package's responsibility, not
// the parser's — it owns the publish-after-line-success timing that
// the guard depends on.
type Parser struct {
	tokens []lexer.Token
	pos    int
	line   int
	lookup VariableLookup
}

// New constructs a Parser over tokens (already lexed and rewritten),
// reporting errors against lineNumber, resolving Symbol primaries via
// lookup.
func New(tokens []lexer.Token, lineNumber int, lookup VariableLookup) *Parser {
	var filtered []lexer.Token
	for _, t := range tokens {
		if t.Kind == lexer.KindComment {
			continue
		}
		filtered = append(filtered, t)
	}
	return &Parser{tokens: filtered, line: lineNumber, lookup: lookup}
}

// Parse runs statement := assignment | expression over the full token
// stream, requiring every token to be consumed.
func (p *Parser) Parse() (ast.Node, error) {
	if len(p.tokens) == 0 {
		return nil, nil
	}
	node, err := p.statement()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.errorf(p.current(), "unexpected trailing input")
	}
	return node, nil
}

func (p *Parser) statement() (ast.Node, error) {
	if p.isAssignment() {
		return p.assignment()
	}
	return p.expression()
}

// isAssignment reports whether the stream starts with `Symbol '='`.
func (p *Parser) isAssignment() bool {
	if p.current().Kind != lexer.KindText {
		return false
	}
	next := p.peek(1)
	return next.Kind == lexer.KindOperator && next.Text == "="
}

func (p *Parser) assignment() (ast.Node, error) {
	nameTok := p.current()
	p.pos++ // Symbol
	p.pos++ // '='
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Name: nameTok.Text, Expr: expr, Range: rangeOf(nameTok, p.prevToken())}, nil
}

func (p *Parser) expression() (ast.Node, error) {
	return p.addsub()
}

func (p *Parser) addsub() (ast.Node, error) {
	lhs, err := p.muldiv()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() && p.current().Kind == lexer.KindOperator && (p.current().Text == "+" || p.current().Text == "-") {
		op := p.current().Text
		p.pos++
		rhs, err := p.muldiv()
		if err != nil {
			return nil, err
		}
		lhs = &ast.Binary{Op: op, Lhs: lhs, Rhs: rhs, Range: rangeOf(firstTokenOf(lhs), p.prevToken())}
	}
	return lhs, nil
}

func (p *Parser) muldiv() (ast.Node, error) {
	lhs, err := p.unary()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() && p.current().Kind == lexer.KindOperator && isMulDivOp(p.current().Text) {
		op := p.current().Text
		if op == "x" || op == "X" {
			op = "*"
		}
		p.pos++
		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}
		lhs = &ast.Binary{Op: op, Lhs: lhs, Rhs: rhs, Range: rangeOf(firstTokenOf(lhs), p.prevToken())}
	}
	return lhs, nil
}

func isMulDivOp(text string) bool {
	return text == "*" || text == "/" || text == "x" || text == "X"
}

func (p *Parser) unary() (ast.Node, error) {
	if !p.atEnd() && p.current().Kind == lexer.KindOperator && (p.current().Text == "+" || p.current().Text == "-") {
		sign := p.current().Text
		signTok := p.current()
		p.pos++
		primary, err := p.primary()
		if err != nil {
			return nil, err
		}
		if sign == "+" {
			return primary, nil
		}
		if !isNegatable(primary) {
			return nil, p.errorf(signTok, "unary '-' cannot apply to a non-numeric value")
		}
		return &ast.PrefixUnary{Sign: sign, Expr: primary, Range: rangeOf(signTok, p.prevToken())}, nil
	}
	return p.primary()
}

func isNegatable(n ast.Node) bool {
	switch n.(type) {
	case *ast.Number, *ast.Money, *ast.Percent, *ast.Duration, *ast.Memory, *ast.DynamicType:
		return true
	}
	return false
}

func (p *Parser) primary() (ast.Node, error) {
	if p.atEnd() {
		return nil, p.errorf(p.lastToken(), "expected a value, found end of line")
	}
	tok := p.current()
	switch tok.Kind {
	case lexer.KindNumber:
		p.pos++
		return &ast.Number{Value: tok.NumberValue, Kind: tok.NumberKind, Range: rangeOfTok(tok)}, nil
	case lexer.KindPercent:
		p.pos++
		return &ast.Percent{Value: tok.PercentValue, Range: rangeOfTok(tok)}, nil
	case lexer.KindMoney:
		p.pos++
		return &ast.Money{Amount: tok.MoneyAmount, Currency: tok.MoneyCurrency, Range: rangeOfTok(tok)}, nil
	case lexer.KindTime:
		p.pos++
		return &ast.Time{Hour: tok.Hour, Minute: tok.Minute, Second: tok.Second, Range: rangeOfTok(tok)}, nil
	case lexer.KindDate:
		p.pos++
		return &ast.Date{Year: tok.Year, Month: tok.Month, Day: tok.Day, Range: rangeOfTok(tok)}, nil
	case lexer.KindDuration:
		p.pos++
		return &ast.Duration{Seconds: tok.DurationSeconds, Range: rangeOfTok(tok)}, nil
	case lexer.KindMemory:
		p.pos++
		return &ast.Memory{Amount: tok.MemoryAmount, Unit: tok.MemoryUnit, Range: rangeOfTok(tok)}, nil
	case lexer.KindDynamicType:
		p.pos++
		return &ast.DynamicType{Amount: tok.DynamicAmount, Unit: tok.DynamicUnit, Range: rangeOfTok(tok)}, nil
	case lexer.KindText:
		p.pos++
		if p.lookup != nil {
			if idx, ok := p.lookup(tok.Text); ok {
				return &ast.Variable{Name: tok.Text, LineIndex: idx, Range: rangeOfTok(tok)}, nil
			}
		}
		return nil, p.errorf(tok, fmt.Sprintf("undefined variable %q", tok.Text))
	default:
		return nil, p.errorf(tok, fmt.Sprintf("unexpected token %q", tok.Text))
	}
}

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(offset int) lexer.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return lexer.Token{}
	}
	return p.tokens[idx]
}

func (p *Parser) prevToken() lexer.Token {
	if p.pos == 0 {
		return p.current()
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) lastToken() lexer.Token {
	if len(p.tokens) == 0 {
		return lexer.Token{}
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) errorf(tok lexer.Token, msg string) error {
	return &ParseError{Message: msg, Line: p.line, Column: tok.Span.Start + 1}
}

func rangeOfTok(tok lexer.Token) *ast.Range {
	return &ast.Range{Span: tok.Span}
}

func rangeOf(start, end lexer.Token) *ast.Range {
	return &ast.Range{Span: ast.Span{Start: start.Span.Start, End: end.Span.End}}
}

func firstTokenOf(n ast.Node) lexer.Token {
	r := n.GetRange()
	if r == nil {
		return lexer.Token{}
	}
	return lexer.Token{Span: r.Span}
}
