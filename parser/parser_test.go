package parser

import (
	"testing"

	"github.com/smartcalc/smartcalc/ast"
	"github.com/smartcalc/smartcalc/catalog"
	"github.com/smartcalc/smartcalc/lexer"
	"github.com/smartcalc/smartcalc/rewriter"
)

func tokensFor(t *testing.T, line string) []lexer.Token {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default(): %v", err)
	}
	raw, err := lexer.New(cat).Tokenize("en", line, 1)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", line, err)
	}
	out, err := rewriter.Rewrite(cat, "en", raw)
	if err != nil {
		t.Fatalf("Rewrite(%q): %v", line, err)
	}
	return out
}

func noLookup(string) (int, bool) { return 0, false }

func TestParseArithmeticPrecedence(t *testing.T) {
	node, err := New(tokensFor(t, "2 + 3 x 4"), 1, noLookup).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	bin, ok := node.(*ast.Binary)
	if !ok || bin.Op != "+" {
		t.Fatalf("got %v, want top-level '+'", node)
	}
	rhs, ok := bin.Rhs.(*ast.Binary)
	if !ok || rhs.Op != "*" {
		t.Fatalf("rhs = %v, want nested '*'", bin.Rhs)
	}
}

func TestParseAssignment(t *testing.T) {
	node, err := New(tokensFor(t, "rent = 1200"), 1, noLookup).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	assign, ok := node.(*ast.Assignment)
	if !ok || assign.Name != "rent" {
		t.Fatalf("got %v, want Assignment(rent, ...)", node)
	}
	if _, ok := assign.Expr.(*ast.Number); !ok {
		t.Fatalf("assign.Expr = %T, want *ast.Number", assign.Expr)
	}
}

func TestParseUnaryMinus(t *testing.T) {
	node, err := New(tokensFor(t, "-5"), 1, noLookup).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	u, ok := node.(*ast.PrefixUnary)
	if !ok || u.Sign != "-" {
		t.Fatalf("got %v, want PrefixUnary('-', ...)", node)
	}
}

func TestParseVariableReference(t *testing.T) {
	lookup := func(name string) (int, bool) {
		if name == "rent" {
			return 0, true
		}
		return 0, false
	}
	node, err := New(tokensFor(t, "rent + 100"), 2, lookup).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	bin, ok := node.(*ast.Binary)
	if !ok {
		t.Fatalf("got %T, want *ast.Binary", node)
	}
	v, ok := bin.Lhs.(*ast.Variable)
	if !ok || v.Name != "rent" || v.LineIndex != 0 {
		t.Fatalf("lhs = %v, want Variable(rent@0)", bin.Lhs)
	}
}

func TestParseUndefinedVariableErrors(t *testing.T) {
	if _, err := New(tokensFor(t, "foo + 1"), 1, noLookup).Parse(); err == nil {
		t.Fatal("want error for undefined variable, got nil")
	}
}

func TestParseUnaryMinusOnNonNumericErrors(t *testing.T) {
	tokens := []lexer.Token{
		{Kind: lexer.KindOperator, Text: "-"},
		{Kind: lexer.KindDate, Year: 2024, Month: 1, Day: 1},
	}
	if _, err := New(tokens, 1, noLookup).Parse(); err == nil {
		t.Fatal("want parse error for unary '-' applied to a Date, got nil")
	}
}
