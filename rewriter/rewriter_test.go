package rewriter

import (
	"testing"

	"github.com/smartcalc/smartcalc/catalog"
	"github.com/smartcalc/smartcalc/lexer"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default(): %v", err)
	}
	return cat
}

func tokenize(t *testing.T, cat *catalog.Catalog, line string) []lexer.Token {
	t.Helper()
	tokens, err := lexer.New(cat).Tokenize("en", line, 1)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", line, err)
	}
	return tokens
}

// TestAliasPassRewritesOperatorWords exercises Pass A: "plus" should
// rewrite to the canonical '+' operator token.
func TestAliasPassRewritesOperatorWords(t *testing.T) {
	cat := testCatalog(t)
	tokens := tokenize(t, cat, "5 plus 5")

	out, err := Rewrite(cat, "en", tokens)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if len(out) != 3 || out[1].Kind != lexer.KindOperator || out[1].Text != "+" {
		t.Fatalf("got %v, want [Number Operator(+) Number]", out)
	}
}

// TestPercentOfRule exercises spec.md §8's "6% of 40" scenario end to end
// through Pass B's percent_of rule template.
func TestPercentOfRule(t *testing.T) {
	cat := testCatalog(t)
	tokens := tokenize(t, cat, "6% of 40")

	out, err := Rewrite(cat, "en", tokens)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if len(out) != 1 || out[0].Kind != lexer.KindNumber || out[0].NumberValue != "2.4" {
		t.Fatalf("got %v, want single Number(2.4)", out)
	}
}

// TestPercentOnRule exercises the percent_on rule template directly via
// the non-aliased "on" keyword (spec.md §8's 30% applied on top of 120).
// The "{NUMBER} add {PERCENT}" phrasing instead falls through Pass A,
// since "add" is itself an alias for '+' (handled by Number.Calculate's
// onLeft percent dispatch, not by this rule).
func TestPercentOnRule(t *testing.T) {
	cat := testCatalog(t)
	tokens := tokenize(t, cat, "30% on 120")

	out, err := Rewrite(cat, "en", tokens)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if len(out) != 1 || out[0].Kind != lexer.KindNumber || out[0].NumberValue != "156" {
		t.Fatalf("got %v, want single Number(156)", out)
	}
}

func TestMoneyInCurrencyRule(t *testing.T) {
	cat := testCatalog(t)
	tokens := tokenize(t, cat, "$100 in eur")

	out, err := Rewrite(cat, "en", tokens)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if len(out) != 1 || out[0].Kind != lexer.KindMoney || out[0].MoneyCurrency != "eur" {
		t.Fatalf("got %v, want single Money in eur", out)
	}
}

func TestMemoryInUnitRule(t *testing.T) {
	cat := testCatalog(t)
	tokens := tokenize(t, cat, "1 GB in MB")

	out, err := Rewrite(cat, "en", tokens)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if len(out) != 1 || out[0].Kind != lexer.KindMemory || out[0].MemoryUnit != "mb" || out[0].MemoryAmount != "1000" {
		t.Fatalf("got %v, want single Memory(1000 mb)", out)
	}
}

func TestDynamicInUnitRule(t *testing.T) {
	cat := testCatalog(t)
	tokens := tokenize(t, cat, "60 mph in kph")

	out, err := Rewrite(cat, "en", tokens)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if len(out) != 1 || out[0].Kind != lexer.KindDynamicType || out[0].DynamicUnit != "kph" {
		t.Fatalf("got %v, want single DynamicType in kph", out)
	}
}

func TestCombineDurations(t *testing.T) {
	cat := testCatalog(t)
	tokens := tokenize(t, cat, "1 hour 30 minutes")

	out, err := Rewrite(cat, "en", tokens)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if len(out) != 1 || out[0].Kind != lexer.KindDuration || out[0].DurationSeconds != 5400 {
		t.Fatalf("got %v, want single Duration(5400s)", out)
	}
}

func TestMoneyInUnknownCurrencyErrors(t *testing.T) {
	cat := testCatalog(t)
	tokens := tokenize(t, cat, "$100 in zzz")

	if _, err := Rewrite(cat, "en", tokens); err == nil {
		t.Fatal("want error for unknown currency, got nil")
	}
}
