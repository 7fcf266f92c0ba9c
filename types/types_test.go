package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smartcalc/smartcalc/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default(): %v", err)
	}
	return cat
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNumberArithmetic(t *testing.T) {
	cat := testCatalog(t)
	n1 := NewNumber(dec("10"))
	n2 := NewNumber(dec("4"))

	tests := []struct {
		op   Op
		want string
	}{
		{Add, "14"},
		{Sub, "6"},
		{Mul, "40"},
		{Div, "2.5"},
	}
	for _, tt := range tests {
		got, err := n1.Calculate(cat, true, n2, tt.op)
		if err != nil {
			t.Fatalf("Calculate(%v): %v", tt.op, err)
		}
		num, ok := got.(*Number)
		if !ok {
			t.Fatalf("Calculate(%v) returned %T, want *Number", tt.op, got)
		}
		if num.Value.String() != tt.want {
			t.Errorf("10 %s 4 = %s, want %s", tt.op, num.Value, tt.want)
		}
	}
}

func TestDivisionByZeroYieldsZero(t *testing.T) {
	cat := testCatalog(t)
	n := NewNumber(dec("10"))
	zero := NewNumber(dec("0"))

	got, err := n.Calculate(cat, true, zero, Div)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if got.(*Number).Value.Sign() != 0 {
		t.Errorf("10/0 = %s, want 0 (documented division-by-zero policy)", got.(*Number).Value)
	}
}

// TestPercentOf exercises spec.md §8's "6% of 40" scenario.
func TestPercentOf(t *testing.T) {
	cat := testCatalog(t)
	p := NewPercent(dec("6"))
	n := NewNumber(dec("40"))

	got, err := p.Calculate(cat, true, n, Mul)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	num, ok := got.(*Number)
	if !ok {
		t.Fatalf("got %T, want *Number", got)
	}
	if !num.Value.Equal(dec("2.4")) {
		t.Errorf("6%% of 40 = %s, want 2.4", num.Value)
	}
}

// TestPercentOnOff exercises spec.md §8's "6% on/off 40" scenarios.
func TestPercentOnOff(t *testing.T) {
	cat := testCatalog(t)
	n := NewNumber(dec("40"))
	p := NewPercent(dec("6"))

	on, err := n.Calculate(cat, true, p, Add)
	if err != nil {
		t.Fatalf("on: %v", err)
	}
	if !on.(*Number).Value.Equal(dec("42.4")) {
		t.Errorf("40 + 6%% = %s, want 42.4", on.(*Number).Value)
	}

	off, err := n.Calculate(cat, true, p, Sub)
	if err != nil {
		t.Fatalf("off: %v", err)
	}
	if !off.(*Number).Value.Equal(dec("37.6")) {
		t.Errorf("40 - 6%% = %s, want 37.6", off.(*Number).Value)
	}
}

func TestIncompatibleOperationFallback(t *testing.T) {
	cat := testCatalog(t)
	n := NewNumber(dec("10"))
	d := NewDate(2024, 1, 1)

	_, err := n.Calculate(cat, true, d, Mul)
	if err != ErrNoResult {
		t.Fatalf("Number.Calculate(Date, Mul) = %v, want ErrNoResult", err)
	}
	_, err = d.Calculate(cat, false, n, Mul)
	if err != ErrNoResult {
		t.Fatalf("Date.Calculate(Number, Mul) = %v, want ErrNoResult", err)
	}
}

func TestMoneyCrossCurrencyAdd(t *testing.T) {
	cat := testCatalog(t)
	usd := NewMoney(dec("100"), "usd")
	eur := NewMoney(dec("50"), "eur")

	got, err := usd.Calculate(cat, true, eur, Add)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	m, ok := got.(*Money)
	if !ok || m.Currency != "usd" {
		t.Fatalf("got %+v, want Money in usd (display unit follows onLeft operand)", got)
	}
}

func TestMemoryUnitArithmetic(t *testing.T) {
	cat := testCatalog(t)
	gb, err := NewMemory(1, "gb", cat)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	mb, err := NewMemory(500, "mb", cat)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}

	got, err := gb.Calculate(cat, true, mb, Add)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	sum := got.(*Memory)
	wantBytes, _ := cat.MemoryUnit("gb")
	mbBytes, _ := cat.MemoryUnit("mb")
	want := wantBytes + 500*mbBytes
	if sum.Bytes != want {
		t.Errorf("1GB + 500MB = %f bytes, want %f", sum.Bytes, want)
	}
}
