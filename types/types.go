// Package types defines the SmartCalc data item type system: the typed
// values the interpreter produces and operates on (spec.md §3, §4.6).
package types

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/smartcalc/smartcalc/catalog"
)

// Op is an arithmetic operator symbol as produced by the parser.
type Op string

const (
	Add Op = "+"
	Sub Op = "-"
	Mul Op = "*"
	Div Op = "/"
)

// ErrNoResult is returned by Calculate when the (left, op, right) triple
// has no defined meaning for this variant; the interpreter falls back to
// the peer's Calculate before surfacing IncompatibleOperation (spec.md
// §4.5, §4.6: "Unsupported pairs return 'no result'").
var ErrNoResult = errors.New("no result")

// Item is the capability set every data item implements (spec.md §3:
// "calculate, get_underlying_number, get_number, type_name, print").
// Calculate lives on the interface itself (not dispatched externally by
// the interpreter) because the seven-by-seven matrix in spec.md §4.6
// needs each variant to know its own peer rules — mirroring the Rust
// original's `DataItem::calculate` trait method (see SPEC_FULL.md §6.7).
type Item interface {
	// Calculate evaluates `self op other` (onLeft true) or `other op self`
	// (onLeft false), returning ErrNoResult if this pairing isn't defined.
	Calculate(cat *catalog.Catalog, onLeft bool, other Item, op Op) (Item, error)
	// GetUnderlyingNumber returns the item's plain numeric component.
	GetUnderlyingNumber() float64
	// GetNumber returns the number to use when combining with peer: the
	// item's own value if peer is the same type, otherwise peer's
	// underlying number scaled by this item's ratio (percent.rs's
	// get_number contract).
	GetNumber(peer Item) float64
	// TypeName names the variant for error messages ("Number", "Money", …).
	TypeName() string
	// Print renders the item using the catalog's locale formatting rules.
	Print(cat *catalog.Catalog) string
}

func divByZero(divisor decimal.Decimal) bool {
	return divisor.IsZero()
}

// applyDecimalOp performs +,-,*,/ on two decimals. Division by zero
// yields zero rather than erroring — a deliberate, documented policy
// (spec.md §4.6, §9: "pick one policy per kind, document it").
func applyDecimalOp(l, r decimal.Decimal, op Op) decimal.Decimal {
	switch op {
	case Add:
		return l.Add(r)
	case Sub:
		return l.Sub(r)
	case Mul:
		return l.Mul(r)
	case Div:
		if divByZero(r) {
			return decimal.Zero
		}
		return l.Div(r)
	default:
		return decimal.Zero
	}
}

// Number is an arbitrary-precision numeric value (spec.md §3).
type Number struct {
	Value decimal.Decimal
}

func NewNumber(v decimal.Decimal) *Number { return &Number{Value: v} }

func (n *Number) TypeName() string             { return "Number" }
func (n *Number) GetUnderlyingNumber() float64 { f, _ := n.Value.Float64(); return f }

func (n *Number) GetNumber(peer Item) float64 {
	if _, same := peer.(*Number); same {
		return n.GetUnderlyingNumber()
	}
	return peer.GetUnderlyingNumber()
}

func (n *Number) Print(cat *catalog.Catalog) string {
	return formatDecimal(n.Value, cat)
}

func (n *Number) Calculate(cat *catalog.Catalog, onLeft bool, other Item, op Op) (Item, error) {
	switch o := other.(type) {
	case *Number:
		left, right := n.Value, o.Value
		if !onLeft {
			left, right = right, left
		}
		return &Number{Value: applyDecimalOp(left, right, op)}, nil

	case *Percent:
		// N·P%→N (P as ratio) — spec.md §4.6. Add/Sub only make sense
		// with the Number on the left ("N on/off P%"); Mul/Div accept
		// either ordering and always apply the ratio to N (N*ratio or
		// N/ratio).
		if !onLeft && (op == Add || op == Sub) {
			return nil, ErrNoResult
		}
		ratio := o.Value.Div(decimal.NewFromInt(100))
		switch op {
		case Add:
			return &Number{Value: n.Value.Add(n.Value.Mul(ratio))}, nil
		case Sub:
			return &Number{Value: n.Value.Sub(n.Value.Mul(ratio))}, nil
		case Mul:
			return &Number{Value: n.Value.Mul(ratio)}, nil
		case Div:
			if divByZero(ratio) {
				return &Number{Value: decimal.Zero}, nil
			}
			return &Number{Value: n.Value.Div(ratio)}, nil
		}
		return nil, ErrNoResult

	case *Money:
		// N·M→M (same currency), scalar multiply/divide only.
		if op != Mul && op != Div {
			return nil, ErrNoResult
		}
		left, right := n.Value, o.Value
		if !onLeft {
			left, right = right, left
		}
		return &Money{Value: applyDecimalOp(left, right, op), Currency: o.Currency}, nil

	case *Duration:
		if op != Mul && op != Div {
			return nil, ErrNoResult
		}
		scalar, _ := n.Value.Float64()
		return scaleDuration(o, scalar, op)

	case *Memory:
		if op != Mul && op != Div {
			return nil, ErrNoResult
		}
		scalar, _ := n.Value.Float64()
		return scaleMemory(o, scalar, op)
	}
	return nil, ErrNoResult
}

// Percent is a bare "N%" literal (spec.md §3).
type Percent struct {
	Value decimal.Decimal // the raw percent number, e.g. 6 for "6%"
}

func NewPercent(v decimal.Decimal) *Percent { return &Percent{Value: v} }

func (p *Percent) TypeName() string             { return "Percent" }
func (p *Percent) GetUnderlyingNumber() float64 { f, _ := p.Value.Float64(); return f }

func (p *Percent) GetNumber(peer Item) float64 {
	if _, same := peer.(*Percent); same {
		return p.GetUnderlyingNumber()
	}
	return peer.GetUnderlyingNumber() * p.GetUnderlyingNumber() / 100
}

func (p *Percent) Print(cat *catalog.Catalog) string {
	return formatDecimal(p.Value, cat) + "%"
}

func (p *Percent) Calculate(cat *catalog.Catalog, onLeft bool, other Item, op Op) (Item, error) {
	switch o := other.(type) {
	case *Number:
		// Defer to Number's symmetric handling so "P% of N" behaves the
		// same regardless of which side's Calculate runs first.
		return o.Calculate(cat, !onLeft, p, op)

	case *Percent:
		left, right := p.Value, o.Value
		if !onLeft {
			left, right = right, left
		}
		return &Percent{Value: applyDecimalOp(left, right, op)}, nil

	case *Money:
		ratio := p.Value.Div(decimal.NewFromInt(100))
		switch op {
		case Mul:
			return &Money{Value: o.Value.Mul(ratio), Currency: o.Currency}, nil
		case Add:
			return &Money{Value: o.Value.Add(o.Value.Mul(ratio)), Currency: o.Currency}, nil
		case Sub:
			return &Money{Value: o.Value.Sub(o.Value.Mul(ratio)), Currency: o.Currency}, nil
		}
		return nil, ErrNoResult
	}
	return nil, ErrNoResult
}

// formatDecimal renders a decimal using the catalog's thousands/decimal
// separators, generalizing the teacher's types.Number.String /
// addThousandsSeparators into a catalog-driven version.
func formatDecimal(d decimal.Decimal, cat *catalog.Catalog) string {
	s := d.String()
	intPart, fracPart, negative := splitDecimalString(s)
	grouped := groupThousands(intPart, thousandSep(cat))
	out := grouped
	if fracPart != "" {
		out += decimalSep(cat) + fracPart
	}
	if negative {
		out = "-" + out
	}
	return out
}

func splitDecimalString(s string) (intPart, fracPart string, negative bool) {
	if len(s) > 0 && s[0] == '-' {
		negative = true
		s = s[1:]
	}
	for i, r := range s {
		if r == '.' {
			return s[:i], s[i+1:], negative
		}
	}
	return s, "", negative
}

func groupThousands(digits, sep string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var out []byte
	lead := n % 3
	if lead == 0 {
		lead = 3
	}
	out = append(out, digits[:lead]...)
	for i := lead; i < n; i += 3 {
		out = append(out, sep...)
		out = append(out, digits[i:i+3]...)
	}
	return string(out)
}

func decimalSep(cat *catalog.Catalog) string {
	if cat != nil && cat.DecimalSeparator != "" {
		return cat.DecimalSeparator
	}
	return "."
}

func thousandSep(cat *catalog.Catalog) string {
	if cat != nil && cat.ThousandSeparator != "" {
		return cat.ThousandSeparator
	}
	return ","
}
