package ast

import "fmt"

// Node is the interface every AST node implements. A nil Node represents
// the "None" variant (spec.md §3) — blank/comment-only lines never reach
// the parser, so None only ever appears as a zero value, never as a
// constructed node.
type Node interface {
	String() string
	GetRange() *Range
}

// NumberKind distinguishes the literal radix a Number token was written in
// (spec.md §3: Number(f64, NumberType∈{Decimal,Hex,Octal,Binary})).
type NumberKind int

const (
	Dec NumberKind = iota
	Hex
	Octal
	Bin
)

// Number is a numeric literal.
type Number struct {
	Value string
	Kind  NumberKind
	Range *Range
}

func (n *Number) String() string   { return fmt.Sprintf("Number(%s)", n.Value) }
func (n *Number) GetRange() *Range { return n.Range }

// Percent is a bare percentage literal, e.g. "6%".
type Percent struct {
	Value string
	Range *Range
}

func (p *Percent) String() string   { return fmt.Sprintf("Percent(%s%%)", p.Value) }
func (p *Percent) GetRange() *Range { return p.Range }

// Money is a currency-amount literal, e.g. "$1,900" or "40 EUR".
type Money struct {
	Amount   string
	Currency string
	Range    *Range
}

func (m *Money) String() string   { return fmt.Sprintf("Money(%s %s)", m.Amount, m.Currency) }
func (m *Money) GetRange() *Range { return m.Range }

// Time is a clock-time literal.
type Time struct {
	Hour, Minute, Second int
	Range                *Range
}

func (t *Time) String() string {
	return fmt.Sprintf("Time(%02d:%02d:%02d)", t.Hour, t.Minute, t.Second)
}
func (t *Time) GetRange() *Range { return t.Range }

// Date is a calendar-date literal.
type Date struct {
	Year, Month, Day int
	Range            *Range
}

func (d *Date) String() string {
	return fmt.Sprintf("Date(%04d-%02d-%02d)", d.Year, d.Month, d.Day)
}
func (d *Date) GetRange() *Range { return d.Range }

// Duration is a span-of-time literal expressed in whole seconds.
type Duration struct {
	Seconds int64
	Range   *Range
}

func (d *Duration) String() string   { return fmt.Sprintf("Duration(%ds)", d.Seconds) }
func (d *Duration) GetRange() *Range { return d.Range }

// Memory is a data-size literal, e.g. "4 GB".
type Memory struct {
	Amount string
	Unit   string
	Range  *Range
}

func (m *Memory) String() string   { return fmt.Sprintf("Memory(%s %s)", m.Amount, m.Unit) }
func (m *Memory) GetRange() *Range { return m.Range }

// DynamicType is a generic catalog-defined unit literal ("N unit_id"),
// covering unit families the core doesn't hard-code (spec.md §3).
type DynamicType struct {
	Amount string
	Unit   string
	Range  *Range
}

func (d *DynamicType) String() string   { return fmt.Sprintf("DynamicType(%s %s)", d.Amount, d.Unit) }
func (d *DynamicType) GetRange() *Range { return d.Range }

// Variable is a resolved reference to a prior line's published binding.
// LineIndex is the declaring line's index in the session rather than a
// pointer to the binding itself (spec.md §9: "use indices into the
// session's line list rather than cyclic references").
type Variable struct {
	Name      string
	LineIndex int
	Range     *Range
}

func (v *Variable) String() string   { return fmt.Sprintf("Variable(%q@%d)", v.Name, v.LineIndex) }
func (v *Variable) GetRange() *Range { return v.Range }

// PrefixUnary is a leading +/- applied to a primary expression.
type PrefixUnary struct {
	Sign  string
	Expr  Node
	Range *Range
}

func (u *PrefixUnary) String() string   { return fmt.Sprintf("PrefixUnary(%q, %s)", u.Sign, u.Expr) }
func (u *PrefixUnary) GetRange() *Range { return u.Range }

// Binary is a left-associative binary operation.
type Binary struct {
	Op    string
	Lhs   Node
	Rhs   Node
	Range *Range
}

func (b *Binary) String() string   { return fmt.Sprintf("Binary(%q, %s, %s)", b.Op, b.Lhs, b.Rhs) }
func (b *Binary) GetRange() *Range { return b.Range }

// Assignment publishes Expr's evaluated value under Name once the line
// completes successfully (spec.md §4.5).
type Assignment struct {
	Name  string
	Expr  Node
	Range *Range
}

func (a *Assignment) String() string   { return fmt.Sprintf("Assignment(%q, %s)", a.Name, a.Expr) }
func (a *Assignment) GetRange() *Range { return a.Range }
