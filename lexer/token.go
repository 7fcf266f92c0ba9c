package lexer

import (
	"fmt"

	"github.com/smartcalc/smartcalc/ast"
)

// Kind tags the domain literal a Token carries (spec.md §3).
type Kind int

const (
	KindComment Kind = iota
	KindNumber
	KindPercent
	KindMoney
	KindTime
	KindDate
	KindDuration
	KindMemory
	KindTimezone
	KindMonth
	KindDynamicType
	KindText
	KindOperator
	KindNewline
)

func (k Kind) String() string {
	names := [...]string{
		"Comment", "Number", "Percent", "Money", "Time", "Date", "Duration",
		"Memory", "Timezone", "Month", "DynamicType", "Text", "Operator", "Newline",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// UIKind is the host-facing syntax-highlighting annotation for a token
// (spec.md §3: "an optional UI annotation ... for host highlighting").
type UIKind int

const (
	UINumber UIKind = iota
	UIText
	UISymbol
	UIOperator
	UIComment
	UIMonth
)

// Token is a single lexer output: a byte span, a kind, the parsed payload
// for that kind, and an optional UI annotation (spec.md §3).
//
// A flat struct with kind-specific fields (rather than one interface per
// kind) mirrors the teacher's lexer.Token — a single concrete struct
// whose Value is interpreted according to Type — generalized from one
// string field to the richer payload SmartCalc's literals need.
type Token struct {
	Kind Kind
	Span ast.Span
	UI   UIKind

	Text string // raw text: operator char, word, timezone/month name

	NumberValue string
	NumberKind  ast.NumberKind

	PercentValue string

	MoneyAmount   string
	MoneyCurrency string

	Hour, Minute, Second int

	Year, Month, Day int

	DurationSeconds int64

	MemoryAmount string
	MemoryUnit   string

	DynamicAmount string
	DynamicUnit   string

	TimezoneOffset int32
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@[%d,%d)", t.Kind, t.Text, t.Span.Start, t.Span.End)
}
