package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smartcalc/smartcalc/catalog"
)

// Money is a currency-amount value (spec.md §3). Currency is always the
// catalog's lowercase canonical code.
type Money struct {
	Value    decimal.Decimal
	Currency string
}

func NewMoney(v decimal.Decimal, currency string) *Money {
	return &Money{Value: v, Currency: strings.ToLower(currency)}
}

func (m *Money) TypeName() string             { return "Money" }
func (m *Money) GetUnderlyingNumber() float64 { f, _ := m.Value.Float64(); return f }

func (m *Money) GetNumber(peer Item) float64 {
	if _, same := peer.(*Money); same {
		return m.GetUnderlyingNumber()
	}
	return peer.GetUnderlyingNumber()
}

// Print renders the amount with the catalog's separators and the
// currency's symbol, generalizing the teacher's Currency.String
// ("$1,000.00") to any catalog-known code.
func (m *Money) Print(cat *catalog.Catalog) string {
	rounded := m.Value.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return fmt.Sprintf("%s%s%s", sign, currencySymbol(m.Currency), formatDecimal(rounded, cat))
}

func currencySymbol(code string) string {
	switch code {
	case "usd":
		return "$"
	case "eur":
		return "€"
	case "gbp":
		return "£"
	case "jpy":
		return "¥"
	default:
		return strings.ToUpper(code) + " "
	}
}

func (m *Money) Calculate(cat *catalog.Catalog, onLeft bool, other Item, op Op) (Item, error) {
	switch o := other.(type) {
	case *Number:
		if op != Mul && op != Div {
			return nil, ErrNoResult
		}
		left, right := m.Value, o.Value
		if !onLeft {
			left, right = right, left
		}
		return &Money{Value: applyDecimalOp(left, right, op), Currency: m.Currency}, nil

	case *Percent:
		// Delegate to Percent so "M + 6%" and "6% + M" agree.
		return o.Calculate(cat, !onLeft, m, op)

	case *Money:
		left, right := m.Value, o.Value
		srcCurrency, dstCurrency := m.Currency, o.Currency
		if !onLeft {
			left, right = right, left
			srcCurrency, dstCurrency = dstCurrency, srcCurrency
		}
		if op != Add && op != Sub {
			return nil, ErrNoResult
		}
		if srcCurrency == dstCurrency {
			return &Money{Value: applyDecimalOp(left, right, op), Currency: srcCurrency}, nil
		}
		// Currency mismatch triggers conversion via currency_rate
		// (spec.md §4.6: "Currency mismatch triggers conversion").
		converted, err := cat.ConvertMoney(toFloat(right), dstCurrency, srcCurrency)
		if err != nil {
			return nil, err
		}
		return &Money{Value: applyDecimalOp(left, decimal.NewFromFloat(converted), op), Currency: srcCurrency}, nil
	}
	return nil, ErrNoResult
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// Convert produces a new Money in dst without going through Calculate.
// The rewriter's money_convert handler calls catalog.ConvertMoney itself
// and does not use this.
func (m *Money) Convert(cat *catalog.Catalog, dst string) (*Money, error) {
	converted, err := cat.ConvertMoney(toFloat(m.Value), m.Currency, dst)
	if err != nil {
		return nil, err
	}
	return &Money{Value: decimal.NewFromFloat(converted), Currency: strings.ToLower(dst)}, nil
}
