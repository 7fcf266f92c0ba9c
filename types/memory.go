package types

import (
	"fmt"
	"strings"

	"github.com/smartcalc/smartcalc/catalog"
)

// Memory is a data-size value (spec.md §3). Bytes is the canonical
// representation; Unit is only the display unit.
type Memory struct {
	Bytes float64
	Unit  string
}

func NewMemory(amount float64, unit string, cat *catalog.Catalog) (*Memory, error) {
	unit = strings.ToLower(unit)
	factor, ok := cat.MemoryUnit(unit)
	if !ok {
		return nil, fmt.Errorf("unknown memory unit %q", unit)
	}
	return &Memory{Bytes: amount * factor, Unit: unit}, nil
}

func (m *Memory) TypeName() string             { return "Memory" }
func (m *Memory) GetUnderlyingNumber() float64 { return m.Bytes }

func (m *Memory) GetNumber(peer Item) float64 {
	if _, same := peer.(*Memory); same {
		return m.GetUnderlyingNumber()
	}
	return peer.GetUnderlyingNumber()
}

func (m *Memory) displayAmount(cat *catalog.Catalog) float64 {
	factor, ok := cat.MemoryUnit(m.Unit)
	if !ok || factor == 0 {
		return m.Bytes
	}
	return m.Bytes / factor
}

func (m *Memory) Print(cat *catalog.Catalog) string {
	return fmt.Sprintf("%s %s", formatFloat(m.displayAmount(cat)), strings.ToUpper(m.Unit))
}

func (m *Memory) Calculate(cat *catalog.Catalog, onLeft bool, other Item, op Op) (Item, error) {
	switch o := other.(type) {
	case *Number:
		if op != Mul && op != Div {
			return nil, ErrNoResult
		}
		return scaleMemory(m, o.GetUnderlyingNumber(), op)

	case *Memory:
		// ± after unit normalize: both normalized to bytes already;
		// display unit follows the onLeft operand (spec.md §4.6).
		if op != Add && op != Sub {
			return nil, ErrNoResult
		}
		left, right := m.Bytes, o.Bytes
		unit := m.Unit
		if !onLeft {
			left, right = right, left
			unit = o.Unit
		}
		var result float64
		if op == Add {
			result = left + right
		} else {
			result = left - right
		}
		return &Memory{Bytes: result, Unit: unit}, nil
	}
	return nil, ErrNoResult
}

func scaleMemory(m *Memory, scalar float64, op Op) (Item, error) {
	switch op {
	case Mul:
		return &Memory{Bytes: m.Bytes * scalar, Unit: m.Unit}, nil
	case Div:
		if scalar == 0 {
			return &Memory{Bytes: 0, Unit: m.Unit}, nil
		}
		return &Memory{Bytes: m.Bytes / scalar, Unit: m.Unit}, nil
	}
	return nil, ErrNoResult
}

// ConvertTo rescales to a different display unit without changing the
// underlying byte count. The rewriter's memory_convert handler does its
// own conversion and does not call this.
func (m *Memory) ConvertTo(cat *catalog.Catalog, unit string) (*Memory, error) {
	unit = strings.ToLower(unit)
	if _, ok := cat.MemoryUnit(unit); !ok {
		return nil, fmt.Errorf("unknown memory unit %q", unit)
	}
	return &Memory{Bytes: m.Bytes, Unit: unit}, nil
}

// DynamicType is a generic catalog-defined unit value (spec.md §3), for
// unit families the core doesn't hard-code (e.g. speed).
type DynamicType struct {
	Value float64 // in the catalog's base multiplier space
	Unit  string
}

func NewDynamicType(amount float64, unit string, cat *catalog.Catalog) (*DynamicType, error) {
	unit = strings.ToLower(unit)
	factor, ok := cat.DynamicUnit(unit)
	if !ok {
		return nil, fmt.Errorf("unknown unit %q", unit)
	}
	return &DynamicType{Value: amount * factor, Unit: unit}, nil
}

func (d *DynamicType) TypeName() string             { return "DynamicType" }
func (d *DynamicType) GetUnderlyingNumber() float64 { return d.Value }

func (d *DynamicType) GetNumber(peer Item) float64 {
	if _, same := peer.(*DynamicType); same {
		return d.GetUnderlyingNumber()
	}
	return peer.GetUnderlyingNumber()
}

func (d *DynamicType) Print(cat *catalog.Catalog) string {
	factor, ok := cat.DynamicUnit(d.Unit)
	amount := d.Value
	if ok && factor != 0 {
		amount = d.Value / factor
	}
	return fmt.Sprintf("%s %s", formatFloat(amount), strings.ToUpper(d.Unit))
}

func (d *DynamicType) Calculate(cat *catalog.Catalog, onLeft bool, other Item, op Op) (Item, error) {
	switch o := other.(type) {
	case *Number:
		if op != Mul && op != Div {
			return nil, ErrNoResult
		}
		scalar := o.GetUnderlyingNumber()
		if op == Mul {
			return &DynamicType{Value: d.Value * scalar, Unit: d.Unit}, nil
		}
		if scalar == 0 {
			return &DynamicType{Value: 0, Unit: d.Unit}, nil
		}
		return &DynamicType{Value: d.Value / scalar, Unit: d.Unit}, nil

	case *DynamicType:
		if op != Add && op != Sub {
			return nil, ErrNoResult
		}
		left, right := d.Value, o.Value
		unit := d.Unit
		if !onLeft {
			left, right = right, left
			unit = o.Unit
		}
		if op == Add {
			return &DynamicType{Value: left + right, Unit: unit}, nil
		}
		return &DynamicType{Value: left - right, Unit: unit}, nil
	}
	return nil, ErrNoResult
}

// ConvertTo rescales to a different catalog-known unit. The rewriter's
// dynamic_type_convert handler does its own conversion and does not call
// this.
func (d *DynamicType) ConvertTo(cat *catalog.Catalog, unit string) (*DynamicType, error) {
	unit = strings.ToLower(unit)
	if _, ok := cat.DynamicUnit(unit); !ok {
		return nil, fmt.Errorf("unknown unit %q", unit)
	}
	return &DynamicType{Value: d.Value, Unit: unit}, nil
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%.4f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
