// Package interpreter walks a SmartCalc AST and produces typed data
// items (spec.md §4.5), grounded on the teacher's evaluator.go Context/
// EvaluationError shape, generalized from its Type-switch dispatch to
// the Item-carries-its-own-Calculate contract in package types.
package interpreter

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/smartcalc/smartcalc/ast"
	"github.com/smartcalc/smartcalc/catalog"
	"github.com/smartcalc/smartcalc/types"
)

// EvalError reports an interpretation failure at the node's range.
type EvalError struct {
	Message string
	Range   *ast.Range
}

func (e *EvalError) Error() string {
	if e.Range != nil {
		return fmt.Sprintf("%s at %s", e.Message, e.Range.Start)
	}
	return e.Message
}

// LineResolver returns the published value of a prior line, by index
// (spec.md §4.5: "Variable(ref) dereferences into the stored computed
// data item of the referent line").
type LineResolver func(lineIndex int) (types.Item, bool)

// Result is what evaluating one line produces: its value plus, when the
// line was an assignment, the name to publish (spec.md §4.5).
type Result struct {
	Value        types.Item
	AssignedName string
	HasAssign    bool
}

// Eval walks node depth-first against cat and resolve, implementing
// spec.md §4.5's dispatch contract. A panic raised while evaluating is
// recovered and returned as an *EvalError.
func Eval(cat *catalog.Catalog, node ast.Node, resolve LineResolver) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = Result{}, &EvalError{Message: fmt.Sprintf("internal error: %v", r)}
		}
	}()
	if assign, ok := node.(*ast.Assignment); ok {
		val, err := evalExpr(cat, assign.Expr, resolve)
		if err != nil {
			return Result{}, err
		}
		return Result{Value: val, AssignedName: assign.Name, HasAssign: true}, nil
	}
	val, err := evalExpr(cat, node, resolve)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: val}, nil
}

func evalExpr(cat *catalog.Catalog, node ast.Node, resolve LineResolver) (types.Item, error) {
	switch n := node.(type) {
	case *ast.Number:
		d, err := decimal.NewFromString(normalizeRadix(n.Value, n.Kind))
		if err != nil {
			return nil, &EvalError{Message: fmt.Sprintf("invalid number %q: %v", n.Value, err), Range: n.Range}
		}
		return types.NewNumber(d), nil

	case *ast.Percent:
		d, err := decimal.NewFromString(n.Value)
		if err != nil {
			return nil, &EvalError{Message: fmt.Sprintf("invalid percent %q: %v", n.Value, err), Range: n.Range}
		}
		return types.NewPercent(d), nil

	case *ast.Money:
		d, err := decimal.NewFromString(n.Amount)
		if err != nil {
			return nil, &EvalError{Message: fmt.Sprintf("invalid money amount %q: %v", n.Amount, err), Range: n.Range}
		}
		return types.NewMoney(d, n.Currency), nil

	case *ast.Time:
		return types.NewTime(n.Hour, n.Minute, n.Second), nil

	case *ast.Date:
		return types.NewDate(n.Year, n.Month, n.Day), nil

	case *ast.Duration:
		return types.NewDuration(n.Seconds), nil

	case *ast.Memory:
		d, err := decimal.NewFromString(n.Amount)
		if err != nil {
			return nil, &EvalError{Message: fmt.Sprintf("invalid memory amount %q: %v", n.Amount, err), Range: n.Range}
		}
		f, _ := d.Float64()
		mem, err := types.NewMemory(f, n.Unit, cat)
		if err != nil {
			return nil, &EvalError{Message: err.Error(), Range: n.Range}
		}
		return mem, nil

	case *ast.DynamicType:
		d, err := decimal.NewFromString(n.Amount)
		if err != nil {
			return nil, &EvalError{Message: fmt.Sprintf("invalid amount %q: %v", n.Amount, err), Range: n.Range}
		}
		f, _ := d.Float64()
		dt, err := types.NewDynamicType(f, n.Unit, cat)
		if err != nil {
			return nil, &EvalError{Message: err.Error(), Range: n.Range}
		}
		return dt, nil

	case *ast.Variable:
		val, ok := resolve(n.LineIndex)
		if !ok {
			return nil, &EvalError{Message: fmt.Sprintf("variable %q has no value on its declaring line", n.Name), Range: n.Range}
		}
		return val, nil

	case *ast.PrefixUnary:
		val, err := evalExpr(cat, n.Expr, resolve)
		if err != nil {
			return nil, err
		}
		if n.Sign == "+" {
			return val, nil
		}
		neg, err := negate(val)
		if err != nil {
			return nil, &EvalError{Message: err.Error(), Range: n.Range}
		}
		return neg, nil

	case *ast.Binary:
		lhs, err := evalExpr(cat, n.Lhs, resolve)
		if err != nil {
			return nil, err
		}
		rhs, err := evalExpr(cat, n.Rhs, resolve)
		if err != nil {
			return nil, err
		}
		op := types.Op(n.Op)
		result, err := lhs.Calculate(cat, true, rhs, op)
		if err == types.ErrNoResult {
			result, err = rhs.Calculate(cat, false, lhs, op)
		}
		if err == types.ErrNoResult {
			return nil, &EvalError{
				Message: fmt.Sprintf("incompatible operation: %s %s %s", lhs.TypeName(), n.Op, rhs.TypeName()),
				Range:   n.Range,
			}
		}
		if err != nil {
			return nil, &EvalError{Message: err.Error(), Range: n.Range}
		}
		return result, nil

	default:
		return nil, &EvalError{Message: fmt.Sprintf("unhandled node type %T", node)}
	}
}

func normalizeRadix(value string, kind ast.NumberKind) string {
	if kind == ast.Dec {
		return value
	}
	// Hex/Octal/Binary literals pass through the lexer's normalizeNumber
	// untouched, keeping their original "0x.."/"0o.."/"0b.." spelling;
	// decimal.NewFromString only accepts base-10, so convert.
	var base int
	switch kind {
	case ast.Hex:
		base = 16
	case ast.Octal:
		base = 8
	case ast.Bin:
		base = 2
	}
	n, ok := parseIntRadix(value, base)
	if !ok {
		return value
	}
	return n
}

func parseIntRadix(s string, base int) (string, bool) {
	if len(s) < 3 {
		return "", false
	}
	digits := s[2:]
	var acc int64
	for _, r := range digits {
		var d int64
		switch {
		case r >= '0' && r <= '9':
			d = int64(r - '0')
		case r >= 'a' && r <= 'f':
			d = int64(r-'a') + 10
		case r >= 'A' && r <= 'F':
			d = int64(r-'A') + 10
		default:
			return "", false
		}
		if int(d) >= base {
			return "", false
		}
		acc = acc*int64(base) + d
	}
	return fmt.Sprintf("%d", acc), true
}

// negate flips the sign of a primary's numeric component (spec.md §4.4:
// "unary '-' negates the primary's numeric component").
func negate(item types.Item) (types.Item, error) {
	switch v := item.(type) {
	case *types.Number:
		return types.NewNumber(v.Value.Neg()), nil
	case *types.Money:
		return types.NewMoney(v.Value.Neg(), v.Currency), nil
	case *types.Percent:
		return types.NewPercent(v.Value.Neg()), nil
	case *types.Duration:
		return types.NewDuration(-v.Seconds), nil
	case *types.Memory:
		return &types.Memory{Bytes: -v.Bytes, Unit: v.Unit}, nil
	case *types.DynamicType:
		return &types.DynamicType{Value: -v.Value, Unit: v.Unit}, nil
	default:
		return nil, fmt.Errorf("unary '-' cannot apply to %s", item.TypeName())
	}
}
