package rewriter

import (
	"fmt"
	"strings"
	"time"

	"github.com/smartcalc/smartcalc/catalog"
	"github.com/smartcalc/smartcalc/lexer"
)

// handlerFunc rewrites a matched capture group into the single replacement
// token that takes the match's place (spec.md §4.3 Pass B).
type handlerFunc func(cat *catalog.Catalog, caps map[string]lexer.Token) (lexer.Token, error)

// handlers maps a rule template's id (also its handler name, set in
// catalog.Build) to the function that computes its replacement.
var handlers = map[string]handlerFunc{
	"percent_of":         percentCalculate,
	"percent_on":         percentAdd,
	"percent_off":        percentSub,
	"money_in_currency":  moneyConvert,
	"memory_in_unit":     memoryConvert,
	"dynamic_in_unit":    dynamicTypeConvert,
	"date_plus_duration": dateAddDuration,
	"cleanup_people":     cleanup,
	"cleanup_filler":     cleanup,
}

// percentCalculate implements "{PERCENT:p} of {NUMBER:number}" -> Number
// (percent*number)/100 (spec.md §8's "6% of 40" scenario).
func percentCalculate(cat *catalog.Catalog, caps map[string]lexer.Token) (lexer.Token, error) {
	p := parseNum(caps["p"].PercentValue)
	n := parseNum(caps["number"].NumberValue)
	return lexer.Token{Kind: lexer.KindNumber, NumberValue: formatNum(p * n / 100)}, nil
}

// percentAdd implements "{PERCENT:p} on {NUMBER:number}" and
// "{NUMBER:number} add {PERCENT:p}" -> Number number + number*percent/100.
func percentAdd(cat *catalog.Catalog, caps map[string]lexer.Token) (lexer.Token, error) {
	p := parseNum(caps["p"].PercentValue)
	n := parseNum(caps["number"].NumberValue)
	return lexer.Token{Kind: lexer.KindNumber, NumberValue: formatNum(n + n*p/100)}, nil
}

// percentSub implements "{PERCENT:p} off {NUMBER:number}" and
// "{NUMBER:number} sub {PERCENT:p}" -> Number number - number*percent/100.
func percentSub(cat *catalog.Catalog, caps map[string]lexer.Token) (lexer.Token, error) {
	p := parseNum(caps["p"].PercentValue)
	n := parseNum(caps["number"].NumberValue)
	return lexer.Token{Kind: lexer.KindNumber, NumberValue: formatNum(n - n*p/100)}, nil
}

// moneyConvert implements "{MONEY:m} in/to {TEXT:currency}" -> Money
// converted into the named currency via the catalog's rate table.
func moneyConvert(cat *catalog.Catalog, caps map[string]lexer.Token) (lexer.Token, error) {
	m := caps["m"]
	dst, ok := cat.CurrencyAlias(caps["currency"].Text)
	if !ok {
		return lexer.Token{}, fmt.Errorf("unknown currency %q", caps["currency"].Text)
	}
	converted, err := cat.ConvertMoney(parseNum(m.MoneyAmount), m.MoneyCurrency, dst)
	if err != nil {
		return lexer.Token{}, err
	}
	return lexer.Token{Kind: lexer.KindMoney, MoneyAmount: formatNum(converted), MoneyCurrency: dst}, nil
}

// memoryConvert implements "{MEMORY:mem} in/to {TEXT:unit}" -> Memory
// re-expressed in the named unit, preserving the underlying byte count.
func memoryConvert(cat *catalog.Catalog, caps map[string]lexer.Token) (lexer.Token, error) {
	mem := caps["mem"]
	unit := strings.ToLower(caps["unit"].Text)
	dstFactor, ok := cat.MemoryUnit(unit)
	if !ok {
		return lexer.Token{}, fmt.Errorf("unknown memory unit %q", caps["unit"].Text)
	}
	srcFactor, ok := cat.MemoryUnit(mem.MemoryUnit)
	if !ok {
		return lexer.Token{}, fmt.Errorf("unknown memory unit %q", mem.MemoryUnit)
	}
	bytes := parseNum(mem.MemoryAmount) * srcFactor
	return lexer.Token{Kind: lexer.KindMemory, MemoryAmount: formatNum(bytes / dstFactor), MemoryUnit: unit}, nil
}

// dynamicTypeConvert implements "{DYNAMIC:d} in/to {TEXT:unit}" -> a
// DynamicType token re-expressed in the named catalog-defined unit.
func dynamicTypeConvert(cat *catalog.Catalog, caps map[string]lexer.Token) (lexer.Token, error) {
	d := caps["d"]
	unit := strings.ToLower(caps["unit"].Text)
	dstFactor, ok := cat.DynamicUnit(unit)
	if !ok {
		return lexer.Token{}, fmt.Errorf("unknown unit %q", caps["unit"].Text)
	}
	srcFactor, ok := cat.DynamicUnit(d.DynamicUnit)
	if !ok {
		return lexer.Token{}, fmt.Errorf("unknown unit %q", d.DynamicUnit)
	}
	base := parseNum(d.DynamicAmount) * srcFactor
	return lexer.Token{Kind: lexer.KindDynamicType, DynamicAmount: formatNum(base / dstFactor), DynamicUnit: unit}, nil
}

// dateAddDuration implements "{DATE:d} plus/add {DURATION:dur}" -> Date
// advanced by the duration's second count.
func dateAddDuration(cat *catalog.Catalog, caps map[string]lexer.Token) (lexer.Token, error) {
	d := caps["d"]
	dur := caps["dur"]
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	t = t.Add(time.Duration(dur.DurationSeconds) * time.Second)
	return lexer.Token{Kind: lexer.KindDate, Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// cleanup implements "{ANY:x} people" and "{ANY:x} each": the capture
// passes through unchanged, dropping the trailing filler word.
func cleanup(cat *catalog.Catalog, caps map[string]lexer.Token) (lexer.Token, error) {
	return caps["x"], nil
}
