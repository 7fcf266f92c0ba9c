// Package catalog holds the immutable, locale-keyed tables the rest of the
// pipeline consults: currencies, aliases, rule templates, month/timezone
// vocabulary and unit conversion factors (spec.md §4.1).
//
// A Catalog is built once via Builder and never mutated afterward; it is
// safe to share by reference across sessions and goroutines (spec.md §5).
package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/currency"
)

// RuleTemplate is a declarative phrasal pattern paired with the id of the
// handler that rewrites a match (spec.md's "rule template" glossary entry).
type RuleTemplate struct {
	ID      string
	Pattern []PatternElem
	Handler string
}

// PatternElem is one element of a rule's pattern: either a literal word or
// a typed capture slot such as "{NUMBER:x}".
type PatternElem struct {
	Literal string
	Capture string // capture name, empty for literal elements
	Type    string // NUMBER, MONEY, PERCENT, TEXT, DATE, DURATION, MEMORY, DYNAMIC, ANY
}

// MonthPattern binds a set of locale-specific spellings to a month number.
type MonthPattern struct {
	Name    string
	Month   int
	Regexes []*regexp.Regexp
}

// TimezoneEntry binds a recognized abbreviation to its UTC offset.
type TimezoneEntry struct {
	Name          string
	OffsetMinutes int32
	Regex         *regexp.Regexp
}

// LongText normalizes a locale idiom ("a hundred") into the canonical
// token text ("100") before the word lexer ever sees it. Restored from
// the original Rust tokinizer's long_texts.rs pass, which spec.md's
// distillation only names but doesn't detail (see SPEC_FULL.md §6.3).
type LongText struct {
	Regex       *regexp.Regexp
	Replacement string
}

// Language bundles all locale-specific recognition data for one language
// tag (spec.md §4.1: alias_table, rule_templates, month_regex, long_texts).
type Language struct {
	Aliases   map[string][]string // canonical token text -> alias spellings
	aliasLU   map[string]string   // alias spelling (lowercased) -> canonical text, compiled
	Rules     []RuleTemplate
	Months    []MonthPattern
	LongTexts []LongText
}

// AliasLookup resolves a lowercased word to its canonical token text.
func (l *Language) AliasLookup(word string) (string, bool) {
	canon, ok := l.aliasLU[strings.ToLower(word)]
	return canon, ok
}

// Catalog is the immutable bundle shared by every session (spec.md §4.1).
type Catalog struct {
	Languages        map[string]*Language
	Currencies       map[string]float64 // rate = units of code per 1 USD
	CurrencyAliases  map[string]string
	Timezones        []TimezoneEntry
	MemoryUnits      map[string]float64 // canonical unit -> bytes
	DynamicUnits     map[string]float64 // canonical unit -> base multiplier
	DecimalSeparator string
	ThousandSeparator string
}

// Language returns the locale table for tag, falling back to "en".
func (c *Catalog) Language(tag string) *Language {
	if lang, ok := c.Languages[tag]; ok {
		return lang
	}
	return c.Languages["en"]
}

// CurrencyAlias resolves free text (a symbol, code or word) to a lowercase
// ISO-ish currency code known to the catalog (spec.md §4.1).
func (c *Catalog) CurrencyAlias(text string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(text))
	if code, ok := c.CurrencyAliases[key]; ok {
		return code, true
	}
	// Fall back to strict ISO-4217 parsing so any valid code the alias
	// table doesn't explicitly list (e.g. a less common currency) still
	// canonicalizes instead of failing outright.
	if unit, err := currency.ParseISO(strings.ToUpper(key)); err == nil {
		code := strings.ToLower(unit.String())
		if _, known := c.Currencies[code]; known {
			return code, true
		}
	}
	return "", false
}

// CurrencyRate returns units-of-code-per-1-USD, or an error for an unknown
// code (spec.md §4.1: "missing rates yielding a well-typed error, not 0").
func (c *Catalog) CurrencyRate(code string) (float64, error) {
	rate, ok := c.Currencies[strings.ToLower(code)]
	if !ok {
		return 0, fmt.Errorf("unknown currency %q", code)
	}
	return rate, nil
}

// ConvertMoney converts amount from currency src to dst using the
// per-USD rate table: amount / rate(src) * rate(dst) (spec.md §4.1).
func (c *Catalog) ConvertMoney(amount float64, src, dst string) (float64, error) {
	srcRate, err := c.CurrencyRate(src)
	if err != nil {
		return 0, err
	}
	dstRate, err := c.CurrencyRate(dst)
	if err != nil {
		return 0, err
	}
	return amount / srcRate * dstRate, nil
}

// MemoryUnit looks up a canonical memory unit's size in bytes.
func (c *Catalog) MemoryUnit(unit string) (float64, bool) {
	bytes, ok := c.MemoryUnits[strings.ToLower(unit)]
	return bytes, ok
}

// DynamicUnit looks up a catalog-defined dynamic unit's base multiplier.
func (c *Catalog) DynamicUnit(unit string) (float64, bool) {
	mult, ok := c.DynamicUnits[strings.ToLower(unit)]
	return mult, ok
}

// TimezoneOffset scans the compiled timezone regex list for a match
// against an uppercased abbreviation (spec.md §4.2).
func (c *Catalog) TimezoneOffset(text string) (int32, bool) {
	upper := strings.ToUpper(text)
	for _, tz := range c.Timezones {
		if tz.Regex.MatchString(upper) {
			return tz.OffsetMinutes, true
		}
	}
	return 0, false
}
