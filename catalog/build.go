package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

//go:embed testdata/default_catalog.json
var defaultCatalogJSON embed.FS

// jsonLanguage mirrors the on-disk shape from spec.md §6.
type jsonLanguage struct {
	Aliases   map[string][]string `json:"aliases"`
	Rules     map[string][]string `json:"rules"`
	LongTexts []jsonLongText      `json:"long_texts"`
	Months    []jsonMonth         `json:"months"`
}

type jsonLongText struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

type jsonMonth struct {
	Name    string   `json:"name"`
	Month   int      `json:"month"`
	Regexes []string `json:"regexes"`
}

type jsonTimezone struct {
	Name          string `json:"name"`
	OffsetMinutes int32  `json:"offset_minutes"`
	Regex         string `json:"regex"`
}

type jsonBundle struct {
	Languages        map[string]jsonLanguage  `json:"languages"`
	Currencies       map[string]float64       `json:"currencies"`
	CurrencyAliases  map[string]string        `json:"currency_aliases"`
	Timezones        []jsonTimezone           `json:"timezones"`
	Units            map[string]map[string]float64 `json:"units"`
}

// Builder accumulates catalog data before a one-shot, immutable Build
// (spec.md §4.1: "Mutability: only via explicit builder before first
// execute").
type Builder struct {
	bundle            jsonBundle
	decimalSeparator  string
	thousandSeparator string
}

// NewBuilder returns an empty builder with US-style separator defaults.
func NewBuilder() *Builder {
	return &Builder{
		bundle: jsonBundle{
			Languages:       map[string]jsonLanguage{},
			Currencies:      map[string]float64{},
			CurrencyAliases: map[string]string{},
			Units:           map[string]map[string]float64{},
		},
		decimalSeparator:  ".",
		thousandSeparator: ",",
	}
}

// WithSeparators overrides the decimal/thousand separators, which
// NewBuilder sets to "." and ",".
func (b *Builder) WithSeparators(decimal, thousand string) *Builder {
	b.decimalSeparator = decimal
	b.thousandSeparator = thousand
	return b
}

// LoadJSON merges a catalog bundle (in the spec.md §6 JSON shape) into the
// builder. Later calls overlay earlier ones language-by-language.
func (b *Builder) LoadJSON(data []byte) error {
	var bundle jsonBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return fmt.Errorf("catalog: invalid bundle: %w", err)
	}
	for lang, def := range bundle.Languages {
		b.bundle.Languages[lang] = def
	}
	for code, rate := range bundle.Currencies {
		b.bundle.Currencies[code] = rate
	}
	for alias, code := range bundle.CurrencyAliases {
		b.bundle.CurrencyAliases[alias] = code
	}
	b.bundle.Timezones = append(b.bundle.Timezones, bundle.Timezones...)
	for family, table := range bundle.Units {
		if b.bundle.Units[family] == nil {
			b.bundle.Units[family] = map[string]float64{}
		}
		for unit, factor := range table {
			b.bundle.Units[family][unit] = factor
		}
	}
	return nil
}

// Build compiles every regex exactly once and returns the immutable
// Catalog (spec.md §4.1, §5: "regex sets ... compiled once ... then
// read-only").
func (b *Builder) Build() (*Catalog, error) {
	cat := &Catalog{
		Languages:         map[string]*Language{},
		Currencies:        b.bundle.Currencies,
		CurrencyAliases:   b.bundle.CurrencyAliases,
		MemoryUnits:       mergeDefaultUnits(b.bundle.Units["memory"]),
		DynamicUnits:      b.bundle.Units["dynamic"],
		DecimalSeparator:  b.decimalSeparator,
		ThousandSeparator: b.thousandSeparator,
	}
	if cat.DynamicUnits == nil {
		cat.DynamicUnits = map[string]float64{}
	}

	for _, tz := range b.bundle.Timezones {
		re, err := regexp.Compile(`(?i)^` + tz.Regex + `$`)
		if err != nil {
			return nil, fmt.Errorf("catalog: timezone regex %q: %w", tz.Name, err)
		}
		cat.Timezones = append(cat.Timezones, TimezoneEntry{
			Name:          tz.Name,
			OffsetMinutes: tz.OffsetMinutes,
			Regex:         re,
		})
	}

	for tag, def := range b.bundle.Languages {
		lang := &Language{
			Aliases: def.Aliases,
			aliasLU: map[string]string{},
		}
		for canonical, aliases := range def.Aliases {
			for _, alias := range aliases {
				lang.aliasLU[strings.ToLower(alias)] = canonical
			}
		}
		for id, patterns := range def.Rules {
			for _, pattern := range patterns {
				elems, err := parsePattern(pattern)
				if err != nil {
					return nil, fmt.Errorf("catalog: rule %q: %w", id, err)
				}
				lang.Rules = append(lang.Rules, RuleTemplate{ID: id, Pattern: elems, Handler: id})
			}
		}
		for _, lt := range def.LongTexts {
			re, err := regexp.Compile(`(?i)` + lt.Pattern)
			if err != nil {
				return nil, fmt.Errorf("catalog: long_text %q: %w", lt.Pattern, err)
			}
			lang.LongTexts = append(lang.LongTexts, LongText{Regex: re, Replacement: lt.Replacement})
		}
		for _, m := range def.Months {
			mp := MonthPattern{Name: m.Name, Month: m.Month}
			for _, pattern := range m.Regexes {
				re, err := regexp.Compile(`(?i)\b(?:` + pattern + `)\b`)
				if err != nil {
					return nil, fmt.Errorf("catalog: month regex %q: %w", pattern, err)
				}
				mp.Regexes = append(mp.Regexes, re)
			}
			lang.Months = append(lang.Months, mp)
		}
		cat.Languages[tag] = lang
	}

	if _, ok := cat.Languages["en"]; !ok {
		return nil, fmt.Errorf("catalog: no \"en\" language table defined")
	}

	return cat, nil
}

// parsePattern splits a rule pattern string like
// "{PERCENT:p} of {NUMBER:number}" into literal and capture elements.
func parsePattern(pattern string) ([]PatternElem, error) {
	var elems []PatternElem
	i := 0
	for i < len(pattern) {
		if pattern[i] == '{' {
			end := -1
			for j := i + 1; j < len(pattern); j++ {
				if pattern[j] == '}' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, fmt.Errorf("unterminated capture in %q", pattern)
			}
			inner := pattern[i+1 : end]
			colon := -1
			for j, ch := range inner {
				if ch == ':' {
					colon = j
					break
				}
			}
			if colon < 0 {
				return nil, fmt.Errorf("capture %q missing type:name", inner)
			}
			elems = append(elems, PatternElem{Type: inner[:colon], Capture: inner[colon+1:]})
			i = end + 1
			continue
		}
		// Accumulate the next literal word.
		j := i
		for j < len(pattern) && pattern[j] != '{' {
			j++
		}
		word := pattern[i:j]
		for _, tok := range splitWords(word) {
			elems = append(elems, PatternElem{Literal: tok})
		}
		i = j
	}
	return elems, nil
}

func splitWords(s string) []string {
	var words []string
	var cur []rune
	for _, r := range s {
		if r == ' ' || r == '\t' {
			if len(cur) > 0 {
				words = append(words, string(cur))
				cur = nil
			}
			continue
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		words = append(words, string(cur))
	}
	return words
}

// Default returns the catalog built from the embedded default bundle
// (grounded on CalcMark's syntax/embed.go go:embed pattern).
func Default() (*Catalog, error) {
	data, err := defaultCatalogJSON.ReadFile("testdata/default_catalog.json")
	if err != nil {
		return nil, fmt.Errorf("catalog: reading embedded bundle: %w", err)
	}
	b := NewBuilder()
	if err := b.LoadJSON(data); err != nil {
		return nil, err
	}
	return b.Build()
}
