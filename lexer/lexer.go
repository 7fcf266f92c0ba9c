// Package lexer turns one source line into a flat, non-overlapping vector
// of Tokens (spec.md §4.2).
package lexer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/smartcalc/smartcalc/ast"
	"github.com/smartcalc/smartcalc/catalog"
)

// LexerError reports a span the lexer could not classify, in the teacher's
// (message, line, column) shape (lexer.go's LexerError in the teacher pack).
type LexerError struct {
	Message string
	Line    int
	Column  int
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Line, e.Column)
}

var durationUnitSeconds = map[string]int64{
	"second": 1,
	"minute": 60,
	"hour":   3600,
	"day":    86400,
	"week":   604800,
	"month":  2592000,  // 30-day approximation
	"year":   31536000, // 365-day approximation
}

// dateMonthRegexes is the per-language pair of month-name date templates,
// compiled once in New from the catalog's month spellings.
type dateMonthRegexes struct {
	dayMonthYear *regexp.Regexp // "15 January 2024" / "15th Jan, 2024"
	monthDayYear *regexp.Regexp // "January 15, 2024"
}

// Lexer holds every precompiled regex family for a Catalog. Constructing it
// is the one place regex compilation happens; Tokenize never compiles
// (spec.md §4.1/§5: "compiled once ... then read-only").
type Lexer struct {
	cat *catalog.Catalog

	numberBody     string // unanchored pattern source, reused to build compounds
	numberFull     *regexp.Regexp
	numberPrefixRe *regexp.Regexp
	percentRe      *regexp.Regexp
	percentPrefix  *regexp.Regexp
	moneyPrefix    *regexp.Regexp
	moneySuffix    *regexp.Regexp
	timeHMS        *regexp.Regexp
	timeAMPM       *regexp.Regexp
	durationRe     *regexp.Regexp
	dateISO        *regexp.Regexp
	dateSlash      *regexp.Regexp
	memoryRe       *regexp.Regexp
	dynamicRe      *regexp.Regexp
	wordRe         *regexp.Regexp
	wordSpanRe     *regexp.Regexp

	dateByLang map[string]dateMonthRegexes
}

// New precompiles every family's regex set against cat's separators and
// locale vocabulary.
func New(cat *catalog.Catalog) *Lexer {
	thousand := regexp.QuoteMeta(nonEmpty(cat.ThousandSeparator, ","))
	decimal := regexp.QuoteMeta(nonEmpty(cat.DecimalSeparator, "."))

	numberBody := `\d+(?:[` + thousand + `]\d{3})*(?:[` + decimal + `]\d+)?`

	l := &Lexer{
		cat:        cat,
		numberBody: numberBody,
		dateByLang: map[string]dateMonthRegexes{},
	}

	l.numberFull = regexp.MustCompile(`0[xX][0-9a-fA-F]+|0[oO][0-7]+|0[bB][01]+|` + numberBody)
	l.numberPrefixRe = regexp.MustCompile(`^` + numberBody)
	l.percentRe = regexp.MustCompile(`(?:` + numberBody + `)%`)
	l.percentPrefix = regexp.MustCompile(`%(?:` + numberBody + `)`)
	l.moneyPrefix = regexp.MustCompile(`(?P<SYM>[$£€¥])\s?(?P<PRICE>` + numberBody + `)`)
	l.moneySuffix = regexp.MustCompile(`(?P<PRICE>` + numberBody + `)\s?(?P<CUR>[A-Za-z]{2,4})\b`)
	l.timeHMS = regexp.MustCompile(`\b(?P<h>[01]?\d|2[0-3]):(?P<m>[0-5]\d)(?::(?P<s>[0-5]\d))?\b`)
	l.timeAMPM = regexp.MustCompile(`(?i)\b(?P<h>1[0-2]|0?[1-9])(?::(?P<m>[0-5]\d))?\s?(?P<ap>am|pm)\b`)
	l.durationRe = regexp.MustCompile(`(?i)(?:` + numberBody + `)\s?(?P<unit>second|minute|hour|day|week|month|year)s?\b`)
	l.dateISO = regexp.MustCompile(`\b(?P<y>\d{4})-(?P<m>\d{1,2})-(?P<d>\d{1,2})\b`)
	l.dateSlash = regexp.MustCompile(`\b(?P<m>\d{1,2})/(?P<d>\d{1,2})/(?P<y>\d{2,4})\b`)
	l.memoryRe = regexp.MustCompile(`(?i)(?:` + numberBody + `)\s?(?P<unit>pib|tib|gib|mib|kib|pb|tb|gb|mb|kb|byte|b)\b`)
	l.wordRe = regexp.MustCompile(`[\p{L}_][\p{L}\p{N}_]*`)
	l.wordSpanRe = regexp.MustCompile(`\S+`)

	if len(cat.DynamicUnits) > 0 {
		units := make([]string, 0, len(cat.DynamicUnits))
		for u := range cat.DynamicUnits {
			units = append(units, regexp.QuoteMeta(u))
		}
		sort.Slice(units, func(i, j int) bool { return len(units[i]) > len(units[j]) })
		l.dynamicRe = regexp.MustCompile(`(?i)(?:` + numberBody + `)\s?(?P<unit>` + strings.Join(units, "|") + `)\b`)
	}

	for tag, lang := range cat.Languages {
		var alts []string
		for _, mp := range lang.Months {
			for _, re := range mp.Regexes {
				alts = append(alts, re.String())
			}
		}
		if len(alts) == 0 {
			continue
		}
		monthGroup := strings.Join(alts, "|")
		l.dateByLang[tag] = dateMonthRegexes{
			dayMonthYear: regexp.MustCompile(`(?i)\b(?P<d>\d{1,2})(?:st|nd|rd|th)?\s+(?P<mon>` + monthGroup + `)\s*,?\s+(?P<y>\d{4})\b`),
			monthDayYear: regexp.MustCompile(`(?i)\b(?P<mon>` + monthGroup + `)\s+(?P<d>\d{1,2})(?:st|nd|rd|th)?,?\s+(?P<y>\d{4})\b`),
		}
	}
	return l
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// candidate is one sub-parser's proposed token inside family 3. priority
// breaks ties when two candidates share the same (start, length) — it is
// the sub-parser's position in spec.md §4.2 item 3's listed order
// (timezone, month, number, percent, time, duration, date, memory, money,
// long-text, word), consulted only when leftmost-then-longest doesn't
// already decide a winner.
type candidate struct {
	start, end int
	priority   int
	build      func() Token
}

const (
	priTimezone = iota
	priMonth
	priNumber
	priPercent
	priTime
	priDuration
	priDate
	priMemory
	priDynamic
	priMoney
	priLongText
	priWord
)

// span is a byte range used for word-boundary scans (timezone lookup).
type span struct{ start, end int }

func wordSpans(re *regexp.Regexp, line string) []span {
	idx := re.FindAllStringIndex(line, -1)
	out := make([]span, 0, len(idx))
	for _, m := range idx {
		out = append(out, span{m[0], m[1]})
	}
	return out
}

// groupMatch is one regex match with its named capture groups resolved.
type groupMatch struct {
	start, end int
	groups     map[string]string
}

func findAllGroups(re *regexp.Regexp, s string) []groupMatch {
	names := re.SubexpNames()
	idxs := re.FindAllStringSubmatchIndex(s, -1)
	out := make([]groupMatch, 0, len(idxs))
	for _, idx := range idxs {
		g := map[string]string{}
		for i := 1; i < len(idx)/2; i++ {
			if idx[2*i] < 0 || names[i] == "" {
				continue
			}
			g[names[i]] = s[idx[2*i]:idx[2*i+1]]
		}
		out = append(out, groupMatch{start: idx[0], end: idx[1], groups: g})
	}
	return out
}

// normalizeNumber strips the configured thousand separator and rewrites
// the configured decimal separator to '.' (spec.md §4.2: "Amount is
// re-parsed with thousand separator removed and decimal separator
// normalized to '.'"). Radix-prefixed literals pass through untouched.
func normalizeNumber(text string, cat *catalog.Catalog) string {
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		return text
	}
	out := text
	if ts := nonEmpty(cat.ThousandSeparator, ","); ts != "" {
		out = strings.ReplaceAll(out, ts, "")
	}
	if ds := nonEmpty(cat.DecimalSeparator, "."); ds != "." {
		out = strings.ReplaceAll(out, ds, ".")
	}
	return out
}

func numberKindOf(text string) ast.NumberKind {
	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "0x"):
		return ast.Hex
	case strings.HasPrefix(lower, "0o"):
		return ast.Octal
	case strings.HasPrefix(lower, "0b"):
		return ast.Bin
	default:
		return ast.Dec
	}
}

// resolveYear maps a two-digit year into the current century (spec.md
// §4.2: "two-digit years resolved to the current century").
func resolveYear(y int) int {
	if y >= 100 {
		return y
	}
	now := time.Now().Year()
	century := (now / 100) * 100
	return century + y
}

// Tokenize runs every parser family over one line in spec.md §4.2's fixed
// order and returns the resulting non-overlapping token vector sorted by
// span start.
func (l *Lexer) Tokenize(language, line string, lineNumber int) ([]Token, error) {
	lang := l.cat.Language(language)
	claimed := make([]bool, len(line))
	var tokens []Token

	markClaimed := func(start, end int) {
		for i := start; i < end && i < len(claimed); i++ {
			claimed[i] = true
		}
	}
	anyClaimed := func(start, end int) bool {
		for i := start; i < end; i++ {
			if claimed[i] {
				return true
			}
		}
		return false
	}

	// Family 1: comment, '#' to end of line.
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		tokens = append(tokens, Token{
			Kind: KindComment,
			Span: ast.Span{Start: idx, End: len(line)},
			UI:   UIComment,
			Text: line[idx:],
		})
		markClaimed(idx, len(line))
	}

	// Family 3: the combined literal family. Every sub-parser proposes
	// candidates against the whole line; conflict resolution (leftmost,
	// then longest, then listed-order priority) picks the winners.
	cands := l.literalCandidates(lang, language, line)
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].start != cands[j].start {
			return cands[i].start < cands[j].start
		}
		li, lj := cands[i].end-cands[i].start, cands[j].end-cands[j].start
		if li != lj {
			return li > lj
		}
		return cands[i].priority < cands[j].priority
	})
	for _, c := range cands {
		if anyClaimed(c.start, c.end) {
			continue
		}
		tokens = append(tokens, c.build())
		markClaimed(c.start, c.end)
	}

	// Family 4: single-character operators. The word family never claims
	// a bare "x"/"X" (see literalCandidates), so any 'x'/'X' reaching
	// this family is standalone and always denotes multiply
	// (spec.md §4.4's muldiv production lists 'x' as an operator
	// lexeme, not a reserved identifier).
	for i := 0; i < len(line); i++ {
		if claimed[i] {
			continue
		}
		ch := line[i]
		if ch == ' ' || ch == '\t' || ch == '\r' {
			claimed[i] = true
			continue
		}
		if ch != 'x' && ch != 'X' && !strings.ContainsRune("+-*/=", rune(ch)) {
			continue
		}
		tokens = append(tokens, Token{
			Kind: KindOperator,
			Span: ast.Span{Start: i, End: i + 1},
			UI:   UIOperator,
			Text: string(ch),
		})
		claimed[i] = true
	}

	for i := 0; i < len(line); i++ {
		if claimed[i] {
			continue
		}
		ch := line[i]
		if ch == ' ' || ch == '\t' || ch == '\r' {
			continue
		}
		return nil, &LexerError{
			Message: fmt.Sprintf("unexpected character %q", string(ch)),
			Line:    lineNumber,
			Column:  i + 1,
		}
	}

	sort.SliceStable(tokens, func(i, j int) bool { return tokens[i].Span.Start < tokens[j].Span.Start })
	return tokens, nil
}

func (l *Lexer) literalCandidates(lang *catalog.Language, langTag, line string) []candidate {
	var cands []candidate

	// timezone
	for _, w := range wordSpans(l.wordSpanRe, line) {
		word := line[w.start:w.end]
		if off, ok := l.cat.TimezoneOffset(word); ok {
			start, end, name, offset := w.start, w.end, strings.ToUpper(word), off
			cands = append(cands, candidate{start, end, priTimezone, func() Token {
				return Token{Kind: KindTimezone, Span: ast.Span{Start: start, End: end}, UI: UISymbol, Text: name, TimezoneOffset: offset}
			}})
		}
	}

	// month
	for _, mp := range lang.Months {
		month := mp.Month
		for _, re := range mp.Regexes {
			for _, m := range re.FindAllStringIndex(line, -1) {
				start, end := m[0], m[1]
				text := line[start:end]
				cands = append(cands, candidate{start, end, priMonth, func() Token {
					return Token{Kind: KindMonth, Span: ast.Span{Start: start, End: end}, UI: UIMonth, Text: text, Month: month}
				}})
			}
		}
	}

	// number (incl. hex/octal/binary)
	for _, m := range l.numberFull.FindAllStringIndex(line, -1) {
		start, end := m[0], m[1]
		text := line[start:end]
		cands = append(cands, candidate{start, end, priNumber, func() Token {
			return Token{
				Kind: KindNumber, Span: ast.Span{Start: start, End: end}, UI: UINumber, Text: text,
				NumberValue: normalizeNumber(text, l.cat), NumberKind: numberKindOf(text),
			}
		}})
	}

	// percent: N%
	for _, m := range l.percentRe.FindAllStringIndex(line, -1) {
		start, end := m[0], m[1]
		text := line[start:end]
		cands = append(cands, candidate{start, end, priPercent, func() Token {
			return Token{
				Kind: KindPercent, Span: ast.Span{Start: start, End: end}, UI: UINumber, Text: text,
				PercentValue: normalizeNumber(strings.TrimSuffix(text, "%"), l.cat),
			}
		}})
	}

	// percent: %N
	for _, m := range l.percentPrefix.FindAllStringIndex(line, -1) {
		start, end := m[0], m[1]
		text := line[start:end]
		cands = append(cands, candidate{start, end, priPercent, func() Token {
			return Token{
				Kind: KindPercent, Span: ast.Span{Start: start, End: end}, UI: UINumber, Text: text,
				PercentValue: normalizeNumber(strings.TrimPrefix(text, "%"), l.cat),
			}
		}})
	}

	// time: HH:MM[:SS] or "H[:MM] AM|PM"
	for _, gm := range findAllGroups(l.timeHMS, line) {
		start, end, groups := gm.start, gm.end, gm.groups
		cands = append(cands, candidate{start, end, priTime, func() Token {
			h, m, s := atoiSafe(groups["h"]), atoiSafe(groups["m"]), atoiSafe(groups["s"])
			return Token{Kind: KindTime, Span: ast.Span{Start: start, End: end}, UI: UINumber, Text: line[start:end], Hour: h, Minute: m, Second: s}
		}})
	}
	for _, gm := range findAllGroups(l.timeAMPM, line) {
		start, end, groups := gm.start, gm.end, gm.groups
		cands = append(cands, candidate{start, end, priTime, func() Token {
			h := atoiSafe(groups["h"]) % 12
			if strings.EqualFold(groups["ap"], "pm") {
				h += 12
			}
			return Token{Kind: KindTime, Span: ast.Span{Start: start, End: end}, UI: UINumber, Text: line[start:end], Hour: h, Minute: atoiSafe(groups["m"]), Second: 0}
		}})
	}

	// duration: N unit[s]
	for _, gm := range findAllGroups(l.durationRe, line) {
		start, end, groups := gm.start, gm.end, gm.groups
		cands = append(cands, candidate{start, end, priDuration, func() Token {
			amount := parseFloatSafe(normalizeNumber(l.numberPrefix(line[start:end]), l.cat))
			perUnit := durationUnitSeconds[strings.ToLower(groups["unit"])]
			return Token{Kind: KindDuration, Span: ast.Span{Start: start, End: end}, UI: UINumber, Text: line[start:end], DurationSeconds: int64(amount * float64(perUnit))}
		}})
	}

	// date: ISO, slash, and (if this language has month vocabulary) the
	// two month-name templates.
	for _, gm := range findAllGroups(l.dateISO, line) {
		start, end, groups := gm.start, gm.end, gm.groups
		cands = append(cands, candidate{start, end, priDate, func() Token {
			return Token{Kind: KindDate, Span: ast.Span{Start: start, End: end}, UI: UINumber, Text: line[start:end], Year: atoiSafe(groups["y"]), Month: atoiSafe(groups["m"]), Day: atoiSafe(groups["d"])}
		}})
	}
	for _, gm := range findAllGroups(l.dateSlash, line) {
		start, end, groups := gm.start, gm.end, gm.groups
		cands = append(cands, candidate{start, end, priDate, func() Token {
			return Token{Kind: KindDate, Span: ast.Span{Start: start, End: end}, UI: UINumber, Text: line[start:end], Year: resolveYear(atoiSafe(groups["y"])), Month: atoiSafe(groups["m"]), Day: atoiSafe(groups["d"])}
		}})
	}
	if dr, ok := l.dateByLang[langTag]; ok {
		for _, gm := range findAllGroups(dr.dayMonthYear, line) {
			start, end, groups := gm.start, gm.end, gm.groups
			month := monthNumberFor(lang, groups["mon"])
			cands = append(cands, candidate{start, end, priDate, func() Token {
				return Token{Kind: KindDate, Span: ast.Span{Start: start, End: end}, UI: UINumber, Text: line[start:end], Year: atoiSafe(groups["y"]), Month: month, Day: atoiSafe(groups["d"])}
			}})
		}
		for _, gm := range findAllGroups(dr.monthDayYear, line) {
			start, end, groups := gm.start, gm.end, gm.groups
			month := monthNumberFor(lang, groups["mon"])
			cands = append(cands, candidate{start, end, priDate, func() Token {
				return Token{Kind: KindDate, Span: ast.Span{Start: start, End: end}, UI: UINumber, Text: line[start:end], Year: atoiSafe(groups["y"]), Month: month, Day: atoiSafe(groups["d"])}
			}})
		}
	}

	// memory: N unit
	for _, gm := range findAllGroups(l.memoryRe, line) {
		start, end, groups := gm.start, gm.end, gm.groups
		cands = append(cands, candidate{start, end, priMemory, func() Token {
			amount := normalizeNumber(l.numberPrefix(line[start:end]), l.cat)
			return Token{Kind: KindMemory, Span: ast.Span{Start: start, End: end}, UI: UINumber, Text: line[start:end], MemoryAmount: amount, MemoryUnit: strings.ToLower(groups["unit"])}
		}})
	}

	// dynamic unit: N unit, where unit is one of the catalog's
	// DynamicUnits (e.g. "60 mph"), parallel to the memory family above.
	if l.dynamicRe != nil {
		for _, gm := range findAllGroups(l.dynamicRe, line) {
			start, end, groups := gm.start, gm.end, gm.groups
			cands = append(cands, candidate{start, end, priDynamic, func() Token {
				amount := normalizeNumber(l.numberPrefix(line[start:end]), l.cat)
				return Token{Kind: KindDynamicType, Span: ast.Span{Start: start, End: end}, UI: UINumber, Text: line[start:end], DynamicAmount: amount, DynamicUnit: strings.ToLower(groups["unit"])}
			}})
		}
	}

	// money: symbol-prefixed or code/word-suffixed
	for _, gm := range findAllGroups(l.moneyPrefix, line) {
		start, end, groups := gm.start, gm.end, gm.groups
		code, ok := l.cat.CurrencyAlias(groups["SYM"])
		if !ok {
			continue
		}
		cands = append(cands, candidate{start, end, priMoney, func() Token {
			return Token{Kind: KindMoney, Span: ast.Span{Start: start, End: end}, UI: UINumber, Text: line[start:end], MoneyAmount: normalizeNumber(groups["PRICE"], l.cat), MoneyCurrency: code}
		}})
	}
	for _, gm := range findAllGroups(l.moneySuffix, line) {
		start, end, groups := gm.start, gm.end, gm.groups
		code, ok := l.cat.CurrencyAlias(groups["CUR"])
		if !ok {
			continue
		}
		cands = append(cands, candidate{start, end, priMoney, func() Token {
			return Token{Kind: KindMoney, Span: ast.Span{Start: start, End: end}, UI: UINumber, Text: line[start:end], MoneyAmount: normalizeNumber(groups["PRICE"], l.cat), MoneyCurrency: code}
		}})
	}

	// long-text: locale idiom normalization, e.g. "a hundred" -> "100",
	// restored from the original tokinizer's long_texts.rs pass (SPEC_FULL
	// §6.3). The replacement is itself re-tokenized so phrasal
	// replacements like "half an hour" -> "30 minutes" produce the right
	// literal kind instead of always forcing Number.
	for _, lt := range lang.LongTexts {
		for _, m := range lt.Regex.FindAllStringIndex(line, -1) {
			start, end := m[0], m[1]
			replacement := lt.Replacement
			cands = append(cands, candidate{start, end, priLongText, func() Token {
				return l.retokenizeReplacement(langTag, replacement, start, end, line[start:end])
			}})
		}
	}

	// word: catch-all identifier/text token. A bare "x"/"X" is excluded
	// so family 4 is free to claim it as the multiply operator
	// (spec.md §4.4's muldiv grammar reserves 'x' as an operator lexeme).
	for _, m := range l.wordRe.FindAllStringIndex(line, -1) {
		start, end := m[0], m[1]
		text := line[start:end]
		if text == "x" || text == "X" {
			continue
		}
		cands = append(cands, candidate{start, end, priWord, func() Token {
			return Token{Kind: KindText, Span: ast.Span{Start: start, End: end}, UI: UIText, Text: text}
		}})
	}

	return cands
}

// retokenizeReplacement lexes a long-text replacement string in isolation
// and rebinds its single resulting token onto the original match span, so
// the caller sees one token of the right kind rather than always Number.
func (l *Lexer) retokenizeReplacement(langTag, replacement string, start, end int, originalText string) Token {
	sub, err := l.Tokenize(langTag, replacement, 0)
	if err != nil || len(sub) != 1 {
		return Token{Kind: KindNumber, Span: ast.Span{Start: start, End: end}, UI: UINumber, Text: originalText, NumberValue: replacement}
	}
	t := sub[0]
	t.Span = ast.Span{Start: start, End: end}
	t.Text = originalText
	return t
}

// numberPrefix returns the leading numberBody-shaped run of s, used to
// recover the amount from a "N unit" match where the whole match also
// includes the unit word.
func (l *Lexer) numberPrefix(s string) string {
	if m := l.numberPrefixRe.FindString(s); m != "" {
		return m
	}
	return s
}

func monthNumberFor(lang *catalog.Language, text string) int {
	for _, mp := range lang.Months {
		for _, re := range mp.Regexes {
			if re.MatchString(text) {
				return mp.Month
			}
		}
	}
	return 0
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func parseFloatSafe(s string) float64 {
	var whole, frac float64
	var fracDiv float64 = 1
	inFrac := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			if inFrac {
				frac = frac*10 + float64(r-'0')
				fracDiv *= 10
			} else {
				whole = whole*10 + float64(r-'0')
			}
		case r == '.':
			inFrac = true
		}
	}
	return whole + frac/fracDiv
}
