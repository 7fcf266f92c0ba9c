// Package rewriter implements the two-pass token rewriter: alias
// normalization (Pass A) followed by phrasal rule matching (Pass B)
// (spec.md §4.3), grounded on the original Rust tokinizer's
// worker/{alias.rs,mod.rs} and worker/rules/*.rs.
package rewriter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/smartcalc/smartcalc/ast"
	"github.com/smartcalc/smartcalc/catalog"
	"github.com/smartcalc/smartcalc/lexer"
)

// maxAliasIterations bounds Pass A's fixed-point loop (spec.md §4.3: "the
// 25-iteration cap bounds pathological [alias] cycles").
const maxAliasIterations = 25

// RewriteError reports a rule handler failure at the matched token span.
type RewriteError struct {
	RuleID  string
	Message string
}

func (e *RewriteError) Error() string {
	return fmt.Sprintf("rule %s: %s", e.RuleID, e.Message)
}

// Rewrite runs Pass A then Pass B over tokens and returns the rewritten
// stream. It never errors on cap-hit (logs and returns the partial
// state); it does error if a matched rule's handler fails (e.g. an
// unknown currency or unit), per spec.md §4.3/§7.
func Rewrite(cat *catalog.Catalog, language string, tokens []lexer.Token) ([]lexer.Token, error) {
	lang := cat.Language(language)

	out := aliasPass(lang, tokens)
	out = combineDurations(out)
	out, err := rulePass(cat, lang, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// aliasPass iterates Text tokens to a fixed point, replacing each with its
// canonical form: Number if the canonical text parses as a number,
// Operator if it's a single non-alphabetic character, otherwise Text
// (spec.md §4.3 Pass A).
func aliasPass(lang *catalog.Language, tokens []lexer.Token) []lexer.Token {
	out := make([]lexer.Token, len(tokens))
	copy(out, tokens)

	for i := 0; i < maxAliasIterations; i++ {
		changed := false
		for ti, tok := range out {
			if tok.Kind != lexer.KindText {
				continue
			}
			canonical, ok := lang.AliasLookup(tok.Text)
			if !ok {
				continue
			}
			out[ti] = canonicalToken(tok, canonical)
			if out[ti].Text != tok.Text || out[ti].Kind != tok.Kind {
				changed = true
			}
		}
		if !changed {
			return out
		}
	}
	logrus.WithField("iterations", maxAliasIterations).Warn("rewriter: alias pass hit fixed-point cap, returning partial state")
	return out
}

func canonicalToken(orig lexer.Token, canonical string) lexer.Token {
	if d, err := decimal.NewFromString(canonical); err == nil {
		return lexer.Token{Kind: lexer.KindNumber, Span: orig.Span, UI: lexer.UINumber, Text: canonical, NumberValue: d.String()}
	}
	if len([]rune(canonical)) == 1 {
		r := []rune(canonical)[0]
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return lexer.Token{Kind: lexer.KindOperator, Span: orig.Span, UI: lexer.UIOperator, Text: canonical}
		}
	}
	return lexer.Token{Kind: lexer.KindText, Span: orig.Span, UI: lexer.UIText, Text: canonical}
}

// combineDurations merges adjacent Duration tokens additively
// ("1 hour 30 minutes" -> one Duration), per spec.md §4.3's
// duration_combine handler.
func combineDurations(tokens []lexer.Token) []lexer.Token {
	var out []lexer.Token
	for _, tok := range tokens {
		if tok.Kind == lexer.KindDuration && len(out) > 0 && out[len(out)-1].Kind == lexer.KindDuration {
			prev := out[len(out)-1]
			out[len(out)-1] = lexer.Token{
				Kind:            lexer.KindDuration,
				Span:            spanUnion(prev.Span, tok.Span),
				UI:              lexer.UINumber,
				Text:            prev.Text + " " + tok.Text,
				DurationSeconds: prev.DurationSeconds + tok.DurationSeconds,
			}
			continue
		}
		out = append(out, tok)
	}
	return out
}

// maxRulePassRounds bounds Pass B's re-scan loop: N_tokens rounds, but
// never fewer than 8.
func maxRulePassRounds(n int) int {
	if n < 8 {
		return 8
	}
	return n
}

// rulePass matches each language rule template, in lang.Rules order,
// against every starting position, replacing the first match found and
// re-scanning from the start, until no rule matches or the round cap is
// hit (spec.md §4.3 Pass B). catalog.Build collects rule ids from a JSON
// object, so the order between different rule ids is not defined; only
// the patterns listed under one id keep their order.
func rulePass(cat *catalog.Catalog, lang *catalog.Language, tokens []lexer.Token) ([]lexer.Token, error) {
	maxRounds := maxRulePassRounds(len(tokens))
	for round := 0; round < maxRounds; round++ {
		replaced := false
		for _, rule := range lang.Rules {
			for start := 0; start <= len(tokens); start++ {
				caps, end, ok := matchPattern(tokens, start, rule.Pattern)
				if !ok {
					continue
				}
				handler, ok := handlers[rule.Handler]
				if !ok {
					continue
				}
				repl, err := handler(cat, caps)
				if err != nil {
					return nil, &RewriteError{RuleID: rule.ID, Message: err.Error()}
				}
				repl.Span = spanUnion(tokens[start].Span, tokens[end-1].Span)
				if repl.Text == "" {
					repl.Text = spanText(tokens, start, end)
				}
				next := make([]lexer.Token, 0, len(tokens)-(end-start)+1)
				next = append(next, tokens[:start]...)
				next = append(next, repl)
				next = append(next, tokens[end:]...)
				tokens = next
				replaced = true
				break
			}
			if replaced {
				break
			}
		}
		if !replaced {
			return tokens, nil
		}
	}
	logrus.WithField("rounds", maxRounds).Warn("rewriter: rule pass hit round cap, returning partial state")
	return tokens, nil
}

func spanText(tokens []lexer.Token, start, end int) string {
	var b strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			b.WriteByte(' ')
		}
		b.WriteString(tokens[i].Text)
	}
	return b.String()
}

// matchPattern tries to match pattern against tokens starting at start,
// returning the capture map and the index just past the match.
func matchPattern(tokens []lexer.Token, start int, pattern []catalog.PatternElem) (map[string]lexer.Token, int, bool) {
	caps := map[string]lexer.Token{}
	ti := start
	for _, elem := range pattern {
		if ti >= len(tokens) {
			return nil, 0, false
		}
		tok := tokens[ti]
		if elem.Capture == "" {
			if tok.Kind == lexer.KindText && strings.EqualFold(tok.Text, elem.Literal) {
				ti++
				continue
			}
			if tok.Kind == lexer.KindOperator && tok.Text == elem.Literal {
				ti++
				continue
			}
			return nil, 0, false
		}
		if !kindMatchesType(tok.Kind, elem.Type) {
			return nil, 0, false
		}
		caps[elem.Capture] = tok
		ti++
	}
	return caps, ti, true
}

func kindMatchesType(k lexer.Kind, typ string) bool {
	switch typ {
	case "NUMBER":
		return k == lexer.KindNumber
	case "MONEY":
		return k == lexer.KindMoney
	case "PERCENT":
		return k == lexer.KindPercent
	case "TEXT":
		return k == lexer.KindText
	case "DATE":
		return k == lexer.KindDate
	case "DURATION":
		return k == lexer.KindDuration
	case "MEMORY":
		return k == lexer.KindMemory
	case "DYNAMIC":
		return k == lexer.KindDynamicType
	case "ANY":
		return true
	}
	return false
}

func spanUnion(a, b ast.Span) ast.Span {
	start, end := a.Start, a.End
	if b.Start < start {
		start = b.Start
	}
	if b.End > end {
		end = b.End
	}
	return ast.Span{Start: start, End: end}
}

func parseNum(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func formatNum(f float64) string {
	return decimal.NewFromFloat(f).String()
}
