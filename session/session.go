// Package session implements SmartCalc's stateful entry point: the
// ordered line list and name->value variable environment that ties the
// lexer, rewriter, parser and interpreter into one `execute` call
// (spec.md §3 "Session variables", §6 external interface).
package session

import (
	"strings"

	"github.com/google/uuid"
	"github.com/smartcalc/smartcalc/ast"
	"github.com/smartcalc/smartcalc/catalog"
	"github.com/smartcalc/smartcalc/format/display"
	"github.com/smartcalc/smartcalc/interpreter"
	"github.com/smartcalc/smartcalc/lexer"
	"github.com/smartcalc/smartcalc/parser"
	"github.com/smartcalc/smartcalc/rewriter"
	"github.com/smartcalc/smartcalc/types"
)

// Config holds the locale overrides a caller may set before the first
// Execute call (spec.md §6: "Calc.config -- mutable before first
// execute"). Zero values fall back to the catalog's own defaults.
type Config struct {
	DecimalSeparator  string
	ThousandSeparator string
	Timezone          string
}

// UIToken is the host-facing highlighting annotation for one lexed span
// (spec.md §3 "token info ... an optional UI annotation").
type UIToken struct {
	Span ast.Span
	Kind lexer.UIKind
}

// variable is the session's record of one published assignment
// (spec.md §3: "ordered mapping name -> (AST, computed value,
// declaration line index)").
type variable struct {
	ast  ast.Node
	line int
}

// Line is one entry in the session's growing, never-reordered line list.
type Line struct {
	ID   uuid.UUID
	Text string
}

// LineResult is what Execute produces for a single input line
// (spec.md §6: "Output.lines[i] is ... None ... or Some({ui_tokens,
// result})"). Blank reports a blank or comment-only line, for which
// Value/Output/AST/Err are all zero. A non-blank line is successful iff
// Err is nil.
type LineResult struct {
	ID       uuid.UUID
	Text     string
	Blank    bool
	UITokens []UIToken

	Value  types.Item
	Output string
	AST    ast.Node
	Err    error
}

// Output is the result of one Execute call: one LineResult per
// newline-delimited line of the submitted text.
type Output struct {
	Lines []*LineResult
}

// Calc is a SmartCalc session: the catalog, the growing line list, and
// the name->variable environment (spec.md §3 "Lifecycle").
type Calc struct {
	cat *catalog.Catalog

	config   Config
	executed bool

	// effCat and lex are derived from cat and config on the first Execute
	// call and then held fixed for the session's lifetime (spec.md §5:
	// "regex sets ... compiled once, lazily on first use, and then
	// read-only"). effCat is either cat itself, or -- when Config sets a
	// separator override -- a private per-session copy so the shared
	// catalog is never mutated (spec.md §5: a catalog "may be shared by
	// reference across sessions on multiple threads").
	effCat *catalog.Catalog
	lex    *lexer.Lexer

	lines      []Line
	lineValues []lineSlot
	variables  map[string]variable
}

type lineSlot struct {
	value types.Item
	ok    bool
}

// NewCalc constructs a session backed by the embedded default catalog
// (spec.md §6: "SmartCalc::default() -> Calc").
func NewCalc() *Calc {
	cat, err := catalog.Default()
	if err != nil {
		// The embedded bundle is part of the binary; a load failure here
		// is a build-time defect, not a runtime condition callers can
		// recover from.
		panic("session: default catalog failed to load: " + err.Error())
	}
	return &Calc{cat: cat, variables: map[string]variable{}}
}

// NewCalcWithCatalog constructs a session over a caller-supplied catalog,
// e.g. one loaded from an on-disk override via viper (spec.md §4.1:
// "Mutability: only via explicit builder before first execute").
func NewCalcWithCatalog(cat *catalog.Catalog) *Calc {
	return &Calc{cat: cat, variables: map[string]variable{}}
}

// Config returns the session's locale configuration for mutation. Per
// spec.md §6 it is only meaningful to change before the first Execute
// call: the first Execute resolves it once into a private catalog and
// lexer (see prepare), so later edits have no retroactive effect.
func (c *Calc) Config() *Config {
	return &c.config
}

// Executed reports whether Execute has run at least once on this session.
func (c *Calc) Executed() bool {
	return c.executed
}

// Execute lexes, rewrites, parses and interprets every line of text in
// order, extending the session's line list and variable environment
// (spec.md §3 "Lifecycle", §5 "Ordering").
func (c *Calc) Execute(language, text string) Output {
	if !c.executed {
		c.prepare()
	}
	c.executed = true

	var out Output
	for _, raw := range strings.Split(text, "\n") {
		out.Lines = append(out.Lines, c.executeLine(language, raw))
	}
	return out
}

// prepare resolves the session's locale overrides against a private copy
// of the catalog -- never the shared one -- and builds the lexer exactly
// once from the result. It runs only on the first Execute call, since
// Config is only meaningful to mutate before then.
func (c *Calc) prepare() {
	eff := c.cat
	if c.config.DecimalSeparator != "" || c.config.ThousandSeparator != "" {
		clone := *c.cat
		if c.config.DecimalSeparator != "" {
			clone.DecimalSeparator = c.config.DecimalSeparator
		}
		if c.config.ThousandSeparator != "" {
			clone.ThousandSeparator = c.config.ThousandSeparator
		}
		eff = &clone
	}
	c.effCat = eff
	c.lex = lexer.New(eff)
}

func (c *Calc) executeLine(language, raw string) *LineResult {
	lineIndex := len(c.lines)
	id := uuid.New()
	c.lines = append(c.lines, Line{ID: id, Text: raw})
	c.lineValues = append(c.lineValues, lineSlot{})

	lexed, err := c.lex.Tokenize(language, raw, lineIndex+1)
	if err != nil {
		return &LineResult{ID: id, Text: raw, Err: err}
	}
	tokens := uiTokensOf(lexed)

	if isBlankOrCommentOnly(lexed) {
		return &LineResult{ID: id, Text: raw, Blank: true, UITokens: tokens}
	}

	rewritten, err := rewriter.Rewrite(c.effCat, language, lexed)
	if err != nil {
		return &LineResult{ID: id, Text: raw, UITokens: tokens, Err: err}
	}

	node, err := parser.New(rewritten, lineIndex+1, c.lookupVariable).Parse()
	if err != nil {
		return &LineResult{ID: id, Text: raw, UITokens: tokens, Err: err}
	}
	if node == nil {
		return &LineResult{ID: id, Text: raw, Blank: true, UITokens: tokens}
	}

	result, err := interpreter.Eval(c.effCat, node, c.resolveLine)
	if err != nil {
		return &LineResult{ID: id, Text: raw, UITokens: tokens, AST: node, Err: err}
	}

	c.lineValues[lineIndex] = lineSlot{value: result.Value, ok: true}
	if result.HasAssign {
		c.variables[result.AssignedName] = variable{ast: node, line: lineIndex}
	}

	return &LineResult{
		ID:       id,
		Text:     raw,
		UITokens: tokens,
		Value:    result.Value,
		Output:   display.Format(c.effCat, result.Value),
		AST:      node,
	}
}

// lookupVariable backs parser.VariableLookup: a name resolves only to a
// variable published by a strictly prior line (spec.md §3: "Variable
// references resolve only to variables declared on strictly prior
// lines").
func (c *Calc) lookupVariable(name string) (int, bool) {
	v, ok := c.variables[name]
	return v.line, ok
}

// resolveLine backs interpreter.LineResolver: dereferencing the stored
// computed data item of the referent line (spec.md §4.5).
func (c *Calc) resolveLine(lineIndex int) (types.Item, bool) {
	if lineIndex < 0 || lineIndex >= len(c.lineValues) {
		return nil, false
	}
	slot := c.lineValues[lineIndex]
	return slot.value, slot.ok
}

func uiTokensOf(tokens []lexer.Token) []UIToken {
	out := make([]UIToken, len(tokens))
	for i, t := range tokens {
		out[i] = UIToken{Span: t.Span, Kind: t.UI}
	}
	return out
}

// isBlankOrCommentOnly reports whether tokens contain nothing but a
// comment (or nothing at all), per spec.md §8's "Blank line -> None" and
// "Comment line -> None with UI comment span covering the entire line".
func isBlankOrCommentOnly(tokens []lexer.Token) bool {
	for _, t := range tokens {
		if t.Kind != lexer.KindComment {
			return false
		}
	}
	return true
}
