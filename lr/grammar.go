package lr

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/chomp"
)

// --- Symbols ----------------------------------------------------------------

const (
	terminalCat int8 = iota
	nonterminalCat
)

// Symbol is a grammar symbol: a terminal or a non-terminal. Symbols are
// interned per grammar; two occurrences of the same symbol are pointer-equal.
// Terminals carry their token type in Value, non-terminals a (negative)
// serial number.
type Symbol struct {
	Name  string
	Value int
	cat   int8
}

// IsTerminal tells if a symbol is a terminal.
func (s *Symbol) IsTerminal() bool {
	return s.cat == terminalCat
}

// TokenType returns the token type of a terminal.
func (s *Symbol) TokenType() chomp.TokType {
	return chomp.TokType(s.Value)
}

func (s *Symbol) String() string {
	return s.Name
}

// TokenEq is an equality policy between grammar terminals and input tokens.
// Parsers never look at token payloads; injecting an equality keeps the
// decision with the client.
type TokenEq func(t *Symbol, tok chomp.Token) bool

// TagEq is the default equality: a terminal matches a token iff the token's
// type equals the terminal's value. For character-level input (see
// scanner.CharTokens) this coincides with character equality.
func TagEq(t *Symbol, tok chomp.Token) bool {
	return t != nil && t.IsTerminal() && tok != nil && t.Value == int(tok.TokType())
}

// --- Rules ------------------------------------------------------------------

// ConstructorOp is a semantic action attached to a rule. On reduction it
// receives one value per RHS symbol, in left-to-right order, and returns the
// semantic value for the LHS. The return type is uniform across a grammar.
type ConstructorOp func(args ...interface{}) interface{}

// Rule is a production of a grammar.
type Rule struct {
	Serial int     // order of appearance within the grammar
	LHS    *Symbol // left hand side, a non-terminal
	rhs    []*Symbol
	Op     ConstructorOp // optional semantic action
}

// RHS returns the right hand side symbols. The returned slice is a copy.
func (r *Rule) RHS() []*Symbol {
	dup := make([]*Symbol, len(r.rhs))
	copy(dup, r.rhs)
	return dup
}

// Arity returns the number of RHS symbols.
func (r *Rule) Arity() int {
	return len(r.rhs)
}

// IsEpsilon tells if the rule derives the empty string directly.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s ➞ %s", r.LHS.Name, symbolNames(r.rhs))
}

func symbolNames(syms []*Symbol) string {
	if len(syms) == 0 {
		return "ε"
	}
	names := make([]string, len(syms))
	for i, sym := range syms {
		names[i] = sym.Name
	}
	return strings.Join(names, " ")
}

// --- Grammar ----------------------------------------------------------------

// Grammar is an immutable context free grammar: interned symbols, rules in
// declaration order, and a start symbol. Create one with a GrammarBuilder.
type Grammar struct {
	Name         string
	rules        []*Rule
	symbols      map[string]*Symbol
	terminals    *treeset.Set
	nonterminals *treeset.Set
	start        *Symbol
}

// Symbols sort by value first, name second; this gives deterministic
// iteration even when token values collide.
func symbolComparator(a, b interface{}) int {
	s1 := a.(*Symbol)
	s2 := b.(*Symbol)
	if c := utils.IntComparator(s1.Value, s2.Value); c != 0 {
		return c
	}
	return utils.StringComparator(s1.Name, s2.Name)
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule returns rule number n, or nil.
func (g *Grammar) Rule(n int) *Rule {
	if n < 0 || n >= len(g.rules) {
		return nil
	}
	return g.rules[n]
}

// Rules returns all rules, in declaration order. The slice is a copy.
func (g *Grammar) Rules() []*Rule {
	dup := make([]*Rule, len(g.rules))
	copy(dup, g.rules)
	return dup
}

// Start returns the start symbol.
func (g *Grammar) Start() *Symbol {
	return g.start
}

// SymbolByName returns the grammar's symbol with the given name, or nil.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.symbols[name]
}

// RulesFor returns all rules with a given LHS, in declaration order.
// Declaration order is what breaks ties in the parsers' conflict handling.
func (g *Grammar) RulesFor(A *Symbol) []*Rule {
	var rules []*Rule
	for _, r := range g.rules {
		if r.LHS == A {
			rules = append(rules, r)
		}
	}
	return rules
}

// EachSymbol calls f for every terminal and non-terminal of the grammar.
func (g *Grammar) EachSymbol(f func(*Symbol)) {
	g.EachNonTerminal(f)
	g.EachTerminal(f)
}

// EachNonTerminal calls f for every non-terminal, in deterministic order.
func (g *Grammar) EachNonTerminal(f func(*Symbol)) {
	it := g.nonterminals.Iterator()
	for it.Next() {
		f(it.Value().(*Symbol))
	}
}

// EachTerminal calls f for every terminal, in deterministic order.
func (g *Grammar) EachTerminal(f func(*Symbol)) {
	it := g.terminals.Iterator()
	for it.Next() {
		f(it.Value().(*Symbol))
	}
}

// IsStartSeparated tells if the grammar has exactly one rule for its start
// symbol. The LR parsers require this; see StartSeparated.
func (g *Grammar) IsStartSeparated() bool {
	return len(g.RulesFor(g.start)) == 1
}

// StartSeparated returns a new grammar, extended by a fresh start symbol
// with the single rule  name ➞ start. The new rule becomes rule 0; the
// remaining rules keep their relative order. The original grammar is left
// untouched.
func (g *Grammar) StartSeparated(name string) (*Grammar, error) {
	if _, exists := g.symbols[name]; exists {
		return nil, fmt.Errorf("start separation: symbol %q already in grammar %q", name, g.Name)
	}
	if g.start == nil {
		return nil, fmt.Errorf("grammar %q has no start symbol", g.Name)
	}
	fresh := &Symbol{Name: name, cat: nonterminalCat, Value: -(g.nonterminals.Size() + 1)}
	sep := &Grammar{
		Name:         g.Name,
		symbols:      make(map[string]*Symbol, len(g.symbols)+1),
		terminals:    treeset.NewWith(symbolComparator),
		nonterminals: treeset.NewWith(symbolComparator),
		start:        fresh,
	}
	for n, sym := range g.symbols {
		sep.symbols[n] = sym
	}
	sep.symbols[name] = fresh
	sep.terminals.Add(g.terminals.Values()...)
	sep.nonterminals.Add(g.nonterminals.Values()...)
	sep.nonterminals.Add(fresh)
	sep.rules = make([]*Rule, 0, len(g.rules)+1)
	sep.rules = append(sep.rules, &Rule{Serial: 0, LHS: fresh, rhs: []*Symbol{g.start}})
	for i, r := range g.rules {
		sep.rules = append(sep.rules, &Rule{Serial: i + 1, LHS: r.LHS, rhs: r.rhs, Op: r.Op})
	}
	return sep, nil
}

// Dump is a debugging helper, logging all rules of the grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("grammar %q:", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%4d: %s", r.Serial, r)
	}
}

// --- Grammar builder --------------------------------------------------------

// GrammarBuilder is a builder for grammars. Clients declare rules one by one:
//
//	b := lr.NewGrammarBuilder("G")
//	b.LHS("S").N("A").T("a", 1).End()   // S ➞ A a
//	b.LHS("A").T("b", 2).End()          // A ➞ b
//	b.LHS("A").Epsilon()                // A ➞
//	g, err := b.Grammar()
//
// The LHS of the first rule becomes the start symbol, unless Start is called.
// Semantic actions are attached by terminating a rule with Build(op) instead
// of End().
type GrammarBuilder struct {
	name     string
	symbols  map[string]*Symbol
	rules    []*Rule
	start    *Symbol
	ntSerial int
	err      error
}

// NewGrammarBuilder creates a builder for a grammar with a given name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name:    name,
		symbols: make(map[string]*Symbol),
	}
}

func (gb *GrammarBuilder) nonterminal(name string) *Symbol {
	if sym, ok := gb.symbols[name]; ok {
		if sym.IsTerminal() {
			gb.error(fmt.Errorf("symbol %q is a terminal, cannot be used as non-terminal", name))
		}
		return sym
	}
	gb.ntSerial--
	sym := &Symbol{Name: name, Value: gb.ntSerial, cat: nonterminalCat}
	gb.symbols[name] = sym
	return sym
}

func (gb *GrammarBuilder) terminal(name string, tokval int) *Symbol {
	if sym, ok := gb.symbols[name]; ok {
		if !sym.IsTerminal() {
			gb.error(fmt.Errorf("symbol %q is a non-terminal, cannot be used as terminal", name))
		} else if sym.Value != tokval {
			gb.error(fmt.Errorf("terminal %q re-declared with token value %d", name, tokval))
		}
		return sym
	}
	sym := &Symbol{Name: name, Value: tokval, cat: terminalCat}
	gb.symbols[name] = sym
	return sym
}

func (gb *GrammarBuilder) error(e error) {
	if gb.err == nil {
		gb.err = e
	}
}

// Start declares the start symbol explicitly. This is rarely necessary: by
// default the LHS of the first rule starts the grammar. Declaring a start
// symbol without any rules yields a grammar with an empty language.
func (gb *GrammarBuilder) Start(name string) *GrammarBuilder {
	gb.start = gb.nonterminal(name)
	return gb
}

// LHS starts a new rule, given the name of its left hand side.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	sym := gb.nonterminal(name)
	if gb.start == nil {
		gb.start = sym
	}
	return &RuleBuilder{gb: gb, lhs: sym}
}

// Grammar returns the built grammar.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	if gb.start == nil {
		return nil, fmt.Errorf("grammar %q has no rules and no start symbol", gb.name)
	}
	g := &Grammar{
		Name:         gb.name,
		rules:        gb.rules,
		symbols:      gb.symbols,
		terminals:    treeset.NewWith(symbolComparator),
		nonterminals: treeset.NewWith(symbolComparator),
		start:        gb.start,
	}
	for _, sym := range gb.symbols {
		if sym.IsTerminal() {
			g.terminals.Add(sym)
		} else {
			g.nonterminals.Add(sym)
		}
	}
	return g, nil
}

// RuleBuilder builds a single rule; see GrammarBuilder.LHS.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs *Symbol
	rhs []*Symbol
}

// N appends a non-terminal to the rule's RHS.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.gb.nonterminal(name))
	return rb
}

// T appends a terminal to the rule's RHS, given its name and token value.
func (rb *RuleBuilder) T(name string, tokval int) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.gb.terminal(name, tokval))
	return rb
}

// End finishes the rule without a semantic action.
func (rb *RuleBuilder) End() *Rule {
	return rb.Build(nil)
}

// Epsilon finishes the rule with an empty RHS.
func (rb *RuleBuilder) Epsilon() *Rule {
	rb.rhs = nil
	return rb.Build(nil)
}

// Build finishes the rule and attaches a semantic action. The action will be
// called with one argument per RHS symbol.
func (rb *RuleBuilder) Build(op ConstructorOp) *Rule {
	r := &Rule{
		Serial: len(rb.gb.rules),
		LHS:    rb.lhs,
		rhs:    rb.rhs,
		Op:     op,
	}
	rb.gb.rules = append(rb.gb.rules, r)
	return r
}
