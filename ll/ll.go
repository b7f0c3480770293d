/*
Package ll provides a predictive LL(k) parser.

The parser is constructed from a grammar and a lookahead length k. At
construction time it computes FIRST_k and FOLLOW_k sets (see package lr) and
derives per-rule lookahead sets; parsing itself is plain recursive descent
over the grammar, choosing among a non-terminal's rules by comparing the
next k input tokens against the lookahead sets.

The parser does not backtrack. If more than one rule matches the lookahead,
the grammar is not LL(k): a diagnostic is emitted and the first matching
rule (in declaration order) is chosen, which keeps parsing deterministic.

Only full-string acceptance is supported. Because lookahead sets may contain
words shorter than k, accepting a proper prefix of the input cannot be
detected reliably, so it is not offered.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import (
	"fmt"

	"github.com/npillmayer/chomp"
	"github.com/npillmayer/chomp/lr"
	"github.com/npillmayer/chomp/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomp.ll'.
func tracer() tracing.Trace {
	return tracing.Select("chomp.ll")
}

// Parser is an LL(k) parser for a fixed grammar and lookahead length.
// Create one with NewParser; a parser may be reused for any number of
// inputs.
type Parser struct {
	g          *lr.Grammar
	k          int
	eq         lr.TokenEq
	conflict   func(string)
	fk         lr.FirstK
	first      lr.Env
	lookaheads map[*lr.Rule]*lr.Lookaheads
}

// Option configures a parser.
type Option func(p *Parser)

// WithEq injects the equality between grammar terminals and input tokens.
// The default is lr.TagEq.
func WithEq(eq lr.TokenEq) Option {
	return func(p *Parser) {
		p.eq = eq
	}
}

// WithConflictHandler injects a sink for conflict diagnostics. The default
// sink writes to the trace. Conflicts are advisory: the parse continues
// deterministically either way.
func WithConflictHandler(h func(msg string)) Option {
	return func(p *Parser) {
		p.conflict = h
	}
}

// NewParser creates an LL(k) parser for a grammar. It computes the FIRST_k
// and FOLLOW_k sets and, per rule A ➞ α, the lookahead set
// FIRST_k(α) ⊙ FOLLOW_k(A).
func NewParser(g *lr.Grammar, k int, opts ...Option) *Parser {
	p := &Parser{
		g:  g,
		k:  k,
		eq: lr.TagEq,
		fk: lr.FirstK{K: k},
	}
	p.conflict = func(msg string) {
		tracer().Infof(msg)
	}
	for _, opt := range opts {
		opt(p)
	}
	p.first = lr.FirstSets(g, k)
	follow := lr.FollowSets(g, k, p.first)
	p.lookaheads = make(map[*lr.Rule]*lr.Lookaheads, g.Size())
	for _, r := range g.Rules() {
		firstOfRHS := lr.FirstOfSeq(p.fk, p.first, r.RHS())
		p.lookaheads[r] = p.fk.Concat(firstOfRHS, follow[r.LHS]).(*lr.Lookaheads)
		tracer().Debugf("lookahead(%v) = %v", r, p.lookaheads[r])
	}
	return p
}

// Parse runs the parser over an input token sequence. It returns true iff
// the grammar derives the complete input.
func (p *Parser) Parse(input []chomp.Token) bool {
	rest, ok := p.acceptSymbol(p.g.Start(), input)
	return ok && len(rest) == 0
}

func (p *Parser) acceptSymbol(sym *lr.Symbol, inp []chomp.Token) ([]chomp.Token, bool) {
	if sym.IsTerminal() {
		if len(inp) > 0 && p.eq(sym, inp[0]) {
			return inp[1:], true
		}
		return nil, false
	}
	prefix := inp
	if len(prefix) > p.k {
		prefix = prefix[:p.k]
	}
	var candidates []*lr.Rule
	for _, r := range p.g.RulesFor(sym) {
		if p.lookaheads[r].ContainsPrefix(prefix, p.eq) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) > 1 {
		p.conflict(fmt.Sprintf("Grammar is not LL(%d)", p.k))
	}
	if len(candidates) == 0 {
		return nil, false
	}
	tracer().Debugf("predict %v", candidates[0])
	return p.acceptSeq(candidates[0].RHS(), inp)
}

func (p *Parser) acceptSeq(alpha []*lr.Symbol, inp []chomp.Token) ([]chomp.Token, bool) {
	for _, sym := range alpha {
		rest, ok := p.acceptSymbol(sym, inp)
		if !ok {
			return nil, false
		}
		inp = rest
	}
	return inp, true
}

// Parse is a one-shot convenience: build a parser and run it over the input.
func Parse(g *lr.Grammar, k int, input []chomp.Token, opts ...Option) bool {
	return NewParser(g, k, opts...).Parse(input)
}

// ParseString is a convenience for character-level grammars: every character
// of the input becomes a token of its own (see scanner.CharTokens).
func ParseString(g *lr.Grammar, k int, input string, opts ...Option) bool {
	return NewParser(g, k, opts...).Parse(scanner.CharTokens(input))
}
