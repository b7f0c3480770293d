/*
Package lrk provides a continuation-driven LR(k) parser which constructs
semantic values bottom-up.

Items carry a lookahead word of up to k terminals; closures predict items
with lookaheads from FIRST_k(β·ℓ). Instead of an explicit state stack, the
driver threads a list of continuations: each continuation re-enters the
parse at one ancestor state. On a shift, a fresh continuation is prepended
and the list is truncated to the active prefix length of the successor
state; on a reduction by A ➞ α, the continuation at depth |α| is invoked
with the non-terminal A, performing the goto at the matching ancestor.

In parallel the parser maintains a construct stack of semantic values:
shifting pushes the input token, reducing pops |α| values and pushes the
result of the rule's constructor op applied to them in source order. Rules
without an op push a nil sentinel. On acceptance the single remaining
construct is the parse result.

Conflicts are emitted as diagnostics and resolved deterministically: shift
before reduce, earlier reduction before later.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lrk

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/chomp"
	"github.com/npillmayer/chomp/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomp.lr'.
func tracer() tracing.Trace {
	return tracing.Select("chomp.lr")
}

// Parser is an LR(k) parser. Create one with NewParser; a parser may be
// reused for any number of inputs.
type Parser struct {
	m        *lr.Machine
	k        int
	eq       lr.TokenEq
	conflict func(string)
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
// sink writes to the trace.
func WithConflictHandler(h func(msg string)) Option {
	return func(p *Parser) {
		p.conflict = h
	}
}

// NewParser creates an LR(k) parser. FIRST_k sets are computed up front.
// It returns an error if the grammar is not start-separated.
func NewParser(g *lr.Grammar, k int, opts ...Option) (*Parser, error) {
	m, err := lr.NewMachine(g, k)
	if err != nil {
		return nil, err
	}
	p := &Parser{m: m, k: k, eq: lr.TagEq}
	p.conflict = func(msg string) {
		tracer().Infof(msg)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// A continuation re-enters the parse at one ancestor state; trans performs
// the pending goto on that state.
type continuation func(trans func(*lr.State) *lr.State, inp []chomp.Token) bool

// Parse runs the parser over an input token sequence. It returns whether
// the grammar derives the complete input, plus the constructed semantic
// value. Without acceptance no semantic value is returned.
func (p *Parser) Parse(input []chomp.Token) (bool, interface{}) {
	g := p.m.Grammar()
	constructs := arraylist.New()

	var rec func(state *lr.State, conts []continuation, inp []chomp.Token) bool
	rec = func(state *lr.State, conts []continuation, inp []chomp.Token) bool {
		if state.Final(g) && len(inp) == 0 {
			return true
		}
		var c0 continuation
		c0 = func(trans func(*lr.State) *lr.State, inp []chomp.Token) bool {
			next := trans(state)
			keep := next.NActive() - 1
			if keep < 0 {
				keep = 0
			}
			if keep > len(conts) {
				keep = len(conts)
			}
			nextConts := make([]continuation, 0, keep+1)
			nextConts = append(nextConts, c0)
			nextConts = append(nextConts, conts[:keep]...)
			return rec(next, nextConts, inp)
		}

		var shiftable []lr.Item
		if len(inp) > 0 {
			shiftable = state.ShiftableItems(inp[0], p.eq)
		}
		prefix := inp
		if len(prefix) > p.k {
			prefix = prefix[:p.k]
		}
		reducible := state.ReducibleItemsK(prefix, p.eq)
		actions := len(reducible)
		if len(shiftable) > 0 {
			actions++
		}
		if actions > 1 {
			p.conflict(fmt.Sprintf("Grammar is not LR(%d)", p.k))
		}
		if len(shiftable) > 0 {
			tok := inp[0]
			tracer().Debugf("shift %v", tok)
			constructs.Add(tok)
			return c0(func(s *lr.State) *lr.State {
				return p.m.GotoToken(s, tok, p.eq)
			}, inp[1:])
		}
		if len(reducible) > 0 {
			rule := reducible[0].Rule()
			tracer().Debugf("reduce %v", rule)
			p.construct(constructs, rule)
			depth := rule.Arity()
			if depth > len(conts) {
				tracer().Errorf("no continuation at depth %d for %v", depth, rule)
				return false
			}
			trans := func(s *lr.State) *lr.State {
				return p.m.GotoSymbol(s, rule.LHS)
			}
			if depth == 0 {
				return c0(trans, inp)
			}
			return conts[depth-1](trans, inp)
		}
		return false
	}

	accept := rec(p.m.StartState(), nil, input)
	if !accept {
		return false, nil
	}
	root, _ := constructs.Get(constructs.Size() - 1)
	return true, root
}

// construct pops the top |rhs| semantic values, applies the rule's
// constructor op to them in source order, and pushes the result. A rule
// without an op contributes a nil sentinel.
func (p *Parser) construct(constructs *arraylist.List, rule *lr.Rule) {
	arity := rule.Arity()
	size := constructs.Size()
	args := make([]interface{}, arity)
	for j := 0; j < arity; j++ {
		v, _ := constructs.Get(size - arity + j)
		args[j] = v
	}
	for j := 0; j < arity; j++ {
		constructs.Remove(constructs.Size() - 1)
	}
	var value interface{}
	if rule.Op != nil {
		value = rule.Op(args...)
	}
	constructs.Add(value)
}

// Parse is a one-shot convenience: build a parser and run it over the input.
// Grammar misuse (a non-start-separated grammar) surfaces as an error.
func Parse(g *lr.Grammar, k int, input []chomp.Token, opts ...Option) (bool, interface{}, error) {
	p, err := NewParser(g, k, opts...)
	if err != nil {
		return false, nil, err
	}
	accept, value := p.Parse(input)
	return accept, value, nil
}
