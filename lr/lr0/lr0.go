/*
Package lr0 provides a shift/reduce LR(0) parser.

The parser operates on a start-separated grammar (see
lr.Grammar.StartSeparated) and keeps a stack of automaton states, which are
computed on demand by an lr.Machine — no parse table is generated. At every
step the parser shifts if some item of the top state can consume the next
input token, and reduces by a completed item otherwise.

LR(0) means: no lookahead. Most interesting grammars are not LR(0); when a
state offers more than one action, a diagnostic is emitted and the parser
proceeds deterministically, preferring shift over reduce and earlier items
over later ones.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr0

import (
	"github.com/npillmayer/chomp"
	"github.com/npillmayer/chomp/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomp.lr'.
func tracer() tracing.Trace {
	return tracing.Select("chomp.lr")
}

// Parser is an LR(0) parser. Create one with NewParser; a parser may be
// reused for any number of inputs.
type Parser struct {
	m        *lr.Machine
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

// NewParser creates an LR(0) parser. It returns an error if the grammar is
// not start-separated.
func NewParser(g *lr.Grammar, opts ...Option) (*Parser, error) {
	m, err := lr.NewMachine(g, 0)
	if err != nil {
		return nil, err
	}
	p := &Parser{m: m, eq: lr.TagEq}
	p.conflict = func(msg string) {
		tracer().Infof(msg)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Parse runs the parser over an input token sequence. It returns true iff
// the grammar derives the complete input.
func (p *Parser) Parse(input []chomp.Token) bool {
	g := p.m.Grammar()
	stack := []*lr.State{p.m.StartState()}
	inp := input
	for {
		state := stack[len(stack)-1]
		// the start rule completes by the goto over its single RHS symbol,
		// with the start state still below
		if state.Final(g) && len(stack) == 2 && len(inp) == 0 {
			return true
		}
		var shiftable []lr.Item
		if len(inp) > 0 {
			shiftable = state.ShiftableItems(inp[0], p.eq)
		}
		reducible := state.ReducibleItems()
		actions := len(reducible)
		if len(shiftable) > 0 {
			actions++
		}
		if actions > 1 {
			p.conflict("Grammar is not LR(0)")
		}
		if len(shiftable) > 0 {
			tracer().Debugf("shift %v", inp[0])
			stack = append(stack, p.m.GotoToken(state, inp[0], p.eq))
			inp = inp[1:]
			continue
		}
		if len(reducible) > 0 {
			item := reducible[0]
			tracer().Debugf("reduce %v", item.Rule())
			if len(item.Prefix()) >= len(stack) {
				tracer().Errorf("parse stack too short for %v", item.Rule())
				return false
			}
			stack = stack[:len(stack)-len(item.Prefix())]
			top := stack[len(stack)-1]
			stack = append(stack, p.m.GotoSymbol(top, item.Rule().LHS))
			continue
		}
		return false
	}
}

// Parse is a one-shot convenience: build a parser and run it over the input.
// Grammar misuse (a non-start-separated grammar) surfaces as an error.
func Parse(g *lr.Grammar, input []chomp.Token, opts ...Option) (bool, error) {
	p, err := NewParser(g, opts...)
	if err != nil {
		return false, err
	}
	return p.Parse(input), nil
}
