/*
Package td provides a nondeterministic top-down parser.

The parser enumerates, lazily and in depth-first order, every way a
sentential form α can derive a prefix of the input, yielding the remaining
input suffix for each. It is hopelessly inefficient and will not terminate
on left-recursive grammars — but it is obviously correct, which makes it a
useful reference oracle for testing the deterministic parsers: an input
belongs to the language iff some yielded suffix is empty.

The sequence is pull-based: an explicit stack of expansion frames takes the
place of recursive generators.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package td

import (
	"github.com/npillmayer/chomp"
	"github.com/npillmayer/chomp/lr"
	"github.com/npillmayer/chomp/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomp.td'.
func tracer() tracing.Trace {
	return tracing.Select("chomp.td")
}

// Option configures a derivation walk.
type Option func(s *Suffixes)

// WithEq injects the equality between grammar terminals and input tokens.
// The default is lr.TagEq.
func WithEq(eq lr.TokenEq) Option {
	return func(s *Suffixes) {
		s.eq = eq
	}
}

// A frame is a pending expansion: a sentential form and the input left to
// derive from it.
type frame struct {
	alpha []*lr.Symbol
	inp   []chomp.Token
}

// Suffixes is a lazy sequence of remaining-input suffixes; see Derivations.
type Suffixes struct {
	g     *lr.Grammar
	eq    lr.TokenEq
	stack []frame
}

// Derivations yields every suffix inp' of the input such that α derives
// prefix with prefix·inp' = input. Rules are expanded in declaration order,
// depth first.
func Derivations(g *lr.Grammar, alpha []*lr.Symbol, input []chomp.Token, opts ...Option) *Suffixes {
	s := &Suffixes{
		g:     g,
		eq:    lr.TagEq,
		stack: []frame{{alpha: alpha, inp: input}},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parse yields the suffixes of all derivations starting at the grammar's
// start symbol.
func Parse(g *lr.Grammar, input []chomp.Token, opts ...Option) *Suffixes {
	return Derivations(g, []*lr.Symbol{g.Start()}, input, opts...)
}

// Next produces the next suffix, or false when the derivations are
// exhausted.
func (s *Suffixes) Next() ([]chomp.Token, bool) {
	for len(s.stack) > 0 {
		f := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		if len(f.alpha) == 0 {
			tracer().Debugf("derived a prefix, %d tokens remaining", len(f.inp))
			return f.inp, true
		}
		sym := f.alpha[0]
		rest := f.alpha[1:]
		if sym.IsTerminal() {
			if len(f.inp) > 0 && s.eq(sym, f.inp[0]) {
				s.stack = append(s.stack, frame{alpha: rest, inp: f.inp[1:]})
			}
			continue
		}
		rules := s.g.RulesFor(sym)
		for i := len(rules) - 1; i >= 0; i-- { // reversed: rule 0 explored first
			expanded := append(rules[i].RHS(), rest...)
			s.stack = append(s.stack, frame{alpha: expanded, inp: f.inp})
		}
	}
	return nil, false
}

// Recognize tells if the grammar derives the complete input, by walking all
// derivations until one consumes every token. Like Next, it will not
// terminate on left-recursive grammars.
func Recognize(g *lr.Grammar, input []chomp.Token, opts ...Option) bool {
	suffixes := Parse(g, input, opts...)
	for {
		suffix, ok := suffixes.Next()
		if !ok {
			return false
		}
		if len(suffix) == 0 {
			return true
		}
	}
}

// RecognizeString is a convenience for character-level grammars (see
// scanner.CharTokens).
func RecognizeString(g *lr.Grammar, input string, opts ...Option) bool {
	return Recognize(g, scanner.CharTokens(input), opts...)
}
