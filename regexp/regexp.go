/*
Package regexp implements regular expressions as algebraic terms, together
with Brzozowski derivatives. The derivative of an expression with respect to
an input symbol is again an expression, which makes expressions usable as the
states of a lazily unfolded DFA. Package scanner drives lists of such
expressions in parallel to tokenize input.

Expressions are built with smart constructors (Cat, Alt, Star, …), which keep
terms in a normal form: the empty set absorbs concatenation, the empty word
is the identity of concatenation, concatenation and alternatives nest to the
right, and repetitions collapse. Derivative chains over normal-form terms
stay small for the kind of input a scanner sees.

States are not memoized and no automaton is precomputed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package regexp

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomp.regexp'.
func tracer() tracing.Trace {
	return tracing.Select("chomp.regexp")
}

// Expr is a regular expression term. The six implementations form the
// complete algebra; clients construct terms through the smart constructors
// below rather than with raw struct literals.
type Expr interface {
	fmt.Stringer
	isExpr()
}

// Null is the empty set: no word at all.
type Null struct{}

// Epsilon is the empty word.
type Epsilon struct{}

// Symbol matches a single input symbol.
type Symbol struct {
	Sym rune
}

// Concat is the concatenation of two expressions.
type Concat struct {
	Left, Right Expr
}

// Alternative is the union of two expressions.
type Alternative struct {
	Left, Right Expr
}

// Repeat is the Kleene star of an expression.
type Repeat struct {
	Body Expr
}

func (Null) isExpr()        {}
func (Epsilon) isExpr()     {}
func (Symbol) isExpr()      {}
func (Concat) isExpr()      {}
func (Alternative) isExpr() {}
func (Repeat) isExpr()      {}

func (Null) String() string     { return "∅" }
func (Epsilon) String() string  { return "ε" }
func (s Symbol) String() string { return fmt.Sprintf("%c", s.Sym) }
func (c Concat) String() string { return c.Left.String() + c.Right.String() }
func (r Repeat) String() string { return "(" + r.Body.String() + ")*" }

func (a Alternative) String() string {
	return "(" + a.Left.String() + "|" + a.Right.String() + ")"
}

// --- Smart constructors ----------------------------------------------------

// Sym creates an expression matching a single symbol.
func Sym(c rune) Expr {
	return Symbol{Sym: c}
}

// Cat concatenates two expressions. Null absorbs, Epsilon is the identity,
// and nested concatenations are rotated to the right.
func Cat(r1, r2 Expr) Expr {
	if IsNull(r1) || IsNull(r2) {
		return Null{}
	}
	if _, eps := r1.(Epsilon); eps {
		return r2
	}
	if _, eps := r2.(Epsilon); eps {
		return r1
	}
	if c, ok := r1.(Concat); ok {
		return Concat{Left: c.Left, Right: Cat(c.Right, r2)}
	}
	return Concat{Left: r1, Right: r2}
}

// Alt creates the union of two expressions. Null is the identity, and nested
// alternatives are rotated to the right.
func Alt(r1, r2 Expr) Expr {
	if IsNull(r1) {
		return r2
	}
	if IsNull(r2) {
		return r1
	}
	if a, ok := r1.(Alternative); ok {
		return Alternative{Left: a.Left, Right: Alt(a.Right, r2)}
	}
	return Alternative{Left: r1, Right: r2}
}

// Star creates the Kleene star of an expression. Starring the empty set or
// the empty word yields the empty word, and repetitions collapse.
func Star(r Expr) Expr {
	switch r.(type) {
	case Null, Epsilon:
		return Epsilon{}
	case Repeat:
		return r
	}
	return Repeat{Body: r}
}

// Opt makes an expression optional: r | ε.
func Opt(r Expr) Expr {
	return Alt(r, Epsilon{})
}

// Plus matches one or more repetitions of r.
func Plus(r Expr) Expr {
	return Cat(r, Star(r))
}

// CatAll concatenates a list of expressions, left to right.
func CatAll(rs ...Expr) Expr {
	var out Expr = Epsilon{}
	for _, r := range rs {
		out = Cat(out, r)
	}
	return out
}

// AltAll creates the union over a list of expressions.
func AltAll(rs ...Expr) Expr {
	var out Expr = Null{}
	for _, r := range rs {
		out = Alt(out, r)
	}
	return out
}

// CharRange matches any single symbol from the inclusive range lo…hi.
func CharRange(lo, hi rune) Expr {
	var out Expr = Null{}
	for c := lo; c <= hi; c++ {
		out = Alt(out, Sym(c))
	}
	return out
}

// Str matches the literal string s.
func Str(s string) Expr {
	var out Expr = Epsilon{}
	for _, c := range s {
		out = Cat(out, Sym(c))
	}
	return out
}

// Class matches any single symbol occurring in chars.
func Class(chars string) Expr {
	var out Expr = Null{}
	for _, c := range chars {
		out = Alt(out, Sym(c))
	}
	return out
}
