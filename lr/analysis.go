package lr

import (
	"strconv"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/chomp"
	"golang.org/x/exp/slices"
)

// === The fixed-point framework =============================================
//
// All grammar analyses run the same machine: a monotone fixed-point
// iteration over a map from non-terminals to elements of a semilattice.
// The concrete analysis supplies the lattice operations; the framework
// supplies sentential-form evaluation and the iteration. Termination
// follows from monotonicity of the update and finiteness of the carrier.

// Element is a value of an analysis' semilattice.
type Element interface{}

// Env maps non-terminals to analysis elements.
type Env map[*Symbol]Element

// SetAnalysis is the record of operations a grammar analysis provides.
// FirstK and FollowK are the two built-in instances.
type SetAnalysis interface {
	Bottom() Element             // least element
	Empty() Element              // multiplicative identity for Concat
	Singleton(t *Symbol) Element // contribution of a single terminal
	Join(x, y Element) Element
	Concat(x, y Element) Element
	Equal(x, y Element) bool
	Initial(g *Grammar) Env
	Update(g *Grammar, env Env) Env
}

// RHSAnalysis evaluates a sentential form into an analysis element by
// concatenating per-symbol contributions: env[n] for a non-terminal, a
// singleton for a terminal.
func RHSAnalysis(a SetAnalysis, env Env, alpha []*Symbol) Element {
	r := a.Empty()
	for _, sym := range alpha {
		if sym.IsTerminal() {
			r = a.Concat(r, a.Singleton(sym))
		} else {
			r = a.Concat(r, env[sym])
		}
	}
	return r
}

// FixedPoint iterates an analysis' update on a grammar until the environment
// no longer changes. Updates work on a copy per step, so the equality check
// always compares a previous and a next map.
func FixedPoint(a SetAnalysis, g *Grammar) Env {
	env := a.Initial(g)
	for {
		next := a.Update(g, env)
		if envEqual(a, env, next) {
			return next
		}
		env = next
	}
}

func envEqual(a SetAnalysis, old, current Env) bool {
	for sym, x := range old {
		if !a.Equal(x, current[sym]) {
			return false
		}
	}
	return true
}

func copyEnv(env Env) Env {
	next := make(Env, len(env))
	for sym, x := range env {
		next[sym] = x
	}
	return next
}

// === Lookahead sets ========================================================

// Word is a sequence of terminal symbols, the element type of lookahead
// sets. The empty word is ε.
type Word []*Symbol

func (w Word) key() string {
	if len(w) == 0 {
		return ""
	}
	var b strings.Builder
	for _, sym := range w {
		b.WriteString(strconv.Itoa(sym.Value))
		b.WriteByte('.')
	}
	return b.String()
}

func (w Word) String() string {
	if len(w) == 0 {
		return "ε"
	}
	names := make([]string, len(w))
	for i, sym := range w {
		names[i] = sym.Name
	}
	return strings.Join(names, "")
}

// MatchesPrefix tells if the word equals an input prefix: same length, and
// symbol-wise equal under eq.
func (w Word) MatchesPrefix(prefix []chomp.Token, eq TokenEq) bool {
	if len(w) != len(prefix) {
		return false
	}
	for i, sym := range w {
		if !eq(sym, prefix[i]) {
			return false
		}
	}
	return true
}

// Lookaheads is a set of words of terminals, the semilattice carrier for
// FIRST- and FOLLOW-set analysis. The zero value is not usable; sets come
// out of the analysis operations.
type Lookaheads struct {
	words map[string]Word
}

func newLookaheads(words ...Word) *Lookaheads {
	l := &Lookaheads{words: make(map[string]Word, len(words))}
	for _, w := range words {
		l.words[w.key()] = w
	}
	return l
}

// Size returns the number of words in the set.
func (l *Lookaheads) Size() int {
	return len(l.words)
}

// Contains tells if the set contains the exact word w.
func (l *Lookaheads) Contains(w Word) bool {
	_, ok := l.words[w.key()]
	return ok
}

// ContainsPrefix tells if some word of the set matches the input prefix
// (same length, symbol-wise equal under eq).
func (l *Lookaheads) ContainsPrefix(prefix []chomp.Token, eq TokenEq) bool {
	for _, w := range l.words {
		if w.MatchesPrefix(prefix, eq) {
			return true
		}
	}
	return false
}

// Union returns a new set containing the words of both sets.
func (l *Lookaheads) Union(other *Lookaheads) *Lookaheads {
	u := &Lookaheads{words: make(map[string]Word, len(l.words))}
	for k, w := range l.words {
		u.words[k] = w
	}
	if other != nil {
		for k, w := range other.words {
			u.words[k] = w
		}
	}
	return u
}

// concatK returns { (x·y)[:k] | x ∈ l, y ∈ other }.
func (l *Lookaheads) concatK(other *Lookaheads, k int) *Lookaheads {
	c := &Lookaheads{words: make(map[string]Word)}
	for _, x := range l.words {
		for _, y := range other.words {
			w := make(Word, 0, k)
			w = append(w, x...)
			w = append(w, y...)
			if len(w) > k {
				w = w[:k]
			}
			c.words[w.key()] = w
		}
	}
	return c
}

// Equal compares two sets for set equality.
func (l *Lookaheads) Equal(other *Lookaheads) bool {
	if other == nil || len(l.words) != len(other.words) {
		return false
	}
	for k := range l.words {
		if _, ok := other.words[k]; !ok {
			return false
		}
	}
	return true
}

// Words returns all words of the set, in a deterministic order.
func (l *Lookaheads) Words() []Word {
	ws := make([]Word, 0, len(l.words))
	for _, w := range l.words {
		ws = append(ws, w)
	}
	slices.SortFunc(ws, func(a, b Word) bool {
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a.key() < b.key()
	})
	return ws
}

func (l *Lookaheads) String() string {
	ws := l.Words()
	names := make([]string, len(ws))
	for i, w := range ws {
		names[i] = w.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// === FIRST_k and FOLLOW_k ==================================================

// FirstK is the FIRST-set analysis with lookahead length K: for every
// non-terminal the set of terminal words of length up to K which can begin
// a derivation from it.
type FirstK struct {
	K int
}

func (fk FirstK) Bottom() Element {
	return newLookaheads()
}

func (fk FirstK) Empty() Element {
	return newLookaheads(Word{})
}

func (fk FirstK) Singleton(t *Symbol) Element {
	return newLookaheads(Word{t})
}

func (fk FirstK) Join(x, y Element) Element {
	return x.(*Lookaheads).Union(y.(*Lookaheads))
}

func (fk FirstK) Concat(x, y Element) Element {
	return x.(*Lookaheads).concatK(y.(*Lookaheads), fk.K)
}

func (fk FirstK) Equal(x, y Element) bool {
	return x.(*Lookaheads).Equal(y.(*Lookaheads))
}

func (fk FirstK) Initial(g *Grammar) Env {
	env := make(Env)
	g.EachNonTerminal(func(A *Symbol) {
		env[A] = fk.Bottom()
	})
	return env
}

func (fk FirstK) Update(g *Grammar, env Env) Env {
	next := copyEnv(env)
	for _, r := range g.Rules() {
		next[r.LHS] = fk.Join(RHSAnalysis(fk, next, r.rhs), next[r.LHS])
	}
	return next
}

// FirstOfSeq evaluates FIRST_k of a sentential form, given a FIRST_k
// environment for the non-terminals.
func FirstOfSeq(fk FirstK, env Env, alpha []*Symbol) *Lookaheads {
	return RHSAnalysis(fk, env, alpha).(*Lookaheads)
}

// FollowK is the FOLLOW-set analysis with lookahead length K: for every
// non-terminal the set of terminal words of length up to K which can follow
// it in a sentential form derivable from the start symbol. It depends on a
// previously computed FIRST_k environment.
type FollowK struct {
	FirstK
	First Env
}

func (fo FollowK) Initial(g *Grammar) Env {
	env := fo.FirstK.Initial(g)
	env[g.Start()] = fo.Empty()
	return env
}

func (fo FollowK) Update(g *Grammar, env Env) Env {
	next := copyEnv(env)
	for _, r := range g.Rules() {
		for i, sym := range r.rhs {
			if sym.IsTerminal() {
				continue
			}
			rest := RHSAnalysis(fo.FirstK, fo.First, r.rhs[i+1:])
			next[sym] = fo.Join(next[sym], fo.Concat(rest, next[r.LHS]))
		}
	}
	return next
}

// FirstSets computes the FIRST_k sets of all non-terminals of a grammar.
func FirstSets(g *Grammar, k int) Env {
	return FixedPoint(FirstK{K: k}, g)
}

// FollowSets computes the FOLLOW_k sets of all non-terminals of a grammar,
// given the FIRST_k environment.
func FollowSets(g *Grammar, k int, first Env) Env {
	return FixedPoint(FollowK{FirstK: FirstK{K: k}, First: first}, g)
}

// === FIRST(1) shortcut =====================================================

// LRAnalysis is the classic FIRST(1) grammar analysis: an epsilon-derivation
// bit per non-terminal plus symbolic FIRST- and FOLLOW-sets. It is subsumed
// by FirstK/FollowK with k = 1 and kept as a cheap shortcut with a simpler
// result type.
type LRAnalysis struct {
	g          *Grammar
	derivesEps map[*Symbol]bool
	first      map[*Symbol]*treeset.Set
	follow     map[*Symbol]*treeset.Set
}

// Analysis creates and runs a FIRST(1) analysis on a grammar.
func Analysis(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{
		g:          g,
		derivesEps: make(map[*Symbol]bool),
		first:      make(map[*Symbol]*treeset.Set),
		follow:     make(map[*Symbol]*treeset.Set),
	}
	ga.analyse()
	return ga
}

// Grammar returns the grammar this analysis is for.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// DerivesEpsilon tells if a non-terminal can derive the empty string.
func (ga *LRAnalysis) DerivesEpsilon(A *Symbol) bool {
	return ga.derivesEps[A]
}

// First returns FIRST(A) as a sorted list of terminals. Epsilon is not an
// element; use DerivesEpsilon instead.
func (ga *LRAnalysis) First(A *Symbol) []*Symbol {
	return symbolSetValues(ga.first[A])
}

// Follow returns FOLLOW(A) as a sorted list of terminals.
func (ga *LRAnalysis) Follow(A *Symbol) []*Symbol {
	return symbolSetValues(ga.follow[A])
}

func symbolSetValues(set *treeset.Set) []*Symbol {
	if set == nil {
		return nil
	}
	syms := make([]*Symbol, 0, set.Size())
	it := set.Iterator()
	for it.Next() {
		syms = append(syms, it.Value().(*Symbol))
	}
	return syms
}

func (ga *LRAnalysis) analyse() {
	g := ga.g
	g.EachNonTerminal(func(A *Symbol) {
		ga.derivesEps[A] = false
		ga.first[A] = treeset.NewWith(symbolComparator)
	})
	// epsilon-derivability
	for changed := true; changed; {
		changed = false
		for _, r := range g.Rules() {
			if ga.derivesEps[r.LHS] {
				continue
			}
			if ga.seqDerivesEpsilon(r.rhs) {
				ga.derivesEps[r.LHS] = true
				changed = true
			}
		}
	}
	// symbolic FIRST(1); the sets only grow, so watching sizes detects the
	// fixed point
	for changed := true; changed; {
		changed = false
		for _, r := range g.Rules() {
			set := ga.first[r.LHS]
			before := set.Size()
			set.Add(ga.symbolicFirst(r.rhs).Values()...)
			if set.Size() != before {
				changed = true
			}
		}
	}
	// FOLLOW(1) via the generic analysis
	first := FirstSets(g, 1)
	follow := FollowSets(g, 1, first)
	g.EachNonTerminal(func(A *Symbol) {
		set := treeset.NewWith(symbolComparator)
		if la, ok := follow[A].(*Lookaheads); ok {
			for _, w := range la.Words() {
				if len(w) == 1 {
					set.Add(w[0])
				}
			}
		}
		ga.follow[A] = set
	})
}

func (ga *LRAnalysis) seqDerivesEpsilon(alpha []*Symbol) bool {
	for _, sym := range alpha {
		if sym.IsTerminal() || !ga.derivesEps[sym] {
			return false
		}
	}
	return true
}

func (ga *LRAnalysis) symbolicFirst(alpha []*Symbol) *treeset.Set {
	out := treeset.NewWith(symbolComparator)
	for _, sym := range alpha {
		if sym.IsTerminal() {
			out.Add(sym)
			return out
		}
		out.Add(ga.first[sym].Values()...)
		if !ga.derivesEps[sym] {
			return out
		}
	}
	return out
}
