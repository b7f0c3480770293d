package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// The running example: a non-left-recursive expression grammar.
//
//	T  ➞ E T'
//	T' ➞ + E T'  |  ε
//	E  ➞ F E'
//	E' ➞ * F E'  |  ε
//	F  ➞ x  |  2  |  ( T )
func exprGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Expr")
	b.LHS("T").N("E").N("T'").End()
	b.LHS("T'").T("+", '+').N("E").N("T'").End()
	b.LHS("T'").Epsilon()
	b.LHS("E").N("F").N("E'").End()
	b.LHS("E'").T("*", '*').N("F").N("E'").End()
	b.LHS("E'").Epsilon()
	b.LHS("F").T("x", 'x').End()
	b.LHS("F").T("2", '2').End()
	b.LHS("F").T("(", '(').N("T").T(")", ')').End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func word(g *Grammar, names ...string) Word {
	w := make(Word, len(names))
	for i, n := range names {
		w[i] = g.SymbolByName(n)
	}
	return w
}

func lookaheadsOf(t *testing.T, env Env, sym *Symbol) *Lookaheads {
	la, ok := env[sym].(*Lookaheads)
	if !ok {
		t.Fatalf("no lookahead set for %v", sym)
	}
	return la
}

func TestFirst1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomp.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	first := FirstSets(g, 1)
	fT := lookaheadsOf(t, first, g.SymbolByName("T"))
	if fT.Size() != 3 {
		t.Errorf("expected |FIRST_1(T)| = 3, got %v", fT)
	}
	for _, n := range []string{"x", "2", "("} {
		if !fT.Contains(word(g, n)) {
			t.Errorf("expected %s ∈ FIRST_1(T), set is %v", n, fT)
		}
	}
	fTd := lookaheadsOf(t, first, g.SymbolByName("T'"))
	if !fTd.Contains(Word{}) || !fTd.Contains(word(g, "+")) || fTd.Size() != 2 {
		t.Errorf("expected FIRST_1(T') = {ε, +}, got %v", fTd)
	}
}

func TestFollow1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomp.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	first := FirstSets(g, 1)
	follow := FollowSets(g, 1, first)
	fF := lookaheadsOf(t, follow, g.SymbolByName("F"))
	if fF.Size() != 4 {
		t.Errorf("expected |FOLLOW_1(F)| = 4, got %v", fF)
	}
	for _, n := range []string{"*", "+", ")"} {
		if !fF.Contains(word(g, n)) {
			t.Errorf("expected %s ∈ FOLLOW_1(F), set is %v", n, fF)
		}
	}
	if !fF.Contains(Word{}) {
		t.Errorf("expected ε ∈ FOLLOW_1(F), set is %v", fF)
	}
}

func TestFirst2(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomp.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	first := FirstSets(g, 2)
	fT := lookaheadsOf(t, first, g.SymbolByName("T"))
	for _, w := range []Word{
		word(g, "x"),
		word(g, "x", "+"),
		word(g, "x", "*"),
		word(g, "(", "x"),
		word(g, "(", "("),
	} {
		if !fT.Contains(w) {
			t.Errorf("expected %v ∈ FIRST_2(T), set is %v", w, fT)
		}
	}
	for _, w := range fT.Words() {
		if len(w) > 2 {
			t.Errorf("FIRST_2 contains overlong word %v", w)
		}
	}
}

// FIRST_k is monotone under the update, reaching its fixed point from below.
func TestFirstMonotone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomp.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	fk := FirstK{K: 1}
	env := fk.Initial(g)
	final := FirstSets(g, 1)
	for step := 0; step < 10; step++ {
		next := fk.Update(g, env)
		g.EachNonTerminal(func(A *Symbol) {
			was := lookaheadsOf(t, env, A)
			is := lookaheadsOf(t, next, A)
			for _, w := range was.Words() {
				if !is.Contains(w) {
					t.Errorf("FIRST_1(%v) lost word %v in step %d", A, w, step)
				}
			}
			for _, w := range is.Words() {
				if !lookaheadsOf(t, final, A).Contains(w) {
					t.Errorf("FIRST_1(%v) overshoots fixed point with %v", A, w)
				}
			}
		})
		env = next
	}
	if !envEqual(fk, env, fk.Update(g, env)) {
		t.Errorf("FIRST_1 did not reach a fixed point within 10 steps")
	}
}

// At the fixed point, FIRST_k(A) covers FIRST_k(α) for every rule A ➞ α,
// and FOLLOW_k(B) covers FIRST_k(β)⊙FOLLOW_k(A) for every A ➞ αBβ.
func TestAnalysisCoverage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomp.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	for _, k := range []int{1, 2, 3} {
		fk := FirstK{K: k}
		first := FirstSets(g, k)
		follow := FollowSets(g, k, first)
		for _, r := range g.Rules() {
			rhsFirst := FirstOfSeq(fk, first, r.RHS())
			lhsFirst := lookaheadsOf(t, first, r.LHS)
			for _, w := range rhsFirst.Words() {
				if !lhsFirst.Contains(w) {
					t.Errorf("k=%d: FIRST(%v) misses %v from %v", k, r.LHS, w, r)
				}
			}
			rhs := r.RHS()
			for i, sym := range rhs {
				if sym.IsTerminal() {
					continue
				}
				rest := FirstOfSeq(fk, first, rhs[i+1:])
				expected := fk.Concat(rest, follow[r.LHS]).(*Lookaheads)
				got := lookaheadsOf(t, follow, sym)
				for _, w := range expected.Words() {
					if !got.Contains(w) {
						t.Errorf("k=%d: FOLLOW(%v) misses %v from %v", k, sym, w, r)
					}
				}
			}
		}
	}
}

// The FIRST(1) shortcut must agree with the generic FIRST_1 analysis.
func TestLegacyAnalysisAgrees(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomp.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	ga := Analysis(g)
	first := FirstSets(g, 1)
	g.EachNonTerminal(func(A *Symbol) {
		la := lookaheadsOf(t, first, A)
		legacy := ga.First(A)
		count := 0
		for _, w := range la.Words() {
			if len(w) == 0 {
				if !ga.DerivesEpsilon(A) {
					t.Errorf("FIRST_1(%v) contains ε but DerivesEpsilon is false", A)
				}
				continue
			}
			count++
			found := false
			for _, sym := range legacy {
				if sym == w[0] {
					found = true
				}
			}
			if !found {
				t.Errorf("legacy FIRST(%v) misses %v", A, w)
			}
		}
		if count != len(legacy) {
			t.Errorf("legacy FIRST(%v) = %v disagrees with FIRST_1 = %v", A, legacy, la)
		}
		if ga.DerivesEpsilon(A) && !la.Contains(Word{}) {
			t.Errorf("DerivesEpsilon(%v) but ε ∉ FIRST_1", A)
		}
	})
	// spot checks
	if !ga.DerivesEpsilon(g.SymbolByName("T'")) || ga.DerivesEpsilon(g.SymbolByName("F")) {
		t.Errorf("epsilon-derivability wrong")
	}
	followF := ga.Follow(g.SymbolByName("F"))
	if len(followF) != 3 {
		t.Errorf("expected legacy FOLLOW(F) to hold 3 terminals, got %v", followF)
	}
}
