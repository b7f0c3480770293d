package lr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/chomp"
	"github.com/npillmayer/chomp/lr/iteratable"
)

// --- Items ------------------------------------------------------------------

// Item is an Earley item: a rule, a dot position within its RHS, and an
// optional lookahead word of terminals. LR(0) items carry the empty word.
type Item struct {
	rule *Rule
	dot  int
	la   Word
}

// StartItem returns the item ' LHS ➞ • RHS ' for a rule, together with the
// symbol after the dot (nil for an epsilon rule).
func StartItem(r *Rule) (Item, *Symbol) {
	i := Item{rule: r}
	return i, i.PeekSymbol()
}

// NewItem creates an item for a rule with a given dot position and lookahead.
func NewItem(r *Rule, dot int, la Word) Item {
	return Item{rule: r, dot: dot, la: la}
}

// Rule returns the rule underlying an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Lookahead returns the item's lookahead word.
func (i Item) Lookahead() Word {
	return i.la
}

// PeekSymbol returns the symbol right after the dot, or nil if the dot is
// behind the complete RHS.
func (i Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Prefix returns the symbols before the dot. The slice aliases the rule's
// RHS and must not be modified.
func (i Item) Prefix() []*Symbol {
	return i.rule.rhs[:i.dot]
}

// Rest returns the symbols from the dot onwards. The slice aliases the
// rule's RHS and must not be modified.
func (i Item) Rest() []*Symbol {
	return i.rule.rhs[i.dot:]
}

// Completed tells if the dot is behind the complete RHS.
func (i Item) Completed() bool {
	return i.dot >= len(i.rule.rhs)
}

// Advance moves the dot of an item one step. Advancing a completed item is
// illegal.
func (i Item) Advance() Item {
	if i.Completed() {
		panic(fmt.Sprintf("cannot advance completed item %v", i))
	}
	return Item{rule: i.rule, dot: i.dot + 1, la: i.la}
}

func (i Item) String() string {
	s := fmt.Sprintf("%s ➞ %s•%s", i.rule.LHS.Name,
		symbolChain(i.rule.rhs[:i.dot]), symbolChain(i.rule.rhs[i.dot:]))
	if len(i.la) > 0 {
		s += fmt.Sprintf(" [%s]", i.la)
	}
	return s
}

func symbolChain(syms []*Symbol) string {
	names := make([]string, len(syms))
	for j, sym := range syms {
		names[j] = sym.Name
	}
	return strings.Join(names, " ")
}

// hashKey gives an item its identity within item sets.
func (i Item) hashKey() string {
	la := make([]int, len(i.la))
	for j, sym := range i.la {
		la[j] = sym.Value
	}
	h, err := structhash.Hash(struct {
		Serial int
		Dot    int
		La     []int
	}{i.rule.Serial, i.dot, la}, 1)
	if err != nil { // no reason for this to happen, but the API demands it
		panic(err)
	}
	return h
}

func itemKey(v interface{}) string {
	return v.(Item).hashKey()
}

func newItemSet() *iteratable.Set {
	return iteratable.NewKeyedSet(0, itemKey)
}

// --- States -----------------------------------------------------------------

// State is a set of items, closed under prediction (see Machine.Closure).
// States are the nodes of the LR automaton; they are hashable, and no
// canonical numbering or table is maintained for them.
type State struct {
	items *iteratable.Set
}

func newState(items ...Item) *State {
	s := &State{items: newItemSet()}
	for _, i := range items {
		s.items.Add(i)
	}
	return s
}

// Size returns the number of items in the state.
func (s *State) Size() int {
	return s.items.Size()
}

// Empty tells if the state has no items, i.e. is the error state.
func (s *State) Empty() bool {
	return s.items.Empty()
}

// Items returns the items of a state, in insertion order.
func (s *State) Items() []Item {
	items := make([]Item, 0, s.items.Size())
	s.items.Each(func(v interface{}) {
		items = append(items, v.(Item))
	})
	return items
}

// Final tells if the state contains a completed item for the grammar's
// start symbol.
func (s *State) Final(g *Grammar) bool {
	for _, i := range s.Items() {
		if i.Completed() && i.rule.LHS == g.Start() {
			return true
		}
	}
	return false
}

// NActive returns the length of the longest item prefix within the state:
// the number of stack entries the state can still make use of.
func (s *State) NActive() int {
	max := 0
	for _, i := range s.Items() {
		if i.dot > max {
			max = i.dot
		}
	}
	return max
}

// ShiftableItems returns all items which may shift the given input token,
// in insertion order.
func (s *State) ShiftableItems(tok chomp.Token, eq TokenEq) []Item {
	var items []Item
	for _, i := range s.Items() {
		if A := i.PeekSymbol(); A != nil && A.IsTerminal() && eq(A, tok) {
			items = append(items, i)
		}
	}
	return items
}

// ReducibleItems returns all completed items, ignoring lookaheads.
func (s *State) ReducibleItems() []Item {
	var items []Item
	for _, i := range s.Items() {
		if i.Completed() {
			items = append(items, i)
		}
	}
	return items
}

// ReducibleItemsK returns all completed items whose lookahead word matches
// the given input prefix: same length, and symbol-wise equal under eq.
func (s *State) ReducibleItemsK(prefix []chomp.Token, eq TokenEq) []Item {
	var items []Item
	for _, i := range s.Items() {
		if i.Completed() && i.la.MatchesPrefix(prefix, eq) {
			items = append(items, i)
		}
	}
	return items
}

// Hash returns a hash of the state's item set, independent of insertion
// order.
func (s *State) Hash() string {
	keys := make([]string, 0, s.items.Size())
	s.items.Each(func(v interface{}) {
		keys = append(keys, v.(Item).hashKey())
	})
	sort.Strings(keys)
	h, err := structhash.Hash(struct{ Items []string }{keys}, 1)
	if err != nil {
		panic(err)
	}
	return h
}

// Equals compares two states for equal item sets.
func (s *State) Equals(other *State) bool {
	return other != nil && s.items.Equals(other.items)
}

func (s *State) String() string {
	return fmt.Sprintf("(state | [%d])", s.items.Size())
}

// Dump is a debugging helper, logging all items of the state.
func (s *State) Dump() {
	tracer().Debugf("--- state -----------------")
	for _, i := range s.Items() {
		tracer().Debugf("    %v", i)
	}
	tracer().Debugf("---------------------------")
}

// --- Machine ----------------------------------------------------------------

// Machine computes the states of an LR automaton on demand. For k = 0 items
// carry no lookahead and closures predict plainly; for k > 0 the machine
// computes FIRST_k sets once and closures predict items with lookahead words
// from FIRST_k(β·ℓ). No state is memoized and no table is built.
type Machine struct {
	g     *Grammar
	k     int
	first Env
}

// NewMachine creates an automaton machine for a start-separated grammar.
// It returns an error if the grammar is not start-separated.
func NewMachine(g *Grammar, k int) (*Machine, error) {
	if !g.IsStartSeparated() {
		return nil, fmt.Errorf("grammar %q is not start-separated (see Grammar.StartSeparated)", g.Name)
	}
	m := &Machine{g: g, k: k}
	if k > 0 {
		m.first = FirstSets(g, k)
	}
	return m, nil
}

// Grammar returns the machine's grammar.
func (m *Machine) Grammar() *Grammar {
	return m.g
}

// K returns the lookahead length of the machine.
func (m *Machine) K() int {
	return m.k
}

// FirstEnv returns the FIRST_k environment of the machine's grammar (nil for
// k = 0).
func (m *Machine) FirstEnv() Env {
	return m.first
}

// StartState returns the closure of the start rule's start item.
func (m *Machine) StartState() *State {
	start, _ := StartItem(m.g.RulesFor(m.g.Start())[0])
	return m.Closure(newState(start))
}

// Closure returns the least state containing S and, for every item with a
// non-terminal B after the dot, all start items for B — with lookahead
// words from FIRST_k(β·ℓ) when the machine runs with lookahead.
func (m *Machine) Closure(S *State) *State {
	C := S.items.Copy()
	C.IterateOnce()
	for C.Next() {
		item := C.Item().(Item)
		B := item.PeekSymbol()
		if B == nil || B.IsTerminal() {
			continue
		}
		if m.k == 0 {
			for _, r := range m.g.RulesFor(B) {
				C.Add(Item{rule: r})
			}
			continue
		}
		beta := append(append([]*Symbol{}, item.Rest()[1:]...), item.la...)
		lookaheads := FirstOfSeq(FirstK{K: m.k}, m.first, beta)
		for _, w := range lookaheads.Words() {
			for _, r := range m.g.RulesFor(B) {
				C.Add(Item{rule: r, la: w})
			}
		}
	}
	return &State{items: C}
}

// GotoSymbol computes the closed successor state for a transition on a
// grammar symbol (terminal or non-terminal).
func (m *Machine) GotoSymbol(S *State, A *Symbol) *State {
	gotoset := newState()
	for _, i := range S.Items() {
		if i.PeekSymbol() == A {
			gotoset.items.Add(i.Advance())
		}
	}
	next := m.Closure(gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", S, A, next)
	return next
}

// GotoToken computes the closed successor state for shifting an input token,
// advancing every item with an eq-matching terminal after the dot.
func (m *Machine) GotoToken(S *State, tok chomp.Token, eq TokenEq) *State {
	gotoset := newState()
	for _, i := range S.Items() {
		if A := i.PeekSymbol(); A != nil && A.IsTerminal() && eq(A, tok) {
			gotoset.items.Add(i.Advance())
		}
	}
	return m.Closure(gotoset)
}
