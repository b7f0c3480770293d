package scanner

import (
	"fmt"
	"unicode/utf8"

	"github.com/npillmayer/chomp"
	"github.com/npillmayer/chomp/regexp"
)

// Action turns a recognized lexeme input[start:end] into a token, returning
// the position where scanning is to resume. Resuming past end is legal and
// is how whitespace and comments are expressed: their actions call
// sc.ScanOne(input, end) instead of producing a token themselves.
type Action func(sc *Scan, input string, start, end int) (chomp.Token, int, error)

// LexRule pairs a regular expression with the action to fire once the
// expression has matched a maximal lexeme.
type LexRule struct {
	Pattern regexp.Expr
	Action  Action
}

// Rule creates a lex rule.
func Rule(pattern regexp.Expr, action Action) LexRule {
	return LexRule{Pattern: pattern, Action: action}
}

// ScanError is returned when no rule matched a lexeme at the current
// position. It carries the unconsumed rest of the input.
type ScanError struct {
	Suffix string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("no lexeme found: %q", e.Suffix)
}

// Scan is a scanner specification: an ordered list of lex rules. The zero
// Scan has no rules and fails on any non-empty input.
type Scan struct {
	spec []LexRule
}

// NewScan creates a scanner from a list of rules. Rule order is significant:
// among rules accepting an equally long lexeme, the first one wins.
func NewScan(rules ...LexRule) *Scan {
	return &Scan{spec: rules}
}

// A match remembers the most recent rule acceptance during one munch.
type match struct {
	action Action
	final  int
}

// ScanOne scans a single token starting at byte position i. It advances the
// parallel rule state symbol by symbol until all rules are dead or the input
// is exhausted, then fires the action of the last (and among ties, first)
// accepting rule. Without any acceptance a *ScanError is returned.
func (sc *Scan) ScanOne(input string, i int) (chomp.Token, int, error) {
	state := make([]LexRule, len(sc.spec))
	copy(state, sc.spec)
	j := i
	var last *match
	for j < len(input) && len(state) > 0 {
		c, w := utf8.DecodeRuneInString(input[j:])
		next := state[:0]
		for _, rule := range state {
			if d := regexp.Derivative(c, rule.Pattern); !regexp.IsNull(d) {
				next = append(next, LexRule{Pattern: d, Action: rule.Action})
			}
		}
		state = next
		j += w
		for _, rule := range state {
			if regexp.AcceptsEmpty(rule.Pattern) {
				last = &match{action: rule.Action, final: j}
				break
			}
		}
	}
	if last == nil {
		tracer().Debugf("scanner stuck at position %d", i)
		return nil, i, &ScanError{Suffix: input[i:]}
	}
	return last.action(sc, input, i, last.final)
}

// Tokens scans the complete input and collects all tokens. Scanning stops at
// the end of the input, at an EOF pseudo-token produced by an action, or at
// the first scan error (returning the tokens recognized so far).
func (sc *Scan) Tokens(input string) ([]chomp.Token, error) {
	var toks []chomp.Token
	i := 0
	for i < len(input) {
		tok, next, err := sc.ScanOne(input, i)
		if err != nil {
			return toks, err
		}
		if tok.TokType() == EOF {
			break
		}
		toks = append(toks, tok)
		i = next
	}
	return toks, nil
}

// Stream drives a Scan over a fixed input, implementing the Tokenizer
// interface. After the input is exhausted (or after a scan error has been
// handed to the error handler), NextToken returns EOF tokens.
type Stream struct {
	scan  *Scan
	input string
	pos   int
	Error func(error)
}

var _ Tokenizer = (*Stream)(nil)

// Tokenizer creates a token stream over input.
func (sc *Scan) Tokenizer(input string) *Stream {
	return &Stream{scan: sc, input: input, Error: logError}
}

// SetErrorHandler sets an error handler for the scanner.
func (s *Stream) SetErrorHandler(h func(error)) {
	if h == nil {
		s.Error = logError
		return
	}
	s.Error = h
}

// NextToken is part of the Tokenizer interface.
func (s *Stream) NextToken() chomp.Token {
	if s.pos >= len(s.input) {
		return MakeDefaultToken(EOF, "", chomp.Span{uint64(s.pos), uint64(s.pos)})
	}
	tok, next, err := s.scan.ScanOne(s.input, s.pos)
	if err != nil {
		s.Error(err)
		s.pos = len(s.input)
		return MakeDefaultToken(EOF, "", chomp.Span{uint64(s.pos), uint64(s.pos)})
	}
	s.pos = next
	return tok
}

// --- Pre-defined actions ---------------------------------------------------

// Emit wraps the lexeme into a DefaultToken of the given type.
func Emit(typ chomp.TokType) Action {
	return func(sc *Scan, input string, start, end int) (chomp.Token, int, error) {
		return MakeDefaultToken(typ, input[start:end], chomp.Span{uint64(start), uint64(end)}), end, nil
	}
}

// EmitValue wraps the lexeme into a DefaultToken of the given type, with a
// value converted from the lexeme text.
func EmitValue(typ chomp.TokType, conv func(lexeme string) interface{}) Action {
	return func(sc *Scan, input string, start, end int) (chomp.Token, int, error) {
		t := MakeDefaultToken(typ, input[start:end], chomp.Span{uint64(start), uint64(end)})
		t.Val = conv(input[start:end])
		return t, end, nil
	}
}

// Discard ignores the lexeme and rescans at its end position. At the end of
// the input it produces an EOF pseudo-token instead.
func Discard(sc *Scan, input string, start, end int) (chomp.Token, int, error) {
	if end < len(input) {
		return sc.ScanOne(input, end)
	}
	return MakeDefaultToken(EOF, "", chomp.Span{uint64(end), uint64(end)}), end, nil
}
