/*
Package scanner implements a maximum-munch scanner on top of package regexp.

A lex specification is a list of rules, each pairing a regular expression
with an action. The scanner drives all rules in parallel: it derives every
rule's expression by each consumed input symbol, remembers the last position
at which some rule accepted, and on exhaustion fires the action of the
earliest such rule. Rule order therefore decides ties, which is how keywords
win over identifiers.

An action receives the scanner itself plus the lexeme boundaries. Actions for
whitespace or comments call back into the scanner at their end position
instead of producing a token, and an action may tokenize its matched lexeme
with a second, subsidiary Scan (e.g. to unescape string literals).

Sub-package lexmach provides an alternative Tokenizer backend based on
lexmachine's compiled DFAs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"text/scanner"

	"github.com/npillmayer/chomp"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomp.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("chomp.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface. Parsers pull tokens from it one at a
// time; a token of type EOF signals the end of the input.
type Tokenizer interface {
	NextToken() chomp.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by the derivative
// scanner as well as the lexmachine backend. Clients are free to produce
// their own token types from lex actions.
type DefaultToken struct {
	kind   chomp.TokType
	lexeme string
	Val    interface{}
	span   chomp.Span
}

func MakeDefaultToken(typ chomp.TokType, lexeme string, span chomp.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() chomp.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() chomp.Span {
	return t.span
}

// CharTokens wraps every symbol of s into a token of its own, with the
// symbol's code point as token type. Character-level grammars use these as
// input, which makes tag equality coincide with character equality.
func CharTokens(s string) []chomp.Token {
	toks := make([]chomp.Token, 0, len(s))
	for i, c := range s {
		toks = append(toks, DefaultToken{
			kind:   chomp.TokType(c),
			lexeme: string(c),
			span:   chomp.Span{uint64(i), uint64(i + len(string(c)))},
		})
	}
	return toks
}
