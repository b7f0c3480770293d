package regexp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseCases(t *testing.T) {
	assert.False(t, Matches(Null{}, ""))
	assert.False(t, Matches(Null{}, "a"))

	assert.True(t, Matches(Epsilon{}, ""))
	assert.False(t, Matches(Epsilon{}, "a"))

	assert.True(t, Matches(Sym('a'), "a"))
	assert.False(t, Matches(Sym('a'), "b"))
	assert.False(t, Matches(Sym('a'), "aa"))
}

func TestConnectives(t *testing.T) {
	assert.False(t, Matches(Concat{Null{}, Null{}}, ""))
	assert.False(t, Matches(Concat{Null{}, Epsilon{}}, ""))
	assert.False(t, Matches(Concat{Sym('a'), Null{}}, "a"))
	assert.True(t, Matches(Concat{Epsilon{}, Sym('a')}, "a"))
	assert.True(t, Matches(Concat{Epsilon{}, Epsilon{}}, ""))
	assert.True(t, Matches(Concat{Sym('a'), Sym('b')}, "ab"))
	assert.False(t, Matches(Concat{Sym('a'), Sym('b')}, "ba"))

	assert.False(t, Matches(Alternative{Null{}, Null{}}, ""))
	assert.True(t, Matches(Alternative{Null{}, Epsilon{}}, ""))
	assert.True(t, Matches(Alternative{Sym('a'), Null{}}, "a"))
	assert.True(t, Matches(Alternative{Epsilon{}, Sym('a')}, "a"))
	assert.True(t, Matches(Alternative{Epsilon{}, Sym('a')}, ""))
	assert.True(t, Matches(Alternative{Sym('a'), Sym('b')}, "a"))
	assert.True(t, Matches(Alternative{Sym('a'), Sym('b')}, "b"))
	assert.False(t, Matches(Alternative{Sym('a'), Sym('b')}, "ab"))

	assert.True(t, Matches(Repeat{Null{}}, ""))
	assert.False(t, Matches(Repeat{Null{}}, "a"))
	assert.True(t, Matches(Repeat{Epsilon{}}, ""))
	assert.False(t, Matches(Repeat{Epsilon{}}, "a"))
	assert.True(t, Matches(Repeat{Sym('a')}, "a"))
	assert.True(t, Matches(Repeat{Sym('a')}, "aaaa"))
	assert.True(t, Matches(Repeat{Sym('a')}, ""))
	assert.False(t, Matches(Repeat{Sym('a')}, "b"))
	assert.False(t, Matches(Repeat{Sym('a')}, "aaaab"))
}

func TestSmartConstructors(t *testing.T) {
	assert.Equal(t, Expr(Null{}), Cat(Null{}, Null{}))
	assert.Equal(t, Expr(Null{}), Cat(Null{}, Epsilon{}))
	assert.Equal(t, Expr(Null{}), Cat(Sym('a'), Null{}))
	assert.Equal(t, Sym('a'), Cat(Sym('a'), Epsilon{}))
	assert.Equal(t,
		Expr(Concat{Sym('a'), Concat{Sym('b'), Sym('c')}}),
		Cat(Cat(Sym('a'), Sym('b')), Sym('c')))

	assert.Equal(t, Expr(Null{}), Alt(Null{}, Null{}))
	assert.Equal(t, Expr(Epsilon{}), Alt(Null{}, Epsilon{}))
	assert.Equal(t, Sym('a'), Alt(Sym('a'), Null{}))
	assert.Equal(t, Expr(Alternative{Sym('a'), Epsilon{}}), Alt(Sym('a'), Epsilon{}))
	assert.Equal(t,
		Expr(Alternative{Sym('a'), Alternative{Sym('b'), Sym('c')}}),
		Alt(Alt(Sym('a'), Sym('b')), Sym('c')))

	assert.Equal(t, Expr(Epsilon{}), Star(Null{}))
	assert.Equal(t, Expr(Epsilon{}), Star(Epsilon{}))
	assert.Equal(t, Expr(Repeat{Sym('a')}), Star(Sym('a')))
	assert.Equal(t, Expr(Repeat{Sym('a')}), Star(Star(Sym('a'))))
}

// The smart constructors must preserve the language of the raw terms.
func TestConstructorsPreserveLanguage(t *testing.T) {
	inputs := []string{"", "a", "b", "ab", "ba", "aa", "aab", "abab"}
	pairs := []struct {
		raw, smart Expr
	}{
		{Concat{Null{}, Sym('a')}, Cat(Null{}, Sym('a'))},
		{Concat{Epsilon{}, Sym('a')}, Cat(Epsilon{}, Sym('a'))},
		{Concat{Concat{Sym('a'), Sym('b')}, Sym('a')}, Cat(Cat(Sym('a'), Sym('b')), Sym('a'))},
		{Alternative{Null{}, Sym('b')}, Alt(Null{}, Sym('b'))},
		{Alternative{Alternative{Sym('a'), Sym('b')}, Epsilon{}}, Alt(Alt(Sym('a'), Sym('b')), Epsilon{})},
		{Repeat{Repeat{Sym('a')}}, Star(Star(Sym('a')))},
		{Repeat{Concat{Sym('a'), Sym('b')}}, Star(Cat(Sym('a'), Sym('b')))},
	}
	for _, pair := range pairs {
		for _, input := range inputs {
			assert.Equal(t, Matches(pair.raw, input), Matches(pair.smart, input),
				"languages differ for %v vs %v on %q", pair.raw, pair.smart, input)
		}
	}
}

// Matches(r, s) must equal nullability of the folded derivative.
func TestMatchesIsFoldedDerivative(t *testing.T) {
	exprs := []Expr{
		Str("if"),
		Plus(Class("0123456789")),
		Cat(CharRange('a', 'z'), Star(Alt(CharRange('a', 'z'), CharRange('0', '9')))),
		AltAll(Str("<="), Str(">="), Str("==")),
		Opt(Sym('-')),
	}
	inputs := []string{"", "if", "i", "iff", "42", "4x", "a1z", "<=", "<", "-", "--"}
	for _, r := range exprs {
		for _, input := range inputs {
			folded := r
			dead := false
			for _, c := range input {
				folded = Derivative(c, folded)
				if IsNull(folded) {
					dead = true
					break
				}
			}
			want := !dead && AcceptsEmpty(folded)
			assert.Equal(t, want, Matches(r, input), "pattern %v on %q", r, input)
		}
	}
}

func TestHelpers(t *testing.T) {
	digit := CharRange('0', '9')
	number := Alt(digit, Cat(CharRange('1', '9'), Plus(digit)))
	assert.True(t, Matches(number, "0"))
	assert.True(t, Matches(number, "12"))
	assert.True(t, Matches(number, "120"))
	assert.False(t, Matches(number, "012"))
	assert.False(t, Matches(number, ""))

	assert.True(t, Matches(Str("return"), "return"))
	assert.False(t, Matches(Str("return"), "retur"))
	assert.True(t, Matches(Class("+-*/"), "*"))
	assert.False(t, Matches(Class("+-*/"), "%"))
	assert.True(t, Matches(Opt(Sym('-')), ""))
	assert.True(t, Matches(Opt(Sym('-')), "-"))
	assert.False(t, Matches(Plus(Sym('a')), ""))
	assert.True(t, Matches(Plus(Sym('a')), "aaa"))
}

// A keyword-ish composite pattern, close to what a scanner drives.
func TestCompositePattern(t *testing.T) {
	digit := CharRange('0', '9')
	number := Alt(digit, Cat(CharRange('1', '9'), Plus(digit)))
	alpha := Alt(CharRange('a', 'z'), CharRange('A', 'Z'))
	identifier := Cat(alpha, Star(Alt(alpha, digit)))
	operator := Class("+-*/")
	relation := AltAll(Str("<="), Str(">="), Str("=="), Str("!="))
	ignore := Opt(Plus(Class(" \t\n")))

	elems := []Expr{
		Str("print"), Sym('('), Str("if"), identifier, relation, number,
		Str("then"), identifier, Str("else"), identifier, operator, number,
		Sym(')'), Sym(';'),
	}
	pattern := []Expr{ignore}
	for _, e := range elems {
		pattern = append(pattern, e, ignore)
	}
	p := CatAll(pattern...)

	assert.True(t, Matches(p, "print(if a >= 1 then a else a + 1);"))
	assert.True(t, Matches(p, "print(if abc0 != 1 then efg1 else hij2 - 1);"))
	assert.True(t, Matches(p, "print (   if   a >= 1   then a   else a + 1 \t ) \n ;"))
	assert.True(t, Matches(p, "print(ifa >= 1thena elsea + 1);"))
	assert.False(t, Matches(p, "print(ifa >= 1thenelsea + 1);"))
	assert.False(t, Matches(p, "pri nt(if a >= 1 then a else a + 1);"))
	assert.False(t, Matches(p, "print(if 1aa >= 1 then a else a + 1);"))
	assert.False(t, Matches(p, "print(if a >= 1 then a else a ! 1);"))
	assert.False(t, Matches(p, "print if a >= 1 then a else a + 1;"))
	assert.False(t, Matches(p, "print(if a >= 1 then a else a + 1)"))
}
