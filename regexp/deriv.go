package regexp

import "unicode/utf8"

// IsNull checks for the exact empty-set term. On terms maintained by the
// smart constructors this correctly detects a dead state: a derivative chain
// that can never match again collapses to Null.
func IsNull(r Expr) bool {
	_, ok := r.(Null)
	return ok
}

// AcceptsEmpty tells whether the language of r contains the empty word.
func AcceptsEmpty(r Expr) bool {
	switch e := r.(type) {
	case Null:
		return false
	case Epsilon:
		return true
	case Symbol:
		return false
	case Concat:
		return AcceptsEmpty(e.Left) && AcceptsEmpty(e.Right)
	case Alternative:
		return AcceptsEmpty(e.Left) || AcceptsEmpty(e.Right)
	case Repeat:
		return true
	}
	panic("regexp: unknown expression type")
}

// Derivative produces the expression matching what r matches after it has
// consumed the symbol c (the Brzozowski derivative). All results are built
// with the smart constructors, so dead branches collapse to Null immediately.
func Derivative(c rune, r Expr) Expr {
	switch e := r.(type) {
	case Null, Epsilon:
		return Null{}
	case Symbol:
		if e.Sym == c {
			return Epsilon{}
		}
		return Null{}
	case Alternative:
		return Alt(Derivative(c, e.Left), Derivative(c, e.Right))
	case Concat:
		left := Cat(Derivative(c, e.Left), e.Right)
		if AcceptsEmpty(e.Left) {
			return Alt(left, Derivative(c, e.Right))
		}
		return Alt(left, Null{})
	case Repeat:
		return Cat(Derivative(c, e.Body), Repeat{Body: e.Body})
	}
	panic("regexp: unknown expression type")
}

// Matches reports whether r matches all of s. It folds Derivative over the
// input symbols, bailing out early when the expression dies, and finishes
// with a nullability check.
func Matches(r Expr, s string) bool {
	for i := 0; i < len(s); {
		c, w := utf8.DecodeRuneInString(s[i:])
		r = Derivative(c, r)
		if IsNull(r) {
			tracer().Debugf("expression dead after %q", s[:i+w])
			return false
		}
		i += w
	}
	return AcceptsEmpty(r)
}
