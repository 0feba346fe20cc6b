package algebra

import "sort"

// Diff returns the canonical partial derivative of e with respect to the
// symbol named x.
func Diff(e Expr, x string) Expr {
	return Simplify(diff(Simplify(e), x))
}

func diff(e Expr, x string) Expr {
	switch v := e.(type) {
	case *Num:
		return Int(0)
	case *Sym:
		if v.name == x {
			return Int(1)
		}
		return Int(0)
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = diff(t, x)
		}
		return &Add{terms: terms}
	case *Mul:
		var terms []Expr
		for i, f := range v.factors {
			if !DependsOn(f, x) {
				continue
			}
			fs := append([]Expr(nil), v.factors...)
			fs[i] = diff(f, x)
			terms = append(terms, &Mul{coeff: v.coeff, factors: fs})
		}
		return &Add{terms: terms}
	case *Pow:
		db := diff(v.base, x)
		if !DependsOn(v.exp, x) {
			reduced := &Pow{base: v.base, exp: &Add{terms: []Expr{v.exp, Int(-1)}}}
			return newMul(v.exp, reduced, db)
		}
		// d(b^e) = b^e * (e' log b + e b'/b)
		de := diff(v.exp, x)
		inner := &Add{terms: []Expr{
			newMul(de, &Func{name: FuncLog, arg: v.base}),
			newMul(v.exp, db, &Pow{base: v.base, exp: Int(-1)}),
		}}
		return newMul(v, inner)
	case *Func:
		du := diff(v.arg, x)
		switch v.name {
		case FuncSin:
			return newMul(&Func{name: FuncCos, arg: v.arg}, du)
		case FuncCos:
			return newMul(Int(-1), &Func{name: FuncSin, arg: v.arg}, du)
		case FuncTan:
			sec2 := &Add{terms: []Expr{Int(1), &Pow{base: v, exp: Int(2)}}}
			return newMul(sec2, du)
		case FuncExp:
			return newMul(v, du)
		case FuncLog:
			return newMul(du, &Pow{base: v.arg, exp: Int(-1)})
		}
	}
	return Int(0)
}

// DependsOn reports whether the symbol x occurs in e.
func DependsOn(e Expr, x string) bool {
	switch v := e.(type) {
	case *Sym:
		return v.name == x
	case *Add:
		for _, t := range v.terms {
			if DependsOn(t, x) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if DependsOn(f, x) {
				return true
			}
		}
	case *Pow:
		return DependsOn(v.base, x) || DependsOn(v.exp, x)
	case *Func:
		return DependsOn(v.arg, x)
	}
	return false
}

// FreeSymbols returns the sorted names of all symbols in e.
func FreeSymbols(e Expr) []string {
	seen := map[string]struct{}{}
	collectSymbols(e, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}

// Gradient returns ∂e/∂x for each name in vars.
func Gradient(e Expr, vars []string) []Expr {
	out := make([]Expr, len(vars))
	for i, x := range vars {
		out[i] = Diff(e, x)
	}
	return out
}
