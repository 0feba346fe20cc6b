package algebra

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// maxExpand bounds the integer power up to which a sum is multiplied out.
const maxExpand = 16

// maxFoldExp bounds the integer power folded into an exact coefficient.
const maxFoldExp = 1024

// factor is base^exp inside a monomial. base is canonical and never a Mul.
type factor struct {
	base Expr
	exp  *big.Rat
}

// term is coeff times a product of factors sorted by base.
type term struct {
	coeff   *big.Rat
	factors []factor
}

func (t term) key() string {
	parts := make([]string, len(t.factors))
	for i, f := range t.factors {
		parts[i] = f.base.String() + "^" + f.exp.RatString()
	}
	return strings.Join(parts, "*")
}

// poly is a sum of terms with distinct monomials and nonzero coefficients.
type poly []term

// Simplify returns the canonical form of e: products and small positive
// integer powers of sums are expanded, like factors merge into powers, like
// terms are collected, and functions of exact constants fold where the result
// is exact (sin 0, cos 0, tan 0, exp 0, log 1).
func Simplify(e Expr) Expr { return build(canon(e)) }

func canon(e Expr) poly {
	switch v := e.(type) {
	case *Num:
		return constant(v.val)
	case *Sym:
		return atom(v)
	case *Func:
		return funcPoly(v.name, build(canon(v.arg)))
	case *Add:
		var out poly
		for _, t := range v.terms {
			out = append(out, canon(t)...)
		}
		return collect(out)
	case *Mul:
		coeff := new(big.Rat).Set(v.coeff)
		return canonProduct(coeff, flattenMul(v, coeff))
	case *Pow:
		return powPoly(canon(v.base), build(canon(v.exp)))
	}
	panic(fmt.Sprintf("algebra: unknown expression %T", e))
}

// flattenMul lists the factors of nested products, folding their
// coefficients into coeff.
func flattenMul(m *Mul, coeff *big.Rat) []Expr {
	var out []Expr
	for _, f := range m.factors {
		if inner, ok := f.(*Mul); ok {
			coeff.Mul(coeff, inner.coeff)
			out = append(out, flattenMul(inner, coeff)...)
			continue
		}
		out = append(out, f)
	}
	return out
}

// canonProduct multiplies factors out. Numeric powers of the same
// multi-term sum are merged first, so (a+b)·(a+b)^-1 is 1 rather than a
// distributed sum of quotients.
func canonProduct(coeff *big.Rat, factors []Expr) poly {
	type sumPower struct {
		base poly
		exp  *big.Rat
	}
	sums := make(map[string]*sumPower)
	var (
		order []string
		rest  []poly
	)
	for _, f := range factors {
		base, exp := f, ratOne
		if p, ok := f.(*Pow); ok {
			n, isNum := build(canon(p.exp)).(*Num)
			if !isNum {
				rest = append(rest, canon(f))
				continue
			}
			base, exp = p.base, n.val
		}
		b := canon(base)
		if len(b) < 2 {
			rest = append(rest, canon(f))
			continue
		}
		k := build(b).String()
		if sp, seen := sums[k]; seen {
			sp.exp = new(big.Rat).Add(sp.exp, exp)
			continue
		}
		sums[k] = &sumPower{base: b, exp: new(big.Rat).Set(exp)}
		order = append(order, k)
	}

	out := constant(coeff)
	for _, p := range rest {
		out = mulPoly(out, p)
	}
	for _, k := range order {
		sp := sums[k]
		out = mulPoly(out, powPoly(sp.base, &Num{val: sp.exp}))
	}
	return out
}

func constant(r *big.Rat) poly {
	if r.Sign() == 0 {
		return nil
	}
	return poly{{coeff: new(big.Rat).Set(r)}}
}

func atom(e Expr) poly {
	return atomPow(e, ratOne)
}

func atomPow(base Expr, exp *big.Rat) poly {
	return poly{{
		coeff:   new(big.Rat).Set(ratOne),
		factors: []factor{{base: base, exp: new(big.Rat).Set(exp)}},
	}}
}

func funcPoly(name string, arg Expr) poly {
	if n, ok := arg.(*Num); ok {
		switch name {
		case FuncSin, FuncTan:
			if n.val.Sign() == 0 {
				return nil
			}
		case FuncCos, FuncExp:
			if n.val.Sign() == 0 {
				return constant(ratOne)
			}
		case FuncLog:
			if n.val.Cmp(ratOne) == 0 {
				return nil
			}
		}
	}
	return atom(&Func{name: name, arg: arg})
}

// lessKey orders monomials lexically with the constant term last.
func lessKey(a, b string) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	return a < b
}

func collect(p poly) poly {
	index := make(map[string]int, len(p))
	keys := make([]string, 0, len(p))
	var out poly
	for _, t := range p {
		k := t.key()
		if i, ok := index[k]; ok {
			out[i].coeff = new(big.Rat).Add(out[i].coeff, t.coeff)
			continue
		}
		index[k] = len(out)
		keys = append(keys, k)
		out = append(out, term{coeff: new(big.Rat).Set(t.coeff), factors: t.factors})
	}

	type keyed struct {
		key string
		t   term
	}
	kept := make([]keyed, 0, len(out))
	for i, t := range out {
		if t.coeff.Sign() != 0 {
			kept = append(kept, keyed{key: keys[i], t: t})
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return lessKey(kept[i].key, kept[j].key) })

	res := make(poly, len(kept))
	for i, k := range kept {
		res[i] = k.t
	}
	return res
}

func mulPoly(a, b poly) poly {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	var out poly
	for _, x := range a {
		for _, y := range b {
			t := term{
				coeff:   new(big.Rat).Mul(x.coeff, y.coeff),
				factors: append(append([]factor(nil), x.factors...), y.factors...),
			}
			out = append(out, normalize(t)...)
		}
	}
	return collect(out)
}

// normalize merges equal bases, drops zero exponents, folds exact numeric
// powers into the coefficient and re-expands sums raised to small positive
// integer powers.
func normalize(t term) poly {
	if t.coeff.Sign() == 0 {
		return nil
	}

	index := make(map[string]int, len(t.factors))
	var merged []factor
	for _, f := range t.factors {
		k := f.base.String()
		if i, ok := index[k]; ok {
			merged[i].exp = new(big.Rat).Add(merged[i].exp, f.exp)
			continue
		}
		index[k] = len(merged)
		merged = append(merged, factor{base: f.base, exp: new(big.Rat).Set(f.exp)})
	}

	coeff := new(big.Rat).Set(t.coeff)
	var kept []factor
	var expand []poly
	for _, f := range merged {
		if f.exp.Sign() == 0 {
			continue
		}
		n, small := smallInt(f.exp, maxFoldExp)
		switch b := f.base.(type) {
		case *Num:
			if b.val.Cmp(ratOne) == 0 {
				continue
			}
			if b.val.Sign() == 0 && f.exp.Sign() > 0 {
				return nil
			}
			if small && b.val.Sign() != 0 {
				coeff.Mul(coeff, ratPow(b.val, n))
				continue
			}
		case *Add:
			if small && n > 0 && n <= maxExpand {
				expand = append(expand, powPoly(canon(b), &Num{val: f.exp}))
				continue
			}
		}
		kept = append(kept, f)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].base.String() < kept[j].base.String() })

	out := poly{{coeff: coeff, factors: kept}}
	for _, p := range expand {
		out = mulPoly(out, p)
	}
	return out
}

func powPoly(base poly, exp Expr) poly {
	n, ok := exp.(*Num)
	if !ok {
		b := build(base)
		if one, isNum := b.(*Num); isNum && one.val.Cmp(ratOne) == 0 {
			return constant(ratOne)
		}
		return atom(&Pow{base: b, exp: exp})
	}

	r := n.val
	if r.Sign() == 0 {
		return constant(ratOne)
	}
	k, small := smallInt(r, maxFoldExp)

	switch len(base) {
	case 0:
		if r.Sign() > 0 {
			return nil
		}
		return atomPow(Int(0), r)
	case 1:
		t := base[0]
		if small {
			out := term{coeff: ratPow(t.coeff, k)}
			for _, f := range t.factors {
				out.factors = append(out.factors, factor{base: f.base, exp: new(big.Rat).Mul(f.exp, r)})
			}
			return normalize(out)
		}
		if len(t.factors) == 0 {
			return atomPow(&Num{val: t.coeff}, r)
		}
		if t.coeff.Cmp(ratOne) == 0 && len(t.factors) == 1 && t.factors[0].exp.Cmp(ratOne) == 0 {
			return atomPow(t.factors[0].base, r)
		}
		return atomPow(build(base), r)
	}

	if small && k > 0 && k <= maxExpand {
		out := base
		for i := int64(1); i < k; i++ {
			out = mulPoly(out, base)
		}
		return out
	}
	return atomPow(build(base), r)
}

func build(p poly) Expr {
	switch len(p) {
	case 0:
		return Int(0)
	case 1:
		return buildTerm(p[0])
	}
	terms := make([]Expr, len(p))
	for i, t := range p {
		terms[i] = buildTerm(t)
	}
	return &Add{terms: terms}
}

func buildTerm(t term) Expr {
	if len(t.factors) == 0 {
		return &Num{val: new(big.Rat).Set(t.coeff)}
	}
	fs := make([]Expr, len(t.factors))
	for i, f := range t.factors {
		if f.exp.Cmp(ratOne) == 0 {
			fs[i] = f.base
		} else {
			fs[i] = &Pow{base: f.base, exp: &Num{val: new(big.Rat).Set(f.exp)}}
		}
	}
	if t.coeff.Cmp(ratOne) == 0 && len(fs) == 1 {
		return fs[0]
	}
	return &Mul{coeff: new(big.Rat).Set(t.coeff), factors: fs}
}

// smallInt returns r as an int64 when r is an integer with |r| <= limit.
func smallInt(r *big.Rat, limit int64) (int64, bool) {
	if !r.IsInt() {
		return 0, false
	}
	n := r.Num()
	if !n.IsInt64() {
		return 0, false
	}
	v := n.Int64()
	if v > limit || v < -limit {
		return 0, false
	}
	return v, true
}

// ratPow returns r^n. r must be nonzero when n is negative.
func ratPow(r *big.Rat, n int64) *big.Rat {
	if n < 0 {
		r = new(big.Rat).Inv(r)
		n = -n
	}
	e := big.NewInt(n)
	num := new(big.Int).Exp(r.Num(), e, nil)
	den := new(big.Int).Exp(r.Denom(), e, nil)
	return new(big.Rat).SetFrac(num, den)
}
