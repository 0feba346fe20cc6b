package algebra

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Expr is a node of an expression tree. Implementations are immutable.
type Expr interface {
	String() string
	isExpr()
}

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

func Int(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// Frac returns a/b. It panics if b is zero.
func Frac(a, b int64) *Num {
	if b == 0 {
		panic("algebra: zero denominator")
	}
	return &Num{val: big.NewRat(a, b)}
}

// Float returns the exact rational value of f. It panics if f is NaN or Inf.
func Float(f float64) *Num {
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		panic(fmt.Sprintf("algebra: non-finite constant %g", f))
	}
	return &Num{val: r}
}

// Decimal returns the shortest decimal that rounds to f, as an exact
// rational: Decimal(0.1) is 1/10 where Float(0.1) is the binary value.
func Decimal(f float64) *Num {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(fmt.Sprintf("algebra: non-finite constant %g", f))
	}
	r, _ := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
	return &Num{val: r}
}

func (n *Num) Rat() *big.Rat { return new(big.Rat).Set(n.val) }
func (n *Num) IsInt() bool   { return n.val.IsInt() }
func (n *Num) Sign() int     { return n.val.Sign() }

func (n *Num) Float64() float64 {
	f, _ := n.val.Float64()
	return f
}

func (n *Num) String() string { return n.val.RatString() }
func (*Num) isExpr()          {}

// Sym is a named variable.
type Sym struct{ name string }

func Symbol(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Name() string   { return s.name }
func (s *Sym) String() string { return s.name }
func (*Sym) isExpr()          {}

// Add is a sum of terms.
type Add struct{ terms []Expr }

func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }
func (*Add) isExpr()         {}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range a.terms {
		s := t.String()
		if i > 0 {
			if neg, ok := negated(t); ok {
				b.WriteString(" - ")
				s = neg.String()
			} else {
				b.WriteString(" + ")
			}
		}
		b.WriteString(s)
	}
	return b.String()
}

// negated returns -t when t carries a negative leading coefficient.
func negated(t Expr) (Expr, bool) {
	switch v := t.(type) {
	case *Num:
		if v.val.Sign() < 0 {
			return &Num{val: new(big.Rat).Neg(v.val)}, true
		}
	case *Mul:
		if v.coeff.Sign() < 0 {
			return &Mul{coeff: new(big.Rat).Neg(v.coeff), factors: v.factors}, true
		}
	}
	return nil, false
}

// Mul is a rational coefficient times a product of factors.
type Mul struct {
	coeff   *big.Rat
	factors []Expr
}

func (m *Mul) Coeff() *Num { return &Num{val: new(big.Rat).Set(m.coeff)} }

func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }
func (*Mul) isExpr()           {}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return m.coeff.RatString()
	}
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		s := f.String()
		if _, ok := f.(*Add); ok {
			s = "(" + s + ")"
		}
		parts[i] = s
	}
	body := strings.Join(parts, "*")
	switch {
	case m.coeff.Cmp(ratOne) == 0:
		return body
	case m.coeff.Cmp(ratMinusOne) == 0:
		return "-" + body
	}
	return m.coeff.RatString() + "*" + body
}

// Pow is base^exp.
type Pow struct{ base, exp Expr }

func (p *Pow) Base() Expr { return p.base }
func (p *Pow) Exp() Expr  { return p.exp }
func (*Pow) isExpr()      {}

func (p *Pow) String() string {
	base := p.base.String()
	switch b := p.base.(type) {
	case *Add, *Mul, *Pow:
		base = "(" + base + ")"
	case *Num:
		if b.val.Sign() < 0 || !b.val.IsInt() {
			base = "(" + base + ")"
		}
	}
	exp := p.exp.String()
	switch e := p.exp.(type) {
	case *Sym:
	case *Num:
		if e.val.Sign() < 0 || !e.val.IsInt() {
			exp = "(" + exp + ")"
		}
	default:
		exp = "(" + exp + ")"
	}
	return base + "^" + exp
}

// Func is an elementary function applied to a single argument.
type Func struct {
	name string
	arg  Expr
}

// Function names understood by Diff, Eval, Compile and Parse.
const (
	FuncSin = "sin"
	FuncCos = "cos"
	FuncTan = "tan"
	FuncExp = "exp"
	FuncLog = "log"
)

var unaryFuncs = map[string]func(float64) float64{
	FuncSin: math.Sin,
	FuncCos: math.Cos,
	FuncTan: math.Tan,
	FuncExp: math.Exp,
	FuncLog: math.Log,
}

func (f *Func) Name() string   { return f.name }
func (f *Func) Arg() Expr      { return f.arg }
func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }
func (*Func) isExpr()          {}

var (
	ratOne      = big.NewRat(1, 1)
	ratMinusOne = big.NewRat(-1, 1)
	ratHalf     = big.NewRat(1, 2)
)

func newMul(factors ...Expr) *Mul {
	return &Mul{coeff: new(big.Rat).Set(ratOne), factors: factors}
}

// Sum returns the canonical form of the sum of terms.
func Sum(terms ...Expr) Expr { return Simplify(&Add{terms: terms}) }

// Product returns the canonical form of the product of factors.
func Product(factors ...Expr) Expr { return Simplify(newMul(factors...)) }

// Power returns the canonical form of base^exp.
func Power(base, exp Expr) Expr { return Simplify(&Pow{base: base, exp: exp}) }

func Neg(e Expr) Expr { return Product(Int(-1), e) }

// Minus returns a - b.
func Minus(a, b Expr) Expr { return Sum(a, newMul(Int(-1), b)) }

// Quo returns a / b.
func Quo(a, b Expr) Expr { return Product(a, &Pow{base: b, exp: Int(-1)}) }

func Sin(e Expr) Expr  { return Simplify(&Func{name: FuncSin, arg: e}) }
func Cos(e Expr) Expr  { return Simplify(&Func{name: FuncCos, arg: e}) }
func Tan(e Expr) Expr  { return Simplify(&Func{name: FuncTan, arg: e}) }
func Exp(e Expr) Expr  { return Simplify(&Func{name: FuncExp, arg: e}) }
func Log(e Expr) Expr  { return Simplify(&Func{name: FuncLog, arg: e}) }
func Sqrt(e Expr) Expr { return Power(e, Frac(1, 2)) }

// Equal reports whether a and b have the same canonical form.
func Equal(a, b Expr) bool {
	return Simplify(a).String() == Simplify(b).String()
}

// IsZero reports whether e simplifies to the constant 0.
func IsZero(e Expr) bool {
	n, ok := Simplify(e).(*Num)
	return ok && n.val.Sign() == 0
}
