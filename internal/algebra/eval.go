package algebra

import (
	"fmt"
	"math"
)

// VectorFunc evaluates a list of expressions at a point. x must have one
// entry per compiled variable.
type VectorFunc func(x []float64) []float64

// ScalarFunc evaluates a single expression at a point.
type ScalarFunc func(x []float64) float64

// Subs replaces symbols by expressions and returns the canonical result.
func Subs(e Expr, env map[string]Expr) Expr {
	return Simplify(subs(e, env))
}

func subs(e Expr, env map[string]Expr) Expr {
	switch v := e.(type) {
	case *Sym:
		if r, ok := env[v.name]; ok {
			return r
		}
		return v
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = subs(t, env)
		}
		return &Add{terms: terms}
	case *Mul:
		fs := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			fs[i] = subs(f, env)
		}
		return &Mul{coeff: v.coeff, factors: fs}
	case *Pow:
		return &Pow{base: subs(v.base, env), exp: subs(v.exp, env)}
	case *Func:
		return &Func{name: v.name, arg: subs(v.arg, env)}
	}
	return e
}

// Eval computes e numerically. Every free symbol must appear in env.
func Eval(e Expr, env map[string]float64) (float64, error) {
	switch v := e.(type) {
	case *Num:
		return v.Float64(), nil
	case *Sym:
		x, ok := env[v.name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnboundSymbol, v.name)
		}
		return x, nil
	case *Add:
		sum := 0.0
		for _, t := range v.terms {
			x, err := Eval(t, env)
			if err != nil {
				return 0, err
			}
			sum += x
		}
		return sum, nil
	case *Mul:
		prod, _ := v.coeff.Float64()
		for _, f := range v.factors {
			x, err := Eval(f, env)
			if err != nil {
				return 0, err
			}
			prod *= x
		}
		return prod, nil
	case *Pow:
		b, err := Eval(v.base, env)
		if err != nil {
			return 0, err
		}
		x, err := Eval(v.exp, env)
		if err != nil {
			return 0, err
		}
		if b == 0 && x < 0 {
			return 0, fmt.Errorf("%w: division by zero in %s", ErrDomain, v)
		}
		r := math.Pow(b, x)
		if math.IsNaN(r) {
			return 0, fmt.Errorf("%w: %s at base %g", ErrDomain, v, b)
		}
		return r, nil
	case *Func:
		a, err := Eval(v.arg, env)
		if err != nil {
			return 0, err
		}
		if v.name == FuncLog && a <= 0 {
			return 0, fmt.Errorf("%w: log(%g)", ErrDomain, a)
		}
		fn, ok := unaryFuncs[v.name]
		if !ok {
			return 0, fmt.Errorf("%w: unknown function %s", ErrDomain, v.name)
		}
		return fn(a), nil
	}
	return 0, fmt.Errorf("algebra: cannot evaluate %T", e)
}

// Compile turns exprs into a closure over the positional variables vars.
// Symbols not listed in vars are rejected here rather than at call time.
func Compile(exprs []Expr, vars []string) (VectorFunc, error) {
	index, err := varIndex(vars)
	if err != nil {
		return nil, err
	}
	fns := make([]ScalarFunc, len(exprs))
	for i, e := range exprs {
		if fns[i], err = compile(e, index); err != nil {
			return nil, err
		}
	}
	return func(x []float64) []float64 {
		out := make([]float64, len(fns))
		for i, fn := range fns {
			out[i] = fn(x)
		}
		return out
	}, nil
}

// CompileScalar is Compile for a single expression.
func CompileScalar(e Expr, vars []string) (ScalarFunc, error) {
	index, err := varIndex(vars)
	if err != nil {
		return nil, err
	}
	return compile(e, index)
}

func varIndex(vars []string) (map[string]int, error) {
	index := make(map[string]int, len(vars))
	for i, name := range vars {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSymbol, name)
		}
		index[name] = i
	}
	return index, nil
}

func compile(e Expr, index map[string]int) (ScalarFunc, error) {
	switch v := e.(type) {
	case *Num:
		c := v.Float64()
		return func([]float64) float64 { return c }, nil
	case *Sym:
		i, ok := index[v.name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnboundSymbol, v.name)
		}
		return func(x []float64) float64 { return x[i] }, nil
	case *Add:
		fns, err := compileAll(v.terms, index)
		if err != nil {
			return nil, err
		}
		return func(x []float64) float64 {
			sum := 0.0
			for _, fn := range fns {
				sum += fn(x)
			}
			return sum
		}, nil
	case *Mul:
		fns, err := compileAll(v.factors, index)
		if err != nil {
			return nil, err
		}
		c, _ := v.coeff.Float64()
		return func(x []float64) float64 {
			prod := c
			for _, fn := range fns {
				prod *= fn(x)
			}
			return prod
		}, nil
	case *Pow:
		base, err := compile(v.base, index)
		if err != nil {
			return nil, err
		}
		if n, ok := v.exp.(*Num); ok {
			if k, small := smallInt(n.val, maxFoldExp); small {
				return func(x []float64) float64 { return intPow(base(x), k) }, nil
			}
			if n.val.Cmp(ratHalf) == 0 {
				return func(x []float64) float64 { return math.Sqrt(base(x)) }, nil
			}
		}
		exp, err := compile(v.exp, index)
		if err != nil {
			return nil, err
		}
		return func(x []float64) float64 { return math.Pow(base(x), exp(x)) }, nil
	case *Func:
		arg, err := compile(v.arg, index)
		if err != nil {
			return nil, err
		}
		fn, ok := unaryFuncs[v.name]
		if !ok {
			return nil, fmt.Errorf("algebra: unknown function %s", v.name)
		}
		return func(x []float64) float64 { return fn(arg(x)) }, nil
	}
	return nil, fmt.Errorf("algebra: cannot compile %T", e)
}

func compileAll(es []Expr, index map[string]int) ([]ScalarFunc, error) {
	fns := make([]ScalarFunc, len(es))
	for i, e := range es {
		fn, err := compile(e, index)
		if err != nil {
			return nil, err
		}
		fns[i] = fn
	}
	return fns, nil
}

func intPow(b float64, n int64) float64 {
	if n < 0 {
		return 1 / intPow(b, -n)
	}
	r := 1.0
	for n > 0 {
		if n&1 == 1 {
			r *= b
		}
		b *= b
		n >>= 1
	}
	return r
}
