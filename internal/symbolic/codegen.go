package symbolic

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"strings"

	"github.com/san-kum/hamsim/internal/algebra"
	"github.com/san-kum/hamsim/internal/dynamo"
)

// GenerateGo emits a gofmt-formatted Go file in package pkg declaring
//
//	func funcName(q, p []float64) []float64
//
// which returns [dq/dt..., dp/dt...] for the current H.
func (h *Hamiltonian) GenerateGo(pkg, funcName string) (string, error) {
	const op = "symbolic.GenerateGo"
	exprs, err := h.rhs(op)
	if err != nil {
		return "", err
	}
	if !token.IsIdentifier(pkg) {
		return "", dynamo.Configf(op, "invalid package name %q", pkg)
	}
	if !token.IsIdentifier(funcName) {
		return "", dynamo.Configf(op, "invalid function name %q", funcName)
	}

	g := &goWriter{vars: map[string]string{}}
	for i := 0; i < h.n; i++ {
		g.vars[h.q[i].Name()] = fmt.Sprintf("q[%d]", i)
		g.vars[h.p[i].Name()] = fmt.Sprintf("p[%d]", i)
	}

	lines := make([]string, len(exprs))
	for i, e := range exprs {
		s, err := g.expr(e)
		if err != nil {
			return "", fmt.Errorf("%s: %w: %w", op, dynamo.ErrConfiguration, err)
		}
		lines[i] = s
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by hamsim derive; DO NOT EDIT.\n\npackage %s\n\n", pkg)
	if g.usesMath {
		buf.WriteString("import \"math\"\n\n")
	}
	fmt.Fprintf(&buf, "// %s returns d[q, p]/dt for H = %s.\n", funcName, h.h)
	fmt.Fprintf(&buf, "func %s(q, p []float64) []float64 {\n\treturn []float64{\n", funcName)
	for _, l := range lines {
		fmt.Fprintf(&buf, "%s,\n", l)
	}
	buf.WriteString("}\n}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("%s: format: %w", op, err)
	}
	return string(src), nil
}

type goWriter struct {
	vars     map[string]string
	usesMath bool
}

func (g *goWriter) expr(e algebra.Expr) (string, error) {
	switch v := e.(type) {
	case *algebra.Num:
		return goFloat(v.Float64()), nil
	case *algebra.Sym:
		s, ok := g.vars[v.Name()]
		if !ok {
			return "", fmt.Errorf("%w: %s", algebra.ErrUnboundSymbol, v.Name())
		}
		return s, nil
	case *algebra.Add:
		parts, err := g.all(v.Terms())
		if err != nil {
			return "", err
		}
		return "(" + strings.Join(parts, " + ") + ")", nil
	case *algebra.Mul:
		parts, err := g.all(v.Factors())
		if err != nil {
			return "", err
		}
		if c := v.Coeff().Float64(); c != 1 {
			parts = append([]string{goFloat(c)}, parts...)
		}
		return strings.Join(parts, "*"), nil
	case *algebra.Pow:
		base, err := g.expr(v.Base())
		if err != nil {
			return "", err
		}
		if n, ok := v.Exp().(*algebra.Num); ok {
			switch n.Float64() {
			case 2:
				return "(" + base + ")*(" + base + ")", nil
			case -1:
				return "1/(" + base + ")", nil
			case 0.5:
				g.usesMath = true
				return "math.Sqrt(" + base + ")", nil
			}
		}
		exp, err := g.expr(v.Exp())
		if err != nil {
			return "", err
		}
		g.usesMath = true
		return "math.Pow(" + base + ", " + exp + ")", nil
	case *algebra.Func:
		arg, err := g.expr(v.Arg())
		if err != nil {
			return "", err
		}
		g.usesMath = true
		return "math." + strings.ToUpper(v.Name()[:1]) + v.Name()[1:] + "(" + arg + ")", nil
	}
	return "", fmt.Errorf("cannot generate Go for %T", e)
}

func (g *goWriter) all(es []algebra.Expr) ([]string, error) {
	out := make([]string, len(es))
	for i, e := range es {
		s, err := g.expr(e)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// goFloat formats f as a float literal, parenthesized when negative.
func goFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	if f < 0 {
		return "(" + s + ")"
	}
	return s
}
