package algebra

import (
	"fmt"
	"math/big"
	"strings"
	"text/scanner"
)

// Parse reads an expression in conventional infix notation:
//
//	+ - * / ^ **   binary operators, ^ and ** right-associative
//	-x             unary minus
//	1.25, 3e-2     decimal constants, kept exact
//	sin(x)         sin cos tan exp log sqrt
//
// The result is canonical.
func Parse(src string) (e Expr, err error) {
	p := &parser{}
	p.s.Init(strings.NewReader(src))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.failf("%s", msg)
	}

	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(parseError)
			if !ok {
				panic(r)
			}
			e, err = nil, perr.err
		}
	}()

	p.next()
	e = p.expr()
	if p.tok != scanner.EOF {
		p.failf("unexpected %q", p.s.TokenText())
	}
	return Simplify(e), nil
}

// MustParse is Parse for trusted literals. It panics on error.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

type parseError struct{ err error }

type parser struct {
	s   scanner.Scanner
	tok rune
}

func (p *parser) failf(format string, args ...any) {
	pos := p.s.Position
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	msg := fmt.Sprintf(format, args...)
	panic(parseError{err: fmt.Errorf("%w: %d:%d: %s", ErrSyntax, pos.Line, pos.Column, msg)})
}

func (p *parser) next() {
	p.tok = p.s.Scan()
	if p.tok == '*' && p.s.Peek() == '*' {
		p.s.Next()
		p.tok = '^'
	}
}

func (p *parser) expect(tok rune) {
	if p.tok != tok {
		p.failf("expected %q, found %s", tok, p.describe())
	}
	p.next()
}

func (p *parser) describe() string {
	if p.tok == scanner.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", p.s.TokenText())
}

func (p *parser) expr() Expr {
	terms := []Expr{p.term()}
	for p.tok == '+' || p.tok == '-' {
		op := p.tok
		p.next()
		t := p.term()
		if op == '-' {
			t = newMul(Int(-1), t)
		}
		terms = append(terms, t)
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return &Add{terms: terms}
}

func (p *parser) term() Expr {
	factors := []Expr{p.unary()}
	for p.tok == '*' || p.tok == '/' {
		op := p.tok
		p.next()
		f := p.unary()
		if op == '/' {
			f = &Pow{base: f, exp: Int(-1)}
		}
		factors = append(factors, f)
	}
	if len(factors) == 1 {
		return factors[0]
	}
	return newMul(factors...)
}

func (p *parser) unary() Expr {
	switch p.tok {
	case '-':
		p.next()
		return newMul(Int(-1), p.unary())
	case '+':
		p.next()
		return p.unary()
	}
	return p.power()
}

func (p *parser) power() Expr {
	base := p.primary()
	if p.tok == '^' {
		p.next()
		return &Pow{base: base, exp: p.unary()}
	}
	return base
}

func (p *parser) primary() Expr {
	switch p.tok {
	case scanner.Int, scanner.Float:
		text := p.s.TokenText()
		r, ok := new(big.Rat).SetString(text)
		if !ok {
			p.failf("bad number %q", text)
		}
		p.next()
		return &Num{val: r}
	case scanner.Ident:
		name := p.s.TokenText()
		p.next()
		if p.tok != '(' {
			return Symbol(name)
		}
		p.next()
		arg := p.expr()
		p.expect(')')
		return call(p, name, arg)
	case '(':
		p.next()
		e := p.expr()
		p.expect(')')
		return e
	}
	p.failf("unexpected %s", p.describe())
	return nil
}

func call(p *parser, name string, arg Expr) Expr {
	if name == "sqrt" {
		return &Pow{base: arg, exp: Frac(1, 2)}
	}
	if _, ok := unaryFuncs[name]; !ok {
		p.failf("unknown function %s", name)
	}
	return &Func{name: name, arg: arg}
}
