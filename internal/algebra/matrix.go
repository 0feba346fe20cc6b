package algebra

import (
	"fmt"
	"strings"
)

// Matrix is a dense row-major matrix of canonical expressions.
type Matrix struct {
	rows, cols int
	data       []Expr
}

// Zeros returns a rows×cols matrix of zeros.
func Zeros(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("algebra: invalid matrix shape %dx%d", rows, cols))
	}
	m := &Matrix{rows: rows, cols: cols, data: make([]Expr, rows*cols)}
	for i := range m.data {
		m.data[i] = Int(0)
	}
	return m
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Matrix {
	m := Zeros(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = Int(1)
	}
	return m
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) checkBounds(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("algebra: index (%d,%d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
}

func (m *Matrix) Get(i, j int) Expr {
	m.checkBounds(i, j)
	return m.data[i*m.cols+j]
}

// Set stores the canonical form of e at (i, j).
func (m *Matrix) Set(i, j int, e Expr) {
	m.checkBounds(i, j)
	m.data[i*m.cols+j] = Simplify(e)
}

// Subs applies Subs to every entry and returns a new matrix.
func (m *Matrix) Subs(env map[string]Expr) *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, data: make([]Expr, len(m.data))}
	for i, e := range m.data {
		out.data[i] = Subs(e, env)
	}
	return out
}

// Float64s evaluates every entry. Entries must be free of symbols.
func (m *Matrix) Float64s() ([][]float64, error) {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = make([]float64, m.cols)
		for j := range out[i] {
			v, err := Eval(m.data[i*m.cols+j], nil)
			if err != nil {
				return nil, fmt.Errorf("entry (%d,%d): %w", i, j, err)
			}
			out[i][j] = v
		}
	}
	return out, nil
}

func (m *Matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.rows; i++ {
		parts := make([]string, m.cols)
		for j := range parts {
			parts[j] = m.data[i*m.cols+j].String()
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("[" + strings.Join(parts, ", ") + "]")
	}
	return b.String()
}

// Jacobian returns J[i][j] = ∂exprs[i]/∂vars[j].
func Jacobian(exprs []Expr, vars []string) *Matrix {
	m := Zeros(len(exprs), len(vars))
	for i, e := range exprs {
		for j, x := range vars {
			m.data[i*m.cols+j] = Diff(e, x)
		}
	}
	return m
}
