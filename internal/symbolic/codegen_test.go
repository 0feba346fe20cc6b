package symbolic_test

import (
	"go/parser"
	"go/token"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hamsim/internal/algebra"
	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/symbolic"
)

var _ = Describe("GenerateGo", func() {
	It("emits a formatted right-hand side for the oscillator", func() {
		h, err := symbolic.HarmonicOscillator(1, 1, 1)
		Expect(err).NotTo(HaveOccurred())

		src, err := h.GenerateGo("rhs", "Oscillator")
		Expect(err).NotTo(HaveOccurred())
		Expect(src).To(HavePrefix("// Code generated by hamsim derive; DO NOT EDIT."))
		Expect(src).To(ContainSubstring("package rhs"))
		Expect(src).To(ContainSubstring("func Oscillator(q, p []float64) []float64 {"))
		Expect(src).To(ContainSubstring("p[0],"))
		Expect(src).To(ContainSubstring("q[0]"))
		Expect(src).NotTo(ContainSubstring(`import "math"`))

		_, err = parser.ParseFile(token.NewFileSet(), "rhs.go", src, 0)
		Expect(err).NotTo(HaveOccurred())
	})

	It("imports math when the equations need it", func() {
		h, err := symbolic.Kepler(1, 1)
		Expect(err).NotTo(HaveOccurred())

		src, err := h.GenerateGo("kepler", "RHS")
		Expect(err).NotTo(HaveOccurred())
		Expect(src).To(ContainSubstring(`import "math"`))
		Expect(src).To(ContainSubstring("math.Pow("))

		_, err = parser.ParseFile(token.NewFileSet(), "kepler.go", src, 0)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects invalid identifiers", func() {
		h, err := symbolic.HarmonicOscillator(1, 1, 1)
		Expect(err).NotTo(HaveOccurred())

		_, err = h.GenerateGo("rhs", "bad name")
		Expect(err).To(MatchError(dynamo.ErrConfiguration))
		_, err = h.GenerateGo("1pkg", "F")
		Expect(err).To(MatchError(dynamo.ErrConfiguration))
	})

	It("rejects free parameters", func() {
		h, err := symbolic.New(1)
		Expect(err).NotTo(HaveOccurred())
		h.SetHamiltonian(algebra.MustParse("p0^2/2 + k*q0^2/2"))

		_, err = h.GenerateGo("rhs", "F")
		Expect(err).To(MatchError(dynamo.ErrConfiguration))
		Expect(err).To(MatchError(algebra.ErrUnboundSymbol))
	})
})
