package symbolic_test

import (
	"math"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hamsim/internal/algebra"
	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/symbolic"
)

func keys(m map[string]algebra.Expr) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func mustNew(n int) *symbolic.Hamiltonian {
	h, err := symbolic.New(n)
	Expect(err).NotTo(HaveOccurred())
	return h
}

var _ = Describe("Hamiltonian", func() {
	Describe("construction", func() {
		It("rejects a non-positive dof", func() {
			_, err := symbolic.New(0)
			Expect(err).To(MatchError(dynamo.ErrConfiguration))
		})

		It("names the canonical symbols", func() {
			h := mustNew(2)
			Expect(h.Coordinates()).To(Equal([]string{"q0", "q1"}))
			Expect(h.Momenta()).To(Equal([]string{"p0", "p1"}))
			Expect(h.State()).To(Equal([]string{"q0", "q1", "p0", "p1"}))
			Expect(h.Q(1).Name()).To(Equal("q1"))
			Expect(h.P(0).Name()).To(Equal("p0"))
			Expect(h.Defined()).To(BeFalse())
			Expect(h.Expr()).To(BeNil())
		})
	})

	Context("while undefined", func() {
		var h *symbolic.Hamiltonian

		BeforeEach(func() {
			h = mustNew(3)
		})

		It("fails every operation that needs H", func() {
			_, _, err := h.HamiltonEquations()
			Expect(err).To(MatchError(dynamo.ErrSymbolicState))

			_, err = h.ConservedQuantities()
			Expect(err).To(MatchError(dynamo.ErrSymbolicState))

			_, err = h.EquationsOfMotion()
			Expect(err).To(MatchError(dynamo.ErrSymbolicState))

			_, err = h.Linearize([]float64{0, 0, 0}, []float64{0, 0, 0})
			Expect(err).To(MatchError(dynamo.ErrSymbolicState))

			_, err = h.GenerateGo("rhs", "F")
			Expect(err).To(MatchError(dynamo.ErrSymbolicState))

			_, err = h.NumericSystem()
			Expect(err).To(MatchError(dynamo.ErrSymbolicState))
		})

		It("computes canonical Poisson brackets", func() {
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					want := "0"
					if i == j {
						want = "1"
					}
					Expect(h.PoissonBracket(h.Q(i), h.P(j)).String()).To(Equal(want))
					Expect(h.PoissonBracket(h.Q(i), h.Q(j)).String()).To(Equal("0"))
					Expect(h.PoissonBracket(h.P(i), h.P(j)).String()).To(Equal("0"))
				}
			}
		})

		It("is antisymmetric", func() {
			f := algebra.MustParse("q0^2*p1 + sin(q2)")
			g := algebra.MustParse("p0*p2 - q1")
			sum := algebra.Sum(h.PoissonBracket(f, g), h.PoissonBracket(g, f))
			Expect(algebra.IsZero(sum)).To(BeTrue())
		})

		It("builds the symplectic matrix", func() {
			j, err := h.SymplecticMatrix().Float64s()
			Expect(err).NotTo(HaveOccurred())
			Expect(j).To(HaveLen(6))
			for r := 0; r < 6; r++ {
				for c := 0; c < 6; c++ {
					want := 0.0
					switch {
					case r < 3 && c == r+3:
						want = 1
					case r >= 3 && c == r-3:
						want = -1
					}
					Expect(j[r][c]).To(Equal(want), "J[%d][%d]", r, c)
				}
			}
		})
	})

	Context("with H = p²/2 + q²/2", func() {
		var h *symbolic.Hamiltonian

		BeforeEach(func() {
			h = mustNew(1)
			h.SetHamiltonian(algebra.MustParse("p0^2/2 + q0^2/2"))
		})

		It("derives dq/dt = p and dp/dt = -q", func() {
			dq, dp, err := h.HamiltonEquations()
			Expect(err).NotTo(HaveOccurred())
			Expect(dq[0].String()).To(Equal("p0"))
			Expect(dp[0].String()).To(Equal("-q0"))
		})

		It("drops cached equations on redefinition", func() {
			_, _, err := h.HamiltonEquations()
			Expect(err).NotTo(HaveOccurred())

			h.SetHamiltonian(algebra.MustParse("p0^2/2 + 2*q0^2"))
			_, dp, err := h.HamiltonEquations()
			Expect(err).NotTo(HaveOccurred())
			Expect(dp[0].String()).To(Equal("-4*q0"))
		})

		It("returns to undefined on a nil expression", func() {
			h.SetHamiltonian(nil)
			Expect(h.Defined()).To(BeFalse())
			_, _, err := h.HamiltonEquations()
			Expect(err).To(MatchError(dynamo.ErrSymbolicState))
		})

		It("compiles the equations of motion", func() {
			f, err := h.EquationsOfMotion()
			Expect(err).NotTo(HaveOccurred())
			Expect(f([]float64{1, 0})).To(Equal([]float64{0, -1}))
			Expect(f([]float64{0.5, 2})).To(Equal([]float64{2, -0.5}))
		})

		It("linearizes around the origin", func() {
			m, err := h.Linearize([]float64{0}, []float64{0})
			Expect(err).NotTo(HaveOccurred())
			vals, err := m.Float64s()
			Expect(err).NotTo(HaveOccurred())
			Expect(vals).To(Equal([][]float64{{0, 1}, {-1, 0}}))
		})

		It("rejects an equilibrium of the wrong length", func() {
			_, err := h.Linearize([]float64{0, 0}, []float64{0})
			Expect(err).To(MatchError(dynamo.ErrConfiguration))
		})
	})

	Describe("linearization of the pendulum", func() {
		It("flips stability between the bottom and the top", func() {
			h := mustNew(1)
			h.SetHamiltonian(algebra.MustParse("p0^2/2 - cos(q0)"))

			bottom, err := h.Linearize([]float64{0}, []float64{0})
			Expect(err).NotTo(HaveOccurred())
			b, _ := bottom.Float64s()
			Expect(b[1][0]).To(BeNumerically("~", -1, 1e-15))

			top, err := h.Linearize([]float64{math.Pi}, []float64{0})
			Expect(err).NotTo(HaveOccurred())
			tp, _ := top.Float64s()
			Expect(tp[1][0]).To(BeNumerically("~", 1, 1e-15))
			Expect(tp[0][1]).To(BeNumerically("==", 1))
		})
	})

	Describe("conserved quantities", func() {
		It("always reports H as the energy", func() {
			h, err := symbolic.HarmonicOscillator(1, 1, 1)
			Expect(err).NotTo(HaveOccurred())
			c, err := h.ConservedQuantities()
			Expect(err).NotTo(HaveOccurred())
			Expect(keys(c)).To(Equal([]string{symbolic.QuantityEnergy}))
			Expect(c[symbolic.QuantityEnergy].String()).To(Equal(h.Expr().String()))
		})

		It("reports only energy for uncoupled oscillators of different stiffness", func() {
			h := mustNew(2)
			h.SetHamiltonian(algebra.MustParse("(p0^2 + p1^2)/2 + q0^2/2 + q1^2"))
			c, err := h.ConservedQuantities()
			Expect(err).NotTo(HaveOccurred())
			Expect(keys(c)).To(Equal([]string{symbolic.QuantityEnergy}))
		})

		It("reports only energy for oscillators coupled to walls", func() {
			h, err := symbolic.CoupledOscillators(3, 1, 0.1, 1)
			Expect(err).NotTo(HaveOccurred())
			c, err := h.ConservedQuantities()
			Expect(err).NotTo(HaveOccurred())
			Expect(keys(c)).To(Equal([]string{symbolic.QuantityEnergy}))
		})

		It("adds momentum for a translation-invariant chain", func() {
			h, err := symbolic.TranslationChain(3, 1, 1)
			Expect(err).NotTo(HaveOccurred())
			c, err := h.ConservedQuantities()
			Expect(err).NotTo(HaveOccurred())
			Expect(keys(c)).To(Equal([]string{symbolic.QuantityEnergy, symbolic.QuantityMomentum}))
			Expect(c[symbolic.QuantityMomentum].String()).To(Equal("p0 + p1 + p2"))
		})

		It("adds angular momentum for an isotropic plane oscillator", func() {
			h, err := symbolic.HarmonicOscillator(2, 1, 1)
			Expect(err).NotTo(HaveOccurred())
			c, err := h.ConservedQuantities()
			Expect(err).NotTo(HaveOccurred())
			Expect(keys(c)).To(Equal([]string{symbolic.QuantityAngularMomentum, symbolic.QuantityEnergy}))
		})
	})

	Describe("templates", func() {
		It("builds the polar Kepler problem", func() {
			h, err := symbolic.Kepler(1, 1)
			Expect(err).NotTo(HaveOccurred())
			dq, dp, err := h.HamiltonEquations()
			Expect(err).NotTo(HaveOccurred())

			Expect(algebra.Equal(dq[1], algebra.MustParse("p1/q0^2"))).To(BeTrue(), dq[1].String())
			Expect(algebra.Equal(dp[0], algebra.MustParse("p1^2/q0^3 - 1/q0^2"))).To(BeTrue(), dp[0].String())
			Expect(dp[1].String()).To(Equal("0"))
		})

		It("keeps decimal parameters exact", func() {
			h, err := symbolic.CoupledOscillators(2, 1, 0.1, 1)
			Expect(err).NotTo(HaveOccurred())
			_, dp, err := h.HamiltonEquations()
			Expect(err).NotTo(HaveOccurred())
			Expect(algebra.Equal(dp[0], algebra.MustParse("-11/10*q0 + 1/10*q1"))).To(BeTrue(), dp[0].String())
		})

		It("validates parameters", func() {
			_, err := symbolic.HarmonicOscillator(1, 1, 0)
			Expect(err).To(MatchError(dynamo.ErrConfiguration))
			_, err = symbolic.Kepler(-1, 1)
			Expect(err).To(MatchError(dynamo.ErrConfiguration))
			_, err = symbolic.TranslationChain(0, 1, 1)
			Expect(err).To(MatchError(dynamo.ErrConfiguration))
			_, err = symbolic.CoupledOscillators(2, 1, math.NaN(), 1)
			Expect(err).To(MatchError(dynamo.ErrConfiguration))
		})
	})
})
