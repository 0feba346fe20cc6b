package symbolic_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hamsim/internal/algebra"
	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/hamiltonian"
	"github.com/san-kum/hamsim/internal/integrators"
	"github.com/san-kum/hamsim/internal/symbolic"
)

var _ = Describe("numeric bridge", func() {
	It("splits a separable Hamiltonian", func() {
		h, err := symbolic.HarmonicOscillator(2, 4, 2)
		Expect(err).NotTo(HaveOccurred())

		mass, v, err := h.Split()
		Expect(err).NotTo(HaveOccurred())
		Expect(mass).To(Equal([]float64{2, 2}))
		Expect(algebra.Equal(v, algebra.MustParse("2*q0^2 + 2*q1^2"))).To(BeTrue(), v.String())
	})

	It("builds a system with the compiled force", func() {
		h, err := symbolic.HarmonicOscillator(2, 4, 2)
		Expect(err).NotTo(HaveOccurred())

		sys, err := h.NumericSystem(hamiltonian.WithName("iso"))
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.Name()).To(Equal("iso"))
		Expect(sys.HasAnalyticForce()).To(BeTrue())
		Expect(sys.Mass()).To(Equal(dynamo.Vector{2, 2}))
		Expect(sys.Force(dynamo.Vector{1, -0.5})).To(Equal(dynamo.Vector{-4, 2}))
		Expect(sys.Potential(dynamo.Vector{1, 1})).To(BeNumerically("~", 4, 1e-15))

		x0, err := dynamo.NewPoint([]float64{1, 0}, []float64{0, 1})
		Expect(err).NotTo(HaveOccurred())
		traj, err := sys.Evolve(x0, 10, 0.01)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.MaxRelativeDrift(sys.Hamiltonian)).To(BeNumerically("<", 1e-3))
	})

	It("agrees with the symbolic energy along a trajectory", func() {
		h, err := symbolic.TranslationChain(3, 2, 1)
		Expect(err).NotTo(HaveOccurred())
		sys, err := h.NumericSystem()
		Expect(err).NotTo(HaveOccurred())

		energy, err := algebra.CompileScalar(h.Expr(), h.State())
		Expect(err).NotTo(HaveOccurred())

		x0, _ := dynamo.NewPoint([]float64{0.3, 0, -0.2}, []float64{0.1, 0, 0})
		traj, err := sys.Evolve(x0, 1, 0.01)
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < traj.Len(); i += 25 {
			x := traj.At(i)
			Expect(sys.Energy(x)).To(BeNumerically("~", energy(x.Flatten()), 1e-12))
		}
	})

	It("matches a Runge-Kutta integration of the compiled flow", func() {
		h, err := symbolic.HarmonicOscillator(1, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		f, err := h.EquationsOfMotion()
		Expect(err).NotTo(HaveOccurred())
		sys, err := h.NumericSystem()
		Expect(err).NotTo(HaveOccurred())

		x0, _ := dynamo.NewPoint([]float64{1}, []float64{0})
		traj, err := sys.Evolve(x0, 1, 0.001)
		Expect(err).NotTo(HaveOccurred())

		rk := integrators.NewRK4().Integrate(dynamo.VectorField(f), x0.Flatten(), 0.001, 1000)
		final := traj.Final()
		Expect(final.Q[0]).To(BeNumerically("~", rk[0], 1e-6))
		Expect(final.P[0]).To(BeNumerically("~", rk[1], 1e-6))
	})

	It("rejects non-separable and parametric Hamiltonians", func() {
		kepler, err := symbolic.Kepler(1, 1)
		Expect(err).NotTo(HaveOccurred())
		_, err = kepler.NumericSystem()
		Expect(err).To(MatchError(dynamo.ErrConfiguration))

		cases := []string{
			"p0*p1 + q0^2",
			"p0^2/2 + p0 + q0^2",
			"cos(p0) + q0^2",
			"p0^2/2 + k*q0^2",
			"-p0^2/2 + q0^2",
		}
		for _, src := range cases {
			n := 1
			if src == "p0*p1 + q0^2" {
				n = 2
			}
			h, err := symbolic.New(n)
			Expect(err).NotTo(HaveOccurred())
			h.SetHamiltonian(algebra.MustParse(src))
			_, err = h.NumericSystem()
			Expect(err).To(MatchError(dynamo.ErrConfiguration), src)
		}
	})
})
