package main

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/spf13/cobra"

	"github.com/san-kum/hamsim/internal/algebra"
	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/integrators"
	"github.com/san-kum/hamsim/internal/symbolic"
	"github.com/san-kum/hamsim/internal/viz"
)

type deriveFlags struct {
	dof       int
	params    []string
	linearize []float64
	goFunc    string
	goPackage string
	verify    float64
	from      []float64
	dt        float64
}

func newDeriveCmd() *cobra.Command {
	var f deriveFlags
	cmd := &cobra.Command{
		Use:   "derive <expr>",
		Short: "derive equations of motion and conserved quantities",
		Long: "Parse a Hamiltonian over q0.., p0.. and print Hamilton's equations, the\n" +
			"conserved quantities found by Poisson brackets and, on request, the\n" +
			"linearization at a point or generated Go source.",
		Example: `  hamsim derive "p0^2/2 + q0^2/2"
  hamsim derive "(p0^2 + p1^2)/2 + k*(q0^2 + q1^2)/2" --dof 2 --param k=3 --linearize 0,0,0,0
  hamsim derive "p0^2/2 - cos(q0)" --go Pendulum`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return derive(cmd.OutOrStdout(), args[0], f)
		},
	}
	cmd.Flags().IntVar(&f.dof, "dof", 1, "degrees of freedom")
	cmd.Flags().StringArrayVar(&f.params, "param", nil, "substitute name=value before deriving (repeatable)")
	cmd.Flags().Float64SliceVar(&f.linearize, "linearize", nil, "linearize at q0..,p0..")
	cmd.Flags().StringVar(&f.goFunc, "go", "", "emit Go source for the flow as a function with this name")
	cmd.Flags().StringVar(&f.goPackage, "package", "main", "package clause of the emitted Go source")
	cmd.Flags().Float64Var(&f.verify, "verify", 0, "cross-check the compiled flow (RK4) against velocity Verlet for this long")
	cmd.Flags().Float64SliceVar(&f.from, "from", nil, "initial q0..,p0.. for --verify")
	cmd.Flags().Float64Var(&f.dt, "dt", 1e-3, "timestep for --verify")
	return cmd
}

func parseHamiltonian(src string, dof int, pairs []string) (*symbolic.Hamiltonian, error) {
	e, err := algebra.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dynamo.ErrConfiguration, err)
	}
	params, err := parseParams(pairs)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		env := make(map[string]algebra.Expr, len(params))
		for name, v := range params {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, dynamo.Configf("hamsim.derive", "parameter %q is not finite", name)
			}
			env[name] = algebra.Decimal(v)
		}
		e = algebra.Subs(e, env)
	}

	h, err := symbolic.New(dof)
	if err != nil {
		return nil, err
	}
	state := make(map[string]bool, 2*dof)
	for _, name := range h.State() {
		state[name] = true
	}
	var unbound []string
	for _, name := range algebra.FreeSymbols(e) {
		if !state[name] {
			unbound = append(unbound, name)
		}
	}
	if len(unbound) > 0 {
		return nil, dynamo.Configf("hamsim.derive", "unbound symbols %v: pass them with --param", unbound)
	}
	h.SetHamiltonian(e)
	return h, nil
}

func derive(w io.Writer, src string, f deriveFlags) error {
	h, err := parseHamiltonian(src, f.dof, f.params)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, viz.KeyValue("H", h.Expr()))
	fmt.Fprintln(w)

	dq, dp, err := h.HamiltonEquations()
	if err != nil {
		return err
	}
	var (
		names []string
		rhs   []algebra.Expr
	)
	for i := range dq {
		names = append(names, "d"+h.Q(i).Name()+"/dt")
		rhs = append(rhs, dq[i])
	}
	for i := range dp {
		names = append(names, "d"+h.P(i).Name()+"/dt")
		rhs = append(rhs, dp[i])
	}
	viz.EquationsTable(w, "Hamilton's equations", names, rhs)

	conserved, err := h.ConservedQuantities()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(conserved))
	for k := range conserved {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]algebra.Expr, len(keys))
	for i, k := range keys {
		values[i] = conserved[k]
	}
	viz.EquationsTable(w, "Conserved quantities", keys, values)

	if len(f.linearize) > 0 {
		if err := printLinearization(w, h, f.linearize); err != nil {
			return err
		}
	}
	if f.verify > 0 {
		if err := verifyFlow(w, h, f); err != nil {
			return err
		}
	}
	if f.goFunc != "" {
		src, err := h.GenerateGo(f.goPackage, f.goFunc)
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
		fmt.Fprint(w, src)
	}
	return nil
}

func splitPoint(h *symbolic.Hamiltonian, flag string, v []float64) (q, p []float64, err error) {
	n := h.DOF()
	switch len(v) {
	case 0:
		return make([]float64, n), make([]float64, n), nil
	case 2 * n:
		return v[:n], v[n:], nil
	}
	return nil, nil, dynamo.Configf("hamsim.derive", "--%s needs %d values (q0.., p0..), got %d", flag, 2*n, len(v))
}

func printLinearization(w io.Writer, h *symbolic.Hamiltonian, at []float64) error {
	q, p, err := splitPoint(h, "linearize", at)
	if err != nil {
		return err
	}
	jac, err := h.Linearize(q, p)
	if err != nil {
		return err
	}
	m, err := jac.Float64s()
	if err != nil {
		return err
	}
	viz.MatrixTable(w, fmt.Sprintf("Linearization at q=%v p=%v", q, p), h.State(), m)
	return nil
}

// verifyFlow integrates the compiled equations of motion with RK4 and the
// numeric system with velocity Verlet from the same point and reports how
// far apart they end up.
func verifyFlow(w io.Writer, h *symbolic.Hamiltonian, f deriveFlags) error {
	q0, p0, err := splitPoint(h, "from", f.from)
	if err != nil {
		return err
	}
	x0, err := dynamo.NewPoint(q0, p0)
	if err != nil {
		return err
	}

	flow, err := h.EquationsOfMotion()
	if err != nil {
		return err
	}
	sys, err := h.NumericSystem()
	if err != nil {
		return err
	}
	traj, err := sys.Evolve(x0, f.verify, f.dt)
	if err != nil {
		return err
	}
	steps := traj.Len() - 1
	rk := integrators.NewRK4().Integrate(dynamo.VectorField(flow), x0.Flatten(), f.dt, steps)

	verlet := traj.Final().Flatten()
	diff := 0.0
	for i := range verlet {
		diff = math.Max(diff, math.Abs(verlet[i]-rk[i]))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, viz.KeyValue("verify t", traj.Times[steps]))
	fmt.Fprintln(w, viz.KeyValue("rk4", formatFloats(rk)))
	fmt.Fprintln(w, viz.KeyValue("verlet", formatFloats(verlet)))
	fmt.Fprintln(w, viz.KeyValue("max |Δ|", fmt.Sprintf("%.3e", diff)))
	return nil
}
