package analysis

import (
	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/hamiltonian"
)

// SectionPoint is one crossing of a Poincaré surface, with the recorded
// pair (q_record, p_record) linearly interpolated to the crossing time.
type SectionPoint struct {
	T float64
	Q float64
	P float64
}

// PoincareSection returns the upward crossings of q_axis through level,
// i.e. samples where q_axis goes from below level to at-or-above it.
func PoincareSection(tr *hamiltonian.Trajectory, axis int, level float64, record int) ([]SectionPoint, error) {
	const op = "analysis.PoincareSection"
	if tr == nil || tr.Len() == 0 {
		return nil, nil
	}
	dof := len(tr.Q[0])
	if axis < 0 || axis >= dof || record < 0 || record >= dof {
		return nil, dynamo.Configf(op, "axis %d / record %d out of range for %d dof", axis, record, dof)
	}

	var out []SectionPoint
	prev := tr.Q[0][axis]
	for i := 1; i < tr.Len(); i++ {
		curr := tr.Q[i][axis]
		if prev < level && curr >= level {
			frac := (level - prev) / (curr - prev)
			out = append(out, SectionPoint{
				T: lerp(tr.Times[i-1], tr.Times[i], frac),
				Q: lerp(tr.Q[i-1][record], tr.Q[i][record], frac),
				P: lerp(tr.P[i-1][record], tr.P[i][record], frac),
			})
		}
		prev = curr
	}
	return out, nil
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
