package viz

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/hamsim/internal/algebra"
	"github.com/san-kum/hamsim/internal/sim"
)

func TestCanvas_SetAndString(t *testing.T) {
	c := NewCanvas(2, 1)
	w, h := c.Dots()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)

	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(100, 100)

	rows := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	require.Len(t, rows, 1)
	cells := []rune(rows[0])
	require.Len(t, cells, 2)
	assert.Equal(t, rune(brailleBlank|0x1), cells[0])
	assert.Equal(t, rune(brailleBlank|0x80), cells[1])

	c.Clear()
	assert.Equal(t, string([]rune{brailleBlank, brailleBlank})+"\n", c.String())
}

func TestCanvas_LineIsContinuous(t *testing.T) {
	c := NewCanvas(10, 1)
	c.Line(0, 0, 19, 0)
	for _, r := range c.Grid[0] {
		assert.NotEqual(t, rune(brailleBlank), r)
	}
}

func TestPhasePortrait(t *testing.T) {
	q := []float64{-1, 0, 1, 0, -1}
	p := []float64{0, 1, 0, -1, 0}
	out := PhasePortrait(q, p, 20, 5)
	assert.Equal(t, 5, strings.Count(out, "\n"))
	assert.NotEqual(t, NewCanvas(20, 5).String(), out)
}

func TestPhasePortrait_Empty(t *testing.T) {
	assert.Equal(t, NewCanvas(3, 2).String(), PhasePortrait(nil, nil, 3, 2))
}

func TestScatterPlot(t *testing.T) {
	c := NewCanvas(4, 1)
	c.Scatter([]float64{0, 1}, []float64{0, 1})
	// (0,0) lands bottom-left, (1,1) top-right.
	assert.Equal(t, rune(brailleBlank|0x40), c.Grid[0][0])
	assert.Equal(t, rune(brailleBlank|0x8), c.Grid[0][3])
	assert.Equal(t, rune(brailleBlank), c.Grid[0][1])

	assert.Equal(t, 2, strings.Count(ScatterPlot([]float64{1}, []float64{1}, 3, 2), "\n"))
}

func TestEnergyPlot(t *testing.T) {
	assert.Empty(t, EnergyPlot(nil, PlotOptions{}))

	out := EnergyPlot([]float64{1, 1.001, 0.999, 1}, PlotOptions{Width: 20, Height: 4})
	assert.Contains(t, out, "H(t) - H(0)")
}

func TestSeriesPlot(t *testing.T) {
	assert.Empty(t, SeriesPlot([][]float64{nil}, PlotOptions{}))

	out := SeriesPlot([][]float64{{0, 1, 0}, {1, 0, 1}}, PlotOptions{Width: 10, Height: 3, Caption: "q0 q1"})
	assert.Contains(t, out, "q0 q1")
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "▁█", Sparkline([]float64{0, 1}, 2))
	assert.Equal(t, "───", Sparkline(nil, 3))
	assert.Equal(t, "", Sparkline([]float64{1}, 0))
	assert.Len(t, []rune(Sparkline(make([]float64, 100), 10)), 10)
}

func TestThemes(t *testing.T) {
	defer SetTheme(ThemeCyberpunk.Name)

	assert.Equal(t, []string{"cyberpunk", "retro", "minimal"}, ThemeNames())
	assert.Equal(t, ThemeCyberpunk, GetTheme("nope"))

	SetTheme("minimal")
	assert.Equal(t, "minimal", CurrentTheme.Name)
	assert.Equal(t, "cyberpunk", NextTheme().Name)
	assert.Equal(t, "retro", NextTheme().Name)
}

func TestDrift(t *testing.T) {
	assert.Contains(t, Drift(1.5e-6), "1.500e-06")
	assert.Contains(t, Drift(0.5), "5.000e-01")
}

func TestSweepTable(t *testing.T) {
	var buf bytes.Buffer
	SweepTable(&buf, []sim.Result{
		{Job: sim.Job{Name: "k=1"}, Energy: 0.5, Drift: 2e-5, Elapsed: 3 * time.Millisecond},
		{Job: sim.Job{Name: "k=2"}, Energy: 1, Drift: 4e-5},
	})
	out := buf.String()
	assert.Contains(t, out, "MAX DRIFT")
	assert.Contains(t, out, "k=1")
	assert.Contains(t, out, "2.000e-05")
	assert.Contains(t, out, "k=2")
}

func TestEquationsTable(t *testing.T) {
	var buf bytes.Buffer
	p := algebra.Symbol("p_0")
	EquationsTable(&buf, "Hamilton's equations", []string{"dq_0/dt"}, []algebra.Expr{p})
	assert.Contains(t, buf.String(), "dq_0/dt")
	assert.Contains(t, buf.String(), "p_0")
}

func TestMatrixTable(t *testing.T) {
	var buf bytes.Buffer
	MatrixTable(&buf, "", []string{"q_0", "p_0"}, [][]float64{{0, 1}, {-1, 0}})
	out := buf.String()
	assert.Contains(t, out, "q_0")
	assert.Contains(t, out, "-1")
}

func TestListTable(t *testing.T) {
	var buf bytes.Buffer
	ListTable(&buf, []string{"name", "description"}, [][]string{{"harmonic", "spring"}})
	assert.Contains(t, buf.String(), "harmonic")
	assert.Contains(t, buf.String(), "DESCRIPTION")
}
