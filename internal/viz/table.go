package viz

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/san-kum/hamsim/internal/sim"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// SweepTable renders one row per ensemble result.
func SweepTable(w io.Writer, results []sim.Result) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "job", "samples", "H(0)", "max drift", "elapsed"})
	for i, r := range results {
		samples := 0
		if r.Trajectory != nil {
			samples = r.Trajectory.Len()
		}
		t.AppendRow(table.Row{
			i,
			r.Job.Name,
			samples,
			strconv.FormatFloat(r.Energy, 'g', 8, 64),
			fmt.Sprintf("%.3e", r.Drift),
			r.Elapsed.Round(time.Microsecond).String(),
		})
	}
	t.Render()
}

// EquationsTable renders name/expression pairs, e.g. Hamilton's equations.
func EquationsTable[E fmt.Stringer](w io.Writer, title string, names []string, exprs []E) {
	t := newTable(w)
	if title != "" {
		t.SetTitle(title)
	}
	for i, name := range names {
		val := ""
		if i < len(exprs) {
			val = exprs[i].String()
		}
		t.AppendRow(table.Row{name, val})
	}
	t.Render()
}

// MatrixTable renders a numeric matrix with labelled rows and columns.
func MatrixTable(w io.Writer, title string, labels []string, m [][]float64) {
	t := newTable(w)
	if title != "" {
		t.SetTitle(title)
	}
	header := table.Row{""}
	for _, l := range labels {
		header = append(header, l)
	}
	t.AppendHeader(header)
	for i, row := range m {
		r := table.Row{label(labels, i)}
		for _, v := range row {
			r = append(r, strconv.FormatFloat(v, 'g', 6, 64))
		}
		t.AppendRow(r)
	}
	t.Render()
}

// ListTable renders rows of strings under a header.
func ListTable(w io.Writer, header []string, rows [][]string) {
	t := newTable(w)
	h := make(table.Row, len(header))
	for i, s := range header {
		h[i] = s
	}
	t.AppendHeader(h)
	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, s := range row {
			r[i] = s
		}
		t.AppendRow(r)
	}
	t.Render()
}

func label(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return strconv.Itoa(i)
}
