package viz

import (
	"github.com/guptarohit/asciigraph"
)

// PlotOptions sizes a chart. Zero values pick defaults.
type PlotOptions struct {
	Width   int
	Height  int
	Caption string
}

func (o PlotOptions) asciigraph() []asciigraph.Option {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 10
	}
	opts := []asciigraph.Option{asciigraph.Width(w), asciigraph.Height(h)}
	if o.Caption != "" {
		opts = append(opts, asciigraph.Caption(o.Caption))
	}
	return opts
}

// EnergyPlot charts H(t) relative to its initial value, so that drift is
// visible even when it is tiny compared to H itself.
func EnergyPlot(energies []float64, opts PlotOptions) string {
	if len(energies) == 0 {
		return ""
	}
	if opts.Caption == "" {
		opts.Caption = "H(t) - H(0)"
	}
	delta := make([]float64, len(energies))
	for i, e := range energies {
		delta[i] = e - energies[0]
	}
	return asciigraph.Plot(delta, opts.asciigraph()...)
}

// SeriesPlot charts one or more series on shared axes.
func SeriesPlot(series [][]float64, opts PlotOptions) string {
	var nonEmpty [][]float64
	for _, s := range series {
		if len(s) > 0 {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) == 0 {
		return ""
	}
	return asciigraph.PlotMany(nonEmpty, opts.asciigraph()...)
}
