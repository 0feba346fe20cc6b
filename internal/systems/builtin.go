package systems

import (
	"fmt"
	"math"

	"github.com/san-kum/hamsim/internal/compiler"
)

const chainLength = 4

func builtins() []Entry {
	return []Entry{
		{
			Name:        "harmonic",
			Description: "one-dimensional spring, V = ½k x²",
			Define:      harmonic,
			Q0:          map[string]float64{"x": 1},
		},
		{
			Name:        "pendulum",
			Description: "simple pendulum, V = -(g/l) cos θ",
			Define:      pendulum,
			Q0:          map[string]float64{"theta": 1},
		},
		{
			Name:        "double_well",
			Description: "bistable well, V = a (x² - b)²",
			Define:      doubleWell,
			Q0:          map[string]float64{"x": 1.1},
		},
		{
			Name:        "henon_heiles",
			Description: "Hénon-Heiles, V = ½(x² + y²) + λ(x²y - y³/3)",
			Define:      henonHeiles,
			Q0:          map[string]float64{"x": 0.1, "y": -0.1},
			P0:          map[string]float64{"px": 0.3, "py": 0.2},
		},
		{
			Name:        "chain",
			Description: fmt.Sprintf("%d masses between fixed walls, nearest-neighbour springs", chainLength),
			Define:      chain,
			Q0:          map[string]float64{"x0": 1},
		},
		{
			Name:        "kepler",
			Description: "planar central force, V = -k/r",
			Define:      kepler,
			Q0:          map[string]float64{"x": 1},
			P0:          map[string]float64{"py": 0.8},
		},
	}
}

func harmonic() compiler.Definition {
	return compiler.Definition{
		Name:        "harmonic",
		Coordinates: []string{"x"},
		Potential: func(q compiler.Coords) float64 {
			x := q.Get("x")
			return 0.5 * q.Param("k") * x * x
		},
		Params: map[string]float64{"k": 1},
	}
}

func pendulum() compiler.Definition {
	return compiler.Definition{
		Name:        "pendulum",
		Coordinates: []string{"theta"},
		Potential: func(q compiler.Coords) float64 {
			return -q.Param("g") / q.Param("l") * math.Cos(q.Get("theta"))
		},
		Params: map[string]float64{"g": 9.81, "l": 1},
	}
}

func doubleWell() compiler.Definition {
	return compiler.Definition{
		Name:        "double_well",
		Coordinates: []string{"x"},
		Potential: func(q compiler.Coords) float64 {
			x := q.Get("x")
			d := x*x - q.Param("b")
			return q.Param("a") * d * d
		},
		Params: map[string]float64{"a": 1, "b": 1},
	}
}

func henonHeiles() compiler.Definition {
	return compiler.Definition{
		Name:        "henon_heiles",
		Coordinates: []string{"x", "y"},
		Potential: func(q compiler.Coords) float64 {
			x, y := q.Get("x"), q.Get("y")
			return 0.5*(x*x+y*y) + q.Param("lambda")*(x*x*y-y*y*y/3)
		},
		Params: map[string]float64{"lambda": 1},
	}
}

func chain() compiler.Definition {
	coords := make([]string, chainLength)
	for i := range coords {
		coords[i] = fmt.Sprintf("x%d", i)
	}
	// Walls sit at the ends, so the displacement outside the chain is zero.
	at := func(q compiler.Coords, i int) float64 {
		if i < 0 || i >= q.Len() {
			return 0
		}
		return q.At(compiler.Ref(i))
	}
	return compiler.Definition{
		Name:        "chain",
		Coordinates: coords,
		Potential: func(q compiler.Coords) float64 {
			k := q.Param("k")
			v := 0.0
			for i := -1; i < q.Len(); i++ {
				d := at(q, i+1) - at(q, i)
				v += 0.5 * k * d * d
			}
			return v
		},
		Force: func(q compiler.Coords) []float64 {
			k := q.Param("k")
			f := make([]float64, q.Len())
			for i := range f {
				f[i] = k * (at(q, i-1) - 2*at(q, i) + at(q, i+1))
			}
			return f
		},
		Params: map[string]float64{"k": 1},
	}
}

func kepler() compiler.Definition {
	return compiler.Definition{
		Name:        "kepler",
		Coordinates: []string{"x", "y"},
		Potential: func(q compiler.Coords) float64 {
			return -q.Param("k") / math.Hypot(q.Get("x"), q.Get("y"))
		},
		Force: func(q compiler.Coords) []float64 {
			x, y := q.Get("x"), q.Get("y")
			r := math.Hypot(x, y)
			s := -q.Param("k") / (r * r * r)
			return []float64{s * x, s * y}
		},
		Params: map[string]float64{"k": 1},
	}
}
