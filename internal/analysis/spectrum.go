package analysis

import (
	"math"
	"math/bits"
	"math/cmplx"

	"github.com/san-kum/hamsim/internal/dynamo"
)

// FFT is the radix-2 Cooley-Tukey transform. len(data) must be a power
// of two.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// nextPow2 returns the smallest power of two >= n, for n >= 1.
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// PowerSpectrum removes the mean of series, zero-pads it to a power of two
// and returns |X_k|² for k in [0, n/2).
func PowerSpectrum(series []float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	padded := make([]float64, nextPow2(len(series)))
	for i, v := range series {
		padded[i] = v - mean
	}

	spectrum := FFT(padded)
	ps := make([]float64, max(len(spectrum)/2, 1))
	for i := range ps {
		a := cmplx.Abs(spectrum[i])
		ps[i] = a * a
	}
	return ps
}

// DominantFrequency returns the frequency, in cycles per unit time, of the
// strongest non-constant component of a series sampled every dt.
func DominantFrequency(series []float64, dt float64) (float64, error) {
	const op = "analysis.DominantFrequency"
	if !(dt > 0) || math.IsInf(dt, 0) {
		return 0, dynamo.Configf(op, "dt must be positive and finite, got %g", dt)
	}
	if len(series) < 4 {
		return 0, dynamo.Configf(op, "need at least 4 samples, got %d", len(series))
	}

	ps := PowerSpectrum(series)
	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if ps[best] == 0 {
		return 0, nil
	}
	n := nextPow2(len(series))
	return float64(best) / (float64(n) * dt), nil
}
