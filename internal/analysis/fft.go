package analysis

import (
	"errors"
	"math/bits"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrTooFewSamples = errors.New("analysis: too few samples")

// PowerSpectrum returns |X_k| for k in [0, n/2) after zero-padding data to
// the next power of two.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(padPow2(data))
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// DominantPeriod estimates the period of the strongest oscillation in
// samples taken every dt. The mean is removed first so the DC bin never wins.
// The estimate is accurate to one frequency bin, 1/(N·dt) with N the padded
// length.
func DominantPeriod(samples []float64, dt float64) (float64, error) {
	if len(samples) < 4 {
		return 0, ErrTooFewSamples
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))

	centered := make([]float64, len(samples))
	for i, v := range samples {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	n := 2 * len(ps)

	best := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > ps[best] || best == 0 {
			best = k
		}
	}
	if best == 0 || ps[best] == 0 {
		return 0, errors.New("analysis: no oscillation found")
	}

	return float64(n) * dt / float64(best), nil
}

// BinWidth is the frequency resolution DominantPeriod works at for n samples.
func BinWidth(n int, dt float64) float64 {
	return 1 / (float64(nextPow2(n)) * dt)
}

func padPow2(data []float64) []float64 {
	n := nextPow2(len(data))
	if n == len(data) {
		return data
	}
	out := make([]float64, n)
	copy(out, data)
	return out
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
