package aac

import "math"

// imdct computes the length-N inverse modified discrete cosine transform
// of N/2 spectral coefficients, producing N time-domain samples, per
// §4.6.19:
//
//	x[i] = (2/N) * sum_{k=0}^{N/2-1} X[k] * cos((2*pi/N)*(i+n0)*(k+0.5))
//	n0 = (N/2 + 1) / 2
//
// This is the direct O(N^2) evaluation rather than a fast recursive or
// FFT-based factorization; the module already makes the equivalent trade
// for MP3's 32-point synthesis DCT, favoring a formula that is obviously
// correct against the standard's definition over a faster one that is
// harder to verify without running it.
func imdct(in []float64) []float64 {
	n := len(in) * 2
	out := make([]float64, n)
	n0 := (float64(n/2) + 1) / 2
	scale := 2.0 / float64(n)

	for i := 0; i < n; i++ {
		var sum float64
		for k := 0; k < len(in); k++ {
			sum += in[k] * math.Cos((2*math.Pi/float64(n))*(float64(i)+n0)*(float64(k)+0.5))
		}
		out[i] = scale * sum
	}
	return out
}
