package aac

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIMDCTLength(t *testing.T) {
	in := make([]float64, 4)
	out := imdct(in)
	assert.Len(t, out, 8)
}

func TestIMDCTZeroInputIsZeroOutput(t *testing.T) {
	in := make([]float64, 16)
	out := imdct(in)
	for _, v := range out {
		assert.Equal(t, 0.0, v)
	}
}

func TestIMDCTDCCoefficientProducesSymmetricShape(t *testing.T) {
	in := make([]float64, 8)
	in[0] = 1
	out := imdct(in)
	a := assert.New(t)
	a.Len(out, 16)
	// the k=0 basis function cos(pi/16*(n+n0)) with n0 = 4.5 is symmetric
	// about n = 11.5, and finite and bounded given a single unit-magnitude
	// input coefficient.
	for _, v := range out {
		a.False(math.IsNaN(v))
		a.Less(math.Abs(v), 1.0)
	}
	for j := 0; j < 4; j++ {
		a.InDelta(out[11-j], out[12+j], 1e-12)
	}
}
