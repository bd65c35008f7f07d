package mp3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReorderPureShortBlock(t *testing.T) {
	// two bands, widths 2 and 3, window-major input.
	bandsShort := []int{0, 2, 5}
	// band0: w0={1,2} w1={3,4} w2={5,6}; band1: w0={7,8,9} w1={10,11,12} w2={13,14,15}
	lines := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	out := reorder(lines, bandsShort, false)
	want := []float64{
		1, 3, 5, 2, 4, 6, // band0 interleaved: (w0[0],w1[0],w2[0]),(w0[1],w1[1],w2[1])
		7, 10, 13, 8, 11, 14, 9, 12, 15,
	}
	assert.Equal(t, want, out)
}

func TestReorderMixedBlockLeavesLongRegionIntact(t *testing.T) {
	bandsShort := []int{0, 2, 4, 6, 8}
	split := 3 * bandsShort[3] // 18: short bands 0..2 across all three windows
	lines := make([]float64, split+3*2)
	for i := range lines[:split] {
		lines[i] = float64(100 + i)
	}
	for i := split; i < len(lines); i++ {
		lines[i] = float64(i)
	}
	out := reorder(lines, bandsShort, true)
	assert.Equal(t, lines[:split], out[:split])
}
