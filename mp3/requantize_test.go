package mp3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequantizeLongBlockZeroScalefactor(t *testing.T) {
	is := []int32{0, 1, -1, 2, -2}
	var sf Scalefactors
	sf.Long = make([]int, 22) // all zero
	var si SideInfo
	si.GlobalGain[0][0] = 210 // a=0 -> 2^0=1 before scalefactor term
	hdr := Header{SampleRate: 44100}

	out := requantize(is, sf, &si, 0, 0, hdr)
	require := assert.New(t)
	require.Len(out, len(is))
	require.Equal(0.0, out[0])
	require.InDelta(signedPow43(1), out[1], 1e-9)
	require.InDelta(signedPow43(-1), out[2], 1e-9)
	require.InDelta(signedPow43(2), out[3], 1e-9)
	require.InDelta(signedPow43(-2), out[4], 1e-9)
}

func TestRequantizeAppliesScalefactorAttenuation(t *testing.T) {
	is := []int32{0, 4, 4, 4, 4}
	var sfZero, sfBoosted Scalefactors
	sfZero.Long = make([]int, 22)
	sfBoosted.Long = make([]int, 22)
	sfBoosted.Long[0] = 8 // nonzero scalefactor in band 0 attenuates those lines
	var si SideInfo
	si.GlobalGain[0][0] = 210
	si.ScalefacScale[0][0] = 1 // multiplier 1.0, not 0.5
	hdr := Header{SampleRate: 44100}

	outZero := requantize(is, sfZero, &si, 0, 0, hdr)
	outBoosted := requantize(is, sfBoosted, &si, 0, 0, hdr)
	assert.Less(t, math.Abs(outBoosted[1]), math.Abs(outZero[1]))
}

func TestSignedPow43(t *testing.T) {
	assert.Equal(t, 0.0, signedPow43(0))
	assert.Greater(t, signedPow43(5), 0.0)
	assert.Less(t, signedPow43(-5), 0.0)
	assert.InDelta(t, signedPow43(5), -signedPow43(-5), 1e-9)
}

func TestSampleRateGroup(t *testing.T) {
	assert.Equal(t, 0, sampleRateGroup(44100))
	assert.Equal(t, 1, sampleRateGroup(48000))
	assert.Equal(t, 2, sampleRateGroup(32000))
}
