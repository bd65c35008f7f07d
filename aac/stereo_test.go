package aac

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyJointStereoIntensitySynthesis(t *testing.T) {
	left := []float32{2, 4}
	right := []float32{0, 0}
	bandsL := []spectrumBand{{group: 0, sfb: 0, lo: 0, hi: 2, codebook: 0}}
	bandsR := []spectrumBand{{group: 0, sfb: 0, lo: 0, hi: 2, codebook: intensityHCB, isIntensity: true, intensityDir: 1, intensityLog: 4}}
	var msUsed [maxWindowGroups][maxSFB]bool

	applyJointStereo(left, right, bandsL, bandsR, 0, msUsed)

	scale := math.Pow(2, -0.25*4)
	assert.InDelta(t, float64(2)*scale, right[0], 1e-6)
	assert.InDelta(t, float64(4)*scale, right[1], 1e-6)
}

func TestApplyJointStereoIntensityInvertedByMSUsed(t *testing.T) {
	left := []float32{2}
	right := []float32{0}
	bandsL := []spectrumBand{{group: 0, sfb: 0, lo: 0, hi: 1}}
	bandsR := []spectrumBand{{group: 0, sfb: 0, lo: 0, hi: 1, codebook: intensityHCB, isIntensity: true, intensityDir: 1, intensityLog: 0}}
	var msUsed [maxWindowGroups][maxSFB]bool
	msUsed[0][0] = true

	applyJointStereo(left, right, bandsL, bandsR, 1, msUsed)
	assert.InDelta(t, -2.0, right[0], 1e-6)
}

func TestApplyJointStereoMidSide(t *testing.T) {
	left := []float32{5}
	right := []float32{3}
	bandsL := []spectrumBand{{group: 0, sfb: 0, lo: 0, hi: 1, codebook: 7}}
	bandsR := []spectrumBand{{group: 0, sfb: 0, lo: 0, hi: 1, codebook: 7}}
	var msUsed [maxWindowGroups][maxSFB]bool

	applyJointStereo(left, right, bandsL, bandsR, 2, msUsed)
	assert.Equal(t, float32(8), left[0])
	assert.Equal(t, float32(2), right[0])
}

func TestApplyJointStereoSkipsNoiseBands(t *testing.T) {
	left := []float32{5}
	right := []float32{3}
	bandsL := []spectrumBand{{group: 0, sfb: 0, lo: 0, hi: 1, codebook: noiseHCB}}
	bandsR := []spectrumBand{{group: 0, sfb: 0, lo: 0, hi: 1, codebook: 7}}
	var msUsed [maxWindowGroups][maxSFB]bool

	applyJointStereo(left, right, bandsL, bandsR, 2, msUsed)
	assert.Equal(t, float32(5), left[0])
	assert.Equal(t, float32(3), right[0])
}
