package mp3

import (
	"math"

	"github.com/llehouerou/audiocore/internal/tables"
)

// pretab is the fixed table added to a long block's scalefactor when
// preflag is set, boosting high-frequency bands before quantization to
// spend fewer bits there.
var pretab = [21]int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 3, 3, 3, 2}

// requantize converts one granule/channel's Huffman-decoded integer spectral
// values (is, signed) into real-valued frequency-line samples, following
// the global_gain / scalefac_scale / subblock_gain exponent structure every
// Layer III decoder applies before reordering and anti-aliasing.
func requantize(is []int32, sf Scalefactors, si *SideInfo, gr, ch int, hdr Header) []float64 {
	out := make([]float64, len(is))
	globalGain := si.GlobalGain[gr][ch]
	scalefacMultiplier := 0.5
	if si.ScalefacScale[gr][ch] == 1 {
		scalefacMultiplier = 1.0
	}
	preflag := si.Preflag[gr][ch] == 1
	blockType := si.BlockType[gr][ch]
	mixed := si.MixedBlockFlag[gr][ch] == 1

	bands := tables.MP3ScalefacBandIndices[sampleRateGroup(hdr.SampleRate)]

	// lineGain computes 2^(0.25*A) * 2^(-B): A = global_gain - 210
	// (- 8*subblock_gain for short windows), B = scalefac_multiplier *
	// scalefac.
	lineGain := func(sfbGain int, subblockGain int) float64 {
		a := float64(globalGain - 210)
		if subblockGain != 0 {
			a -= 8 * float64(subblockGain)
		}
		b := scalefacMultiplier * float64(sfbGain)
		return math.Pow(2, 0.25*a-b)
	}

	applyLong := func(lo, hi, band int) {
		sfVal := 0
		if band < len(sf.Long) {
			sfVal = sf.Long[band]
			if preflag && band < len(pretab) {
				sfVal += pretab[band]
			}
		}
		g := lineGain(sfVal, 0)
		for i := lo; i < hi && i < len(is); i++ {
			out[i] = signedPow43(is[i]) * g
		}
	}

	applyShort := func(lo, hi, band, win int) {
		sfVal := 0
		if band < len(sf.Short[win]) {
			sfVal = sf.Short[win][band]
		}
		subGain := si.SubblockGain[gr][ch][win]
		g := lineGain(sfVal, subGain)
		for i := lo; i < hi && i < len(is); i++ {
			out[i] = signedPow43(is[i]) * g
		}
	}

	switch {
	case blockType == 2 && !mixed:
		// Pure short block: per band, three windows stored consecutively
		// (window-major); reorder then converts this to band-major order.
		i := 0
		for band := 0; band < len(bands.Short)-1; band++ {
			width := bands.Short[band+1] - bands.Short[band]
			for win := 0; win < 3; win++ {
				applyShort(i, i+width, band, win)
				i += width
			}
		}
	case mixed:
		// Long bands 0..7 (36 samples, the span of short bands 0..2 across
		// three windows) requantize as long; the remainder requantizes as
		// short from short band 3.
		for band := 0; band < 8; band++ {
			applyLong(bands.Long[band], bands.Long[band+1], band)
		}
		i := bands.Long[8]
		for band := 3; band < len(bands.Short)-1; band++ {
			width := bands.Short[band+1] - bands.Short[band]
			for win := 0; win < 3; win++ {
				applyShort(i, i+width, band, win)
				i += width
			}
		}
	default:
		for band := 0; band < len(bands.Long)-1; band++ {
			applyLong(bands.Long[band], bands.Long[band+1], band)
		}
	}

	return out
}

func signedPow43(v int32) float64 {
	if v == 0 {
		return 0
	}
	mag := tables.Pow43(int(abs32(v)))
	if v < 0 {
		return -mag
	}
	return mag
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
