package aac

import (
	"math"

	"github.com/llehouerou/audiocore/bitio"
	"github.com/llehouerou/audiocore/internal/tables"
)

// nextRand advances the perceptual-noise-substitution LCG and returns the
// high 16 bits reinterpreted as a signed value, per spec §4.5's
// `s = s*1664525 + 1013904223`.
func nextRand(state *uint32) int16 {
	*state = (*state)*1664525 + 1013904223
	return int16(*state >> 16)
}

// windowGroupOf returns, for absolute window index w, the group it
// belongs to.
func windowGroupOf(ics *ICSInfo, w uint8) uint8 {
	var acc uint8
	for g := uint8(0); g < ics.NumWindowGroups; g++ {
		acc += ics.WindowGroupLen[g]
		if w < acc {
			return g
		}
	}
	return ics.NumWindowGroups - 1
}

// spectrumBand is band bookkeeping shared by spectrum decoding and the
// joint-stereo stage: absolute sample range within a window, the
// codebook assigned to it, and (for intensity bands) the direction and
// log-domain scale the second channel will apply to the first channel's
// already-dequantized coefficients.
type spectrumBand struct {
	group, sfb   uint8
	lo, hi       int
	codebook     uint8
	isIntensity  bool
	intensityDir int8
	intensityLog float64 // scf_intensity, for 2^(-0.25*scf_intensity)
}

// decodeSpectrum reconstructs one channel's dequantized spectral
// coefficients: `numWindows` windows of `windowLen` samples each
// (windowLen is 128 for Eight_Short, 1024 otherwise), laid out
// window-major so window w occupies `coef[w*windowLen:(w+1)*windowLen]`.
// rngState is the channel's persistent PNS generator seed.
func decodeSpectrum(br bitio.BitReader, ics *ICSInfo, srIndex uint8, rngState *uint32) ([]float32, []float64, []spectrumBand, error) {
	windowLen := 1024
	isShort := ics.WindowSequence == EightShortSequence
	if isShort {
		windowLen = 128
	}
	offsets, err := tables.GetSWBOffset(srIndex, 1024, isShort)
	if err != nil {
		return nil, nil, nil, err
	}
	numSWB := int(ics.MaxSFB)
	if numSWB > len(offsets)-1 {
		numSWB = len(offsets) - 1
	}
	ics.NumSWB = numSWB

	coef := make([]float32, int(ics.NumWindows)*windowLen)
	scales := make([]float64, len(coef))
	var bands []spectrumBand

	for w := uint8(0); w < ics.NumWindows; w++ {
		g := windowGroupOf(ics, w)
		base := int(w) * windowLen

		for sfb := 0; sfb < numSWB; sfb++ {
			lo, hi := int(offsets[sfb]), int(offsets[sfb+1])
			cb := ics.SectCB[g][sfb]
			sfVal := ics.Scalefactors[g][sfb]

			b := spectrumBand{group: g, sfb: uint8(sfb), lo: base + lo, hi: base + hi, codebook: cb}

			switch cb {
			case zeroHCB:
				// already zero

			case intensityHCB, intensityHCB2:
				b.isIntensity = true
				b.intensityLog = float64(sfVal)
				if cb == intensityHCB2 {
					b.intensityDir = -1
				} else {
					b.intensityDir = 1
				}

			case noiseHCB:
				raw := make([]float64, hi-lo)
				var energy float64
				for i := range raw {
					v := float64(nextRand(rngState))
					raw[i] = v
					energy += v * v
				}
				scale := math.Pow(2, 0.25*(float64(sfVal)-56))
				if energy > 0 {
					scale /= math.Sqrt(energy)
				}
				for i, v := range raw {
					coef[base+lo+i] = float32(v * scale)
					scales[base+lo+i] = scale
				}

			default:
				scale := math.Pow(2, 0.25*(float64(sfVal)-156))
				for i := base + lo; i < base+hi; i++ {
					scales[i] = scale
				}
				def, ok := spectralCodebooks[cb]
				if !ok {
					return nil, nil, nil, errHuffmanCodeword
				}
				step := 2
				if !def.isPair {
					step = 4
				}
				for i := lo; i < hi; i += step {
					if def.isPair {
						x, y, err := decodePair(br, cb)
						if err != nil {
							return nil, nil, nil, err
						}
						setDequant(coef, base+i, hi, scale, x, y)
					} else {
						x, y, z, v, err := decodeQuad(br, cb)
						if err != nil {
							return nil, nil, nil, err
						}
						setDequant(coef, base+i, hi, scale, x, y, z, v)
					}
				}
			}

			bands = append(bands, b)
		}
	}

	return coef, scales, bands, nil
}

// setDequant applies pow(|v|,4/3)*scale with v's sign, writing len(vals)
// consecutive coefficients at coef[idx:], never past limit (a huffman read
// may decode a full quad/pair that overruns a band narrower than the
// codebook's group size; the tail is discarded rather than written out of
// range).
func setDequant(coef []float32, idx, limit int, scale float64, vals ...int32) {
	for i, v := range vals {
		if idx+i >= limit {
			return
		}
		coef[idx+i] = float32(signedPow43(v) * scale)
	}
}

func signedPow43(v int32) float64 {
	if v == 0 {
		return 0
	}
	mag := math.Pow(math.Abs(float64(v)), 4.0/3.0)
	if v < 0 {
		return -mag
	}
	return mag
}
