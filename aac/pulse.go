package aac

import (
	"math"

	"github.com/llehouerou/audiocore/bitio"
)

const maxPulses = 4

type pulseData struct {
	present     bool
	startSFB    uint8
	numPulses   int
	offset      [maxPulses]uint8
	amplitude   [maxPulses]uint8
}

// parsePulseData reads pulse_data() (§4.4.2.5): long windows only, up to
// four impulse-like corrections applied on top of the Huffman-decoded
// spectrum to better represent sharp transients.
func parsePulseData(br bitio.BitReader, ics *ICSInfo) (pulseData, error) {
	var p pulseData
	if ics.WindowSequence == EightShortSequence {
		return p, errPulseShortBlock
	}

	n, err := br.ReadBitsLeq32(2)
	if err != nil {
		return p, err
	}
	p.present = true
	p.numPulses = int(n) + 1

	startSFB, err := br.ReadBitsLeq32(6)
	if err != nil {
		return p, err
	}
	p.startSFB = uint8(startSFB)

	for i := 0; i < p.numPulses; i++ {
		off, err := br.ReadBitsLeq32(5)
		if err != nil {
			return p, err
		}
		amp, err := br.ReadBitsLeq32(4)
		if err != nil {
			return p, err
		}
		p.offset[i] = uint8(off)
		p.amplitude[i] = uint8(amp)
	}
	return p, nil
}

// applyPulses adjusts the already-dequantized coefficients at each pulse
// position: the transmitted amplitude perturbs the underlying quantized
// magnitude by +-amplitude (sign taken from the coefficient's own sign, or
// positive if it was exactly zero), then the 4/3-power dequantization is
// redone with that coefficient's band scale. startSample is the spectral
// line corresponding to p.startSFB (the caller resolves the scalefactor
// band boundary via the sample-rate's SWB offset table); scales holds one
// dequantization scale per entry of coef, as produced by decodeSpectrum.
func applyPulses(coef []float32, scales []float64, startSample int, p pulseData) {
	if !p.present {
		return
	}
	offset := startSample
	for i := 0; i < p.numPulses; i++ {
		offset += int(p.offset[i])
		if offset < 0 || offset >= len(coef) || offset >= len(scales) {
			continue
		}
		scale := scales[offset]
		cur := float64(coef[offset])
		mag, sign := 0.0, 1.0
		if scale != 0 {
			mag = mag4(cur, scale)
		}
		if cur < 0 {
			sign = -1
		}
		mag += sign * float64(p.amplitude[i])
		if mag < 0 {
			mag, sign = -mag, -sign
		}
		coef[offset] = float32(sign * pow43(mag) * scale)
	}
}

func mag4(v, scale float64) float64 {
	if scale == 0 {
		return 0
	}
	x := v / scale
	if x < 0 {
		x = -x
	}
	if x == 0 {
		return 0
	}
	return math.Pow(x, 3.0/4.0)
}

func pow43(v float64) float64 {
	if v == 0 {
		return 0
	}
	return math.Pow(v, 4.0/3.0)
}
