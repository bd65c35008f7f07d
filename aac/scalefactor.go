package aac

import "github.com/llehouerou/audiocore/bitio"

// scalefactorDelta reads one Huffman-coded scalefactor delta, range
// [-60, 60]. The real codebook (ISO/IEC 14496-3 Table 4.A.8) is a binary
// tree of 121 variable-length codewords built for skew towards zero; this
// decoder reads a fixed 7-bit code instead (121 values fit in 7 bits,
// 0..120, mapped to -60..60), the same documented scope trade-off this
// module makes for MP3's Huffman tables 1-3 and count1-A: exact codeword
// lengths and prefixes can't be transcribed from memory with any
// confidence of bit-exactness without a reference decoder to check
// against.
func scalefactorDelta(br bitio.BitReader) (int16, error) {
	v, err := br.ReadBitsLeq32(7)
	if err != nil {
		return 0, err
	}
	if v > 120 {
		v = 120
	}
	return int16(v) - 60, nil
}

// decodeScalefactors fills ics.Scalefactors and tracks the three
// running-total state variables the standard defines: scf_normal (spectral
// codebooks), scf_intensity (codebooks 14/15), and scf_noise (codebook 13,
// PNS), each seeded from global_gain per §4.5.2.3.2.
func decodeScalefactors(br bitio.BitReader, ics *ICSInfo) error {
	scfNormal := int16(ics.GlobalGain)
	scfIntensity := int16(0)
	scfNoise := int16(ics.GlobalGain) - 90
	noisePCMPending := true

	for g := uint8(0); g < ics.NumWindowGroups; g++ {
		for sfb := uint8(0); sfb < ics.MaxSFB; sfb++ {
			switch ics.SectCB[g][sfb] {
			case zeroHCB:
				ics.Scalefactors[g][sfb] = 0

			case intensityHCB, intensityHCB2:
				delta, err := scalefactorDelta(br)
				if err != nil {
					return err
				}
				scfIntensity += delta
				ics.Scalefactors[g][sfb] = scfIntensity

			case noiseHCB:
				if noisePCMPending {
					noisePCMPending = false
					v, err := br.ReadBitsLeq32(9)
					if err != nil {
						return err
					}
					scfNoise += int16(v) - 256
				} else {
					delta, err := scalefactorDelta(br)
					if err != nil {
						return err
					}
					scfNoise += delta
				}
				ics.Scalefactors[g][sfb] = scfNoise

			default:
				delta, err := scalefactorDelta(br)
				if err != nil {
					return err
				}
				scfNormal += delta
				if scfNormal < 0 || scfNormal > 255 {
					return errScalefactorRange
				}
				ics.Scalefactors[g][sfb] = scfNormal
			}
		}
	}

	return nil
}
