package aac

import "github.com/llehouerou/audiocore/bitio"

// Codebook identifiers named by ISO/IEC 14496-3 Table 4.65.
const (
	zeroHCB      = 0
	firstPairHCB = 5
	escHCB       = 11
	noiseHCB     = 13
	intensityHCB2 = 14 // out of phase
	intensityHCB  = 15 // in phase
)

// parseSectionData reads section_data() (§4.4.2.4): a run-length encoding
// that assigns one Huffman codebook to each contiguous run of scalefactor
// bands, per window group.
func parseSectionData(br bitio.BitReader, ics *ICSInfo) error {
	sectBits := uint(5)
	sectLim := uint8(maxSFB)
	if ics.WindowSequence == EightShortSequence {
		sectBits = 3
		sectLim = 8 * 15
	}
	escVal := uint32((1 << sectBits) - 1)

	for g := uint8(0); g < ics.NumWindowGroups; g++ {
		k := uint8(0)
		for k < ics.MaxSFB {
			cb, err := br.ReadBitsLeq32(4)
			if err != nil {
				return err
			}
			if cb == 12 {
				return errReservedCodebook
			}

			var sectLen uint32
			for {
				incr, err := br.ReadBitsLeq32(sectBits)
				if err != nil {
					return err
				}
				sectLen += incr
				if incr != escVal {
					break
				}
			}

			if uint32(k)+sectLen > uint32(sectLim) || k+uint8(sectLen) > ics.MaxSFB {
				return errSectionOverflow
			}
			for sfb := k; sfb < k+uint8(sectLen); sfb++ {
				ics.SectCB[g][sfb] = uint8(cb)
			}
			k += uint8(sectLen)
		}
		if k != ics.MaxSFB {
			return errSectionOverflow
		}
	}

	return nil
}
