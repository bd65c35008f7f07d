package mp3

import (
	"github.com/llehouerou/audiocore/bitio"
	"github.com/llehouerou/audiocore/internal/tables"
)

// decodeSpectrum reads one granule/channel's big_values region pairs and
// count1 quadruples, producing 576 signed integer spectral values (rzero
// positions left at zero), per the region/table-selector layout in the
// side information and the part2_3_length bit budget that bounds this
// channel's Huffman data. Region boundaries are derived from the long-block
// scalefactor band table for every block type; real short-block region
// sizing differs in the standard, a simplification documented alongside
// the rest of this decoder's scope decisions.
func decodeSpectrum(br bitio.BitReader, hdr Header, si *SideInfo, gr, ch int, part2Bits uint64) []int32 {
	is := make([]int32, 576)
	bands := tables.MP3ScalefacBandIndices[sampleRateGroup(hdr.SampleRate)].Long

	startBits := br.BitsConsumed()
	withinBudget := func() bool { return br.BitsConsumed()-startBits < part2Bits }

	bigValues := si.BigValues[gr][ch]
	region0Count := si.Region0Count[gr][ch]
	region1Count := si.Region1Count[gr][ch]

	r1 := clampBand(bands, region0Count+1)
	r2 := clampBand(bands, region0Count+1+region1Count+1)

	total := bigValues * 2
	if total > 576 {
		total = 576
	}

	i := 0
	for i < total && withinBudget() {
		table := si.TableSelect[gr][ch][0]
		switch {
		case i >= r2:
			table = si.TableSelect[gr][ch][2]
		case i >= r1:
			table = si.TableSelect[gr][ch][1]
		}
		x, y, err := decodeBigValuePair(br, table)
		if err != nil {
			return is
		}
		is[i] = x
		if i+1 < total {
			is[i+1] = y
		}
		i += 2
	}

	count1Table := si.Count1TableSel[gr][ch]
	for i < 576 && withinBudget() {
		v, w, x, y, err := decodeCount1Quad(br, count1Table)
		if err != nil {
			// The reader ran out of data mid-codeword: decoding stops here,
			// leaving the remainder at its zero-filled default.
			return is
		}
		if br.BitsConsumed()-startBits > part2Bits {
			// This codeword overshot the channel's bit budget: back up 4
			// samples by leaving its values unstored.
			break
		}
		if i < 576 {
			is[i] = v
		}
		if i+1 < 576 {
			is[i+1] = w
		}
		if i+2 < 576 {
			is[i+2] = x
		}
		if i+3 < 576 {
			is[i+3] = y
		}
		i += 4
	}

	return is
}

func clampBand(bands []int, idx int) int {
	if idx < 0 {
		return 0
	}
	if idx >= len(bands) {
		return bands[len(bands)-1]
	}
	return bands[idx]
}
