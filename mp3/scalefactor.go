package mp3

import (
	"github.com/llehouerou/audiocore/bitio"
	"github.com/llehouerou/audiocore/internal/tables"
)

// scalefacCompressTable maps scalefac_compress (MPEG-1, spec table) to the
// bit widths of a granule's two scalefactor groups: slen1 for the lower
// bands, slen2 for the higher ones.
var scalefacCompressTable = [16][2]int{
	{0, 0}, {0, 1}, {0, 2}, {0, 3}, {3, 0}, {1, 1}, {1, 2}, {1, 3},
	{2, 1}, {2, 2}, {2, 3}, {3, 1}, {3, 2}, {3, 3}, {4, 2}, {4, 3},
}

// scfsiGroupBounds splits the 21 long-block scalefactor bands into the four
// groups scfsi copies independently from granule 0 into granule 1.
var scfsiGroupBounds = [5]int{0, 6, 11, 16, 21}

func scfsiGroup(band int) int {
	for g := 0; g < 4; g++ {
		if band >= scfsiGroupBounds[g] && band < scfsiGroupBounds[g+1] {
			return g
		}
	}
	return 3
}

func sampleRateGroup(rate int) int {
	switch rate {
	case 44100:
		return 0
	case 48000:
		return 1
	default:
		return 2
	}
}

// Scalefactors holds one granule/channel's decoded scalefactor values: Long
// is indexed by scalefactor band for a long or mixed block's long portion,
// Short[w] by band for each of the three short windows.
type Scalefactors struct {
	Long  []int
	Short [3][]int
}

// ReadScalefactors reads one granule/channel's scalefactors immediately
// following the side information (or, across granules, immediately
// following the previous channel's Huffman data), applying MPEG-1's scfsi
// carry-over from granule 0 into granule 1 where the side info selects it.
// prev is the granule-0 result for the same channel; it is ignored when
// gr == 0.
func ReadScalefactors(br bitio.BitReader, hdr Header, si *SideInfo, gr, ch int, prev *Scalefactors) (Scalefactors, error) {
	slen := [2]int{4, 4}
	if hdr.IsMPEG1() {
		slen = scalefacCompressTable[si.ScalefacCompress[gr][ch]]
	}
	// MPEG-2/2.5's NSHB (non-uniform scalefactor) compression scheme is out
	// of scope; those streams fall back to a fixed 4-bit read per band,
	// which keeps the bitstream cursor structurally advancing but will not
	// reproduce exact scalefactor values for MPEG-2/2.5 input.

	bands := tables.MP3ScalefacBandIndices[sampleRateGroup(hdr.SampleRate)]
	blockType := si.BlockType[gr][ch]
	mixed := si.MixedBlockFlag[gr][ch] == 1

	readBits := func(n int) (int, error) {
		if n == 0 {
			return 0, nil
		}
		v, err := br.ReadBitsLeq32(uint(n))
		return int(v), err
	}
	carryLong := func(band int) bool {
		return hdr.IsMPEG1() && gr == 1 && prev != nil && si.Scfsi[ch][scfsiGroup(band)] == 1
	}

	var sf Scalefactors
	longBands := len(bands.Long) - 1
	shortBands := len(bands.Short) - 1

	if blockType == 2 && !mixed {
		for w := 0; w < 3; w++ {
			sf.Short[w] = make([]int, shortBands)
			for band := 0; band < shortBands; band++ {
				bits := slen[0]
				if band >= 6 {
					bits = slen[1]
				}
				v, err := readBits(bits)
				if err != nil {
					return Scalefactors{}, err
				}
				sf.Short[w][band] = v
			}
		}
		return sf, nil
	}

	longCount := longBands
	if mixed {
		longCount = 8
	}
	sf.Long = make([]int, longBands)
	for band := 0; band < longCount; band++ {
		bits := slen[0]
		if band >= 11 {
			bits = slen[1]
		}
		if carryLong(band) {
			sf.Long[band] = prev.Long[band]
			continue
		}
		v, err := readBits(bits)
		if err != nil {
			return Scalefactors{}, err
		}
		sf.Long[band] = v
	}

	if mixed {
		for w := 0; w < 3; w++ {
			sf.Short[w] = make([]int, shortBands)
			for band := 3; band < shortBands; band++ {
				bits := slen[0]
				if band >= 6 {
					bits = slen[1]
				}
				v, err := readBits(bits)
				if err != nil {
					return Scalefactors{}, err
				}
				sf.Short[w][band] = v
			}
		}
	}

	return sf, nil
}
