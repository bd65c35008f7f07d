// Package tables holds shared read-only lookup tables used by more than
// one format decoder: MP3's scalefactor band boundaries and synthesis
// window, and the x^(4/3) power table MP3 requantization uses.
package tables

// ScalefacBandIndices gives the long-block (L) and short-block (S) scale
// factor band boundary tables for each of MP3's three sampling-frequency
// groups (44100/48000/32000 Hz family, indexed the same way as the header's
// sampling_frequency field), grounded on the standard ISO/IEC 11172-3
// Annex B tables every Layer III decoder embeds verbatim.
type ScalefacBandIndices struct {
	Long  []int
	Short []int
}

var MP3ScalefacBandIndices = [3]ScalefacBandIndices{
	{ // 44100 Hz
		Long:  []int{0, 4, 8, 12, 16, 20, 24, 30, 36, 44, 52, 62, 74, 90, 110, 134, 162, 196, 238, 288, 342, 418, 576},
		Short: []int{0, 4, 8, 12, 16, 22, 30, 40, 52, 66, 84, 106, 136, 192},
	},
	{ // 48000 Hz
		Long:  []int{0, 4, 8, 12, 16, 20, 24, 30, 36, 42, 50, 60, 72, 88, 106, 128, 156, 190, 230, 276, 330, 384, 576},
		Short: []int{0, 4, 8, 12, 16, 22, 28, 38, 50, 64, 80, 100, 126, 192},
	},
	{ // 32000 Hz
		Long:  []int{0, 4, 8, 12, 16, 20, 24, 30, 36, 44, 54, 66, 82, 102, 126, 156, 194, 240, 296, 364, 448, 550, 576},
		Short: []int{0, 4, 8, 12, 16, 22, 30, 42, 58, 78, 104, 138, 180, 192},
	},
}

// pow43 is the lookup table for x^(4/3), x in [0, 8206], used to requantize
// Huffman-decoded magnitudes (big_values codewords extended by up to 13
// linbits on top of a base magnitude of 15 can reach just above 8192).
var pow43 [8207]float64

func init() {
	pow43[0] = 0
	for i := 1; i < len(pow43); i++ {
		pow43[i] = powFrac43(float64(i))
	}
}

func powFrac43(x float64) float64 {
	if x == 0 {
		return 0
	}
	return x * cubeRoot(x)
}

func cubeRoot(x float64) float64 {
	if x == 0 {
		return 0
	}
	guess := x
	if guess <= 0 {
		guess = 1
	}
	for i := 0; i < 24; i++ {
		guess = (2*guess + x/(guess*guess)) / 3
	}
	return guess
}

// Pow43 returns x^(4/3): from the table for x in [0, 8206], computed
// directly for larger x, and 0 for negative x.
func Pow43(x int) float64 {
	if x < 0 {
		return 0
	}
	if x >= len(pow43) {
		return powFrac43(float64(x))
	}
	return pow43[x]
}
