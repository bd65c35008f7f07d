package mp3

import "math"

// aliasC is the eight antialiasing prototype constants from the standard;
// cs[i] and ca[i] below are derived from these by normalizing each onto the
// unit circle (cs = 1/sqrt(1+c^2), ca = c/sqrt(1+c^2)).
var aliasC = [8]float64{-0.6, -0.535, -0.33, -0.185, -0.095, -0.041, -0.0142, -0.0037}

var aliasCs, aliasCa [8]float64

func init() {
	for i, c := range aliasC {
		d := 1 / math.Sqrt(1+c*c)
		aliasCs[i] = d
		aliasCa[i] = c * d
	}
}

// antialias runs the 8-tap butterfly across each of the 31 sub-band
// boundaries of a reordered, requantized spectrum. Pure short blocks skip
// anti-aliasing entirely; mixed blocks alias only the long sub-band region
// (the first two sub-bands, 36 samples).
func antialias(lines []float64, blockType int, mixed bool) {
	if blockType == 2 && !mixed {
		return
	}
	subbands := 31
	if mixed {
		subbands = 1 // only the boundary between sub-band 0 and 1 is long/long
	}
	for sb := 0; sb < subbands; sb++ {
		for i := 0; i < 8; i++ {
			lo := sb*18 + 17 - i
			hi := (sb+1)*18 + i
			if hi >= len(lines) {
				continue
			}
			bu, bd := lines[lo], lines[hi]
			lines[lo] = bu*aliasCs[i] - bd*aliasCa[i]
			lines[hi] = bd*aliasCs[i] + bu*aliasCa[i]
		}
	}
}
