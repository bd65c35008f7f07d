package aac

import "math"

// applyJointStereo reconciles a channel pair's independently-decoded
// spectra per §4.5's CPE rules. bandsL and bandsR share the same
// (group, sfb) layout since a CPE's two channels decode against a common
// window/section structure; msUsed[g][sfb] is the per-band M/S flag read
// when ms_mask_present == 1.
func applyJointStereo(left, right []float32, bandsL, bandsR []spectrumBand, msMaskPresent uint8, msUsed [maxWindowGroups][maxSFB]bool) {
	for i := range bandsR {
		bl := bandsL[i]
		br := bandsR[i]

		if br.isIntensity {
			invert := msMaskPresent == 1 && msUsed[br.group][br.sfb]
			dir := float64(br.intensityDir)
			if invert {
				dir = -dir
			}
			scale := math.Pow(2, -0.25*br.intensityLog)
			for j := bl.lo; j < bl.hi && j < len(left) && j < len(right); j++ {
				right[j] = float32(dir * scale * float64(left[j]))
			}
			continue
		}

		if bl.codebook == noiseHCB || br.codebook == noiseHCB {
			continue
		}

		if msMaskPresent == 2 || msUsed[br.group][br.sfb] {
			for j := bl.lo; j < bl.hi && j < len(left) && j < len(right); j++ {
				m := float64(left[j])
				s := float64(right[j])
				left[j] = float32(m + s)
				right[j] = float32(m - s)
			}
		}
	}
}
