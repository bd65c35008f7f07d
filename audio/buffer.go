package audio

import "fmt"

// AudioBuffer is a planar, fixed-capacity multi-channel sample buffer:
// one contiguous slice per channel, all sharing a logical frame count (spec
// §3). Every codec decoder in this module renders into one of these rather
// than an interleaved buffer, since Rice/Huffman/IMDCT stages all operate
// one channel at a time.
type AudioBuffer[S Sample] struct {
	chans []buf[S]
	spec  SignalSpec
	cap   int
	n     int // frames currently valid
}

type buf[S Sample] []S

// NewAudioBuffer allocates a buffer able to hold capacityFrames frames for
// every channel in spec.Layout. It panics if capacityFrames*channels would
// overflow an int, matching the teacher's convention of failing fast on
// buffer construction rather than on first use.
func NewAudioBuffer[S Sample](capacityFrames int, spec SignalSpec) *AudioBuffer[S] {
	if capacityFrames < 0 {
		panic("audio: negative capacity")
	}
	nch := spec.Layout.Count()
	if nch <= 0 {
		panic("audio: channel layout has no channels")
	}
	if nch > 0 && capacityFrames > (1<<62)/nch {
		panic("audio: capacity overflows")
	}

	b := &AudioBuffer[S]{
		chans: make([]buf[S], nch),
		spec:  spec,
		cap:   capacityFrames,
	}
	for c := range b.chans {
		b.chans[c] = make(buf[S], capacityFrames)
	}
	return b
}

// Spec returns the buffer's signal spec.
func (b *AudioBuffer[S]) Spec() SignalSpec { return b.spec }

// Capacity returns the number of frames the buffer can hold.
func (b *AudioBuffer[S]) Capacity() int { return b.cap }

// Frames returns the number of valid frames currently in the buffer.
func (b *AudioBuffer[S]) Frames() int { return b.n }

// Channels returns the number of channel planes.
func (b *AudioBuffer[S]) Channels() int { return len(b.chans) }

// Chan returns the full-capacity backing slice for channel c, sliced to the
// buffer's current valid frame count. Callers writing new samples should use
// RenderReserved to grow n first.
func (b *AudioBuffer[S]) Chan(c int) []S {
	return b.chans[c][:b.n]
}

// ChanPairMut returns mutable slices for two distinct channels at once, for
// operations like FLAC's stereo decorrelation that must read and write both
// channels of a frame together. It panics if a == b, since Go cannot express
// two live mutable slices into the same backing array safely otherwise.
func (b *AudioBuffer[S]) ChanPairMut(a, c int) (chA, chC []S) {
	if a == c {
		panic("audio: ChanPairMut requires distinct channel indices")
	}
	return b.chans[a][:b.n], b.chans[c][:b.n]
}

// RenderReserved grows the valid frame count by n, leaving the newly
// exposed region of every channel as it was in memory; callers reach it
// through Chan. It panics if n would exceed capacity, since a
// decoder overrunning its own buffer is a caller bug, not runtime data.
func (b *AudioBuffer[S]) RenderReserved(n int) {
	if b.n+n > b.cap {
		panic(fmt.Sprintf("audio: render of %d frames exceeds capacity (have %d/%d)", n, b.n, b.cap))
	}
	b.n += n
}

// RenderSilence appends n frames of silence (Mid[S]) to every channel.
func (b *AudioBuffer[S]) RenderSilence(n int) {
	start := b.n
	b.RenderReserved(n)
	mid := Mid[S]()
	for c := range b.chans {
		plane := b.chans[c][start:b.n]
		for i := range plane {
			plane[i] = mid
		}
	}
}

// Truncate shrinks the valid frame count to n. It panics if n is out of
// [0, Frames()] range.
func (b *AudioBuffer[S]) Truncate(n int) {
	if n < 0 || n > b.n {
		panic("audio: Truncate out of range")
	}
	b.n = n
}

// Clear empties the buffer without releasing its backing storage.
func (b *AudioBuffer[S]) Clear() { b.n = 0 }

// Shift discards the first k frames of every channel, compacting the
// remainder to the front. Used by gapless trim (spec §4.4, SPEC_FULL §13)
// and by decoders that must drop already-consumed lookahead frames.
func (b *AudioBuffer[S]) Shift(k int) {
	if k < 0 || k > b.n {
		panic("audio: Shift out of range")
	}
	if k == 0 {
		return
	}
	for c := range b.chans {
		copy(b.chans[c], b.chans[c][k:b.n])
	}
	b.n -= k
}

// Trim removes `start` frames from the front and `end` frames from the back
// of the buffer's current valid region, implementing the gapless-playback
// trim operation a container's packet-level trim_start/trim_end asks of the
// decoded frame (SPEC_FULL §13). It panics if start+end exceeds Frames().
func (b *AudioBuffer[S]) Trim(start, end int) {
	if start < 0 || end < 0 || start+end > b.n {
		panic("audio: Trim out of range")
	}
	if end > 0 {
		b.Truncate(b.n - end)
	}
	if start > 0 {
		b.Shift(start)
	}
}

// Fill replaces every sample of channel c's valid region with the result of
// f applied to its current value.
func (b *AudioBuffer[S]) Fill(c int, f func(S) S) {
	plane := b.chans[c][:b.n]
	for i := range plane {
		plane[i] = f(plane[i])
	}
}

// Transform copies src's channels into b verbatim, converting each sample
// from type F to S via FromSample. src and b must share a channel count;
// Transform grows b by src.Frames() frames. This is how a decoder's
// internal fixed-point accumulator (commonly int32) is published into a
// caller-chosen output sample type.
func Transform[S Sample, F Sample](dst *AudioBuffer[S], src *AudioBuffer[F]) {
	if dst.Channels() != src.Channels() {
		panic("audio: Transform channel count mismatch")
	}
	n := src.Frames()
	start := dst.n
	dst.RenderReserved(n)
	for c := 0; c < src.Channels(); c++ {
		sp := src.Chan(c)
		dp := dst.chans[c][start:dst.n]
		for i := range sp {
			dp[i] = FromSample[F, S](sp[i])
		}
	}
}
