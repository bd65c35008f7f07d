package audio

import "math/bits"

// Channel is a positional channel bit, ascending bit index giving the
// canonical in-buffer channel rank (spec §3).
type Channel uint32

const (
	ChannelFrontLeft Channel = 1 << iota
	ChannelFrontRight
	ChannelFrontCenter
	ChannelLFE
	ChannelBackLeft
	ChannelBackRight
	ChannelFrontLeftCenter
	ChannelFrontRightCenter
	ChannelBackCenter
	ChannelSideLeft
	ChannelSideRight
)

// ChannelLayout is a channel set: positional bitmask, a discrete channel
// count, an Ambisonic order, or a custom ordered label list (spec §3).
type ChannelLayout struct {
	Positional Channel  // used when Kind == LayoutPositional
	Discrete   int      // used when Kind == LayoutDiscrete
	Ambisonic  int      // used when Kind == LayoutAmbisonic; order N
	Custom     []string // used when Kind == LayoutCustom

	Kind LayoutKind
}

type LayoutKind uint8

const (
	LayoutPositional LayoutKind = iota
	LayoutDiscrete
	LayoutAmbisonic
	LayoutCustom
)

// Stereo is the common Independent(2)-equivalent layout.
func Stereo() ChannelLayout {
	return ChannelLayout{Kind: LayoutPositional, Positional: ChannelFrontLeft | ChannelFrontRight}
}

// Mono is a single positional front-center channel.
func Mono() ChannelLayout {
	return ChannelLayout{Kind: LayoutPositional, Positional: ChannelFrontCenter}
}

// Discrete builds an n-channel layout carrying no positional semantics,
// used by FLAC's Independent(n) channel assignment for n != 1, 2.
func Discrete(n int) ChannelLayout {
	return ChannelLayout{Kind: LayoutDiscrete, Discrete: n}
}

// Count returns the number of channels the layout describes.
func (c ChannelLayout) Count() int {
	switch c.Kind {
	case LayoutPositional:
		return bits.OnesCount32(uint32(c.Positional))
	case LayoutDiscrete:
		return c.Discrete
	case LayoutAmbisonic:
		return (c.Ambisonic + 1) * (c.Ambisonic + 1)
	case LayoutCustom:
		return len(c.Custom)
	}
	return 0
}

// Index returns the canonical in-buffer index of a positional channel: its
// ascending rank among the set bits of Positional. ok is false if ch is not
// part of the layout.
func (c ChannelLayout) Index(ch Channel) (idx int, ok bool) {
	if c.Kind != LayoutPositional || c.Positional&ch == 0 {
		return 0, false
	}
	mask := c.Positional & (ch - 1)
	return bits.OnesCount32(uint32(mask)), true
}

// SignalSpec pairs a sample rate with a channel layout (spec §3).
type SignalSpec struct {
	SampleRate uint32
	Layout     ChannelLayout
}
