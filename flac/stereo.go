package flac

// Decorrelate reverses one of FLAC's three inter-channel stereo coding
// modes in place, turning the two decoded subframes back into left/right
// PCM (spec §2 channel assignment). chan0/chan1 must hold the raw decoded
// subframe values for this frame's two subframes, at whatever
// subframe-relative bit depth the encoder chose (left/right subframes get
// one extra bit of headroom in side channels, already accounted for by the
// bps passed to subframe decoding upstream).
func Decorrelate(assign ChannelAssignment, chan0, chan1 []int32) {
	switch assign {
	case ChannelLeftSide:
		// chan0 = left, chan1 = side = left - right
		for i := range chan0 {
			chan1[i] = chan0[i] - chan1[i]
		}
	case ChannelRightSide:
		// chan0 = side = left - right, chan1 = right
		for i := range chan0 {
			right := chan1[i]
			chan0[i] = chan0[i] + right
		}
	case ChannelMidSide:
		// chan0 = mid = (left+right)>>1 (floor), chan1 = side = left - right
		for i := range chan0 {
			mid := chan0[i]
			side := chan1[i]
			mid = mid<<1 | (side & 1)
			left := (mid + side) >> 1
			right := (mid - side) >> 1
			chan0[i] = left
			chan1[i] = right
		}
	}
}
