package bitio

// ReadUTF8Extended decodes a FLAC-style "UTF-8 extended" integer (spec §4.1):
// the leading byte's run of leading 1 bits (0 to 6) gives the total byte
// count, and each continuation byte contributes 6 low bits. ok is false
// when the leading byte is not a valid UTF-8 start byte (0x80-0xBF, or all
// ones), matching the "None" case of spec's testable property; err is
// non-nil only on stream underrun.
func ReadUTF8Extended(br BitReader) (value uint64, ok bool, err error) {
	c0, err := br.ReadBitsLeq32(8)
	if err != nil {
		return 0, false, err
	}
	b0 := byte(c0)

	if b0 < 0x80 {
		return uint64(b0), true, nil
	}
	if b0 < 0xC0 {
		// 10xxxxxx: unexpected continuation byte.
		return 0, false, nil
	}

	var l int
	var x uint64
	switch {
	case b0 < 0xE0:
		l, x = 1, uint64(b0&0x1F)
	case b0 < 0xF0:
		l, x = 2, uint64(b0&0x0F)
	case b0 < 0xF8:
		l, x = 3, uint64(b0&0x07)
	case b0 < 0xFC:
		l, x = 4, uint64(b0&0x03)
	case b0 < 0xFE:
		l, x = 5, uint64(b0&0x01)
	case b0 < 0xFF:
		l, x = 6, 0
	default:
		// 0xFF: not a valid UTF-8 leading byte.
		return 0, false, nil
	}

	for i := 0; i < l; i++ {
		cv, err := br.ReadBitsLeq32(8)
		if err != nil {
			return 0, false, err
		}
		c := byte(cv)
		if c < 0x80 || c >= 0xC0 {
			return 0, false, nil
		}
		x = x<<6 | uint64(c&0x3F)
	}
	return x, true, nil
}
