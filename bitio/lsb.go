package bitio

// LSbReader reads bits least-significant-bit first: within each byte, bit 0
// is read before bit 7. Included for spec completeness alongside MSbReader;
// none of FLAC, MP3 or AAC use this order themselves, but it shares the
// exact cache/stash discipline of MSbReader mirrored for the opposite
// justification (right-justified cache, next bit always the current LSb).
type LSbReader struct {
	src       ByteStream
	cache     uint64
	nbits     uint32
	stash     byte
	stashBits uint32
	consumed  uint64
}

// NewLSbReader builds an LSb-first BitReader over src.
func NewLSbReader(src ByteStream) *LSbReader {
	return &LSbReader{src: src}
}

func (r *LSbReader) fillOne() bool {
	room := 64 - r.nbits
	if room == 0 {
		return false
	}
	if r.stashBits > 0 {
		take := r.stashBits
		if take > room {
			take = room
		}
		value := uint64(r.stash) & ((1 << take) - 1)
		r.cache |= value << r.nbits
		r.nbits += take
		r.stash >>= take
		r.stashBits -= take
		return true
	}
	b, ok := fetch(r.src)
	if !ok {
		return false
	}
	if room >= 8 {
		r.cache |= uint64(b) << r.nbits
		r.nbits += 8
		return true
	}
	take := room
	value := uint64(b) & ((1 << take) - 1)
	r.cache |= value << r.nbits
	r.nbits += take
	r.stash = b >> take
	r.stashBits = 8 - take
	return true
}

func (r *LSbReader) ensure(n uint) error {
	for r.nbits < uint32(n) {
		if !r.fillOne() {
			return ErrUnexpectedEOF
		}
	}
	return nil
}

func (r *LSbReader) consumeBits(n uint) {
	if n == 0 {
		return
	}
	if n == 64 {
		r.cache = 0
	} else {
		r.cache >>= n
	}
	r.nbits -= uint32(n)
	r.consumed += uint64(n)
}

// ReadBitsLeq64 implements BitReader.
func (r *LSbReader) ReadBitsLeq64(n uint) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	if err := r.ensure(n); err != nil {
		return 0, err
	}
	var mask uint64
	if n == 64 {
		mask = ^uint64(0)
	} else {
		mask = (uint64(1) << n) - 1
	}
	v := r.cache & mask
	r.consumeBits(n)
	return v, nil
}

// ReadBitsLeq32 implements BitReader.
func (r *LSbReader) ReadBitsLeq32(n uint) (uint32, error) {
	v, err := r.ReadBitsLeq64(n)
	return uint32(v), err
}

// ReadBit implements BitReader.
func (r *LSbReader) ReadBit() (uint8, error) {
	v, err := r.ReadBitsLeq32(1)
	return uint8(v), err
}

// ReadBitsLeq32Signed implements BitReader.
func (r *LSbReader) ReadBitsLeq32Signed(n uint) (int32, error) {
	v, err := r.ReadBitsLeq32(n)
	if err != nil {
		return 0, err
	}
	return SignExtend32(v, n), nil
}

// ReadBitsLeq64Signed implements BitReader.
func (r *LSbReader) ReadBitsLeq64Signed(n uint) (int64, error) {
	v, err := r.ReadBitsLeq64(n)
	if err != nil {
		return 0, err
	}
	return SignExtend64(v, n), nil
}

// PeekBits implements BitReader.
func (r *LSbReader) PeekBits(n uint) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	if err := r.ensure(n); err != nil {
		return 0, err
	}
	mask := (uint64(1) << n) - 1
	return uint32(r.cache & mask), nil
}

// SkipBits implements BitReader.
func (r *LSbReader) SkipBits(n uint) error {
	if err := r.ensure(n); err != nil {
		return err
	}
	r.consumeBits(n)
	return nil
}

// IgnoreBits implements BitReader.
func (r *LSbReader) IgnoreBits(n uint) error { return r.SkipBits(n) }

func (r *LSbReader) readUnary(terminator uint8, capped bool, limit uint32) (uint32, error) {
	var n uint32
	for {
		if capped && n >= limit {
			return limit, nil
		}
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit == terminator {
			return n, nil
		}
		n++
	}
}

// ReadUnaryZeros implements BitReader.
func (r *LSbReader) ReadUnaryZeros() (uint32, error) { return r.readUnary(1, false, 0) }

// ReadUnaryOnes implements BitReader.
func (r *LSbReader) ReadUnaryOnes() (uint32, error) { return r.readUnary(0, false, 0) }

// ReadUnaryZerosCapped implements BitReader.
func (r *LSbReader) ReadUnaryZerosCapped(limit uint32) (uint32, error) {
	return r.readUnary(1, true, limit)
}

// ReadUnaryOnesCapped implements BitReader.
func (r *LSbReader) ReadUnaryOnesCapped(limit uint32) (uint32, error) {
	return r.readUnary(0, true, limit)
}

// Realign implements BitReader.
func (r *LSbReader) Realign() {
	drop := uint(r.consumed % 8)
	if drop == 0 {
		return
	}
	n := 8 - drop
	_ = r.SkipBits(n)
}

// BitsConsumed implements BitReader.
func (r *LSbReader) BitsConsumed() uint64 { return r.consumed }

var _ BitReader = (*LSbReader)(nil)
