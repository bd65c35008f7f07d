package bitio

// BitReader is the common contract satisfied by both bit-order variants.
// Every codec decoder in this module consumes one of these, layered over a
// ByteStream for the lifetime of a single frame.
type BitReader interface {
	// ReadBit reads a single bit, 0 or 1.
	ReadBit() (uint8, error)
	// ReadBitsLeq32 reads n bits, 0 <= n <= 32, MSb of the value first.
	ReadBitsLeq32(n uint) (uint32, error)
	// ReadBitsLeq64 reads n bits, 0 <= n <= 64.
	ReadBitsLeq64(n uint) (uint64, error)
	// ReadBitsLeq32Signed reads n bits and sign-extends them to int32.
	ReadBitsLeq32Signed(n uint) (int32, error)
	// ReadBitsLeq64Signed reads n bits and sign-extends them to int64.
	ReadBitsLeq64Signed(n uint) (int64, error)
	// ReadUnaryZeros counts leading/trailing zero bits (depending on bit
	// order) up to and including the terminating one bit; the terminator
	// itself is consumed but not counted.
	ReadUnaryZeros() (uint32, error)
	// ReadUnaryOnes is the 0/1-swapped counterpart of ReadUnaryZeros.
	ReadUnaryOnes() (uint32, error)
	// ReadUnaryZerosCapped behaves like ReadUnaryZeros but stops consuming
	// once limit zero bits have been seen without a terminator, returning
	// limit in that case without having consumed a terminator bit.
	ReadUnaryZerosCapped(limit uint32) (uint32, error)
	// ReadUnaryOnesCapped is the 0/1-swapped counterpart.
	ReadUnaryOnesCapped(limit uint32) (uint32, error)
	// PeekBits returns the next n bits (n <= 32) without consuming them.
	PeekBits(n uint) (uint32, error)
	// SkipBits discards n bits without returning them.
	SkipBits(n uint) error
	// Realign discards any unread bits in the cache up to the next byte
	// boundary of the underlying stream.
	Realign()
	// IgnoreBits is an alias of SkipBits kept for spec-name parity.
	IgnoreBits(n uint) error
	// BitsConsumed returns the total number of bits read so far, including
	// bits discarded by Realign.
	BitsConsumed() uint64
}

// fetch pulls the next byte from src, or reports ok=false on EOF.
func fetch(src ByteStream) (b byte, ok bool) {
	v, err := src.ReadByte()
	if err != nil {
		return 0, false
	}
	return v, true
}
