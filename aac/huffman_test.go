package aac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/audiocore/bitio"
)

func TestBitsFor(t *testing.T) {
	assert.Equal(t, uint(0), bitsFor(1))
	assert.Equal(t, uint(1), bitsFor(2))
	assert.Equal(t, uint(3), bitsFor(8))
	assert.Equal(t, uint(4), bitsFor(9))
}

func TestDecodeQuadSignedCodebook(t *testing.T) {
	// codebook 1: signed, lav=1, radix=3, values in {-1,0,1} per digit.
	// digits (2,1,0,2) base-3 -> code = ((2*3+1)*3+0)*3+2 = 65
	var bw bitWriter
	bw.writeBits(65, bitsFor(3*3*3*3))
	data := bw.bytes()

	br := bitio.NewMSbReader(bitio.NewSliceStream(data))
	x, y, z, w, err := decodeQuad(br, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(1), x)
	assert.Equal(t, int32(0), y)
	assert.Equal(t, int32(-1), z)
	assert.Equal(t, int32(1), w)
}

func TestDecodeQuadUnsignedCodebookReadsSignBits(t *testing.T) {
	// codebook 3: unsigned, lav=2, radix=3. code 63 decomposes (base 3,
	// MSD first) as digits (2,1,0,0); the two nonzero digits (x, y) each
	// need a trailing sign bit, z and w are zero and read no sign bit.
	var bw bitWriter
	bw.writeBits(63, bitsFor(3*3*3*3))
	bw.writeBits(1, 1) // sign for x -> negative
	bw.writeBits(0, 1) // sign for y -> positive
	data := bw.bytes()

	br := bitio.NewMSbReader(bitio.NewSliceStream(data))
	x, y, z, w, err := decodeQuad(br, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(-2), x)
	assert.Equal(t, int32(1), y)
	assert.Equal(t, int32(0), z)
	assert.Equal(t, int32(0), w)
}

func TestDecodePairCodebook11Escape(t *testing.T) {
	// codebook 11: unsigned, lav=16, radix=17. digit 16 triggers the escape.
	// code = 16*17 + 3 = 275 selects dx=16 (escape), dy=3.
	var bw bitWriter
	bw.writeBits(275, bitsFor(17*17))
	bw.writeBits(0b10, 2)  // unary-ones prefix n=1 (one 1-bit then a 0)
	extra := uint64(0b10101)
	bw.writeBits(extra, 1+4) // n+4 = 5 extra bits
	bw.writeBits(0, 1)       // sign bit for the escaped magnitude (positive)
	bw.writeBits(1, 1)       // dy=3 is nonzero -> sign bit, negative
	data := bw.bytes()

	br := bitio.NewMSbReader(bitio.NewSliceStream(data))
	x, y, err := decodePair(br, 11)
	require.NoError(t, err)
	assert.Equal(t, int32((1<<5)+int32(extra)), x)
	assert.Equal(t, int32(-3), y)
}

func TestDecodePairSignedCodebookNoSignBits(t *testing.T) {
	// codebook 5: signed, lav=4, radix=9. digits (7,2) -> code 65 -> values (3,-2).
	var bw bitWriter
	bw.writeBits(65, bitsFor(9*9))
	data := bw.bytes()

	br := bitio.NewMSbReader(bitio.NewSliceStream(data))
	x, y, err := decodePair(br, 5)
	require.NoError(t, err)
	assert.Equal(t, int32(3), x)
	assert.Equal(t, int32(-2), y)
}
