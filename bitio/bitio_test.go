package bitio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMSbReadBitsLeq64ConsumesExactly(t *testing.T) {
	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(0xA5 + i)
	}
	for n := uint(0); n <= 64; n++ {
		br := NewMSbReader(NewSliceStream(data))
		_, err := br.ReadBitsLeq64(n)
		require.NoError(t, err, "n=%d", n)
		assert.Equal(t, uint64(n), br.BitsConsumed(), "n=%d", n)
	}
}

func TestMSbSignedRoundTrip(t *testing.T) {
	for n := uint(1); n < 32; n++ {
		lo := -(int32(1) << (n - 1))
		hi := (int32(1) << (n - 1)) - 1
		for _, v := range []int32{lo, hi, 0} {
			uv := uint32(v) & uint32((uint64(1)<<n)-1)
			got := SignExtend32(uv, n)
			assert.Equal(t, v, got, "n=%d v=%d", n, v)
		}
	}
}

func TestZigZagTable(t *testing.T) {
	want := []int32{0, -1, 1, -2, 2, -3, 3, -4, 4, -5, 5}
	for u, w := range want {
		assert.Equal(t, w, ZigZagDecode(uint32(u)))
	}
	assert.Equal(t, int32(-2147483648), ZigZagDecode(^uint32(0)))
}

func TestUnaryDecode(t *testing.T) {
	// 5 leading zeros then a terminating one: 00000 1
	br := NewMSbReader(NewSliceStream([]byte{0b00000100}))
	n, err := br.ReadUnaryZeros()
	require.NoError(t, err)
	assert.Equal(t, uint32(5), n)
}

func TestUnaryCapped(t *testing.T) {
	br := NewMSbReader(NewSliceStream([]byte{0x00, 0x00}))
	n, err := br.ReadUnaryZerosCapped(10)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), n)
}

func TestCodebookDecode(t *testing.T) {
	// codes: a=0b0 (1 bit), b=0b10 (2 bits), c=0b11 (2 bits)
	cb, err := BuildCodebook(
		[]uint32{0b0, 0b10, 0b11},
		[]uint8{1, 2, 2},
		[]int32{100, 200, 300},
		false,
	)
	require.NoError(t, err)

	br := NewMSbReader(NewSliceStream([]byte{0b0_10_11_00}))
	v, bits, err := ReadCodebook(br, cb)
	require.NoError(t, err)
	assert.Equal(t, int32(100), v)
	assert.Equal(t, 1, bits)

	v, bits, err = ReadCodebook(br, cb)
	require.NoError(t, err)
	assert.Equal(t, int32(200), v)
	assert.Equal(t, 2, bits)

	v, bits, err = ReadCodebook(br, cb)
	require.NoError(t, err)
	assert.Equal(t, int32(300), v)
	assert.Equal(t, 2, bits)
}

func TestCodebookTruncatedCodewordIsEOF(t *testing.T) {
	cb, err := BuildCodebook(
		[]uint32{0b10},
		[]uint8{2},
		[]int32{1},
		false,
	)
	require.NoError(t, err)

	// None of the two-bit code's bits is available.
	br := NewMSbReader(NewSliceStream(nil))
	_, _, err = ReadCodebook(br, cb)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestUTF8ExtendedSequence(t *testing.T) {
	data := []byte{0x24, 0xC2, 0xA2, 0xE0, 0xA4, 0xB9, 0xE2, 0x82, 0xAC, 0xF0, 0x90, 0x8D, 0x88, 0xFF, 0x80, 0xBF}
	br := NewMSbReader(NewSliceStream(data))

	type want struct {
		val uint64
		ok  bool
	}
	wants := []want{
		{36, true}, {162, true}, {2361, true}, {8364, true}, {66376, true},
		{0, false}, {0, false}, {0, false},
	}
	for i, w := range wants {
		v, ok, err := ReadUTF8Extended(br)
		require.NoError(t, err, "entry %d", i)
		assert.Equal(t, w.ok, ok, "entry %d", i)
		if ok {
			assert.Equal(t, w.val, v, "entry %d", i)
		}
	}
}

func TestMonitoredByteStreamCRC8(t *testing.T) {
	m := NewMonitoredByteStream(NewSliceStream([]byte{0x01, 0x02, 0x03}), CRC8ATM)
	for i := 0; i < 3; i++ {
		_, err := m.ReadByte()
		require.NoError(t, err)
	}
	// Non-zero polynomial over non-zero data should not trivially be zero.
	assert.NotEqual(t, uint8(0), m.Sum8())
}
