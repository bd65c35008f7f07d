package mp3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/audiocore/bitio"
)

func TestDecodeBigValuePairTableZeroIsAlwaysZero(t *testing.T) {
	br := bitio.NewMSbReader(bitio.NewSliceStream(nil))
	x, y, err := decodeBigValuePair(br, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(0), x)
	assert.Equal(t, int32(0), y)
}

func TestDecodeBigValuePairReservedSelectorsAreZero(t *testing.T) {
	br := bitio.NewMSbReader(bitio.NewSliceStream(nil))
	for _, sel := range []int{4, 14} {
		x, y, err := decodeBigValuePair(br, sel)
		require.NoError(t, err)
		assert.Equal(t, int32(0), x)
		assert.Equal(t, int32(0), y)
	}
}

func TestDecodeBigValuePairUnknownTableErrors(t *testing.T) {
	br := bitio.NewMSbReader(bitio.NewSliceStream(nil))
	_, _, err := decodeBigValuePair(br, 99)
	assert.ErrorIs(t, err, errHuffmanTable)
}

func TestDecodeCount1QuadAppliesSignBits(t *testing.T) {
	// find a nonzero quad in table A's value set and its codeword.
	var idx int = -1
	for i, q := range count1AQuads {
		if q.v != 0 {
			idx = i
			break
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	code := count1ACodes[idx]
	length := count1ALens[idx]

	var bw bitWriter
	bw.writeBits(uint64(code), uint(length))
	bw.writeBits(1, 1) // sign bit for the nonzero component -> negative
	data := bw.bytes()

	br := bitio.NewMSbReader(bitio.NewSliceStream(data))
	v, _, _, _, err := decodeCount1Quad(br, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), v)
}
