package mp3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/audiocore/bitio"
)

type bitWriter struct {
	buf  []byte
	cur  byte
	nbit uint
}

func (w *bitWriter) writeBits(v uint64, n uint) {
	for i := int(n) - 1; i >= 0; i-- {
		bit := byte((v >> uint(i)) & 1)
		w.cur = w.cur<<1 | bit
		w.nbit++
		if w.nbit == 8 {
			w.buf = append(w.buf, w.cur)
			w.cur = 0
			w.nbit = 0
		}
	}
}

func (w *bitWriter) bytes() []byte {
	if w.nbit > 0 {
		w.cur <<= 8 - w.nbit
		w.buf = append(w.buf, w.cur)
		w.cur = 0
		w.nbit = 0
	}
	return w.buf
}

func writeMPEG1StereoHeader(bw *bitWriter) {
	bw.writeBits(0x7FF, 11) // sync
	bw.writeBits(3, 2)      // MPEG-1
	bw.writeBits(1, 2)      // Layer III
	bw.writeBits(1, 1)      // protection_bit (no CRC)
	bw.writeBits(9, 4)      // bitrate index -> 128kbps (V1L3 table)
	bw.writeBits(0, 2)      // sample rate index -> 44100
	bw.writeBits(0, 1)      // no padding
	bw.writeBits(0, 1)      // private bit
	bw.writeBits(0, 2)      // mode stereo
	bw.writeBits(0, 2)      // mode extension
	bw.writeBits(0, 1)      // copyright
	bw.writeBits(0, 1)      // original
	bw.writeBits(0, 2)      // emphasis
}

func TestParseHeaderMPEG1Stereo(t *testing.T) {
	var bw bitWriter
	writeMPEG1StereoHeader(&bw)
	data := bw.bytes()

	br := bitio.NewMSbReader(bitio.NewSliceStream(data))
	hdr, _, err := ParseHeader(br, false)
	require.NoError(t, err)
	assert.Equal(t, Version1, hdr.Version)
	assert.Equal(t, 44100, hdr.SampleRate)
	assert.Equal(t, 128, hdr.Bitrate)
	assert.Equal(t, ModeStereo, hdr.Mode)
	assert.Equal(t, 2, hdr.NumberOfChannels())
	assert.Equal(t, 2, hdr.Granules())
	assert.True(t, hdr.IsMPEG1())
	assert.Equal(t, 32, hdr.SideInfoSize())
}

func TestParseHeaderRejectsBadSync(t *testing.T) {
	var bw bitWriter
	bw.writeBits(0x123, 11)
	data := bw.bytes()
	br := bitio.NewMSbReader(bitio.NewSliceStream(data))
	_, _, err := ParseHeader(br, false)
	assert.ErrorIs(t, err, errBadSync)
}

func TestParseHeaderRejectsFreeBitrate(t *testing.T) {
	var bw bitWriter
	bw.writeBits(0x7FF, 11)
	bw.writeBits(3, 2)
	bw.writeBits(1, 2)
	bw.writeBits(1, 1)
	bw.writeBits(0, 4) // bitrate index 0 = "free", unsupported
	data := bw.bytes()

	br := bitio.NewMSbReader(bitio.NewSliceStream(data))
	_, _, err := ParseHeader(br, false)
	assert.ErrorIs(t, err, errFreeBitrate)
}

func TestParseHeaderMPEG2SingleChannel(t *testing.T) {
	var bw bitWriter
	bw.writeBits(0x7FF, 11)
	bw.writeBits(2, 2) // MPEG-2
	bw.writeBits(1, 2) // Layer III
	bw.writeBits(1, 1)
	bw.writeBits(8, 4) // bitrate index -> V2L3 table entry 64
	bw.writeBits(1, 2) // sample rate index -> 24000
	bw.writeBits(1, 1) // padding
	bw.writeBits(0, 1)
	bw.writeBits(3, 2) // single channel
	bw.writeBits(0, 2)
	bw.writeBits(0, 1)
	bw.writeBits(0, 1)
	bw.writeBits(0, 2)
	data := bw.bytes()

	br := bitio.NewMSbReader(bitio.NewSliceStream(data))
	hdr, _, err := ParseHeader(br, false)
	require.NoError(t, err)
	assert.False(t, hdr.IsMPEG1())
	assert.Equal(t, 1, hdr.Granules())
	assert.Equal(t, 1, hdr.NumberOfChannels())
	assert.Equal(t, 24000, hdr.SampleRate)
	assert.Equal(t, 64, hdr.Bitrate)
	assert.True(t, hdr.Padding)
	assert.Equal(t, 9, hdr.SideInfoSize())
}

func TestFrameSizeFormula(t *testing.T) {
	hdr := Header{Version: Version1, Bitrate: 128, SampleRate: 44100}
	assert.Equal(t, 144*128*1000/44100, hdr.FrameSize())
	hdr.Padding = true
	assert.Equal(t, 144*128*1000/44100+1, hdr.FrameSize())
}
