package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMidIsZeroCenteredForUnsigned(t *testing.T) {
	assert.Equal(t, uint8(128), Mid[uint8]())
	assert.Equal(t, uint16(32768), Mid[uint16]())
	assert.Equal(t, uint32(1<<31), Mid[uint32]())
	assert.Equal(t, int16(0), Mid[int16]())
	assert.Equal(t, float32(0), Mid[float32]())
}

func TestFromSampleWideningNarrowingRoundTrip(t *testing.T) {
	assert.Equal(t, int16(0x1200), FromSample[int8, int16](int8(0x12)))
	assert.Equal(t, int8(0x12), FromSample[int16, int8](int16(0x1234)))
}

func TestFromSampleFloatNormalizesToFullScale(t *testing.T) {
	assert.InDelta(t, 1.0, toFloat64(int16(32767)), 1e-4)
	assert.InDelta(t, -1.0, toFloat64(int16(-32768)), 1e-9)
	got := FromSample[float32, int16](float32(1.0))
	assert.Equal(t, int16(32767), got)
}

func TestFromSampleUnsignedSignedSymmetry(t *testing.T) {
	assert.Equal(t, int16(0), FromSample[uint16, int16](uint16(32768)))
	assert.Equal(t, uint16(32768), FromSample[int16, uint16](int16(0)))
}

func TestBufferRenderAndShift(t *testing.T) {
	spec := SignalSpec{SampleRate: 44100, Layout: Stereo()}
	buf := NewAudioBuffer[int32](16, spec)
	require.Equal(t, 2, buf.Channels())

	buf.RenderReserved(4)
	left, right := buf.ChanPairMut(0, 1)
	for i := range left {
		left[i] = int32(i)
		right[i] = int32(-i)
	}
	assert.Equal(t, 4, buf.Frames())

	buf.Shift(2)
	assert.Equal(t, 2, buf.Frames())
	assert.Equal(t, []int32{2, 3}, buf.Chan(0))
	assert.Equal(t, []int32{-2, -3}, buf.Chan(1))
}

func TestBufferTrim(t *testing.T) {
	spec := SignalSpec{SampleRate: 48000, Layout: Mono()}
	buf := NewAudioBuffer[int16](8, spec)
	buf.RenderReserved(8)
	ch := buf.Chan(0)
	for i := range ch {
		ch[i] = int16(i)
	}
	buf.Trim(2, 3)
	assert.Equal(t, 3, buf.Frames())
	assert.Equal(t, []int16{2, 3, 4}, buf.Chan(0))
}

func TestBufferRenderSilence(t *testing.T) {
	spec := SignalSpec{SampleRate: 44100, Layout: Mono()}
	buf := NewAudioBuffer[uint8](4, spec)
	buf.RenderSilence(4)
	for _, v := range buf.Chan(0) {
		assert.Equal(t, uint8(128), v)
	}
}

func TestBufferRenderReservedPanicsOnOverflow(t *testing.T) {
	spec := SignalSpec{SampleRate: 44100, Layout: Mono()}
	buf := NewAudioBuffer[int16](2, spec)
	assert.Panics(t, func() { buf.RenderReserved(3) })
}

func TestChanPairMutPanicsOnSameIndex(t *testing.T) {
	spec := SignalSpec{SampleRate: 44100, Layout: Stereo()}
	buf := NewAudioBuffer[int16](2, spec)
	assert.Panics(t, func() { buf.ChanPairMut(0, 0) })
}

func TestTransformConvertsSampleType(t *testing.T) {
	spec := SignalSpec{SampleRate: 44100, Layout: Mono()}
	src := NewAudioBuffer[int32](4, spec)
	src.RenderReserved(2)
	ch := src.Chan(0)
	ch[0] = 1 << 16
	ch[1] = -(1 << 16)

	dst := NewAudioBuffer[int16](4, spec)
	Transform(dst, src)
	assert.Equal(t, []int16{1, -1}, dst.Chan(0))
}

func TestChannelLayoutIndex(t *testing.T) {
	l := Stereo()
	idx, ok := l.Index(ChannelFrontRight)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = l.Index(ChannelLFE)
	assert.False(t, ok)
}

func TestDitherRangeAndDeterminism(t *testing.T) {
	r1 := NewRectangular()
	r2 := NewRectangular()
	for i := 0; i < 100; i++ {
		v1, v2 := r1.Next(), r2.Next()
		assert.Equal(t, v1, v2)
		assert.GreaterOrEqual(t, v1, -1.0)
		assert.Less(t, v1, 1.0)
	}

	tr := NewTriangular()
	for i := 0; i < 100; i++ {
		v := tr.Next()
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 1.0)
	}
}
