package mp3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushAndEmitClampsToUnitRange(t *testing.T) {
	st := NewSynthesisState()
	var subband [32]float64
	for i := range subband {
		subband[i] = 1e6 // deliberately large to force clamping
	}
	out := st.PushAndEmit(subband)
	for _, v := range out {
		assert.LessOrEqual(t, v, 1.0)
		assert.GreaterOrEqual(t, v, -1.0)
	}
}

func TestPushAndEmitZeroInputIsZeroOutput(t *testing.T) {
	st := NewSynthesisState()
	var subband [32]float64
	out := st.PushAndEmit(subband)
	for _, v := range out {
		assert.Equal(t, 0.0, v)
	}
}

func TestNewSynthesisStateIsZeroed(t *testing.T) {
	st := NewSynthesisState()
	assert.Equal(t, 0, st.head)
}
