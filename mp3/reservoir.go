package mp3

import "github.com/llehouerou/audiocore/bitio"

// reservoirCapacity is the fixed size of the bit reservoir buffer, large
// enough to hold the maximum main_data_begin (511 bytes, MPEG-1's 9-bit
// field) plus one frame's worth of main data.
const reservoirCapacity = 2048

// Reservoir assembles a frame's Layer III main data, which can reuse bytes
// left over from previous frames (main_data_begin, side-info §4.4).
type Reservoir struct {
	buf []byte
}

// NewReservoir returns an empty bit reservoir.
func NewReservoir() *Reservoir { return &Reservoir{} }

// Reset discards all buffered history, used after a seek.
func (r *Reservoir) Reset() { r.buf = r.buf[:0] }

// Feed appends frameData (the bytes following this frame's side info) to
// the reservoir and returns a BitReader positioned main_data_begin bytes
// before frameData's start, per the reservoir contract: main_data_begin
// must not exceed the reservoir's length before this frame's data was
// appended.
func (r *Reservoir) Feed(frameData []byte, mainDataBegin int) (bitio.BitReader, error) {
	before := len(r.buf)
	if mainDataBegin > before {
		r.buf = append(r.buf, frameData...)
		r.trim()
		return nil, errReservoirUnderrun
	}
	r.buf = append(r.buf, frameData...)
	start := before - mainDataBegin
	data := r.buf[start:]
	br := bitio.NewMSbReader(bitio.NewSliceStream(data))
	r.trim()
	return br, nil
}

func (r *Reservoir) trim() {
	if len(r.buf) > reservoirCapacity {
		drop := len(r.buf) - reservoirCapacity
		r.buf = r.buf[drop:]
	}
}
