package aac

// filterbankState holds one channel's persistent overlap-add delay line
// across frames: 1024 samples carried forward from the second half of the
// previous frame's windowed IMDCT output.
type filterbankState struct {
	delay           [1024]float64
	prevShape       uint8
	havePrev        bool
}

// synthesize runs the IMDCT and windowed overlap-add for one channel's
// frame, returning 1024 time-domain samples. coef holds ics.NumWindows
// windows of spectral data (128 coefficients per short window, 1024 for
// a single long window).
func (st *filterbankState) synthesize(coef []float32, seq WindowSequence, shape uint8) []float64 {
	out := make([]float64, 1024)

	switch seq {
	case EightShortSequence:
		st.synthesizeShort(coef, shape, out)
	case LongStopSequence:
		st.synthesizeLongStop(coef, shape, out)
	default: // Only_Long, Long_Start
		st.synthesizeLong(coef, shape, out)
	}

	st.prevShape = shape
	st.havePrev = true
	return out
}

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

func (st *filterbankState) synthesizeLong(coef []float32, shape uint8, out []float64) {
	win := windowFor(shape, 2048)
	tmp := imdct(toFloat64(coef))
	for i := 0; i < 2048; i++ {
		tmp[i] *= win[i]
	}
	for i := 0; i < 1024; i++ {
		out[i] = st.delay[i] + tmp[i]
	}
	copy(st.delay[:], tmp[1024:2048])
}

func (st *filterbankState) synthesizeLongStop(coef []float32, shape uint8, out []float64) {
	win := windowFor(shape, 2048)
	// A Long_Stop block transitions from a short block. Its window here is
	// zero over the leading 448 samples (so the first 448 outputs are the
	// delay line alone), 1 (unwindowed) over the trailing 448 samples, and
	// the long window's shape in between.
	for i := 0; i < 448; i++ {
		win[i] = 0
	}
	for i := 1600; i < 2048; i++ {
		win[i] = 1
	}
	tmp := imdct(toFloat64(coef))
	for i := 0; i < 2048; i++ {
		tmp[i] *= win[i]
	}
	for i := 0; i < 1024; i++ {
		out[i] = st.delay[i] + tmp[i]
	}
	copy(st.delay[:], tmp[1024:2048])
}

func (st *filterbankState) synthesizeShort(coef []float32, shape uint8, out []float64) {
	win := windowFor(shape, 256)
	buf := make([]float64, 1152)

	for w := 0; w < 8; w++ {
		lo := w * 128
		hi := lo + 128
		if hi > len(coef) {
			hi = len(coef)
		}
		chunk := toFloat64(coef[lo:hi])
		for len(chunk) < 128 {
			chunk = append(chunk, 0)
		}
		tmp := imdct(chunk)
		for i := 0; i < 256; i++ {
			tmp[i] *= win[i]
		}
		base := w * 128
		for i := 0; i < 256; i++ {
			buf[base+i] += tmp[i]
		}
	}

	for i := 0; i < 1024; i++ {
		v := st.delay[i]
		if i >= 448 {
			v += buf[i-448]
		}
		out[i] = v
	}

	var next [1024]float64
	for i := 0; i < 1024; i++ {
		src := i + 576
		if src < len(buf) {
			next[i] = buf[src]
		}
	}
	st.delay = next
}
