package aac

import (
	"math"

	"github.com/llehouerou/audiocore/bitio"
)

const (
	tnsMaxOrderLong  = 12
	tnsMaxOrderShort = 7
	tnsMaxFilters    = 4
)

type tnsFilter struct {
	length    int
	order     int
	direction bool // true = filter runs start-to-end in reverse (decreasing index)
	coef      []float64
}

type tnsInfo struct {
	present bool
	filters [tnsMaxFilters]tnsFilter
	nFilt   int
}

// parseTNSData reads tns_data() (§4.4.2.6): per window, up to four filters
// each with their own length/order/direction and a set of quantized
// reflection coefficients resolved to `coefRes` (3 or 4) bits, minus one
// when coef_compress is set.
func parseTNSData(br bitio.BitReader, ics *ICSInfo) (tnsInfo, error) {
	var info tnsInfo
	short := ics.WindowSequence == EightShortSequence
	maxOrder := tnsMaxOrderLong
	nFiltBits, lenBits, orderBits := uint(2), uint(6), uint(5)
	if short {
		maxOrder = tnsMaxOrderShort
		nFiltBits, lenBits, orderBits = 1, 4, 3
	}

	nFilt, err := br.ReadBitsLeq32(nFiltBits)
	if err != nil {
		return info, err
	}
	info.nFilt = int(nFilt)
	if info.nFilt == 0 {
		return info, nil
	}
	info.present = true

	coefResBit, err := br.ReadBit()
	if err != nil {
		return info, err
	}
	coefRes := 3
	if coefResBit != 0 {
		coefRes = 4
	}

	for f := 0; f < info.nFilt && f < tnsMaxFilters; f++ {
		length, err := br.ReadBitsLeq32(lenBits)
		if err != nil {
			return info, err
		}
		order, err := br.ReadBitsLeq32(orderBits)
		if err != nil {
			return info, err
		}
		filt := tnsFilter{length: int(length), order: int(order)}
		if filt.order > maxOrder {
			return info, errTNSOrder
		}
		if filt.order > 0 {
			dir, err := br.ReadBit()
			if err != nil {
				return info, err
			}
			filt.direction = dir != 0

			compress, err := br.ReadBit()
			if err != nil {
				return info, err
			}
			res := coefRes
			if compress != 0 {
				res--
			}

			filt.coef = make([]float64, filt.order)
			for i := 0; i < filt.order; i++ {
				v, err := br.ReadBitsLeq32Signed(uint(res))
				if err != nil {
					return info, err
				}
				filt.coef[i] = dequantReflection(int(v), res)
			}
		}
		info.filters[f] = filt
	}
	return info, nil
}

// dequantReflection maps a signed `res`-bit transmitted coefficient back
// to a reflection coefficient in (-1, 1) via arcsine quantization, the
// standard scheme for PARCOR coding.
func dequantReflection(v, res int) float64 {
	scale := math.Pi / float64(int(1)<<uint(res-1))
	return math.Sin(float64(v) * scale)
}

// reflectionToDirectForm runs the Levinson step-up recursion, converting
// a sequence of reflection (PARCOR) coefficients into direct-form LPC
// coefficients a[1..order] (a[0] is implicitly 1).
func reflectionToDirectForm(rc []float64) []float64 {
	order := len(rc)
	a := make([]float64, order)
	prev := make([]float64, order)
	for i := 0; i < order; i++ {
		copy(prev, a)
		a[i] = rc[i]
		for j := 0; j < i; j++ {
			a[j] = prev[j] + rc[i]*prev[i-1-j]
		}
	}
	return a
}

// applyTNS runs one filter's synthesis (inverse) pass over coef[start:start+length],
// restoring the spectral envelope the encoder's analysis filter flattened.
// direction true means the filter was run start<-end on encode, so decode
// replays it in the same (decreasing-index) order; samples before the
// traversal's start within this call are not part of the filter's history
// (j < m is never satisfied across a filter boundary).
func applyTNS(coef []float32, start, length int, filt tnsFilter) {
	if filt.order == 0 || length <= 0 {
		return
	}
	a := reflectionToDirectForm(filt.coef)
	order := len(a)
	history := make([]float64, order)

	step := 1
	idx := start
	if filt.direction {
		step = -1
		idx = start + length - 1
	}

	for n := 0; n < length; n++ {
		if idx < 0 || idx >= len(coef) {
			idx += step
			continue
		}
		acc := float64(coef[idx])
		for k := 0; k < order; k++ {
			acc -= a[k] * history[k]
		}
		for k := order - 1; k > 0; k-- {
			history[k] = history[k-1]
		}
		if order > 0 {
			history[0] = acc
		}
		coef[idx] = float32(acc)
		idx += step
	}
}
