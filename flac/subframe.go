package flac

import "github.com/llehouerou/audiocore/bitio"

// PredictionMethod is a subframe's prediction method (spec §2 subframe
// header).
type PredictionMethod uint8

const (
	PredConstant PredictionMethod = iota
	PredVerbatim
	PredFixed
	PredLPC
)

// SubframeHeader is a subframe's header: prediction method, predictor
// order, and any wasted (constant zero) low bits stripped from every
// sample before encoding.
type SubframeHeader struct {
	Method         PredictionMethod
	Order          int
	WastedBitCount uint
}

// fixedCoeffs are FLAC's four built-in fixed predictors (spec §2, degree 0
// through 4 polynomial prediction).
var fixedCoeffs = [...][]int32{
	0: {},
	1: {1},
	2: {2, -1},
	3: {3, -3, 1},
	4: {4, -6, 4, -1},
}

// ParseSubframeHeader reads one subframe header: the zero padding bit, the
// 6-bit prediction method/order field, and any wasted-bits-per-sample
// unary prefix.
func ParseSubframeHeader(br bitio.BitReader) (SubframeHeader, error) {
	pad, err := br.ReadBitsLeq32(1)
	if err != nil {
		return SubframeHeader{}, err
	}
	if pad != 0 {
		return SubframeHeader{}, errReservedBits
	}

	typ, err := br.ReadBitsLeq32(6)
	if err != nil {
		return SubframeHeader{}, err
	}

	var sh SubframeHeader
	switch {
	case typ == 0:
		sh.Method = PredConstant
	case typ == 1:
		sh.Method = PredVerbatim
	case typ < 8:
		return SubframeHeader{}, errInvalidPredMethod
	case typ < 16:
		order := int(typ & 0x07)
		if order > 4 {
			return SubframeHeader{}, errInvalidPredMethod
		}
		sh.Method = PredFixed
		sh.Order = order
	case typ < 32:
		return SubframeHeader{}, errInvalidPredMethod
	default: // 32..63
		sh.Method = PredLPC
		sh.Order = int(typ&0x1F) + 1
	}

	hasWasted, err := br.ReadBitsLeq32(1)
	if err != nil {
		return SubframeHeader{}, err
	}
	if hasWasted != 0 {
		k, err := br.ReadUnaryZeros()
		if err != nil {
			return SubframeHeader{}, err
		}
		sh.WastedBitCount = uint(k) + 1
	}
	return sh, nil
}

// DecodeSubframe reads one subframe of blockSize samples at bps bits per
// sample, returning samples in a caller-owned buffer.
func DecodeSubframe(br bitio.BitReader, blockSize int, bps uint) ([]int32, error) {
	sh, err := ParseSubframeHeader(br)
	if err != nil {
		return nil, err
	}

	effectiveBps := bps - sh.WastedBitCount

	var samples []int32
	switch sh.Method {
	case PredConstant:
		samples, err = decodeConstant(br, blockSize, effectiveBps)
	case PredVerbatim:
		samples, err = decodeVerbatim(br, blockSize, effectiveBps)
	case PredFixed:
		samples, err = decodeFixedOrLPC(br, blockSize, sh.Order, effectiveBps, fixedCoeffs[sh.Order], 0)
	case PredLPC:
		samples, err = decodeLPC(br, blockSize, sh.Order, effectiveBps)
	}
	if err != nil {
		return nil, err
	}

	if sh.WastedBitCount > 0 {
		for i := range samples {
			samples[i] <<= sh.WastedBitCount
		}
	}
	return samples, nil
}

func decodeConstant(br bitio.BitReader, blockSize int, bps uint) ([]int32, error) {
	v, err := br.ReadBitsLeq32Signed(bps)
	if err != nil {
		return nil, err
	}
	out := make([]int32, blockSize)
	for i := range out {
		out[i] = v
	}
	return out, nil
}

func decodeVerbatim(br bitio.BitReader, blockSize int, bps uint) ([]int32, error) {
	out := make([]int32, blockSize)
	for i := range out {
		v, err := br.ReadBitsLeq32Signed(bps)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// decodeFixedOrLPC reads predOrder warm-up samples, the partitioned Rice
// residual, and reconstructs blockSize samples via the FIR recurrence
// shared by both fixed and LPC prediction.
func decodeFixedOrLPC(br bitio.BitReader, blockSize, predOrder int, bps uint, coeffs []int32, shift uint) ([]int32, error) {
	out := make([]int32, blockSize)
	for i := 0; i < predOrder; i++ {
		v, err := br.ReadBitsLeq32Signed(bps)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	residuals, err := DecodeResidual(br, blockSize, predOrder)
	if err != nil {
		return nil, err
	}
	reconstructFIR(out, residuals, predOrder, coeffs, shift)
	return out, nil
}

// reconstructFIR fills out[order:] in place from its own history: x[n] =
// residual[n-order] + (sum(coeff[j]*x[n-1-j]) >> shift).
func reconstructFIR(out, residuals []int32, order int, coeffs []int32, shift uint) {
	for i := order; i < len(out); i++ {
		var sum int64
		for j, c := range coeffs {
			sum += int64(c) * int64(out[i-j-1])
		}
		out[i] = residuals[i-order] + int32(sum>>shift)
	}
}

func decodeLPC(br bitio.BitReader, blockSize, order int, bps uint) ([]int32, error) {
	warm := make([]int32, order)
	for i := range warm {
		v, err := br.ReadBitsLeq32Signed(bps)
		if err != nil {
			return nil, err
		}
		warm[i] = v
	}

	precField, err := br.ReadBitsLeq32(4)
	if err != nil {
		return nil, err
	}
	if precField == 0xF {
		return nil, errInvalidLPCPrec
	}
	prec := uint(precField) + 1

	shiftField, err := br.ReadBitsLeq32Signed(5)
	if err != nil {
		return nil, err
	}
	shift := uint(shiftField)

	coeffs := make([]int32, order)
	for i := range coeffs {
		c, err := br.ReadBitsLeq32Signed(prec)
		if err != nil {
			return nil, err
		}
		coeffs[i] = c
	}

	out := make([]int32, blockSize)
	copy(out, warm)

	residuals, err := DecodeResidual(br, blockSize, order)
	if err != nil {
		return nil, err
	}
	reconstructFIR(out, residuals, order, coeffs, shift)
	return out, nil
}
