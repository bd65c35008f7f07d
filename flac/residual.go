package flac

import "github.com/llehouerou/audiocore/bitio"

// DecodeResidual reads a residual coding block for a subframe of blockSize
// samples whose first predOrder samples are warm-up (unencoded) samples,
// dispatching on the 2-bit residual coding method: partitioned Rice with a
// 4-bit parameter, or partitioned Rice with a 5-bit parameter (spec §2
// residual coding).
func DecodeResidual(br bitio.BitReader, blockSize, predOrder int) ([]int32, error) {
	method, err := br.ReadBitsLeq32(2)
	if err != nil {
		return nil, err
	}
	switch method {
	case 0:
		return decodePartitionedRice(br, blockSize, predOrder, 4)
	case 1:
		return decodePartitionedRice(br, blockSize, predOrder, 5)
	default:
		return nil, errReservedResidual
	}
}

func decodePartitionedRice(br bitio.BitReader, blockSize, predOrder int, paramBits uint) ([]int32, error) {
	partOrderField, err := br.ReadBitsLeq32(4)
	if err != nil {
		return nil, err
	}
	partOrder := int(partOrderField)
	partCount := 1 << partOrder

	if blockSize%partCount != 0 {
		return nil, errReservedResidual
	}
	samplesPerPart := blockSize / partCount

	out := make([]int32, 0, blockSize-predOrder)
	escapeParam := uint32(1)<<paramBits - 1

	for part := 0; part < partCount; part++ {
		n := samplesPerPart
		if part == 0 {
			n -= predOrder
		}

		param, err := br.ReadBitsLeq32(paramBits)
		if err != nil {
			return nil, err
		}
		if param == escapeParam {
			rawBits, err := br.ReadBitsLeq32(5)
			if err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				v, err := br.ReadBitsLeq32Signed(uint(rawBits))
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			continue
		}

		for i := 0; i < n; i++ {
			v, err := riceDecodeOne(br, uint(param))
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// riceDecodeOne reads one Rice(k)-coded value: a unary quotient, a k-bit
// binary remainder, then zigzag-decodes the reassembled unsigned value
// back to a signed residual.
func riceDecodeOne(br bitio.BitReader, k uint) (int32, error) {
	quotient, err := br.ReadUnaryZeros()
	if err != nil {
		return 0, err
	}
	remainder, err := br.ReadBitsLeq32(k)
	if err != nil {
		return 0, err
	}
	u := quotient<<k | remainder
	return bitio.ZigZagDecode(u), nil
}
