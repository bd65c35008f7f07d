package flac

// StreamInfo carries the STREAMINFO metadata block every FLAC stream
// begins with, supplying the values a frame header is allowed to omit
// (sample rate, bits-per-sample) and the whole-stream MD5 signature used
// for end-to-end validation.
type StreamInfo struct {
	MinBlockSize  uint16
	MaxBlockSize  uint16
	MinFrameSize  uint32 // 0 if unknown
	MaxFrameSize  uint32 // 0 if unknown
	SampleRate    uint32
	NumChannels   uint8
	BitsPerSample uint8
	TotalSamples  uint64 // 0 if unknown
	MD5Signature  [16]byte
}

// ParseStreamInfo decodes a 34-byte STREAMINFO metadata block body (the
// block header's type/length/last-flag byte is not included).
func ParseStreamInfo(data []byte) (StreamInfo, error) {
	if len(data) < 34 {
		return StreamInfo{}, errShortStreamInfo
	}
	var si StreamInfo
	si.MinBlockSize = be16(data[0:2])
	si.MaxBlockSize = be16(data[2:4])
	si.MinFrameSize = be24(data[4:7])
	si.MaxFrameSize = be24(data[7:10])

	// Bits 10..17 pack: 20-bit sample rate, 3-bit channels-1, 5-bit
	// bits-per-sample-1, 36-bit total samples.
	bits := uint64(data[10])<<56 | uint64(data[11])<<48 | uint64(data[12])<<40 |
		uint64(data[13])<<32 | uint64(data[14])<<24 | uint64(data[15])<<16 |
		uint64(data[16])<<8 | uint64(data[17])

	si.SampleRate = uint32(bits >> 44)
	si.NumChannels = uint8((bits>>41)&0x7) + 1
	si.BitsPerSample = uint8((bits>>36)&0x1F) + 1
	si.TotalSamples = bits & 0xFFFFFFFFF

	copy(si.MD5Signature[:], data[18:34])
	return si, nil
}

func be16(b []byte) uint16 { return uint16(b[0])<<8 | uint16(b[1]) }
func be24(b []byte) uint32 { return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]) }
