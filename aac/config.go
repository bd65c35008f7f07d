package aac

import (
	"github.com/llehouerou/audiocore/bitio"
	"github.com/llehouerou/audiocore/internal/tables"
)

// ObjectType is the MPEG-4 audio object type carried by AudioSpecificConfig
// and the ADTS profile field. Only ObjectTypeLC is supported for decoding;
// every other value is recognized so a caller gets a specific Unsupported
// error rather than a generic parse failure.
type ObjectType uint8

const (
	ObjectTypeMain ObjectType = 1
	ObjectTypeLC   ObjectType = 2
	ObjectTypeSSR  ObjectType = 3
	ObjectTypeLTP  ObjectType = 4
	ObjectTypeHE   ObjectType = 5 // SBR, unsupported
)

// AudioSpecificConfig is the MP4 AudioSpecificConfig, either supplied by
// the host out-of-band (codec.Parameters.ExtraData) or reconstructed from
// an ADTS frame's fixed header.
type AudioSpecificConfig struct {
	ObjectType ObjectType
	SRIndex    uint8
	SampleRate uint32
	Channels   uint8 // 1 mono, 2 stereo; 0 means "channels defined elsewhere" (unsupported)
}

// ParseAudioSpecificConfig decodes the two-byte-minimum ASC used by MP4/ISOBMFF
// containers: 5-bit object type, 4-bit sample-rate index (or 24-bit explicit
// rate when the index is the escape value 0xF), 4-bit channel configuration,
// followed by GASpecificConfig's frameLengthFlag/dependsOnCoreCoder/
// extensionFlag bits, which this decoder does not need beyond consuming them.
func ParseAudioSpecificConfig(data []byte) (AudioSpecificConfig, error) {
	br := bitio.NewMSbReader(bitio.NewSliceStream(data))
	var asc AudioSpecificConfig

	ot, err := br.ReadBitsLeq32(5)
	if err != nil {
		return asc, err
	}
	asc.ObjectType = ObjectType(ot)

	srIdx, err := br.ReadBitsLeq32(4)
	if err != nil {
		return asc, err
	}
	asc.SRIndex = uint8(srIdx)
	if asc.SRIndex == 0xF {
		rate, err := br.ReadBitsLeq32(24)
		if err != nil {
			return asc, err
		}
		asc.SampleRate = rate
	} else if asc.SRIndex < 12 {
		asc.SampleRate = tables.SampleRates[asc.SRIndex]
	}

	chCfg, err := br.ReadBitsLeq32(4)
	if err != nil {
		return asc, err
	}
	asc.Channels = uint8(chCfg)

	if asc.ObjectType != ObjectTypeLC {
		return asc, errUnsupportedObject
	}
	if asc.Channels == 0 || asc.Channels > 2 {
		return asc, errUnsupportedChannels
	}

	// GASpecificConfig: frameLengthFlag, dependsOnCoreCoder(+14 bits delay),
	// extensionFlag. Only the 1024-sample frame length is supported.
	frameLengthFlag, err := br.ReadBit()
	if err != nil {
		return asc, err
	}
	if frameLengthFlag != 0 {
		return asc, errUnsupportedObject
	}
	dependsOnCore, err := br.ReadBit()
	if err != nil {
		return asc, err
	}
	if dependsOnCore != 0 {
		if err := br.SkipBits(14); err != nil {
			return asc, err
		}
	}
	if _, err := br.ReadBit(); err != nil { // extensionFlag
		return asc, err
	}

	return asc, nil
}

// adtsHeader is one ADTS frame's fixed and variable header fields (ISO/IEC
// 13818-7 Annex B / 14496-3 Annex E.2.3).
type adtsHeader struct {
	protectionAbsent bool
	objectType       ObjectType
	srIndex          uint8
	channelConfig    uint8
	frameLength      uint16 // total frame size in bytes, header included
}

const adtsSyncWord = 0xFFF

// parseADTSHeader reads one ADTS frame header from br. The CRC word, when
// present, is skipped rather than verified: ADTS's CRC covers only a
// subset of header fields plus an optional rawDataBlock checksum that is
// not meaningfully separable from this decoder's main-data read, so
// verification is left to a future revision.
func parseADTSHeader(br bitio.BitReader) (adtsHeader, error) {
	var h adtsHeader

	sync, err := br.ReadBitsLeq32(12)
	if err != nil {
		return h, err
	}
	if sync != adtsSyncWord {
		return h, errADTSSync
	}
	if _, err := br.ReadBitsLeq32(1); err != nil { // MPEG version id
		return h, err
	}
	if _, err := br.ReadBitsLeq32(2); err != nil { // layer, always 0
		return h, err
	}
	protAbsent, err := br.ReadBit()
	if err != nil {
		return h, err
	}
	h.protectionAbsent = protAbsent != 0

	profile, err := br.ReadBitsLeq32(2)
	if err != nil {
		return h, err
	}
	h.objectType = ObjectType(profile + 1)

	srIdx, err := br.ReadBitsLeq32(4)
	if err != nil {
		return h, err
	}
	h.srIndex = uint8(srIdx)

	if _, err := br.ReadBit(); err != nil { // private bit
		return h, err
	}
	chCfg, err := br.ReadBitsLeq32(3)
	if err != nil {
		return h, err
	}
	h.channelConfig = uint8(chCfg)

	if err := br.SkipBits(4); err != nil { // original/copy, home, copyright id bit/start
		return h, err
	}

	frameLen, err := br.ReadBitsLeq32(13)
	if err != nil {
		return h, err
	}
	h.frameLength = uint16(frameLen)

	if err := br.SkipBits(11); err != nil { // buffer fullness
		return h, err
	}
	numBlocks, err := br.ReadBitsLeq32(2)
	if err != nil {
		return h, err
	}
	if numBlocks != 0 {
		// Multiple raw_data_blocks per ADTS frame are not split out; the
		// caller is expected to hand each ADTS frame as its own packet.
		return h, errUnsupportedObject
	}

	if !h.protectionAbsent {
		if err := br.SkipBits(16); err != nil {
			return h, err
		}
	}

	return h, nil
}

// headerSize returns the ADTS header length in bytes, 7 without a CRC or
// 9 with one.
func (h adtsHeader) headerSize() int {
	if h.protectionAbsent {
		return 7
	}
	return 9
}
