package mp3

import "github.com/llehouerou/audiocore/bitio"

// Version is the MPEG audio version a frame header declares.
type Version uint8

const (
	Version25 Version = iota // MPEG 2.5
	VersionReserved
	Version2 // MPEG 2
	Version1 // MPEG 1
)

// ChannelMode is the Layer III channel mode.
type ChannelMode uint8

const (
	ModeStereo ChannelMode = iota
	ModeJointStereo
	ModeDualChannel
	ModeSingleChannel
)

var bitrateTableV1L3 = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
var bitrateTableV2L3 = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}

var sampleRateTable = [4][3]int{
	{44100, 48000, 32000}, // MPEG1
	{22050, 24000, 16000}, // MPEG2
	{11025, 12000, 8000},  // MPEG2.5
	{0, 0, 0},
}

// Header is one MP3 frame header (ISO/IEC 11172-3 §2.4.1.3 / 13818-3
// Layer III).
type Header struct {
	Version         Version
	Mode            ChannelMode
	ModeExtension   uint8
	SampleRate      int
	Bitrate         int
	Padding         bool
	ProtectionBitOK bool // true if protection_bit == 1 (no CRC follows)
}

// NumberOfChannels returns 1 for single channel mode, 2 otherwise.
func (h Header) NumberOfChannels() int {
	if h.Mode == ModeSingleChannel {
		return 1
	}
	return 2
}

// IsMPEG1 reports whether this is an MPEG-1 frame (two granules, full
// scfsi and 9-bit main_data_begin) as opposed to MPEG-2/2.5 (one granule).
func (h Header) IsMPEG1() bool { return h.Version == Version1 }

// Granules returns the number of granules per frame: 2 for MPEG-1, 1 for
// MPEG-2/2.5.
func (h Header) Granules() int {
	if h.IsMPEG1() {
		return 2
	}
	return 1
}

// FrameSize returns the total frame length in bytes, including the 4-byte
// header, per the standard formula for Layer III.
func (h Header) FrameSize() int {
	slotsPerSec := 144
	if !h.IsMPEG1() {
		slotsPerSec = 72
	}
	size := slotsPerSec * h.Bitrate * 1000 / h.SampleRate
	if h.Padding {
		size++
	}
	return size
}

// SideInfoSize returns the number of bytes of side information following
// the header (and the optional 2-byte CRC).
func (h Header) SideInfoSize() int {
	switch {
	case h.IsMPEG1() && h.NumberOfChannels() == 1:
		return 17
	case h.IsMPEG1():
		return 32
	case h.NumberOfChannels() == 1:
		return 9
	default:
		return 17
	}
}

// ParseHeader reads and validates one 32-bit MP3 frame header and reads
// the optional CRC-16 that immediately follows it when protection_bit is
// clear (spec §2 frame sync). It does not check that CRC, which also
// covers the side information (Decoder.Decode checks it), and the
// returned bool is always true.
func ParseHeader(br bitio.BitReader, verifyCRC bool) (Header, bool, error) {
	sync, err := br.ReadBitsLeq32(11)
	if err != nil {
		return Header{}, false, err
	}
	if sync != 0x7FF {
		return Header{}, false, errBadSync
	}

	verField, err := br.ReadBitsLeq32(2)
	if err != nil {
		return Header{}, false, err
	}
	var hdr Header
	switch verField {
	case 0:
		hdr.Version = Version25
	case 1:
		return Header{}, false, errReservedMode
	case 2:
		hdr.Version = Version2
	case 3:
		hdr.Version = Version1
	}

	layer, err := br.ReadBitsLeq32(2)
	if err != nil {
		return Header{}, false, err
	}
	if layer != 1 { // 01 = Layer III
		return Header{}, false, errReservedMode
	}

	protBit, err := br.ReadBitsLeq32(1)
	if err != nil {
		return Header{}, false, err
	}
	hdr.ProtectionBitOK = protBit != 0

	bitrateIdx, err := br.ReadBitsLeq32(4)
	if err != nil {
		return Header{}, false, err
	}
	if hdr.IsMPEG1() {
		hdr.Bitrate = bitrateTableV1L3[bitrateIdx]
	} else {
		hdr.Bitrate = bitrateTableV2L3[bitrateIdx]
	}
	if hdr.Bitrate == 0 {
		return Header{}, false, errFreeBitrate
	}

	sampleRateIdx, err := br.ReadBitsLeq32(2)
	if err != nil {
		return Header{}, false, err
	}
	if sampleRateIdx == 3 {
		return Header{}, false, errReservedMode
	}
	var verRow int
	switch hdr.Version {
	case Version1:
		verRow = 0
	case Version2:
		verRow = 1
	case Version25:
		verRow = 2
	}
	hdr.SampleRate = sampleRateTable[verRow][sampleRateIdx]

	padding, err := br.ReadBitsLeq32(1)
	if err != nil {
		return Header{}, false, err
	}
	hdr.Padding = padding != 0

	if _, err := br.ReadBitsLeq32(1); err != nil { // private bit, unused
		return Header{}, false, err
	}

	mode, err := br.ReadBitsLeq32(2)
	if err != nil {
		return Header{}, false, err
	}
	hdr.Mode = ChannelMode(mode)

	modeExt, err := br.ReadBitsLeq32(2)
	if err != nil {
		return Header{}, false, err
	}
	hdr.ModeExtension = uint8(modeExt)

	if _, err := br.ReadBitsLeq32(1); err != nil { // copyright, unused
		return Header{}, false, err
	}
	if _, err := br.ReadBitsLeq32(1); err != nil { // original, unused
		return Header{}, false, err
	}
	if _, err := br.ReadBitsLeq32(2); err != nil { // emphasis, unused
		return Header{}, false, err
	}

	hasCRC := !hdr.ProtectionBitOK
	var crcOK = true
	if hasCRC {
		want, err := br.ReadBitsLeq32(16)
		if err != nil {
			return Header{}, false, err
		}
		if verifyCRC {
			// CRC-16 verification requires accumulating over the header and
			// side info preceding this field; callers that need strict
			// verification compute it externally over the raw frame bytes
			// and compare against want.
			_ = want
		}
	}
	return hdr, crcOK, nil
}
