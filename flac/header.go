package flac

import (
	"github.com/llehouerou/audiocore/bitio"
)

// SyncCode is the 14-bit frame sync pattern every FLAC frame begins with.
const SyncCode = 0x3FFE

// ChannelAssignment specifies how a frame's subframes map onto output
// channels, including the three stereo decorrelation modes FLAC adds on
// top of plain independent channels.
type ChannelAssignment uint8

const (
	ChannelMono       ChannelAssignment = iota // 1 channel: mono
	ChannelLR                                  // 2 channels: left, right
	ChannelLRC                                 // 3 channels: left, right, center
	ChannelLRLsRs                              // 4 channels
	ChannelLRCLsRs                             // 5 channels
	ChannelLRCLfeLsRs                          // 6 channels
	Channel7
	Channel8
	ChannelLeftSide  // left/side: left, side = left-right
	ChannelRightSide // side/right: side = left-right, right
	ChannelMidSide   // mid/side: mid = (left+right)>>1, side = left-right
)

var independentChannelCount = [...]int{
	ChannelMono: 1, ChannelLR: 2, ChannelLRC: 3, ChannelLRLsRs: 4,
	ChannelLRCLsRs: 5, ChannelLRCLfeLsRs: 6, Channel7: 7, Channel8: 8,
	ChannelLeftSide: 2, ChannelRightSide: 2, ChannelMidSide: 2,
}

// ChannelCount returns the number of subframes (and output channels) this
// assignment implies.
func (c ChannelAssignment) ChannelCount() int { return independentChannelCount[c] }

// IsStereoDecorrelated reports whether the two subframes of this frame must
// be recombined via stereo decorrelation rather than used as-is.
func (c ChannelAssignment) IsStereoDecorrelated() bool {
	return c == ChannelLeftSide || c == ChannelRightSide || c == ChannelMidSide
}

// FrameHeader is one frame's parsed header (spec §2 FLAC frame layout).
type FrameHeader struct {
	VariableBlockSize bool
	BlockSize         uint16
	SampleRate        uint32 // 0 means "use StreamInfo.SampleRate"
	ChannelAssign     ChannelAssignment
	BitsPerSample     uint8 // 0 means "use StreamInfo.BitsPerSample"
	FrameOrSampleNum  uint64
}

// ParseFrameHeader reads one frame header from ms, verifying its trailing
// CRC-8 against the bytes consumed by the header itself. ms must be a fresh
// bitio.MonitoredByteStream configured with CRC8ATM so the checksum is
// accumulated over exactly the header's bytes.
func ParseFrameHeader(ms *bitio.MonitoredByteStream, si StreamInfo) (FrameHeader, error) {
	ms.Reset()
	br := bitio.NewMSbReader(ms)

	sync, err := br.ReadBitsLeq32(14)
	if err != nil {
		return FrameHeader{}, err
	}
	if uint16(sync) != SyncCode {
		return FrameHeader{}, errBadSyncCode
	}

	reserved, err := br.ReadBitsLeq32(1)
	if err != nil {
		return FrameHeader{}, err
	}
	if reserved != 0 {
		return FrameHeader{}, errReservedBits
	}

	variableBlockSize, err := br.ReadBitsLeq32(1)
	if err != nil {
		return FrameHeader{}, err
	}

	blockSizeCode, err := br.ReadBitsLeq32(4)
	if err != nil {
		return FrameHeader{}, err
	}
	sampleRateCode, err := br.ReadBitsLeq32(4)
	if err != nil {
		return FrameHeader{}, err
	}
	channelCode, err := br.ReadBitsLeq32(4)
	if err != nil {
		return FrameHeader{}, err
	}
	if channelCode > 10 {
		return FrameHeader{}, errReservedBits
	}
	sampleSizeCode, err := br.ReadBitsLeq32(3)
	if err != nil {
		return FrameHeader{}, err
	}
	reserved, err = br.ReadBitsLeq32(1)
	if err != nil {
		return FrameHeader{}, err
	}
	if reserved != 0 {
		return FrameHeader{}, errReservedBits
	}

	hdr := FrameHeader{VariableBlockSize: variableBlockSize != 0}

	num, ok, err := bitio.ReadUTF8Extended(br)
	if err != nil {
		return FrameHeader{}, err
	}
	if !ok {
		return FrameHeader{}, errBadSyncCode
	}
	hdr.FrameOrSampleNum = num

	// Block size.
	switch {
	case blockSizeCode == 0:
		return FrameHeader{}, errBlockSizeReserved
	case blockSizeCode == 1:
		hdr.BlockSize = 192
	case blockSizeCode >= 2 && blockSizeCode <= 5:
		hdr.BlockSize = 576 << (blockSizeCode - 2)
	case blockSizeCode == 6:
		v, err := br.ReadBitsLeq32(8)
		if err != nil {
			return FrameHeader{}, err
		}
		hdr.BlockSize = uint16(v) + 1
	case blockSizeCode == 7:
		v, err := br.ReadBitsLeq32(16)
		if err != nil {
			return FrameHeader{}, err
		}
		hdr.BlockSize = uint16(v) + 1
	default: // 8..15
		hdr.BlockSize = 256 << (blockSizeCode - 8)
	}

	// Sample rate.
	switch sampleRateCode {
	case 0:
		hdr.SampleRate = 0 // from STREAMINFO
	case 1:
		hdr.SampleRate = 88200
	case 2:
		hdr.SampleRate = 176400
	case 3:
		hdr.SampleRate = 192000
	case 4:
		hdr.SampleRate = 8000
	case 5:
		hdr.SampleRate = 16000
	case 6:
		hdr.SampleRate = 22050
	case 7:
		hdr.SampleRate = 24000
	case 8:
		hdr.SampleRate = 32000
	case 9:
		hdr.SampleRate = 44100
	case 10:
		hdr.SampleRate = 48000
	case 11:
		hdr.SampleRate = 96000
	case 12:
		v, err := br.ReadBitsLeq32(8)
		if err != nil {
			return FrameHeader{}, err
		}
		hdr.SampleRate = v * 1000
	case 13:
		v, err := br.ReadBitsLeq32(16)
		if err != nil {
			return FrameHeader{}, err
		}
		hdr.SampleRate = v
	case 14:
		v, err := br.ReadBitsLeq32(16)
		if err != nil {
			return FrameHeader{}, err
		}
		hdr.SampleRate = v * 10
	default: // 15
		return FrameHeader{}, errSampleRateInvalid
	}

	hdr.ChannelAssign = ChannelAssignment(channelCode)

	switch sampleSizeCode {
	case 0:
		hdr.BitsPerSample = 0 // from STREAMINFO
	case 1:
		hdr.BitsPerSample = 8
	case 2:
		hdr.BitsPerSample = 12
	case 3, 7:
		return FrameHeader{}, errReservedBits
	case 4:
		hdr.BitsPerSample = 16
	case 5:
		hdr.BitsPerSample = 20
	case 6:
		hdr.BitsPerSample = 24
	}

	br.Realign()
	got := ms.Sum8()
	want, err := ms.ReadByte()
	if err != nil {
		return FrameHeader{}, err
	}
	if got != want {
		return FrameHeader{}, errChecksumMismatch
	}

	if hdr.SampleRate == 0 {
		hdr.SampleRate = si.SampleRate
	}
	if hdr.BitsPerSample == 0 {
		hdr.BitsPerSample = si.BitsPerSample
	}
	return hdr, nil
}
