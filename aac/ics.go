package aac

import "github.com/llehouerou/audiocore/bitio"

// WindowSequence is ics_info's window_sequence field, selecting which IMDCT
// length(s) and overlap-add rule apply to this channel's current frame.
type WindowSequence uint8

const (
	OnlyLongSequence  WindowSequence = 0
	LongStartSequence WindowSequence = 1
	EightShortSequence WindowSequence = 2
	LongStopSequence  WindowSequence = 3
)

const maxWindowGroups = 8
const maxSFB = 51 // long-window scalefactor bands, upper bound across all sample rates

// ICSInfo is one channel's individual_channel_stream header: window
// layout, scalefactor-band grouping, and the per-band codebook/scalefactor
// state filled in by section data and scalefactor decoding.
type ICSInfo struct {
	WindowSequence WindowSequence
	WindowShape    uint8 // 0 sine, 1 Kaiser-Bessel derived

	MaxSFB          uint8
	NumWindows      uint8
	NumWindowGroups uint8
	WindowGroupLen  [maxWindowGroups]uint8
	NumSWB          int

	SectCB         [maxWindowGroups][maxSFB]uint8
	Scalefactors   [maxWindowGroups][maxSFB]int16

	GlobalGain uint8
}

// parseICSInfo reads ics_info() (ISO/IEC 14496-3 §4.4.6.1 / §4.5.2.3),
// validating the window_sequence transition against the previous frame's
// sequence for this channel, and fills in window grouping.
func parseICSInfo(br bitio.BitReader, ics *ICSInfo, prevSeq WindowSequence, haveCurrentWindow bool) error {
	reserved, err := br.ReadBit()
	if err != nil {
		return err
	}
	if reserved != 0 {
		return errICSReservedBit
	}

	seq, err := br.ReadBitsLeq32(2)
	if err != nil {
		return err
	}
	ics.WindowSequence = WindowSequence(seq)

	if haveCurrentWindow && !validSequenceTransition(prevSeq, ics.WindowSequence) {
		return errWindowSequence
	}

	shape, err := br.ReadBit()
	if err != nil {
		return err
	}
	ics.WindowShape = shape

	if ics.WindowSequence == EightShortSequence {
		maxSfb, err := br.ReadBitsLeq32(4)
		if err != nil {
			return err
		}
		ics.MaxSFB = uint8(maxSfb)
		grouping, err := br.ReadBitsLeq32(7)
		if err != nil {
			return err
		}
		ics.NumWindows = 8
		buildShortGrouping(ics, uint8(grouping))
	} else {
		maxSfb, err := br.ReadBitsLeq32(6)
		if err != nil {
			return err
		}
		ics.MaxSFB = uint8(maxSfb)
		ics.NumWindows = 1
		ics.NumWindowGroups = 1
		ics.WindowGroupLen[0] = 1

		predictorPresent, err := br.ReadBit()
		if err != nil {
			return err
		}
		if predictorPresent != 0 {
			// MAIN-profile and LTP prediction data are out of scope for LC;
			// a stream that sets this flag is not LC-conformant.
			return errUnsupportedObject
		}
	}

	return nil
}

// validSequenceTransition implements the ics_info state machine spec
// names explicitly: Only_Long/Long_Stop must be followed by Only_Long or
// Long_Start; Long_Start/Eight_Short must be followed by Eight_Short or
// Long_Stop.
func validSequenceTransition(prev, cur WindowSequence) bool {
	switch prev {
	case OnlyLongSequence, LongStopSequence:
		return cur == OnlyLongSequence || cur == LongStartSequence
	case LongStartSequence, EightShortSequence:
		return cur == EightShortSequence || cur == LongStopSequence
	default:
		return true
	}
}

// buildShortGrouping expands the 7-bit scale_factor_grouping field (one bit
// per window 1..7; a set bit merges that window into the previous group)
// into window_groups and per-group window counts.
func buildShortGrouping(ics *ICSInfo, grouping uint8) {
	ics.NumWindowGroups = 1
	ics.WindowGroupLen[0] = 1
	for w := uint8(1); w < 8; w++ {
		bit := (grouping >> (6 - (w - 1))) & 1
		if bit == 1 {
			ics.WindowGroupLen[ics.NumWindowGroups-1]++
		} else {
			ics.WindowGroupLen[ics.NumWindowGroups] = 1
			ics.NumWindowGroups++
		}
	}
}
