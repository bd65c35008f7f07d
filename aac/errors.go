package aac

import "errors"

var (
	errADTSSync            = errors.New("aac: ADTS sync word not found")
	errUnsupportedObject   = errors.New("aac: only the LC object type is supported")
	errUnsupportedChannels = errors.New("aac: only mono and stereo are supported")
	errICSReservedBit      = errors.New("aac: ics_info reserved bit is set")
	errWindowSequence      = errors.New("aac: invalid window_sequence transition")
	errReservedCodebook    = errors.New("aac: reserved section codebook (12)")
	errSectionOverflow     = errors.New("aac: section data overflows max_sfb")
	errScalefactorRange    = errors.New("aac: scalefactor ran outside its valid range")
	errHuffmanCodeword     = errors.New("aac: invalid huffman codeword")
	errUnsupportedElement  = errors.New("aac: CCE/PCE elements are not supported")
	errPulseShortBlock     = errors.New("aac: pulse data not allowed with short blocks")
	errTNSOrder            = errors.New("aac: TNS filter order exceeds the profile limit")
)
