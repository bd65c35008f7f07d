package aac

import (
	"errors"
	"math"

	"github.com/llehouerou/audiocore/audio"
	"github.com/llehouerou/audiocore/bitio"
	"github.com/llehouerou/audiocore/codec"
	"github.com/llehouerou/audiocore/internal/tables"
)

// raw_data_block element identifiers (ISO/IEC 14496-3 Table 4.59).
const (
	elemSCE  = 0
	elemCPE  = 1
	elemCCE  = 2
	elemLFE  = 3
	elemDSE  = 4
	elemPCE  = 5
	elemFIL  = 6
	elemTERM = 7
)

// channelState is the decode state a channel must carry across frames:
// the filterbank's overlap-add delay line, the PNS generator seed, and
// the window_sequence validity check's memory of the previous frame.
type channelState struct {
	fb       filterbankState
	rng      uint32
	prevSeq  WindowSequence
	haveSeq  bool
}

// Decoder implements codec.Decoder for AAC-LC streams framed as ADTS.
type Decoder struct {
	opts   codec.Options
	params codec.Parameters

	srIndex uint8
	chans   []channelState

	frameBuf *audio.AudioBuffer[int32]
}

// TryNew opens an AAC decoder. If params.ExtraData holds an
// AudioSpecificConfig it seeds the sample rate/channel count; otherwise
// the first ADTS frame header supplies them.
func TryNew(params codec.Parameters, opts codec.Options) (codec.Decoder, error) {
	if params.Codec != codec.IDAAC {
		return nil, codec.Unsupported("aac: cannot open codec %q", params.Codec)
	}
	d := &Decoder{opts: opts, params: params}

	sampleRate := params.SampleRate
	channels := params.Channels
	if len(params.ExtraData) > 0 {
		asc, err := ParseAudioSpecificConfig(params.ExtraData)
		if errors.Is(err, errUnsupportedObject) || errors.Is(err, errUnsupportedChannels) {
			return nil, codec.Unsupported("%v", err)
		}
		if err != nil {
			return nil, codec.DecodeError(err)
		}
		sampleRate = asc.SampleRate
		channels = int(asc.Channels)
		d.srIndex = asc.SRIndex
	}
	if channels <= 0 {
		channels = 2
	}
	d.params.SampleRate = sampleRate
	d.params.Channels = channels

	d.chans = make([]channelState, channels)
	spec := audio.SignalSpec{SampleRate: sampleRate, Layout: audio.Discrete(channels)}
	d.frameBuf = audio.NewAudioBuffer[int32](1024, spec)
	return d, nil
}

func (d *Decoder) SupportedCodecs() []codec.Descriptor {
	return []codec.Descriptor{{ID: codec.IDAAC, ShortName: "aac", LongName: "Advanced Audio Coding (LC)"}}
}

func (d *Decoder) CodecParameters() codec.Parameters { return d.params }

func (d *Decoder) Reset() {
	for i := range d.chans {
		d.chans[i] = channelState{}
	}
}

func (d *Decoder) Close() error { return nil }

// Decode parses one ADTS frame from pkt.Data and publishes its 1024 (or
// 8x128, for an all-short-window frame) decoded samples per channel into
// dst.
func (d *Decoder) Decode(pkt *codec.Packet, dst audio.Sink) error {
	src := bitio.NewSliceStream(pkt.Data)
	br := bitio.NewMSbReader(src)

	hdr, err := parseADTSHeader(br)
	if err != nil {
		return codec.DecodeError(err)
	}
	if hdr.objectType != ObjectTypeLC {
		return codec.Unsupported("%v", errUnsupportedObject)
	}
	d.srIndex = hdr.srIndex
	if int(hdr.srIndex) < len(tables.SampleRates) {
		d.params.SampleRate = tables.SampleRates[hdr.srIndex]
	}

	nch := channelsForConfig(hdr.channelConfig)
	if nch <= 0 {
		return codec.Unsupported("%v", errUnsupportedChannels)
	}
	if len(d.chans) != nch {
		d.chans = make([]channelState, nch)
	}
	d.params.Channels = nch

	spec := audio.SignalSpec{SampleRate: d.params.SampleRate, Layout: audio.Discrete(nch)}
	if d.frameBuf.Channels() != nch || d.frameBuf.Spec().SampleRate != spec.SampleRate {
		d.frameBuf = audio.NewAudioBuffer[int32](1024, spec)
	}
	d.frameBuf.Clear()
	d.frameBuf.RenderReserved(1024)

	chanIdx := 0
	for {
		id, err := br.ReadBitsLeq32(3)
		if err != nil {
			return codec.DecodeError(err)
		}

		switch id {
		case elemSCE, elemLFE:
			if _, err := br.ReadBitsLeq32(4); err != nil { // element_instance_tag
				return codec.DecodeError(err)
			}
			if chanIdx >= len(d.chans) {
				return codec.DecodeError(errUnsupportedChannels)
			}
			if err := d.decodeSingleChannel(br, chanIdx); err != nil {
				return codec.DecodeError(err)
			}
			chanIdx++

		case elemCPE:
			if _, err := br.ReadBitsLeq32(4); err != nil {
				return codec.DecodeError(err)
			}
			if chanIdx+1 >= len(d.chans) {
				return codec.DecodeError(errUnsupportedChannels)
			}
			if err := d.decodeChannelPair(br, chanIdx); err != nil {
				return codec.DecodeError(err)
			}
			chanIdx += 2

		case elemDSE:
			if err := skipDataStreamElement(br); err != nil {
				return codec.DecodeError(err)
			}

		case elemFIL:
			if err := skipFillElement(br); err != nil {
				return codec.DecodeError(err)
			}

		case elemCCE, elemPCE:
			return codec.Unsupported("%v", errUnsupportedElement)

		case elemTERM:
			br.Realign()
			goto done
		}
	}

done:
	d.frameBuf.Trim(int(pkt.TrimStart), int(pkt.TrimEnd))
	dst.AcceptInt32(d.frameBuf)
	return nil
}

func channelsForConfig(cfg uint8) int {
	switch cfg {
	case 1:
		return 1
	case 2:
		return 2
	default:
		return 0
	}
}

// decodeSingleChannel handles both single_channel_element and
// lfe_channel_element, which share individual_channel_stream(0, 0).
func (d *Decoder) decodeSingleChannel(br bitio.BitReader, chanIdx int) error {
	st := &d.chans[chanIdx]

	globalGain, err := br.ReadBitsLeq32(8)
	if err != nil {
		return err
	}

	var ics ICSInfo
	ics.GlobalGain = uint8(globalGain)
	if err := parseICSInfo(br, &ics, st.prevSeq, st.haveSeq); err != nil {
		return err
	}
	st.prevSeq, st.haveSeq = ics.WindowSequence, true

	samples, err := d.decodeChannelSpectrum(br, &ics, st)
	if err != nil {
		return err
	}

	d.writeChannel(chanIdx, samples)
	return nil
}

// decodeChannelPair handles channel_pair_element: an optional shared
// ics_info and mid-side mask, then two individual channel streams, each
// decoded independently before joint stereo reconciles them.
func (d *Decoder) decodeChannelPair(br bitio.BitReader, chanIdx int) error {
	stL := &d.chans[chanIdx]
	stR := &d.chans[chanIdx+1]

	commonWindow, err := br.ReadBit()
	if err != nil {
		return err
	}

	var shared ICSInfo
	var msMaskPresent uint8
	var msUsed [maxWindowGroups][maxSFB]bool

	if commonWindow != 0 {
		if err := parseICSInfo(br, &shared, stL.prevSeq, stL.haveSeq); err != nil {
			return err
		}
		mmp, err := br.ReadBitsLeq32(2)
		if err != nil {
			return err
		}
		msMaskPresent = uint8(mmp)
		if msMaskPresent == 1 {
			for g := uint8(0); g < shared.NumWindowGroups; g++ {
				for sfb := uint8(0); sfb < shared.MaxSFB; sfb++ {
					bit, err := br.ReadBit()
					if err != nil {
						return err
					}
					msUsed[g][sfb] = bit != 0
				}
			}
		}
	}

	decodeOne := func(st *channelState) (ICSInfo, []float32, []float64, []spectrumBand, error) {
		globalGain, err := br.ReadBitsLeq32(8)
		if err != nil {
			return ICSInfo{}, nil, nil, nil, err
		}
		ics := shared
		ics.GlobalGain = uint8(globalGain)
		if commonWindow == 0 {
			if err := parseICSInfo(br, &ics, st.prevSeq, st.haveSeq); err != nil {
				return ICSInfo{}, nil, nil, nil, err
			}
		}
		st.prevSeq, st.haveSeq = ics.WindowSequence, true

		if err := parseSectionData(br, &ics); err != nil {
			return ICSInfo{}, nil, nil, nil, err
		}
		if err := decodeScalefactors(br, &ics); err != nil {
			return ICSInfo{}, nil, nil, nil, err
		}
		coef, scales, bands, err := d.decodeResidual(br, &ics, st)
		if err != nil {
			return ICSInfo{}, nil, nil, nil, err
		}
		return ics, coef, scales, bands, nil
	}

	icsL, coefL, _, bandsL, err := decodeOne(stL)
	if err != nil {
		return err
	}
	icsR, coefR, _, bandsR, err := decodeOne(stR)
	if err != nil {
		return err
	}

	applyJointStereo(coefL, coefR, bandsL, bandsR, msMaskPresent, msUsed)

	outL := stL.fb.synthesize(coefL, icsL.WindowSequence, icsL.WindowShape)
	outR := stR.fb.synthesize(coefR, icsR.WindowSequence, icsR.WindowShape)
	d.writeChannel(chanIdx, outL)
	d.writeChannel(chanIdx+1, outR)
	return nil
}

// decodeChannelSpectrum runs section_data through filterbank synthesis for
// a channel whose ics_info has already been parsed.
func (d *Decoder) decodeChannelSpectrum(br bitio.BitReader, ics *ICSInfo, st *channelState) ([]float64, error) {
	if err := parseSectionData(br, ics); err != nil {
		return nil, err
	}
	if err := decodeScalefactors(br, ics); err != nil {
		return nil, err
	}
	coef, _, _, err := d.decodeResidual(br, ics, st)
	if err != nil {
		return nil, err
	}
	return st.fb.synthesize(coef, ics.WindowSequence, ics.WindowShape), nil
}

// decodeResidual reads pulse_data, tns_data, gain_control_data (if
// present; the latter must be absent since SSR is unsupported), and
// spectral_data. pulse_data's and tns_data's *presence flags* precede
// spectral_data in the bitstream, but the numeric corrections they
// describe apply to the dequantized coefficients spectral_data produces,
// so both are carried out after decodeSpectrum returns.
func (d *Decoder) decodeResidual(br bitio.BitReader, ics *ICSInfo, st *channelState) ([]float32, []float64, []spectrumBand, error) {
	return decodeResidualData(br, ics, d.srIndex, &st.rng)
}

func decodeResidualData(br bitio.BitReader, ics *ICSInfo, srIndex uint8, rng *uint32) ([]float32, []float64, []spectrumBand, error) {
	pulsePresentBit, err := br.ReadBit()
	if err != nil {
		return nil, nil, nil, err
	}
	var pulse pulseData
	if pulsePresentBit != 0 {
		pulse, err = parsePulseData(br, ics)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	tnsPresentBit, err := br.ReadBit()
	if err != nil {
		return nil, nil, nil, err
	}
	var tnsPerWindow []tnsInfo
	if tnsPresentBit != 0 {
		tnsPerWindow = make([]tnsInfo, ics.NumWindows)
		for w := 0; w < int(ics.NumWindows); w++ {
			info, err := parseTNSData(br, ics)
			if err != nil {
				return nil, nil, nil, err
			}
			tnsPerWindow[w] = info
		}
	}

	gainControlPresent, err := br.ReadBit()
	if err != nil {
		return nil, nil, nil, err
	}
	if gainControlPresent != 0 {
		return nil, nil, nil, errUnsupportedObject
	}

	coef, scales, bands, err := decodeSpectrum(br, ics, srIndex, rng)
	if err != nil {
		return nil, nil, nil, err
	}

	if pulse.present {
		offsets := swbOffsetsFor(ics, srIndex)
		if int(pulse.startSFB) < len(offsets) {
			applyPulses(coef, scales, int(offsets[pulse.startSFB]), pulse)
		}
	}

	if tnsPerWindow != nil {
		windowLen := 1024
		if ics.WindowSequence == EightShortSequence {
			windowLen = 128
		}
		offsets := swbOffsetsFor(ics, srIndex)
		for w, info := range tnsPerWindow {
			if !info.present {
				continue
			}
			base := w * windowLen
			bandPos := 0
			for f := 0; f < info.nFilt; f++ {
				filt := info.filters[f]
				if filt.order == 0 {
					bandPos += filt.length
					continue
				}
				startBand := bandPos
				endBand := bandPos + filt.length
				if endBand > len(offsets)-1 {
					endBand = len(offsets) - 1
				}
				if startBand >= len(offsets)-1 {
					bandPos = endBand
					continue
				}
				sampleStart := base + int(offsets[startBand])
				sampleEnd := base + int(offsets[endBand])
				applyTNS(coef, sampleStart, sampleEnd-sampleStart, filt)
				bandPos = endBand
			}
		}
	}

	return coef, scales, bands, nil
}

func swbOffsetsFor(ics *ICSInfo, srIndex uint8) []uint16 {
	offsets, err := tables.GetSWBOffset(srIndex, 1024, ics.WindowSequence == EightShortSequence)
	if err != nil {
		return nil
	}
	return offsets
}

// writeChannel converts one channel's [-1, 1] float synthesis output into
// the frame buffer's int32 accumulator, clamping before scaling to avoid
// overflow on out-of-range reconstructions.
func (d *Decoder) writeChannel(chanIdx int, samples []float64) {
	plane := d.frameBuf.Chan(chanIdx)
	n := len(samples)
	if n > len(plane) {
		n = len(plane)
	}
	for i := 0; i < n; i++ {
		v := samples[i]
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		plane[i] = int32(math.Round(v * 2147483647.0))
	}
}

func skipDataStreamElement(br bitio.BitReader) error {
	if _, err := br.ReadBitsLeq32(4); err != nil { // element_instance_tag
		return err
	}
	byteAlign, err := br.ReadBit()
	if err != nil {
		return err
	}
	count, err := br.ReadBitsLeq32(8)
	if err != nil {
		return err
	}
	if count == 255 {
		extra, err := br.ReadBitsLeq32(8)
		if err != nil {
			return err
		}
		count += extra
	}
	if byteAlign != 0 {
		br.Realign()
	}
	return br.SkipBits(uint(count) * 8)
}

func skipFillElement(br bitio.BitReader) error {
	count, err := br.ReadBitsLeq32(4)
	if err != nil {
		return err
	}
	if count == 15 {
		extra, err := br.ReadBitsLeq32(8)
		if err != nil {
			return err
		}
		count += extra - 1
	}
	return br.SkipBits(uint(count) * 8)
}
