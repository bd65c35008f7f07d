package mp3

import (
	"math"

	"github.com/llehouerou/audiocore/audio"
	"github.com/llehouerou/audiocore/bitio"
	"github.com/llehouerou/audiocore/codec"
	"github.com/llehouerou/audiocore/internal/tables"
)

// Decoder implements codec.Decoder for MPEG-1/2 Layer III streams. Like
// flac.Decoder it accumulates into int32 before publishing through an
// audio.Sink, scaled as full-range 32-bit fixed point (spec §4.2), here
// from the normalized [-1, 1] floats Layer III's synthesis filterbank
// produces.
type Decoder struct {
	opts   codec.Options
	params codec.Parameters

	reservoir *Reservoir
	synth     [2]*SynthesisState
	prevSF    [2][2]*Scalefactors // [channel][granule-0 result, carried into granule 1]

	frameBuf *audio.AudioBuffer[int32]
}

// TryNew opens an MP3 decoder. params.SampleRate/Channels are advisory; the
// first frame header refines them.
func TryNew(params codec.Parameters, opts codec.Options) (codec.Decoder, error) {
	if params.Codec != codec.IDMP3 {
		return nil, codec.Unsupported("mp3: cannot open codec %q", params.Codec)
	}
	nch := params.Channels
	if nch <= 0 {
		nch = 2
	}
	d := &Decoder{
		opts:      opts,
		reservoir: NewReservoir(),
		params:    params,
	}
	for c := 0; c < 2; c++ {
		d.synth[c] = NewSynthesisState()
	}
	spec := audio.SignalSpec{SampleRate: params.SampleRate, Layout: audio.Discrete(nch)}
	d.frameBuf = audio.NewAudioBuffer[int32](1152, spec)
	return d, nil
}

func (d *Decoder) SupportedCodecs() []codec.Descriptor {
	return []codec.Descriptor{{ID: codec.IDMP3, ShortName: "mp3", LongName: "MPEG-1/2 Audio Layer III"}}
}

func (d *Decoder) CodecParameters() codec.Parameters { return d.params }

func (d *Decoder) Reset() {
	d.reservoir.Reset()
	for c := 0; c < 2; c++ {
		d.synth[c] = NewSynthesisState()
		d.prevSF[c][0] = nil
		d.prevSF[c][1] = nil
	}
}

func (d *Decoder) Close() error { return nil }

// Decode parses and decodes the single frame in pkt.Data, publishing
// interleaved-by-channel PCM samples for every granule into dst.
func (d *Decoder) Decode(pkt *codec.Packet, dst audio.Sink) error {
	d.frameBuf.Clear()
	src := bitio.NewSliceStream(pkt.Data)
	br := bitio.NewMSbReader(src)

	hdr, _, err := ParseHeader(br, d.opts.VerifyChecksums)
	if err != nil {
		return codec.DecodeError(err)
	}
	si, err := ParseSideInfo(br, hdr)
	if err != nil {
		return codec.DecodeError(err)
	}

	d.params.SampleRate = uint32(hdr.SampleRate)
	d.params.Channels = hdr.NumberOfChannels()

	headerLen := 4
	if !hdr.ProtectionBitOK {
		headerLen += 2
	}
	mainDataOffset := headerLen + hdr.SideInfoSize()
	if mainDataOffset > len(pkt.Data) {
		return codec.DecodeError(errReservoirUnderrun)
	}
	if !hdr.ProtectionBitOK && d.opts.VerifyChecksums {
		// CRC-16 (polynomial 0x8005, initial value 0xFFFF) over the last two
		// header bytes and the side information, skipping the CRC field.
		crc := uint16(0xFFFF)
		for i, b := range pkt.Data[2:mainDataOffset] {
			if i == 2 || i == 3 {
				continue
			}
			crc ^= uint16(b) << 8
			for k := 0; k < 8; k++ {
				crc = crc<<1 ^ 0x8005*(crc>>15)
			}
		}
		if crc != uint16(pkt.Data[4])<<8|uint16(pkt.Data[5]) {
			return codec.DecodeError(errBadCRC)
		}
	}
	mainData := pkt.Data[mainDataOffset:]

	gbr, err := d.reservoir.Feed(mainData, si.MainDataBegin)
	if err != nil {
		// Not enough history yet (stream start): nothing to decode from
		// this frame, but the reservoir now has the bytes a later frame
		// needs.
		return nil
	}

	nch := hdr.NumberOfChannels()
	msStereo := hdr.Mode == ModeJointStereo && hdr.ModeExtension&0x2 != 0

	spec := audio.SignalSpec{SampleRate: uint32(hdr.SampleRate), Layout: audio.Discrete(nch)}
	if d.frameBuf.Channels() != nch || d.frameBuf.Spec().SampleRate != spec.SampleRate {
		d.frameBuf = audio.NewAudioBuffer[int32](1152, spec)
	}

	for gr := 0; gr < hdr.Granules(); gr++ {
		var lines [2][]float64
		for ch := 0; ch < nch; ch++ {
			var prev *Scalefactors
			if gr == 1 {
				prev = d.prevSF[ch][0]
			}
			startBits := gbr.BitsConsumed()
			sf, err := ReadScalefactors(gbr, hdr, &si, gr, ch, prev)
			if err != nil {
				return codec.DecodeError(err)
			}
			if gr == 0 {
				sfCopy := sf
				d.prevSF[ch][0] = &sfCopy
			}

			used := gbr.BitsConsumed() - startBits
			total := uint64(si.Part2And3Length[gr][ch])
			var remaining uint64
			if total > used {
				remaining = total - used
			}
			is := decodeSpectrum(gbr, hdr, &si, gr, ch, remaining)

			consumed := gbr.BitsConsumed() - startBits
			if consumed < total {
				_ = gbr.SkipBits(uint(total - consumed))
			}

			xr := requantize(is, sf, &si, gr, ch, hdr)
			blockType := si.BlockType[gr][ch]
			mixed := si.MixedBlockFlag[gr][ch] == 1
			if blockType == 2 {
				bandsShort := tables.MP3ScalefacBandIndices[sampleRateGroup(hdr.SampleRate)].Short
				xr = reorder(xr, bandsShort, mixed)
			}
			lines[ch] = xr
		}

		if msStereo && nch == 2 {
			applyMidSide(lines[0], lines[1])
		}

		for ch := 0; ch < nch; ch++ {
			blockType := si.BlockType[gr][ch]
			mixed := si.MixedBlockFlag[gr][ch] == 1
			antialias(lines[ch], blockType, mixed)
		}

		startFrame := d.frameBuf.Frames()
		d.frameBuf.RenderReserved(576)
		for ch := 0; ch < nch; ch++ {
			plane := d.frameBuf.Chan(ch)
			for row := 0; row < 18; row++ {
				var subband [32]float64
				for sb := 0; sb < 32; sb++ {
					subband[sb] = lines[ch][sb*18+row]
				}
				pcm := d.synth[ch].PushAndEmit(subband)
				for s := 0; s < 32; s++ {
					plane[startFrame+row*32+s] = floatToInt32(pcm[s])
				}
			}
		}
	}

	d.frameBuf.Trim(int(pkt.TrimStart), int(pkt.TrimEnd))
	dst.AcceptInt32(d.frameBuf)
	return nil
}

func applyMidSide(mid, side []float64) {
	const invSqrt2 = 0.70710678118654752440
	n := len(mid)
	if len(side) < n {
		n = len(side)
	}
	for i := 0; i < n; i++ {
		m, s := mid[i], side[i]
		mid[i] = (m + s) * invSqrt2
		side[i] = (m - s) * invSqrt2
	}
}

func floatToInt32(f float64) int32 {
	const scale = 2147483648.0
	v := math.Round(f * scale)
	if v > math.MaxInt32 {
		v = math.MaxInt32
	}
	if v < math.MinInt32 {
		v = math.MinInt32
	}
	return int32(v)
}
