package flac

import (
	"crypto/md5"

	"github.com/llehouerou/audiocore/audio"
	"github.com/llehouerou/audiocore/bitio"
	"github.com/llehouerou/audiocore/codec"
)

// Decoder implements codec.Decoder for FLAC streams. Internally it always
// decodes into int32 accumulators (FLAC's widest supported bit depth) and
// publishes into the caller's AudioBuffer via audio.Transform, so a caller
// can request any output Sample type without this package special-casing
// it.
type Decoder struct {
	opts   codec.Options
	si     StreamInfo
	params codec.Parameters

	md5sum   *md5Accumulator
	frameBuf *audio.AudioBuffer[int32]
}

// TryNew opens a FLAC decoder from params.ExtraData (the stream's
// STREAMINFO block body). It returns a codec.Unsupported error if
// params.Codec isn't IDFLAC.
func TryNew(params codec.Parameters, opts codec.Options) (codec.Decoder, error) {
	if params.Codec != codec.IDFLAC {
		return nil, codec.Unsupported("flac: cannot open codec %q", params.Codec)
	}
	si, err := ParseStreamInfo(params.ExtraData)
	if err != nil {
		return nil, codec.DecodeError(err)
	}

	d := &Decoder{
		opts: opts,
		si:   si,
		params: codec.Parameters{
			Codec:      codec.IDFLAC,
			SampleRate: si.SampleRate,
			Channels:   int(si.NumChannels),
			BitsPerRaw: uint(si.BitsPerSample),
		},
	}
	if opts.VerifyMD5 {
		d.md5sum = newMD5Accumulator()
	}
	spec := audio.SignalSpec{SampleRate: si.SampleRate, Layout: audio.Discrete(int(si.NumChannels))}
	d.frameBuf = audio.NewAudioBuffer[int32](int(si.MaxBlockSize), spec)
	return d, nil
}

func (d *Decoder) SupportedCodecs() []codec.Descriptor {
	return []codec.Descriptor{{ID: codec.IDFLAC, ShortName: "flac", LongName: "Free Lossless Audio Codec"}}
}

func (d *Decoder) CodecParameters() codec.Parameters { return d.params }

func (d *Decoder) Reset() {
	if d.md5sum != nil {
		d.md5sum.reset()
	}
}

// Close runs VerifyStreamMD5, so with Options.VerifyMD5 set it reports an
// MD5 mismatch over everything decoded so far.
func (d *Decoder) Close() error { return d.VerifyStreamMD5() }

// Decode decodes every frame in pkt.Data, appending int32-converted
// samples into dst after applying any stereo decorrelation, and trims
// pkt.TrimStart/pkt.TrimEnd frames off the decoded result for gapless
// playback.
func (d *Decoder) Decode(pkt *codec.Packet, dst audio.Sink) error {
	d.frameBuf.Clear()
	src := bitio.NewSliceStream(pkt.Data)

	for src.Len() > src.Pos() {
		if err := d.decodeFrame(src); err != nil {
			return err
		}
	}

	d.frameBuf.Trim(int(pkt.TrimStart), int(pkt.TrimEnd))
	dst.AcceptInt32(d.frameBuf)
	return nil
}

func (d *Decoder) decodeFrame(src bitio.ByteStream) error {
	// frameMon accumulates the CRC-16 the frame footer verifies, over
	// every byte from the sync code through the end of subframe data.
	// headerMon is stacked on top of it purely so ParseFrameHeader can
	// verify the header's own CRC-8 without disturbing frameMon's running
	// sum.
	frameMon := bitio.NewMonitoredByteStream(src, bitio.CRC16IBM)
	headerMon := bitio.NewMonitoredByteStream(frameMon, bitio.CRC8ATM)
	hdr, err := ParseFrameHeader(headerMon, d.si)
	if err != nil {
		return codec.DecodeError(err)
	}

	br := bitio.NewMSbReader(frameMon)

	nch := hdr.ChannelAssign.ChannelCount()
	chans := make([][]int32, nch)
	bps := hdr.BitsPerSample

	for c := 0; c < nch; c++ {
		chBps := bps
		if hdr.ChannelAssign == ChannelLeftSide && c == 1 ||
			hdr.ChannelAssign == ChannelRightSide && c == 0 ||
			hdr.ChannelAssign == ChannelMidSide && c == 1 {
			chBps++
		}
		samples, err := DecodeSubframe(br, int(hdr.BlockSize), chBps)
		if err != nil {
			return codec.DecodeError(err)
		}
		chans[c] = samples
	}

	if hdr.ChannelAssign.IsStereoDecorrelated() {
		Decorrelate(hdr.ChannelAssign, chans[0], chans[1])
	}

	br.Realign()
	if d.opts.VerifyChecksums {
		got := frameMon.Sum16()
		want, err := br.ReadBitsLeq32(16)
		if err != nil {
			return codec.IoError(err)
		}
		if uint16(want) != got {
			return codec.DecodeError(errFrameCRC16)
		}
	} else {
		if err := br.SkipBits(16); err != nil {
			return codec.IoError(err)
		}
	}

	// Published samples are shifted up to full-range 32-bit fixed point;
	// the MD5 covers the native-depth values.
	shift := 32 - uint(hdr.BitsPerSample)
	d.frameBuf.RenderReserved(int(hdr.BlockSize))
	for c := 0; c < nch; c++ {
		plane := d.frameBuf.Chan(c)
		start := len(plane) - int(hdr.BlockSize)
		for i, v := range chans[c] {
			plane[start+i] = v << shift
		}
	}
	if d.md5sum != nil {
		d.md5sum.observe(chans, int(hdr.BitsPerSample))
	}
	return nil
}

// VerifyStreamMD5 compares the running MD5 of every decoded sample against
// the STREAMINFO signature, returning codec.DecodeError(errMD5Mismatch) on
// a mismatch. Call once after the final packet of a stream has been
// decoded with Options.VerifyMD5 set.
func (d *Decoder) VerifyStreamMD5() error {
	if d.md5sum == nil {
		return nil
	}
	sum := d.md5sum.sum()
	if sum != d.si.MD5Signature {
		return codec.DecodeError(errMD5Mismatch)
	}
	return nil
}

type md5Accumulator struct {
	h *md5hash
}

type md5hash = md5HashState

func newMD5Accumulator() *md5Accumulator {
	return &md5Accumulator{h: newMD5HashState()}
}

func (a *md5Accumulator) observe(chans [][]int32, bps int) {
	a.h.write(chans, bps)
}

func (a *md5Accumulator) reset() { a.h = newMD5HashState() }

func (a *md5Accumulator) sum() [16]byte { return a.h.sum() }

// md5HashState accumulates the little-endian signed-PCM byte stream FLAC's
// MD5 signature covers: each sample packed into ceil(bps/8) bytes,
// interleaved channel-minor, frame-major.
type md5HashState struct {
	buf []byte
}

func newMD5HashState() *md5HashState { return &md5HashState{} }

func (h *md5HashState) write(chans [][]int32, bps int) {
	bytesPerSample := (bps + 7) / 8
	n := 0
	if len(chans) > 0 {
		n = len(chans[0])
	}
	for i := 0; i < n; i++ {
		for _, ch := range chans {
			v := uint32(ch[i])
			for b := 0; b < bytesPerSample; b++ {
				h.buf = append(h.buf, byte(v>>(8*b)))
			}
		}
	}
}

func (h *md5HashState) sum() [16]byte { return md5.Sum(h.buf) }
