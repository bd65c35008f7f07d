// Package codec defines the shared Decoder contract every format package
// (flac, mp3, aac) implements, plus the packet, parameter, and option types
// that cross a codec boundary (spec §5).
package codec

import (
	"github.com/charmbracelet/log"

	"github.com/llehouerou/audiocore/audio"
)

// ID names one of the codecs this module can decode.
type ID string

const (
	IDFLAC ID = "flac"
	IDMP3  ID = "mp3"
	IDAAC  ID = "aac"
)

// Descriptor advertises what a format package's decoder supports, returned
// by Decoder.SupportedCodecs so a demuxer-agnostic caller can pick a decoder
// without constructing one first.
type Descriptor struct {
	ID        ID
	ShortName string
	LongName  string
}

// Parameters carries the subset of a stream's codec parameters a Decoder
// needs to begin decoding: sample rate, channel layout, bit depth, and any
// codec-specific extra data (FLAC STREAMINFO, an AAC AudioSpecificConfig).
type Parameters struct {
	Codec        ID
	SampleRate   uint32
	Channels     int
	BitsPerRaw   uint // bits per sample before internal widening, 0 if unknown
	ExtraData    []byte
	FramesPerPkt uint64 // 0 if variable/unknown
}

// Packet is one demuxed unit of coded data for a single track, carrying the
// gapless-trim metadata spec §4.4 / SPEC_FULL §13 describe.
type Packet struct {
	TrackID  uint32
	PTS      int64
	DTS      int64
	Duration uint64
	// TrimStart and TrimEnd are frame counts to drop from the decoded
	// output of this packet, as an edit list or gapless tag requires.
	TrimStart uint32
	TrimEnd   uint32
	Data      []byte
}

// Options configures a Decoder at construction time. Logger is used only
// for lifecycle diagnostics (stream opened, feature auto-detected,
// recoverable frame loss) — never for per-sample or per-frame tracing,
// which would dominate decode time.
type Options struct {
	Logger *log.Logger

	// VerifyChecksums enables a format's built-in integrity check where one
	// exists (FLAC frame CRC-16, MP3 frame CRC-16). A mismatch surfaces
	// as a KindDecode Error rather than being silently ignored. FLAC's
	// frame header CRC-8 is checked whether or not this is set.
	VerifyChecksums bool

	// VerifyMD5 enables FLAC's whole-stream MD5 validation against the
	// STREAMINFO signature; flac.Decoder's Close reports a mismatch.
	VerifyMD5 bool

	// Dither names a dither distribution. No decoder reads it: output
	// conversions are never dithered, whatever its value.
	Dither string // "", "rectangular", "triangular"
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// Decoder is the contract every format package's decoder implements.
type Decoder interface {
	// SupportedCodecs lists the codec IDs this Decoder type can open.
	SupportedCodecs() []Descriptor

	// CodecParameters returns the parameters this Decoder was opened
	// with, possibly refined (e.g. a sample rate discovered from the
	// first frame header rather than asserted by the caller).
	CodecParameters() Parameters

	// Decode consumes one Packet and appends its decoded frames into dst.
	// dst's channel layout must already match CodecParameters; Decode
	// never changes a buffer's spec, and converts its internal int32
	// accumulator into dst's sample type via audio.Sink.
	Decode(pkt *Packet, dst audio.Sink) error

	// Reset clears any decoder-internal state carried across packets
	// (bit reservoirs, LPC history, PNS RNG state) without reallocating,
	// used after a seek.
	Reset()

	// Close releases any resources the Decoder holds open.
	Close() error
}

// TryNew is the shape every format package's constructor follows:
// TryNew(params, opts) (Decoder, error), returning Unsupported if params
// describes a configuration the package cannot open. Format packages
// implement this directly; it is documented here as the interface contract
// rather than declared as a Go type, since Go cannot express a constructor
// function as part of an interface.
