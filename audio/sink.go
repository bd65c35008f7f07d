package audio

// Sink is the non-generic interface an AudioBuffer[S] satisfies for every
// sample type S. A codec.Decoder always accumulates samples internally as
// int32 (the widest fixed-point width any supported format needs) and
// publishes them through a Sink so callers can request any output Sample
// type without the decoder package needing to know it.
type Sink interface {
	// AcceptInt32 converts src's samples into the sink's own sample type
	// via FromSample and appends them.
	AcceptInt32(src *AudioBuffer[int32])
}

// AcceptInt32 implements Sink.
func (dst *AudioBuffer[S]) AcceptInt32(src *AudioBuffer[int32]) {
	Transform(dst, src)
}
