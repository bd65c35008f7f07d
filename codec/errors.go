package codec

import "github.com/pkg/errors"

// Kind classifies a codec error into the closed taxonomy spec §5 requires:
// callers branch on Kind rather than string-matching error text.
type Kind int

const (
	// KindUnsupported means the bitstream asks for a feature or
	// configuration this decoder does not implement (e.g. an AAC Program
	// Config Element requesting more than two channels).
	KindUnsupported Kind = iota
	// KindDecode means the bitstream is malformed: a sync word wasn't
	// found, a checksum didn't match, a table index was out of range.
	KindDecode
	// KindIO means the underlying byte source returned an error,
	// including unexpected end of stream.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindUnsupported:
		return "unsupported"
	case KindDecode:
		return "decode"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the error type every Decoder method returns, wrapping a Kind and
// an underlying cause with github.com/pkg/errors so callers keep a stack
// trace back to the original fault.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// Unsupported formats a new KindUnsupported Error.
func Unsupported(format string, args ...any) error {
	return &Error{Kind: KindUnsupported, cause: errors.Errorf(format, args...)}
}

// DecodeError wraps cause as a KindDecode Error.
func DecodeError(cause error) error {
	return &Error{Kind: KindDecode, cause: errors.WithStack(cause)}
}

// DecodeErrorf formats a new KindDecode Error.
func DecodeErrorf(format string, args ...any) error {
	return &Error{Kind: KindDecode, cause: errors.Errorf(format, args...)}
}

// IoError wraps cause (typically from a bitio.ByteStream or io.Reader) as a
// KindIO Error.
func IoError(cause error) error {
	return &Error{Kind: KindIO, cause: errors.WithStack(cause)}
}

// Is reports whether err carries the given Kind, unwrapping through any
// github.com/pkg/errors stack frames in between.
func Is(err error, k Kind) bool {
	var e *Error
	for err != nil {
		if ce, ok := err.(*Error); ok {
			e = ce
			break
		}
		err = errors.Unwrap(err)
	}
	return e != nil && e.Kind == k
}
