package bitio

import "errors"

// ErrUnexpectedEOF is returned whenever a read operation runs past the end
// of the underlying buffer, whether at the byte or the bit level.
var ErrUnexpectedEOF = errors.New("bitio: unexpected end of stream")

// ErrInvalidCodeword is returned by Codebook decoding when the bits consumed
// so far cannot terminate at any value entry and the table's max code length
// has been exceeded.
var ErrInvalidCodeword = errors.New("bitio: invalid codeword")
