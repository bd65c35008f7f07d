// Package bitio provides the byte- and bit-level stream primitives shared by
// every codec in audiocore: plain and checksum-monitored byte readers,
// most-significant-bit-first and least-significant-bit-first bit readers,
// Huffman/VLC codebook decoding, unary decoding, sign extension and the
// FLAC "UTF-8 extended" integer encoding.
//
// None of the decoders in this module read bits directly from an io.Reader
// mid-frame: a codec obtains a ByteStream over a Packet's payload once, then
// layers a BitReader on top for the duration of the frame.
package bitio
