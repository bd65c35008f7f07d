// Package flac decodes the FLAC lossless audio format: stream metadata,
// per-frame headers protected by a CRC-8, subframe prediction (constant,
// verbatim, fixed, and quantized LPC), partitioned Rice-coded residuals,
// stereo decorrelation, and whole-frame CRC-16 / whole-stream MD5
// verification.
package flac
