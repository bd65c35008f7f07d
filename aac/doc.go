// Package aac decodes AAC-LC (Low Complexity) elementary streams framed as
// ADTS: raw_data_block element iteration, individual channel stream (ICS)
// info, section data, scalefactors, perceptual noise substitution,
// Huffman-coded spectral quads/pairs, pulse data, temporal noise shaping,
// mid-side/intensity joint stereo, and the IMDCT/windowing overlap-add that
// reconstructs 1024 (or 8x128) time-domain samples per channel per frame.
package aac
