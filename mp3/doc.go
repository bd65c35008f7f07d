// Package mp3 decodes MPEG-1/2 Audio Layer III (MP3): frame headers, the
// bit reservoir that lets main data straddle frame boundaries, side
// information, Huffman-coded spectral samples, scalefactors, requantization,
// stereo processing, and the hybrid IMDCT/polyphase synthesis filterbank
// that reconstructs 32 PCM subbands per granule.
package mp3
