package mp3

import "errors"

var (
	errBadSync           = errors.New("mp3: frame sync not found")
	errReservedMode      = errors.New("mp3: reserved MPEG version or layer bits")
	errFreeBitrate       = errors.New("mp3: free-format bitrate not supported")
	errBadCRC            = errors.New("mp3: header CRC-16 mismatch")
	errReservoirUnderrun = errors.New("mp3: bit reservoir does not have main_data_begin bytes available")
	errHuffmanTable      = errors.New("mp3: unknown or unsupported huffman table index")
	errHuffmanCodeword   = errors.New("mp3: invalid huffman codeword")
)
