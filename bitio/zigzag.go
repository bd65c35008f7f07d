package bitio

// ZigZagDecode maps an unsigned zigzag-coded value back to its signed
// original: 0,1,2,3,4,... -> 0,-1,1,-2,2,.... Used by FLAC's Rice-coded
// residuals.
func ZigZagDecode(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// ZigZagEncode is the inverse of ZigZagDecode.
func ZigZagEncode(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}
