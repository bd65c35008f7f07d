package flac

import "errors"

var (
	errShortStreamInfo   = errors.New("flac: STREAMINFO block shorter than 34 bytes")
	errBadSyncCode       = errors.New("flac: invalid frame sync code")
	errReservedBits      = errors.New("flac: reserved bits set")
	errBlockSizeReserved = errors.New("flac: reserved block size code")
	errSampleRateInvalid = errors.New("flac: invalid sample rate code 1111")
	errSampleSizeUnknown = errors.New("flac: sample size code 000 requires STREAMINFO bits-per-sample")
	errChecksumMismatch  = errors.New("flac: frame header CRC-8 mismatch")
	errFrameCRC16        = errors.New("flac: frame CRC-16 mismatch")
	errMD5Mismatch       = errors.New("flac: stream MD5 signature mismatch")
	errInvalidPredMethod = errors.New("flac: reserved subframe prediction method")
	errInvalidLPCPrec    = errors.New("flac: invalid quantized LPC precision code 1111")
	errRiceEscapeUnimpl  = errors.New("flac: escaped (unencoded) Rice partitions are not supported")
	errReservedResidual  = errors.New("flac: reserved residual coding method")
)
