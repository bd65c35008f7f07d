package aac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/audiocore/bitio"
)

func TestParseSectionDataSingleRun(t *testing.T) {
	ics := ICSInfo{WindowSequence: OnlyLongSequence, MaxSFB: 10, NumWindowGroups: 1}

	var bw bitWriter
	bw.writeBits(7, 4)  // codebook 7
	bw.writeBits(10, 5) // sect_len = 10, no escape (escape value is 31)
	data := bw.bytes()

	br := bitio.NewMSbReader(bitio.NewSliceStream(data))
	err := parseSectionData(br, &ics)
	require.NoError(t, err)
	for sfb := uint8(0); sfb < 10; sfb++ {
		assert.Equal(t, uint8(7), ics.SectCB[0][sfb])
	}
}

func TestParseSectionDataEscapedLength(t *testing.T) {
	ics := ICSInfo{WindowSequence: OnlyLongSequence, MaxSFB: 40, NumWindowGroups: 1}

	var bw bitWriter
	bw.writeBits(2, 4)  // codebook 2
	bw.writeBits(31, 5) // escape: sect_len so far 31
	bw.writeBits(9, 5)  // +9, total 40, terminates (not escape value)
	data := bw.bytes()

	br := bitio.NewMSbReader(bitio.NewSliceStream(data))
	err := parseSectionData(br, &ics)
	require.NoError(t, err)
	for sfb := uint8(0); sfb < 40; sfb++ {
		assert.Equal(t, uint8(2), ics.SectCB[0][sfb])
	}
}

func TestParseSectionDataRejectsReservedCodebook(t *testing.T) {
	ics := ICSInfo{WindowSequence: OnlyLongSequence, MaxSFB: 10, NumWindowGroups: 1}
	var bw bitWriter
	bw.writeBits(12, 4) // reserved codebook
	data := bw.bytes()

	br := bitio.NewMSbReader(bitio.NewSliceStream(data))
	err := parseSectionData(br, &ics)
	assert.ErrorIs(t, err, errReservedCodebook)
}

func TestParseSectionDataRejectsOverflow(t *testing.T) {
	ics := ICSInfo{WindowSequence: OnlyLongSequence, MaxSFB: 10, NumWindowGroups: 1}
	var bw bitWriter
	bw.writeBits(1, 4)  // codebook 1
	bw.writeBits(20, 5) // sect_len 20 > max_sfb 10
	data := bw.bytes()

	br := bitio.NewMSbReader(bitio.NewSliceStream(data))
	err := parseSectionData(br, &ics)
	assert.ErrorIs(t, err, errSectionOverflow)
}
