package mp3

import "github.com/llehouerou/audiocore/bitio"

// SideInfo is the per-frame, per-granule, per-channel side information
// block that precedes the main data (spec §2 side information), grounded
// on the field layout used by every MPEG Layer III decoder.
type SideInfo struct {
	MainDataBegin int
	PrivateBits   int
	Scfsi         [2][4]int // MPEG-1 only

	Part2And3Length  [2][2]int
	BigValues        [2][2]int
	GlobalGain       [2][2]int
	ScalefacCompress [2][2]int
	WinSwitchFlag    [2][2]int
	BlockType        [2][2]int
	MixedBlockFlag   [2][2]int
	TableSelect      [2][2][3]int
	SubblockGain     [2][2][3]int
	Region0Count     [2][2]int
	Region1Count     [2][2]int
	Preflag          [2][2]int
	ScalefacScale    [2][2]int
	Count1TableSel   [2][2]int
}

// sideInfoBitsToRead indexes [mpeg2][main_data_begin, private_bits_mono,
// private_bits_stereo, scalefac_compress].
var sideInfoBitsToRead = [2][4]int{
	{9, 5, 3, 4}, // MPEG-1
	{8, 1, 2, 9}, // MPEG-2/2.5
}

// ParseSideInfo reads the side information block following an MP3 header.
func ParseSideInfo(br bitio.BitReader, hdr Header) (SideInfo, error) {
	row := 0
	if !hdr.IsMPEG1() {
		row = 1
	}
	bitsToRead := sideInfoBitsToRead[row]
	nch := hdr.NumberOfChannels()

	var si SideInfo
	v, err := br.ReadBitsLeq32(uint(bitsToRead[0]))
	if err != nil {
		return SideInfo{}, err
	}
	si.MainDataBegin = int(v)

	if hdr.Mode == ModeSingleChannel {
		v, err = br.ReadBitsLeq32(uint(bitsToRead[1]))
	} else {
		v, err = br.ReadBitsLeq32(uint(bitsToRead[2]))
	}
	if err != nil {
		return SideInfo{}, err
	}
	si.PrivateBits = int(v)

	if hdr.IsMPEG1() {
		for ch := 0; ch < nch; ch++ {
			for band := 0; band < 4; band++ {
				v, err := br.ReadBitsLeq32(1)
				if err != nil {
					return SideInfo{}, err
				}
				si.Scfsi[ch][band] = int(v)
			}
		}
	}

	for gr := 0; gr < hdr.Granules(); gr++ {
		for ch := 0; ch < nch; ch++ {
			read := func(n uint) (int, error) {
				v, err := br.ReadBitsLeq32(n)
				return int(v), err
			}
			var err error
			if si.Part2And3Length[gr][ch], err = read(12); err != nil {
				return SideInfo{}, err
			}
			if si.BigValues[gr][ch], err = read(9); err != nil {
				return SideInfo{}, err
			}
			if si.GlobalGain[gr][ch], err = read(8); err != nil {
				return SideInfo{}, err
			}
			if si.ScalefacCompress[gr][ch], err = read(uint(bitsToRead[3])); err != nil {
				return SideInfo{}, err
			}
			if si.WinSwitchFlag[gr][ch], err = read(1); err != nil {
				return SideInfo{}, err
			}

			if si.WinSwitchFlag[gr][ch] == 1 {
				if si.BlockType[gr][ch], err = read(2); err != nil {
					return SideInfo{}, err
				}
				if si.MixedBlockFlag[gr][ch], err = read(1); err != nil {
					return SideInfo{}, err
				}
				for region := 0; region < 2; region++ {
					if si.TableSelect[gr][ch][region], err = read(5); err != nil {
						return SideInfo{}, err
					}
				}
				for win := 0; win < 3; win++ {
					if si.SubblockGain[gr][ch][win], err = read(3); err != nil {
						return SideInfo{}, err
					}
				}
				if si.BlockType[gr][ch] == 2 && si.MixedBlockFlag[gr][ch] == 0 {
					si.Region0Count[gr][ch] = 8
				} else {
					si.Region0Count[gr][ch] = 7
				}
				si.Region1Count[gr][ch] = 20 - si.Region0Count[gr][ch]
			} else {
				for region := 0; region < 3; region++ {
					if si.TableSelect[gr][ch][region], err = read(5); err != nil {
						return SideInfo{}, err
					}
				}
				if si.Region0Count[gr][ch], err = read(4); err != nil {
					return SideInfo{}, err
				}
				if si.Region1Count[gr][ch], err = read(3); err != nil {
					return SideInfo{}, err
				}
				si.BlockType[gr][ch] = 0
			}

			if hdr.IsMPEG1() {
				if si.Preflag[gr][ch], err = read(1); err != nil {
					return SideInfo{}, err
				}
			}
			if si.ScalefacScale[gr][ch], err = read(1); err != nil {
				return SideInfo{}, err
			}
			if si.Count1TableSel[gr][ch], err = read(1); err != nil {
				return SideInfo{}, err
			}
		}
	}
	return si, nil
}
