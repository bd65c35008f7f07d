package mp3

import "github.com/llehouerou/audiocore/bitio"

// huffPair is one decoded (x, y) big_values pair before sign bits and
// escape (linbits) extension are applied.
type huffPair struct {
	x, y int32
}

// huffTable describes one of MP3's big_values Huffman tables: its
// prebuilt 2-level jump table codebook (built on the generic
// bitio.Codebook machinery) plus the number of escape
// bits appended to a decoded value equal to the table's maximum magnitude.
type huffTable struct {
	cb      *bitio.Codebook
	values  []huffPair
	linbits uint
	width   int // 0 means "no values in this table" (table 0)
}

var huffTables map[int]*huffTable

func init() {
	huffTables = buildBigValueTables()
	huffTables[0] = &huffTable{width: 0}
}

func buildHuffTable(codes []uint32, lens []uint8, pairs []huffPair, linbits uint) *huffTable {
	values := make([]int32, len(pairs))
	for i := range values {
		values[i] = int32(i)
	}
	cb, err := bitio.BuildCodebook(codes, lens, values, false)
	if err != nil {
		panic("mp3: invalid built-in huffman table: " + err.Error())
	}
	return &huffTable{cb: cb, values: pairs, linbits: linbits, width: len(pairs)}
}

// decodeBigValuePair decodes one (x, y) pair from a big_values Huffman
// table, including sign bits and any linbits escape extension.
func decodeBigValuePair(br bitio.BitReader, tableNum int) (x, y int32, err error) {
	// Tables 4 and 14 are reserved selectors that the standard still
	// requires to decode successfully, contributing no bits and the value
	// pair (0, 0), the same behavior as table 0.
	if tableNum == 0 || tableNum == 4 || tableNum == 14 {
		return 0, 0, nil
	}
	t, ok := huffTables[tableNum]
	if !ok || t.width == 0 {
		return 0, 0, errHuffmanTable
	}

	idx, _, err := bitio.ReadCodebook(br, t.cb)
	if err != nil {
		return 0, 0, err
	}
	pair := t.values[idx]
	x, y = pair.x, pair.y

	if x != 0 {
		if t.linbits > 0 && int(x) == maxPairValue(t.values, true) {
			ext, err := br.ReadBitsLeq32(t.linbits)
			if err != nil {
				return 0, 0, err
			}
			x += int32(ext)
		}
		sign, err := br.ReadBit()
		if err != nil {
			return 0, 0, err
		}
		if sign != 0 {
			x = -x
		}
	}
	if y != 0 {
		if t.linbits > 0 && int(y) == maxPairValue(t.values, false) {
			ext, err := br.ReadBitsLeq32(t.linbits)
			if err != nil {
				return 0, 0, err
			}
			y += int32(ext)
		}
		sign, err := br.ReadBit()
		if err != nil {
			return 0, 0, err
		}
		if sign != 0 {
			y = -y
		}
	}
	return x, y, nil
}

func maxPairValue(pairs []huffPair, wantX bool) int {
	m := 0
	for _, p := range pairs {
		v := int(p.y)
		if wantX {
			v = int(p.x)
		}
		if v > m {
			m = v
		}
	}
	return m
}

// count1Quad is one decoded (v, w, x, y) sign-only quadruple from a count1
// table; each component is 0 or 1 before its sign bit is applied.
type count1Quad struct{ v, w, x, y int8 }

var count1TableA, count1TableB *bitio.Codebook
var count1ValuesA, count1ValuesB []count1Quad

func init() {
	count1TableA, count1ValuesA = buildCount1Table(count1ACodes, count1ALens, count1AQuads)
	count1TableB, count1ValuesB = buildCount1Table(count1BCodes, count1BLens, count1BQuads)
}

func buildCount1Table(codes []uint32, lens []uint8, quads []count1Quad) (*bitio.Codebook, []count1Quad) {
	values := make([]int32, len(quads))
	for i := range values {
		values[i] = int32(i)
	}
	cb, err := bitio.BuildCodebook(codes, lens, values, false)
	if err != nil {
		panic("mp3: invalid built-in count1 table: " + err.Error())
	}
	return cb, quads
}

// decodeCount1Quad decodes one quadruple of near-zero spectral values plus
// their sign bits.
func decodeCount1Quad(br bitio.BitReader, tableSel int) (v, w, x, y int32, err error) {
	cb, values := count1TableA, count1ValuesA
	if tableSel == 1 {
		cb, values = count1TableB, count1ValuesB
	}
	idx, _, err := bitio.ReadCodebook(br, cb)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	q := values[idx]
	v, w, x, y = int32(q.v), int32(q.w), int32(q.x), int32(q.y)
	for _, p := range []*int32{&v, &w, &x, &y} {
		if *p != 0 {
			sign, err := br.ReadBit()
			if err != nil {
				return 0, 0, 0, 0, err
			}
			if sign != 0 {
				*p = -*p
			}
		}
	}
	return v, w, x, y, nil
}
