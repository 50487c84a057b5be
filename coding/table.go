// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A version describes invariant metadata of a QR version: the total
// codeword count, alignment pattern geometry and per-level error
// correction block structure.  Tables from qrencode's qrspec.c.
type version struct {
	bytes   int // total data + checksum codewords
	apos    int // first alignment center after 6 (0: none)
	astride int // distance between alignment centers
	level   [4]level
}

type level struct {
	nblock int // error correction blocks
	check  int // checksum codewords per block
}

var vtab = [MaxVersion + 1]version{
	1:  {26, 0, 0, [4]level{{1, 7}, {1, 10}, {1, 13}, {1, 17}}},
	2:  {44, 18, 0, [4]level{{1, 10}, {1, 16}, {1, 22}, {1, 28}}},
	3:  {70, 22, 0, [4]level{{1, 15}, {1, 26}, {2, 18}, {2, 22}}},
	4:  {100, 26, 0, [4]level{{1, 20}, {2, 18}, {2, 26}, {4, 16}}},
	5:  {134, 30, 0, [4]level{{1, 26}, {2, 24}, {4, 18}, {4, 22}}},
	6:  {172, 34, 0, [4]level{{2, 18}, {4, 16}, {4, 24}, {4, 28}}},
	7:  {196, 22, 16, [4]level{{2, 20}, {4, 18}, {6, 18}, {5, 26}}},
	8:  {242, 24, 18, [4]level{{2, 24}, {4, 22}, {6, 22}, {6, 26}}},
	9:  {292, 26, 20, [4]level{{2, 30}, {5, 22}, {8, 20}, {8, 24}}},
	10: {346, 28, 22, [4]level{{4, 18}, {5, 26}, {8, 24}, {8, 28}}},
	11: {404, 30, 24, [4]level{{4, 20}, {5, 30}, {8, 28}, {11, 24}}},
	12: {466, 32, 26, [4]level{{4, 24}, {8, 22}, {10, 26}, {11, 28}}},
	13: {532, 34, 28, [4]level{{4, 26}, {9, 22}, {12, 24}, {16, 22}}},
	14: {581, 26, 20, [4]level{{4, 30}, {9, 24}, {16, 20}, {16, 24}}},
	15: {655, 26, 22, [4]level{{6, 22}, {10, 24}, {12, 30}, {18, 24}}},
	16: {733, 26, 24, [4]level{{6, 24}, {10, 28}, {17, 24}, {16, 30}}},
	17: {815, 30, 24, [4]level{{6, 28}, {11, 28}, {16, 28}, {19, 28}}},
	18: {901, 30, 26, [4]level{{6, 30}, {13, 26}, {18, 28}, {21, 28}}},
	19: {991, 30, 28, [4]level{{7, 28}, {14, 26}, {21, 26}, {25, 26}}},
	20: {1085, 34, 28, [4]level{{8, 28}, {16, 26}, {20, 30}, {25, 28}}},
	21: {1156, 28, 22, [4]level{{8, 28}, {17, 26}, {23, 28}, {25, 30}}},
	22: {1258, 26, 24, [4]level{{9, 28}, {17, 28}, {23, 30}, {34, 24}}},
	23: {1364, 30, 24, [4]level{{9, 30}, {18, 28}, {25, 30}, {30, 30}}},
	24: {1474, 28, 26, [4]level{{10, 30}, {20, 28}, {27, 30}, {32, 30}}},
	25: {1588, 32, 26, [4]level{{12, 26}, {21, 28}, {29, 30}, {35, 30}}},
	26: {1706, 30, 28, [4]level{{12, 28}, {23, 28}, {34, 28}, {37, 30}}},
	27: {1828, 34, 28, [4]level{{12, 30}, {25, 28}, {34, 30}, {40, 30}}},
	28: {1921, 26, 24, [4]level{{13, 30}, {26, 28}, {35, 30}, {42, 30}}},
	29: {2051, 30, 24, [4]level{{14, 30}, {28, 28}, {38, 30}, {45, 30}}},
	30: {2185, 26, 26, [4]level{{15, 30}, {29, 28}, {40, 30}, {48, 30}}},
	31: {2323, 30, 26, [4]level{{16, 30}, {31, 28}, {43, 30}, {51, 30}}},
	32: {2465, 34, 26, [4]level{{17, 30}, {33, 28}, {45, 30}, {54, 30}}},
	33: {2611, 30, 28, [4]level{{18, 30}, {35, 28}, {48, 30}, {57, 30}}},
	34: {2761, 34, 28, [4]level{{19, 30}, {37, 28}, {51, 30}, {60, 30}}},
	35: {2876, 30, 24, [4]level{{19, 30}, {38, 28}, {53, 30}, {63, 30}}},
	36: {3034, 24, 26, [4]level{{20, 30}, {40, 28}, {56, 30}, {66, 30}}},
	37: {3196, 28, 26, [4]level{{21, 30}, {43, 28}, {59, 30}, {70, 30}}},
	38: {3362, 32, 26, [4]level{{22, 30}, {45, 28}, {62, 30}, {74, 30}}},
	39: {3532, 26, 28, [4]level{{24, 30}, {47, 28}, {65, 30}, {77, 30}}},
	40: {3706, 30, 28, [4]level{{25, 30}, {49, 28}, {68, 30}, {81, 30}}},
}

// alignCenters returns the alignment pattern center coordinates for
// the version, in increasing order.  Version 1 has none.
func (v Version) alignCenters() []int {
	vt := &vtab[v]
	if vt.apos == 0 {
		return nil
	}
	c := []int{6, vt.apos}
	if vt.astride != 0 {
		siz := v.Size()
		for x := vt.apos + vt.astride; x <= siz-7; x += vt.astride {
			c = append(c, x)
		}
	}
	return c
}
