// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Penalty scores the code against the four mask evaluation rules.
// Lower is better.
func (c *Code) Penalty() int {
	return c.penaltyRuns() + c.penaltyBoxes() +
		c.penaltyFinders() + c.penaltyBalance()
}

// penaltyRuns scores runs of five or more same-colored modules in a
// row or column: a run of length n costs n-2.
func (c *Code) penaltyRuns() int {
	n := 0
	for i := 0; i < c.Size; i++ {
		hrun, vrun := 1, 1
		for j := 1; j < c.Size; j++ {
			if c.Black(j, i) == c.Black(j-1, i) {
				hrun++
			} else {
				if hrun >= 5 {
					n += hrun - 2
				}
				hrun = 1
			}
			if c.Black(i, j) == c.Black(i, j-1) {
				vrun++
			} else {
				if vrun >= 5 {
					n += vrun - 2
				}
				vrun = 1
			}
		}
		if hrun >= 5 {
			n += hrun - 2
		}
		if vrun >= 5 {
			n += vrun - 2
		}
	}
	return n
}

// penaltyBoxes scores 2x2 blocks of same-colored modules, 3 points
// each.  Overlapping blocks count separately.
func (c *Code) penaltyBoxes() int {
	n := 0
	for y := 0; y < c.Size-1; y++ {
		for x := 0; x < c.Size-1; x++ {
			b := c.Black(x, y)
			if c.Black(x+1, y) == b && c.Black(x, y+1) == b &&
				c.Black(x+1, y+1) == b {
				n += 3
			}
		}
	}
	return n
}

// finder-like 1:1:3:1:1 patterns with 4 light modules on either side
const (
	finderSeq    = 0x05d // 00001011101
	finderSeqRev = 0x5d0 // 10111010000
)

// penaltyFinders scores occurrences of a finder-like pattern in a row
// or column, 40 points each, by sliding an 11-bit window along each
// line.
func (c *Code) penaltyFinders() int {
	n := 0
	for i := 0; i < c.Size; i++ {
		hbits, vbits := 0, 0
		for j := 0; j < c.Size; j++ {
			hbits = hbits << 1 & 0x7ff
			if c.Black(j, i) {
				hbits |= 1
			}
			vbits = vbits << 1 & 0x7ff
			if c.Black(i, j) {
				vbits |= 1
			}
			if j >= 10 {
				if hbits == finderSeq || hbits == finderSeqRev {
					n += 40
				}
				if vbits == finderSeq || vbits == finderSeqRev {
					n += 40
				}
			}
		}
	}
	return n
}

// penaltyBalance scores the deviation of the dark module proportion
// from 50%: 10 points for each 5% step away from it.
func (c *Code) penaltyBalance() int {
	dark, total := 0, c.Size*c.Size
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			if c.Black(x, y) {
				dark++
			}
		}
	}
	d := dark*20 - total*10
	if d < 0 {
		d = -d
	}
	k := (d+total-1)/total - 1
	if k < 0 {
		k = 0
	}
	return 10 * k
}
