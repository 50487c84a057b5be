// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// code builds a Code from rows of '1' and '0' characters.
func code(rows []string) *Code {
	siz := len(rows)
	stride := (siz + 7) / 8
	c := &Code{
		Bitmap: make([]byte, siz*stride),
		Size:   siz,
		Stride: stride,
	}
	g := grid{c.Bitmap, stride}
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == '1' {
				g.set(x, y)
			}
		}
	}
	return c
}

func TestPenaltyRuns(t *testing.T) {
	c := code([]string{
		"111110",
		"000000",
		"010101",
		"101010",
		"010101",
		"101010",
	})
	// row 0: run of 5 dark; row 1: run of 6 light; no column runs
	assert.Equal(t, 3+4, c.penaltyRuns())
}

func TestPenaltyBoxes(t *testing.T) {
	c := code([]string{
		"110101",
		"110101",
		"010101",
		"101010",
		"010101",
		"101010",
	})
	// a single dark 2x2 block
	assert.Equal(t, 3, c.penaltyBoxes())

	// overlapping blocks count separately: 2x3 darks hold two
	c = code([]string{
		"111010",
		"111001",
		"010110",
		"101001",
		"010110",
		"101001",
	})
	assert.Equal(t, 6, c.penaltyBoxes())
}

func TestPenaltyFinders(t *testing.T) {
	c := code([]string{
		"00001011101",
		"01010101010",
		"10101010101",
		"01010101010",
		"10101010101",
		"01010101010",
		"10101010101",
		"01010101010",
		"10101010101",
		"01010101010",
		"10101010101",
	})
	assert.Equal(t, 40, c.penaltyFinders())

	c = code([]string{
		"10111010000",
		"01010101010",
		"10101010101",
		"01010101010",
		"10101010101",
		"01010101010",
		"10101010101",
		"01010101010",
		"10101010101",
		"01010101010",
		"10101010101",
	})
	assert.Equal(t, 40, c.penaltyFinders())
}

func TestPenaltyBalance(t *testing.T) {
	all := code([]string{
		"000000",
		"000000",
		"000000",
		"000000",
		"000000",
		"000000",
	})
	assert.Equal(t, 90, all.penaltyBalance())

	half := code([]string{
		"101010",
		"010101",
		"101010",
		"010101",
		"101010",
		"010101",
	})
	assert.Equal(t, 0, half.penaltyBalance())
}
