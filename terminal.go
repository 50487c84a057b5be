// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import "strings"

// String returns the code as drawn by UTF8.
func (c *Code) String() string { return c.UTF8() }

// UTF8 returns a string displaying the code using Unicode half block
// characters, packing two QR pixel rows into each text line.  Black
// pixels are drawn in the foreground colour; Reverse swaps them with
// the background.
func (c *Code) UTF8() string {
	var b strings.Builder
	bord := c.Border
	for y := -bord; y < c.Size+bord; y += 2 {
		for x := -bord; x < c.Size+bord; x++ {
			top := c.Black(x, y) != c.Reverse
			bot := y+1 < c.Size+bord && c.Black(x, y+1) != c.Reverse
			switch {
			case top && bot:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bot:
				b.WriteRune('▄')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ASCII returns a string displaying the code using two characters per
// QR pixel.
func (c *Code) ASCII() string {
	var b strings.Builder
	bord := c.Border
	for y := -bord; y < c.Size+bord; y++ {
		for x := -bord; x < c.Size+bord; x++ {
			if c.Black(x, y) != c.Reverse {
				b.WriteString("##")
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
