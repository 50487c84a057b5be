// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying the code to w,
// for use with netpbm.
func (c *Code) EncodePBM(w io.Writer) error {
	if !c.isValid() {
		return ErrArgs
	}
	b := bufio.NewWriter(w)
	length := c.Scale * (c.Size + c.Border*2)
	ls := strconv.Itoa(length)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	row := make([]byte, (length+7)/8)
	for my := -c.Border; my < c.Size+c.Border; my++ {
		for i := range row {
			row[i] = 0
		}
		for mx := -c.Border; mx < c.Size+c.Border; mx++ {
			if c.Black(mx, my) == c.Reverse {
				continue
			}
			px := (mx + c.Border) * c.Scale
			for i := px; i < px+c.Scale; i++ {
				row[i>>3] |= 0x80 >> (i & 7)
			}
		}
		for i := 0; i < c.Scale; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	return b.Flush()
}
