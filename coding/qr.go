// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details.
package coding // import "github.com/erwanvivien/QR-Gen/coding"

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/erwanvivien/QR-Gen/gf256"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Version represents a QR version.  The version specifies the size
// of the QR code: a code with version v has 4v+17 modules on a side.
// The larger the version, the more information the code can store.
type Version int

const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

// QR version size classes, determining character count field widths.
const (
	Class0 = iota // versions 1 to 9
	Class1        // versions 10 to 26
	Class2        // versions 27 to 40
)

// SizeClass returns the size class of v.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	return Class2
}

// Size returns the number of modules on a side of a QR code with the
// given version.
func (v Version) Size() int { return int(v)*4 + 17 }

// TotalBytes returns the number of data and checksum codewords in a
// QR code with the given version.
func (v Version) TotalBytes() int { return vtab[v].bytes }

// DataBytes returns the number of data codewords that can be stored
// in a QR code with the given version and level.
func (v Version) DataBytes(l Level) int {
	vt := &vtab[v]
	lev := vt.level[l]
	return vt.bytes - lev.nblock*lev.check
}

// DataBits returns the number of data bits that can be stored in a QR
// code with the given version and level.
func (v Version) DataBits(l Level) int { return v.DataBytes(l) * 8 }

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota
	M
	Q
	H
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// A Code is a square module grid.
type Code struct {
	Bitmap []byte // 1 is dark, 0 is light
	Size   int    // number of modules on a side
	Stride int    // number of bytes per row

	Version Version // QR version
	Level   Level   // error correction level
	Mask    int     // chosen mask pattern, 0-7
}

// Black reports whether the module at (x, y) is dark.
// Modules outside the code are light.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x>>3]&(0x80>>(x&7)) != 0
}

// Encoder encodes a QR code at a fixed version and level.
type Encoder struct {
	p *Plan
	b *Bits
}

// NewEncoder returns an Encoder for the given version and level.
func NewEncoder(version Version, level Level) (*Encoder, error) {
	p, err := getPlan(version, level)
	if err != nil {
		return nil, err
	}
	return &Encoder{p: p, b: &Bits{}}, nil
}

// Write adds segments to e.
func (e *Encoder) Write(text ...Segment) error {
	class := e.p.Version.SizeClass()
	for _, t := range text {
		if err := t.Encode(e.b, class); err != nil {
			return err
		}
	}
	return nil
}

// Reset discards data written to e, keeping the version and level.
func (e *Encoder) Reset() { *e.b = Bits{} }

// xor xors a and b into dst.  a and b may not be shorter than dst.
func xor(dst, a, b []byte) {
	a = a[:len(dst)]
	b = b[:len(dst)]
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// Code returns a QR code containing the data written to e.
func (e *Encoder) Code() (*Code, error) {
	p := e.p
	if e.b.Bits() > p.DataBits {
		return nil, fmt.Errorf("qr: cannot encode %d bits into %d-bit code",
			e.b.Bits(), p.DataBits)
	}
	e.b.AddCheckBytes(p.Version, p.Level)
	bits := e.b.Permute(p.Version, p.Level)

	// Lay out the interleaved codeword bits.  The data layer is
	// mask-independent; masks and format bits live in p.Pattern.
	data := make([]byte, p.Size*p.Stride)
	p.Place(bits, data)

	mask, bitmap := chooseMask(p, data)
	return &Code{
		Bitmap:  bitmap,
		Size:    p.Size,
		Stride:  p.Stride,
		Version: p.Version,
		Level:   p.Level,
		Mask:    mask,
	}, nil
}

// chooseMask scores the eight mask candidates and returns the index
// and bitmap of the one with the lowest penalty.  The candidates are
// independent and evaluated in parallel; ties are broken by the
// lowest mask index.
func chooseMask(p *Plan, data []byte) (int, []byte) {
	var (
		cand [8][]byte
		pen  [8]int
		wg   sync.WaitGroup
	)
	for m := range p.Pattern {
		wg.Add(1)
		go func(m int) {
			defer wg.Done()
			b := make([]byte, len(data))
			xor(b, data, p.Pattern[m])
			cand[m] = b
			pen[m] = (&Code{Bitmap: b, Size: p.Size, Stride: p.Stride}).Penalty()
		}(m)
	}
	wg.Wait()
	mask := 0
	for m := 1; m < len(pen); m++ {
		if pen[m] < pen[mask] {
			mask = m
		}
	}
	return mask, cand[mask]
}

// Encode is a wrapper around Write and Code.
func (e *Encoder) Encode(text ...Segment) (*Code, error) {
	if err := e.Write(text...); err != nil {
		return nil, err
	}
	return e.Code()
}

// Encode encodes text using an Encoder with the given version and level.
func Encode(version Version, level Level, text ...Segment) (*Code, error) {
	e, err := NewEncoder(version, level)
	if err != nil {
		return nil, err
	}
	return e.Encode(text...)
}
