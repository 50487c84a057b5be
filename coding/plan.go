// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "sync"

// A Plan describes how to construct a QR code with a specific
// version and level.
//
// Map marks every function pattern and reserved module; the cells
// left clear carry codeword bits.  Pattern holds, for each mask, the
// function patterns, the format (and version) information for that
// mask and the mask itself over the data cells.  A finished code is
// the placed data layer xored with one Pattern layer, so mask
// candidates never share mutable state.
type Plan struct {
	Version Version // QR code version
	Level   Level   // QR error correction level

	DataBits int // number of data bits
	Size     int // number of modules on a side
	Stride   int // number of bytes per bitmap row

	Map     []byte    // 1 is function pattern or reserved, 0 is data
	Pattern [8][]byte // function patterns, format info and mask, per mask
}

// Pre-allocated Plans.  A Plan is created the first time a
// combination of version and level is used and reused thereafter,
// read-only.
var plans [MaxVersion + 1][H + 1]struct {
	once sync.Once
	p    *Plan
}

// getPlan returns the cached Plan for the version and level,
// creating it on first use.
func getPlan(version Version, level Level) (*Plan, error) {
	if version < MinVersion || version > MaxVersion {
		return nil, ErrVersion
	}
	if level < L || level > H {
		return nil, ErrLevel
	}
	p := &plans[version][level]
	p.once.Do(func() { p.p = newPlan(version, level) })
	return p.p, nil
}

// NewPlan returns a new Plan for a QR code with the given version and
// level.  Most callers should use Encode, which caches plans.
func NewPlan(version Version, level Level) (*Plan, error) {
	if version < MinVersion || version > MaxVersion {
		return nil, ErrVersion
	}
	if level < L || level > H {
		return nil, ErrLevel
	}
	return newPlan(version, level), nil
}

// A grid is a packed one-bit-per-module view of a bitmap.
type grid struct {
	b      []byte
	stride int
}

func (g grid) set(x, y int) { g.b[y*g.stride+x>>3] |= 0x80 >> (x & 7) }

func (g grid) bit(x, y int) bool {
	return g.b[y*g.stride+x>>3]&(0x80>>(x&7)) != 0
}

// setRect sets the w×h rectangle at (x, y).
func (g grid) setRect(x, y, w, h int) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			g.set(xx, yy)
		}
	}
}

// newPlan builds the Plan: function patterns and the reserved map,
// then format information and mask for each of the eight masks.
func newPlan(version Version, level Level) *Plan {
	siz := version.Size()
	stride := (siz + 7) / 8
	p := &Plan{
		Version:  version,
		Level:    level,
		DataBits: version.DataBits(level),
		Size:     siz,
		Stride:   stride,
		Map:      make([]byte, siz*stride),
	}
	m := grid{p.Map, stride}
	base := grid{make([]byte, siz*stride), stride}

	// Finder patterns with separators, and the reserved format
	// strips alongside them.
	finder(base, 0, 0)
	finder(base, siz-7, 0)
	finder(base, 0, siz-7)
	m.setRect(0, 0, 9, 9)
	m.setRect(siz-8, 0, 8, 9)
	m.setRect(0, siz-8, 9, 8)

	// Timing patterns along row and column 6.
	for i := 8; i < siz-8; i++ {
		m.set(i, 6)
		m.set(6, i)
		if i%2 == 0 {
			base.set(i, 6)
			base.set(6, i)
		}
	}

	// Alignment patterns.  Centers overlapping the finder corners
	// are skipped.
	ac := version.alignCenters()
	for _, cy := range ac {
		for _, cx := range ac {
			if cy == 6 && (cx == 6 || cx == siz-7) ||
				cx == 6 && cy == siz-7 {
				continue
			}
			align(base, m, cx, cy)
		}
	}

	// Version information, both copies.
	if version >= 7 {
		vb := versionBits(version)
		for i := 0; i < 18; i++ {
			x, y := siz-11+i%3, i/3
			m.set(x, y)
			m.set(y, x)
			if vb>>i&1 != 0 {
				base.set(x, y)
				base.set(y, x)
			}
		}
	}

	// Dark module.
	base.set(8, siz-8)

	for mask := range p.Pattern {
		pat := grid{make([]byte, siz*stride), stride}
		copy(pat.b, base.b)
		formatInfo(pat, siz, formatBits(level, mask))
		maskPattern(pat, m, siz, mask)
		p.Pattern[mask] = pat.b
	}
	return p
}

// finder draws a finder pattern with its top left corner at (x, y).
// The light separator is implicit: separator cells stay clear and are
// reserved by the caller.
func finder(g grid, x, y int) {
	g.setRect(x, y, 7, 1)
	g.setRect(x, y+6, 7, 1)
	g.setRect(x, y+1, 1, 5)
	g.setRect(x+6, y+1, 1, 5)
	g.setRect(x+2, y+2, 3, 3)
}

// align draws an alignment pattern centered at (x, y).
func align(g, m grid, x, y int) {
	m.setRect(x-2, y-2, 5, 5)
	g.setRect(x-2, y-2, 5, 1)
	g.setRect(x-2, y+2, 5, 1)
	g.setRect(x-2, y-1, 1, 3)
	g.setRect(x+2, y-1, 1, 3)
	g.set(x, y)
}

// formatBits returns the 15 masked format information bits for the
// level and mask: 5 data bits followed by 10 BCH check bits, xored
// with the fixed mask 0x5412.
func formatBits(l Level, mask int) uint32 {
	d := uint32(l^1)<<3 | uint32(mask) // L=01, M=00, Q=11, H=10
	rem := d << 10
	for i := 4; i >= 0; i-- {
		if rem&(1<<(10+i)) != 0 {
			rem ^= 0x537 << i
		}
	}
	return (d<<10 | rem) ^ 0x5412
}

// versionBits returns the 18 version information bits: 6 data bits
// followed by 12 BCH check bits.
func versionBits(v Version) uint32 {
	rem := uint32(v)
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ rem>>11*0x1f25
	}
	return uint32(v)<<12 | rem
}

// formatInfo writes the format bits into both reserved locations.
func formatInfo(g grid, siz int, fb uint32) {
	set := func(x, y int, i int) {
		if fb>>i&1 != 0 {
			g.set(x, y)
		}
	}
	// around the top left finder
	for i := 0; i <= 5; i++ {
		set(8, i, i)
	}
	set(8, 7, 6)
	set(8, 8, 7)
	set(7, 8, 8)
	for i := 9; i <= 14; i++ {
		set(14-i, 8, i)
	}
	// below the top right and right of the bottom left finder
	for i := 0; i <= 7; i++ {
		set(siz-1-i, 8, i)
	}
	for i := 8; i <= 14; i++ {
		set(8, siz-15+i, i)
	}
}

// mask formulas from the standard; x is the column and y the row.
var maskCond = [8]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (x/3+y/2)%2 == 0 },
	func(x, y int) bool { return x*y%2+x*y%3 == 0 },
	func(x, y int) bool { return (x*y%2+x*y%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+x*y%3)%2 == 0 },
}

// maskPattern sets the mask over the data cells of g, leaving
// function pattern and reserved cells untouched.
func maskPattern(g, m grid, siz, mask int) {
	cond := maskCond[mask]
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			if !m.bit(x, y) && cond(x, y) {
				g.set(x, y)
			}
		}
	}
}

// Place writes the codeword bits from s into bitmap in the standard
// zigzag scan order: two-module columns from the right edge snaking
// up then down, skipping reserved cells and the vertical timing
// column.  Placement stops when s is exhausted; any spare data cells
// (remainder bits) stay light.
func (p *Plan) Place(s BitStream, bitmap []byte) {
	m := grid{p.Map, p.Stride}
	g := grid{bitmap, p.Stride}
	siz := p.Size
	placed, total := 0, s.Len()
	for right := siz - 1; right >= 1 && placed < total; right -= 2 {
		if right == 6 { // vertical timing column
			right = 5
		}
		upward := (right+1)&2 == 0
		for i := 0; i < siz; i++ {
			y := i
			if upward {
				y = siz - 1 - i
			}
			for x := right; x > right-2; x-- {
				if m.bit(x, y) {
					continue
				}
				if placed == total {
					return
				}
				if s.Next() != 0 {
					g.set(x, y)
				}
				placed++
			}
		}
	}
}
