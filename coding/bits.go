// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "github.com/erwanvivien/QR-Gen/gf256"

// Bits builds the QR data codeword stream: segment bits, terminator,
// padding and per-block checksums.
type Bits struct {
	b    []byte
	nbit int
}

// Bits returns the number of bits written to b.
func (b *Bits) Bits() int { return b.nbit }

// Bytes returns the bytes written to b.  b must be byte-aligned.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Write writes the low nbit bits of v to b, most significant first.
// nbit must be at most 32.
func (b *Bits) Write(v uint32, nbit int) {
	for nbit > 0 {
		if b.nbit%8 == 0 {
			b.b = append(b.b, 0)
		}
		free := 8 - b.nbit%8
		n := nbit
		if n > free {
			n = free
		}
		chunk := byte(v>>(nbit-n)) & (1<<n - 1)
		b.b[len(b.b)-1] |= chunk << (free - n)
		b.nbit += n
		nbit -= n
	}
}

// add appends n zero bytes to b and returns the added slice.
func (b *Bits) add(n int) []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	start := len(b.b)
	for i := 0; i < n; i++ {
		b.b = append(b.b, 0)
	}
	b.nbit = 8 * len(b.b)
	return b.b[start:]
}

// padTo appends the terminator, zero-pads to a byte boundary and
// fills with alternating pad codewords up to n bits.  n must be a
// multiple of 8 and not less than b.nbit.
func (b *Bits) padTo(n int) {
	// up to 4 terminator bits, space permitting
	if t := b.nbit + 4; t < n {
		b.nbit = t
	} else {
		b.nbit = n
	}
	for len(b.b)*8 < b.nbit {
		b.b = append(b.b, 0)
	}
	// zero bits up to the byte boundary, then pad codewords
	b.nbit = len(b.b) * 8
	for pad := byte(0xec); b.nbit < n; b.nbit += 8 {
		b.b = append(b.b, pad)
		pad ^= 0xec ^ 0x11
	}
}

// AddCheckBytes pads b to the version's data capacity and appends the
// checksum codewords of each error correction block.
func (b *Bits) AddCheckBytes(v Version, l Level) {
	nb := v.DataBits(l)
	if b.nbit > nb {
		panic("qr: too much data")
	}
	b.padTo(nb)

	dat := b.Bytes()
	lev := &vtab[v].level[l]
	nd := nb / 8
	// Shorter blocks come first; sizes differ by at most one.
	db := nd / lev.nblock
	normal := (db+1)*lev.nblock - nd
	rs := gf256.NewRSEncoder(Field, lev.check)
	for i := 0; i < lev.nblock; i++ {
		if i == normal {
			db++
		}
		rs.ECC(dat[:db], b.add(lev.check))
		dat = dat[db:]
	}

	if len(b.Bytes()) != vtab[v].bytes {
		panic("qr: internal error")
	}
}

// interleave interleaves nblock blocks from src to dst, which must be
// of equal length.  Blocks are laid out consecutively in src, shorter
// blocks first; dst receives the i-th byte of each block in turn.
func interleave(dst, src []byte, nblock int) {
	db := len(src) / nblock
	extra := dst[db*nblock:]
	dst = dst[:db*nblock]
	normal := nblock - len(extra)
	for i := 0; i < nblock; i++ {
		for j, v := range src[:db] {
			dst[j*nblock+i] = v
		}
		src = src[db:]
		if i >= normal {
			extra[i-normal] = src[0]
			src = src[1:]
		}
	}
}

// Permute returns a BitStream reading data and checksum codewords of
// b with blocks interleaved for the given version and level.
func (b *Bits) Permute(v Version, l Level) BitStream {
	src := b.Bytes()
	if len(src) != vtab[v].bytes {
		panic("qr: wrong data length")
	}
	if nblock := vtab[v].level[l].nblock; nblock != 1 {
		nd := v.DataBytes(l)
		dst := make([]byte, len(src))
		interleave(dst[:nd], src[:nd], nblock)
		interleave(dst[nd:], src[nd:], nblock)
		src = dst
	}
	return NewBitStream(src)
}

// BitStream reads bits from the underlying buffer.
type BitStream struct {
	b   []byte
	pos int
}

// NewBitStream returns a BitStream reading from b.
func NewBitStream(b []byte) BitStream { return BitStream{b: b} }

// Bytes returns the data underlying s.
func (s *BitStream) Bytes() []byte { return s.b }

// Len returns the total number of bits in s.
func (s *BitStream) Len() int { return len(s.b) * 8 }

// Next returns the next bit from s as 0 or 1.
// Past the end of the buffer Next returns 0.
func (s *BitStream) Next() byte {
	var b byte
	if i := s.pos >> 3; i < len(s.b) {
		b = s.b[i] >> (7 &^ s.pos) & 1
		s.pos++
	}
	return b
}
