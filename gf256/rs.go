// Copyright 2010 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

// An RSEncoder implements Reed-Solomon encoding over a Field,
// producing a fixed number of error correction (check) bytes.
type RSEncoder struct {
	f    *Field
	c    int
	lgen []byte // logs of generator coefficients, sans leading 1
	buf  []byte // scratch for polynomial division
}

// NewRSEncoder returns an encoder producing c check bytes.
// c must be at least 1.
func NewRSEncoder(f *Field, c int) *RSEncoder {
	if c < 1 {
		panic("gf256: invalid check byte count")
	}
	return &RSEncoder{f: f, c: c, lgen: gen(f, c)}
}

// gen returns the log of each coefficient of the degree-c generator
// polynomial ∏(x - αⁱ) for i in [0,c), dropping the leading 1.
// Coefficients are ordered from highest degree to lowest.
func gen(f *Field, c int) []byte {
	p := make([]byte, c+1)
	p[c] = 1
	for i := 0; i < c; i++ {
		// multiply p by (x - αⁱ)
		w := f.Exp(i)
		for j := c - i - 1; j < c; j++ {
			p[j] = f.Mul(p[j], w) ^ p[j+1]
		}
		p[c] = f.Mul(p[c], w)
	}
	// check for duplicate roots (would mean a non-generator α)
	lp := make([]byte, c)
	for i, v := range p[1:] {
		if v == 0 {
			panic("gf256: bad generator polynomial")
		}
		lp[i] = byte(f.Log(v))
	}
	return lp
}

// ECC writes into check the error correction bytes for data.
// The caller chooses the number of check bytes by len(check),
// which must equal the count given to NewRSEncoder.
func (rs *RSEncoder) ECC(data []byte, check []byte) {
	if len(check) != rs.c {
		panic("gf256: invalid check byte length")
	}
	// Compute the remainder of data·x^c divided by the generator.
	n := len(data) + rs.c
	if cap(rs.buf) < n {
		rs.buf = make([]byte, n)
	}
	w := rs.buf[:n]
	copy(w, data)
	for i := len(data); i < n; i++ {
		w[i] = 0
	}
	f := rs.f
	for i := 0; i < len(data); i++ {
		v := w[i]
		if v == 0 {
			continue
		}
		lv := int(f.log[v])
		for j, lg := range rs.lgen {
			w[i+1+j] ^= f.exp[lv+int(lg)]
		}
	}
	copy(check, w[len(data):])
}
