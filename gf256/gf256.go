// Copyright 2010 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois field GF(256)
// and Reed-Solomon error correction over it.
package gf256

// A Field represents an instance of GF(256) defined by a generator
// polynomial.  The zero Field is not usable: use NewField.
type Field struct {
	log [256]byte // log[0] is unused
	exp [510]byte
}

// NewField returns the field defined by the given irreducible
// polynomial and generator element α.  The polynomial is given in
// binary representation with an implicit x⁸ term, so the QR code
// polynomial x⁸+x⁴+x³+x²+1 is 0x11d.  NewField panics if poly is
// reducible or α is not a generator of the multiplicative group.
func NewField(poly, α int) *Field {
	if poly>>8 != 1 {
		panic("gf256: invalid polynomial")
	}
	var f Field
	x := 1
	for i := 0; i < 255; i++ {
		if x == 1 && i != 0 {
			panic("gf256: non-generator α")
		}
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = byte(i)
		x = mul(x, α, poly)
	}
	if x != 1 {
		panic("gf256: reducible polynomial")
	}
	f.log[0] = 255
	return &f
}

// mul multiplies a and b modulo poly, bit by bit.  Used only while
// building the tables; table lookups serve all later arithmetic.
func mul(a, b, poly int) int {
	z := 0
	for a > 0 {
		if a&1 != 0 {
			z ^= b
		}
		a >>= 1
		b <<= 1
		if b&0x100 != 0 {
			b ^= poly
		}
	}
	return z
}

// Add returns the sum of x and y in the field, which is their xor.
func (f *Field) Add(x, y byte) byte { return x ^ y }

// Exp returns αᵉ.
func (f *Field) Exp(e int) byte {
	if e < 0 {
		panic("gf256: negative exponent")
	}
	return f.exp[e%255]
}

// Log returns log base α of x.  Log panics if x is 0.
func (f *Field) Log(x byte) int {
	if x == 0 {
		panic("gf256: log of zero")
	}
	return int(f.log[x])
}

// Mul returns the product of x and y.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+int(f.log[y])]
}

// Div returns the quotient of x and y.  Div panics if y is 0.
func (f *Field) Div(x, y byte) byte {
	if y == 0 {
		panic("gf256: division by zero")
	}
	if x == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+255-int(f.log[y])]
}

// Inv returns the multiplicative inverse of x.  Inv panics if x is 0.
func (f *Field) Inv(x byte) byte {
	if x == 0 {
		panic("gf256: division by zero")
	}
	return f.exp[255-int(f.log[x])]
}

// Pow returns xᵉ.
func (f *Field) Pow(x byte, e int) byte {
	if x == 0 {
		if e == 0 {
			return 1
		}
		return 0
	}
	return f.exp[int(f.log[x])*e%255]
}
