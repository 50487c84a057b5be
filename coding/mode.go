// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// Encoding modes.
const (
	Numeric       Mode = iota // numeric mode, ASCII-compatible text
	Alphanumeric              // alphanumeric mode, ASCII-compatible text
	Byte                      // byte mode, any data
	Kanji                     // kanji mode, UTF-8 text
	Latin1                    // byte mode, UTF-8 text encoded as ISO 8859-1
	ShiftJISKanji             // kanji mode, Shift JIS text

	numModes
)

// A Mode is a QR segment encoding mode.
type Mode int

// modeEncoder implements a QR segment encoding.
//
// A segment is validated using valid, or cutRune and accepts.  Text
// modes whose input needs re-encoding (Kanji, Latin1) have transform
// set, returning a segment of a directly encodable mode.  enc3, enc2
// and enc1 return the packed encoding of 3, 2 or 1 source bytes and
// its length in bits; the encoder calls each non-nil encN repeatedly
// while N source bytes remain, in descending order of N.  If all are
// nil, each byte is encoded as 8 bits.
type modeEncoder struct {
	name       string
	indicator  byte                        // 4 bit mode indicator
	countLen   [3]byte                     // count field width per size class
	encodedLen func(bytes, runes int) int  // data bits; nil: 8 per byte
	accepts    func(rune) bool             // nil: any rune
	cutRune    func(string) (rune, int)    // nil: utf8.DecodeRuneInString
	transform  func(string) (Segment, bool)
	count      func(string) int // character count; nil: bytes
	enc3       func([3]byte) (uint32, int)
	enc2       func([2]byte) (uint32, int)
	enc1       func(byte) (uint32, int)
}

// alnum is the alphanumeric mode character set, in value order.
const alnum = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

func isDigit(r rune) bool { return uint32(r-'0') < 10 }

func isAlnum(r rune) bool {
	return uint32(r) < 0x80 && strings.IndexByte(alnum, byte(r)) >= 0
}

func alnumVal(b byte) uint32 {
	return uint32(strings.IndexByte(alnum, b))
}

// sjisPair reports whether hi, lo form a valid Shift JIS multibyte
// character within the QR kanji subset (up to 0xeb 0xbf).
func sjisPair(hi, lo byte) bool {
	return (hi-0x81 < 0x1f || hi-0xe0 < 0x1d) &&
		(lo-0x40 < 0x3f || lo-0x80 < 0x7d) &&
		uint16(hi)<<8|uint16(lo) <= 0xebbf
}

// IsKanji reports whether the Unicode rune r is encodable in QR kanji
// mode, that is, whether it maps to a JIS X 0208 character up to
// ku-ten 86-33.
func IsKanji(r rune) bool {
	if r < 0x100 {
		return false
	}
	s, err := japanese.ShiftJIS.NewEncoder().String(string(r))
	return err == nil && len(s) == 2 && sjisPair(s[0], s[1])
}

var modes = [numModes]modeEncoder{
	Numeric: {
		name:       "numeric",
		indicator:  1,
		countLen:   [3]byte{10, 12, 14},
		encodedLen: func(b, r int) int { return (10*b + 2) / 3 },
		accepts:    isDigit,
		enc1: func(b byte) (uint32, int) {
			return uint32(b - '0'), 4
		},
		enc2: func(b [2]byte) (uint32, int) {
			return uint32(b[0]-'0')*10 + uint32(b[1]-'0'), 7
		},
		enc3: func(b [3]byte) (uint32, int) {
			return uint32(b[0]-'0')*100 + uint32(b[1]-'0')*10 +
				uint32(b[2]-'0'), 10
		},
	},
	Alphanumeric: {
		name:       "alphanumeric",
		indicator:  2,
		countLen:   [3]byte{9, 11, 13},
		encodedLen: func(b, r int) int { return (11*b + 1) / 2 },
		accepts:    isAlnum,
		enc1: func(b byte) (uint32, int) {
			return alnumVal(b), 6
		},
		enc2: func(b [2]byte) (uint32, int) {
			return alnumVal(b[0])*45 + alnumVal(b[1]), 11
		},
	},
	Byte: {
		name:      "byte",
		indicator: 4,
		countLen:  [3]byte{8, 16, 16},
	},
	Kanji: {
		name:       "kanji",
		indicator:  8,
		countLen:   [3]byte{8, 10, 12},
		encodedLen: func(b, r int) int { return r * 13 },
		accepts:    IsKanji,
		transform: func(s string) (Segment, bool) {
			t, err := japanese.ShiftJIS.NewEncoder().String(s)
			return Segment{t, ShiftJISKanji}, err == nil
		},
	},
	Latin1: {
		name:       "latin-1",
		indicator:  4,
		countLen:   [3]byte{8, 16, 16},
		encodedLen: func(b, r int) int { return r * 8 },
		accepts:    func(r rune) bool { return uint32(r) < 0x100 },
		transform: func(s string) (Segment, bool) {
			t, err := charmap.ISO8859_1.NewEncoder().String(s)
			return Segment{t, Byte}, err == nil
		},
	},
	ShiftJISKanji: {
		name:       "shift-jis-kanji",
		indicator:  8,
		countLen:   [3]byte{8, 10, 12},
		encodedLen: func(b, r int) int { return b / 2 * 13 },
		count:      func(s string) int { return len(s) / 2 },
		cutRune: func(s string) (rune, int) {
			if len(s) > 1 && sjisPair(s[0], s[1]) {
				return rune(s[0])<<8 | rune(s[1]), 2
			}
			return rune(s[0]), 1
		},
		accepts: func(r rune) bool { return r >= 0x8000 },
		enc2: func(b [2]byte) (uint32, int) {
			return uint32(b[0]&^0xc0)*0xc0 + uint32(b[1]) - 0x100, 13
		},
	},
}

func getMode(mode Mode) *modeEncoder {
	if mode >= 0 && mode < numModes {
		return &modes[mode]
	}
	return nil
}

func (mode Mode) String() string {
	if m := getMode(mode); m != nil {
		return m.name
	}
	return strconv.Itoa(int(mode))
}

// Is reports whether r is encodable in mode.
func Is(r rune, mode Mode) bool {
	m := getMode(mode)
	return m != nil && (m.accepts == nil || m.accepts(r))
}

// length returns the length in bits of a valid string of the given
// length in bytes and runes encoded at the given QR version size
// class, including the header.
func (m *modeEncoder) length(bytes, runes, class int) int {
	n := 4 + int(m.countLen[class])
	if f := m.encodedLen; f != nil {
		n += f(bytes, runes)
	} else {
		n += bytes * 8
	}
	return n
}

// Length returns the length in bits of a valid string of the given
// length in bytes and runes encoded in mode at the given QR version
// size class, including the header.  Length returns 0 if and only if
// mode is invalid.
func (mode Mode) Length(bytes, runes, class int) int {
	if m := getMode(mode); m != nil {
		return m.length(bytes, runes, class)
	}
	return 0
}

// A Segment describes a QR code segment.
type Segment struct {
	Text string // data to encode
	Mode Mode   // encoding mode
}

// SegmentError represents an invalid Segment.
type SegmentError Segment

func (e SegmentError) Error() string {
	if m := getMode(e.Mode); m != nil {
		return fmt.Sprintf("qr: non-%s string %#q", m.name, e.Text)
	}
	return fmt.Sprintf("qr: invalid mode %d", e.Mode)
}

// ModeError represents an invalid Mode number.
type ModeError Mode

func (e ModeError) Error() string {
	return fmt.Sprintf("qr: invalid mode %s", Mode(e))
}

// isValid reports whether seg is encodable.
func (m *modeEncoder) isValid(seg Segment) bool {
	is := m.accepts
	if is == nil {
		return true
	}
	cut := m.cutRune
	if cut == nil {
		cut = utf8.DecodeRuneInString
	}
	for s := seg.Text; s != ""; {
		r, sz := cut(s)
		s = s[sz:]
		if !is(r) {
			return false
		}
	}
	return true
}

// IsValid reports whether seg is encodable.
func (seg Segment) IsValid() bool {
	if m := getMode(seg.Mode); m != nil {
		return m.isValid(seg)
	}
	return false
}

// EncodedLength returns the encoded length in bits of seg in the
// given QR version size class, including the header.  EncodedLength
// returns 0 if and only if the mode is invalid.  The segment is not
// validated.
func (seg Segment) EncodedLength(class int) int {
	m := getMode(seg.Mode)
	if m == nil {
		return 0
	}
	var rlen int
	if m.encodedLen != nil {
		if cut := m.cutRune; cut != nil {
			for s := seg.Text; s != ""; rlen++ {
				_, sz := cut(s)
				s = s[sz:]
			}
		} else {
			rlen = utf8.RuneCountInString(seg.Text)
		}
	}
	return m.length(len(seg.Text), rlen, class)
}

// transform transforms seg for encoding, validating it first if the
// mode re-encodes its input.
func (seg Segment) transform() (Segment, *modeEncoder, error) {
	m := getMode(seg.Mode)
	if m == nil {
		return Segment{}, nil, ModeError(seg.Mode)
	}
	if m.transform == nil {
		return seg, m, nil
	}
	if !m.isValid(seg) {
		return Segment{}, nil, SegmentError(seg)
	}
	ts, ok := m.transform(seg.Text)
	if !ok {
		return Segment{}, nil, SegmentError(seg)
	}
	return ts, getMode(ts.Mode), nil
}

// Encode writes seg encoded for the given QR version size class to b.
func (seg Segment) Encode(b *Bits, class int) error {
	ts, m, err := seg.transform()
	if err != nil {
		return err
	}
	if !m.isValid(ts) {
		return SegmentError(seg)
	}
	// header: mode indicator and character count
	s := ts.Text
	b.Write(uint32(m.indicator), 4)
	w := len(s)
	if m.count != nil {
		w = m.count(s)
	}
	b.Write(uint32(w), int(m.countLen[class]))
	// data bits
	if m.enc3 == nil && m.enc2 == nil && m.enc1 == nil {
		for i := 0; i < len(s); i++ {
			b.Write(uint32(s[i]), 8)
		}
		return nil
	}
	if enc := m.enc3; enc != nil {
		for len(s) >= 3 {
			b.Write(enc([3]byte{s[0], s[1], s[2]}))
			s = s[3:]
		}
	}
	if enc := m.enc2; enc != nil {
		for len(s) >= 2 {
			b.Write(enc([2]byte{s[0], s[1]}))
			s = s[2:]
		}
	}
	if enc := m.enc1; enc != nil {
		for len(s) >= 1 {
			b.Write(enc(s[0]))
			s = s[1:]
		}
	}
	if s != "" {
		panic("qr: " + m.name + " mode internal error")
	}
	return nil
}
