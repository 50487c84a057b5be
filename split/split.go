// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits strings into QR code segments.

Split breaks UTF-8 text into numeric, alphanumeric, byte and kanji
mode segments minimising the encoded length, and selects the smallest
QR version holding the encoding at the requested error correction
level.  Fit does the version selection alone for caller-built
segments.
*/
package split // import "github.com/erwanvivien/QR-Gen/split"

import (
	"errors"
	"unicode/utf8"

	"github.com/erwanvivien/QR-Gen/coding"
)

// QR error correction levels.
const (
	L = coding.L // 20% redundant
	M = coding.M // 38% redundant
	Q = coding.Q // 55% redundant
	H = coding.H // 65% redundant
)

// Encoding modes.
const (
	Numeric      = coding.Numeric
	Alphanumeric = coding.Alphanumeric
	Byte         = coding.Byte
	Kanji        = coding.Kanji
)

var (
	ErrLongText     = errors.New("qr: text too long")
	ErrNotEncodable = errors.New("qr: text not encodable in given mode")
)

var (
	sizeClass = [3]struct{ min, max coding.Version }{
		{1, 9}, {10, 26}, {27, 40},
	}

	sizeLimit = [4][3]int{
		L: {
			sizeClass[0].max.DataBits(L),
			sizeClass[1].max.DataBits(L),
			sizeClass[2].max.DataBits(L),
		},
		M: {
			sizeClass[0].max.DataBits(M),
			sizeClass[1].max.DataBits(M),
			sizeClass[2].max.DataBits(M),
		},
		Q: {
			sizeClass[0].max.DataBits(Q),
			sizeClass[1].max.DataBits(Q),
			sizeClass[2].max.DataBits(Q),
		},
		H: {
			sizeClass[0].max.DataBits(H),
			sizeClass[1].max.DataBits(H),
			sizeClass[2].max.DataBits(H),
		},
	}
)

// findVersion returns the smallest version in the size class holding
// bits data bits at the given level.
func findVersion(class, bits int, level coding.Level) coding.Version {
	v := sizeClass[class].min
	for max := sizeClass[class].max; v < max; {
		if mid := (v + max) / 2; mid.DataBits(level) < bits {
			v = mid + 1
		} else {
			max = mid
		}
	}
	return v
}

// Split splits text into segments and returns them with the minimum
// QR version holding the encoding at the given error correction
// level.  The character count field widens with the version size
// class, so the split is recomputed when the encoding outgrows a
// class.
func Split(text string, level coding.Level) ([]coding.Segment, coding.Version, error) {
	if level < L || level > H {
		return nil, 0, coding.ErrLevel
	}
	if text == "" {
		return nil, coding.MinVersion, nil
	}
	lim := sizeLimit[level]
	// Estimate the minimum size class.  This is done in a very
	// crude manner, as it's likely to be completely off anyway.
	bits := Numeric.Length(len(text), 0, 0)
	class := 0
	for lim[class] < bits {
		if class++; class == 3 {
			return nil, 0, ErrLongText
		}
	}

	sp := newSplitter(text)
	bits = sp.split(class)
	// If the encoding is too big for the size class, increment
	// class and resplit.  bits will change, hence the loop.
	for lim[class] < bits {
		for class++; class < 3 && lim[class] < bits; class++ {
		}
		if class == 3 {
			return nil, 0, ErrLongText
		}
		bits = sp.split(class)
	}
	return sp.segments(), findVersion(class, bits, level), nil
}

// SplitVersion splits text into segments for a fixed QR version.
// It returns ErrLongText if the encoding does not fit in the version
// at the given error correction level.
func SplitVersion(text string, ver coding.Version, level coding.Level) ([]coding.Segment, error) {
	if ver < coding.MinVersion || ver > coding.MaxVersion {
		return nil, coding.ErrVersion
	}
	if level < L || level > H {
		return nil, coding.ErrLevel
	}
	if text == "" {
		return nil, nil
	}
	sp := newSplitter(text)
	if sp.split(ver.SizeClass()) > ver.DataBits(level) {
		return nil, ErrLongText
	}
	return sp.segments(), nil
}

// Fit validates caller-built segments and returns the minimum QR
// version holding their encoding at the given error correction level.
func Fit(segs []coding.Segment, level coding.Level) (coding.Version, error) {
	if level < L || level > H {
		return 0, coding.ErrLevel
	}
	for _, seg := range segs {
		if !seg.IsValid() {
			return 0, ErrNotEncodable
		}
	}
	lim := sizeLimit[level]
	for class := 0; class < 3; class++ {
		bits := 0
		for _, seg := range segs {
			bits += seg.EncodedLength(class)
		}
		if bits <= lim[class] {
			return findVersion(class, bits, level), nil
		}
	}
	return 0, ErrLongText
}

// FitVersion validates caller-built segments against a fixed QR
// version at the given error correction level.
func FitVersion(segs []coding.Segment, ver coding.Version, level coding.Level) error {
	if ver < coding.MinVersion || ver > coding.MaxVersion {
		return coding.ErrVersion
	}
	if level < L || level > H {
		return coding.ErrLevel
	}
	bits := 0
	for _, seg := range segs {
		if !seg.IsValid() {
			return ErrNotEncodable
		}
		bits += seg.EncodedLength(ver.SizeClass())
	}
	if bits > ver.DataBits(level) {
		return ErrLongText
	}
	return nil
}

// Encoding mode bits used during classification.  The index of each
// bit is the mode's index in modeList.
const (
	numMode = 1 << iota // numeric
	alphaMode           // alphanumeric
	byteMode            // byte, always set
	kanjiMode           // kanji
)

var modeList = [4]coding.Mode{Numeric, Alphanumeric, Byte, Kanji}

/*
splitter and its component types.

newSplitter determines the modes in which each rune in the string is
encodable and creates a slice of spans, each span describing a
substring of runes encodable in the same modes.  To avoid multiple
allocations, the span structure contains an array of segments for the
modes.

splitter.split creates a linked list of segments representing an
optimal split of the data.  A segment contains its mode, length in
bytes and runes, total encoded length in bits of the string from this
segment to the end, and a link to the next segment.

The split is calculated by walking the spans backwards.  For each
span n, for each mode m in which the span is encodable, a segment
(n,m) is created representing an optimal split for the string from
span n to the end, starting with mode m.

The segment (n,m) is created thusly.  For each mode mm in which span
n+1 is encodable, a segment (n,m,mm) linking to (n+1,mm) is created.
If m=mm, the segments are merged.  The encoded length is calculated,
and the total encoded length of the next segment is added to it.  Of
these segments, the one with the smallest total encoded length is
chosen as (n,m).

When the beginning of the span slice is reached, the segment (0,m)
with the smallest total encoded length for any m describes an optimal
split for the whole string.
*/
type (
	// segment describes a segment encoded in a certain mode.
	segment struct {
		mode    coding.Mode // encoding mode
		segdata             // lengths and pointer to next
	}

	// segdata is the mutable portion of segment.
	segdata struct {
		next *segment // link to next segment in the chain
		len  uint32   // length of string in bytes
		rlen uint32   // length of string in Unicode code points
		bits uint32   // encoded size of all segments in the chain
	}

	// span describes a span of bytes encodable in the same modes.
	span struct {
		len  uint32     // length of string in bytes
		rlen uint32     // length of string in Unicode code points
		seg  [4]segment // segments
	}

	// splitter calculates an optimal split of a string.
	splitter struct {
		s    string   // string
		sp   []span   // spans
		head *segment // optimal split after split
	}
)

// classify returns a bit field of the modes in which r is encodable.
func classify(r rune) byte {
	m := byte(byteMode)
	if coding.Is(r, Alphanumeric) {
		m |= alphaMode
		if coding.Is(r, Numeric) {
			m |= numMode
		}
	} else if coding.IsKanji(r) {
		m |= kanjiMode
	}
	return m
}

// newSplitter scans text and groups consecutive runes encodable in
// the same modes into spans.  text must not be empty.
func newSplitter(text string) *splitter {
	sp := make([]span, 0, 8)
	var old byte
	for i := 0; i < len(text); {
		r, sz := utf8.DecodeRuneInString(text[i:])
		if m := classify(r); m != old {
			old = m
			sp = append(sp, span{})
			seg := &sp[len(sp)-1].seg
			for j := range seg {
				if m == 0 {
					seg[j].mode = -1
					continue
				}
				bit := m & -m
				m &^= bit
				seg[j].mode = modeList[(bit>>1-bit>>3)&3]
			}
		}
		v := &sp[len(sp)-1]
		v.len += uint32(sz)
		v.rlen++
		i += sz
	}
	return &splitter{s: text, sp: sp}
}

const inf = 0x8000 << 4 // excessive encoded length (max is 16*0x5c60)

func (d *segdata) setBits(mode coding.Mode, class int) {
	d.bits = uint32(min(mode.Length(int(d.len), int(d.rlen), class), inf))
	if d.next != nil {
		d.bits += d.next.bits
	}
}

// add adds v to the split before p, returning a pointer to the
// segment with the smallest encoded length.
func (v *span) add(p *span, class int) *segment {
	best := &v.seg[0]
	for j := range v.seg {
		seg := &v.seg[j]
		if seg.mode < 0 {
			break
		}
		seg.bits = inf
		// p.seg is an array, not a slice, so range works when p is nil
		for k := range p.seg {
			if k != 0 && p.seg[k].mode < 0 {
				break
			}
			c := segdata{len: v.len, rlen: v.rlen}
			var add uint32
			if p != nil {
				c.next = &p.seg[k]
				if seg.mode == c.next.mode {
					c.len += c.next.len
					c.rlen += c.next.rlen
					c.next = c.next.next
					add--
				}
			}
			c.setBits(seg.mode, class)
			if c.bits+add < seg.bits {
				seg.segdata = c
			}
			if p == nil {
				break
			}
		}
		if seg.bits < best.bits {
			best = seg
		}
	}
	return best
}

// split calculates an optimal split of s for the given QR version
// size class and returns its encoded length in bits.  split may be
// called more than once with different classes.
func (s *splitter) split(class int) int {
	// process spans in reverse order
	var head *segment
	var next *span
	for i := len(s.sp) - 1; i >= 0; i-- {
		head = s.sp[i].add(next, class)
		next = &s.sp[i]
	}
	s.head = head
	return int(head.bits)
}

// segments returns the split as a slice of coding segments.
func (s *splitter) segments() []coding.Segment {
	var n int
	for seg := s.head; seg != nil; seg = seg.next {
		n++
	}
	a := make([]coding.Segment, 0, n)
	for seg, str := s.head, s.s; seg != nil; seg = seg.next {
		a = append(a, coding.Segment{
			Text: str[:seg.len],
			Mode: seg.mode,
		})
		str = str[seg.len:]
	}
	return a
}
