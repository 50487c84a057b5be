// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIs(t *testing.T) {
	for _, r := range "0123456789" {
		assert.True(t, Is(r, Numeric), "%c", r)
		assert.True(t, Is(r, Alphanumeric), "%c", r)
	}
	for _, r := range "AZ $%*+-./:" {
		assert.False(t, Is(r, Numeric), "%c", r)
		assert.True(t, Is(r, Alphanumeric), "%c", r)
	}
	for _, r := range "az#@" {
		assert.False(t, Is(r, Alphanumeric), "%c", r)
		assert.True(t, Is(r, Byte), "%c", r)
	}
	assert.True(t, Is('é', Latin1))
	assert.False(t, Is('あ', Latin1))
}

func TestIsKanji(t *testing.T) {
	assert.True(t, IsKanji('あ'))
	assert.True(t, IsKanji('点'))
	assert.True(t, IsKanji('茗'))
	assert.False(t, IsKanji('A'))
	assert.False(t, IsKanji('é'))
}

func TestIsValid(t *testing.T) {
	assert.True(t, Segment{"0123", Numeric}.IsValid())
	assert.False(t, Segment{"012A", Numeric}.IsValid())
	assert.True(t, Segment{"AC-42", Alphanumeric}.IsValid())
	assert.False(t, Segment{"ac-42", Alphanumeric}.IsValid())
	assert.True(t, Segment{"\x00\xff any data", Byte}.IsValid())
	assert.True(t, Segment{"点茗", Kanji}.IsValid())
	assert.False(t, Segment{"abc", Kanji}.IsValid())
	assert.False(t, Segment{"x", Mode(-1)}.IsValid())
}

func TestEncodedLength(t *testing.T) {
	// 4 bit indicator, count field, packed data
	assert.Equal(t, 4+10+27, Segment{"01234567", Numeric}.EncodedLength(Class0))
	assert.Equal(t, 4+14+27, Segment{"01234567", Numeric}.EncodedLength(Class2))
	assert.Equal(t, 4+9+28, Segment{"AC-42", Alphanumeric}.EncodedLength(Class0))
	assert.Equal(t, 4+8+40, Segment{"hello", Byte}.EncodedLength(Class0))
	assert.Equal(t, 4+8+26, Segment{"点茗", Kanji}.EncodedLength(Class0))
	assert.Equal(t, 0, Segment{"x", Mode(99)}.EncodedLength(Class0))
}

func TestEncodeNumeric(t *testing.T) {
	var b Bits
	require.NoError(t, Segment{"01234567", Numeric}.Encode(&b, Class0))
	assert.Equal(t, 41, b.Bits())
}

// "AC-42" worked example from the standard
func TestEncodeAlphanumeric(t *testing.T) {
	var b Bits
	require.NoError(t, Segment{"AC-42", Alphanumeric}.Encode(&b, Class0))
	assert.Equal(t, 41, b.Bits())
	b.Write(0, 7) // pad to byte boundary
	assert.Equal(t, []byte{0x20, 0x29, 0xce, 0xe7, 0x21, 0x00}, b.Bytes())
}

func TestEncodeKanji(t *testing.T) {
	var b Bits
	require.NoError(t, Segment{"点茗", Kanji}.Encode(&b, Class0))
	assert.Equal(t, 38, b.Bits())
	b.Write(0, 2)
	// indicator 8, count 2, packed Shift JIS values 0xd9f and 0x1aaa
	assert.Equal(t, []byte{0x80, 0x26, 0xcf, 0xea, 0xa8}, b.Bytes())
}

func TestEncodeInvalid(t *testing.T) {
	var b Bits
	err := Segment{"ABC", Kanji}.Encode(&b, Class0)
	var se SegmentError
	require.ErrorAs(t, err, &se)
	err = Segment{"x", Mode(-1)}.Encode(&b, Class0)
	var me ModeError
	require.ErrorAs(t, err, &me)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "numeric", Numeric.String())
	assert.Equal(t, "alphanumeric", Alphanumeric.String())
	assert.Equal(t, "byte", Byte.String())
	assert.Equal(t, "kanji", Kanji.String())
}
