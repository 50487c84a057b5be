// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erwanvivien/QR-Gen/coding"
)

func TestSplitNumeric(t *testing.T) {
	segs, v, err := Split("01234567", M)
	require.NoError(t, err)
	assert.Equal(t, coding.Version(1), v)
	require.Len(t, segs, 1)
	assert.Equal(t, coding.Segment{Text: "01234567", Mode: Numeric}, segs[0])
}

func TestSplitMixed(t *testing.T) {
	// a mode switch is cheaper than one alphanumeric segment here
	segs, _, err := Split("HELLO123456789", M)
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, coding.Segment{Text: "HELLO", Mode: Alphanumeric}, segs[0])
	assert.Equal(t, coding.Segment{Text: "123456789", Mode: Numeric}, segs[1])
}

func TestSplitShortRun(t *testing.T) {
	// too few digits to pay for a numeric segment header
	segs, _, err := Split("HELLO12WORLD", M)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, Alphanumeric, segs[0].Mode)
}

func TestSplitKanji(t *testing.T) {
	segs, v, err := Split("点茗", M)
	require.NoError(t, err)
	assert.Equal(t, coding.Version(1), v)
	require.Len(t, segs, 1)
	assert.Equal(t, coding.Segment{Text: "点茗", Mode: Kanji}, segs[0])
}

func TestSplitVersionGrowth(t *testing.T) {
	// 100 digits: 348 bits, too big for versions 1 and 2 at L
	segs, v, err := Split(strings.Repeat("1", 100), L)
	require.NoError(t, err)
	assert.Equal(t, coding.Version(3), v)
	require.Len(t, segs, 1)

	// byte data crossing into size class 1 widens the count field
	_, v, err = Split(strings.Repeat("a", 300), L)
	require.NoError(t, err)
	assert.Equal(t, 1, v.SizeClass())
}

func TestSplitTooLong(t *testing.T) {
	_, _, err := Split(strings.Repeat("1", 8000), L)
	assert.ErrorIs(t, err, ErrLongText)
	_, _, err = Split(strings.Repeat("x", 3000), H)
	assert.ErrorIs(t, err, ErrLongText)
}

func TestSplitEmpty(t *testing.T) {
	segs, v, err := Split("", M)
	require.NoError(t, err)
	assert.Nil(t, segs)
	assert.Equal(t, coding.MinVersion, v)
}

func TestSplitBadLevel(t *testing.T) {
	_, _, err := Split("1", coding.Level(7))
	assert.ErrorIs(t, err, coding.ErrLevel)
}

func TestSplitVersionForced(t *testing.T) {
	segs, err := SplitVersion("01234567", 1, M)
	require.NoError(t, err)
	require.Len(t, segs, 1)

	_, err = SplitVersion(strings.Repeat("1", 100), 1, M)
	assert.ErrorIs(t, err, ErrLongText)

	_, err = SplitVersion("1", 41, M)
	assert.ErrorIs(t, err, coding.ErrVersion)
}

func TestFit(t *testing.T) {
	v, err := Fit([]coding.Segment{{Text: "123", Mode: Numeric}}, M)
	require.NoError(t, err)
	assert.Equal(t, coding.Version(1), v)

	_, err = Fit([]coding.Segment{{Text: "ABC", Mode: Numeric}}, M)
	assert.ErrorIs(t, err, ErrNotEncodable)

	_, err = Fit([]coding.Segment{
		{Text: strings.Repeat("1", 8000), Mode: Numeric},
	}, L)
	assert.ErrorIs(t, err, ErrLongText)
}

func TestFitVersion(t *testing.T) {
	err := FitVersion([]coding.Segment{{Text: "123", Mode: Numeric}}, 1, H)
	assert.NoError(t, err)

	err = FitVersion([]coding.Segment{
		{Text: strings.Repeat("1", 100), Mode: Numeric},
	}, 1, L)
	assert.ErrorIs(t, err, ErrLongText)

	err = FitVersion([]coding.Segment{{Text: "abc", Mode: Kanji}}, 1, L)
	assert.ErrorIs(t, err, ErrNotEncodable)
}

// reassemble concatenates segment texts.
func reassemble(segs []coding.Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(seg.Text)
	}
	return b.String()
}

func TestSplitReassembles(t *testing.T) {
	for _, s := range []string{
		"01234567",
		"HELLO123456789",
		"hello, world",
		"MIXED case 123 текст 点茗",
		strings.Repeat("0123456789abcdefghij", 20),
	} {
		segs, v, err := Split(s, Q)
		require.NoError(t, err, "%q", s)
		assert.Equal(t, s, reassemble(segs), "%q", s)
		for _, seg := range segs {
			assert.True(t, seg.IsValid(), "%q segment %q mode %v",
				s, seg.Text, seg.Mode)
		}
		// the whole split must encode into the returned version
		_, err = coding.Encode(v, coding.Q, segs...)
		assert.NoError(t, err, "%q", s)
	}
}
