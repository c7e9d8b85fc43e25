package main

import (
	"testing"

	"github.com/npillmayer/textshaping/internal/hbcmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCodepoints(t *testing.T) {
	runes, err := parseCodepoints("U+0627, 0x644 62A")
	require.NoError(t, err)
	assert.Equal(t, []rune{0x627, 0x644, 0x62A}, runes)
	_, err = parseCodepoints("U+D800")
	assert.Error(t, err)
	_, err = parseCodepoints("xyz")
	assert.Error(t, err)
	//
	r, err := parseGlyphToken("A")
	require.NoError(t, err)
	assert.Equal(t, 'A', r)
	r, err = parseGlyphToken("U+0041")
	require.NoError(t, err)
	assert.Equal(t, 'A', r)
}

func TestParseVariations(t *testing.T) {
	opts, err := parseVariations("wght=700, wdth=75.5")
	require.NoError(t, err)
	assert.Len(t, opts, 2)
	_, err = parseVariations("weight=700")
	assert.Error(t, err)
	_, err = parseVariations("wght")
	assert.Error(t, err)
	opts, err = parseVariations("")
	assert.NoError(t, err)
	assert.Empty(t, opts)
}

func TestFormatGlyphOutput(t *testing.T) {
	glyphs := []hbcmp.ShapedGlyph{
		{G: 36, Cl: 0, AX: 1401},
		{G: 512, Cl: 1, AX: 0, DX: -600, DY: 20},
	}
	assert.Equal(t, "[36=0+1401|512=1+0@-600,20]", formatGlyphOutput(glyphs, nil))
	names := func(gid int) string { return map[int]string{36: "A", 512: "acutecomb"}[gid] }
	assert.Equal(t, "[A=0+1401|acutecomb=1+0@-600,20]", formatGlyphOutput(glyphs, names))
	assert.Equal(t, int32(1401), totalAdvance(glyphs))
}
