package main

import (
	"testing"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textshaping/ot"
	"github.com/npillmayer/textshaping/otlayout"
	"github.com/npillmayer/textshaping/otshape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/bidi"
)

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.cli")
	defer teardown()
	//
	cmd, err := parseCommand("table:GSUB scripts:latn features")
	require.NoError(t, err)
	require.Equal(t, 3, cmd.count)
	assert.Equal(t, TABLE, cmd.op[0].code)
	assert.Equal(t, "GSUB", cmd.op[0].arg)
	assert.Equal(t, SCRIPTS, cmd.op[1].code)
	assert.Equal(t, "latn", cmd.op[1].arg)
	assert.Equal(t, FEATURES, cmd.op[2].code)
	assert.True(t, cmd.op[2].noArg())
	assert.Equal(t, NOOP, cmd.op[3].code)
	//
	cmd, err = parseCommand("lookups:3 shape Hello  World")
	require.NoError(t, err)
	require.Equal(t, 2, cmd.count)
	assert.Equal(t, SHAPE, cmd.op[1].code)
	assert.Equal(t, "Hello World", cmd.op[1].arg)
	//
	cmd, err = parseCommand("shape:fi x")
	require.NoError(t, err)
	assert.Equal(t, "fi x", cmd.op[0].arg)
	//
	cmd, err = parseCommand("bogus")
	require.NoError(t, err)
	assert.Equal(t, HELP, cmd.op[0].code)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "Ligature", formatLookupType(ot.GSubFeatureType, ot.GSubLookupTypeLigature))
	assert.Equal(t, "MarkToBase", formatLookupType(ot.GPosFeatureType, ot.GPosLookupTypeMarkToBase))
	assert.Equal(t, "-", formatLookupFlags(0))
	assert.Equal(t, "IgnoreMarks|MarkAttachType=2",
		formatLookupFlags(ot.LOOKUP_FLAG_IGNORE_MARKS|0x0200))
	assert.Equal(t, "SingleSubstFmt1", formatSubtable(&ot.SingleSubstFmt1{}))
	//
	glyphs := []otshape.GlyphRecord{
		{GID: 42, Cluster: 0, Pos: otlayout.GlyphPosition{XAdvance: 500}},
		{GID: 7, Cluster: 2, Pos: otlayout.GlyphPosition{XOffset: -20, YOffset: 30}},
	}
	assert.Equal(t, "[42=0+500|7=2+0@-20,30]", formatGlyphRecords(glyphs, nil))
	names := func(g ot.GlyphIndex) string {
		if g == 42 {
			return "f_i"
		}
		return ""
	}
	assert.Equal(t, "[f_i=0+500|7=2+0@-20,30]", formatGlyphRecords(glyphs, names))
	//
	r, err := parseRune("U+0628")
	require.NoError(t, err)
	assert.Equal(t, rune(0x628), r)
	r, err = parseRune("ب")
	require.NoError(t, err)
	assert.Equal(t, rune(0x628), r)
	_, err = parseRune("xyz")
	assert.Error(t, err)
}

func TestMatchEngine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textshaping.cli")
	defer teardown()
	//
	e := matchEngine(otshape.SelectionContext{Script: language.Arabic, Direction: bidi.RightToLeft})
	require.NotNil(t, e)
	assert.Equal(t, "arabic", e.Name())
	e = matchEngine(otshape.SelectionContext{Script: language.Latin, Direction: bidi.LeftToRight})
	require.NotNil(t, e)
	assert.Equal(t, "core", e.Name())
}
